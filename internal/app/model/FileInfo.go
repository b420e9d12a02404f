package model

import "time"

type FileInfo struct {
	FullPath string
	ModTime  time.Time
	Name     string
	Size     int64
}

// MegaBytes reports the file size in MiB.
func (f FileInfo) MegaBytes() float64 {
	return float64(f.Size) / (1024 * 1024)
}
