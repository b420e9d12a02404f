package progress

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type Config struct {
	Enabled bool
	Writer  io.Writer
}

// Manager owns the bar container. A disabled manager hands out bars that do
// nothing, so callers never check for progress support.
type Manager struct {
	container *mpb.Progress
	enabled   bool
	mu        sync.Mutex
}

type Bar struct {
	bar     *mpb.Bar
	enabled bool
}

func NewManager(config Config) *Manager {
	if !config.Enabled {
		return &Manager{enabled: false}
	}

	writer := config.Writer
	if writer == nil {
		writer = os.Stderr
	}

	container := mpb.New(
		mpb.WithOutput(writer),
		mpb.WithRefreshRate(120*time.Millisecond),
	)

	return &Manager{
		container: container,
		enabled:   true,
	}
}

// NewBar adds a bar counting total units of unit ("memos", "chunks"). Every
// bar must end with Complete or Abort before Wait returns.
func (m *Manager) NewBar(total int, description string, unit string) *Bar {
	if m == nil || !m.enabled || m.container == nil {
		return &Bar{enabled: false}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Created without a total so Complete can close a bar that stopped short.
	bar := m.container.AddBar(0,
		mpb.PrependDecorators(
			decor.Name(description+" ", decor.WC{W: len(description) + 1, C: decor.DindentRight}),
			decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
		),
		mpb.AppendDecorators(
			decor.NewPercentage("%.1f", decor.WCSyncSpace),
			decor.OnComplete(
				decor.EwmaETA(decor.ET_STYLE_GO, 30, decor.WCSyncWidth), " ✓ ",
			),
			decor.OnComplete(
				decor.EwmaSpeed(0, "%.1f "+unit+"/s", 30, decor.WCSyncSpace), "",
			),
		),
	)

	bar.SetTotal(int64(total), false)

	return &Bar{
		bar:     bar,
		enabled: true,
	}
}

// Increment advances the bar by one unit that took elapsed.
func (b *Bar) Increment(elapsed time.Duration) {
	if b.enabled && b.bar != nil {
		b.bar.EwmaIncrement(elapsed)
	}
}

// Complete marks the bar done at its current count, which may be short of
// the announced total when a transcript stops early.
func (b *Bar) Complete() {
	if b.enabled && b.bar != nil {
		b.bar.SetTotal(-1, true)
	}
}

// Abort removes the bar after a failure.
func (b *Bar) Abort() {
	if b.enabled && b.bar != nil {
		b.bar.Abort(true)
	}
}

func (m *Manager) Enabled() bool {
	return m != nil && m.enabled
}

// Wait blocks until every bar has completed or aborted and flushes output.
func (m *Manager) Wait() {
	if m.Enabled() && m.container != nil {
		m.container.Wait()
	}
}

func IsTTY(writer io.Writer) bool {
	if writer == nil {
		return false
	}

	if file, ok := writer.(*os.File); ok {
		stat, err := file.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

func ShouldShowProgress(forced bool) bool {
	if forced {
		return true
	}

	return IsTTY(os.Stderr)
}
