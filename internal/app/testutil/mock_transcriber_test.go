package testutil

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockTranscriber_Responses(t *testing.T) {
	m := NewMockTranscriber()
	m.SetResponseForFile("/memos/a.m4a", "custom")
	m.SimulateQuotaExceededError("/memos/b.m4a")

	got, err := m.Transcript(context.Background(), "/memos/a.m4a")
	require.NoError(t, err)
	assert.Equal(t, "custom", got)

	_, err = m.Transcript(context.Background(), "/memos/b.m4a")
	assert.ErrorContains(t, err, "quota exceeded")

	got, err = m.Transcript(context.Background(), "/memos/grocery run.m4a")
	require.NoError(t, err)
	assert.Contains(t, got, "oat milk")

	got, err = m.Transcript(context.Background(), "/memos/silence.m4a")
	require.NoError(t, err)
	assert.Empty(t, got)

	assert.Equal(t, 4, m.GetCallCount())
	assert.True(t, m.WasCalledWith("/memos/b.m4a"))
	assert.Equal(t, []string{"a.m4a", "b.m4a", "grocery run.m4a", "silence.m4a"}, m.CalledFiles())
}

func TestMockTranscriber_Expectations(t *testing.T) {
	m := NewMockTranscriber().ExpectTranscriptCall("/memos/a.m4a", "expected", nil)

	got, err := m.Transcript(context.Background(), "/memos/a.m4a")
	require.NoError(t, err)
	assert.Equal(t, "expected", got)
	m.AssertExpectations(t)
}

func TestMockTranscriber_DefaultError(t *testing.T) {
	m := NewMockTranscriber()
	m.DefaultError = errors.New("service unavailable")

	_, err := m.Transcript(context.Background(), "/memos/a.m4a")
	assert.EqualError(t, err, "service unavailable")
}

func TestMockTranscriber_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMockTranscriber().Transcript(ctx, "/memos/a.m4a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreateAudioDir(t *testing.T) {
	mod := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	dir := CreateAudioDir(t,
		AudioFixture{Name: "a.m4a", Size: 4096, ModTime: mod},
		AudioFixture{Name: "b.m4a"},
	)

	info, err := os.Stat(filepath.Join(dir, "a.m4a"))
	require.NoError(t, err)
	assert.Equal(t, int64(4096), info.Size())
	assert.True(t, info.ModTime().Equal(mod))

	info, err = os.Stat(filepath.Join(dir, "b.m4a"))
	require.NoError(t, err)
	assert.Equal(t, int64(len(wavHeader)), info.Size())
}

func TestCreateTranscriptDir(t *testing.T) {
	dir := CreateTranscriptDir(t, TestTranscripts)

	data, err := os.ReadFile(filepath.Join(dir, "grocery list.txt"))
	require.NoError(t, err)
	assert.Equal(t, TestTranscripts["grocery list"], string(data))
}
