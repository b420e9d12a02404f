package testutil

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"memo2vec/internal/app/api"
)

// MockTranscriber implements api.Transcriber with per-file responses and
// errors. Expectations set with ExpectTranscriptCall take precedence.
type MockTranscriber struct {
	mock.Mock
	mu sync.RWMutex

	DefaultResponse string
	DefaultError    error

	CallHistory []TranscriptionCall
	ErrorMap    map[string]error
	ResponseMap map[string]string

	expectations bool
}

// TranscriptionCall represents a single transcription call for tracking
type TranscriptionCall struct {
	InputFilePath string
	Timestamp     time.Time
	Response      string
	Error         error
}

// NewMockTranscriber creates a MockTranscriber whose responses are derived
// from the file name.
func NewMockTranscriber() *MockTranscriber {
	return &MockTranscriber{
		ErrorMap:    make(map[string]error),
		ResponseMap: make(map[string]string),
	}
}

// Transcript implements the api.Transcriber interface
func (m *MockTranscriber) Transcript(ctx context.Context, inputFilePath string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	response, err := m.respond(inputFilePath)
	if m.expectations {
		args := m.Called(inputFilePath)
		response, err = args.String(0), args.Error(1)
	}

	m.CallHistory = append(m.CallHistory, TranscriptionCall{
		InputFilePath: inputFilePath,
		Timestamp:     time.Now(),
		Response:      response,
		Error:         err,
	})
	return response, err
}

func (m *MockTranscriber) respond(inputFilePath string) (string, error) {
	if err, exists := m.ErrorMap[inputFilePath]; exists {
		return "", err
	}
	if m.DefaultError != nil {
		return "", m.DefaultError
	}
	if response, exists := m.ResponseMap[inputFilePath]; exists {
		return response, nil
	}
	if m.DefaultResponse != "" {
		return m.DefaultResponse, nil
	}
	return realisticResponse(inputFilePath), nil
}

// SetErrorForFile sets a specific error for a given file path
func (m *MockTranscriber) SetErrorForFile(filePath string, err error) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ErrorMap[filePath] = err
	return m
}

// SetResponseForFile sets a specific response for a given file path
func (m *MockTranscriber) SetResponseForFile(filePath string, response string) *MockTranscriber {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ResponseMap[filePath] = response
	return m
}

// SimulateQuotaExceededError simulates quota exceeded errors
func (m *MockTranscriber) SimulateQuotaExceededError(filePath string) *MockTranscriber {
	return m.SetErrorForFile(filePath, fmt.Errorf("quota exceeded: API rate limit reached"))
}

// ExpectTranscriptCall sets up an expectation for a specific transcript call
func (m *MockTranscriber) ExpectTranscriptCall(filePath string, response string, err error) *MockTranscriber {
	m.expectations = true
	m.On("Transcript", filePath).Return(response, err)
	return m
}

// GetCallCount returns the total number of calls made
func (m *MockTranscriber) GetCallCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.CallHistory)
}

// WasCalledWith checks if the transcriber was called with a specific file path
func (m *MockTranscriber) WasCalledWith(filePath string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, call := range m.CallHistory {
		if call.InputFilePath == filePath {
			return true
		}
	}
	return false
}

// CalledFiles returns the base names of the transcribed files in call order.
func (m *MockTranscriber) CalledFiles() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.CallHistory))
	for _, call := range m.CallHistory {
		names = append(names, filepath.Base(call.InputFilePath))
	}
	return names
}

func realisticResponse(filePath string) string {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	switch {
	case strings.Contains(nameWithoutExt, "empty"), strings.Contains(nameWithoutExt, "silence"):
		return ""
	case strings.Contains(nameWithoutExt, "grocery"):
		return "Remember to buy oat milk, eggs and coffee beans on the way home."
	case strings.Contains(nameWithoutExt, "idea"):
		return "Idea for the weekend: sketch the garden layout and price out raised beds."
	}
	return fmt.Sprintf("Mock transcription of voice memo %s.", nameWithoutExt)
}

// Interface compliance check
var _ api.Transcriber = (*MockTranscriber)(nil)
