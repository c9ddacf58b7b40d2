// Package ui provides the Bubbletea terminal user interface for skipsilence
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// totalPasses is the number of pipeline stages shown per file:
// probe, loudness measurement, silence detection, graph synthesis.
const totalPasses = 4

// FileStatus represents the processing state of a single file
type FileStatus int

const (
	StatusQueued FileStatus = iota
	StatusWorking
	StatusComplete
	StatusError
)

// FileProgress tracks progress for a single input file
type FileProgress struct {
	InputPath  string
	ScriptPath string
	Status     FileStatus

	// Phase tracking
	CurrentPass int
	PassName    string

	// Progress tracking
	Progress    float64 // 0.0 to 1.0 within the current pass
	StartTime   time.Time
	ElapsedTime time.Duration

	// Completion results
	MeasuredLUFS  float64
	GainDB        float64
	SilenceCount  int
	InternalCount int

	// Error tracking
	Error error
}

// Model is the Bubbletea model for the processing UI
type Model struct {
	// File queue
	Files          []FileProgress
	CurrentIndex   int
	TotalFiles     int
	CompletedFiles int
	FailedFiles    int

	// Global state
	StartTime time.Time
	Done      bool

	// Terminal dimensions
	Width  int
	Height int
}

// NewModel creates a new UI model with the given input files
func NewModel(inputFiles []string) Model {
	files := make([]FileProgress, len(inputFiles))
	for i, path := range inputFiles {
		files[i] = FileProgress{
			InputPath: path,
			Status:    StatusQueued,
		}
	}

	return Model{
		Files:        files,
		CurrentIndex: -1, // No file processing yet
		TotalFiles:   len(inputFiles),
		StartTime:    time.Now(),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case FileStartMsg:
		m.CurrentIndex = msg.FileIndex
		m.Files[m.CurrentIndex].Status = StatusWorking
		m.Files[m.CurrentIndex].StartTime = time.Now()

	case ProgressMsg:
		if msg.FileIndex >= 0 && msg.FileIndex < len(m.Files) {
			m.Files[msg.FileIndex] = updateFileProgress(m.Files[msg.FileIndex], msg)
		}

	case FileCompleteMsg:
		if msg.FileIndex >= 0 && msg.FileIndex < len(m.Files) {
			fp := &m.Files[msg.FileIndex]
			fp.ScriptPath = msg.ScriptPath
			fp.MeasuredLUFS = msg.MeasuredLUFS
			fp.GainDB = msg.GainDB
			fp.SilenceCount = msg.SilenceCount
			fp.InternalCount = msg.InternalCount
			fp.Error = msg.Error

			if msg.Error != nil {
				fp.Status = StatusError
				m.FailedFiles++
			} else {
				fp.Status = StatusComplete
				m.CompletedFiles++
			}
		}

	case AllCompleteMsg:
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.Done {
		return renderCompletionSummary(m)
	}
	return renderProcessingView(m)
}

// updateFileProgress updates a FileProgress based on a ProgressMsg
func updateFileProgress(fp FileProgress, msg ProgressMsg) FileProgress {
	fp.Status = StatusWorking
	fp.Progress = msg.Progress
	fp.CurrentPass = msg.Pass
	fp.PassName = msg.PassName
	fp.ElapsedTime = time.Since(fp.StartTime)
	return fp
}
