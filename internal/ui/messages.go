package ui

// ProgressMsg represents a pipeline progress update for the active file
type ProgressMsg struct {
	FileIndex int
	Pass      int     // 1 to 4
	PassName  string  // "Probing", "Measuring", "Detecting" or "Synthesizing"
	Progress  float64 // 0.0 to 1.0 within the pass
}

// FileStartMsg indicates a new file has started processing
type FileStartMsg struct {
	FileIndex int
	FileName  string
}

// FileCompleteMsg indicates a file has finished processing
type FileCompleteMsg struct {
	FileIndex     int
	ScriptPath    string
	MeasuredLUFS  float64
	GainDB        float64
	SilenceCount  int
	InternalCount int
	Error         error
}

// AllCompleteMsg indicates all files have been processed
type AllCompleteMsg struct{}
