package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderProcessingView renders the main processing view
func renderProcessingView(m Model) string {
	var b strings.Builder

	// Header
	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")

	// File queue
	b.WriteString(renderFileQueue(m))
	b.WriteString("\n")

	// Overall progress
	b.WriteString(renderOverallProgress(m))

	return b.String()
}

// renderHeader renders the application header
func renderHeader(m Model) string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#005F87")).
		Render("Skipsilence ⏩ - Silence Fast-Forward Script Generator")

	subtitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		Italic(true).
		Render(fmt.Sprintf("Processing %d file(s)", m.TotalFiles))

	return title + "\n" + subtitle
}

// renderFileQueue renders the list of files with their status
func renderFileQueue(m Model) string {
	var b strings.Builder

	for _, file := range m.Files {
		b.WriteString(renderFileEntry(file))
		b.WriteString("\n")
	}

	return b.String()
}

// renderFileEntry renders a single file entry in the queue
func renderFileEntry(file FileProgress) string {
	fileName := filepath.Base(file.InputPath)

	switch file.Status {
	case StatusComplete:
		// ✓ completed file with summary
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Render("✓")
		summary := fmt.Sprintf("%d silences (%d internal) | %.1f LUFS | Gain %+.1f dB",
			file.SilenceCount, file.InternalCount, file.MeasuredLUFS, file.GainDB)
		return fmt.Sprintf(" %s %s → %s\n   %s", icon, fileName, filepath.Base(file.ScriptPath), summary)

	case StatusWorking:
		// ⚙ active file with detailed progress
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Render("⚙")
		return fmt.Sprintf(" %s %s\n%s", icon, fileName, renderFileDetails(file))

	case StatusError:
		// ✗ failed file
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#A40000")).Render("✗")
		return fmt.Sprintf(" %s %s\n   Error: %v", icon, fileName, file.Error)

	default:
		// ○ queued file
		icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render("○")
		return fmt.Sprintf(" %s %s\n   Queued...", icon, fileName)
	}
}

// renderFileDetails renders detailed progress for the active file
func renderFileDetails(file FileProgress) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#005F87")).
		Padding(0, 1).
		Width(60)

	var content strings.Builder

	passName := file.PassName
	if passName == "" {
		passName = "Starting"
	}
	content.WriteString(fmt.Sprintf("Pass %d/%d: %s\n", file.CurrentPass, totalPasses, passName))

	// Progress bar
	content.WriteString(renderProgressBar(file.Progress, 40))
	content.WriteString("\n")

	content.WriteString(fmt.Sprintf("⏱  Elapsed: %.1fs", file.ElapsedTime.Seconds()))

	return box.Render(content.String())
}

// renderProgressBar renders a progress bar
func renderProgressBar(progress float64, width int) string {
	filled := int(progress * float64(width))
	empty := width - filled

	bar := strings.Repeat("█", filled) + strings.Repeat("░", empty)
	percentage := int(progress * 100)

	return fmt.Sprintf("%s %d%%", bar, percentage)
}

// renderOverallProgress renders the overall progress footer
func renderOverallProgress(m Model) string {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#888888")).
		Padding(0, 1).
		Width(60)

	var content string
	if m.CurrentIndex >= 0 && m.CurrentIndex < len(m.Files) {
		currentFile := m.CurrentIndex + 1 // 1-indexed for display
		content = fmt.Sprintf("Processing file %d of %d (%d complete)",
			currentFile, m.TotalFiles, m.CompletedFiles)
	} else {
		content = fmt.Sprintf("Overall Progress: %d/%d complete", m.CompletedFiles, m.TotalFiles)
	}

	return box.Render(content)
}

// renderCompletionSummary renders the final completion summary
func renderCompletionSummary(m Model) string {
	var b strings.Builder

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#00AA00")).
		Render("⏩ Filter scripts ready!")
	b.WriteString(header)
	b.WriteString("\n\n")

	for _, file := range m.Files {
		if file.Status == StatusComplete {
			b.WriteString(renderCompletedFile(file))
			b.WriteString("\n")
		}
	}
	if m.FailedFiles > 0 {
		b.WriteString(fmt.Sprintf("\n%d file(s) failed - see summary below.\n", m.FailedFiles))
	}

	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", 60))
	b.WriteString("\n")
	b.WriteString("Feed each script to ffmpeg with -filter_complex_script to render.\n")

	return b.String()
}

// renderCompletedFile renders a summary for a completed file
func renderCompletedFile(file FileProgress) string {
	fileName := filepath.Base(file.InputPath)
	scriptName := filepath.Base(file.ScriptPath)

	icon := lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00")).Render("✓")

	return fmt.Sprintf(" %s %s → %s\n"+
		"   Silences: %d detected, %d fast-forwarded | Loudness: %.1f LUFS | Gain: %+.1f dB",
		icon, fileName, scriptName,
		file.SilenceCount, file.InternalCount, file.MeasuredLUFS, file.GainDB)
}
