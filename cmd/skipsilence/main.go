package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/skipsilence/skipsilence/internal/cli"
	"github.com/skipsilence/skipsilence/internal/config"
	"github.com/skipsilence/skipsilence/internal/engine"
	"github.com/skipsilence/skipsilence/internal/logging"
	"github.com/skipsilence/skipsilence/internal/scrub"
	"github.com/skipsilence/skipsilence/internal/ui"
)

var (
	version = "0.0.1"
)

// CLI defines the command-line interface
type CLI struct {
	Version bool   `short:"v" help:"Show version information"`
	Config  string `short:"c" type:"path" help:"Path to TOML config file (optional)"`
	Logs    bool   `help:"Save detailed analysis logs"`

	// Tuning flags override the config file when given.
	MinSilence *float64 `name:"min-silence" help:"Minimum silence duration in seconds"`
	Margin     *float64 `help:"Normal-speed guard band around each silence in seconds"`
	Speedup    *float64 `help:"Playback speed multiplier for silent stretches"`
	Threshold  *float64 `help:"Silence threshold in dB"`
	Target     *float64 `help:"Target integrated loudness in LUFS"`

	Files []string `arg:"" name:"files" help:"Video files to analyse" type:"existingfile" optional:""`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("skipsilence"),
		kong.Description("Fast-forward filter script generator for silent stretches in video"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	// Handle version flag
	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	// Validate input
	if len(cliArgs.Files) == 0 {
		cli.PrintError("No input files specified")
		ctx.PrintUsage(false)
		os.Exit(1)
	}

	// Merge configuration: defaults, then the TOML file, then flags
	cfg := config.Default()
	if cliArgs.Config != "" {
		loaded, err := config.Load(cliArgs.Config, cfg)
		if err != nil {
			cli.PrintError(err.Error())
			os.Exit(1)
		}
		cfg = loaded
	}
	applyFlags(&cfg, cliArgs)

	// A bad configuration is fatal before ffmpeg is ever invoked
	if err := cfg.Validate(); err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	eng, err := engine.Locate()
	if err != nil {
		cli.PrintError(err.Error())
		os.Exit(1)
	}

	// Create the Bubbletea UI model
	model := ui.NewModel(cliArgs.Files)

	// Start the TUI
	p := tea.NewProgram(model, tea.WithAltScreen())

	results := make([]*scrub.Result, len(cliArgs.Files))
	errors := make([]error, len(cliArgs.Files))

	// Start processing in background
	go func() {
		for i, inputPath := range cliArgs.Files {
			fileStartTime := time.Now()

			p.Send(ui.FileStartMsg{
				FileIndex: i,
				FileName:  inputPath,
			})

			progress := func(pass int, passName string, prog float64) {
				p.Send(ui.ProgressMsg{
					FileIndex: i,
					Pass:      pass,
					PassName:  passName,
					Progress:  prog,
				})
			}

			result, err := scrub.File(context.Background(), eng, cfg, inputPath, progress)
			if err != nil {
				errors[i] = err
				p.Send(ui.FileCompleteMsg{
					FileIndex: i,
					Error:     err,
				})
				continue
			}
			results[i] = result

			// Generate analysis report if --logs flag is set
			if cliArgs.Logs {
				reportData := logging.ReportData{
					StartTime: fileStartTime,
					EndTime:   time.Now(),
					Config:    cfg,
					Result:    result,
				}
				if err := logging.GenerateReport(reportData); err != nil {
					errors[i] = err
				}
			}

			p.Send(ui.FileCompleteMsg{
				FileIndex:     i,
				ScriptPath:    result.ScriptPath,
				MeasuredLUFS:  result.MeasuredLUFS,
				GainDB:        result.GainDB,
				SilenceCount:  len(result.Silences),
				InternalCount: result.Internal,
			})
		}

		// Signal all complete
		p.Send(ui.AllCompleteMsg{})
	}()

	// Run the program
	if _, err := p.Run(); err != nil {
		cli.PrintError(fmt.Sprintf("UI error: %v", err))
		os.Exit(1)
	}

	printSummary(results, errors)

	for _, err := range errors {
		if err != nil {
			os.Exit(1)
		}
	}
}

// applyFlags overlays the tuning flags that were actually given onto the
// configuration. Unset flags leave the file or default value alone.
func applyFlags(cfg *config.Scrub, cliArgs *CLI) {
	if cliArgs.MinSilence != nil {
		cfg.MinSilenceDuration = *cliArgs.MinSilence
	}
	if cliArgs.Margin != nil {
		cfg.Margin = *cliArgs.Margin
	}
	if cliArgs.Speedup != nil {
		cfg.SpeedupFactor = *cliArgs.Speedup
	}
	if cliArgs.Threshold != nil {
		cfg.SilenceThresholdDB = *cliArgs.Threshold
	}
	if cliArgs.Target != nil {
		cfg.TargetLoudnessDB = *cliArgs.Target
	}
}

// printSummary writes the per-file results table and the ffmpeg commands
// that apply the generated scripts. This runs after the TUI has exited so
// the output survives in the terminal scrollback.
func printSummary(results []*scrub.Result, errors []error) {
	rows := make([][]string, 0, len(results))
	for i, r := range results {
		if r == nil {
			if errors[i] != nil {
				cli.PrintError(errors[i].Error())
			}
			continue
		}
		rows = append(rows, []string{
			r.InputPath,
			formatDuration(r.Media.Duration),
			strconv.Itoa(len(r.Silences)),
			strconv.Itoa(r.Internal),
			fmt.Sprintf("%+.1f dB", r.GainDB),
			r.ScriptPath,
		})
	}
	if len(rows) > 0 {
		fmt.Println(cli.RenderSummaryTable(rows))
		fmt.Println("Apply with:")
		for _, r := range results {
			if r != nil {
				fmt.Printf("  %s\n", r.ApplyCommand())
			}
		}
	}
}

// formatDuration renders a media duration in seconds as m:ss or h:mm:ss.
func formatDuration(seconds float64) string {
	total := int(seconds)
	h := total / 3600
	m := (total % 3600) / 60
	s := total % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
