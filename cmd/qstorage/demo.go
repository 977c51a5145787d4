package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kamer1337/quantum-storage-system/internal/config"
	"github.com/kamer1337/quantum-storage-system/internal/plot"
	"github.com/kamer1337/quantum-storage-system/pkg/health"
	"github.com/kamer1337/quantum-storage-system/pkg/report"
	"github.com/kamer1337/quantum-storage-system/pkg/storage"
)

// defaultFiles is the stock demo set. A [demo.files] block in the config
// replaces it wholesale.
var defaultFiles = []config.FileSpec{
	{Name: "dataset_1.txt", SizeMB: 800},
	{Name: "backup_archive.zip", SizeMB: 1200},
	{Name: "media_collection.dat", SizeMB: 2000},
	{Name: "ml_training_data.json", SizeMB: 1500},
	{Name: "quantum_research.log", SizeMB: 800},
}

func runDemo(cmd *cobra.Command, o opts) error {
	fileCfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFloatConfig(cmd, "limit", &o.limitGB, fileCfg.Demo.PhysicalLimitGB)
	applyInt64Config(cmd, "seed", &o.seed, fileCfg.Demo.Seed)
	applyBoolConfig(cmd, "no-wait", &o.noWait, fileCfg.Demo.NoWait)
	applyStringConfig(cmd, "output", &o.output, fileCfg.Demo.Output)
	if err := applyDurationConfig(cmd, "pause", &o.pause, fileCfg.Demo.Pause); err != nil {
		return err
	}
	slog.Debug("config merged", "path", o.configPath, "limit_gb", o.limitGB, "seed", o.seed)

	format, err := report.ParseFormat(o.output)
	if err != nil {
		return err
	}
	if o.limitGB <= 0 {
		return fmt.Errorf("limit must be > 0")
	}
	if o.pause < 0 {
		return fmt.Errorf("pause must be >= 0")
	}

	files := defaultFiles
	if len(fileCfg.Demo.Files) > 0 {
		files = fileCfg.Demo.Files
	}

	src := storage.NewTimeSource()
	if o.seed != 0 {
		src = storage.NewSource(o.seed)
	}
	sys := storage.New(&storage.Config{
		PhysicalLimitGB: o.limitGB,
		Rand:            src,
	})
	monitor := health.NewMonitor(nil)
	renderer := &report.Renderer{Format: format, NoHeaders: o.noHeaders}

	fmt.Printf(_console, o.limitGB, len(files), time.Now().Format("2006-01-02 15:04:05"))

	if !o.noWait && term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Print("Press Enter to start the demonstration...")
		_, _ = bufio.NewReader(os.Stdin).ReadString('\n')
		fmt.Println()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("Initial status:")
	if err := printStatus(renderer, sys); err != nil {
		return err
	}

	multipliers := []float64{sys.Multiplier()}

	for i, spec := range files {
		f, err := sys.Register(spec.Name, spec.SizeMB)
		if err != nil {
			return fmt.Errorf("register %s: %w", spec.Name, err)
		}
		st := sys.Status()
		multipliers = append(multipliers, st.Multiplier)

		fmt.Printf("[%d/%d] %s\n", i+1, len(files), f.Name)
		fmt.Printf("  %s stored in %s (%.0f%% compressed)\n",
			f.VirtualSize.Humanized(), f.PhysicalSize.Humanized(), f.CompressionRatio*100)
		fmt.Printf("  multiplier x%.2f, virtual space available %.2f GB\n",
			st.Multiplier, st.VirtualCapacityGB-st.UsedVirtualGB)
		fmt.Println()

		if i < len(files)-1 {
			if err := pause(ctx, o.pause, o.noWait); err != nil {
				slog.Info("interrupted")
				break
			}
		}
	}

	fmt.Println("Final status:")
	if err := printStatus(renderer, sys); err != nil {
		return err
	}

	fmt.Println("File ledger:")
	if err := printLedger(renderer, sys); err != nil {
		return err
	}

	printResults(sys)

	fmt.Println("Analytics:")
	if err := printAnalytics(renderer, sys); err != nil {
		return err
	}

	printHealth(monitor, sys)

	if o.showPlot && len(multipliers) > 1 {
		width := plot.WidthFor(plot.TerminalWidth())
		if err := plot.Line(os.Stdout, "Multiplier trajectory", multipliers, width, 8); err != nil {
			slog.Warn("plot failed", "err", err)
		}
		fmt.Println()
	}

	fmt.Println("Active optimizations:")
	for _, opt := range sys.Optimizations() {
		fmt.Printf("- %s\n", opt)
	}
	fmt.Println()

	writeExports(o, sys, monitor, multipliers)

	fmt.Print(_closing)
	return nil
}

// pause sleeps between registrations unless skipped. A canceled context
// cuts the run short.
func pause(ctx context.Context, d time.Duration, skip bool) error {
	if skip || d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

func printStatus(renderer *report.Renderer, sys *storage.System) error {
	out, err := renderer.RenderStatus(sys.Status())
	if err != nil {
		return err
	}
	fmt.Print(out)
	fmt.Println()
	return nil
}

func printLedger(renderer *report.Renderer, sys *storage.System) error {
	out, err := renderer.RenderFiles(sys.Files())
	if err != nil {
		return err
	}
	fmt.Print(out)
	fmt.Println()
	return nil
}

func printAnalytics(renderer *report.Renderer, sys *storage.System) error {
	a, err := sys.Analytics()
	if err != nil {
		return err
	}
	out, err := renderer.RenderAnalytics(a)
	if err != nil {
		return err
	}
	fmt.Print(out)
	fmt.Println()
	return nil
}

func printResults(sys *storage.System) {
	st := sys.Status()
	fmt.Println("Demonstration results:")
	fmt.Printf("- virtual stored:  %s\n", sys.UsedVirtual().Humanized())
	fmt.Printf("- physical used:   %s\n", sys.UsedPhysical().Humanized())
	fmt.Printf("- multiplication:  x%.2f\n", st.Efficiency)
	fmt.Printf("- files tracked:   %d\n", st.FileCount)
	fmt.Println()
}

func printHealth(monitor *health.Monitor, sys *storage.System) {
	rep := monitor.Evaluate(sys.Status())
	fmt.Printf("Health: %s\n", rep.Overall)
	fmt.Println()
	for _, a := range rep.Alerts {
		slog.Warn(a.Message, "component", a.Component, "severity", a.Severity)
	}
}

func writeExports(o opts, sys *storage.System, monitor *health.Monitor, multipliers []float64) {
	if o.csvPath == "" && o.jsonPath == "" && o.htmlPath == "" {
		return
	}
	rep := buildRunReport(sys, monitor, multipliers)

	if o.csvPath != "" {
		if err := writeReportFile(o.csvPath, func(w io.Writer) error {
			return report.WriteLedgerCSV(w, rep.Files)
		}); err != nil {
			slog.Warn("write csv", "err", err)
		} else {
			slog.Info("wrote ledger", "path", o.csvPath)
		}
	}
	if o.jsonPath != "" {
		if err := writeReportFile(o.jsonPath, func(w io.Writer) error {
			return report.WriteJSON(w, rep)
		}); err != nil {
			slog.Warn("write json", "err", err)
		} else {
			slog.Info("wrote report", "path", o.jsonPath)
		}
	}
	if o.htmlPath != "" {
		if err := writeReportFile(o.htmlPath, func(w io.Writer) error {
			return report.WriteHTML(w, rep)
		}); err != nil {
			slog.Warn("write html", "err", err)
		} else {
			slog.Info("wrote report", "path", o.htmlPath)
		}
	}
}

func writeReportFile(path string, write func(io.Writer) error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func buildRunReport(sys *storage.System, monitor *health.Monitor, multipliers []float64) report.RunReport {
	st := sys.Status()
	a, _ := sys.Analytics()
	return report.RunReport{
		GeneratedAt:   sys.Now(),
		Status:        st,
		Analytics:     a,
		Health:        monitor.Evaluate(st),
		Files:         sys.Files(),
		Optimizations: sys.Optimizations(),
		Multipliers:   multipliers,
	}
}

const _console = `Quantum Storage System - Capacity Accounting Simulator

The system advertises more space than physically exists. Virtual files
are compressed and entangled, and an oscillator model multiplies the
advertised capacity. The accounting below tracks what a real backend
would have to store; no bytes exist anywhere.

       Physical limit: %.2f GB
       Demo files: %d

Quantum storage run as of %s:

`

const _closing = `The simulation demonstrated:
- compression aware physical footprint estimation
- oscillator driven capacity multiplication
- ledger analytics with forward predictions
- health grading of the capacity accounting

All figures are claims of the model, not measurements.
`
