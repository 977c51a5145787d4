// Package main provides the CLI entrypoint for qstorage.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/kamer1337/quantum-storage-system/internal/config"
)

const (
	defaultLimitGB = 5.0
	defaultPause   = 500 * time.Millisecond
	defaultOutput  = "table"
)

var (
	logLevel = new(slog.LevelVar)
	verbose  bool
)

type opts struct {
	// run shape
	limitGB float64
	seed    int64
	pause   time.Duration
	noWait  bool

	// outputs
	output    string
	noHeaders bool
	showPlot  bool
	csvPath   string
	jsonPath  string
	htmlPath  string

	configPath string
}

func main() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      logLevel,
		TimeFormat: "15:04:05",
	})))

	root := newRootCmd()
	if err := root.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var o opts

	root := &cobra.Command{
		Use:   "qstorage",
		Short: "Quantum storage capacity simulator",
		Long: `The qstorage tool simulates a storage system that advertises more
space than physically exists. It registers virtual files, estimates their
compressed physical footprint and evolves an oscillator model whose state
drives the advertised capacity multiplier.

All accounting is in memory; no bytes are stored anywhere.

Examples:
  qstorage --limit 10 --seed 42 --no-wait
  qstorage --csv out/ledger.csv --json out/report.json --html out/report.html
  qstorage dashboard --demo`,
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				logLevel.Set(slog.LevelDebug)
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDemo(cmd, o)
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.Flags().Float64VarP(&o.limitGB, "limit", "l", defaultLimitGB, "physical space limit in GB")
	root.Flags().Int64Var(&o.seed, "seed", 0, "random seed (0 = time seeded)")
	root.Flags().DurationVar(&o.pause, "pause", defaultPause, "pause between registrations (e.g. 1s, 500ms)")
	root.Flags().BoolVar(&o.noWait, "no-wait", false, "skip pauses and the start prompt")

	root.Flags().StringVarP(&o.output, "output", "o", defaultOutput, "output format (table, json, yaml)")
	root.Flags().BoolVar(&o.noHeaders, "no-headers", false, "omit table headers")
	root.Flags().BoolVar(&o.showPlot, "plot", false, "draw the multiplier trajectory chart")
	root.Flags().StringVar(&o.csvPath, "csv", "", "write the file ledger to CSV file")
	root.Flags().StringVar(&o.jsonPath, "json", "", "write the full run report to JSON file")
	root.Flags().StringVar(&o.htmlPath, "html", "", "write the full run report to HTML file")
	root.Flags().StringVar(&o.configPath, "config", config.DefaultConfigPath(), "path to TOML config")

	root.AddCommand(newDashboardCmd())
	root.AddCommand(newConfigCmd())

	return root
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# qstorage configuration
# Uncomment a value to enable it. CLI flags override config values.

[demo]
# physical-limit-gb = %.1f   # Physical space limit in GB
# seed = 42                  # Random seed (0 = time seeded)
# pause = "500ms"            # Pause between registrations
# no-wait = false            # Skip pauses and the start prompt
# output = %q            # Output format (table, json, yaml)

# Replace the stock file set:
# [[demo.files]]
# name = "dataset_1.txt"
# size-mb = 800
`,
		defaultLimitGB,
		defaultOutput,
	)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	d, err := time.ParseDuration(*value)
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", name, err)
	}
	*target = d
	return nil
}
