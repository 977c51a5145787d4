package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kamer1337/quantum-storage-system/internal/tui"
	"github.com/kamer1337/quantum-storage-system/pkg/health"
	"github.com/kamer1337/quantum-storage-system/pkg/storage"
)

func newDashboardCmd() *cobra.Command {
	var (
		limitGB float64
		seed    int64
		demo    bool
	)

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Interactive capacity dashboard",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runDashboard(limitGB, seed, demo)
		},
	}
	cmd.Flags().Float64VarP(&limitGB, "limit", "l", defaultLimitGB, "physical space limit in GB")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time seeded)")
	cmd.Flags().BoolVar(&demo, "demo", false, "preload the stock demo file set")
	return cmd
}

func runDashboard(limitGB float64, seed int64, demo bool) error {
	if limitGB <= 0 {
		return fmt.Errorf("limit must be > 0")
	}

	src := storage.NewTimeSource()
	if seed != 0 {
		src = storage.NewSource(seed)
	}
	sys := storage.New(&storage.Config{
		PhysicalLimitGB: limitGB,
		Rand:            src,
	})
	if demo {
		for _, spec := range defaultFiles {
			if _, err := sys.Register(spec.Name, spec.SizeMB); err != nil {
				return fmt.Errorf("register %s: %w", spec.Name, err)
			}
		}
	}

	model := tui.NewModel(sys, health.NewMonitor(nil))
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}
