package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/LFroesch/burrow/internal/config"
	"github.com/LFroesch/burrow/internal/filemanager"
	"github.com/LFroesch/burrow/internal/logger"
)

var version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		showHidden bool
		dirSorting string
		useTrash   bool
	)

	cmd := &cobra.Command{
		Use:           "burrow [dir]",
		Short:         "A keyboard driven terminal file manager",
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Init(); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
			}
			defer logger.Close()

			cfg := config.Load()
			if cmd.Flags().Changed("hidden") {
				cfg.ShowHidden = showHidden
			}
			if cmd.Flags().Changed("dirs") {
				cfg.DirSorting = dirSorting
			}
			if cmd.Flags().Changed("trash") {
				cfg.UseTrash = useTrash
			}
			if len(args) > 0 {
				cfg.StartDir = args[0]
			}

			opts, err := optionsFromConfig(cfg)
			if err != nil {
				return err
			}
			fm, err := filemanager.New(opts)
			if err != nil {
				return err
			}

			logger.Info("starting in %s", fm.CurrentDir())
			p := tea.NewProgram(newController(fm), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("terminal: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&showHidden, "hidden", "a", false, "show hidden files")
	cmd.Flags().StringVarP(&dirSorting, "dirs", "d", config.DirSortingStart, "directory placement: unsorted, start or end")
	cmd.Flags().BoolVar(&useTrash, "trash", false, "move deleted files to the trash instead of removing them")
	return cmd
}

func optionsFromConfig(cfg *config.Config) (filemanager.Options, error) {
	sorting, err := filemanager.ParseDirSorting(cfg.DirSorting)
	if err != nil {
		return filemanager.Options{}, err
	}
	return filemanager.Options{
		StartDir:         cfg.StartDir,
		ShowHidden:       cfg.ShowHidden,
		DirSorting:       sorting,
		ErrorLogCapacity: cfg.ErrorLogCapacity,
		HidePatterns:     cfg.HidePatterns,
		UseTrash:         cfg.UseTrash,
	}, nil
}
