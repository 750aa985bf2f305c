package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Swayamnakshane/amazonQ-note-app/api"
	"github.com/Swayamnakshane/amazonQ-note-app/config"
	"github.com/Swayamnakshane/amazonQ-note-app/model"
)

var (
	cfgPath   string
	serverURL string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "noteapp",
	Short: "Terminal notes manager backed by a remote collection service",
	Long: `noteapp lists, searches, creates, edits, auto-saves and deletes notes
against a notes collection service. Run without arguments to open the
client; run "noteapp serve" to start the collection service itself.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		slog.SetDefault(logger)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serverURL != "" {
			cfg.ServerURL = serverURL
		}

		client := api.NewClient(cfg.ServerURL)
		p := tea.NewProgram(model.InitialModel(client), tea.WithAltScreen())
		_, err = p.Run()
		return err
	},
}

func loadConfig() (config.Config, error) {
	path := cfgPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
	}
	return config.Load(path)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.noteapp.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.Flags().StringVar(&serverURL, "server", "", "collection service URL (overrides config)")
}
