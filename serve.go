package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Swayamnakshane/amazonQ-note-app/server"
	"github.com/Swayamnakshane/amazonQ-note-app/storage"
)

var (
	listenAddr string
	dataFile   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the notes collection service",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if listenAddr != "" {
			cfg.ListenAddr = listenAddr
		}
		if dataFile != "" {
			cfg.DataFile = dataFile
		}

		var store *storage.Store
		if cfg.DataFile != "" {
			store, err = storage.NewFileStore(cfg.DataFile)
			if err != nil {
				return err
			}
			slog.Info("persisting notes", "file", cfg.DataFile)
		} else {
			store = storage.NewStore()
			slog.Warn("no data file configured, notes are kept in memory only")
		}

		return server.New(store, slog.Default()).Run(cfg.ListenAddr)
	},
}

func init() {
	serveCmd.Flags().StringVar(&listenAddr, "addr", "", "listen address (overrides config)")
	serveCmd.Flags().StringVar(&dataFile, "data", "", "JSON file to persist notes to (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
