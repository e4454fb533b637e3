package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	clientcmd "github.com/rzbill/flexbuf/internal/cmd/client"
	serverrun "github.com/rzbill/flexbuf/internal/cmd/server"
	cfgpkg "github.com/rzbill/flexbuf/internal/config"
	logpkg "github.com/rzbill/flexbuf/pkg/log"
)

func main() {
	// Respect FLEXBUF_LOG_LEVEL for both CLI and server start output
	logger, err := logpkg.ApplyConfig(os.Getenv("FLEXBUF_LOG_LEVEL"), os.Getenv("FLEXBUF_LOG_FORMAT"))
	if err != nil {
		logger = logpkg.New(logpkg.WithLevel(logpkg.InfoLevel))
	}

	// Redirect standard library logs (used by Pebble) to our logger
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "flexbuf",
		Short: "flexbuf runtime CLI",
		Long:  "flexbuf is a single-binary circular line buffer service. This CLI manages the server and basic operations.",
	}

	// server start
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start flexbuf server (HTTP API)",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			httpAddr, _ := cmd.Flags().GetString("http")
			capacity, _ := cmd.Flags().GetInt("capacity")
			maxLines, _ := cmd.Flags().GetInt("max-lines")
			textAppend, _ := cmd.Flags().GetBool("text-append")
			archiveEnabled, _ := cmd.Flags().GetBool("archive")
			archiveDir, _ := cmd.Flags().GetString("archive-dir")
			fsyncMode, _ := cmd.Flags().GetString("fsync")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")

			cfg, err := cfgpkg.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			cfgpkg.FromEnv(&cfg)

			// Flags override file and environment when set.
			if cmd.Flags().Changed("http") {
				cfg.HTTP.Addr = httpAddr
			}
			if cmd.Flags().Changed("capacity") {
				cfg.Buffer.Capacity = capacity
			}
			if cmd.Flags().Changed("max-lines") {
				cfg.Buffer.MaxLines = maxLines
			}
			if cmd.Flags().Changed("text-append") {
				cfg.Buffer.TextAppend = textAppend
			}
			if cmd.Flags().Changed("archive") {
				cfg.Archive.Enabled = archiveEnabled
			}
			if cmd.Flags().Changed("archive-dir") {
				cfg.Archive.DataDir = archiveDir
			}
			if cmd.Flags().Changed("fsync") {
				cfg.Archive.Fsync = fsyncMode
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if logFormat != "" {
				cfg.Log.Format = logFormat
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if err := serverrun.Run(ctx, serverrun.Options{Config: cfg}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			// brief delay to allow logs flush
			time.Sleep(100 * time.Millisecond)
			return nil
		},
	}
	serverStartCmd.Flags().String("config", "", "Config file path (JSON)")
	serverStartCmd.Flags().String("http", "127.0.0.1:8080", "HTTP listen address")
	serverStartCmd.Flags().Int("capacity", 64<<10, "Buffer capacity in elements")
	serverStartCmd.Flags().Int("max-lines", 1024, "Maximum concurrently stored lines")
	serverStartCmd.Flags().Bool("text-append", false, "Coalesce terminators when appending text")
	serverStartCmd.Flags().Bool("archive", false, "Persist evicted lines to disk")
	serverStartCmd.Flags().String("archive-dir", "", "Archive directory (if not specified, uses OS-specific application data directory)")
	serverStartCmd.Flags().String("fsync", "always", "Archive fsync mode: always|interval|never")
	serverStartCmd.Flags().String("log-level", os.Getenv("FLEXBUF_LOG_LEVEL"), "Log level: debug|info|warn|error")
	serverStartCmd.Flags().String("log-format", os.Getenv("FLEXBUF_LOG_FORMAT"), "Log format: text|json (default text)")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	// client commands
	rootCmd.AddCommand(clientcmd.NewLineCommand(apiURL))
	rootCmd.AddCommand(clientcmd.NewArchiveCommand(apiURL))
	rootCmd.AddCommand(clientcmd.NewStatsCommand(apiURL))
	rootCmd.AddCommand(clientcmd.NewSnapshotCommand(apiURL))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func apiURL() string {
	if v := os.Getenv("FLEXBUF_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}
