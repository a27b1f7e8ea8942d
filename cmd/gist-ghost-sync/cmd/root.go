package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/samw425-glitch/gist-ghost-sync/cmd/gist-ghost-sync/cmd/ingest"
	"github.com/samw425-glitch/gist-ghost-sync/cmd/gist-ghost-sync/cmd/start"
	"github.com/samw425-glitch/gist-ghost-sync/common/config"
)

var (
	logLevel   string
	logFormat  string
	configFile string
)

var RootCmd = &cobra.Command{
	Use:          "gist-ghost-sync",
	Short:        "Content catalog server and ingestion tool.",
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", "info", "set log level to debug, info, warn or error (case-insensitive)")
	RootCmd.PersistentFlags().StringVarP(&logFormat, "log-format", "f", "json", "set log format to json or text")
	RootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file, env vars take priority over it")
	RootCmd.DisableAutoGenTag = true

	cobra.OnInitialize(func() {
		setupLog(logLevel, logFormat)
		if configFile != "" {
			config.SetConfigFile(configFile)
		}
	})

	RootCmd.AddCommand(
		start.Cmd,
		ingest.Cmd,
		versionCmd,
	)
}

func setupLog(lvl, format string) {
	logLevel := slog.LevelInfo.Level()
	if len(lvl) > 0 {
		err := logLevel.UnmarshalText([]byte(lvl))
		// logLevel not changed if unmarshal failed
		if err != nil {
			fmt.Println("input invalid log level, use default log level INFO")
		}
	}
	opt := &slog.HandlerOptions{AddSource: false, Level: logLevel}
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, opt)
	default:
		handler = slog.NewTextHandler(os.Stdout, opt)
	}
	slog.SetDefault(slog.New(handler))
}
