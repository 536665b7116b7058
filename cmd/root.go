package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/solvewise/internal/config"
	"github.com/abhisek/solvewise/internal/logging"
	"github.com/abhisek/solvewise/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "solvewise",
	Short:         "Terminal chat client for the SolveWise tutor",
	Long:          "SolveWise is a terminal chat client for a tutoring API. Replies are shown as lessons, practice problems, numbered lists or plain text.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/solvewise/config.yaml)")
	pf.String("endpoint", "", "Tutor API root URL (overrides SOLVEWISE_ENDPOINT)")
	pf.String("topic", "", "Topic sent with every message")
	pf.String("session", "", "Session id sent with every message")
	pf.Bool("strict", false, "Reject replies that are not a lesson or practice problem")
	pf.String("db", "", "Path to SQLite database file (overrides SOLVEWISE_DB)")
	pf.String("log-file", "", "Write logs to this file")
	pf.String("log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(chatCmd, askCmd, classifyCmd, serveCmd, llmCmd, versionCmd, updateCmd)
}

// loadConfig resolves settings and applies any flags the user set on top.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	overrides := map[string]*string{
		"endpoint":  &cfg.Endpoint,
		"topic":     &cfg.Topic,
		"session":   &cfg.SessionID,
		"db":        &cfg.DBPath,
		"log-file":  &cfg.Log.File,
		"log-level": &cfg.Log.Level,
	}
	for name, dst := range overrides {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	if flags.Changed("strict") {
		cfg.Strict, _ = flags.GetBool("strict")
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the logger for a command. Interactive commands log only
// to the configured file; stderr is used when toStderr is set and no file
// is configured.
func newLogger(cfg config.Config, toStderr bool) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Level:    cfg.Log.Level,
		File:     cfg.Log.File,
		Stderr:   toStderr && cfg.Log.File == "",
		JSON:     cfg.Log.JSON,
		HashSalt: "solvewise",
	})
}

// resolveDBPath returns the --db/SOLVEWISE_DB/config path, falling back
// to the default XDG location.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
