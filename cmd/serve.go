package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/solvewise/internal/llm"
	"github.com/abhisek/solvewise/internal/server"
	"github.com/abhisek/solvewise/internal/store"
	"github.com/abhisek/solvewise/internal/tutor"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the development tutor API",
	Long: `Run a tutor API on --addr that answers POST /chat.

Replies come from the LLM provider selected by SOLVEWISE_LLM_PROVIDER, or
from a vendor key found in the environment. Without one, an offline tutor
answers arithmetic and "teach me" requests. Every model call is recorded in
the database and can be inspected with "solvewise llm".`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("addr") {
			cfg.Server.Addr, _ = cmd.Flags().GetString("addr")
		}
		if cmd.Flags().Changed("require-topic") {
			cfg.Server.RequireTopic, _ = cmd.Flags().GetBool("require-topic")
		}

		logger, err := newLogger(cfg, true)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmdContext(cmd), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		llmCfg := llm.ConfigFromEnv()
		provider, err := llm.NewProvider(ctx, llmCfg, st.EventRepo(), logger, tutor.Offline)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		svc := tutor.NewService(provider, tutor.Options{
			Timeout: llmCfg.Timeout,
			Logger:  logger,
		})
		srv := server.New(server.Options{
			Tutor:  svc,
			Config: cfg.Server,
			Logger: logger,
		})

		return srv.ListenAndServe(ctx, func(addr string) {
			logger.Info("tutor api listening",
				zap.String("addr", addr),
				zap.String("provider", llmCfg.Provider),
				zap.String("model", llmCfg.ModelName()),
				zap.String("db", dbPath),
			)
			printf(cmd, "SolveWise tutor listening on %s\n", addr)
		})
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (default :5000)")
	serveCmd.Flags().Bool("require-topic", false, "Reject messages that carry no topic")
}
