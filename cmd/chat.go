package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/solvewise/internal/app"
	"github.com/abhisek/solvewise/internal/config"
	"github.com/abhisek/solvewise/internal/conversation"
	"github.com/abhisek/solvewise/internal/tutorapi"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the chat screen (default command)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd)
	},
}

func runChat(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctrl := newController(cfg, logger, false)
	return app.Run(cmdContext(cmd), app.Options{Controller: ctrl, Logger: logger})
}

func newController(cfg config.Config, logger *zap.Logger, quiet bool) *conversation.Controller {
	policy := tutorapi.PolicyLenient
	if cfg.Strict {
		policy = tutorapi.PolicyStrict
	}
	client := tutorapi.New(cfg.Endpoint,
		tutorapi.WithPolicy(policy),
		tutorapi.WithLogger(logger),
	)
	return conversation.NewController(client, conversation.Options{
		SessionID: cfg.SessionID,
		Topic:     cfg.Topic,
		Logger:    logger,
		NoWelcome: quiet,
	})
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func printf(cmd *cobra.Command, format string, a ...any) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), format, a...)
}
