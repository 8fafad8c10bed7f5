package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/ai"
	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/logger"
	"github.com/CJicey/Ai-Agent-through-Microsoft-Foundry/internal/web"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser chat UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings()
		if err != nil {
			return err
		}
		if err := s.Validate(); err != nil {
			return err
		}

		log := logger.New(s.LogFile, debug)
		defer func() { _ = log.Sync() }()

		client := ai.Acquire(ai.Config{
			Endpoint:   s.ProjectEndpoint,
			Deployment: s.ModelDeployment,
			APIKey:     s.APIKey,
			Timeout:    time.Duration(s.HTTPTimeoutSec) * time.Second,
		})

		srv := web.New(s, log, client)
		addr := serveAddr
		if addr == "" {
			addr = s.ListenAddr
		}
		log.Info("listening", zap.String("addr", addr))
		return srv.Listen(addr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from config, :8080)")
}
