package main

import (
	"context"
	"fmt"

	"github.com/jonathan/briefly/internal/brief"
	"github.com/jonathan/briefly/internal/config"
	"github.com/jonathan/briefly/internal/gateway"
	"github.com/jonathan/briefly/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes registration, credit and brief generation endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "Port to listen on (overrides PORT and the config file)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}
	if err := applyLogLevel(cfg.LogLevel); err != nil {
		return err
	}

	srv, cleanup, err := newServer(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return srv.Start()
}

// newServer wires configuration, backends and identity into a server. The
// returned cleanup releases backend connections.
func newServer(ctx context.Context, cfg *config.AppConfig) (*server.Server, func(), error) {
	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create password config: %w", err)
	}

	b, err := openBackends(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	jwtService := server.NewJWTService(jwtConfig)
	ident, err := newIdentity(ctx, cfg, jwtService, b.Ledger, logger.Named("identity"))
	if err != nil {
		b.Close()
		return nil, nil, fmt.Errorf("failed to initialize identity provider: %w", err)
	}

	gw := gateway.New(ident, b.Ledger, brief.NewComposer(), b.Briefs,
		gateway.WithLogger(logger.Named("gateway")),
		gateway.WithCost(cfg.GenerationCost),
	)

	srv, err := server.New(server.Config{
		Port:               cfg.Port,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
		Credits: server.CreditPolicy{
			StartingCredits: cfg.StartingCredits,
			ReferralBonus:   cfg.ReferralBonus,
		},
	}, server.Deps{
		Gateway:  gw,
		Ledger:   b.Ledger,
		Briefs:   b.Briefs,
		Users:    b.Users,
		JWT:      jwtService,
		Identity: ident,
		Password: passwordConfig,
		Logger:   logger.Named("http"),
	})
	if err != nil {
		b.Close()
		return nil, nil, fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("server configured",
		zap.Int("port", cfg.Port),
		zap.String("identity", cfg.IdentityProvider),
		zap.Int64("generation_cost", cfg.GenerationCost),
	)

	return srv, func() {
		srv.Close()
		b.Close()
	}, nil
}
