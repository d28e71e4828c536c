package cli

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/docbridge/docbridge/cli/helpers"
	"github.com/docbridge/docbridge/engine/infra/server"
	"github.com/docbridge/docbridge/pkg/config"
	"github.com/docbridge/docbridge/pkg/logger"
)

// ServeCmd runs the gateway until interrupted.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the docbridge HTTP server",
		RunE:  handleServe,
	}

	cmd.Flags().String("host", "", "Host to bind the server to")
	cmd.Flags().Int("port", 0, "Port to run the server on")
	cmd.Flags().Bool("cors", false, "Enable CORS")
	cmd.Flags().Duration("timeout", 0, "Request timeout (env: SERVER_TIMEOUT)")
	cmd.Flags().String("mongo-url", "", "Default backend connection URI (env: MONGO_URL)")
	cmd.Flags().String("mongo-db", "", "Default database name (env: MONGO_DB)")

	return cmd
}

func handleServe(cmd *cobra.Command, _ []string) error {
	gin.SetMode(gin.ReleaseMode)
	ctx, err := setupServeContext(cmd)
	if err != nil {
		return err
	}
	cfg := config.FromContext(ctx)
	if err := helpers.EnsurePortAvailable(ctx, cfg.Server.Host, cfg.Server.Port); err != nil {
		return err
	}
	return server.NewServer(ctx).Run()
}

// setupServeContext loads the environment file, installs the process logger,
// and resolves the effective configuration into the command context.
func setupServeContext(cmd *cobra.Command) (context.Context, error) {
	if _, err := loadEnvFile(cmd); err != nil {
		return nil, err
	}
	logLevel, logJSON, logSource, err := logger.GetLoggerConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger.SetupLogger(logLevel, logJSON, logSource)
	ctx := logger.ContextWithLogger(cmd.Context(), logger.GetDefault())
	cfg, _, err := loadConfig(ctx, cmd)
	if err != nil {
		return nil, err
	}
	return config.ContextWithConfig(ctx, cfg), nil
}

// loadConfig resolves configuration from the YAML file and changed CLI flags.
// The service is returned so callers can inspect per-key sources.
func loadConfig(ctx context.Context, cmd *cobra.Command) (*config.Config, config.Service, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	sources := make([]config.Source, 0, 2)
	if configFile != "" {
		sources = append(sources, config.NewYAMLProvider(configFile))
	}
	cliFlags := make(map[string]any)
	extractCLIFlags(cmd.Flags(), cliFlags)
	sources = append(sources, config.NewCLIProvider(cliFlags))

	service := config.NewService()
	cfg, err := service.Load(ctx, sources...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, service, nil
}
