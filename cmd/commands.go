package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/appdotbuilder/food-catalog/config"
	"github.com/appdotbuilder/food-catalog/routes"
	"github.com/appdotbuilder/food-catalog/services"
)

func newRootCommand() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:          "food-catalog",
		Short:        "Food catalog HTTP service",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "log format (text, json)")
	_ = v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))
	_ = v.BindPFlag("log_format", root.PersistentFlags().Lookup("log-format"))

	root.AddCommand(newServeCommand(v), newMigrateCommand(v))
	return root
}

// setup loads configuration and opens the database shared by every subcommand.
func setup(v *viper.Viper) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}
	log := config.NewLogger(cfg)
	slog.SetDefault(log)

	if _, err := config.InitDB(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func newServeCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(v)
			if err != nil {
				return err
			}
			if v.GetBool("auto_migrate") {
				if err := config.Migrate(config.DB); err != nil {
					return err
				}
			}
			gin.SetMode(cfg.GinMode)

			srv := &http.Server{
				Addr:              ":" + cfg.Port,
				Handler:           routes.SetupRouter(routes.Deps{DB: config.DB, Config: cfg, Log: log}),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening", "addr", srv.Addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("http server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("port", "", "listen port (default 8080)")
	cmd.Flags().Bool("auto-migrate", false, "run schema migration before serving")
	_ = v.BindPFlag("port", cmd.Flags().Lookup("port"))
	_ = v.BindPFlag("auto_migrate", cmd.Flags().Lookup("auto-migrate"))
	return cmd
}

func newMigrateCommand(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and upsert the bootstrap admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup(v)
			if err != nil {
				return err
			}
			if err := config.Migrate(config.DB); err != nil {
				return err
			}
			log.Info("schema migrated")

			if cfg.AdminEmail == "" {
				log.Warn("ADMIN_EMAIL not set, skipping admin bootstrap")
				return nil
			}
			auth := services.NewAuthService(config.DB, cfg.JWTSecret, cfg.JWTTTL, log)
			_, err = auth.EnsureAdmin(cmd.Context(), cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName)
			return err
		},
	}
}
