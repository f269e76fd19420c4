package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/logging"
	"github.com/BruksfildServices01/salon-scheduler/internal/reminder"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "salon-scheduler",
		Short: "Agenda de salão: disponibilidade, recorrência e status de agendamentos",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(remindCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// bootstrap carrega config e logger, e aplica o fuso padrão.
func bootstrap() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}

	logger := logging.New(cfg.LogLevel, cfg.Env)

	if !timezone.SetDefault(cfg.Timezone) {
		logger.Warn().Str("timezone", cfg.Timezone).Msg("invalid default timezone, keeping " + timezone.DefaultName())
	}

	return cfg, logger, nil
}

func serveCmd() *cobra.Command {
	var inMemory, seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Sobe a API HTTP e o agendador de lembretes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}
			return runServer(cfg, logger, inMemory, seed)
		},
	}

	cmd.Flags().BoolVar(&inMemory, "in-memory", false, "usa armazenamento em memória em vez do Postgres")
	cmd.Flags().BoolVar(&seed, "seed", false, "com --in-memory, cria dados de demonstração")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica o schema e a constraint de sobreposição",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}

			db, err := dbpkg.NewDB(cfg)
			if err != nil {
				return err
			}
			if err := dbpkg.Migrate(db); err != nil {
				return err
			}

			logger.Info().Msg("migrations applied")
			return nil
		},
	}
}

func remindCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remind",
		Short: "Executa uma vez o job de lembretes do dia seguinte",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := bootstrap()
			if err != nil {
				return err
			}

			a, err := newApp(cfg, logger, false)
			if err != nil {
				return err
			}
			defer a.Close()

			res, err := a.reminderJob().Run(cmd.Context(), time.Now())
			if err != nil {
				return err
			}

			logger.Info().Int("sent", res.Sent).Int("failed", res.Failed).Msg("reminder run finished")
			return nil
		},
	}
}

func runServer(cfg *config.Config, logger zerolog.Logger, inMemory, seed bool) error {
	a, err := newApp(cfg, logger, inMemory)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build application")
		return err
	}
	defer a.Close()

	if a.db != nil {
		if err := dbpkg.Migrate(a.db); err != nil {
			logger.Error().Err(err).Msg("failed to migrate")
			return err
		}
	}
	if inMemory && seed {
		a.seedDemo()
	}

	// Lembretes
	scheduler := cron.New()
	if _, err := reminder.Register(scheduler, cfg.ReminderCron, a.reminderJob()); err != nil {
		logger.Error().Err(err).Str("spec", cfg.ReminderCron).Msg("invalid reminder cron")
		return err
	}
	scheduler.Start()
	defer func() {
		<-scheduler.Stop().Done()
	}()

	// HTTP
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	routes.RegisterRoutes(r, a.routes())

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Addr()).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error().Err(err).Msg("server error")
		return err
	case <-quit:
	}

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}

	logger.Info().Msg("server stopped")
	return nil
}
