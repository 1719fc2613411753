package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"deepstore-server/internal/domain"
	"deepstore-server/internal/engine"
	"deepstore-server/internal/infrastructure/storage"
	"deepstore-server/internal/server"
	"deepstore-server/internal/systems"
	"deepstore-server/internal/version"
	"deepstore-server/pkg/logger"

	"github.com/spf13/cobra"
)

type rootFlags struct {
	port     int
	savePath string
	seed     int64
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	rootCmd := &cobra.Command{
		Use:           "deepstore",
		Short:         "Deepstore world server",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.Init()
		},
	}
	rootCmd.PersistentFlags().StringVar(&flags.savePath, "save", "", "path to the world database (overrides DS_SAVE_PATH)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the world simulation and the WebSocket console",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), flags)
		},
	}
	serveCmd.Flags().IntVar(&flags.port, "port", 0, "HTTP port (overrides DS_PORT)")
	serveCmd.Flags().Int64Var(&flags.seed, "seed", 0, "world seed, 0 for random (overrides DS_SEED)")

	unitsCmd := &cobra.Command{
		Use:   "units",
		Short: "List storage units in a saved world",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runUnits(cmd, flags)
		},
	}

	rootCmd.AddCommand(serveCmd, unitsCmd)

	// Без подкоманды работает serve
	rootCmd.RunE = serveCmd.RunE
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	return rootCmd
}

func loadConfig(flags rootFlags) (engine.Config, error) {
	cfg, err := engine.LoadConfig()
	if err != nil {
		return engine.Config{}, err
	}
	if flags.port != 0 {
		cfg.Port = flags.port
	}
	if flags.savePath != "" {
		cfg.SavePath = flags.savePath
	}
	if flags.seed != 0 {
		cfg.Seed = flags.seed
	}
	return cfg, nil
}

func runServe(parent context.Context, flags rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	log := logger.Component("main")
	log.Info("Starting Deepstore...")
	log.Info(version.String())
	log.WithField("seed", cfg.Seed).Info("World seed")

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(cfg.SavePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.WithError(err).Warn("Failed to close world store")
		}
	}()

	svc, err := engine.NewService(cfg, store)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}
	if err := svc.Load(ctx); err != nil {
		return err
	}

	engineErr := make(chan error, 1)
	go func() { engineErr <- svc.Run(ctx) }()

	srvErr := server.New(svc, cfg.Port).Run(ctx)
	if srvErr != nil {
		// Сервер упал сам: останавливаем движок, чтобы он сохранил мир
		stop()
	}
	if err := <-engineErr; err != nil {
		log.WithError(err).Error("Engine stopped with error")
		if srvErr == nil {
			return err
		}
	}

	log.Info("Server exited")
	return srvErr
}

func runUnits(cmd *cobra.Command, flags rootFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	store, err := storage.Open(cfg.SavePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	reg, err := engine.BuildCatalog()
	if err != nil {
		return err
	}

	units, err := store.LoadUnits(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(units) == 0 {
		fmt.Fprintln(out, "no storage units")
		return nil
	}
	for _, u := range units {
		fmt.Fprintf(out, "(%d, %d)\n", u.Pos.X, u.Pos.Y)
		stack := domain.NewUnitItem()
		stack.Tag = u.Snapshot
		lines := systems.Tooltip(stack, reg)
		if len(lines) == 0 {
			fmt.Fprintln(out, "  empty")
			continue
		}
		for _, line := range lines {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
	return nil
}
