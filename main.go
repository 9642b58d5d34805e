package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"genoscope/api/models"
	"genoscope/api/models/constants"
	ds "genoscope/api/models/constants/dataset"
	serviceInfo "genoscope/api/models/constants/service-info"
	"genoscope/api/repositories/flatfile"
	"genoscope/api/services"
	"genoscope/api/services/datasets"
	"genoscope/api/services/kegg"
	"genoscope/api/services/prs"
	"genoscope/api/services/sanitation"
	"genoscope/api/utils"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:   "genoscope",
		Short: "Variant browser, PRS calculator and KEGG pathway proxy",
		Long: `Genoscope serves the ClinVar and IBD risk variant datasets over HTTP.

Configuration comes from GENOSCOPE_* environment variables, optionally
layered over a yaml file named by GENOSCOPE_CONFIG_FILE.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}

	root.AddCommand(serve)
	root.AddCommand(newPrsCmd())

	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func datasetPaths(cfg *models.Config) map[constants.DatasetName]string {
	return map[constants.DatasetName]string{
		ds.Clinvar: cfg.Api.ClinvarPath,
		ds.Ibd:     cfg.Api.IbdPath,
	}
}

func runServe() error {
	// Gather configuration
	cfg, err := utils.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	logger.Info("using configuration",
		zap.String("service", string(serviceInfo.SERVICE_TYPE)),
		zap.Bool("debug", cfg.Debug),
		zap.String("port", cfg.Api.Port),
		zap.String("clinvarPath", cfg.Api.ClinvarPath),
		zap.String("ibdPath", cfg.Api.IbdPath),
		zap.String("usersPath", cfg.Api.UsersPath),
		zap.Float64("prsHighThreshold", cfg.Prs.HighThreshold),
		zap.Float64("prsModerateThreshold", cfg.Prs.ModerateThreshold),
		zap.String("keggUrl", cfg.Kegg.Url),
		zap.Bool("requireTokenForWrites", cfg.AuthX.RequireTokenForWrites))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Service Singletons
	store := datasets.NewStore(datasetPaths(cfg), logger)

	users, err := flatfile.NewCredentialRepository(cfg.Api.UsersPath)
	if err != nil {
		return err
	}
	az := services.NewAuthnService(cfg, users, logger)

	ss := sanitation.NewSanitationService(az, store, logger)
	ss.Init()
	defer ss.Close()

	e := newServer(dependencies{
		Config:        cfg,
		Logger:        logger,
		DatasetStore:  store,
		PrsCalculator: prs.NewCalculator(store, cfg.Prs.HighThreshold, cfg.Prs.ModerateThreshold),
		KeggGateway:   kegg.NewGateway(cfg, logger),
		AuthnService:  az,
	})

	// dataset routes wait on the store's barrier until this completes
	go func() {
		if err := store.Load(ctx); err != nil {
			logger.Fatal("loading datasets", zap.Error(err))
		}
		logger.Info("datasets loaded successfully")
	}()

	// Run
	go func() {
		if err := e.Start(":" + cfg.Api.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
