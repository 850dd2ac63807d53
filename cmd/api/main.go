package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Benjamin987Hustle/Progiciel/infrastructure/erpsim"
	"github.com/Benjamin987Hustle/Progiciel/internal/api"
	"github.com/Benjamin987Hustle/Progiciel/internal/config"
	"github.com/Benjamin987Hustle/Progiciel/internal/scheduler"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/analyzing"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/finance"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/marketing"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/portfolio"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/pricing"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Niveau de log piloté par la configuration
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Niveau de log invalide: %s, utilisation de 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Niveau de log configuré sur: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := erpsim.NewClient(cfg.OData)
	if err := client.TestConnection(ctx); err != nil {
		logrus.WithError(err).Warn("Flux OData injoignable au démarrage, les analyses dégraderont en résultats vides")
	} else {
		logrus.Info("Connexion au flux OData de la simulation établie")
	}

	cache := erpsim.NewSnapshotCache(client)

	analyzerService := analyzing.NewService(cache, cfg.OData)
	pricingService := pricing.NewService(cache, analyzerService, cfg.Pricing, cfg.OData)
	marketingService := marketing.NewService(cache, analyzerService, cfg.OData)
	financeService := finance.NewService(cache, analyzerService, cfg.Finance, cfg.OData)
	portfolioService := portfolio.NewService(analyzerService, cfg.Portfolio)

	snapshotRefreshService := scheduler.NewSnapshotRefreshService(cache, cfg.SnapshotRefresh, cfg.OData)
	if err := snapshotRefreshService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erreur au démarrage du planificateur de rafraîchissement des instantanés")
	} else {
		logrus.Info("Planificateur de rafraîchissement des instantanés démarré avec succès")
	}

	server, err := api.New(
		cfg,
		analyzerService,
		pricingService,
		marketingService,
		financeService,
		portfolioService,
		cache,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger fixe le format des logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}
