package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"

	"github.com/Benjamin987Hustle/Progiciel/infrastructure/erpsim"
	"github.com/Benjamin987Hustle/Progiciel/internal/api/handler"
	"github.com/Benjamin987Hustle/Progiciel/internal/api/handler/router"
	"github.com/Benjamin987Hustle/Progiciel/internal/config"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/analyzing"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/finance"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/marketing"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/portfolio"
	"github.com/Benjamin987Hustle/Progiciel/internal/usecases/pricing"
	"github.com/Benjamin987Hustle/Progiciel/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	analyzerService analyzing.Analyzer,
	pricingService pricing.Recommender,
	marketingService marketing.Strategist,
	financeService finance.Advisor,
	portfolioService portfolio.Classifier,
	cache *erpsim.SnapshotCache,
) (*Server, error) {
	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Analysis(analyzerService)...),
		router.WithRoutes(handler.Pricing(pricingService)...),
		router.WithRoutes(handler.Marketing(marketingService)...),
		router.WithRoutes(handler.Finance(financeService)...),
		router.WithRoutes(handler.Portfolio(portfolioService)...),
		router.WithRoutes(handler.Snapshots(cache)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(),
	}

	chain := alice.New(middlewares...).Then(rt)

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           chain,
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Serveur en cours de démarrage")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erreur pendant l'exécution du serveur")
		}
	}()

	// Canal d'attente des signaux de terminaison
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	// Attendre le signal ou l'annulation du contexte
	select {
	case <-done:
		logrus.Info("Signal d'interruption reçu")
	case <-ctx.Done():
		logrus.Info("Contexte de l'application annulé")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": "15s",
	}).Info("Démarrage de l'arrêt gracieux du serveur")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erreur pendant l'arrêt du serveur")
		return err
	}

	logrus.Info("Serveur arrêté avec succès")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if err != nil {
		return err
	}

	logrus.Info("Serveur HTTP arrêté avec succès")
	return nil
}
