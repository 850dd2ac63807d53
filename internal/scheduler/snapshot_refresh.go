package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/Benjamin987Hustle/Progiciel/infrastructure/erpsim"
	"github.com/Benjamin987Hustle/Progiciel/internal/config"
)

// SnapshotRefreshService rafraîchit périodiquement le cache de vues:
// purge puis préchauffage des vues standard, pour que les moteurs
// travaillent toujours sur une photographie récente de la simulation
type SnapshotRefreshService struct {
	scheduler           *gocron.Scheduler
	cache               *erpsim.SnapshotCache
	config              config.SnapshotRefresh
	odata               config.OData
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewSnapshotRefreshService(cache *erpsim.SnapshotCache, cfg config.SnapshotRefresh, odata config.OData) *SnapshotRefreshService {
	logrus.WithFields(logrus.Fields{
		"interval_seconds": cfg.IntervalSeconds,
		"enabled":          cfg.Enabled,
	}).Info("Configuration du rafraîchissement des instantanés chargée")

	return &SnapshotRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		cache:     cache,
		config:    cfg,
		odata:     odata,
	}
}

// Start démarre le planificateur et l'arrête quand le contexte est annulé
func (s *SnapshotRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Rafraîchissement des instantanés désactivé par configuration")
		return nil
	}

	logrus.WithField("interval_seconds", s.config.IntervalSeconds).Info("Démarrage du planificateur de rafraîchissement des instantanés")

	_, err := s.scheduler.Every(s.config.IntervalSeconds).Seconds().Do(func() {
		s.refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("erreur lors de la planification du rafraîchissement des instantanés: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Arrêt du planificateur de rafraîchissement des instantanés")
		s.scheduler.Stop()
	}()

	return nil
}

// refresh purge le cache puis précharge les vues standard
func (s *SnapshotRefreshService) refresh(ctx context.Context) {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Rafraîchissement des instantanés déjà en cours, ignoré")
		return
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	startTime := time.Now()
	s.lastSyncStartedAt = startTime

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
	}()

	logrus.Info("Rafraîchissement des instantanés de la simulation")

	s.cache.Clear()
	s.cache.Warm(ctx, map[string]erpsim.FetchOptions{
		erpsim.ViewSales:             {Top: s.odata.LargeViewTop},
		erpsim.ViewMarket:            {Top: s.odata.LargeViewTop},
		erpsim.ViewPricingConditions: {Top: s.odata.SmallViewTop},
		erpsim.ViewInventory:         {Top: s.odata.LargeViewTop},
		erpsim.ViewValuation:         {Top: s.odata.SmallViewTop},
	})

	logrus.WithField("duration", time.Since(startTime).String()).Info("Rafraîchissement des instantanés terminé")
}
