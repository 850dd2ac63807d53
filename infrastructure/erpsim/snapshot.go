package erpsim

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
)

// SnapshotCache est un cache en lecture seule des vues OData, indexé par
// nom logique de vue. L'invalidation appartient à l'appelant: Clear()
// vide tout, il n'y a pas d'expiration implicite.
type SnapshotCache struct {
	fetcher ViewFetcher

	mu    sync.RWMutex
	views map[string][]Record
}

// NewSnapshotCache enveloppe un ViewFetcher d'un cache par vue
func NewSnapshotCache(fetcher ViewFetcher) *SnapshotCache {
	return &SnapshotCache{
		fetcher: fetcher,
		views:   make(map[string][]Record),
	}
}

// FetchView sert la vue depuis le cache, ou la lit puis la retient.
// Une lecture en erreur n'est pas mise en cache: l'appel suivant réessaie.
func (c *SnapshotCache) FetchView(ctx context.Context, view string, opts FetchOptions) ([]Record, error) {
	c.mu.RLock()
	records, ok := c.views[view]
	c.mu.RUnlock()

	if ok {
		return records, nil
	}

	records, err := c.fetcher.FetchView(ctx, view, opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.views[view] = records
	c.mu.Unlock()

	return records, nil
}

// Clear vide le cache; les prochaines lectures repartent du flux
func (c *SnapshotCache) Clear() {
	c.mu.Lock()
	cleared := len(c.views)
	c.views = make(map[string][]Record)
	c.mu.Unlock()

	logrus.WithField("views", cleared).Debug("Cache de snapshots vidé")
}

// Warm précharge une liste de vues, en ignorant les échecs individuels
func (c *SnapshotCache) Warm(ctx context.Context, views map[string]FetchOptions) {
	for view, opts := range views {
		if _, err := c.FetchView(ctx, view, opts); err != nil {
			logrus.WithError(err).WithField("view", view).Warn("Préchargement de vue impossible")
		}
	}
}
