// Package cache holds the debtor list between ledger changes.
package cache

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"farmdesk/internal/core/domain/model/ledger"
	"farmdesk/internal/core/ports"

	"golang.org/x/sync/singleflight"
)

const (
	debtorsKey = "debtors"

	// DefaultLoadTimeout bounds one shared reload.
	DefaultLoadTimeout = 30 * time.Second
)

// DebtorLoader reads the authoritative debtor list.
type DebtorLoader interface {
	Debtors(ctx context.Context) ([]ledger.Debtor, error)
}

// DebtorCache serves the debtor list from memory. A snapshot store, when
// given, lets several processes share one list. Invalidate drops both copies;
// the next read or the refresh job rebuilds them.
type DebtorCache struct {
	loader DebtorLoader
	store  ports.DebtorSnapshotStore
	logger *slog.Logger

	loadTimeout time.Duration

	mu         sync.RWMutex
	debtors    []ledger.Debtor
	valid      bool
	generation uint64

	group singleflight.Group
}

// NewDebtorCache accepts a nil store.
func NewDebtorCache(loader DebtorLoader, store ports.DebtorSnapshotStore, logger *slog.Logger) *DebtorCache {
	return &DebtorCache{
		loader: loader,
		store:  store,
		logger: logger.With("component", "DebtorCache"),

		loadTimeout: DefaultLoadTimeout,
	}
}

// WithLoadTimeout overrides DefaultLoadTimeout. Non-positive values are ignored.
func (c *DebtorCache) WithLoadTimeout(d time.Duration) *DebtorCache {
	if d > 0 {
		c.loadTimeout = d
	}
	return c
}

// Debtors returns the cached list, falling back to the snapshot store and
// then to the loader.
func (c *DebtorCache) Debtors(ctx context.Context) ([]ledger.Debtor, error) {
	c.mu.RLock()
	if c.valid {
		out := slices.Clone(c.debtors)
		c.mu.RUnlock()
		return out, nil
	}
	gen := c.generation
	c.mu.RUnlock()

	if c.store != nil {
		snapshot, ok, err := c.store.Load(ctx)
		if err != nil {
			c.logger.WarnContext(ctx, "snapshot load failed", "error", err)
		} else if ok {
			c.set(gen, snapshot)
			return slices.Clone(snapshot), nil
		}
	}

	return c.Refresh(ctx)
}

// Refresh reloads from the loader and stores the result. Concurrent callers
// share one load, which runs detached from any single caller: a caller that
// gives up returns its own context error while the load finishes for the rest.
func (c *DebtorCache) Refresh(ctx context.Context) ([]ledger.Debtor, error) {
	flight := context.WithoutCancel(ctx)
	ch := c.group.DoChan(debtorsKey, func() (any, error) {
		return c.load(flight)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]ledger.Debtor)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *DebtorCache) load(ctx context.Context) ([]ledger.Debtor, error) {
	ctx, cancel := context.WithTimeout(ctx, c.loadTimeout)
	defer cancel()

	c.mu.RLock()
	gen := c.generation
	c.mu.RUnlock()

	debtors, err := c.loader.Debtors(ctx)
	if err != nil {
		return nil, err
	}

	if c.set(gen, debtors) && c.store != nil {
		if err := c.store.Save(ctx, debtors); err != nil {
			c.logger.WarnContext(ctx, "snapshot save failed", "error", err)
		}
	}
	return debtors, nil
}

// Invalidate marks the list stale. A refresh that started before the call
// does not repopulate the cache.
func (c *DebtorCache) Invalidate(ctx context.Context) {
	c.mu.Lock()
	c.valid = false
	c.debtors = nil
	c.generation++
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.Clear(ctx); err != nil {
			c.logger.WarnContext(ctx, "snapshot clear failed", "error", err)
		}
	}
}

// set caches debtors unless an invalidation happened since gen was read.
func (c *DebtorCache) set(gen uint64, debtors []ledger.Debtor) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		return false
	}
	c.debtors = slices.Clone(debtors)
	c.valid = true
	return true
}
