// Package redis keeps the debtor snapshot in Redis so every process serves the same list.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"farmdesk/internal/core/domain/model/ledger"

	goredis "github.com/redis/go-redis/v9"
)

const DefaultDebtorKey = "farmdesk:debtors"

type debtorJSON struct {
	CustomerID string `json:"customerId"`
	Name       string `json:"name"`
	Balance    int64  `json:"balance"`
}

// DebtorStore implements ports.DebtorSnapshotStore on one Redis key.
type DebtorStore struct {
	rdb goredis.Cmdable
	key string
	ttl time.Duration
}

// Connect dials addr and pings it once.
func Connect(ctx context.Context, addr string) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}

// NewDebtorStore stores the snapshot under key. A zero ttl keeps it until cleared.
func NewDebtorStore(rdb goredis.Cmdable, key string, ttl time.Duration) *DebtorStore {
	if key == "" {
		key = DefaultDebtorKey
	}
	return &DebtorStore{rdb: rdb, key: key, ttl: ttl}
}

// Load reads the shared snapshot. The bool is false when no snapshot is stored.
func (s *DebtorStore) Load(ctx context.Context) ([]ledger.Debtor, bool, error) {
	data, err := s.rdb.Get(ctx, s.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var rows []debtorJSON
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, false, fmt.Errorf("decode debtor snapshot: %w", err)
	}

	debtors := make([]ledger.Debtor, 0, len(rows))
	for _, r := range rows {
		debtors = append(debtors, ledger.Debtor{CustomerID: r.CustomerID, Name: r.Name, Balance: r.Balance})
	}
	return debtors, true, nil
}

// Save replaces the snapshot and resets its TTL.
func (s *DebtorStore) Save(ctx context.Context, debtors []ledger.Debtor) error {
	rows := make([]debtorJSON, 0, len(debtors))
	for _, d := range debtors {
		rows = append(rows, debtorJSON{CustomerID: d.CustomerID, Name: d.Name, Balance: d.Balance})
	}

	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, s.key, data, s.ttl).Err()
}

// Clear removes the snapshot so every process reloads from the ledger.
func (s *DebtorStore) Clear(ctx context.Context) error {
	return s.rdb.Del(ctx, s.key).Err()
}
