// Package pgtest starts a throwaway PostgreSQL container with the schema
// migrated, for integration tests.
package pgtest

import (
	"context"
	"fmt"
	"time"

	postgresadapter "farmdesk/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Database is a migrated database inside a running container.
type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
	DSN       string
}

// Start runs postgres:15-alpine and applies every migration.
func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("start container: %w", err)
	}

	d := &Database{Container: container}

	d.DSN, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}

	d.DB, err = gorm.Open(postgresdriver.Open(d.DSN), &gorm.Config{})
	if err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}

	sqlDB, err := d.DB.DB()
	if err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}
	if err := postgresadapter.Migrate(ctx, sqlDB, "up"); err != nil {
		_ = d.Terminate(ctx)
		return nil, err
	}

	return d, nil
}

// Truncate empties every table and resets the ledger id sequence.
func (d *Database) Truncate(ctx context.Context) error {
	return d.DB.WithContext(ctx).
		Exec("TRUNCATE TABLE customer_ledger, fulfillment_entities, customers RESTART IDENTITY CASCADE").
		Error
}

// InsertCustomer adds a customer row with a zero balance.
func (d *Database) InsertCustomer(ctx context.Context, id, name string) error {
	return d.DB.WithContext(ctx).
		Exec("INSERT INTO customers (customer_id, name, current_balance, version) VALUES (?, ?, 0, 1)", id, name).
		Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if d.DB != nil {
		if sqlDB, err := d.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
