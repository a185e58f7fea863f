// Package dbtest starts a throwaway PostgreSQL container for tests.
package dbtest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/irsalhamdi/online-store/config"
	"github.com/irsalhamdi/online-store/database"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

// NewDatabase returns a migrated database running in a fresh container.
// The test is skipped when no Docker daemon is reachable.
func NewDatabase(t *testing.T, name string) *sqlx.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker unavailable: %v", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("docker unavailable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_PASSWORD=postgres",
			"POSTGRES_DB=" + name,
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("starting postgres container: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("purging postgres container: %v", err)
		}
	})
	_ = resource.Expire(300)

	cfg := config.DB{
		User:         "postgres",
		Password:     "postgres",
		Host:         resource.GetHostPort("5432/tcp"),
		Name:         name,
		DisableTLS:   true,
		MaxIdleConns: 2,
		MaxOpenConns: 10,
	}

	var db *sqlx.DB
	pool.MaxWait = time.Minute
	err = pool.Retry(func() error {
		var err error
		if db, err = database.Open(cfg); err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := database.StatusCheck(ctx, db); err != nil {
			db.Close()
			return err
		}
		return nil
	})
	if err != nil {
		t.Fatalf("waiting for postgres: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatal(fmt.Errorf("migrating: %w", err))
	}

	return db
}
