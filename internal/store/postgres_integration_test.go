// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package store_test

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/holomush/authcore/internal/store"
)

// setupMigratedDatabase starts a PostgreSQL container, applies the schema
// and returns a connected pool.
func setupMigratedDatabase() (*pgxpool.Pool, func(), error) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("authcore_test"),
		postgres.WithUsername("authcore"),
		postgres.WithPassword("authcore"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, nil, err
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	migrator, err := store.NewMigrator(connStr)
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}
	defer func() { _ = migrator.Close() }()
	if err := migrator.Up(); err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	pool, err := store.Connect(ctx, connStr, store.ConnectOptions{Retries: 3, Backoff: 100 * time.Millisecond})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, nil, err
	}

	cleanup := func() {
		pool.Close()
		_ = container.Terminate(ctx)
	}
	return pool, cleanup, nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

var _ = Describe("Schema", func() {
	var pool *pgxpool.Pool
	var cleanup func()
	ctx := context.Background()

	BeforeEach(func() {
		var err error
		pool, cleanup, err = setupMigratedDatabase()
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		cleanup()
	})

	It("assigns ids, timestamps and the active flag", func() {
		var id string
		var active bool
		err := pool.QueryRow(ctx,
			`INSERT INTO credentials (email, password_hash) VALUES ('a@b.com', 'h') RETURNING id, active`,
		).Scan(&id, &active)
		Expect(err).NotTo(HaveOccurred())
		Expect(id).To(HaveLen(36))
		Expect(active).To(BeTrue())
	})

	It("rejects a second credential with the same email", func() {
		_, err := pool.Exec(ctx, `INSERT INTO credentials (email, password_hash) VALUES ('a@b.com', 'h')`)
		Expect(err).NotTo(HaveOccurred())

		_, err = pool.Exec(ctx, `UPDATE credentials SET active = false`)
		Expect(err).NotTo(HaveOccurred())

		_, err = pool.Exec(ctx, `INSERT INTO credentials (email, password_hash) VALUES ('a@b.com', 'h2')`)
		Expect(pgCode(err)).To(Equal(pgerrcode.UniqueViolation))
	})

	It("requires sessions to reference an existing credential", func() {
		_, err := pool.Exec(ctx,
			`INSERT INTO sessions (credential_id, expires_at) VALUES (gen_random_uuid(), now() + interval '1 hour')`)
		Expect(pgCode(err)).To(Equal(pgerrcode.ForeignKeyViolation))
	})

	It("requires expiry after creation", func() {
		var credentialID string
		err := pool.QueryRow(ctx,
			`INSERT INTO credentials (email, password_hash) VALUES ('c@d.com', 'h') RETURNING id`,
		).Scan(&credentialID)
		Expect(err).NotTo(HaveOccurred())

		_, err = pool.Exec(ctx,
			`INSERT INTO sessions (credential_id, expires_at) VALUES ($1, now() - interval '1 second')`, credentialID)
		Expect(pgCode(err)).To(Equal(pgerrcode.CheckViolation))
	})
})
