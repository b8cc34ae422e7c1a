//-------------------------------------------------------------------------
//
// pgEdge Warehouse Demo
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration
// +build integration

// Integration tests for the db package.
// Run with: go test -tags=integration ./internal/db/...
// Requires PostgreSQL to be available.
// Set PGWAREHOUSE_TEST_CONN environment variable to override connection string.

package db_test

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/pgedge-warehouse/internal/db"
	"github.com/pgEdge/pgedge-warehouse/internal/testutil"
)

func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	baseConnStr := testutil.SkipIfNoPostgres(t)
	testConnStr := testutil.CreateTestDB(t, baseConnStr)
	dbName := testutil.GetDBNameFromConnStr(testConnStr)

	cleanup := testutil.NewTestCleanup(t, baseConnStr, dbName)
	t.Cleanup(cleanup.Cleanup)

	pool := testutil.ConnectTestDB(t, testConnStr)
	cleanup.SetPool(pool)
	return pool
}

func TestConnect(t *testing.T) {
	baseConnStr := testutil.SkipIfNoPostgres(t)

	pool, err := db.Connect(context.Background(), baseConnStr)
	if err != nil {
		t.Fatalf("Connect failed: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		t.Errorf("Ping failed: %v", err)
	}
}

func TestConnectBadAddress(t *testing.T) {
	testutil.SkipIfNoPostgres(t)

	_, err := db.Connect(context.Background(), "postgres://nobody@127.0.0.1:1/nope")
	if err == nil {
		t.Error("Expected error for unreachable database")
	}
}

func TestSeedMetadataRoundTrip(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	info := db.SeedInfo{Customers: 5, Products: 5, Days: 90, Transactions: 200}
	if err := db.SaveSeedMetadata(ctx, pool, info); err != nil {
		t.Fatalf("SaveSeedMetadata failed: %v", err)
	}

	value, err := db.GetMetadataValue(ctx, pool, "transactions")
	if err != nil {
		t.Fatalf("GetMetadataValue failed: %v", err)
	}
	if value != "200" {
		t.Errorf("Expected transactions '200', got '%s'", value)
	}

	all, err := db.GetAllMetadata(ctx, pool)
	if err != nil {
		t.Fatalf("GetAllMetadata failed: %v", err)
	}
	for _, key := range []string{"version", "seeded_at", "customers", "products", "days", "transactions"} {
		if _, ok := all[key]; !ok {
			t.Errorf("Missing metadata key %s", key)
		}
	}

	// A second save overwrites, it does not duplicate
	info.Transactions = 500
	if err := db.SaveSeedMetadata(ctx, pool, info); err != nil {
		t.Fatalf("Second SaveSeedMetadata failed: %v", err)
	}
	value, err = db.GetMetadataValue(ctx, pool, "transactions")
	if err != nil {
		t.Fatalf("GetMetadataValue failed: %v", err)
	}
	if value != "500" {
		t.Errorf("Expected transactions '500' after reseed, got '%s'", value)
	}
}

func TestDropMetadata(t *testing.T) {
	pool := setupPool(t)
	ctx := context.Background()

	info := db.SeedInfo{Customers: 1, Products: 1, Days: 1, Transactions: 1}
	if err := db.SaveSeedMetadata(ctx, pool, info); err != nil {
		t.Fatalf("SaveSeedMetadata failed: %v", err)
	}

	if err := db.DropMetadata(ctx, pool); err != nil {
		t.Fatalf("DropMetadata failed: %v", err)
	}

	if _, err := db.GetMetadataValue(ctx, pool, "version"); err == nil {
		t.Error("Expected error reading metadata after drop")
	}

	// Dropping a missing table is harmless
	if err := db.DropMetadata(ctx, pool); err != nil {
		t.Fatalf("Second DropMetadata failed: %v", err)
	}
}
