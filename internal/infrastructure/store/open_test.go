package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fastygo/tasks/domain"
	"github.com/fastygo/tasks/internal/config"
)

func TestOpenEmbeddedDrivers(t *testing.T) {
	for _, driver := range []string{config.DriverBolt, config.DriverJSONFile} {
		t.Run(driver, func(t *testing.T) {
			ctx := context.Background()
			path := filepath.Join(t.TempDir(), "store")
			cfg := &config.Config{Store: config.StoreConfig{Driver: driver, Path: path}}

			repo, closeFn, err := Open(ctx, cfg, nil)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			if _, err := os.Stat(path); err != nil {
				t.Errorf("backing file not created: %v", err)
			}

			task := domain.Task{ID: 1, Text: "Buy milk", Day: "Wed, May 04", Reminder: true}
			if err := repo.Create(ctx, &task); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if err := closeFn(ctx); err != nil {
				t.Fatalf("close: %v", err)
			}

			repo, closeFn, err = Open(ctx, cfg, nil)
			if err != nil {
				t.Fatalf("reopen: %v", err)
			}
			defer closeFn(ctx)
			if _, err := repo.GetByID(ctx, 1); err != nil {
				t.Errorf("task lost across reopen: %v", err)
			}
		})
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "sqlite"}}
	if _, _, err := Open(context.Background(), cfg, nil); err == nil {
		t.Fatal("expected error")
	}
}
