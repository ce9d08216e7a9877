package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/specforge-ai/specforge/pkg/cache"
	"github.com/specforge-ai/specforge/pkg/config"
)

func TestBuildClientClosesCacheOnTrackerError(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Cache.Enabled = true
	cfg.Cache.Backend = cache.KindDisk
	cfg.Cache.Path = filepath.Join(dir, "cache.db")
	cfg.Tracking = true
	cfg.DBPath = dir // a directory: opening the tracker store fails

	if _, _, err := buildClient(cfg, "analyze", false); err == nil {
		t.Fatal("expected tracker open error")
	}

	// The disk backend released its handle, so a fresh one can use
	// the same file.
	b, err := cache.NewSQLite(cfg.Cache.Path, time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	if !b.Set("k", []byte("v")) {
		t.Fatal("set on reopened cache failed")
	}
}

func TestBuildClientNoCacheNoTracking(t *testing.T) {
	cfg := config.Default()
	cfg.Cache.Enabled = false
	cfg.Tracking = false

	client, cleanup, err := buildClient(cfg, "analyze", false)
	if err != nil {
		t.Fatal(err)
	}
	defer cleanup()
	if client == nil {
		t.Fatal("expected a client")
	}
}
