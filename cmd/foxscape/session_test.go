package main

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/foxscape/internal/core"
	"github.com/vovakirdan/foxscape/internal/storage"
)

func TestOpenBestStore(t *testing.T) {
	db, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer db.Close()

	tests := []struct {
		name    string
		store   string
		history *storage.Store
		wantDB  bool
	}{
		{"sqlite uses the database", storeSQLite, db, true},
		{"sqlite without database", storeSQLite, nil, false},
		{"memory", storeMemory, db, false},
		{"unknown kind", "redis", db, false},
	}

	old := flagStore
	defer func() { flagStore = old }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flagStore = tt.store
			s := &session{logger: log.New(io.Discard), history: tt.history}

			got := s.openBestStore()
			_, isDB := got.(*storage.Store)
			if isDB != tt.wantDB {
				t.Fatalf("openBestStore() = %T", got)
			}
			if !tt.wantDB {
				if _, ok := got.(*core.MemoryStore); !ok {
					t.Errorf("fallback = %T, want *core.MemoryStore", got)
				}
			}
		})
	}
}

func TestRuntimeConfig(t *testing.T) {
	oldFPS, oldSeed := flagFPS, flagSeed
	defer func() { flagFPS, flagSeed = oldFPS, oldSeed }()
	flagFPS, flagSeed = 30, 42

	best := core.NewMemoryStore()
	s := &session{best: best}
	cfg := s.runtimeConfig(120, 40)

	if cfg.ScreenW != 120 || cfg.ScreenH != 40 || cfg.TickRate != 30 || cfg.Seed != 42 {
		t.Errorf("runtimeConfig = %+v", cfg)
	}
	if cfg.Store != best {
		t.Error("runtimeConfig did not carry the best score store")
	}
}
