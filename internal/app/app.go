// Package app wires together adapters and domain logic for the kokkai CLI:
// load a corpus, cluster it, persist and report the run.
package app

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/corey/kokkai/internal/adapters/bbolt"
	"github.com/corey/kokkai/internal/config"
	"github.com/corey/kokkai/internal/logger"
	"github.com/corey/kokkai/internal/ports"
)

// App is the top-level container wiring all components together.
type App struct {
	Paths  *Paths
	Config *config.Config
	Store  ports.Storage // nil = runs are not persisted

	log *slog.Logger
	now func() time.Time
}

// New creates an App over an already opened store (which may be nil).
func New(paths *Paths, cfg *config.Config, store ports.Storage) *App {
	return &App{
		Paths:  paths,
		Config: cfg,
		Store:  store,
		log:    logger.WithComponent("app"),
		now:    time.Now,
	}
}

// Open ensures the .kokkai layout exists and opens the bbolt store.
// The caller must Close the returned store.
func Open(paths *Paths, cfg *config.Config) (*App, *bbolt.Store, error) {
	if err := paths.EnsureDirs(); err != nil {
		return nil, nil, fmt.Errorf("create .kokkai dirs: %w", err)
	}
	store, err := bbolt.NewStore(paths.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return New(paths, cfg, store), store, nil
}

// CorpusID derives the storage namespace of a corpus from its file name:
// "data/budget-2022.jsonl" -> "budget-2022".
func CorpusID(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
