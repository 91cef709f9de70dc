package cmd

import (
	"errors"
	"fmt"

	"github.com/corey/kokkai/internal/adapters/bbolt"
	"github.com/corey/kokkai/internal/app"
)

// isDBLockError returns true if the error chain contains a bbolt lock timeout,
// i.e. another process holds .kokkai/kokkai.db.
func isDBLockError(err error) bool {
	return bbolt.IsLocked(err)
}

// diagnoseDBLock returns actionable guidance when a bbolt open fails due to
// lock contention. A long-running `kokkai watch` is the usual holder.
func diagnoseDBLock(dbPath string) string {
	return fmt.Sprintf("database %s is locked by another process\n"+
		"  → a `kokkai watch` may be running:  ps aux | grep 'kokkai watch'\n"+
		"  → stop it, or rerun with --no-save", dbPath)
}

// openApp builds the App for a command. With save unset no database is
// opened and runs are not persisted. The returned func releases the store.
func openApp(save bool) (*app.App, func(), error) {
	paths := app.NewPaths(projectRoot())
	if !save {
		return app.New(paths, cfg, nil), func() {}, nil
	}
	a, store, err := app.Open(paths, cfg)
	if err != nil {
		if isDBLockError(err) {
			return nil, nil, errors.New(diagnoseDBLock(paths.DB))
		}
		return nil, nil, err
	}
	return a, func() { store.Close() }, nil
}
