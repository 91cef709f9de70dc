package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/corey/kokkai/internal/domain/cluster"
	"github.com/corey/kokkai/internal/ports"
)

// WatchCorpus clusters the corpus once, then again every time the watcher
// reports a change to it, until ctx is done. onRun receives every result,
// including failed runs; runs never overlap. The watcher is stopped on every
// return path.
func (a *App) WatchCorpus(ctx context.Context, path string, opts cluster.Options, w ports.Watcher, onRun func(*ports.ClusterRun, error)) (err error) {
	var mu sync.Mutex
	defer func() {
		stopErr := w.Stop()

		// Wait out a run that was already in flight.
		mu.Lock()
		mu.Unlock()
		if err == nil {
			err = stopErr
		}
	}()

	if err := opts.Validate(); err != nil {
		return err
	}

	rerun := func() {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}
		run, err := a.RunClusters(ctx, path, opts)
		if err != nil {
			a.log.Warn("cluster run failed", "corpus", path, "err", err)
		}
		onRun(run, err)
	}

	rerun()

	if err := w.Watch(path, func(changed string) {
		a.log.Debug("corpus changed", "file", changed)
		rerun()
	}); err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	<-ctx.Done()
	return nil
}
