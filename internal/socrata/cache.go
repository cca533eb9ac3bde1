package socrata

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"inversiones/internal/core"
)

// Source is anything that can produce the full base table.
type Source interface {
	Fetch(ctx context.Context) ([]core.Record, error)
}

// Dataset is the once-per-session memo cell for the base table. The first
// Records call performs the fetch; every later call returns the identical
// cached slice, success or failure alike. The cell is never invalidated
// within a session; callers treat the table as immutable.
//
// Concurrent first calls collapse into one fetch via singleflight, so a
// burst of dashboard requests at startup still produces a single bulk query.
type Dataset struct {
	source Source

	group singleflight.Group
	mu    sync.Mutex
	done  bool
	table []core.Record
	err   error
}

func NewDataset(source Source) *Dataset {
	return &Dataset{source: source}
}

// Records returns the cached base table, fetching it on first use.
func (d *Dataset) Records(ctx context.Context) ([]core.Record, error) {
	d.mu.Lock()
	if d.done {
		table, err := d.table, d.err
		d.mu.Unlock()
		return table, err
	}
	d.mu.Unlock()

	// Key is constant: the bulk fetch has no varying inputs.
	result := <-d.group.DoChan("base-table", func() (interface{}, error) {
		records, err := d.source.Fetch(context.WithoutCancel(ctx))
		d.mu.Lock()
		d.done = true
		d.table = records
		d.err = err
		d.mu.Unlock()
		if err != nil {
			slog.Warn("Dataset fetch failed, caching empty result for this session",
				"component", "socrata", "error", err)
		}
		return records, err
	})
	if result.Err != nil {
		return nil, result.Err
	}
	return result.Val.([]core.Record), nil
}

// Loaded reports whether the fetch has completed, successfully or not.
func (d *Dataset) Loaded() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.done
}
