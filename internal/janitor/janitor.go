// Package janitor removes staged uploads left behind by interrupted requests.
package janitor

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/robfig/cron/v3"
)

type Janitor struct {
	dir    string
	maxAge time.Duration
	logger *slog.Logger
	now    func() time.Time
	cron   *cron.Cron
}

func New(dir string, maxAge time.Duration, logger *slog.Logger) *Janitor {
	return &Janitor{
		dir:    dir,
		maxAge: maxAge,
		logger: logger,
		now:    time.Now,
	}
}

// Sweep deletes regular files in the upload dir older than maxAge and
// returns how many were removed. A missing dir is not an error.
func (j *Janitor) Sweep() (int, error) {
	entries, err := os.ReadDir(j.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read upload dir: %w", err)
	}

	cutoff := j.now().Add(-j.maxAge)
	removed := 0
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		path := filepath.Join(j.dir, entry.Name())
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			j.logger.Warn("Failed to remove stale upload", "path", path, "error", err)
			continue
		}
		removed++
	}
	return removed, nil
}

// Start runs Sweep on the cron schedule until Stop is called.
func (j *Janitor) Start(schedule string) error {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		n, err := j.Sweep()
		if err != nil {
			j.logger.Error("Upload sweep failed", "error", err)
			return
		}
		if n > 0 {
			j.logger.Info("Removed stale uploads", "count", n, "dir", j.dir)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid janitor schedule %q: %w", schedule, err)
	}
	j.cron = c
	c.Start()
	return nil
}

// Stop waits for a running sweep to finish or ctx to expire.
func (j *Janitor) Stop(ctx context.Context) {
	if j.cron == nil {
		return
	}
	select {
	case <-j.cron.Stop().Done():
	case <-ctx.Done():
	}
}
