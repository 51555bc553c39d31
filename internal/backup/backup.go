package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/familyboard/familyboard/internal/recipe"
	"github.com/familyboard/familyboard/internal/record"
	"github.com/familyboard/familyboard/internal/store"
	"github.com/familyboard/familyboard/internal/wish"
	"github.com/familyboard/familyboard/pkg/logger"
	"github.com/familyboard/familyboard/pkg/metrics"
	"github.com/spf13/afero"
)

const (
	filePrefix = "backup-"
	fileSuffix = ".json"
)

var log = logger.Named("backup")

// Snapshot is the on-disk backup format.
type Snapshot struct {
	Timestamp string          `json:"timestamp"`
	Recipes   []recipe.Recipe `json:"recipes"`
	Wishes    []wish.Wish     `json:"wishes"`
}

// Sink receives a copy of every snapshot written locally.
type Sink interface {
	Put(ctx context.Context, name string, data []byte) error
	Delete(ctx context.Context, name string) error
}

// Snapshotter writes rolling timestamped snapshots of both collections.
type Snapshotter struct {
	fs       afero.Fs
	dir      string
	keep     int
	interval time.Duration
	recipes  store.Collection[recipe.Recipe]
	wishes   store.Collection[wish.Wish]
	sink     Sink
	now      func() time.Time
}

// Option customizes a Snapshotter.
type Option func(*Snapshotter)

// WithSink uploads each snapshot to s as well.
func WithSink(s Sink) Option { return func(b *Snapshotter) { b.sink = s } }

// WithKeep retains only the newest n local snapshots (0 keeps all).
func WithKeep(n int) Option { return func(b *Snapshotter) { b.keep = n } }

// WithInterval sets the period of Run.
func WithInterval(d time.Duration) Option { return func(b *Snapshotter) { b.interval = d } }

// WithClock overrides the time source used for snapshot names.
func WithClock(now func() time.Time) Option { return func(b *Snapshotter) { b.now = now } }

func New(fs afero.Fs, dir string, recipes store.Collection[recipe.Recipe], wishes store.Collection[wish.Wish], opts ...Option) *Snapshotter {
	s := &Snapshotter{
		fs:       fs,
		dir:      dir,
		interval: 24 * time.Hour,
		recipes:  recipes,
		wishes:   wishes,
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// FileName returns the snapshot file name for t, e.g.
// backup-2026-10-14T12-00-00-000Z.json.
func FileName(t time.Time) string {
	ts := t.UTC().Format(record.CreatedAtLayout)
	ts = strings.NewReplacer(":", "-", ".", "-").Replace(ts)
	return filePrefix + ts + fileSuffix
}

// Snapshot writes one backup and returns its path.
func (s *Snapshotter) Snapshot(ctx context.Context) (string, error) {
	out, err := s.snapshot(ctx)
	if err != nil {
		metrics.Backups.WithLabelValues("error").Inc()
		return "", err
	}
	metrics.Backups.WithLabelValues("ok").Inc()
	return out, nil
}

func (s *Snapshotter) snapshot(ctx context.Context) (string, error) {
	recipes, err := s.recipes.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("read recipes: %w", err)
	}
	wishes, err := s.wishes.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("read wishes: %w", err)
	}

	now := s.now()
	snap := Snapshot{Timestamp: now.UTC().Format(record.CreatedAtLayout), Recipes: recipes, Wishes: wishes}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	name := FileName(now)
	path := filepath.Join(s.dir, name)
	if err := afero.WriteFile(s.fs, path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	if s.sink != nil {
		if err := s.sink.Put(ctx, name, data); err != nil {
			// the local copy is already on disk
			log.Warnf("upload %s: %v", name, err)
		}
	}
	if err := s.prune(ctx); err != nil {
		log.Warnf("prune: %v", err)
	}
	return path, nil
}

// List returns the local snapshot file names, oldest first.
func (s *Snapshotter) List() ([]string, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, fi := range infos {
		n := fi.Name()
		if !fi.IsDir() && strings.HasPrefix(n, filePrefix) && strings.HasSuffix(n, fileSuffix) {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *Snapshotter) prune(ctx context.Context) error {
	if s.keep <= 0 {
		return nil
	}
	names, err := s.List()
	if err != nil {
		return err
	}
	for len(names) > s.keep {
		old := names[0]
		names = names[1:]
		if err := s.fs.Remove(filepath.Join(s.dir, old)); err != nil {
			return fmt.Errorf("remove %s: %w", old, err)
		}
		if s.sink != nil {
			if err := s.sink.Delete(ctx, old); err != nil {
				log.Warnf("remove upload %s: %v", old, err)
			}
		}
	}
	return nil
}

// Run takes a snapshot immediately and then once per interval until ctx is
// cancelled. Failures are logged and never stop the loop.
func (s *Snapshotter) Run(ctx context.Context) {
	s.runOnce(ctx)
	t := time.NewTicker(s.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Snapshotter) runOnce(ctx context.Context) {
	path, err := s.Snapshot(ctx)
	if err != nil {
		log.Errorf("snapshot failed: %v", err)
		return
	}
	log.Infof("snapshot written: %s", path)
}

// Restore replaces both collections with the contents of the snapshot at path.
func Restore(ctx context.Context, fs afero.Fs, path string, recipes store.Collection[recipe.Recipe], wishes store.Collection[wish.Wish]) (*Snapshot, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	if err := recipes.Save(ctx, snap.Recipes); err != nil {
		return nil, err
	}
	if err := wishes.Save(ctx, snap.Wishes); err != nil {
		return nil, err
	}
	return &snap, nil
}
