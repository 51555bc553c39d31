package keepalive

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/familyboard/familyboard/pkg/logger"
	"github.com/familyboard/familyboard/pkg/metrics"
	"github.com/spf13/afero"
)

var log = logger.Named("keepalive")

// Pinger issues one liveness request.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

// HTTPPinger GETs url and treats any status below 400 as alive.
func HTTPPinger(client *http.Client, url string) Pinger {
	if client == nil {
		client = http.DefaultClient
	}
	return PingerFunc(func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, resp.Body)
		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("GET %s: status %d", url, resp.StatusCode)
		}
		return nil
	})
}

// Job is one fixed-interval ping loop.
type Job struct {
	Name     string
	Interval time.Duration
	Pinger   Pinger
	// Heartbeat, when set, is a marker file written before the ping and
	// removed HeartbeatDelay later.
	Heartbeat      string
	HeartbeatDelay time.Duration
	// Timeout bounds a single ping; defaults to Interval.
	Timeout time.Duration
}

const (
	stateIdle int32 = iota
	statePinging
)

type runner struct {
	job   Job
	state atomic.Int32
}

// Prober owns the keep-alive loops of the process. It is started once after
// the HTTP listener is up and stopped during shutdown.
type Prober struct {
	fs      afero.Fs
	runners []*runner

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New returns a Prober for jobs. fs is used for heartbeat markers.
func New(fs afero.Fs, jobs ...Job) *Prober {
	p := &Prober{fs: fs}
	for _, j := range jobs {
		if j.Timeout <= 0 {
			j.Timeout = j.Interval
		}
		p.runners = append(p.runners, &runner{job: j})
	}
	return p
}

// Start launches one goroutine per job. Calling Start on a running Prober is a no-op.
func (p *Prober) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		return
	}
	ctx, p.cancel = context.WithCancel(ctx)
	for _, r := range p.runners {
		p.wg.Add(1)
		go p.loop(ctx, r)
		log.Infof("%s started (every %s)", r.job.Name, r.job.Interval)
	}
}

// Stop cancels all loops and waits for in-flight ticks to finish.
func (p *Prober) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	p.wg.Wait()
}

func (p *Prober) loop(ctx context.Context, r *runner) {
	defer p.wg.Done()
	t := time.NewTicker(r.job.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			// ticks are not queued behind a slow ping
			if r.state.Load() == statePinging {
				log.Debugf("%s: previous ping still running, skipping tick", r.job.Name)
				continue
			}
			p.wg.Add(1)
			go func() {
				defer p.wg.Done()
				p.tick(ctx, r)
			}()
		}
	}
}

// Tick runs a single round of the named job synchronously. It reports
// whether the ping succeeded.
func (p *Prober) Tick(ctx context.Context, name string) (bool, error) {
	for _, r := range p.runners {
		if r.job.Name == name {
			return p.tick(ctx, r), nil
		}
	}
	return false, fmt.Errorf("keepalive: unknown job %q", name)
}

func (p *Prober) tick(ctx context.Context, r *runner) bool {
	if !r.state.CompareAndSwap(stateIdle, statePinging) {
		return false
	}
	defer r.state.Store(stateIdle)

	if r.job.Heartbeat != "" {
		p.heartbeat(ctx, r.job)
	}

	pctx, cancel := context.WithTimeout(ctx, r.job.Timeout)
	defer cancel()
	start := time.Now()
	if err := r.job.Pinger.Ping(pctx); err != nil {
		metrics.KeepalivePings.WithLabelValues(r.job.Name, "error").Inc()
		log.Warnf("%s failed: %v", r.job.Name, err)
		return false
	}
	metrics.KeepalivePings.WithLabelValues(r.job.Name, "ok").Inc()
	log.Infof("%s ok in %s", r.job.Name, time.Since(start).Round(time.Millisecond))
	return true
}

func (p *Prober) heartbeat(ctx context.Context, j Job) {
	if err := p.fs.MkdirAll(filepath.Dir(j.Heartbeat), 0o755); err != nil {
		log.Warnf("%s: heartbeat dir: %v", j.Name, err)
		return
	}
	stamp := []byte(time.Now().UTC().Format(time.RFC3339Nano))
	if err := afero.WriteFile(p.fs, j.Heartbeat, stamp, 0o644); err != nil {
		log.Warnf("%s: write heartbeat: %v", j.Name, err)
		return
	}
	select {
	case <-ctx.Done():
	case <-time.After(j.HeartbeatDelay):
	}
	if err := p.fs.Remove(j.Heartbeat); err != nil {
		log.Warnf("%s: remove heartbeat: %v", j.Name, err)
	}
}
