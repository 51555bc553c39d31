package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/familyboard/familyboard/handlers"
	"github.com/familyboard/familyboard/internal/backup"
	"github.com/familyboard/familyboard/internal/client"
	"github.com/familyboard/familyboard/internal/config"
	"github.com/familyboard/familyboard/internal/keepalive"
	recipeservice "github.com/familyboard/familyboard/internal/recipe/service"
	"github.com/familyboard/familyboard/internal/record"
	"github.com/familyboard/familyboard/internal/storage"
	wishservice "github.com/familyboard/familyboard/internal/wish/service"
	"github.com/familyboard/familyboard/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/spf13/afero"
)

// App is one running familyboard server: storage, HTTP router and the
// background jobs that live as long as the listener.
type App struct {
	cfg     *config.Config
	fs      afero.Fs
	storage *Storage
	router  *gin.Engine
	started time.Time
}

// New opens storage and builds the router. fs backs the file store, static
// files, heartbeat marker and local backups.
func New(ctx context.Context, cfg *config.Config, fs afero.Fs) (*App, error) {
	if cfg.Server.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	st, err := OpenStorage(ctx, cfg, fs)
	if err != nil {
		return nil, err
	}
	clock := record.NewClock(time.Local)
	a := &App{cfg: cfg, fs: fs, storage: st, started: time.Now()}
	a.router = NewRouter(RouterDeps{
		Recipes:   recipeservice.New(st.Recipes, clock),
		Wishes:    wishservice.New(st.Wishes, clock),
		Static:    handlers.StaticFs(fs, cfg.Server.StaticDir),
		Started:   a.started,
		RateLimit: cfg.RateLimit,
		Redis:     st.Redis,
	})
	return a, nil
}

// Handler returns the HTTP handler.
func (a *App) Handler() http.Handler { return a.router }

// Storage returns the opened collections.
func (a *App) Storage() *Storage { return a.storage }

// Close releases storage connections.
func (a *App) Close(ctx context.Context) { a.storage.Close(ctx) }

// Snapshotter returns the backup job. When MinIO is configured but
// unreachable, snapshots stay local.
func (a *App) Snapshotter(ctx context.Context) *backup.Snapshotter {
	opts := []backup.Option{
		backup.WithKeep(a.cfg.Backup.Keep),
		backup.WithInterval(a.cfg.Backup.Interval),
	}
	if a.cfg.MinIO.Configured() {
		sink, err := storage.NewMinIOStorage(ctx, a.cfg.MinIO)
		if err != nil {
			logger.Warnf("backup upload disabled: %v", err)
		} else {
			logger.Infof("backup uploads go to %s", sink)
			opts = append(opts, backup.WithSink(sink))
		}
	}
	return backup.New(a.fs, a.cfg.Backup.Dir, a.storage.Recipes, a.storage.Wishes, opts...)
}

// Prober returns the keep-alive jobs, or nil when keep-alive is disabled.
func (a *App) Prober() *keepalive.Prober {
	ka := a.cfg.KeepAlive
	if !ka.Enabled {
		return nil
	}
	self := client.New(ka.URL, nil)
	jobs := []keepalive.Job{{
		Name:     "self-ping",
		Interval: ka.Interval,
		Pinger: keepalive.PingerFunc(func(ctx context.Context) error {
			_, err := self.Ping(ctx)
			return err
		}),
		Heartbeat:      ka.HeartbeatFile,
		HeartbeatDelay: ka.HeartbeatDelay,
	}}
	if ka.WakeupURL != "" {
		jobs = append(jobs, keepalive.Job{
			Name:     "wakeup",
			Interval: ka.WakeupInterval,
			Pinger:   keepalive.HTTPPinger(&http.Client{Timeout: 30 * time.Second}, ka.WakeupURL),
		})
	}
	return keepalive.New(a.fs, jobs...)
}

// Run serves HTTP until ctx is cancelled, then shuts the server down
// gracefully and stops the background jobs.
func (a *App) Run(ctx context.Context) error {
	addr := net.JoinHostPort(a.cfg.Server.Host, a.cfg.Server.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      a.router,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("familyboard listening on %s (env=%s, storage=%s)", ln.Addr(), a.cfg.Server.Environment, a.cfg.Storage.Backend)
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	bg, cancel := context.WithCancel(ctx)
	defer cancel()
	var wg sync.WaitGroup
	if p := a.Prober(); p != nil {
		p.Start(bg)
		defer p.Stop()
	}
	if a.cfg.Backup.Enabled {
		snap := a.Snapshotter(bg)
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap.Run(bg)
		}()
	}

	select {
	case err, ok := <-errCh:
		cancel()
		wg.Wait()
		if !ok {
			return errors.New("http server stopped")
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Infof("shutting down")
	shCtx, shCancel := context.WithTimeout(context.Background(), a.cfg.Server.ShutdownTimeout)
	defer shCancel()
	err := srv.Shutdown(shCtx)
	cancel()
	wg.Wait()
	return err
}
