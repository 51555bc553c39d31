package poller

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/familyboard/familyboard/internal/client"
	"github.com/familyboard/familyboard/internal/recipe"
	"github.com/familyboard/familyboard/internal/wish"
)

// API is the subset of the REST client the poller needs.
type API interface {
	Ping(ctx context.Context) error
	ListRecipes(ctx context.Context) ([]recipe.Recipe, error)
	ListWishes(ctx context.Context) ([]wish.Wish, error)
}

const (
	DefaultRecipesInterval = 30 * time.Second
	DefaultPingInterval    = 60 * time.Second
)

const (
	bannerOffline = "⚠ Сервер офлайн: данные могут быть устаревшими"
	bannerFetch   = "⚠ Не удалось загрузить данные с сервера"
)

// Poller periodically re-fetches the collections and renders them to a writer.
// A failed fetch raises a warning banner that stays on every render until the
// same kind of request succeeds again. Nothing is cached for replay.
type Poller struct {
	api             API
	out             io.Writer
	recipesInterval time.Duration
	pingInterval    time.Duration

	mu      sync.Mutex
	online  bool
	warning string
	recipes []recipe.Recipe
	wishes  []wish.Wish
}

func New(api API, out io.Writer, recipesInterval, pingInterval time.Duration) *Poller {
	if recipesInterval <= 0 {
		recipesInterval = DefaultRecipesInterval
	}
	if pingInterval <= 0 {
		pingInterval = DefaultPingInterval
	}
	return &Poller{api: api, out: out, recipesInterval: recipesInterval, pingInterval: pingInterval}
}

// Run renders once on start and then polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) error {
	p.CheckServer(ctx)
	p.RefreshRecipes(ctx)
	p.RefreshWishes(ctx)
	p.Render()

	recipesT := time.NewTicker(p.recipesInterval)
	defer recipesT.Stop()
	pingT := time.NewTicker(p.pingInterval)
	defer pingT.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-recipesT.C:
			p.RefreshRecipes(ctx)
			p.Render()
		case <-pingT.C:
			p.CheckServer(ctx)
			p.Render()
		}
	}
}

// CheckServer updates the online status from /api/ping.
func (p *Poller) CheckServer(ctx context.Context) {
	err := p.api.Ping(ctx)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.online = err == nil
	if err != nil {
		p.warning = bannerOffline
	} else if p.warning == bannerOffline {
		p.warning = ""
	}
}

func (p *Poller) RefreshRecipes(ctx context.Context) {
	list, err := p.api.ListRecipes(ctx)
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		if p.warning == "" {
			p.warning = bannerFetch
		}
		return
	}
	p.recipes = list
	if p.warning == bannerFetch {
		p.warning = ""
	}
}

func (p *Poller) RefreshWishes(ctx context.Context) {
	list, err := p.api.ListWishes(ctx)
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		if p.warning == "" {
			p.warning = bannerFetch
		}
		return
	}
	p.wishes = list
}

// Warning returns the current banner text, empty when none is shown.
func (p *Poller) Warning() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.warning
}

// Render writes the current view.
func (p *Poller) Render() {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	if p.online {
		b.WriteString("🟢 Сервер онлайн\n")
	} else {
		b.WriteString("🔴 Сервер офлайн\n")
	}
	if p.warning != "" {
		fmt.Fprintf(&b, "%s\n", p.warning)
	}

	fmt.Fprintf(&b, "\n== Рецепты (%d) ==\n", len(p.recipes))
	if len(p.recipes) == 0 {
		b.WriteString("Пока нет рецептов\n")
	}
	for _, r := range p.recipes {
		fmt.Fprintf(&b, "* %s (%s, %s)\n  Ингредиенты: %s\n  %s\n", r.Name, r.Author, r.Date, r.Ingredients, r.Instructions)
	}

	fmt.Fprintf(&b, "\n== Пожелания (%d) ==\n", len(p.wishes))
	if len(p.wishes) == 0 {
		b.WriteString("Пока нет пожеланий\n")
	}
	for _, w := range p.wishes {
		fmt.Fprintf(&b, "* %s: %s (%s)\n", w.Author, w.Text, w.Date)
	}
	b.WriteString("\n")

	_, _ = io.WriteString(p.out, b.String())
}

type clientAPI struct {
	*client.Client
}

func (c clientAPI) Ping(ctx context.Context) error {
	_, err := c.Client.Ping(ctx)
	return err
}

// ForClient adapts the REST client to API.
func ForClient(c *client.Client) API {
	return clientAPI{Client: c}
}
