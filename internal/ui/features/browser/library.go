package browser

import (
	"log/slog"
	"sync"

	"github.com/leapstack-labs/showcase/internal/ui/notifier"
	"github.com/leapstack-labs/showcase/pkg/core"
	"github.com/leapstack-labs/showcase/pkg/showcase"
)

// LoadFunc builds a fresh registry, e.g. by rescanning the stories directory.
type LoadFunc func() (*core.Registry, error)

// Library holds the registry every viewer shares and its render token.
// Reload bumps the token and pings every viewer's SSE stream.
type Library struct {
	mu    sync.RWMutex
	reg   *core.Registry
	token showcase.RenderToken

	load     LoadFunc
	notifier *notifier.Notifier
	logger   *slog.Logger
}

// NewLibrary creates a library and performs the first load.
func NewLibrary(load LoadFunc, notify *notifier.Notifier, logger *slog.Logger) (*Library, error) {
	reg, err := load()
	if err != nil {
		return nil, err
	}
	return &Library{reg: reg, token: 1, load: load, notifier: notify, logger: logger}, nil
}

// Current returns the registry and token viewers should sync to.
func (l *Library) Current() (*core.Registry, showcase.RenderToken) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.reg, l.token
}

// Reload rebuilds the registry. On failure the previous registry is kept,
// the token still advances so open modules re-read their files.
func (l *Library) Reload() {
	reg, err := l.load()

	l.mu.Lock()
	if err != nil {
		l.logger.Error("reload failed, keeping previous stories", "error", err)
	} else {
		l.reg = reg
	}
	l.token++
	token, modules := l.token, l.reg.Len()
	l.mu.Unlock()

	l.logger.Debug("stories reloaded", "token", token, "modules", modules)
	l.notifier.Broadcast()
}

// Notifier returns the notifier pinged on reload.
func (l *Library) Notifier() *notifier.Notifier {
	return l.notifier
}
