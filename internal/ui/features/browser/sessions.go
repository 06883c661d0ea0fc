package browser

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"

	"github.com/leapstack-labs/showcase/internal/ui/notifier"
	"github.com/leapstack-labs/showcase/pkg/showcase"
)

const (
	sessionName = "showcase"
	sessionKey  = "sid"
)

// viewer is the server side of one browser session.
type viewer struct {
	id       string
	session  *showcase.Session
	notifier *notifier.Notifier

	mu       sync.Mutex
	lastSeen time.Time
}

func (v *viewer) touch() {
	v.mu.Lock()
	v.lastSeen = time.Now()
	v.mu.Unlock()
}

func (v *viewer) idleSince() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.lastSeen
}

// Viewers maps cookie session ids to their showcase sessions.
type Viewers struct {
	mu      sync.Mutex
	byID    map[string]*viewer
	store   sessions.Store
	library *Library
	opts    showcase.Options
	baseCtx context.Context
	logger  *slog.Logger
}

// NewViewers creates an empty viewer table. baseCtx bounds every story load.
func NewViewers(baseCtx context.Context, store sessions.Store, library *Library, opts showcase.Options, logger *slog.Logger) *Viewers {
	return &Viewers{
		byID:    make(map[string]*viewer),
		store:   store,
		library: library,
		opts:    opts,
		baseCtx: baseCtx,
		logger:  logger,
	}
}

// get returns the caller's viewer. When create is set, a missing session is
// started and its cookie written; otherwise it returns nil.
func (vs *Viewers) get(w http.ResponseWriter, r *http.Request, create bool) (*viewer, error) {
	sess, err := vs.store.Get(r, sessionName)
	if err != nil && !create {
		return nil, err
	}

	id, _ := sess.Values[sessionKey].(string)
	if id != "" {
		vs.mu.Lock()
		v, ok := vs.byID[id]
		vs.mu.Unlock()
		if ok {
			v.touch()
			return v, nil
		}
	}
	if !create {
		return nil, nil
	}

	if id == "" {
		id = uuid.NewString()
		sess.Values[sessionKey] = id
		if err := sess.Save(r, w); err != nil {
			return nil, err
		}
	}
	return vs.start(id), nil
}

func (vs *Viewers) start(id string) *viewer {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	if v, ok := vs.byID[id]; ok {
		return v
	}

	reg, token := vs.library.Current()
	opts := vs.opts
	opts.Logger = vs.logger.With("session", id)

	v := &viewer{id: id, notifier: notifier.New(), lastSeen: time.Now()}
	v.session = showcase.NewSession(vs.baseCtx, showcase.New(reg, token, opts), v.notifier.Broadcast)
	vs.byID[id] = v
	vs.logger.Debug("viewer session started", "session", id)
	return v
}

// Prune drops viewers idle for longer than maxIdle that have no open stream.
func (vs *Viewers) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	vs.mu.Lock()
	defer vs.mu.Unlock()

	n := 0
	for id, v := range vs.byID {
		if v.notifier.Len() > 0 || v.idleSince().After(cutoff) {
			continue
		}
		v.notifier.Close()
		delete(vs.byID, id)
		n++
	}
	return n
}

// Len returns the number of live viewers.
func (vs *Viewers) Len() int {
	vs.mu.Lock()
	defer vs.mu.Unlock()
	return len(vs.byID)
}
