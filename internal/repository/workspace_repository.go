package repository

import (
	"sync"
	"time"

	"github.com/fadilmartias/cv-dashboard/internal/session"
	"github.com/sirupsen/logrus"
)

type WorkspaceRepositoryInterface interface {
	Attach(sess session.Session, now time.Time) (*Workspace, bool)
	Find(token string) (*Workspace, bool)
	Drop(token string) bool
	Sweep(now time.Time) int
	Len() int
}

// WorkspaceRepository keeps one workspace per session token in memory.
type WorkspaceRepository struct {
	mu      sync.RWMutex
	items   map[string]*Workspace
	idleTTL time.Duration
	log     *logrus.Logger
}

func NewWorkspaceRepository(idleTTL time.Duration, log *logrus.Logger) *WorkspaceRepository {
	return &WorkspaceRepository{
		items:   make(map[string]*Workspace),
		idleTTL: idleTTL,
		log:     log,
	}
}

// Attach returns the workspace for sess, creating it on first use. The bool
// is false for anonymous or expired sessions.
func (r *WorkspaceRepository) Attach(sess session.Session, now time.Time) (*Workspace, bool) {
	token, ok := sess.Token()
	if !ok || !sess.Authenticated(now) {
		return nil, false
	}

	r.mu.RLock()
	ws, found := r.items[token]
	r.mu.RUnlock()
	if found {
		ws.Touch(sess, now)
		return ws, true
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if ws, found = r.items[token]; found {
		ws.Touch(sess, now)
		return ws, true
	}
	ws = NewWorkspace(sess, now)
	r.items[token] = ws
	r.log.WithFields(logrus.Fields{
		"workspace_id": ws.ID(),
		"subject":      sess.Subject(),
	}).Debug("workspace created")
	return ws, true
}

func (r *WorkspaceRepository) Find(token string) (*Workspace, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ws, ok := r.items[token]
	return ws, ok
}

// Drop tears down and removes the workspace for token.
func (r *WorkspaceRepository) Drop(token string) bool {
	r.mu.Lock()
	ws, ok := r.items[token]
	delete(r.items, token)
	r.mu.Unlock()

	if ok {
		ws.Teardown()
	}
	return ok
}

// Sweep drops workspaces whose session expired or that were idle longer than
// the configured TTL. It returns how many were dropped.
func (r *WorkspaceRepository) Sweep(now time.Time) int {
	var stale []*Workspace

	r.mu.Lock()
	for token, ws := range r.items {
		idle := r.idleTTL > 0 && now.Sub(ws.LastSeen()) > r.idleTTL
		if ws.Session().Expired(now) || idle {
			stale = append(stale, ws)
			delete(r.items, token)
		}
	}
	r.mu.Unlock()

	for _, ws := range stale {
		ws.Teardown()
		r.log.WithField("workspace_id", ws.ID()).Info("workspace swept")
	}
	return len(stale)
}

func (r *WorkspaceRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}
