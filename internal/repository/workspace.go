package repository

import (
	"context"
	"sync"
	"time"

	"github.com/fadilmartias/cv-dashboard/internal/model"
	"github.com/fadilmartias/cv-dashboard/internal/poller"
	"github.com/fadilmartias/cv-dashboard/internal/preview"
	"github.com/fadilmartias/cv-dashboard/internal/search"
	"github.com/fadilmartias/cv-dashboard/internal/session"
	"github.com/google/uuid"
)

// DashboardState is the upload page: the listed CVs, the status line, and the
// file and tags staged for the next submission.
type DashboardState struct {
	CVs       []model.CVRecord
	Message   string
	Staged    *model.Upload
	Tags      model.TagSet
	Uploading bool
}

// PrependCV inserts cv at the head of the list.
func (d *DashboardState) PrependCV(cv model.CVRecord) {
	d.CVs = append([]model.CVRecord{cv}, d.CVs...)
}

// ApplyStatus updates the row whose id matches. Other rows are untouched.
func (d *DashboardState) ApplyStatus(id string, status model.Status, errMsg string) bool {
	for i := range d.CVs {
		if d.CVs[i].ID == id {
			d.CVs[i].Status = status
			d.CVs[i].Error = errMsg
			return true
		}
	}
	return false
}

func (d *DashboardState) ReplaceCVs(cvs []model.CVRecord) {
	if cvs == nil {
		cvs = []model.CVRecord{}
	}
	d.CVs = cvs
}

// SearchState is the search page.
type SearchState struct {
	Query   search.Query
	Results []model.SearchResult
	Loading bool
	// Seq identifies the latest submission; older responses are dropped.
	Seq uint64
}

// PanelSource remembers which page opened the preview panel.
type PanelSource string

const (
	SourceDashboard PanelSource = "dashboard"
	SourceSearch    PanelSource = "search"
)

type State struct {
	Dashboard   DashboardState
	Search      SearchState
	Panel       preview.Panel
	PanelSource PanelSource
}

// Workspace is the page state of one signed-in session. All access goes
// through Update/View so poller callbacks and handlers never race.
type Workspace struct {
	id      string
	ctx     context.Context
	cancel  context.CancelFunc
	created time.Time

	mu       sync.Mutex
	session  session.Session
	lastSeen time.Time
	state    State
	pollers  map[string]*poller.Handle
	closed   bool
}

func NewWorkspace(sess session.Session, now time.Time) *Workspace {
	ctx, cancel := context.WithCancel(context.Background())
	return &Workspace{
		id:       uuid.NewString(),
		ctx:      ctx,
		cancel:   cancel,
		created:  now,
		session:  sess,
		lastSeen: now,
		state: State{
			Dashboard: DashboardState{CVs: []model.CVRecord{}},
			Search: SearchState{
				Query:   search.Query{Filters: search.DefaultFilterSet()},
				Results: []model.SearchResult{},
			},
		},
		pollers: make(map[string]*poller.Handle),
	}
}

func (w *Workspace) ID() string { return w.id }

// Context is cancelled on teardown; background work started for this
// workspace derives from it.
func (w *Workspace) Context() context.Context { return w.ctx }

func (w *Workspace) Session() session.Session {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session
}

func (w *Workspace) Touch(sess session.Session, now time.Time) {
	w.mu.Lock()
	w.session = sess
	w.lastSeen = now
	w.mu.Unlock()
}

func (w *Workspace) LastSeen() time.Time {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastSeen
}

// Update runs fn with exclusive access to the state.
func (w *Workspace) Update(fn func(st *State)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(&w.state)
}

// View runs fn with the lock held; fn must not retain slices it reads.
func (w *Workspace) View(fn func(st State)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fn(w.state)
}

// Track registers a running poller for jobID. A previous poller for the same
// job is cancelled. Returns false when the workspace is already torn down, in
// which case h is cancelled.
func (w *Workspace) Track(h *poller.Handle) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		h.Cancel()
		return false
	}
	if prev, ok := w.pollers[h.JobID()]; ok && prev != h {
		prev.Cancel()
	}
	w.pollers[h.JobID()] = h
	return true
}

// Untrack forgets h if it is still the registered poller for its job.
func (w *Workspace) Untrack(h *poller.Handle) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if cur, ok := w.pollers[h.JobID()]; ok && cur == h {
		delete(w.pollers, h.JobID())
	}
}

func (w *Workspace) ActivePollers() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pollers)
}

// Teardown cancels every poller and the workspace context. Safe to call more
// than once.
func (w *Workspace) Teardown() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	handles := make([]*poller.Handle, 0, len(w.pollers))
	for _, h := range w.pollers {
		handles = append(handles, h)
	}
	w.pollers = map[string]*poller.Handle{}
	w.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}
	w.cancel()
}

func (w *Workspace) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}
