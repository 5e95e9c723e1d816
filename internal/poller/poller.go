// Package poller watches a parsing job until it reaches a terminal status or
// the attempt budget runs out.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/fadilmartias/cv-dashboard/internal/model"
	"github.com/sirupsen/logrus"
)

const (
	DefaultInterval    = 2 * time.Second
	DefaultMaxAttempts = 30
)

// FetchFunc performs one status request.
type FetchFunc func(ctx context.Context, jobID string) (model.StatusReport, error)

// UpdateFunc receives every observed status. errMsg is only set for terminal
// observations.
type UpdateFunc func(status model.Status, errMsg string)

type Poller struct {
	interval    time.Duration
	maxAttempts int
	log         *logrus.Logger
}

func New(interval time.Duration, maxAttempts int, log *logrus.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Poller{interval: interval, maxAttempts: maxAttempts, log: log}
}

// Outcome describes how a poll run ended.
type Outcome struct {
	JobID     string
	Attempts  int
	Last      model.Status
	Terminal  bool
	Exhausted bool
	Cancelled bool
}

// Handle is returned to the owner of a poll run so it can cancel it on
// teardown and inspect how it ended.
type Handle struct {
	jobID   string
	cancel  context.CancelFunc
	done    chan struct{}
	mu      sync.Mutex
	outcome Outcome
}

func (h *Handle) JobID() string { return h.jobID }

func (h *Handle) Cancel() { h.cancel() }

func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait blocks until the run ends and returns its outcome.
func (h *Handle) Wait() Outcome {
	<-h.done
	return h.Outcome()
}

// Outcome is only final once Done is closed.
func (h *Handle) Outcome() Outcome {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.outcome
}

func (h *Handle) record(fn func(o *Outcome)) {
	h.mu.Lock()
	fn(&h.outcome)
	h.mu.Unlock()
}

// Start launches the poll loop in its own goroutine. Each attempt waits one
// interval first. Fetch errors are swallowed and count as an attempt. When the
// budget runs out without a terminal status onUpdate is simply not called
// again.
func (p *Poller) Start(parent context.Context, jobID string, fetch FetchFunc, onUpdate UpdateFunc) *Handle {
	ctx, cancel := context.WithCancel(parent)
	h := &Handle{
		jobID:   jobID,
		cancel:  cancel,
		done:    make(chan struct{}),
		outcome: Outcome{JobID: jobID},
	}

	go func() {
		defer close(h.done)
		defer cancel()
		p.run(ctx, h, fetch, onUpdate)
	}()
	return h
}

func (p *Poller) run(ctx context.Context, h *Handle, fetch FetchFunc, onUpdate UpdateFunc) {
	entry := p.log.WithField("job_id", h.jobID)

	timer := time.NewTimer(p.interval)
	defer timer.Stop()

	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			h.record(func(o *Outcome) { o.Cancelled = true })
			entry.WithField("attempts", attempt-1).Debug("status polling cancelled")
			return
		case <-timer.C:
		}

		report, err := fetch(ctx, h.jobID)
		h.record(func(o *Outcome) { o.Attempts = attempt })
		if err != nil {
			entry.WithError(err).WithField("attempt", attempt).Debug("status request failed")
		} else if report.Status.IsTerminal() {
			h.record(func(o *Outcome) {
				o.Last = report.Status
				o.Terminal = true
			})
			onUpdate(report.Status, report.Error)
			return
		} else {
			h.record(func(o *Outcome) { o.Last = report.Status })
			onUpdate(report.Status, "")
		}

		timer.Reset(p.interval)
	}

	h.record(func(o *Outcome) { o.Exhausted = true })
	entry.WithField("attempts", p.maxAttempts).Warn("status polling gave up without a terminal status")
}
