package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hnterm/internal/debuglog"
	"hnterm/internal/hn"
	"hnterm/internal/store"
)

// Client is what the orchestrator needs from the Hacker News API client.
type Client interface {
	Fetch(ctx context.Context, section hn.Section) ([]hn.Story, error)
}

// Indicator is the busy animation shown while a load is outstanding. The
// orchestrator calls Advance then Render exactly once per loop tick,
// independent of fetch progress, so the animation stays smooth under any
// network latency. It carries no data semantics.
type Indicator interface {
	Advance(elapsed time.Duration)
	Render(s Surface)
}

// Surface receives the indicator's composed frame each tick.
type Surface interface {
	SetContent(frame string)
}

// CancelSource is polled once per loop tick for the user's cancel
// signal, blocking for at most the given timeout.
type CancelSource interface {
	Poll(timeout time.Duration) bool
}

// Options are the orchestrator's loop timings. They are explicit so tests
// can shrink them to sub-millisecond for deterministic timeout and
// cancellation runs.
type Options struct {
	// Tick is the loop period: one indicator advance+render per tick.
	Tick time.Duration
	// CancelPoll is how long each tick blocks waiting for a cancel key.
	CancelPoll time.Duration
	// Deadline is the wall-clock ceiling for a whole call. There is no
	// per-job timeout, only this aggregate one.
	Deadline time.Duration
}

// DefaultOptions mirrors a terminal refresh cadence: ~60fps animation,
// snappy cancel response, and a generous overall deadline.
func DefaultOptions() Options {
	return Options{
		Tick:       16 * time.Millisecond,
		CancelPoll: 50 * time.Millisecond,
		Deadline:   30 * time.Second,
	}
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Tick <= 0 {
		o.Tick = def.Tick
	}
	if o.CancelPoll <= 0 {
		o.CancelPoll = def.CancelPoll
	}
	if o.Deadline <= 0 {
		o.Deadline = def.Deadline
	}
	return o
}

// SectionFailure names one section whose fetch failed within an
// otherwise successful batch.
type SectionFailure struct {
	Section hn.Section
	Err     error
}

// Report summarizes a LoadAll batch. Partial failure is not a batch
// failure: failed sections are listed here and their prior cache entries
// are left untouched.
type Report struct {
	Loaded   []hn.Section
	Failures []SectionFailure
}

// Diagnostic returns a status-line message naming the failed sections,
// or "" when everything loaded.
func (r *Report) Diagnostic() string {
	if len(r.Failures) == 0 {
		return ""
	}
	names := make([]string, len(r.Failures))
	for i, f := range r.Failures {
		names[i] = f.Section.String()
	}
	return fmt.Sprintf("Failed to load %s", strings.Join(names, ", "))
}

// Orchestrator runs parallel section fetches under a cooperative polling
// loop: jobs progress on their own goroutines while the loop keeps the
// busy indicator animated, watches for the cancel signal, and enforces
// the deadline. It is the only component that writes the section cache.
//
// Calls are single-flight at the application level: the surrounding app
// never issues two loads concurrently against the same cache.
type Orchestrator struct {
	client    Client
	cache     *store.Cache
	indicator Indicator
	surface   Surface
	cancel    CancelSource
	opts      Options
}

func NewOrchestrator(client Client, cache *store.Cache, opts Options) *Orchestrator {
	return &Orchestrator{
		client: client,
		cache:  cache,
		opts:   opts.withDefaults(),
	}
}

// SetIndicator attaches the busy animation and the surface it draws on.
// Optional; without one the loop just polls.
func (o *Orchestrator) SetIndicator(ind Indicator, surface Surface) {
	o.indicator = ind
	o.surface = surface
}

// SetCancelSource attaches the user-cancel signal. Optional.
func (o *Orchestrator) SetCancelSource(cancel CancelSource) {
	o.cancel = cancel
}

// LoadAll fetches every given section in parallel and, once all jobs have
// reached a terminal state, writes each successful result into the cache.
// Per-section failures do not fail the batch; they are reported in the
// Report and leave prior cache entries unchanged. Cancellation and
// deadline expiry abandon outstanding jobs without draining them, so a
// stray late completion can never populate the cache.
func (o *Orchestrator) LoadAll(ctx context.Context, sections []hn.Section) (*Report, error) {
	if len(sections) == 0 {
		return nil, errors.New("no sections to load")
	}

	jobs := make([]*job, len(sections))
	for i, section := range sections {
		jobs[i] = startJob(ctx, o.client, section)
	}
	debuglog.Infof("loading %d sections", len(jobs))

	if err := o.wait(ctx, jobs); err != nil {
		return nil, err
	}

	report := &Report{}
	for _, j := range jobs {
		if j.result.err != nil {
			debuglog.Warnf("section %s failed: %v", j.section, j.result.err)
			report.Failures = append(report.Failures, SectionFailure{Section: j.section, Err: j.result.err})
			continue
		}
		o.cache.Put(j.section, j.result.stories)
		report.Loaded = append(report.Loaded, j.section)
	}
	return report, nil
}

// LoadOne fetches a single section and returns its stories. The cache is
// not written here: the caller decides whether to store the result, so
// section switching can serve the cache without going through the
// orchestrator at all.
func (o *Orchestrator) LoadOne(ctx context.Context, section hn.Section) ([]hn.Story, error) {
	j := startJob(ctx, o.client, section)
	debuglog.Infof("loading section %s", section)

	if err := o.wait(ctx, []*job{j}); err != nil {
		return nil, err
	}

	if j.result.err != nil {
		debuglog.Warnf("section %s failed: %v", section, j.result.err)
		return nil, j.result.err
	}
	return j.result.stories, nil
}

// wait is the cooperative loop shared by LoadAll and LoadOne. It returns
// nil once every job has settled, ErrCancelled on the cancel signal or
// context cancellation, and ErrTimedOut when the deadline passes first.
// The loop never blocks on a job: completion is observed by non-blocking
// polls so the indicator and the cancel source stay live throughout.
func (o *Orchestrator) wait(ctx context.Context, jobs []*job) error {
	start := time.Now()
	lastTick := start

	for {
		now := time.Now()
		if o.indicator != nil {
			o.indicator.Advance(now.Sub(lastTick))
			if o.surface != nil {
				o.indicator.Render(o.surface)
			}
		}
		lastTick = now

		if o.cancel != nil && o.cancel.Poll(o.opts.CancelPoll) {
			debuglog.Infof("load cancelled by user after %s", time.Since(start))
			return ErrCancelled
		}
		if ctx.Err() != nil {
			return ErrCancelled
		}

		settled := 0
		for _, j := range jobs {
			if j.poll() {
				settled++
			}
		}
		if settled == len(jobs) {
			return nil
		}

		if time.Since(start) > o.opts.Deadline {
			debuglog.Warnf("load deadline (%s) exceeded with %d/%d jobs outstanding",
				o.opts.Deadline, len(jobs)-settled, len(jobs))
			return ErrTimedOut
		}

		time.Sleep(o.opts.Tick)
	}
}
