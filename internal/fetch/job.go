package fetch

import (
	"context"
	"fmt"
	"time"

	"hnterm/internal/hn"
)

// outcome is the terminal state of one job: stories or an error, never
// both, never partial.
type outcome struct {
	stories []hn.Story
	err     error
}

// job is one in-flight section fetch. It is created when a load starts,
// polled each loop tick, consumed at most once, then discarded. Jobs are
// never retried or reused. The worker goroutine owns the done channel's
// single send; a job abandoned by cancellation or timeout keeps running
// until its send lands in the buffer and is garbage collected unread.
type job struct {
	section hn.Section
	started time.Time
	done    chan outcome

	settled bool
	result  outcome
}

// startJob launches the fetch worker. The context deliberately drops the
// caller's cancellation: abandoning a job must not abort it mid-flight,
// only orphan its result.
func startJob(ctx context.Context, client Client, section hn.Section) *job {
	j := &job{
		section: section,
		started: time.Now(),
		done:    make(chan outcome, 1),
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				j.done <- outcome{err: &JoinError{Section: section, Reason: fmt.Sprint(r)}}
			}
		}()

		stories, err := client.Fetch(context.WithoutCancel(ctx), section)
		if err != nil {
			j.done <- outcome{err: &FetchError{Section: section, Err: err}}
			return
		}
		j.done <- outcome{stories: stories}
	}()

	return j
}

// poll records the outcome if the worker has finished. Non-blocking.
func (j *job) poll() bool {
	if j.settled {
		return true
	}
	select {
	case result := <-j.done:
		j.result = result
		j.settled = true
	default:
	}
	return j.settled
}
