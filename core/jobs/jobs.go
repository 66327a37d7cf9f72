// Package jobs schedules background commands on a bounded worker pool and
// tracks their status.
package jobs

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v4"
	"golang.org/x/sync/semaphore"

	"github.com/josephlewis42/minish/errors"
)

// DefaultWorkers bounds concurrent background jobs when no limit is given.
const DefaultWorkers = 16

// Status is the lifecycle state of a job.
type Status int

const (
	Running Status = iota
	Completed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "Running"
	case Completed:
		return "Done"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Job is a background task.
type Job struct {
	ID      uint32
	Command string

	status atomic.Int32
	err    error
	done   chan struct{}
}

// Status returns the current state of the job.
func (j *Job) Status() Status {
	return Status(j.status.Load())
}

// Done is closed once the job finishes.
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Err returns the error the job finished with, only valid after Done.
func (j *Job) Err() error {
	return j.err
}

// Controller allocates job IDs and runs jobs.
type Controller struct {
	nextID atomic.Uint32
	jobs   *xsync.Map[uint32, *Job]
	pool   *semaphore.Weighted

	// OnError is called from the job's goroutine when it fails.
	OnError func(job *Job, err error)
}

// NewController creates a controller running at most workers jobs at once.
func NewController(workers int) *Controller {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Controller{
		jobs: xsync.NewMap[uint32, *Job](),
		pool: semaphore.NewWeighted(int64(workers)),
	}
}

// Spawn records a new Running job and starts fn in the background. The ID is
// allocated before fn can run. Jobs past the worker limit wait for a free
// slot while still reported as Running.
func (c *Controller) Spawn(ctx context.Context, command string, fn func(ctx context.Context) error) *Job {
	job := &Job{
		ID:      c.nextID.Add(1),
		Command: command,
		done:    make(chan struct{}),
	}
	c.jobs.Store(job.ID, job)

	go func() {
		defer close(job.done)
		defer job.status.Store(int32(Completed))

		if err := c.pool.Acquire(ctx, 1); err != nil {
			job.err = err
			return
		}
		defer c.pool.Release(1)

		if err := fn(ctx); err != nil {
			job.err = err
			if c.OnError != nil {
				c.OnError(job, err)
			}
		}
	}()

	return job
}

// purge drops completed jobs from the table.
func (c *Controller) purge() {
	c.jobs.Range(func(id uint32, job *Job) bool {
		if job.Status() == Completed {
			c.jobs.Delete(id)
		}
		return true
	})
}

// List purges completed jobs and returns the remaining ones by ID.
func (c *Controller) List() []*Job {
	c.purge()

	var out []*Job
	c.jobs.Range(func(_ uint32, job *Job) bool {
		out = append(out, job)
		return true
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Get purges completed jobs then looks up id.
func (c *Controller) Get(id uint32) (*Job, bool) {
	c.purge()
	return c.jobs.Load(id)
}

// Wait blocks until job finishes or ctx is done. It does not consult the
// table, so it works for jobs already purged.
func (c *Controller) Wait(ctx context.Context, job *Job) error {
	select {
	case <-job.done:
		return job.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Format renders the job table the way the jobs builtin shows it.
func (c *Controller) Format() string {
	jobs := c.List()
	if len(jobs) == 0 {
		return "No jobs"
	}

	lines := make([]string, len(jobs))
	last := len(jobs) - 1
	for i, job := range jobs {
		marker := " "
		switch i {
		case last:
			marker = "+"
		case last - 1:
			marker = "-"
		}
		lines[i] = fmt.Sprintf("[%d]%s %-10s %s", job.ID, marker, job.Status(), job.Command)
	}
	return strings.Join(lines, "\n")
}

// Foreground reports on the job with id, or the newest job when id is nil.
// There is no real job control so it never blocks.
func (c *Controller) Foreground(id *uint32) (string, error) {
	var target uint32
	if id != nil {
		target = *id
	} else {
		jobs := c.List()
		if len(jobs) == 0 {
			return "", errors.InvalidArgumentf("No jobs")
		}
		target = jobs[len(jobs)-1].ID
	}

	job, ok := c.Get(target)
	if !ok {
		return "", errors.InvalidArgumentf("No such job: %d", target)
	}
	return fmt.Sprintf("Job [%d] (%s) is still running", job.ID, job.Command), nil
}
