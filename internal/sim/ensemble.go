package sim

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/orbitsim/internal/twobody"
)

// Job is one independent trajectory of a sweep. A nil Integrator uses the
// ensemble's.
type Job struct {
	Name       string
	Params     twobody.Params
	Initial    twobody.State
	Config     Config
	Integrator Integrator
}

// JobError identifies the job that failed a sweep.
type JobError struct {
	Index int
	Name  string
	Err   error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("job %q: %v", e.Name, e.Err)
}

func (e *JobError) Unwrap() error { return e.Err }

// Ensemble runs independent trajectories concurrently. Each job gets its own
// Simulator; integrator values may be shared.
type Ensemble struct {
	integrator Integrator
	metrics    func(p twobody.Params) []Metric
	workers    int
}

func NewEnsemble(integrator Integrator, workers int) *Ensemble {
	if workers < 1 {
		workers = 1
	}
	return &Ensemble{integrator: integrator, workers: workers}
}

// WithMetrics installs a factory producing fresh metrics for every job.
func (e *Ensemble) WithMetrics(fn func(p twobody.Params) []Metric) *Ensemble {
	e.metrics = fn
	return e
}

// Outcome is the result of one job together with the error that ended it.
// Jobs cut short by another job's failure carry the cancellation error and
// their partial result; jobs never started have a nil Result.
type Outcome struct {
	Result *Result
	Err    error
}

// Run returns outcomes in job order. The first failing job cancels the others
// and is reported as a *JobError.
func (e *Ensemble) Run(ctx context.Context, jobs []Job) ([]Outcome, error) {
	outcomes := make([]Outcome, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)

	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				outcomes[i].Err = err
				return nil
			}

			integ := job.Integrator
			if integ == nil {
				integ = e.integrator
			}
			s := New(job.Params, integ)
			if e.metrics != nil {
				for _, m := range e.metrics(job.Params) {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(gctx, job.Initial, job.Config)
			outcomes[i] = Outcome{Result: res, Err: err}
			if err != nil && !errors.Is(err, context.Canceled) {
				return &JobError{Index: i, Name: job.Name, Err: err}
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return outcomes, err
	}
	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}
