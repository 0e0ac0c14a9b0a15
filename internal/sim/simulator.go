package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/logging"
)

// cancelCheckMask sets how often Run polls its context.
const cancelCheckMask = 1023

type Runner struct {
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	log       *slog.Logger
}

func New(logger *slog.Logger) *Runner {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Runner{
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
		log:       logger,
	}
}

func (r *Runner) AddMetric(m dynamo.Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o dynamo.Observer) { r.observers = append(r.observers, o) }

// Run advances body for opts.Steps steps. On cancellation or an invalid
// state it returns the partial result together with the error.
func (r *Runner) Run(ctx context.Context, body dynamo.Stepper, opts Options) (*Result, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	keep := opts.KeepEvery
	if keep < 1 {
		keep = 1
	}

	result := &Result{
		Start:        body.Current(),
		Samples:      make([]dynamo.Sample, 0, opts.Steps/keep+1),
		Metrics:      make(map[string]float64),
		FirstContact: -1,
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	r.log.Debug("run starting", "steps", opts.Steps, "keep_every", keep)

	var err error
	for i := 0; i < opts.Steps; i++ {
		if i&cancelCheckMask == 0 {
			select {
			case <-ctx.Done():
				err = fmt.Errorf("%w: %w", dynamo.ErrCanceled, ctx.Err())
			default:
			}
			if err != nil {
				break
			}
		}

		s := body.Step()

		if opts.ValidateState && !s.IsValid() {
			err = dynamo.SimError{Step: s.Step, Time: s.Time, Message: "invalid state (NaN/Inf)", Wrapped: dynamo.ErrInvalidState}
			break
		}

		result.StepsTaken++
		if s.Bounced {
			result.Bounces++
			if result.FirstContact < 0 {
				result.FirstContact = s.Step
			}
			r.log.Log(ctx, logging.LevelTrace, "bounce", "step", s.Step, "vy", s.Velocity)
		}

		for _, m := range r.metrics {
			m.Observe(s)
		}
		for _, obs := range r.observers {
			obs.OnStep(s)
		}

		if i%keep == 0 || i == opts.Steps-1 {
			result.Samples = append(result.Samples, s)
		}
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if err != nil {
		r.log.Warn("run stopped early", "steps_taken", result.StepsTaken, "err", err)
		return result, err
	}

	r.log.Debug("run finished", "steps", result.StepsTaken, "bounces", result.Bounces, "first_contact", result.FirstContact)
	return result, nil
}

func validateOptions(opts Options) error {
	if opts.Steps <= 0 {
		return fmt.Errorf("%w: steps must be positive, got %d", dynamo.ErrInvalidConfig, opts.Steps)
	}
	if opts.KeepEvery < 0 {
		return fmt.Errorf("%w: keep_every must be non-negative, got %d", dynamo.ErrInvalidConfig, opts.KeepEvery)
	}
	return nil
}
