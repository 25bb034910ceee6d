package pipeline

import (
	"context"
	"log/slog"

	"github.com/LexTOliver/web-scraping/internal/model"
)

// Step defines the interface that all pipeline steps must implement.
// Steps run in sequence, each receiving the run accumulated by the
// previous steps.
type Step interface {
	// Do executes the pipeline step. It receives the context for
	// cancellation and the run to modify. Returning an error stops the
	// pipeline unless it was configured to continue.
	Do(ctx context.Context, run *model.SearchRun) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// Pipeline executes steps in order against one SearchRun.
type Pipeline struct {
	// steps contains the ordered list of steps to execute.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError determines whether to continue executing steps
	// after one fails. If false, the pipeline stops on first error.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError configures the pipeline to continue execution even
// when a step fails. Failed steps are logged and recorded in the run, but
// subsequent steps still execute.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a new Pipeline with the given options. Steps are added
// with AddSteps after creation.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddSteps appends steps to the pipeline. Steps execute in the order
// they were added.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}

// Execute runs all pipeline steps in sequence against the run.
//
// Cancellation is checked between steps; steps handle their own timeouts
// internally. The first step error stops execution unless
// WithContinueOnError was set, in which case the error is recorded in the
// run and the remaining steps still execute.
func (p *Pipeline) Execute(ctx context.Context, run *model.SearchRun) error {
	for _, step := range p.steps {
		select {
		case <-ctx.Done():
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", ctx.Err(),
			)
			return ctx.Err()
		default:
		}

		p.logger.Info("executing step",
			"step", step.Name(),
			"seed", run.SeedURL,
		)

		if err := step.Do(ctx, run); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"error", err,
			)

			run.Error = err
			run.ErrorMessage = err.Error()

			if !p.continueOnError {
				return err
			}
		}

		run.PerformedSteps = append(run.PerformedSteps, step.Name())
	}

	return nil
}
