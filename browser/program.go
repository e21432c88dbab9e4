package browser

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Program runs the dispatch loop over a single Model. Messages are taken
// from a FIFO queue one at a time; each is applied completely, its effects
// run in order, and its follow-ups appended to the tail of the queue before
// the next message is looked at.
//
// A Program is not safe for concurrent use.
type Program struct {
	model  *Model
	runner EffectRunner
	logger *slog.Logger
	queue  []Msg
}

// ProgramOption configures a Program.
type ProgramOption func(*Program)

// WithLogger sets the logger used for non-fatal effect failures.
func WithLogger(l *slog.Logger) ProgramOption {
	return func(p *Program) {
		p.logger = l
	}
}

// NewProgram takes ownership of m.
func NewProgram(m *Model, runner EffectRunner, opts ...ProgramOption) *Program {
	if runner == nil {
		runner = RunnerFunc(func(context.Context, Effect) error { return nil })
	}
	p := &Program{
		model:  m,
		runner: runner,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Model returns the model for reading. Callers must not mutate it.
func (p *Program) Model() *Model { return p.model }

// Send enqueues msgs and drains the queue. Failures to persist the
// preference record are collected and returned once the queue is empty;
// every other effect failure is logged and dropped.
func (p *Program) Send(ctx context.Context, msgs ...Msg) error {
	p.queue = append(p.queue, msgs...)
	var errs []error
	for len(p.queue) > 0 {
		msg := p.queue[0]
		p.queue[0] = nil
		p.queue = p.queue[1:]

		var orders Orders
		Update(msg, p.model, &orders)
		for _, eff := range orders.Effects() {
			if err := p.runner.Run(ctx, eff); err != nil {
				if _, ok := eff.(PersistConfig); ok {
					errs = append(errs, fmt.Errorf("browser: %T: %w", msg, err))
					continue
				}
				p.logger.Warn("effect failed", "effect", fmt.Sprintf("%T", eff), "error", err)
			}
		}
		p.queue = append(p.queue, orders.Messages()...)
	}
	return errors.Join(errs...)
}
