// SPDX-License-Identifier: MIT

package experiment

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/hourglass/core"
	"github.com/katalvlaran/hourglass/machine"
	"github.com/katalvlaran/hourglass/observe"
	"github.com/katalvlaran/hourglass/sampler"
	"github.com/katalvlaran/hourglass/walk"
)

// Runner executes curve measurements.
type Runner struct {
	log     *slog.Logger
	metrics *Metrics
}

// RunnerOption configures NewRunner.
type RunnerOption func(*Runner)

// WithLogger sets the logger (default discards). Panics on nil.
func WithLogger(l *slog.Logger) RunnerOption {
	if l == nil {
		panic("experiment: WithLogger(nil)")
	}
	return func(r *Runner) { r.log = l }
}

// WithMetrics records walk and observation counters on m.
func WithMetrics(m *Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// NewRunner returns a Runner.
func NewRunner(opts ...RunnerOption) *Runner {
	r := &Runner{log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(r)
	}

	return r
}

// model is the built sampler plus an observer factory.
type model struct {
	graph    *core.Graph
	observer func(opts ...observe.Option) (observe.Observer, error)
}

func buildModel(cfg Config, rules *machine.Rules) (model, error) {
	opts := []sampler.Option{sampler.WithTraceLimit(cfg.TraceLimit)}
	if !cfg.Stitch {
		opts = append(opts, sampler.WithoutStitching())
	}
	switch cfg.Model {
	case ModelLasVegas:
		lv, err := sampler.NewLasVegas(cfg.RandomBits, rules, cfg.InitialState, opts...)
		if err != nil {
			return model{}, err
		}
		return model{graph: lv.Graph, observer: func(o ...observe.Option) (observe.Observer, error) {
			return observe.NewLasVegas(lv, o...)
		}}, nil
	case ModelMonteCarlo:
		mc, err := sampler.NewMonteCarlo(cfg.RandomBits, rules, cfg.InitialState, opts...)
		if err != nil {
			return model{}, err
		}
		return model{graph: mc.Graph, observer: func(o ...observe.Option) (observe.Observer, error) {
			return observe.NewMonteCarlo(mc, o...)
		}}, nil
	}

	return model{}, fmt.Errorf("%w: model %q", ErrInvalidConfig, cfg.Model)
}

// Run builds the model once, splits cfg.Trials across cfg.Workers walkers
// and returns the merged curve. Worker w seeds its observer with
// walk.DeriveSeed(cfg.Seed, w).
func (r *Runner) Run(ctx context.Context, cfg Config, rules *machine.Rules) (*Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if rules == nil {
		return nil, fmt.Errorf("experiment.Run: %w", machine.ErrNilRules)
	}
	discipline, err := cfg.WalkDiscipline()
	if err != nil {
		return nil, fmt.Errorf("experiment.Run: %w", err)
	}
	points, period := cfg.Points()
	if points <= 0 {
		return nil, fmt.Errorf("%w: no curve points", ErrInvalidConfig)
	}

	runID := uuid.NewString()
	log := r.log.With(slog.String("run_id", runID), slog.String("model", cfg.Model))
	started := time.Now()

	m, err := buildModel(cfg, rules)
	if err != nil {
		return nil, fmt.Errorf("experiment.Run: build model: %w", err)
	}
	log.Info("model built",
		slog.Int("random_bits", cfg.RandomBits),
		slog.Int("nodes", m.graph.NodeCount()),
		slog.Int("edges", m.graph.EdgeCount()),
		slog.Duration("elapsed", time.Since(started)),
	)

	workers := cfg.Workers
	if workers > cfg.Trials {
		workers = cfg.Trials
	}
	results := make([][]int, workers)
	rec := r.metrics.recorder(cfg.Model)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		w := w
		trials := cfg.Trials / workers
		if w < cfg.Trials%workers {
			trials++
		}
		g.Go(func() error {
			o, err := m.observer(
				observe.WithSeed(walk.DeriveSeed(cfg.Seed, uint64(w))),
				observe.WithDiscipline(discipline),
			)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			hits, err := readyCurve(gctx, o, points, period, trials, rec)
			if err != nil {
				return fmt.Errorf("worker %d: %w", w, err)
			}
			results[w] = hits
			log.Debug("worker done",
				slog.Int("worker", w),
				slog.Int("trials", trials),
				slog.Uint64("steps", o.Walk().Steps()),
			)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		log.Error("run failed", slog.Any("error", err))
		return nil, fmt.Errorf("experiment.Run: %w", err)
	}

	total := make([]int, points)
	for _, hits := range results {
		for j, h := range hits {
			total[j] += h
		}
	}
	label := LabelMeasurements
	if cfg.Model == ModelMonteCarlo {
		label = LabelTime
	}
	rep := &Report{
		RunID:    runID,
		Model:    cfg.Model,
		Nodes:    m.graph.NodeCount(),
		Edges:    m.graph.EdgeCount(),
		Trials:   cfg.Trials,
		XLabel:   label,
		Points:   newPoints(cfg.Model, total, cfg.Trials, period),
		Duration: time.Since(started),
	}
	log.Info("run finished",
		slog.Int("workers", workers),
		slog.Float64("final_probability", rep.Points[len(rep.Points)-1].Probability),
		slog.Duration("elapsed", rep.Duration),
	)

	return rep, nil
}
