package experiment_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/hourglass/experiment"
	"github.com/katalvlaran/hourglass/machine"
	"github.com/katalvlaran/hourglass/observe"
	"github.com/katalvlaran/hourglass/sampler"
)

type RunnerSuite struct {
	suite.Suite
	rules *machine.Rules
	reg   *prometheus.Registry
	m     *experiment.Metrics
	logs  bytes.Buffer
}

func (s *RunnerSuite) SetupTest() {
	rules, err := experiment.DefaultConfig().LoadRules()
	s.Require().NoError(err)
	s.rules = rules
	s.reg = prometheus.NewRegistry()
	s.m, err = experiment.NewMetrics(s.reg)
	s.Require().NoError(err)
	s.logs.Reset()
}

func (s *RunnerSuite) runner() *experiment.Runner {
	log := slog.New(slog.NewTextHandler(&s.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return experiment.NewRunner(experiment.WithLogger(log), experiment.WithMetrics(s.m))
}

func smallConfig(model string) experiment.Config {
	cfg := experiment.DefaultConfig()
	cfg.Model = model
	cfg.RandomBits = 1
	cfg.Trials = 40
	cfg.Workers = 3
	cfg.SamplingPeriod = 20
	cfg.TimeIncrement = 5

	return cfg
}

func (s *RunnerSuite) TestLasVegasCurve() {
	cfg := smallConfig(experiment.ModelLasVegas)
	rep, err := s.runner().Run(context.Background(), cfg, s.rules)
	s.Require().NoError(err)

	_, err = uuid.Parse(rep.RunID)
	s.NoError(err)
	s.Equal(experiment.LabelMeasurements, rep.XLabel)
	s.Equal(40, rep.Trials)
	s.Require().Len(rep.Points, 20)
	prev := 0.0
	for i, p := range rep.Points {
		s.Equal(float64(i+1), p.X)
		s.GreaterOrEqual(p.Probability, prev, "curve is cumulative")
		s.LessOrEqual(p.Probability, 1.0)
		prev = p.Probability
	}

	s.Contains(s.logs.String(), "run finished")
	s.Contains(s.logs.String(), "worker done")
	s.Contains(s.logs.String(), rep.RunID)
}

func (s *RunnerSuite) TestLasVegasShortPeriod() {
	cfg := smallConfig(experiment.ModelLasVegas)
	cfg.SamplingPeriod = 2
	cfg.TimeIncrement = 50
	cfg.Measurements = 3
	rep, err := s.runner().Run(context.Background(), cfg, s.rules)
	s.Require().NoError(err)
	s.Len(rep.Points, 3)
}

func (s *RunnerSuite) TestMonteCarloCurve() {
	cfg := smallConfig(experiment.ModelMonteCarlo)
	cfg.Discipline = "discrete"
	rep, err := s.runner().Run(context.Background(), cfg, s.rules)
	s.Require().NoError(err)

	s.Equal(experiment.LabelTime, rep.XLabel)
	s.Require().Len(rep.Points, 8)
	for i, p := range rep.Points {
		s.Equal(float64(i)*5, p.X)
	}
	// Both reset flags start set, so the very first observation of each
	// worker is ready.
	s.Positive(rep.Points[0].Probability)
}

func (s *RunnerSuite) TestDeterministicForFixedSeed() {
	cfg := smallConfig(experiment.ModelLasVegas)
	a, err := s.runner().Run(context.Background(), cfg, s.rules)
	s.Require().NoError(err)
	b, err := experiment.NewRunner().Run(context.Background(), cfg, s.rules)
	s.Require().NoError(err)
	s.Equal(a.Points, b.Points)
	s.NotEqual(a.RunID, b.RunID)
}

func (s *RunnerSuite) TestMetrics() {
	cfg := smallConfig(experiment.ModelLasVegas)
	_, err := s.runner().Run(context.Background(), cfg, s.rules)
	s.Require().NoError(err)

	families, err := s.reg.Gather()
	s.Require().NoError(err)
	byName := map[string]*dto.MetricFamily{}
	for _, f := range families {
		byName[f.GetName()] = f
	}

	steps := byName["hourglass_walk_steps_total"]
	s.Require().NotNil(steps)
	s.Require().Len(steps.GetMetric(), 1)
	s.Equal("lasvegas", steps.GetMetric()[0].GetLabel()[0].GetValue())
	s.Positive(steps.GetMetric()[0].GetCounter().GetValue())

	var observed float64
	for _, m := range byName["hourglass_observations_total"].GetMetric() {
		observed += m.GetCounter().GetValue()
	}
	s.GreaterOrEqual(observed, float64(cfg.Trials))
	s.LessOrEqual(observed, float64(cfg.Trials*cfg.Measurements))

	series, err := testutil.GatherAndCount(s.reg, "hourglass_observations_total")
	s.Require().NoError(err)
	s.GreaterOrEqual(series, 1)
	hist, err := testutil.GatherAndCount(s.reg, "hourglass_first_ready_point")
	s.Require().NoError(err)
	s.Equal(1, hist)

	_, err = experiment.NewMetrics(s.reg)
	s.Error(err, "double registration")
}

func (s *RunnerSuite) TestErrors() {
	r := s.runner()
	_, err := r.Run(context.Background(), experiment.Config{}, s.rules)
	s.ErrorIs(err, experiment.ErrInvalidConfig)

	_, err = r.Run(context.Background(), smallConfig(experiment.ModelLasVegas), nil)
	s.ErrorIs(err, machine.ErrNilRules)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Run(ctx, smallConfig(experiment.ModelLasVegas), s.rules)
	s.ErrorIs(err, context.Canceled)
	s.Contains(s.logs.String(), "run failed")

	s.Panics(func() { experiment.WithLogger(nil) })
}

func TestRunnerSuite(t *testing.T) {
	suite.Run(t, new(RunnerSuite))
}

func TestReadyCurve(t *testing.T) {
	rules, err := experiment.DefaultConfig().LoadRules()
	require.NoError(t, err)
	lv, err := sampler.NewLasVegas(1, rules, "a")
	require.NoError(t, err)
	o, err := observe.NewLasVegas(lv, observe.WithSeed(4))
	require.NoError(t, err)

	hits, err := experiment.ReadyCurve(context.Background(), o, 10, 15, 25)
	require.NoError(t, err)
	require.Len(t, hits, 10)
	for j := 1; j < len(hits); j++ {
		assert.GreaterOrEqual(t, hits[j], hits[j-1])
	}
	assert.LessOrEqual(t, hits[9], 25)

	_, err = experiment.ReadyCurve(context.Background(), o, 0, 15, 25)
	assert.ErrorIs(t, err, experiment.ErrCurveArgs)
	_, err = experiment.ReadyCurve(context.Background(), o, 3, -1, 25)
	assert.ErrorIs(t, err, experiment.ErrCurveArgs)
}

func TestReport_Write(t *testing.T) {
	rep := &experiment.Report{
		RunID:  "r1",
		Model:  experiment.ModelMonteCarlo,
		Trials: 2,
		XLabel: experiment.LabelTime,
		Points: []experiment.Point{{X: 0, Probability: 0.5}, {X: 50, Probability: 1}},
	}
	var table bytes.Buffer
	require.NoError(t, rep.WriteTable(&table))
	assert.Contains(t, table.String(), "# run r1 model=montecarlo")
	assert.Contains(t, table.String(), "50    1.0000")

	var out bytes.Buffer
	require.NoError(t, rep.WriteYAML(&out))
	var back experiment.Report
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &back))
	assert.Equal(t, rep.Points, back.Points)
	assert.Equal(t, "r1", back.RunID)
}
