// Package sim drives entities through the ambient space tick by tick.
// The loop is single-threaded per simulator; entities never read each
// other's state, so independent runs may execute concurrently (see
// Ensemble) with no synchronization.
package sim

import (
	"context"
	"fmt"

	"github.com/hwen/knotsim/internal/entity"
)

type Simulator struct {
	entities  []*entity.Entity
	metrics   []Metric
	observers []Observer
}

func New(entities []*entity.Entity) *Simulator {
	return &Simulator{entities: entities}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Entities() []*entity.Entity { return s.entities }

// Run advances every entity once per tick for the configured duration,
// recording positions and world indices. Tick N's world feeds tick N+1
// for the same entity; there is no cross-entity ordering.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Times:     make([]float64, 0, steps+1),
		Names:     make([]string, len(s.entities)),
		Samples:   make([][]Sample, 0, steps+1),
		Crossings: make([]int, len(s.entities)),
		Metrics:   make(map[string]float64),
	}
	for i, e := range s.entities {
		result.Names[i] = e.Name
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	result.record(s.entities, t)

	prev := make([]int, len(s.entities))
	for i, e := range s.entities {
		prev[i] = e.World
	}

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		for j, e := range s.entities {
			e.Advance(cfg.Dt)

			if e.World != prev[j] {
				result.Crossings[j]++
				prev[j] = e.World
			}

			for _, m := range s.metrics {
				m.Observe(e, t)
			}
			for _, obs := range s.observers {
				obs.OnStep(e, t)
			}

			if !e.Pos.IsValid() {
				return result, SimError{Time: t, Step: i, Message: fmt.Sprintf("entity %s: invalid position", e.Name)}
			}
		}

		t += cfg.Dt
		result.record(s.entities, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (r *Result) record(entities []*entity.Entity, t float64) {
	row := make([]Sample, len(entities))
	for i, e := range entities {
		row[i] = Sample{Pos: e.Pos, World: e.World}
	}
	r.Times = append(r.Times, t)
	r.Samples = append(r.Samples, row)
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

// RunWithCallback steps the simulation, invoking callback after every
// tick; returning false from the callback stops the run early.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(t float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for t < cfg.Duration {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		for _, e := range s.entities {
			e.Advance(cfg.Dt)
		}
		t += cfg.Dt

		if !callback(t) {
			return nil
		}
	}

	return nil
}
