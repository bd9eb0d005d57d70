package sim

import (
	"fmt"

	"github.com/hwen/knotsim/internal/entity"
	"github.com/hwen/knotsim/internal/geom"
)

// Metric folds per-tick observations into a single value.
type Metric interface {
	Name() string
	Observe(e *entity.Entity, t float64)
	Value() float64
	Reset()
}

// Observer is notified after every entity step.
type Observer interface {
	OnStep(e *entity.Entity, t float64)
}

type Config struct {
	Dt       float64
	Duration float64
	Seed     int64
}

func DefaultConfig() Config {
	return Config{
		Dt:       0.01,
		Duration: 10.0,
	}
}

// Sample is one entity's state at one tick.
type Sample struct {
	Pos   geom.Vec3
	World int
}

// Result holds the full trace of a run: Samples[i][j] is entity j at
// tick i. Crossings counts world transitions per entity.
type Result struct {
	Times     []float64
	Names     []string
	Samples   [][]Sample
	Crossings []int
	Metrics   map[string]float64
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
