// Package forest implements bagged CART ensembles for small tabular inputs.
// Models are deterministic for a given seed and are meant to be refitted from
// scratch on every request.
package forest

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
)

var (
	ErrNoData     = errors.New("no training data")
	ErrNotFitted  = errors.New("model is not fitted")
	ErrDimension  = errors.New("feature dimension mismatch")
	ErrDegenerate = errors.New("training data is degenerate")
)

// Config controls the ensemble. Zero values select the defaults.
type Config struct {
	Trees           int    `yaml:"trees"`
	Seed            uint64 `yaml:"seed"`
	MaxFeatures     int    `yaml:"max_features"` // 0: sqrt(p) for classifiers, p for regressors
	MinSamplesSplit int    `yaml:"min_samples_split"`
	MaxDepth        int    `yaml:"max_depth"` // 0: unlimited
}

// DefaultConfig mirrors the library defaults the dashboards relied on:
// 100 trees and seed 42.
func DefaultConfig() Config {
	return Config{Trees: 100, Seed: 42, MinSamplesSplit: 2}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Trees <= 0 {
		c.Trees = d.Trees
	}
	if c.MinSamplesSplit < 2 {
		c.MinSamplesSplit = d.MinSamplesSplit
	}
	return c
}

func (c Config) rng() *rand.Rand {
	return rand.New(rand.NewPCG(c.Seed, c.Seed^0x9e3779b97f4a7c15))
}

func validate(x [][]float64, n int) (int, error) {
	if len(x) == 0 || len(x) != n {
		return 0, ErrNoData
	}
	p := len(x[0])
	if p == 0 {
		return 0, ErrDegenerate
	}
	for i, row := range x {
		if len(row) != p {
			return 0, fmt.Errorf("row %d: %w", i, ErrDimension)
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("row %d: %w", i, ErrDegenerate)
			}
		}
	}
	return p, nil
}

func bootstrap(rng *rand.Rand, n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = rng.IntN(n)
	}
	return idx
}

// Classifier is a random forest over integer class labels.
type Classifier struct {
	cfg     Config
	classes []int
	trees   []*node
	width   int
}

// NewClassifier returns an unfitted classifier.
func NewClassifier(cfg Config) *Classifier {
	return &Classifier{cfg: cfg.withDefaults()}
}

// Fit trains the forest. Previous state is discarded.
func (c *Classifier) Fit(x [][]float64, y []int) error {
	p, err := validate(x, len(y))
	if err != nil {
		return err
	}

	classes := uniqueSorted(y)
	pos := make(map[int]int, len(classes))
	for i, k := range classes {
		pos[k] = i
	}
	encoded := make([]int, len(y))
	for i, v := range y {
		encoded[i] = pos[v]
	}

	maxFeatures := c.cfg.MaxFeatures
	if maxFeatures <= 0 || maxFeatures > p {
		maxFeatures = max(1, int(math.Sqrt(float64(p))))
	}

	rng := c.cfg.rng()
	trees := make([]*node, c.cfg.Trees)
	for t := range trees {
		g := &grower{
			x:           x,
			rng:         rng,
			crit:        &gini{y: encoded, nClasses: len(classes)},
			maxFeatures: maxFeatures,
			minSplit:    c.cfg.MinSamplesSplit,
			maxDepth:    c.cfg.MaxDepth,
		}
		trees[t] = g.grow(bootstrap(rng, len(x)), 0)
	}

	c.classes, c.trees, c.width = classes, trees, p
	return nil
}

// Classes returns the sorted class labels seen during Fit.
func (c *Classifier) Classes() []int {
	return append([]int(nil), c.classes...)
}

// PredictProba averages the leaf class distributions of every tree. The
// result is aligned with Classes.
func (c *Classifier) PredictProba(x []float64) ([]float64, error) {
	if len(c.trees) == 0 {
		return nil, ErrNotFitted
	}
	if len(x) != c.width {
		return nil, ErrDimension
	}
	proba := make([]float64, len(c.classes))
	for _, t := range c.trees {
		for k, v := range t.find(x).dist {
			proba[k] += v
		}
	}
	for k := range proba {
		proba[k] /= float64(len(c.trees))
	}
	return proba, nil
}

// Predict returns the most probable class; ties go to the smaller label.
func (c *Classifier) Predict(x []float64) (int, error) {
	proba, err := c.PredictProba(x)
	if err != nil {
		return 0, err
	}
	best := 0
	for k := range proba {
		if proba[k] > proba[best] {
			best = k
		}
	}
	return c.classes[best], nil
}

// Regressor is a random forest over continuous targets.
type Regressor struct {
	cfg   Config
	trees []*node
	width int
}

// NewRegressor returns an unfitted regressor.
func NewRegressor(cfg Config) *Regressor {
	return &Regressor{cfg: cfg.withDefaults()}
}

// Fit trains the forest. Previous state is discarded.
func (r *Regressor) Fit(x [][]float64, y []float64) error {
	p, err := validate(x, len(y))
	if err != nil {
		return err
	}
	for i, v := range y {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("target %d: %w", i, ErrDegenerate)
		}
	}

	maxFeatures := r.cfg.MaxFeatures
	if maxFeatures <= 0 || maxFeatures > p {
		maxFeatures = p
	}

	rng := r.cfg.rng()
	trees := make([]*node, r.cfg.Trees)
	for t := range trees {
		g := &grower{
			x:           x,
			rng:         rng,
			crit:        &squaredError{y: y},
			maxFeatures: maxFeatures,
			minSplit:    r.cfg.MinSamplesSplit,
			maxDepth:    r.cfg.MaxDepth,
		}
		trees[t] = g.grow(bootstrap(rng, len(x)), 0)
	}

	r.trees, r.width = trees, p
	return nil
}

// Predict averages the tree estimates for x.
func (r *Regressor) Predict(x []float64) (float64, error) {
	if len(r.trees) == 0 {
		return 0, ErrNotFitted
	}
	if len(x) != r.width {
		return 0, ErrDimension
	}
	sum := 0.0
	for _, t := range r.trees {
		sum += t.find(x).value
	}
	return sum / float64(len(r.trees)), nil
}

func uniqueSorted(y []int) []int {
	seen := make(map[int]struct{}, len(y))
	out := make([]int, 0, len(y))
	for _, v := range y {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
