package main

import (
	"fmt"
	"math/rand"
)

// Sampler draws random points in a width x height region
type Sampler struct {
	rng           *rand.Rand
	width, height float64
	// maxAttempts bounds UniformFree; zero keeps drawing until a free point appears.
	maxAttempts int
}

// NewSampler creates a sampler seeded with seed
func NewSampler(width, height float64, seed int64, maxAttempts int) *Sampler {
	return &Sampler{
		rng:         rand.New(rand.NewSource(seed)),
		width:       width,
		height:      height,
		maxAttempts: maxAttempts,
	}
}

// Uniform returns a point drawn uniformly from [0, width) x [0, height)
func (s *Sampler) Uniform() Point {
	return Point{X: s.rng.Float64() * s.width, Y: s.rng.Float64() * s.height}
}

// UniformFree rejection-samples a point outside every obstacle in field.
// With no attempt cap this only returns once a free point is drawn.
func (s *Sampler) UniformFree(field *ObstacleField) (Point, error) {
	for attempts := 1; ; attempts++ {
		p := s.Uniform()
		if !field.Collides(p) {
			return p, nil
		}
		if s.maxAttempts > 0 && attempts >= s.maxAttempts {
			return Point{}, fmt.Errorf("after %d attempts: %w", attempts, ErrSamplingExhausted)
		}
	}
}
