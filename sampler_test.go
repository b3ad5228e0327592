package main

import (
	"errors"
	"testing"
)

func TestUniformStaysInRegion(t *testing.T) {
	s := NewSampler(720, 500, 1, 0)
	for i := 0; i < 10000; i++ {
		p := s.Uniform()
		if p.X < 0 || p.X >= 720 || p.Y < 0 || p.Y >= 500 {
			t.Fatalf("sample %d out of region: %+v", i, p)
		}
	}
}

func TestUniformIsReproducible(t *testing.T) {
	a := NewSampler(720, 500, 99, 0)
	b := NewSampler(720, 500, 99, 0)
	for i := 0; i < 100; i++ {
		if pa, pb := a.Uniform(), b.Uniform(); pa != pb {
			t.Fatalf("sample %d differs: %+v vs %+v", i, pa, pb)
		}
	}
}

func TestUniformFreeNeverCollides(t *testing.T) {
	for _, id := range []int{0, 1} {
		f := configuredField(t, id)
		s := NewSampler(720, 500, int64(id)+7, 0)
		for i := 0; i < 10000; i++ {
			p, err := s.UniformFree(f)
			if err != nil {
				t.Fatalf("layout %d: UniformFree: %v", id, err)
			}
			if f.Collides(p) {
				t.Fatalf("layout %d: sample %d collides: %+v", id, i, p)
			}
		}
	}
}

func TestUniformFreeBoundedAttempts(t *testing.T) {
	f := NewObstacleField(720, 500)
	if err := f.RegisterLayout(9, []Rectangle{{X: 0, Y: 0, Width: 720, Height: 500}}); err != nil {
		t.Fatal(err)
	}
	if err := f.Configure(9); err != nil {
		t.Fatal(err)
	}

	s := NewSampler(720, 500, 1, 50)
	if _, err := s.UniformFree(f); !errors.Is(err, ErrSamplingExhausted) {
		t.Errorf("UniformFree error = %v, want ErrSamplingExhausted", err)
	}
}
