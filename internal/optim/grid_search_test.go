package optim

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
)

func TestGridSearch_FindsMinimum(t *testing.T) {
	g, err := NewGridSearch([]string{"a", "b"}, [][]float64{{0, 1, 2}, {-1, 0.5}})
	if err != nil {
		t.Fatal(err)
	}
	obj := func(_ context.Context, p map[string]float64) (float64, error) {
		return math.Abs(p["a"]-1) + math.Abs(p["b"]-0.5), nil
	}

	best, val, trials, err := g.Search(context.Background(), obj)
	if err != nil {
		t.Fatal(err)
	}
	if best["a"] != 1 || best["b"] != 0.5 || val != 0 {
		t.Errorf("unexpected best %v = %v", best, val)
	}
	if len(trials) != 6 {
		t.Errorf("expected 6 trials, got %d", len(trials))
	}
}

func TestGridSearch_SkipsFailures(t *testing.T) {
	g, _ := NewGridSearch([]string{"v"}, [][]float64{{-1, 2, 3}})
	obj := func(_ context.Context, p map[string]float64) (float64, error) {
		if p["v"] < 0 {
			return 0, errors.New("invalid")
		}
		return p["v"], nil
	}
	best, val, trials, err := g.Search(context.Background(), obj)
	if err != nil {
		t.Fatal(err)
	}
	if best["v"] != 2 || val != 2 {
		t.Errorf("unexpected best %v = %v", best, val)
	}
	if trials[0].Err == nil {
		t.Error("failed trial should keep its error")
	}
}

func TestGridSearch_Cancelled(t *testing.T) {
	g, _ := NewGridSearch([]string{"v"}, [][]float64{{1, 2}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, _, err := g.Search(ctx, func(context.Context, map[string]float64) (float64, error) { return 0, nil })
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewGridSearch_Mismatch(t *testing.T) {
	if _, err := NewGridSearch([]string{"a"}, nil); err == nil {
		t.Error("expected error")
	}
}

func TestGridSearch_Workers(t *testing.T) {
	values := []float64{5, 3, 8, 1, 9, 4, 7}
	g, _ := NewGridSearch([]string{"v"}, [][]float64{values})
	g.SetWorkers(4)

	var calls atomic.Int32
	obj := func(_ context.Context, p map[string]float64) (float64, error) {
		calls.Add(1)
		return p["v"], nil
	}
	best, val, trials, err := g.Search(context.Background(), obj)
	if err != nil {
		t.Fatal(err)
	}
	if best["v"] != 1 || val != 1 {
		t.Errorf("unexpected best %v = %v", best, val)
	}
	if int(calls.Load()) != len(values) {
		t.Errorf("expected %d calls, got %d", len(values), calls.Load())
	}
	for i, tr := range trials {
		if tr.Params["v"] != values[i] {
			t.Fatalf("trial %d out of grid order: %v", i, tr.Params)
		}
	}
}
