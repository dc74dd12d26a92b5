package optim

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"sync"
)

// Trial is one evaluated point of the grid.
type Trial struct {
	Params map[string]float64
	Value  float64
	Err    error
}

// Objective scores one parameter set. Lower is better. With more than one
// worker it is called concurrently.
type Objective func(ctx context.Context, params map[string]float64) (float64, error)

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
	workers    int
}

func NewGridSearch(params []string, ranges [][]float64) (*GridSearch, error) {
	if len(params) != len(ranges) {
		return nil, fmt.Errorf("grid search: %d params but %d ranges", len(params), len(ranges))
	}
	for i, r := range ranges {
		if len(r) == 0 {
			return nil, fmt.Errorf("grid search: no values for %s", params[i])
		}
	}
	return &GridSearch{paramNames: params, ranges: ranges, workers: 1}, nil
}

// SetWorkers sets how many trials run at once. Values below 1 mean 1.
func (g *GridSearch) SetWorkers(n int) {
	g.workers = max(n, 1)
}

// Search evaluates every combination and returns the best one along with
// all trials in grid order. Failed trials are kept with their error and
// never win.
func (g *GridSearch) Search(ctx context.Context, objective Objective) (map[string]float64, float64, []Trial, error) {
	points := g.combinations(0, map[string]float64{}, nil)
	trials := make([]Trial, len(points))
	done := make([]bool, len(points))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for range min(g.workers, len(points)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				val, err := objective(ctx, maps.Clone(points[i]))
				if err != nil && ctx.Err() != nil {
					continue
				}
				trials[i] = Trial{Params: points[i], Value: val, Err: err}
				done[i] = true
			}
		}()
	}

feed:
	for i := range points {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	best := math.Inf(1)
	var bestParams map[string]float64
	var finished []Trial
	for i, tr := range trials {
		if !done[i] {
			continue
		}
		finished = append(finished, tr)
		if tr.Err == nil && tr.Value < best {
			best = tr.Value
			bestParams = maps.Clone(tr.Params)
		}
	}
	if err := ctx.Err(); err != nil {
		return bestParams, best, finished, err
	}
	if bestParams == nil {
		return nil, best, finished, errors.New("grid search: every trial failed")
	}
	return bestParams, best, finished, nil
}

func (g *GridSearch) combinations(depth int, current map[string]float64, out []map[string]float64) []map[string]float64 {
	if depth == len(g.paramNames) {
		return append(out, current)
	}
	for _, val := range g.ranges[depth] {
		next := maps.Clone(current)
		next[g.paramNames[depth]] = val
		out = g.combinations(depth+1, next, out)
	}
	return out
}
