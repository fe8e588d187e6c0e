// Package bench measures the set-algebra operators across generated operand
// shapes on a worker pool.
package bench

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oisee/concise/pkg/concise"
	"github.com/oisee/concise/pkg/generator"
)

// task is one cell of the matrix: an operator applied to operands of one
// shape.
type task struct {
	op      string
	dist    generator.Distribution
	density float64
}

func opByName(name string) (func(a, b *concise.Set) *concise.Set, error) {
	switch name {
	case "and":
		return (*concise.Set).Intersection, nil
	case "or":
		return (*concise.Set).Union, nil
	case "xor":
		return (*concise.Set).SymmetricDifference, nil
	case "andnot":
		return (*concise.Set).Difference, nil
	default:
		return nil, fmt.Errorf("bench: unknown operator %q", name)
	}
}

// Run executes the benchmark matrix and returns the collected table.
func Run(cfg *Config) (*Table, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	workers := cfg.Run.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	var tasks []task
	for _, op := range cfg.Run.Operators {
		for _, dist := range cfg.Sets.Distributions {
			for _, density := range cfg.Sets.Densities {
				tasks = append(tasks, task{op, generator.Distribution(dist), density})
			}
		}
	}

	table := NewTable()
	ch := make(chan task, len(tasks))
	for _, t := range tasks {
		ch <- t
	}
	close(ch)

	var completed atomic.Int64
	done := make(chan struct{})
	start := time.Now()
	if cfg.Run.Verbose {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					comp := completed.Load()
					fmt.Printf("  [%s] %d/%d cells\n",
						time.Since(start).Round(time.Second), comp, len(tasks))
				}
			}
		}()
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error
	for i := 0; i < workers; i++ {
		wg.Add(1)
		// each worker derives its own seed so cells are independent; cells
		// go to whichever worker takes them first, so a cell's operands are
		// the same from run to run only with a single worker
		seed := cfg.Sets.Seed + uint64(i)*0x9E3779B97F4A7C15
		go func(seed uint64) {
			defer wg.Done()
			gen := generator.New(seed)
			for t := range ch {
				if err := runCell(gen, cfg, t, table); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
				}
				completed.Add(1)
			}
		}(seed)
	}
	wg.Wait()
	close(done)

	if firstErr != nil {
		return nil, firstErr
	}
	if cfg.Run.Verbose {
		fmt.Printf("  [%s] %d/%d cells DONE\n",
			time.Since(start).Round(time.Second), completed.Load(), len(tasks))
	}
	return table, nil
}

func runCell(gen *generator.Generator, cfg *Config, t task, table *Table) error {
	apply, err := opByName(t.op)
	if err != nil {
		return err
	}
	a, err := gen.Set(t.dist, cfg.Sets.Universe, t.density)
	if err != nil {
		return err
	}
	b, err := gen.Set(t.dist, cfg.Sets.Universe, t.density)
	if err != nil {
		return err
	}

	var res *concise.Set
	start := time.Now()
	for i := 0; i < cfg.Run.Repetitions; i++ {
		res = apply(a, b)
	}
	mean := time.Since(start).Nanoseconds() / int64(cfg.Run.Repetitions)

	table.Add(Result{
		Operator:     t.op,
		Distribution: string(t.dist),
		Density:      t.density,
		MeanNanos:    mean,
		OperandWords: a.WordCount() + b.WordCount(),
		ResultWords:  res.WordCount(),
		ResultRatio:  res.BitmapCompressionRatio(),
	})
	return nil
}
