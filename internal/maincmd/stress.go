package maincmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/mna/lotus/internal/atomicslot"
	"github.com/mna/lotus/lang/machine"
	"github.com/mna/lotus/lang/types"
	"github.com/mna/mainer"
	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/sirupsen/logrus"
)

func (c *Cmd) Stress(ctx context.Context, stdio mainer.Stdio, args []string) error {
	m := newStressMetrics()
	res, err := runStress(ctx, c.log, c.Workers, c.Iterations, m)
	if err != nil {
		return printError(stdio, err)
	}
	fmt.Fprintf(stdio.Stdout, "workers=%d iterations=%d final=%s expected=%d\n",
		res.Workers, res.Iterations, res.Final, res.Expected)

	if c.Metrics {
		if err := m.write(stdio.Stdout); err != nil {
			return printError(stdio, err)
		}
	}
	return nil
}

type stressResult struct {
	Workers    int
	Iterations int
	Final      types.Value
	Expected   int64
	Retries    int64
}

// stressMetrics records the fetch-update activity of a stress run in a
// private registry.
type stressMetrics struct {
	reg      *prometheus.Registry
	calls    prometheus.Counter
	retries  prometheus.Counter
	attempts prometheus.Histogram
}

func newStressMetrics() *stressMetrics {
	m := &stressMetrics{
		reg: prometheus.NewRegistry(),
		calls: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: binName,
			Subsystem: "stress",
			Name:      "fetch_update_calls_total",
			Help:      "Total number of successful atomic_fetch_update calls.",
		}),
		retries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: binName,
			Subsystem: "stress",
			Name:      "fetch_update_retries_total",
			Help:      "Total number of transformation calls discarded due to a concurrent write.",
		}),
		attempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: binName,
			Subsystem: "stress",
			Name:      "fetch_update_attempts",
			Help:      "Number of transformation calls per atomic_fetch_update.",
			Buckets:   prometheus.LinearBuckets(1, 1, 8),
		}),
	}
	m.reg.MustRegister(m.calls, m.retries, m.attempts)
	return m
}

func (m *stressMetrics) observe(attempts int64) {
	m.calls.Inc()
	m.retries.Add(float64(attempts - 1))
	m.attempts.Observe(float64(attempts))
}

func (m *stressMetrics) write(w io.Writer) error {
	mfs, err := m.reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

// runStress increments a shared cell with atomic_fetch_update from workers
// goroutines, iterations times each, and verifies that the final value of
// the cell accounts for every increment.
func runStress(ctx context.Context, log *logrus.Logger, workers, iterations int, m *stressMetrics) (stressResult, error) {
	start := time.Now()
	res := stressResult{
		Workers:    workers,
		Iterations: iterations,
		Expected:   int64(workers) * int64(iterations),
	}

	var main machine.Thread
	main.Init(ctx)
	defer main.Release()

	cell, err := machine.Call(&main, machine.MakeAtomic, types.Tuple{types.Int(0)})
	if err != nil {
		return res, err
	}

	pool, err := ants.NewPool(max(workers, 1), ants.WithPreAlloc(true))
	if err != nil {
		return res, err
	}
	defer pool.Release()

	var (
		wg      sync.WaitGroup
		errs    = make([]error, workers)
		retries = make([]int64, workers)
	)
	for i := 0; i < workers; i++ {
		i := i
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			retries[i], errs[i] = stressWorker(ctx, log, i, cell, iterations, m)
		})
		if err != nil {
			wg.Done()
			errs[i] = err
		}
	}
	wg.Wait()
	if err := errors.Join(errs...); err != nil {
		return res, err
	}

	for _, r := range retries {
		res.Retries += r
	}
	final, err := machine.Call(&main, machine.AtomicLoad, types.Tuple{cell})
	if err != nil {
		return res, err
	}
	res.Final = final

	log.WithFields(logrus.Fields{
		"backend": atomicslot.Name,
		"retries": res.Retries,
		"elapsed": time.Since(start),
	}).Info("stress run completed")

	ok, err := main.Equals(final, types.Int(res.Expected))
	if err != nil {
		return res, err
	}
	if !ok {
		return res, fmt.Errorf("lost updates: final value is %s, expected %d", final, res.Expected)
	}
	return res, nil
}

func stressWorker(ctx context.Context, log *logrus.Logger, id int, cell types.Value, iterations int, m *stressMetrics) (int64, error) {
	th := machine.Thread{Name: fmt.Sprintf("worker-%d", id)}
	th.Init(ctx)
	defer th.Release()

	var count int64
	incr := newIncr(&count)
	args := types.Tuple{cell, incr}
	for j := 0; j < iterations; j++ {
		before := count
		if _, err := machine.Call(&th, machine.AtomicFetchUpdate, args); err != nil {
			return 0, fmt.Errorf("%s: %w", th.Name, err)
		}
		m.observe(count - before)
	}

	retries := count - int64(iterations)
	log.WithFields(logrus.Fields{
		"worker":  th.Name,
		"retries": retries,
	}).Debug("worker done")
	return retries, nil
}
