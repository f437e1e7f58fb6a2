package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/heptiolabs/healthcheck"
	"github.com/panjf2000/ants/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/process"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/NeowayLabs/gbm"
	"github.com/NeowayLabs/gbm/dumb"
	"github.com/NeowayLabs/gbm/internal/config"
	"github.com/NeowayLabs/gbm/internal/logging"
	"github.com/NeowayLabs/gbm/metrics"
)

func (a *app) soakCommand() *cobra.Command {
	defaults := config.DefaultConfig().Soak
	cmd := &cobra.Command{
		Use:   "soak",
		Short: "Allocate, map, fill and destroy buffers from many workers",
		Long: `soak runs one device per worker, each on its own descriptor, and cycles
create, map, write and destroy until the duration elapses. Metrics are
served on /metrics and health on /live and /ready while it runs.`,
		Args: cobra.NoArgs,
		RunE: a.runSoak,
	}
	flags := cmd.Flags()
	flags.Int("workers", defaults.Workers, "concurrent workers")
	flags.Duration("duration", defaults.Duration, "how long to run")
	flags.String("listen", defaults.Listen, "metrics and health address, empty to disable")
	flags.Uint32("width", defaults.Width, "buffer width")
	flags.Uint32("height", defaults.Height, "buffer height")
	flags.String("format", defaults.Format, "fourcc of the pixel format")
	for _, name := range []string{"workers", "duration", "listen", "width", "height", "format"} {
		a.bind(flags.Lookup(name), "soak."+name)
	}
	return cmd
}

type soakParams struct {
	workers       int
	width, height uint32
	format        uint32
}

type soakStats struct {
	cycles uint64
	errors uint64
	opened int
}

// deviceOpener opens a private device for one worker. The returned func
// releases it.
type deviceOpener func() (gbm.Device, func(), error)

func (a *app) runSoak(cmd *cobra.Command, args []string) error {
	cfg := a.cfg.Soak
	log := logging.Get()
	f, err := cfg.FourCC()
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	coll := metrics.New("dumbgbm")
	reg.MustRegister(coll, collectors.NewGoCollector())

	var ready atomic.Bool
	health := healthcheck.NewHandler()
	health.AddLivenessCheck("goroutine-threshold", healthcheck.GoroutineCountCheck(cfg.Workers*4+100))
	health.AddReadinessCheck("device", func() error {
		if !ready.Load() {
			return errors.New("no device opened yet")
		}
		return nil
	})

	if cfg.Listen != "" {
		srv := &http.Server{Addr: cfg.Listen, Handler: soakMux(reg, health)}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.WithError(err).Error("metrics server failed")
			}
		}()
		defer srv.Close()
		log.WithField("addr", cfg.Listen).Info("serving metrics and health")
	}

	open := func() (gbm.Device, func(), error) {
		card, dev, err := a.openDevice(dumb.WithMetrics(coll))
		if err != nil {
			return nil, nil, err
		}
		ready.Store(true)
		return dev, func() {
			dev.Destroy()
			card.Close()
		}, nil
	}

	before, _ := residentBytes()
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Duration)
	defer cancel()

	stats, err := soak(ctx, soakParams{
		workers: cfg.Workers,
		width:   cfg.Width,
		height:  cfg.Height,
		format:  f,
	}, open, log)
	if err != nil {
		return err
	}
	after, _ := residentBytes()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Workers:  %d of %d\n", stats.opened, cfg.Workers)
	fmt.Fprintf(out, "Cycles:   %d\n", stats.cycles)
	fmt.Fprintf(out, "Errors:   %d\n", stats.errors)
	fmt.Fprintf(out, "RSS:      %d -> %d bytes\n", before, after)
	return nil
}

func soakMux(reg *prometheus.Registry, health healthcheck.Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("/live", health.LiveEndpoint)
	mux.HandleFunc("/ready", health.ReadyEndpoint)
	return mux
}

// soak runs p.workers workers on an ants pool until ctx is done. It fails
// only when no worker could open a device. A worker whose cycles fail
// backs off before trying again.
func soak(ctx context.Context, p soakParams, open deviceOpener, log logrus.FieldLogger) (soakStats, error) {
	pool, err := ants.NewPool(p.workers)
	if err != nil {
		return soakStats{}, err
	}
	defer pool.Release()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg      sync.WaitGroup
		cycles  atomic.Uint64
		failed  atomic.Uint64
		opened  atomic.Int64
		openErr error
		errOnce sync.Once
	)
	for i := 0; i < p.workers; i++ {
		worker := i
		wg.Add(1)
		err := pool.Submit(func() {
			defer wg.Done()
			dev, release, err := open()
			if err != nil {
				errOnce.Do(func() { openErr = err })
				log.WithError(err).WithField("worker", worker).Warn("open device failed")
				return
			}
			defer release()
			opened.Add(1)

			retry := newCycleBackOff()
			for ctx.Err() == nil {
				if err := soakCycle(dev, p); err != nil {
					failed.Add(1)
					wait := retry.NextBackOff()
					log.WithError(err).WithFields(logrus.Fields{
						"worker": worker,
						"wait":   wait,
					}).Debug("soak cycle failed")
					select {
					case <-ctx.Done():
					case <-time.After(wait):
					}
					continue
				}
				retry.Reset()
				cycles.Add(1)
			}
		})
		if err != nil {
			wg.Done()
			cancel()
			wg.Wait()
			return soakStats{}, fmt.Errorf("submit worker %d: %w", worker, err)
		}
	}
	wg.Wait()

	stats := soakStats{
		cycles: cycles.Load(),
		errors: failed.Load(),
		opened: int(opened.Load()),
	}
	if stats.opened == 0 {
		return stats, fmt.Errorf("no worker opened a device: %w", openErr)
	}
	return stats, nil
}

// newCycleBackOff paces a worker whose cycles keep failing, for example
// once the card runs out of memory.
func newCycleBackOff() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Millisecond
	b.MaxInterval = 250 * time.Millisecond
	b.RandomizationFactor = 0.2
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}

func soakCycle(dev gbm.Device, p soakParams) error {
	bo, err := dev.CreateBO(p.width, p.height, p.format, gbm.UseScanout|gbm.UseWrite, nil)
	if err != nil {
		return err
	}
	defer bo.Destroy()

	data, stride, err := bo.Map(0, 0, p.width, p.height, gbm.TransferWrite)
	if err != nil {
		return err
	}
	defer bo.Unmap(data)
	row := data[:min(int(stride), len(data))]
	for i := range row {
		row[i] = byte(i)
	}
	return nil
}

func residentBytes() (uint64, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	mem, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return mem.RSS, nil
}
