package batch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/linkpulse/linkpulse/internal/logging"
	"github.com/linkpulse/linkpulse/internal/model"
)

var log *logrus.Logger

func init() {
	log = logging.GetLogger()
}

// ErrBatchTooLarge is returned when a batch exceeds the configured URL cap.
var ErrBatchTooLarge = errors.New("batch exceeds the URL limit")

// ProbeFunc executes one probe request. It must not return an error;
// failure modes belong inside the result.
type ProbeFunc func(ctx context.Context, req model.ProbeRequest) model.ProbeResult

// Config holds settings for the runner. Each Runner owns its copy, so
// batches with different limits can run concurrently without interference.
type Config struct {
	WindowSize   int           // probes run concurrently per window
	PacingDelay  time.Duration // sleep between windows
	MaxBatchSize int           // hard cap on URLs per batch
}

// DefaultConfig returns the stock limits: windows of 8, 200ms pacing, 50
// URLs per batch.
func DefaultConfig() Config {
	return Config{WindowSize: 8, PacingDelay: 200 * time.Millisecond, MaxBatchSize: 50}
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.WindowSize <= 0 {
		c.WindowSize = def.WindowSize
	}
	if c.PacingDelay < 0 {
		c.PacingDelay = def.PacingDelay
	}
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = def.MaxBatchSize
	}
	return c
}

// Runner schedules batches of probes in sequential bounded windows.
type Runner struct {
	cfg   Config
	probe ProbeFunc
}

// New creates a Runner around the given probe function.
func New(cfg Config, probe ProbeFunc) *Runner {
	return &Runner{cfg: cfg.withDefaults(), probe: probe}
}

// MaxBatchSize reports the runner's URL cap.
func (r *Runner) MaxBatchSize() int { return r.cfg.MaxBatchSize }

// Run probes every URL and returns one result per input, in input order.
// URLs are partitioned into fixed-size windows; all probes within a window
// run concurrently and the window is joined before the next one starts, with
// a pacing sleep strictly between windows. A probe that panics is replaced
// by a synthetic error result so the batch always completes with a full
// result set.
func (r *Runner) Run(ctx context.Context, urls []string, opts model.ProbeOptions) ([]model.ProbeResult, error) {
	if len(urls) > r.cfg.MaxBatchSize {
		return nil, fmt.Errorf("%w: got %d, limit %d", ErrBatchTooLarge, len(urls), r.cfg.MaxBatchSize)
	}

	// one immutable request per accepted URL, consumed by exactly one probe
	reqs := make([]model.ProbeRequest, len(urls))
	for i, u := range urls {
		reqs[i] = model.ProbeRequest{URL: u, Options: opts}
	}

	out := make([]model.ProbeResult, len(urls))
	for start := 0; start < len(urls); start += r.cfg.WindowSize {
		if start > 0 && r.cfg.PacingDelay > 0 {
			select {
			case <-time.After(r.cfg.PacingDelay):
			case <-ctx.Done():
			}
		}
		end := min(start+r.cfg.WindowSize, len(urls))
		log.Debugf("Probing window %d-%d of %d", start, end-1, len(urls))

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				out[i] = r.runOne(ctx, reqs[i])
			}(i)
		}
		wg.Wait()
	}
	return out, nil
}

// runOne isolates a single probe: a panic becomes a synthetic
// PROCESSING_ERROR result instead of taking down the batch.
func (r *Runner) runOne(ctx context.Context, req model.ProbeRequest) (res model.ProbeResult) {
	defer func() {
		if rec := recover(); rec != nil {
			log.Errorf("Probe for %s panicked: %v", req.URL, rec)
			res = model.ProbeResult{
				URL:         req.URL,
				Status:      model.StatusError,
				StatusCode:  model.ErrorCode("PROCESSING_ERROR"),
				Message:     "Processing Error",
				ErrorDetail: fmt.Sprint(rec),
				Timestamp:   time.Now().UTC(),
			}
		}
	}()
	return r.probe(ctx, req)
}
