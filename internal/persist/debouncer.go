// Package persist coalesces character writes before they reach storage.
package persist

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/armory/internal/concurrency"
	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/logger"
	"github.com/osse101/armory/internal/metrics"
	"github.com/osse101/armory/internal/worker"
)

// Saver is the write half of repository.Character
type Saver interface {
	Save(ctx context.Context, character *domain.Character) error
}

// Enqueuer runs save jobs in the background
type Enqueuer interface {
	Enqueue(ctx context.Context, job worker.Job) error
}

type pending struct {
	character *domain.Character
	seq       uint64
	attempts  int
	timer     *time.Timer
}

// Debouncer delays saves of the same character until it has been quiet for
// the configured delay, then writes only the latest value.
type Debouncer struct {
	saver Saver
	pool  Enqueuer
	delay time.Duration
	locks *concurrency.LockManager

	mu      sync.Mutex
	pending map[string]*pending
	seq     map[string]uint64 // last scheduled sequence per name
	written map[string]uint64 // last written sequence per name
	closed  bool

	inflight int
	idle     chan struct{} // closed when inflight drops to zero
}

// NewDebouncer creates a debouncer that writes through saver on pool
func NewDebouncer(saver Saver, pool Enqueuer, delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{
		saver:   saver,
		pool:    pool,
		delay:   delay,
		locks:   concurrency.NewLockManager(),
		pending: make(map[string]*pending),
		seq:     make(map[string]uint64),
		written: make(map[string]uint64),
	}
}

// Schedule records a snapshot of c to be written after the quiet period.
// A later Schedule for the same name replaces the snapshot and restarts the wait.
func (d *Debouncer) Schedule(c *domain.Character) {
	snapshot := c.Clone()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.seq[snapshot.Name]++
	seq := d.seq[snapshot.Name]

	if p, ok := d.pending[snapshot.Name]; ok {
		p.character = snapshot
		p.seq = seq
		p.attempts = 0
		p.timer.Reset(d.delay)
		metrics.SavesCoalesced.Inc()
		return
	}

	d.arm(&pending{character: snapshot, seq: seq}, d.delay)
}

// arm registers p and starts its timer. Caller holds d.mu.
func (d *Debouncer) arm(p *pending, after time.Duration) {
	name := p.character.Name
	d.pending[name] = p
	p.timer = time.AfterFunc(after, func() { d.fire(name, p) })
}

// Cancel drops any pending write for name, e.g. after the character is deleted
func (d *Debouncer) Cancel(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if p, ok := d.pending[name]; ok {
		p.timer.Stop()
		delete(d.pending, name)
	}
	// anything already queued is now stale
	d.seq[name]++
	d.written[name] = d.seq[name]
}

// Peek returns a copy of the snapshot waiting to be written for name
func (d *Debouncer) Peek(name string) (*domain.Character, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.pending[name]
	if !ok {
		return nil, false
	}
	return p.character.Clone(), true
}

// Pending reports how many characters have a write waiting
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

func (d *Debouncer) fire(name string, p *pending) {
	d.mu.Lock()
	if d.pending[name] != p {
		// replaced or flushed after the timer was already running
		d.mu.Unlock()
		return
	}
	delete(d.pending, name)
	job := &saveJob{d: d, character: p.character, seq: p.seq, attempts: p.attempts}
	if d.inflight == 0 {
		d.idle = make(chan struct{})
	}
	d.inflight++
	d.mu.Unlock()

	if err := d.pool.Enqueue(context.Background(), job); err != nil {
		// pool is gone; write inline so the value is not lost
		logger.Warn(LogMsgSaveEnqueueFail, "character", name, "error", err)
		ctx, cancel := context.WithTimeout(context.Background(), worker.DefaultJobTimeout)
		defer cancel()
		_ = job.Process(ctx)
	}
}

// Flush writes every pending snapshot now and waits for in-flight writes.
// Schedules arriving during Flush are handled normally afterwards.
func (d *Debouncer) Flush(ctx context.Context) error {
	d.mu.Lock()
	batch := make([]*saveJob, 0, len(d.pending))
	for name, p := range d.pending {
		p.timer.Stop()
		delete(d.pending, name)
		batch = append(batch, &saveJob{d: d, character: p.character, seq: p.seq, attempts: MaxSaveAttempts - 1})
	}
	d.mu.Unlock()

	if len(batch) > 0 {
		logger.FromContext(ctx).Info(LogMsgFlushing, "count", len(batch))
	}

	var errs []error
	for _, job := range batch {
		if err := job.write(ctx); err != nil {
			errs = append(errs, err)
		}
	}

	d.mu.Lock()
	idle := d.idle
	busy := d.inflight > 0
	d.mu.Unlock()
	if busy {
		select {
		case <-idle:
		case <-ctx.Done():
			errs = append(errs, ctx.Err())
		}
	}

	return errors.Join(errs...)
}

// Close flushes and stops accepting retries
func (d *Debouncer) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	return d.Flush(ctx)
}

type saveJob struct {
	d         *Debouncer
	character *domain.Character
	seq       uint64
	attempts  int
}

// Process writes the snapshot, retrying later on failure
func (j *saveJob) Process(ctx context.Context) error {
	defer j.d.done()

	err := j.write(ctx)
	if err == nil {
		return nil
	}
	j.d.retry(j)
	return err
}

// write saves the snapshot unless a newer one for the same name was already written
func (j *saveJob) write(ctx context.Context) error {
	name := j.character.Name
	return j.d.locks.Do(name, func() error {
		j.d.mu.Lock()
		stale := j.seq <= j.d.written[name]
		j.d.mu.Unlock()
		if stale {
			return nil
		}

		if err := j.d.saver.Save(ctx, j.character); err != nil {
			metrics.SavesWritten.WithLabelValues(metrics.OutcomeFailure).Inc()
			logger.FromContext(ctx).Error(LogMsgSaveFailed, "character", name, "attempt", j.attempts+1, "error", err)
			return fmt.Errorf("save %s: %w", name, err)
		}

		j.d.mu.Lock()
		j.d.written[name] = j.seq
		j.d.mu.Unlock()
		metrics.SavesWritten.WithLabelValues(metrics.OutcomeSuccess).Inc()
		return nil
	})
}

func (d *Debouncer) done() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.inflight--
	if d.inflight == 0 {
		close(d.idle)
	}
}

func (d *Debouncer) retry(j *saveJob) {
	name := j.character.Name
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, newer := d.pending[name]; newer || d.closed {
		return
	}
	// cancelled, superseded by a later schedule, or a newer snapshot already landed
	if j.seq < d.seq[name] || j.seq <= d.written[name] {
		return
	}
	if j.attempts+1 >= MaxSaveAttempts {
		logger.Error(LogMsgSaveDropped, "character", name, "attempts", j.attempts+1)
		return
	}

	metrics.SavesWritten.WithLabelValues(metrics.OutcomeRetry).Inc()
	logger.Warn(LogMsgSaveRetrying, "character", name, "attempt", j.attempts+2)
	d.arm(&pending{character: j.character, seq: j.seq, attempts: j.attempts + 1}, d.delay*time.Duration(j.attempts+2))
}
