package scanner

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"sync"

	"golang.org/x/time/rate"

	"github.com/osse101/armory/internal/domain"
	"github.com/osse101/armory/internal/logger"
	"github.com/osse101/armory/internal/metrics"
)

// FrameSource yields camera frames. NextFrame returns io.EOF when the user
// cancels. Errors matching domain.IsShareFailure are treated as one bad frame.
type FrameSource interface {
	NextFrame(ctx context.Context) (image.Image, error)
	Close() error
}

// FrameDecoder turns a frame into a received weapon. *share.Codec implements it.
type FrameDecoder interface {
	DecodeFrame(img image.Image) (*domain.Weapon, error)
}

// Attempt is the outcome of one decoded frame
type Attempt struct {
	Weapon *domain.Weapon
	Err    error
}

// Session owns one frame source from Start until it ends. The source is
// closed exactly once, whichever way the session ends.
type Session struct {
	owner   string
	src     FrameSource
	decoder FrameDecoder
	limiter *rate.Limiter

	ctx      context.Context
	cancel   context.CancelFunc
	attempts chan Attempt
	done     chan struct{}

	stopOnce  sync.Once
	closeOnce sync.Once
	closeErr  error

	// written by run before done is closed
	result *domain.Weapon
	err    error
}

func newSession(ctx context.Context, owner string, src FrameSource, decoder FrameDecoder, limiter *rate.Limiter) *Session {
	ctx, cancel := context.WithCancel(ctx)
	return &Session{
		owner:    owner,
		src:      src,
		decoder:  decoder,
		limiter:  limiter,
		ctx:      ctx,
		cancel:   cancel,
		attempts: make(chan Attempt, AttemptBuffer),
		done:     make(chan struct{}),
	}
}

// Owner returns the character the session scans for
func (s *Session) Owner() string { return s.owner }

// Attempts delivers one value per decoded frame. It is closed when the session ends.
func (s *Session) Attempts() <-chan Attempt { return s.attempts }

// Done is closed once the session has ended and released its source
func (s *Session) Done() <-chan struct{} { return s.done }

// Result blocks until the session ends. It returns the received weapon, or
// domain.ErrScanStopped if the session was cancelled.
func (s *Session) Result() (*domain.Weapon, error) {
	<-s.done
	return s.result, s.err
}

// Stop cancels the session and waits for it to release the source.
// Safe to call more than once and from any goroutine.
func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		// unblock a source that is waiting on I/O and ignores ctx
		s.closeSource()
	})
	<-s.done
}

func (s *Session) closeSource() {
	s.closeOnce.Do(func() {
		s.closeErr = s.src.Close()
		if s.closeErr != nil {
			logger.FromContext(s.ctx).Warn(LogMsgSourceCloseFail, "owner", s.owner, "error", s.closeErr)
		}
	})
}

func (s *Session) start() {
	metrics.ScanSessionsActive.Inc()
	logger.FromContext(s.ctx).Info(LogMsgSessionStarted, "owner", s.owner)
	go s.run()
}

func (s *Session) run() {
	defer close(s.done)
	defer close(s.attempts)
	defer metrics.ScanSessionsActive.Dec()
	defer s.closeSource()
	defer s.cancel()

	log := logger.FromContext(s.ctx)

	for {
		if s.limiter != nil {
			if err := s.limiter.Wait(s.ctx); err != nil {
				s.err = domain.ErrScanStopped
				return
			}
		}

		img, err := s.src.NextFrame(s.ctx)
		if err == nil {
			var w *domain.Weapon
			w, err = s.decoder.DecodeFrame(img)
			if err == nil {
				metrics.ScanFrames.WithLabelValues(metrics.OutcomeSuccess).Inc()
				if !s.deliver(Attempt{Weapon: w}) {
					// stopped before anyone could take the weapon
					s.err = domain.ErrScanStopped
					log.Warn(LogMsgWeaponDiscarded, "owner", s.owner, "weapon_id", w.ID)
					return
				}
				s.result = w
				log.Info(LogMsgSessionEnded, "owner", s.owner, "weapon_id", w.ID)
				return
			}
		}

		switch {
		case domain.IsShareFailure(err):
			// one bad frame never ends the session
			metrics.ScanFrames.WithLabelValues(metrics.OutcomeRetry).Inc()
			log.Debug(LogMsgFrameRejected, "owner", s.owner, "error", err)
			s.offer(Attempt{Err: err})
		case errors.Is(err, io.EOF), s.ctx.Err() != nil:
			s.err = domain.ErrScanStopped
			log.Info(LogMsgSessionEnded, "owner", s.owner, "reason", "stopped")
			return
		default:
			metrics.ScanFrames.WithLabelValues(metrics.OutcomeFailure).Inc()
			s.err = fmt.Errorf("frame source failed: %w", err)
			log.Warn(LogMsgSessionEnded, "owner", s.owner, "error", err)
			return
		}
	}
}

// offer publishes a failed attempt without blocking; a slow consumer loses retries
func (s *Session) offer(a Attempt) {
	select {
	case s.attempts <- a:
	default:
	}
}

// deliver publishes the final attempt unless the session is cancelled first.
// It reports whether the attempt was handed over.
func (s *Session) deliver(a Attempt) bool {
	if s.ctx.Err() != nil {
		return false
	}
	select {
	case s.attempts <- a:
		return true
	case <-s.ctx.Done():
		return false
	}
}
