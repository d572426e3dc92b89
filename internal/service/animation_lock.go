package service

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/tejashwikalptaru/coverflow/internal/domain"
	"github.com/tejashwikalptaru/coverflow/internal/ports"
)

// LockConfig holds the fallback timing of the animation lock.
type LockConfig struct {
	// FallbackMs is used when a card's fallback duration is absent or unparsable
	FallbackMs float64

	// BufferMs is added to the fallback so the transition end normally wins
	BufferMs float64
}

// DefaultLockConfig returns the standard fallback timing (400ms + 60ms).
func DefaultLockConfig() LockConfig {
	return LockConfig{FallbackMs: 400, BufferMs: 60}
}

// AnimationLock serializes index transitions against in-flight card animations.
//
// States are Idle and Locked(token). Arm increments the token and either
// resolves immediately (reduced motion, no transform transition) or schedules
// a fallback timer. A fallback that fires with a stale token is ignored.
//
// Thread-safe: fallback timers may fire on another goroutine.
type AnimationLock struct {
	logger    *slog.Logger
	env       ports.Environment
	scheduler ports.Scheduler
	config    LockConfig

	mu     sync.Mutex
	locked bool
	token  uint64
	timer  ports.Timer
}

// NewAnimationLock creates an idle lock.
func NewAnimationLock(
	logger *slog.Logger,
	env ports.Environment,
	scheduler ports.Scheduler,
	config LockConfig,
) *AnimationLock {
	return &AnimationLock{
		logger:    logger,
		env:       env,
		scheduler: scheduler,
		config:    config,
	}
}

// Arm locks for the transition towards active. A nil active slide resolves immediately.
// Returns the fallback delay, or zero when the lock resolved synchronously.
func (l *AnimationLock) Arm(active *domain.Slide) time.Duration {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.token++
	token := l.token
	l.locked = true

	if l.env.PrefersReducedMotion() {
		l.logger.Debug("lock resolved: reduced motion")
		l.releaseLocked()
		return 0
	}
	if active == nil {
		l.releaseLocked()
		return 0
	}

	style := l.env.TransitionStyle(*active)
	ms := style.MillisFor(domain.TransformProperty)
	if ms <= 0 {
		l.logger.Debug("lock resolved: no transform transition", slog.String("slide", active.ID))
		l.releaseLocked()
		return 0
	}

	base := domain.ParseDurationMs(style.FallbackDuration, l.config.FallbackMs)
	fallback := time.Duration((math.Max(ms, base) + l.config.BufferMs) * float64(time.Millisecond))

	if l.timer != nil {
		l.timer.Stop()
	}
	l.timer = l.scheduler.AfterFunc(fallback, func() { l.expire(token) })

	l.logger.Debug("lock armed",
		slog.Uint64("token", token),
		slog.Duration("fallback", fallback),
	)
	return fallback
}

func (l *AnimationLock) expire(token uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if token != l.token {
		return
	}
	if l.locked {
		l.logger.Debug("lock resolved: fallback timer", slog.Uint64("token", token))
	}
	l.timer = nil
	l.locked = false
}

// Finish handles a transition end reported for source. It releases the lock
// only when locked, source is the active slide and property is the transform.
// Returns whether the signal was honoured.
func (l *AnimationLock) Finish(sourceID, property, activeID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.locked || property != domain.TransformProperty || sourceID == "" || sourceID != activeID {
		return false
	}

	l.logger.Debug("lock resolved: transition end", slog.String("slide", sourceID))
	l.releaseLocked()
	return true
}

// Release stops any pending fallback and forces the lock idle.
func (l *AnimationLock) Release() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.releaseLocked()
}

func (l *AnimationLock) releaseLocked() {
	l.locked = false
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
}

// Locked reports whether a transition is in flight.
func (l *AnimationLock) Locked() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.locked
}

// Token returns the current lock cycle.
func (l *AnimationLock) Token() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.token
}
