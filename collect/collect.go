// Package collect discovers the full set of thread references on a page
// whose list grows as it is scrolled, without a known total count or an
// end-of-list signal.
package collect

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/threadex"
)

// Default collection limits.
const (
	DefaultMaxRounds  = 100
	DefaultIdleRounds = 5
	DefaultInterval   = 1500 * time.Millisecond
)

// StopReason records why a collection ended.
type StopReason int

const (
	// StopIdle means no new threads appeared for IdleRounds consecutive rounds.
	StopIdle StopReason = iota
	// StopMaxRounds means the round cap was reached.
	StopMaxRounds
)

// String returns a short name for the reason.
func (r StopReason) String() string {
	switch r {
	case StopIdle:
		return "idle"
	case StopMaxRounds:
		return "max-rounds"
	default:
		return fmt.Sprintf("StopReason(%d)", int(r))
	}
}

// Config controls when a collection stops.
type Config struct {
	// MaxRounds bounds the number of probe rounds.
	MaxRounds int
	// IdleRounds is the number of consecutive rounds without growth
	// after which the list is considered complete.
	IdleRounds int
	// Interval is the wait after each advance before the next probe.
	Interval time.Duration
}

// DefaultConfig returns the default limits: 100 rounds, 5 idle rounds, 1.5s.
func DefaultConfig() Config {
	return Config{
		MaxRounds:  DefaultMaxRounds,
		IdleRounds: DefaultIdleRounds,
		Interval:   DefaultInterval,
	}
}

// ConfigFromProfile returns the limits configured by a site profile,
// falling back to defaults for unset values.
func ConfigFromProfile(p *threadex.Profile) Config {
	cfg := DefaultConfig()
	if p.MaxRounds > 0 {
		cfg.MaxRounds = p.MaxRounds
	}
	if p.IdleRounds > 0 {
		cfg.IdleRounds = p.IdleRounds
	}
	if p.ScrollInterval > 0 {
		cfg.Interval = p.ScrollInterval
	}
	return cfg
}

// Result holds the outcome of a collection.
type Result struct {
	Threads []threadex.ThreadRef
	Rounds  int
	Stop    StopReason
}

// RoundEvent reports the state after one probe round.
type RoundEvent struct {
	Round int // 1-based
	Found int // size of the collected set
	New   int // threads added this round
	Idle  int // consecutive rounds without growth
}

// ProgressFunc is a callback for reporting collection progress.
type ProgressFunc func(RoundEvent)

// Collector discovers thread references by repeatedly probing a page,
// merging what it finds, and advancing the page until the set stops growing.
type Collector struct {
	Probe    threadex.PageProbe
	Action   threadex.PageAction
	Waiter   threadex.Waiter
	Config   Config
	Progress ProgressFunc
}

// NewCollector returns a Collector with DefaultConfig.
func NewCollector(probe threadex.PageProbe, action threadex.PageAction, waiter threadex.Waiter) *Collector {
	return &Collector{
		Probe:  probe,
		Action: action,
		Waiter: waiter,
		Config: DefaultConfig(),
	}
}

// Collect runs probe rounds until no new thread has appeared for
// Config.IdleRounds consecutive rounds or Config.MaxRounds is reached.
// The returned threads are unique by URL in first-seen order.
// A probe, advance or wait failure aborts the collection.
func (c *Collector) Collect(ctx context.Context) (*Result, error) {
	cfg := c.config()

	collected := threadex.NewThreadRefSet()
	lastCount := 0
	idle := 0

	for round := 1; round <= cfg.MaxRounds; round++ {
		refs, err := c.Probe.Probe(ctx)
		if err != nil {
			return nil, fmt.Errorf("probe round %d: %w", round, err)
		}
		added := collected.Merge(refs)

		if collected.Len() == lastCount {
			idle++
		} else {
			idle = 0
			lastCount = collected.Len()
		}

		if c.Progress != nil {
			c.Progress(RoundEvent{
				Round: round,
				Found: collected.Len(),
				New:   added,
				Idle:  idle,
			})
		}

		if idle >= cfg.IdleRounds {
			return &Result{Threads: collected.Refs(), Rounds: round, Stop: StopIdle}, nil
		}

		// No advance after the final round; nothing would observe it.
		if round == cfg.MaxRounds {
			break
		}

		if err := c.Action.Advance(ctx); err != nil {
			return nil, fmt.Errorf("advance round %d: %w", round, err)
		}
		if err := c.Waiter.Wait(ctx, cfg.Interval); err != nil {
			return nil, err
		}
	}

	return &Result{Threads: collected.Refs(), Rounds: cfg.MaxRounds, Stop: StopMaxRounds}, nil
}

// config returns c.Config with defaults applied to unset fields.
func (c *Collector) config() Config {
	cfg := c.Config
	if cfg.MaxRounds <= 0 {
		cfg.MaxRounds = DefaultMaxRounds
	}
	if cfg.IdleRounds <= 0 {
		cfg.IdleRounds = DefaultIdleRounds
	}
	if cfg.Interval < 0 {
		cfg.Interval = 0
	}
	return cfg
}
