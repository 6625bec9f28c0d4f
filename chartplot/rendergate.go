// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartplot

import (
	"sync"
	"time"
)

// HeavyItem is a drawable expensive enough to hide while the viewport is
// moving. Implementations must tolerate visibility changes from the gate's
// tick goroutine.
type HeavyItem interface {
	SetVisible(visible bool)
}

// Handle identifies a registered heavy item. The registry is append-only,
// so handles stay valid for the life of the gate.
type Handle int

type GateOptions struct {
	// Ticks of the countdown started by Suppress.
	QuietTicks int
	// Ticks of the countdown started by Register. New items stay hidden
	// a while longer so initial data loads do not flicker.
	RegisterBlindTicks int
	// Tick interval, independent of the render rate.
	Interval time.Duration
}

func DefaultGateOptions() GateOptions {
	return GateOptions{
		QuietTicks:         2,
		RegisterBlindTicks: 50,
		Interval:           50 * time.Millisecond,
	}
}

func (o *GateOptions) sanitize() {
	def := DefaultGateOptions()
	if o.QuietTicks <= 0 {
		o.QuietTicks = def.QuietTicks
	}
	if o.RegisterBlindTicks <= 0 {
		o.RegisterBlindTicks = def.RegisterBlindTicks
	}
	if o.Interval <= 0 {
		o.Interval = def.Interval
	}
}

// RenderGate hides registered heavy items while the viewport is moving and
// reveals them once input has been idle for QuietTicks ticks. It is a
// debounce, not a scheduler: it never skips a reveal and never reveals
// twice for one countdown.
type RenderGate struct {
	mu         sync.Mutex
	opts       GateOptions
	items      []HeavyItem
	blindCount int
	done       chan struct{}
	started    bool
	invalidate func()
}

// NewRenderGate creates a stopped gate. The invalidate callback is invoked
// after items are revealed so the host can schedule a redraw; it may be nil.
func NewRenderGate(opts GateOptions, invalidate func()) *RenderGate {
	opts.sanitize()
	return &RenderGate{
		opts:       opts,
		invalidate: invalidate,
	}
}

// Register hides the item, adds it to the registry and restarts the
// countdown. Items are never unregistered.
func (g *RenderGate) Register(item HeavyItem) Handle {
	item.SetVisible(false)
	g.mu.Lock()
	defer g.mu.Unlock()
	g.items = append(g.items, item)
	g.blindCount = g.opts.RegisterBlindTicks
	return Handle(len(g.items) - 1)
}

// Suppress hides all registered items and restarts the quiet countdown.
// Called on every committed rescale.
func (g *RenderGate) Suppress() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, item := range g.items {
		item.SetVisible(false)
	}
	g.blindCount = g.opts.QuietTicks
}

// Advance performs one tick. Items are revealed exactly when the countdown
// reaches zero; afterwards the counter keeps decreasing without effect
// until the next Suppress.
func (g *RenderGate) Advance() {
	g.mu.Lock()
	g.blindCount--
	reveal := g.blindCount == 0
	if reveal {
		for _, item := range g.items {
			item.SetVisible(true)
		}
	}
	invalidate := g.invalidate
	g.mu.Unlock()
	if reveal && invalidate != nil {
		invalidate()
	}
}

// Start launches the periodic tick. It is a no-op if already running.
func (g *RenderGate) Start() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.started {
		return
	}
	g.started = true
	g.done = make(chan struct{})
	go g.run(g.done)
}

// Stop cancels the periodic tick. Must be called when the owning plot is
// destroyed, otherwise the tick goroutine leaks.
func (g *RenderGate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.started {
		return
	}
	g.started = false
	close(g.done)
}

func (g *RenderGate) run(done chan struct{}) {
	ticker := time.NewTicker(g.opts.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			g.Advance()
		case <-done:
			return
		}
	}
}
