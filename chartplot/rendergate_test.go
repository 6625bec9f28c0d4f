// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The finview authors

package chartplot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeItem struct {
	visible bool
	reveals int
}

func (f *fakeItem) SetVisible(visible bool) {
	if visible && !f.visible {
		f.reveals++
	}
	f.visible = visible
}

func TestRegisterHidesItem(t *testing.T) {
	g := NewRenderGate(GateOptions{QuietTicks: 2, RegisterBlindTicks: 5}, nil)
	item := &fakeItem{visible: true}

	g.Register(item)

	assert.False(t, item.visible)
}

func TestRegisterCountdown(t *testing.T) {
	g := NewRenderGate(GateOptions{QuietTicks: 2, RegisterBlindTicks: 5}, nil)
	item := &fakeItem{}
	g.Register(item)

	for i := 0; i < 4; i++ {
		g.Advance()
		assert.False(t, item.visible)
	}
	g.Advance()
	assert.True(t, item.visible)
}

func TestSuppressHidesAndRestartsCountdown(t *testing.T) {
	g := NewRenderGate(GateOptions{QuietTicks: 2, RegisterBlindTicks: 2}, nil)
	item := &fakeItem{}
	g.Register(item)
	g.Advance()
	g.Advance()
	assert.True(t, item.visible)

	g.Suppress()
	assert.False(t, item.visible)
	g.Advance()
	assert.False(t, item.visible)
	g.Advance()
	assert.True(t, item.visible)
}

func TestSuppressDuringCountdownRestartsIt(t *testing.T) {
	g := NewRenderGate(GateOptions{QuietTicks: 3, RegisterBlindTicks: 3}, nil)
	item := &fakeItem{}
	g.Register(item)
	g.Advance()
	g.Advance()

	// One tick before the reveal, a new rescale arrives.
	g.Suppress()
	g.Advance()
	g.Advance()
	assert.False(t, item.visible)
	g.Advance()
	assert.True(t, item.visible)
}

func TestRevealHappensExactlyOnce(t *testing.T) {
	invalidations := 0
	g := NewRenderGate(GateOptions{QuietTicks: 2, RegisterBlindTicks: 2}, func() {
		invalidations++
	})
	item := &fakeItem{}
	g.Register(item)

	for i := 0; i < 10; i++ {
		g.Advance()
	}

	assert.True(t, item.visible)
	assert.Equal(t, 1, item.reveals)
	assert.Equal(t, 1, invalidations)
}

func TestSuppressAppliesToAllItems(t *testing.T) {
	g := NewRenderGate(GateOptions{QuietTicks: 2, RegisterBlindTicks: 2}, nil)
	a := &fakeItem{}
	b := &fakeItem{}
	g.Register(a)
	g.Register(b)
	g.Advance()
	g.Advance()
	assert.True(t, a.visible)
	assert.True(t, b.visible)

	g.Suppress()
	assert.False(t, a.visible)
	assert.False(t, b.visible)
}

func TestStartStopTicks(t *testing.T) {
	revealed := make(chan struct{}, 1)
	g := NewRenderGate(GateOptions{QuietTicks: 1, RegisterBlindTicks: 1, Interval: time.Millisecond}, func() {
		select {
		case revealed <- struct{}{}:
		default:
		}
	})
	item := &fakeItem{}
	g.Register(item)

	g.Start()
	g.Start() // idempotent
	defer g.Stop()

	select {
	case <-revealed:
	case <-time.After(5 * time.Second):
		t.Fatal("gate tick never revealed the item")
	}
	assert.True(t, item.visible)
	g.Stop()
	g.Stop() // idempotent
}
