package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MarkyMan4/ragdolls/pkg/simulation"
)

func TestRectContains(t *testing.T) {
	r := rect{10, 20, 30, 40}

	assert.True(t, r.contains(10, 20))
	assert.True(t, r.contains(40, 60))
	assert.True(t, r.contains(25, 35))
	assert.False(t, r.contains(9, 20))
	assert.False(t, r.contains(41, 60))
	assert.False(t, r.contains(25, 61))
}

func TestButtonColors(t *testing.T) {
	idle, _ := buttonState{}.colors()
	active, _ := buttonState{active: true}.colors()
	hover, _ := buttonState{hover: true}.colors()
	both, _ := buttonState{active: true, hover: true}.colors()
	disabled, label := buttonState{disabled: true, active: true, hover: true}.colors()

	assert.NotEqual(t, idle, active)
	assert.NotEqual(t, idle, hover)
	assert.NotEqual(t, active, both)
	assert.NotEqual(t, hover, both)
	assert.Equal(t, uint8(160), label.R, "disabled wins over active and hover")
	assert.NotEqual(t, both, disabled)
}

func TestToolbarLayout(t *testing.T) {
	g := newGame(simulation.DefaultConfig(), "")

	var rects []rect
	for c := range controlLabels {
		rects = append(rects, g.controlRect(control(c)))
	}
	for _, tool := range simulation.Tools() {
		rects = append(rects, g.toolRect(tool))
	}

	for i, a := range rects {
		assert.GreaterOrEqual(t, a.x, 0)
		assert.LessOrEqual(t, a.x+a.w, g.width)
		for _, b := range rects[i+1:] {
			overlap := a.x < b.x+b.w && b.x < a.x+a.w && a.y < b.y+b.h && b.y < a.y+a.h
			assert.False(t, overlap, "%v overlaps %v", a, b)
		}
	}
}

func TestHandleClick(t *testing.T) {
	g := newGame(simulation.DefaultConfig(), "")

	r := g.toolRect(simulation.ToolWeb)
	require.True(t, g.handleClick(r.x+r.w/2, r.y+r.h/2))
	assert.Equal(t, simulation.ToolWeb, g.session.Tool())

	p := g.controlRect(ctrlPause)
	require.True(t, g.handleClick(p.x+1, p.y+1))
	assert.True(t, g.paused)

	assert.False(t, g.handleClick(g.width/2, g.height/2), "canvas clicks fall through")
}

func TestResetModal(t *testing.T) {
	g := newGame(simulation.DefaultConfig(), "")
	g.session.SpawnRagdoll()
	require.Len(t, g.session.Ragdolls, 2)

	reset := g.controlRect(ctrlReset)
	require.True(t, g.handleClick(reset.x+1, reset.y+1))
	require.True(t, g.resetModalOpen)

	_, no := g.modalButtons()
	require.True(t, g.handleClick(no.x+1, no.y+1))
	assert.False(t, g.resetModalOpen)
	assert.Len(t, g.session.Ragdolls, 2)

	g.handleClick(reset.x+1, reset.y+1)
	yes, _ := g.modalButtons()
	require.True(t, g.handleClick(yes.x+1, yes.y+1))
	assert.False(t, g.resetModalOpen)
	assert.Empty(t, g.session.Ragdolls)
	assert.Equal(t, 0, g.session.AppBodyCount())
}
