package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/MarkyMan4/ragdolls/pkg/simulation"
)

const (
	uiBtnW   = 96
	uiBtnH   = 28
	uiBtnPad = 10

	modalW = 380
	modalH = 120
)

type control uint8

const (
	ctrlPause control = iota
	ctrlStep
	ctrlSpawn
	ctrlClear
	ctrlReset
	ctrlReload
	ctrlQuit
)

var controlLabels = [...]string{
	ctrlPause:  "Pause",
	ctrlStep:   "Step",
	ctrlSpawn:  "Spawn",
	ctrlClear:  "Clear",
	ctrlReset:  "Reset",
	ctrlReload: "Reload",
	ctrlQuit:   "Quit",
}

var toolLabels = map[simulation.Tool]string{
	simulation.ToolGrab:        "Grab",
	simulation.ToolBall:        "Ball",
	simulation.ToolExplode:     "Explode",
	simulation.ToolBlock:       "Block",
	simulation.ToolGrapple:     "Grapple",
	simulation.ToolPin:         "Pin",
	simulation.ToolAntiGravity: "Gravity",
	simulation.ToolWeb:         "Web",
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(px, py int) bool {
	return px >= r.x && px <= r.x+r.w && py >= r.y && py <= r.y+r.h
}

// fill paints r onto dst with a one pixel border of outer around inner.
func (r rect) fill(dst *ebiten.Image, outer, inner color.RGBA) {
	x, y, w, h := float32(r.x), float32(r.y), float32(r.w), float32(r.h)
	vector.DrawFilledRect(dst, x, y, w, h, outer, false)
	vector.DrawFilledRect(dst, x+1, y+1, w-2, h-2, inner, false)
}

// controlRect places control buttons in a row from the top right corner.
func (g *Game) controlRect(c control) rect {
	x := g.width - (int(c)+1)*(uiBtnPad+uiBtnW)
	return rect{x, uiBtnPad, uiBtnW, uiBtnH}
}

// toolRect places the tool buttons in a second row under the controls.
func (g *Game) toolRect(t simulation.Tool) rect {
	x := g.width - (int(t)+1)*(uiBtnPad+uiBtnW)
	return rect{x, 2*uiBtnPad + uiBtnH, uiBtnW, uiBtnH}
}

func (g *Game) modalButtons() (yes, no rect) {
	x0 := (g.width - modalW) / 2
	y0 := (g.height - modalH) / 2
	yes = rect{x0 + 40, y0 + modalH - 44, uiBtnW, uiBtnH}
	no = rect{x0 + modalW - 40 - uiBtnW, y0 + modalH - 44, uiBtnW, uiBtnH}
	return yes, no
}

// handleClick runs a toolbar click and reports whether one was hit.
func (g *Game) handleClick(mx, my int) bool {
	if g.resetModalOpen {
		yes, no := g.modalButtons()
		switch {
		case yes.contains(mx, my):
			g.resetSimulation()
		case no.contains(mx, my):
			g.resetModalOpen = false
		default:
			// a click outside the modal closes it
			g.resetModalOpen = false
		}
		return true
	}

	for _, t := range simulation.Tools() {
		if g.toolRect(t).contains(mx, my) {
			g.session.SelectTool(t)
			return true
		}
	}

	switch {
	case g.controlRect(ctrlPause).contains(mx, my):
		g.paused = !g.paused
	case g.controlRect(ctrlStep).contains(mx, my):
		if g.paused {
			g.advanceOneStep()
		}
	case g.controlRect(ctrlSpawn).contains(mx, my):
		g.session.SpawnRagdoll()
	case g.controlRect(ctrlClear).contains(mx, my):
		g.session.Clear()
	case g.controlRect(ctrlReset).contains(mx, my):
		g.resetModalOpen = true
	case g.controlRect(ctrlReload).contains(mx, my):
		if err := g.reloadConfig(); err != nil {
			g.log.Error().Err(err).Msg("reload failed")
		}
	case g.controlRect(ctrlQuit).contains(mx, my):
		g.quit = true
	default:
		return false
	}
	return true
}

func (g *Game) drawToolbar(screen *ebiten.Image) {
	mx, my := ebiten.CursorPosition()

	for c, label := range controlLabels {
		r := g.controlRect(control(c))
		active, disabled := false, false
		switch control(c) {
		case ctrlPause:
			if g.paused {
				label = "Resume"
				active = true
			}
		case ctrlStep:
			disabled = !g.paused
		}
		drawButton(screen, r, label, buttonState{active: active, disabled: disabled, hover: r.contains(mx, my)})
	}

	for _, t := range simulation.Tools() {
		r := g.toolRect(t)
		label := toolLabels[t]
		active := g.session.Tool() == t
		if t == simulation.ToolAntiGravity && !g.session.GravityEnabled() {
			label = "No grav"
		}
		drawButton(screen, r, label, buttonState{active: active, hover: r.contains(mx, my)})
	}
}

var shortcutLines = []string{
	"TOOLS",
	"1 - grab      2 - ball",
	"3 - explode   4 - block",
	"5 - grapple   6 - pin",
	"7 - gravity   8 - web",
	"",
	"GLOBAL",
	"S - spawn ragdoll",
	"C - clear props",
	"R - reset",
	"P - Pause/Resume",
	"N - Step (when paused)",
	"H - hide shortcuts",
}

func (g *Game) drawShortcuts(screen *ebiten.Image) {
	if !g.shortcutsVisible {
		return
	}

	pad := 6
	charW := 7
	lineH := 14
	maxLen := 0
	for _, l := range shortcutLines {
		maxLen = max(maxLen, len(l))
	}

	// below the debug print in the top left
	panel := rect{12, 60, maxLen*charW + pad*2, len(shortcutLines)*lineH + pad*2}
	panel.fill(screen, color.RGBA{10, 10, 20, 200}, color.RGBA{30, 30, 40, 80})
	for i, l := range shortcutLines {
		text.Draw(screen, l, basicfont.Face7x13, panel.x+pad, panel.y+pad+(i+1)*lineH-2, color.RGBA{220, 220, 220, 255})
	}
}

func (g *Game) drawResetModal(screen *ebiten.Image) {
	panel := rect{(g.width - modalW) / 2, (g.height - modalH) / 2, modalW, modalH}
	panel.fill(screen, color.RGBA{20, 20, 20, 220}, color.RGBA{36, 36, 44, 200})

	text.Draw(screen, "Reset sandbox?", basicfont.Face7x13, panel.x+16, panel.y+28, color.RGBA{230, 230, 230, 255})
	text.Draw(screen, "Removes every ragdoll, prop and joint.", basicfont.Face7x13, panel.x+16, panel.y+48, color.RGBA{190, 190, 190, 200})

	yes, no := g.modalButtons()
	drawButton(screen, yes, "Yes", buttonState{})
	drawButton(screen, no, "No", buttonState{})
}

type buttonState struct {
	active, disabled, hover bool
}

// colors picks the background and label colours for a button.
func (st buttonState) colors() (bg, label color.RGBA) {
	switch {
	case st.disabled:
		return color.RGBA{60, 60, 60, 160}, color.RGBA{160, 160, 160, 200}
	case st.active && st.hover:
		return color.RGBA{60, 150, 255, 240}, color.RGBA{240, 240, 240, 255}
	case st.active:
		return color.RGBA{30, 110, 200, 220}, color.RGBA{240, 240, 240, 255}
	case st.hover:
		return color.RGBA{90, 90, 90, 230}, color.RGBA{240, 240, 240, 255}
	}
	return color.RGBA{20, 20, 20, 200}, color.RGBA{240, 240, 240, 255}
}

func drawButton(screen *ebiten.Image, r rect, label string, st buttonState) {
	bg, fg := st.colors()
	r.fill(screen, bg, color.RGBA{40, 40, 40, 120})

	charW := 7
	x := r.x + (r.w-len(label)*charW)/2
	y := r.y + (r.h+8)/2
	text.Draw(screen, label, basicfont.Face7x13, x, y, fg)
}
