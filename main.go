package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MarkyMan4/ragdolls/pkg/physics"
	"github.com/MarkyMan4/ragdolls/pkg/simulation"
)

// Game ---
type Game struct {
	session *simulation.Session
	palette palette
	log     zerolog.Logger

	width, height int

	paused           bool
	shortcutsVisible bool
	resetModalOpen   bool
	quit             bool

	// set when a press started on the canvas rather than the toolbar
	pointerDown bool

	configPath string
}

var toolKeys = map[ebiten.Key]simulation.Tool{
	ebiten.Key1: simulation.ToolGrab,
	ebiten.Key2: simulation.ToolBall,
	ebiten.Key3: simulation.ToolExplode,
	ebiten.Key4: simulation.ToolBlock,
	ebiten.Key5: simulation.ToolGrapple,
	ebiten.Key6: simulation.ToolPin,
	ebiten.Key7: simulation.ToolAntiGravity,
	ebiten.Key8: simulation.ToolWeb,
}

func newGame(cfg *simulation.Config, configPath string) *Game {
	return &Game{
		session:          simulation.NewSession(cfg, log.Logger, nil),
		palette:          newPalette(cfg.Colors),
		log:              log.Logger,
		width:            int(cfg.Canvas.Width),
		height:           int(cfg.Canvas.Height),
		shortcutsVisible: true,
		configPath:       configPath,
	}
}

// Update ---
func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	// the modal swallows input until it is answered
	if g.resetModalOpen {
		if inpututil.IsKeyJustPressed(ebiten.KeyY) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.resetSimulation()
		} else if inpututil.IsKeyJustPressed(ebiten.KeyN) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			g.resetModalOpen = false
		} else if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.handleClick(ebiten.CursorPosition())
		}
		return nil
	}

	g.handleKeys()
	g.handlePointer()
	if g.quit {
		return ebiten.Termination
	}

	if g.paused {
		return nil
	}
	g.advanceOneStep()
	return nil
}

func (g *Game) handleKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) && g.paused {
		g.advanceOneStep()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.shortcutsVisible = !g.shortcutsVisible
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.session.SpawnRagdoll()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.session.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.resetModalOpen = true
	}
	for k, t := range toolKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.session.SelectTool(t)
		}
	}
}

// handlePointer forwards mouse input on the canvas to the session. A press
// that lands on the toolbar never reaches it.
func (g *Game) handlePointer() {
	mx, my := ebiten.CursorPosition()
	p := physics.Vec2{X: float64(mx), Y: float64(my)}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if g.handleClick(mx, my) {
			return
		}
		g.pointerDown = true
		g.session.PointerDown(p)
		return
	}

	g.session.PointerMove(p)

	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) && g.pointerDown {
		g.pointerDown = false
		g.session.PointerUp(p)
	}
}

// advanceOneStep ---
func (g *Game) advanceOneStep() {
	g.session.Step()
}

// Draw ---
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.palette.background)
	g.drawSession(screen)

	s := g.session
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"Env: %s  Tool: %s  Gravity: %v  Paused: %v\nRagdolls: %d  Bodies: %d  Joints: %d  TPS: %0.1f",
		s.Config().Name, s.Tool(), s.GravityEnabled(), g.paused,
		len(s.Ragdolls), s.AppBodyCount(), s.World.JointCount(), ebiten.ActualTPS(),
	))
	g.drawShortcuts(screen)
	g.drawToolbar(screen)

	if g.resetModalOpen {
		g.drawResetModal(screen)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}

// resetSimulation empties the sandbox and closes the modal.
func (g *Game) resetSimulation() {
	g.session.Reset()
	g.pointerDown = false
	g.resetModalOpen = false
	g.paused = false
}

// reloadConfig re-reads the environment file and starts a fresh session
// from it. The running session is kept when the file is broken.
func (g *Game) reloadConfig() error {
	cfg, err := simulation.LoadConfig(g.configPath)
	if err != nil {
		return err
	}
	g.session = simulation.NewSession(cfg, g.log, nil)
	g.palette = newPalette(cfg.Colors)
	g.pointerDown = false
	g.log.Info().Str("env", cfg.Name).Msg("config reloaded")
	return nil
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stdout,
		TimeFormat: time.RFC3339,
	}).With().Timestamp().Logger()
}

func main() {
	envName := flag.String("env", "default", "environment to load from pkg/assets (default, moon, chaos)")
	flag.Parse()
	configPath := filepath.Join("pkg/assets", fmt.Sprintf("%s.json", *envName))

	cfg, err := simulation.LoadConfig(configPath)
	if err != nil {
		setupLogging("info")
		log.Fatal().Err(err).Str("path", configPath).Msg("loading environment")
	}
	setupLogging(cfg.LogLevel)
	log.Info().Str("env", cfg.Name).Str("loglevel", zerolog.GlobalLevel().String()).Msg("logging set up")

	game := newGame(cfg, configPath)
	ebiten.SetWindowSize(game.width, game.height)
	ebiten.SetWindowTitle("Ragdolls - " + cfg.Name)
	ebiten.SetTPS(cfg.World.TicksPerSecond)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("game loop")
	}
}
