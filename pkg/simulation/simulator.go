package simulation

import (
	"image/color"
	"math"
	"math/rand"
	"time"

	"github.com/rs/zerolog"

	"github.com/MarkyMan4/ragdolls/pkg/entity"
	"github.com/MarkyMan4/ragdolls/pkg/physics"
)

// --- Sandbox session ---
// Session owns the world and every live entity in it. It is driven from a
// single goroutine: pointer events between steps, Step once per tick.
type Session struct {
	cfg *Config
	log zerolog.Logger
	rng *rand.Rand

	World  *physics.World
	Bounds *entity.Bounds

	Ragdolls  []*entity.Ragdoll
	Balls     []*physics.Body
	Blocks    []*entity.SegmentBody
	Grapples  []*physics.Joint
	Pins      []*physics.Joint
	Webs      []*entity.Web
	Particles []*entity.Particle

	tool      Tool
	gravityOn bool

	grapple Gesture
	pin     Gesture
	launch  Launch
	drag    *physics.Joint
	pointer physics.Vec2

	nextGroup   int16
	lastRecover uint64

	explosionColors []color.RGBA
}

// --- Creating a session from config ---
// NewSession builds the walls and the configured initial ragdolls. A nil
// rng seeds one from the clock.
func NewSession(cfg *Config, logger zerolog.Logger, rng *rand.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	w := physics.NewWorld(cfg.Gravity(), cfg.World.PixelsPerMeter)
	w.Dt = 1.0 / float64(cfg.World.TicksPerSecond)
	w.VelocityIterations = cfg.World.VelocityIterations
	w.PositionIterations = cfg.World.PositionIterations

	s := &Session{
		cfg:       cfg,
		log:       logger.With().Str("component", "session").Logger(),
		rng:       rng,
		World:     w,
		Bounds:    entity.NewBounds(w, cfg.Canvas.Width, cfg.Canvas.Height),
		tool:      ToolGrab,
		gravityOn: true,
		nextGroup: -1,
	}
	for _, hex := range cfg.Colors.Explosion {
		s.explosionColors = append(s.explosionColors, ParseColor(hex))
	}
	if len(s.explosionColors) == 0 {
		s.explosionColors = []color.RGBA{{255, 255, 255, 255}}
	}

	center := physics.Vec2{X: cfg.Canvas.Width / 2, Y: cfg.Canvas.Height / 2}
	for i := 0; i < cfg.InitialRagdolls; i++ {
		if i == 0 {
			s.SpawnRagdollAt(center)
			continue
		}
		s.SpawnRagdoll()
	}
	return s
}

func (s *Session) Config() *Config {
	return s.cfg
}

func (s *Session) Tool() Tool {
	return s.tool
}

func (s *Session) GravityEnabled() bool {
	return s.gravityOn
}

func (s *Session) Pointer() physics.Vec2 {
	return s.pointer
}

// --- Gravity ---
// ToggleGravity flips between the configured gravity and none. Two toggles
// restore the configured vector exactly.
func (s *Session) ToggleGravity() {
	s.gravityOn = !s.gravityOn
	s.World.SetGravity(physics.GravityFor(s.gravityOn, s.cfg.Gravity()))
	s.log.Info().Bool("enabled", s.gravityOn).Msg("gravity toggled")
}

// --- Step ---
// Step advances the world one tick, then applies the standing bias and the
// periodic recovery, ages particles and settles the slingshot.
func (s *Session) Step() uint64 {
	n := s.World.Step()

	if s.gravityOn {
		s.standUp()
		if n%uint64(s.cfg.Ragdoll.RecoverInterval) == 0 {
			s.Stabilize()
			s.lastRecover = n
		}
	}

	s.Particles = entity.UpdateParticles(s.Particles)
	s.settleLaunch()
	return n
}

// LastRecovery is the step of the last periodic recovery pass, zero if
// none ran yet.
func (s *Session) LastRecovery() uint64 {
	return s.lastRecover
}

// --- Spawning ---
func (s *Session) SpawnRagdoll() *entity.Ragdoll {
	p := physics.Vec2{
		X: s.rng.Float64() * s.cfg.Canvas.Width,
		Y: s.rng.Float64() * s.cfg.Canvas.Height,
	}
	return s.SpawnRagdollAt(p)
}

func (s *Session) SpawnRagdollAt(p physics.Vec2) *entity.Ragdoll {
	r := entity.NewRagdoll(s.World, p, s.nextGroup, s.cfg.Ragdoll.Options())
	s.nextGroup--
	if s.nextGroup == math.MinInt16 {
		s.nextGroup = -1
	}
	s.Ragdolls = append(s.Ragdolls, r)
	s.log.Debug().Float64("x", p.X).Float64("y", p.Y).Int("ragdolls", len(s.Ragdolls)).Msg("ragdoll spawned")
	return r
}

func (s *Session) spawnBlock(p physics.Vec2) *entity.SegmentBody {
	b := entity.NewBlock(s.World, p, s.cfg.Block.Size, s.cfg.Block.Friction)
	s.Blocks = append(s.Blocks, b)
	s.log.Debug().Float64("x", p.X).Float64("y", p.Y).Msg("block placed")
	return b
}

func (s *Session) spawnWeb(p physics.Vec2) *entity.Web {
	web := entity.NewWeb(s.World, p, s.cfg.Web.Options())
	s.Webs = append(s.Webs, web)
	s.log.Debug().Float64("x", p.X).Float64("y", p.Y).Int("bodies", len(web.Bodies)).Msg("web spun")
	return web
}

// --- Clear / Reset ---
// Clear removes everything except ragdolls and walls, and drops any
// pending gesture.
func (s *Session) Clear() {
	s.releaseDrag()
	s.grapple.Cancel()
	s.pin.Cancel()
	s.dropLaunch()

	for _, j := range s.Grapples {
		s.World.DestroyJoint(j)
	}
	for _, j := range s.Pins {
		s.World.DestroyJoint(j)
	}
	for _, web := range s.Webs {
		web.Remove(s.World)
	}
	for _, b := range s.Balls {
		s.World.DestroyBody(b)
	}
	for _, b := range s.Blocks {
		s.World.DestroyBody(b.Body)
	}

	s.Grapples = nil
	s.Pins = nil
	s.Webs = nil
	s.Balls = nil
	s.Blocks = nil
	s.Particles = nil
	s.log.Debug().Int("bodies", s.AppBodyCount()).Msg("cleared")
}

// Reset is Clear plus removal of every ragdoll.
func (s *Session) Reset() {
	s.Clear()
	for _, r := range s.Ragdolls {
		r.Remove(s.World)
	}
	s.Ragdolls = nil
	s.nextGroup = -1
	s.log.Debug().Int("bodies", s.AppBodyCount()).Msg("reset")
}

// AppBodyCount counts the bodies the session put in the world, walls
// excluded.
func (s *Session) AppBodyCount() int {
	n := 0
	for _, b := range s.World.Bodies() {
		if b.Tag != entity.WallTag {
			n++
		}
	}
	return n
}

// --- Transient visuals ---
// DragLine runs from the pointer to the grabbed body.
func (s *Session) DragLine() (from, to physics.Vec2, ok bool) {
	if !s.drag.Alive() {
		return physics.Vec2{}, physics.Vec2{}, false
	}
	return s.pointer, s.drag.A.Position(), true
}

// AimLine runs from the launch anchor to the ball while the launcher holds.
func (s *Session) AimLine() (from, to physics.Vec2, ok bool) {
	if s.launch.State == LaunchIdle || !s.launch.Launcher.Alive() {
		return physics.Vec2{}, physics.Vec2{}, false
	}
	return s.launch.Anchor, s.launch.Ball.Position(), true
}

func (s *Session) PendingGrapple() *physics.Body {
	return s.grapple.Pending()
}

func (s *Session) PendingPin() *physics.Body {
	return s.pin.Pending()
}

func (s *Session) LaunchState() LaunchState {
	return s.launch.State
}

func (s *Session) Launcher() *physics.Joint {
	return s.launch.Launcher
}
