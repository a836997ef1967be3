package simulation

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/MarkyMan4/ragdolls/pkg/entity"
	"github.com/MarkyMan4/ragdolls/pkg/physics"
)

// --- Environment configuration ---
type Config struct {
	Name            string          `mapstructure:"name"`
	LogLevel        string          `mapstructure:"logLevel"`
	InitialRagdolls int             `mapstructure:"initialRagdolls"`
	Canvas          CanvasConfig    `mapstructure:"canvas"`
	World           WorldConfig     `mapstructure:"world"`
	Ragdoll         RagdollConfig   `mapstructure:"ragdoll"`
	Web             WebConfig       `mapstructure:"web"`
	Explosion       ExplosionConfig `mapstructure:"explosion"`
	Ball            BallConfig      `mapstructure:"ball"`
	Block           BlockConfig     `mapstructure:"block"`
	Grapple         JointConfig     `mapstructure:"grapple"`
	Pin             JointConfig     `mapstructure:"pin"`
	Drag            DragConfig      `mapstructure:"drag"`
	Colors          ColorConfig     `mapstructure:"colors"`
}

type CanvasConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

type WorldConfig struct {
	PixelsPerMeter     float64 `mapstructure:"pixelsPerMeter"`
	TicksPerSecond     int     `mapstructure:"ticksPerSecond"`
	VelocityIterations int     `mapstructure:"velocityIterations"`
	PositionIterations int     `mapstructure:"positionIterations"`
	GravityX           float64 `mapstructure:"gravityX"`
	GravityY           float64 `mapstructure:"gravityY"`
}

type RagdollConfig struct {
	HeadDensity float64 `mapstructure:"headDensity"`
	LimbDensity float64 `mapstructure:"limbDensity"`
	Friction    float64 `mapstructure:"friction"`
	// per-step upward impulse on the head while grounded
	StandImpulse float64 `mapstructure:"standImpulse"`
	// every RecoverInterval steps grounded figures get a push to get up
	RecoverInterval    int     `mapstructure:"recoverInterval"`
	RecoverHeadImpulse float64 `mapstructure:"recoverHeadImpulse"`
	RecoverArmOutward  float64 `mapstructure:"recoverArmOutward"`
	RecoverArmUp       float64 `mapstructure:"recoverArmUp"`
}

type WebConfig struct {
	Rows         int     `mapstructure:"rows"`
	Cols         int     `mapstructure:"cols"`
	Spacing      float64 `mapstructure:"spacing"`
	PointRadius  float64 `mapstructure:"pointRadius"`
	Density      float64 `mapstructure:"density"`
	RestLength   float64 `mapstructure:"restLength"`
	FrequencyHz  float64 `mapstructure:"frequencyHz"`
	DampingRatio float64 `mapstructure:"dampingRatio"`
}

type ExplosionConfig struct {
	Particles   int     `mapstructure:"particles"`
	MaxSize     float64 `mapstructure:"maxSize"`
	MaxVelocity float64 `mapstructure:"maxVelocity"`
	RadiusDecay float64 `mapstructure:"radiusDecay"`
	Rays        int     `mapstructure:"rays"`
	Radius      float64 `mapstructure:"radius"`
	Impulse     float64 `mapstructure:"impulse"`
}

type BallConfig struct {
	Radius               float64 `mapstructure:"radius"`
	LauncherLength       float64 `mapstructure:"launcherLength"`
	LauncherFrequencyHz  float64 `mapstructure:"launcherFrequencyHz"`
	LauncherDampingRatio float64 `mapstructure:"launcherDampingRatio"`
	ReleaseThreshold     float64 `mapstructure:"releaseThreshold"`
}

type BlockConfig struct {
	Size     float64 `mapstructure:"size"`
	Friction float64 `mapstructure:"friction"`
}

type JointConfig struct {
	Length       float64 `mapstructure:"length"`
	FrequencyHz  float64 `mapstructure:"frequencyHz"`
	DampingRatio float64 `mapstructure:"dampingRatio"`
}

type DragConfig struct {
	FrequencyHz float64 `mapstructure:"frequencyHz"`
	MaxForce    float64 `mapstructure:"maxForce"`
}

type ColorConfig struct {
	Background string   `mapstructure:"background"`
	Ragdoll    string   `mapstructure:"ragdoll"`
	Wall       string   `mapstructure:"wall"`
	Ball       string   `mapstructure:"ball"`
	Block      string   `mapstructure:"block"`
	Web        string   `mapstructure:"web"`
	Joint      string   `mapstructure:"joint"`
	Explosion  []string `mapstructure:"explosion"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("name", "default")
	v.SetDefault("logLevel", "info")
	v.SetDefault("initialRagdolls", 1)

	v.SetDefault("canvas.width", 1280)
	v.SetDefault("canvas.height", 720)

	v.SetDefault("world.pixelsPerMeter", 30)
	v.SetDefault("world.ticksPerSecond", 60)
	v.SetDefault("world.velocityIterations", 8)
	v.SetDefault("world.positionIterations", 3)
	v.SetDefault("world.gravityX", physics.DefaultGravity.X)
	v.SetDefault("world.gravityY", physics.DefaultGravity.Y)

	v.SetDefault("ragdoll.headDensity", entity.DefaultRagdollOptions.HeadDensity)
	v.SetDefault("ragdoll.limbDensity", entity.DefaultRagdollOptions.LimbDensity)
	v.SetDefault("ragdoll.friction", entity.DefaultRagdollOptions.Friction)
	v.SetDefault("ragdoll.standImpulse", 2.5)
	v.SetDefault("ragdoll.recoverInterval", 90)
	v.SetDefault("ragdoll.recoverHeadImpulse", 300)
	v.SetDefault("ragdoll.recoverArmOutward", 60)
	v.SetDefault("ragdoll.recoverArmUp", 120)

	v.SetDefault("web.rows", entity.DefaultWebOptions.Rows)
	v.SetDefault("web.cols", entity.DefaultWebOptions.Cols)
	v.SetDefault("web.spacing", entity.DefaultWebOptions.Spacing)
	v.SetDefault("web.pointRadius", entity.DefaultWebOptions.PointRadius)
	v.SetDefault("web.density", entity.DefaultWebOptions.Density)
	v.SetDefault("web.restLength", entity.DefaultWebOptions.Strand.Length)
	v.SetDefault("web.frequencyHz", entity.DefaultWebOptions.Strand.FrequencyHz)
	v.SetDefault("web.dampingRatio", entity.DefaultWebOptions.Strand.DampingRatio)

	v.SetDefault("explosion.particles", 100)
	v.SetDefault("explosion.maxSize", entity.DefaultParticleOptions.MaxSize)
	v.SetDefault("explosion.maxVelocity", entity.DefaultParticleOptions.MaxVelocity)
	v.SetDefault("explosion.radiusDecay", entity.DefaultParticleOptions.RadiusDecay)
	v.SetDefault("explosion.rays", 72)
	v.SetDefault("explosion.radius", 200)
	v.SetDefault("explosion.impulse", 200)

	v.SetDefault("ball.radius", 20)
	v.SetDefault("ball.launcherLength", 1)
	v.SetDefault("ball.launcherFrequencyHz", 2)
	v.SetDefault("ball.launcherDampingRatio", 0.1)
	v.SetDefault("ball.releaseThreshold", 20)

	v.SetDefault("block.size", 50)
	v.SetDefault("block.friction", 1)

	v.SetDefault("grapple.length", 100)
	v.SetDefault("grapple.frequencyHz", 2)
	v.SetDefault("grapple.dampingRatio", 0.2)

	v.SetDefault("pin.length", 10)
	v.SetDefault("pin.frequencyHz", 0)
	v.SetDefault("pin.dampingRatio", 0)

	v.SetDefault("drag.frequencyHz", 5)
	v.SetDefault("drag.maxForce", 1000)

	v.SetDefault("colors.background", "#000000")
	v.SetDefault("colors.ragdoll", "#1E90FF")
	v.SetDefault("colors.wall", "#868686")
	v.SetDefault("colors.ball", "#FFFFFF")
	v.SetDefault("colors.block", "#D2691E")
	v.SetDefault("colors.web", "#FFFFFF")
	v.SetDefault("colors.joint", "#FFFFFF")
	v.SetDefault("colors.explosion", []string{"#FF4500", "#FFA500", "#FFD700", "#FF0000"})
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultConfig returns the built-in environment.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := decode(v)
	if err != nil {
		// defaults are compiled in; failing here is a programming error
		panic(err)
	}
	return cfg
}

// --- Load an environment file ---
// LoadConfig reads a JSON environment. Keys missing from the file keep
// their defaults.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return decode(v)
}

// Validate rejects sizes and rates that would make the world unusable.
func (c *Config) Validate() error {
	var errs []error
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas size must be positive, got %gx%g", c.Canvas.Width, c.Canvas.Height))
	}
	if c.World.PixelsPerMeter <= 0 {
		errs = append(errs, errors.New("world.pixelsPerMeter must be positive"))
	}
	if c.World.TicksPerSecond <= 0 {
		errs = append(errs, errors.New("world.ticksPerSecond must be positive"))
	}
	if c.Ragdoll.RecoverInterval <= 0 {
		errs = append(errs, errors.New("ragdoll.recoverInterval must be positive"))
	}
	if c.Web.Rows < 2 || c.Web.Cols < 2 {
		errs = append(errs, fmt.Errorf("web must be at least 2x2, got %dx%d", c.Web.Rows, c.Web.Cols))
	}
	if c.Explosion.Rays <= 0 || c.Explosion.Radius <= 0 {
		errs = append(errs, errors.New("explosion.rays and explosion.radius must be positive"))
	}
	if c.Ball.Radius <= 0 || c.Block.Size <= 0 {
		errs = append(errs, errors.New("ball.radius and block.size must be positive"))
	}
	if c.InitialRagdolls < 0 {
		errs = append(errs, errors.New("initialRagdolls must not be negative"))
	}
	return errors.Join(errs...)
}

func (c *Config) Gravity() physics.Vec2 {
	return physics.Vec2{X: c.World.GravityX, Y: c.World.GravityY}
}

func (r RagdollConfig) Options() entity.RagdollOptions {
	return entity.RagdollOptions{HeadDensity: r.HeadDensity, LimbDensity: r.LimbDensity, Friction: r.Friction}
}

func (w WebConfig) Options() entity.WebOptions {
	return entity.WebOptions{
		Rows:        w.Rows,
		Cols:        w.Cols,
		Spacing:     w.Spacing,
		PointRadius: w.PointRadius,
		Density:     w.Density,
		Strand:      physics.JointSpec{Length: w.RestLength, FrequencyHz: w.FrequencyHz, DampingRatio: w.DampingRatio},
	}
}

func (e ExplosionConfig) ParticleOptions() entity.ParticleOptions {
	return entity.ParticleOptions{MaxSize: e.MaxSize, MaxVelocity: e.MaxVelocity, RadiusDecay: e.RadiusDecay}
}

func (j JointConfig) Spec() physics.JointSpec {
	return physics.JointSpec{Length: j.Length, FrequencyHz: j.FrequencyHz, DampingRatio: j.DampingRatio}
}

var fallbackColor = color.RGBA{200, 200, 255, 255}

// ParseColor reads "#rgb", "#rrggbb" or "#rrggbbaa". Anything else falls
// back to light blue.
func ParseColor(hex string) color.RGBA {
	digits, ok := strings.CutPrefix(hex, "#")
	if !ok {
		return fallbackColor
	}
	if len(digits) == 3 {
		digits = string([]byte{digits[0], digits[0], digits[1], digits[1], digits[2], digits[2]})
	}
	if len(digits) == 6 {
		digits += "ff"
	}
	if len(digits) != 8 {
		return fallbackColor
	}
	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return fallbackColor
	}
	return color.RGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}
}
