package physics

// Earth-like gravity at 30 px/m, pointing down the canvas (+Y).
var DefaultGravity = Vec2{X: 0, Y: 300}

// ZeroGravity is what the anti-gravity tool switches to.
var ZeroGravity = Vec2{}

// GravityFor returns def when enabled, zero otherwise.
func GravityFor(enabled bool, def Vec2) Vec2 {
	if enabled {
		return def
	}
	return ZeroGravity
}
