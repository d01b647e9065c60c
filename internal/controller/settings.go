package controller

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Player collider dimensions.
const (
	PlayerHeight = 1.7
	PlayerWidth  = 0.35
)

// Settings are the tunables a Mover reads every tick. They may be rewritten
// between ticks (unlocks, hot reload) and are never cached by the Mover.
type Settings struct {
	Gravity                   float32 `yaml:"gravity"`
	FloorSnap                 float32 `yaml:"floor_snap"`
	Step                      float32 `yaml:"step"`
	Jump                      float32 `yaml:"jump"`
	MinFloorAngle             float32 `yaml:"min_floor_angle"`
	MaximumGroundedUpVelocity float32 `yaml:"maximum_grounded_up_velocity"`

	Flycam bool `yaml:"flycam"`

	CoyoteTime       float32 `yaml:"coyote_time"`
	AirFriction      float32 `yaml:"air_friction"`
	TerminalVelocity float32 `yaml:"terminal_velocity"`

	AirSpeed float32 `yaml:"air_speed"`
	AirAccel float32 `yaml:"air_accel"`

	AirJumps            uint8   `yaml:"air_jumps"`
	AirJumpForwardBoost float32 `yaml:"air_jump_forward_boost"`

	DashEnabled  bool    `yaml:"dash_enabled"`
	DashVelocity float32 `yaml:"dash_velocity"`
	DashHeight   float32 `yaml:"dash_height"`

	// CoyoteFriction is how long, in seconds after landing, a character
	// moving faster than RunSpeed keeps its speed.
	CoyoteFriction float32 `yaml:"coyote_friction"`
	RunSpeed       float32 `yaml:"run_speed"`

	SlideEnabled bool    `yaml:"slide_enabled"`
	SlideSpeed   float32 `yaml:"slide_speed"`
	SlideTime    float32 `yaml:"slide_time"`

	SlamEnabled   bool    `yaml:"slam_enabled"`
	SlamPause     float32 `yaml:"slam_pause"`
	SlamVelocity  float32 `yaml:"slam_velocity"`
	SlamJumpBoost float32 `yaml:"slam_jump_boost"`

	WallGrabEnabled         bool    `yaml:"wall_grab_enabled"`
	WallGrabMinNormal       float32 `yaml:"wall_grab_min_normal"`
	WallGrabMaxNormal       float32 `yaml:"wall_grab_max_normal"`
	WallGrabMaxWallDistance float32 `yaml:"wall_grab_max_wall_distance"`
	WallGrabMaxAwayVelocity float32 `yaml:"wall_grab_max_away_velocity"`

	WallJumpAddVertical   float32 `yaml:"wall_jump_add_vertical"`
	WallJumpMaxVertical   float32 `yaml:"wall_jump_max_vertical"`
	WallJumpAddHorizontal float32 `yaml:"wall_jump_add_horizontal"`

	MinSwordBounce float32 `yaml:"min_sword_bounce"`
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		Gravity:                   20,
		FloorSnap:                 0.25,
		Step:                      0.33,
		Jump:                      1,
		MinFloorAngle:             0.7,
		MaximumGroundedUpVelocity: 5.8,

		CoyoteTime:       5.0 / 64.0,
		AirFriction:      0.3,
		TerminalVelocity: 20,

		AirSpeed: 5.5,
		AirAccel: 8,

		AirJumps:            2,
		AirJumpForwardBoost: 4.5,

		DashEnabled:  true,
		DashVelocity: 10,
		DashHeight:   0.5,

		CoyoteFriction: 3.0 / 64.0,
		RunSpeed:       5.5,

		SlideEnabled: true,
		SlideSpeed:   7.5,
		SlideTime:    0.7,

		SlamEnabled:   true,
		SlamPause:     0.5,
		SlamVelocity:  20,
		SlamJumpBoost: 2,

		WallGrabEnabled:         true,
		WallGrabMinNormal:       -0.1,
		WallGrabMaxNormal:       0.6,
		WallGrabMaxWallDistance: 0.2,
		WallGrabMaxAwayVelocity: 2,

		WallJumpAddVertical:   1,
		WallJumpMaxVertical:   5,
		WallJumpAddHorizontal: 5,

		MinSwordBounce: 10,
	}
}

// Validate reports the first setting that would break the Mover.
func (s *Settings) Validate() error {
	positive := []struct {
		name  string
		value float32
	}{
		{"gravity", s.Gravity},
		{"terminal_velocity", s.TerminalVelocity},
		{"slide_time", s.SlideTime},
		{"wall_grab_max_wall_distance", s.WallGrabMaxWallDistance},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", p.name, p.value)
		}
	}

	nonNegative := []struct {
		name  string
		value float32
	}{
		{"floor_snap", s.FloorSnap},
		{"step", s.Step},
		{"jump", s.Jump},
		{"coyote_time", s.CoyoteTime},
		{"coyote_friction", s.CoyoteFriction},
		{"air_friction", s.AirFriction},
		{"air_speed", s.AirSpeed},
		{"air_accel", s.AirAccel},
		{"dash_height", s.DashHeight},
		{"run_speed", s.RunSpeed},
		{"slam_pause", s.SlamPause},
		{"slam_jump_boost", s.SlamJumpBoost},
		{"wall_jump_add_vertical", s.WallJumpAddVertical},
	}
	for _, p := range nonNegative {
		if p.value < 0 {
			return fmt.Errorf("%s must not be negative, got %v", p.name, p.value)
		}
	}

	if s.MinFloorAngle < -1 || s.MinFloorAngle > 1 {
		return fmt.Errorf("min_floor_angle must be within [-1, 1], got %v", s.MinFloorAngle)
	}
	if s.WallGrabMinNormal > s.WallGrabMaxNormal {
		return fmt.Errorf("wall_grab_min_normal (%v) exceeds wall_grab_max_normal (%v)",
			s.WallGrabMinNormal, s.WallGrabMaxNormal)
	}
	return nil
}

// Unlocks is the set of movement abilities granted by collected items.
type Unlocks struct {
	Dash     bool  `yaml:"dash"`
	Slide    bool  `yaml:"slide"`
	Slam     bool  `yaml:"slam"`
	WallGrab bool  `yaml:"wall_grab"`
	AirJumps uint8 `yaml:"air_jumps"`
}

// AllUnlocks enables every ability with the stock air-jump allowance.
func AllUnlocks() Unlocks {
	return Unlocks{Dash: true, Slide: true, Slam: true, WallGrab: true, AirJumps: 2}
}

// ApplyUnlocks overwrites the ability flags and the air-jump allowance.
func (s *Settings) ApplyUnlocks(u Unlocks) {
	s.DashEnabled = u.Dash
	s.SlideEnabled = u.Slide
	s.SlamEnabled = u.Slam
	s.WallGrabEnabled = u.WallGrab
	s.AirJumps = u.AirJumps
}

// LoadSettings decodes YAML settings on top of the defaults and validates them.
func LoadSettings(r io.Reader) (Settings, error) {
	s := DefaultSettings()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, fmt.Errorf("invalid settings: %w", err)
	}
	return s, nil
}

// LoadSettingsFile reads settings from a YAML file.
func LoadSettingsFile(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("opening settings %s: %w", path, err)
	}
	defer f.Close()

	s, err := LoadSettings(f)
	if err != nil {
		return Settings{}, fmt.Errorf("loading settings %s: %w", path, err)
	}
	return s, nil
}
