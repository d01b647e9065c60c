package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/hopper/internal/controller"
	"github.com/Faultbox/hopper/pkg/math"
)

// Frame holds the input levels from tick At until the next frame.
type Frame struct {
	At       int        `yaml:"at"`
	Move     [2]float32 `yaml:"move"`
	Walk     bool       `yaml:"walk"`
	Jump     bool       `yaml:"jump"`
	Slide    bool       `yaml:"slide"`
	Dash     bool       `yaml:"dash"`
	WallGrab bool       `yaml:"wall_grab"`
	// Camera is the camera stick: X pans, Y zooms.
	Camera [2]float32 `yaml:"camera"`
	// Center recenters the camera behind the player.
	Center bool `yaml:"center"`
}

func (f *Frame) buttons() Buttons {
	return Buttons{Jump: f.Jump, Slide: f.Slide, Dash: f.Dash, WallGrab: f.WallGrab, Walk: f.Walk}
}

// Script is a timeline of input frames.
type Script struct {
	Frames []Frame `yaml:"frames"`
}

// LoadScript decodes and validates a YAML script.
func LoadScript(r io.Reader) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadScriptFile reads a script from a YAML file.
func LoadScriptFile(path string) (*Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening script %s: %w", path, err)
	}
	defer f.Close()

	s, err := LoadScript(f)
	if err != nil {
		return nil, fmt.Errorf("loading script %s: %w", path, err)
	}
	return s, nil
}

// Validate checks frame ordering.
func (s *Script) Validate() error {
	for i, f := range s.Frames {
		if f.At < 0 {
			return fmt.Errorf("frame %d: negative tick %d", i, f.At)
		}
		if i > 0 && f.At <= s.Frames[i-1].At {
			return fmt.Errorf("frame %d: tick %d is not after tick %d", i, f.At, s.Frames[i-1].At)
		}
	}
	return nil
}

// At returns the frame active at tick, or an idle frame before the first one.
func (s *Script) At(tick int) Frame {
	i := sort.Search(len(s.Frames), func(i int) bool { return s.Frames[i].At > tick })
	if i == 0 {
		return Frame{At: tick}
	}
	return s.Frames[i-1]
}

// Length is the tick of the last frame plus one.
func (s *Script) Length() int {
	if len(s.Frames) == 0 {
		return 0
	}
	return s.Frames[len(s.Frames)-1].At + 1
}

// Sample is one tick of replayed input.
type Sample struct {
	Raw    controller.RawInput
	Camera math.Vec2
	// Center is true on the tick recentering was requested.
	Center bool
}

// Playback replays a script tick by tick.
type Playback struct {
	script  *Script
	tracker Tracker
	center  Action
	tick    int
}

// NewPlayback starts a script at tick zero.
func NewPlayback(s *Script) *Playback {
	return &Playback{script: s}
}

// Tick is the index of the next sample.
func (p *Playback) Tick() int {
	return p.tick
}

// Done reports whether every frame has been replayed.
func (p *Playback) Done() bool {
	return p.tick >= p.script.Length()
}

// Next returns the input for the current tick and advances.
func (p *Playback) Next() Sample {
	f := p.script.At(p.tick)
	p.tick++

	return Sample{
		Raw:    p.tracker.Update(math.Vec2{X: f.Move[0], Y: f.Move[1]}, f.buttons()),
		Camera: math.Vec2{X: f.Camera[0], Y: f.Camera[1]},
		Center: p.center.Update(f.Center).Started(),
	}
}
