package collision

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/hopper/pkg/math"
)

// LevelFile is the on-disk description of a level.
type LevelFile struct {
	Skin   float32     `yaml:"skin"`
	Boxes  []BoxSpec   `yaml:"boxes"`
	Spawns []SpawnSpec `yaml:"spawns"`
}

// BoxSpec is a single box in a level file.
type BoxSpec struct {
	Name  string     `yaml:"name"`
	Min   [3]float32 `yaml:"min"`
	Max   [3]float32 `yaml:"max"`
	Layer string     `yaml:"layer"`
}

// SpawnSpec is a player spawn point in a level file.
type SpawnSpec struct {
	Position [3]float32 `yaml:"position"`
}

// LoadedLevel is a level built from a file along with its spawn points.
type LoadedLevel struct {
	*Level
	Spawns []math.Vec3
}

// LoadLevelFile reads and builds a level from a YAML file.
func LoadLevelFile(path string) (*LoadedLevel, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening level %s: %w", path, err)
	}
	defer f.Close()

	lvl, err := LoadLevel(f)
	if err != nil {
		return nil, fmt.Errorf("loading level %s: %w", path, err)
	}
	return lvl, nil
}

// LoadLevel decodes a YAML level description and builds it.
func LoadLevel(r io.Reader) (*LoadedLevel, error) {
	var file LevelFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding level: %w", err)
	}
	return file.Build()
}

// Build validates the description and creates the level.
func (f *LevelFile) Build() (*LoadedLevel, error) {
	if f.Skin < 0 {
		return nil, fmt.Errorf("skin must not be negative, got %v", f.Skin)
	}

	lvl := NewLevel()
	if f.Skin > 0 {
		lvl.SetSkin(f.Skin)
	}

	for i, b := range f.Boxes {
		layer, ok := ParseLayer(b.Layer)
		if !ok {
			return nil, fmt.Errorf("box %d (%q): unknown layer %q", i, b.Name, b.Layer)
		}
		bounds := NewAABB(vec(b.Min), vec(b.Max))
		size := bounds.Max.Sub(bounds.Min)
		if size.X <= 0 || size.Y <= 0 || size.Z <= 0 {
			return nil, fmt.Errorf("box %d (%q): zero volume", i, b.Name)
		}
		lvl.Add(b.Name, layer, bounds)
	}

	out := &LoadedLevel{Level: lvl}
	for _, s := range f.Spawns {
		out.Spawns = append(out.Spawns, vec(s.Position))
	}
	return out, nil
}

func vec(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
