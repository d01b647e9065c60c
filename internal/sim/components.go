package sim

import (
	"fmt"

	"github.com/yohamta/donburi"

	"github.com/Faultbox/hopper/internal/collision"
	"github.com/Faultbox/hopper/internal/controller"
)

// StateData holds the active movement state variant.
type StateData struct {
	Current controller.State
}

// ColliderData is the character's shape and its body in the level.
type ColliderData struct {
	Shape   collision.Box
	ID      collision.BodyID
	Sliding bool
}

var (
	Player = donburi.NewTag().SetName("Player")

	Kinematic = donburi.NewComponentType[controller.Body]()
	RawInput  = donburi.NewComponentType[controller.RawInput]()
	Input     = donburi.NewComponentType[controller.Input]()
	State     = donburi.NewComponentType[StateData]()
	Settings  = donburi.NewComponentType[controller.Settings]()
	Collider  = donburi.NewComponentType[ColliderData]()
)

var playerComponents = []struct {
	name string
	c    donburi.IComponentType
}{
	{"kinematic", Kinematic},
	{"raw input", RawInput},
	{"input", Input},
	{"state", State},
	{"settings", Settings},
	{"collider", Collider},
}

func playerArchetype() []donburi.IComponentType {
	cs := []donburi.IComponentType{Player}
	for _, pc := range playerComponents {
		cs = append(cs, pc.c)
	}
	return cs
}

// mustBePlayer panics when an entry tagged as a player is missing part of
// the controller archetype.
func mustBePlayer(e *donburi.Entry) {
	for _, pc := range playerComponents {
		if !e.HasComponent(pc.c) {
			panic(fmt.Sprintf("sim: player entity %v has no %s component", e.Entity(), pc.name))
		}
	}
}
