// Package runtime wires world, ecs, placement, clock, action, and ai
// together into the single facade a driver ticks: spec.md §4.8. Grounded
// on original_source/world/src/sim.rs's Sim (the struct that owns a World,
// an ecs hecs::World, and drives the per-turn loop) and on
// Afromullet-TinkerRogue/game_main/main.go's Game, which plays the same
// role of owning every subsystem and exposing a single Update entry point.
package runtime

import (
	"fmt"

	"voxelrogue/action"
	"voxelrogue/ai"
	"voxelrogue/clock"
	"voxelrogue/config"
	"voxelrogue/ecs"
	"voxelrogue/gamedata"
	"voxelrogue/lattice"
	"voxelrogue/msg"
	"voxelrogue/placement"
	"voxelrogue/scenario"
	"voxelrogue/skeleton"
	"voxelrogue/world"
)

// Runtime owns every live subsystem of a running game: the on-demand world,
// the entity store, where things are, the clock, and the message bus
// gameplay text and effects are emitted to.
type Runtime struct {
	World  *world.World
	ECS    *ecs.World
	Places *placement.Index
	Clock  *clock.Scheduler
	Bus    *msg.Bus
	Data   *gamedata.Data

	explored lattice.Cloud
	player   ecs.Entity

	action *action.Context
	ai     *ai.Context
}

// New builds a Runtime from a scenario and its static data, seeded by
// seed, and spawns the player at the scenario's entrance. The generic
// sector generator is always GenericSectorGenerator tuned by t, fed
// spawn candidates from d.
func New(seed uint64, sc scenario.Scenario, d *gamedata.Data, t config.Tuning) (*Runtime, error) {
	genericGen := func(s scenario.GenericSector) (skeleton.MapGenerator, error) {
		return skeleton.GenericSectorGenerator{Sector: s, Tuning: t, Spawns: d}, nil
	}

	w, err := world.New(seed, sc, genericGen)
	if err != nil {
		return nil, fmt.Errorf("runtime: %w", err)
	}

	rt := &Runtime{
		World:    w,
		ECS:      ecs.NewWorld(),
		Places:   placement.NewIndex(),
		Clock:    clock.NewScheduler(config.StartInstant),
		Bus:      &msg.Bus{},
		Data:     d,
		explored: lattice.NewCloud(),
	}

	rt.action = &action.Context{
		World:     rt.ECS,
		Places:    rt.Places,
		Scheduler: rt.Clock,
		Terrain:   w.Store(),
		Bus:       rt.Bus,
		WorldSeed: seed,
	}
	rt.action.Alert = ai.AlertHandler(rt.ECS)

	rt.ai = &ai.Context{
		Action:   rt.action,
		Terrain:  w.Store(),
		Explored: rt.explored.Contains,
		Reveal:   rt.explored.Insert,
		Player:   func() ecs.Entity { return rt.player },
	}

	rt.spawnPlayer(w.PlayerEntrance())
	rt.materialize(w.PopulateAround(w.PlayerEntrance()))

	return rt, nil
}

// Player returns the player entity.
func (rt *Runtime) Player() ecs.Entity { return rt.player }

// Explored reports whether loc is in the player's fog-of-war memory.
func (rt *Runtime) Explored(loc lattice.Location) bool { return rt.explored.Contains(loc) }

// spawnPlayer builds the single player-controlled mob and places it at loc.
// Not data-driven by the bestiary: the player has no SpawnDist entry and is
// always present, so it's built directly rather than through BuildMonster.
func (rt *Runtime) spawnPlayer(loc lattice.Location) {
	e := rt.ECS.Spawn(ecs.SiloMob)
	ecs.Set(rt.ECS, e, ecs.KindName, "you")
	ecs.Set(rt.ECS, e, ecs.KindIcon, '@')
	ecs.Set(rt.ECS, e, ecs.KindSpeed, config.PhasesInTurn)
	ecs.Set(rt.ECS, e, ecs.KindIsMob, true)
	ecs.Set(rt.ECS, e, ecs.KindIsPlayer, true)
	ecs.Set(rt.ECS, e, ecs.KindIsFriendly, true)
	ecs.Set(rt.ECS, e, ecs.KindStats, ecs.Stats{Level: 1, Ev: 0, Dmg: 3})
	ecs.Set(rt.ECS, e, ecs.KindWounds, ecs.Wounds{Current: 20, Max: 20})

	rt.player = e
	rt.Places.Insert(placement.At(loc), e)
	rt.explored.Insert(loc)
}

// materialize realizes every pod spawn PopulateAround returned into live,
// placed entities.
func (rt *Runtime) materialize(spawns []skeleton.PatchSpawn) {
	for _, sp := range spawns {
		gamedata.SpawnPod(rt.ECS, rt.Places, rt.World.Store(), rt.Data, sp.Loc, sp.Spawn)
	}
}
