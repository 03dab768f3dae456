package action

import (
	"testing"

	"voxelrogue/clock"
	"voxelrogue/config"
	"voxelrogue/ecs"
	"voxelrogue/lattice"
	"voxelrogue/msg"
	"voxelrogue/placement"
)

type openFloor struct{}

func (openFloor) CanBeStoodIn(l lattice.Location) bool { return l.Z == 0 }

func newTestContext() (*Context, *ecs.World) {
	w := ecs.NewWorld()
	return &Context{
		World:     w,
		Places:    placement.NewIndex(),
		Scheduler: clock.NewScheduler(config.StartInstant),
		Terrain:   openFloor{},
		Bus:       &msg.Bus{},
		WorldSeed: 1,
	}, w
}

func TestStepMovesAndSetsMomentum(t *testing.T) {
	ctx, w := newTestContext()
	e := w.Spawn(ecs.SiloMob)
	start := lattice.At(0, 0, 0)
	ctx.Places.Insert(placement.At(start), e)

	if !Step(ctx, e, lattice.North) {
		t.Fatal("step onto open floor should succeed")
	}

	got, ok := ctx.Places.LocationOf(e)
	if !ok || got != start.Step(lattice.North) {
		t.Errorf("entity should have moved north, got %v", got)
	}

	mom := ecs.With[ecs.Momentum](w, e, ecs.KindMomentum)
	if mom.DX != lattice.North.DX || mom.DY != lattice.North.DY {
		t.Errorf("momentum should record the step direction, got %+v", mom)
	}
}

func TestAttackStepFightsEnemyInstead(t *testing.T) {
	ctx, w := newTestContext()
	attacker := w.Spawn(ecs.SiloMob)
	enemy := w.Spawn(ecs.SiloMob)

	ecs.Set(w, attacker, ecs.KindIsMob, true)
	ecs.Set(w, enemy, ecs.KindIsMob, true)
	ecs.Set(w, attacker, ecs.KindIsFriendly, true)
	ecs.Set(w, enemy, ecs.KindIsFriendly, false)
	ecs.Set(w, attacker, ecs.KindStats, ecs.Stats{Hit: 1000, Dmg: 5})
	ecs.Set(w, enemy, ecs.KindWounds, ecs.Wounds{Current: 10, Max: 10})

	start := lattice.At(0, 0, 0)
	ctx.Places.Insert(placement.At(start), attacker)
	ctx.Places.Insert(placement.At(start.Step(lattice.North)), enemy)

	attackStep(ctx, attacker, lattice.North)

	wounds := ecs.With[ecs.Wounds](w, enemy, ecs.KindWounds)
	if wounds.Current != 5 {
		t.Errorf("a guaranteed hit should apply 5 damage, enemy at %d hp", wounds.Current)
	}

	loc, _ := ctx.Places.LocationOf(attacker)
	if loc != start {
		t.Error("attacking should not move the attacker")
	}
}

func TestAttackKillsAndDespawns(t *testing.T) {
	ctx, w := newTestContext()
	attacker := w.Spawn(ecs.SiloMob)
	victim := w.Spawn(ecs.SiloMob)
	ecs.Set(w, attacker, ecs.KindStats, ecs.Stats{Hit: 1000, Dmg: 50})
	ecs.Set(w, victim, ecs.KindWounds, ecs.Wounds{Current: 5, Max: 5})
	ctx.Places.Insert(placement.At(lattice.At(0, 0, 0)), victim)

	Attack(ctx, attacker, victim)

	if w.Alive(victim) {
		t.Error("a lethal hit should despawn the victim")
	}
}

func TestPassCompletesPhase(t *testing.T) {
	ctx, w := newTestContext()
	e := w.Spawn(ecs.SiloMob)
	ecs.Set(w, e, ecs.KindSpeed, 12)

	Execute(ctx, e, Action{Kind: Pass})
	after := ecs.With[clock.Instant](w, e, ecs.KindActsNext)

	if after.Sub(ctx.Scheduler.Now()) <= 0 {
		t.Errorf("acts_next should land strictly after the current instant, got %v vs now %v", after, ctx.Scheduler.Now())
	}
}
