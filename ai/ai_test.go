package ai

import (
	"testing"

	"voxelrogue/action"
	"voxelrogue/clock"
	"voxelrogue/config"
	"voxelrogue/ecs"
	"voxelrogue/lattice"
	"voxelrogue/msg"
	"voxelrogue/placement"
	"voxelrogue/terrain"
)

func carveOpenRoom(store *terrain.Store, minX, minY, maxX, maxY int) {
	for x := minX; x < maxX; x++ {
		for y := minY; y < maxY; y++ {
			store.SetVoxel(lattice.At(x, y, 0), terrain.None)
		}
	}
}

func newTestContext(store *terrain.Store) (*Context, *ecs.World) {
	w := ecs.NewWorld()
	places := placement.NewIndex()
	actx := &action.Context{
		World:     w,
		Places:    places,
		Scheduler: clock.NewScheduler(config.StartInstant),
		Terrain:   store,
		Bus:       &msg.Bus{},
		WorldSeed: 1,
	}
	explored := map[lattice.Location]bool{}
	ctx := &Context{
		Action:  actx,
		Terrain: store,
		Explored: func(l lattice.Location) bool { return explored[l] },
		Reveal:   func(l lattice.Location) { explored[l] = true },
	}
	return ctx, w
}

func TestDecideNoneGoalPasses(t *testing.T) {
	store := terrain.NewStore()
	carveOpenRoom(store, -3, -3, 3, 3)
	ctx, w := newTestContext(store)
	e := w.Spawn(ecs.SiloMob)
	ctx.Action.Places.Insert(placement.At(lattice.At(0, 0, 0)), e)

	a, ok := Decide(ctx, e, Goal{Kind: None})
	if !ok || a.Kind != action.Pass {
		t.Errorf("an empty goal should resolve to Pass, got %+v ok=%v", a, ok)
	}
}

func TestDecideAttackStepsTowardsTarget(t *testing.T) {
	store := terrain.NewStore()
	carveOpenRoom(store, -5, -5, 5, 5)
	ctx, w := newTestContext(store)

	attacker := w.Spawn(ecs.SiloMob)
	victim := w.Spawn(ecs.SiloMob)
	ctx.Action.Places.Insert(placement.At(lattice.At(0, 0, 0)), attacker)
	ctx.Action.Places.Insert(placement.At(lattice.At(3, 0, 0)), victim)

	a, ok := Decide(ctx, attacker, Goal{Kind: Attack, Target: victim})
	if !ok {
		t.Fatal("expected a step towards the attack target")
	}
	if a.Kind != action.Bump {
		t.Errorf("expected Bump towards the target, got %+v", a)
	}
}

func TestDecideAttackAdjacentBumpsIntoEnemy(t *testing.T) {
	store := terrain.NewStore()
	carveOpenRoom(store, -3, -3, 3, 3)
	ctx, w := newTestContext(store)

	attacker := w.Spawn(ecs.SiloMob)
	victim := w.Spawn(ecs.SiloMob)
	ecs.Set(w, attacker, ecs.KindIsFriendly, true)
	ecs.Set(w, victim, ecs.KindIsFriendly, false)

	ctx.Action.Places.Insert(placement.At(lattice.At(0, 0, 0)), attacker)
	ctx.Action.Places.Insert(placement.At(lattice.At(1, 0, 0)), victim)

	a, ok := Decide(ctx, attacker, Goal{Kind: Attack, Target: victim})
	if !ok || a.Kind != action.Bump || a.Dir != lattice.East {
		t.Errorf("expected an eastward Bump, got %+v ok=%v", a, ok)
	}
}

func TestDecideAttackOnDeadTargetFails(t *testing.T) {
	store := terrain.NewStore()
	carveOpenRoom(store, -3, -3, 3, 3)
	ctx, w := newTestContext(store)

	attacker := w.Spawn(ecs.SiloMob)
	victim := w.Spawn(ecs.SiloMob)
	ctx.Action.Places.Insert(placement.At(lattice.At(0, 0, 0)), attacker)
	w.Despawn(victim)

	if _, ok := Decide(ctx, attacker, Goal{Kind: Attack, Target: victim}); ok {
		t.Error("attacking a despawned entity should fail and fall through to NextGoal")
	}
}

func TestNextGoalAttackReturnsNPCToFollowPlayer(t *testing.T) {
	store := terrain.NewStore()
	_, w := newTestContext(store)
	e := w.Spawn(ecs.SiloMob)
	ecs.Set(w, e, ecs.KindIsMob, true)
	SetGoal(w, e, Goal{Kind: Attack, Target: ecs.Entity{}})

	NextGoal(w, e)

	if got := CurrentGoal(w, e).Kind; got != FollowPlayer {
		t.Errorf("an NPC's completed Attack goal should fall back to FollowPlayer, got %v", got)
	}
}

func TestNextGoalAttackClearsForPlayer(t *testing.T) {
	store := terrain.NewStore()
	ctx, w := newTestContext(store)
	_ = ctx
	e := w.Spawn(ecs.SiloMob)
	ecs.Set(w, e, ecs.KindIsMob, true)
	ecs.Set(w, e, ecs.KindIsPlayer, true)
	SetGoal(w, e, Goal{Kind: Attack, Target: ecs.Entity{}})

	NextGoal(w, e)

	if got := CurrentGoal(w, e).Kind; got != None {
		t.Errorf("the player's completed Attack goal should clear to None, got %v", got)
	}
}

func TestAutoexploreMapSeedsFrontierAndStepsDownhill(t *testing.T) {
	store := terrain.NewStore()
	carveOpenRoom(store, 0, 0, 10, 10)
	ctx, _ := newTestContext(store)

	zone := lattice.At(0, 0, 0).Sector()
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			ctx.Reveal(lattice.At(x, y, 0))
		}
	}

	dm := AutoexploreMap(ctx, zone)
	if len(dm) == 0 {
		t.Fatal("expected a nonempty frontier map with explored/unexplored boundary cells")
	}

	start := lattice.At(0, 0, 0)
	n, _, ok := autoexploreStep(dm, start, walkNeighbors(ctx))
	if !ok {
		t.Fatal("expected a downhill step to exist from an explored cell")
	}
	_ = n
}

func TestAlertHandlerRedirectsIdleAlly(t *testing.T) {
	store := terrain.NewStore()
	_, w := newTestContext(store)
	ally := w.Spawn(ecs.SiloMob)
	ecs.Set(w, ally, ecs.KindIsMob, true)
	enemy := w.Spawn(ecs.SiloMob)

	handler := AlertHandler(w)
	handler(ally, enemy)

	g := CurrentGoal(w, ally)
	if g.Kind != Attack || g.Target != enemy {
		t.Errorf("an idle ally should switch to Attack(enemy), got %+v", g)
	}
}

func TestAlertHandlerDoesNotInterruptAutoexplore(t *testing.T) {
	store := terrain.NewStore()
	_, w := newTestContext(store)
	ally := w.Spawn(ecs.SiloMob)
	enemy := w.Spawn(ecs.SiloMob)
	SetGoal(w, ally, Goal{Kind: Autoexplore})

	handler := AlertHandler(w)
	handler(ally, enemy)

	if got := CurrentGoal(w, ally).Kind; got != Autoexplore {
		t.Errorf("an autoexploring ally should not be redirected, got %v", got)
	}
}
