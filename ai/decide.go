package ai

import (
	"sort"

	"voxelrogue/action"
	"voxelrogue/config"
	"voxelrogue/ecs"
	"voxelrogue/fovsim"
	"voxelrogue/lattice"
	"voxelrogue/pathing"
	"voxelrogue/terrain"
)

// Context bundles the subsystems Decide needs beyond what action.Context
// already carries: the concrete terrain store (fovsim and pathing need more
// than the CanBeStoodIn-only interface action.Context exposes), and the
// player-aligned memory of which cells have been seen before.
type Context struct {
	Action *action.Context
	Terrain *terrain.Store

	// Explored reports whether loc is in the shared player-aligned fog-of-
	// war memory. Nil means "nothing has been explored yet".
	Explored func(lattice.Location) bool
	// Reveal marks loc as explored; called by ScanFOV as player-aligned
	// mobs see new cells.
	Reveal func(lattice.Location)

	// Player returns the player entity, the target FollowPlayer falls back
	// to when no enemy is visible. May be the zero Entity if there is no
	// player yet.
	Player func() ecs.Entity
}

func (ctx *Context) explored(loc lattice.Location) bool {
	if ctx.Explored == nil {
		return false
	}
	return ctx.Explored(loc)
}

func mobAt(ctx *Context, loc lattice.Location) (ecs.Entity, bool) {
	for _, e := range ctx.Action.Places.At(loc) {
		if ctx.Action.World.Alive(e) && ecs.IsMob(ctx.Action.World, e) {
			return e, true
		}
	}
	return ecs.Entity{}, false
}

func isFriendly(ctx *Context, e ecs.Entity) bool {
	return ecs.With[bool](ctx.Action.World, e, ecs.KindIsFriendly)
}

func isEnemy(ctx *Context, a, b ecs.Entity) bool {
	return isFriendly(ctx, a) != isFriendly(ctx, b)
}

// occupiedDoor reports whether a mob stands in loc, feeding fovsim's
// open-door-if-occupied sight rule.
func occupiedDoor(ctx *Context) func(lattice.Location) bool {
	return func(loc lattice.Location) bool {
		_, ok := mobAt(ctx, loc)
		return ok
	}
}

// visibleCellsOrdered returns vp's FOV cells sorted by distance then
// lexicographic position, a deterministic substitute for original_source's
// polar-coordinate scan order (Go map iteration has no stable order).
func visibleCellsOrdered(ctx *Context, vp lattice.Location, radius int) []lattice.Location {
	set := fovsim.Compute(ctx.Terrain, vp, radius, occupiedDoor(ctx))
	cells := make([]lattice.Location, 0, len(set))
	for loc := range set {
		cells = append(cells, loc)
	}
	sort.Slice(cells, func(i, j int) bool {
		di, dj := vp.ChebyshevDistance2D(cells[i]), vp.ChebyshevDistance2D(cells[j])
		if di != dj {
			return di < dj
		}
		if cells[i].X != cells[j].X {
			return cells[i].X < cells[j].X
		}
		return cells[i].Y < cells[j].Y
	})
	return cells
}

// firstVisibleEnemy returns the nearest enemy mob in e's FOV, if any:
// original_source's Entity::first_visible_enemy.
func firstVisibleEnemy(ctx *Context, e ecs.Entity) (ecs.Entity, bool) {
	loc, ok := ctx.Action.Places.LocationOf(e)
	if !ok {
		return ecs.Entity{}, false
	}
	for _, cell := range visibleCellsOrdered(ctx, loc, config.FOVRadius) {
		if mob, ok := mobAt(ctx, cell); ok && mob != e && isEnemy(ctx, e, mob) {
			return mob, true
		}
	}
	return ecs.Entity{}, false
}

func walkNeighbors(ctx *Context) pathing.Neighbors {
	return func(loc lattice.Location) []lattice.Location {
		return ctx.Terrain.WalkNeighbors4(loc)
	}
}

func dirTowards(from, to lattice.Location) (lattice.Dir4, bool) {
	for _, d := range lattice.Dirs4 {
		if from.Step(d) == to {
			return d, true
		}
	}
	return lattice.Dir4{}, false
}

func isPlayerAligned(ctx *Context, e ecs.Entity) bool {
	return isFriendly(ctx, e)
}

func canStep(ctx *Context, e ecs.Entity, dir lattice.Dir4) bool {
	loc, ok := ctx.Action.Places.LocationOf(e)
	if !ok {
		return false
	}
	next := loc.Step(dir)
	if !ctx.Action.Terrain.CanBeStoodIn(next) {
		return false
	}
	if mob, ok := mobAt(ctx, next); ok && !isEnemy(ctx, e, mob) {
		return false
	}
	return true
}

func zoneOrSector(g Goal, loc lattice.Location) lattice.Box {
	if g.Zone.Width() > 0 {
		return g.Zone
	}
	return loc.Sector()
}

// Decide picks the next Action for e working towards goal, per
// original_source's Entity::decide. Returns false when the goal cannot
// currently produce a step (target gone, already arrived, path blocked with
// nothing to do) — the caller should then advance to NextGoal.
func Decide(ctx *Context, e ecs.Entity, goal Goal) (action.Action, bool) {
	loc, ok := ctx.Action.Places.LocationOf(e)
	if !ok {
		return action.Action{}, false
	}

	var dest lattice.Location
	haveDest := false

	switch goal.Kind {
	case None:
		return action.Action{Kind: action.Pass}, true

	case FollowPlayer:
		if ecs.IsPlayer(ctx.Action.World, e) {
			return action.Action{}, false
		}
		if enemy, ok := firstVisibleEnemy(ctx, e); ok {
			if eloc, ok := ctx.Action.Places.LocationOf(enemy); ok {
				dest, haveDest = eloc, true
			}
		} else if ctx.Player != nil {
			if player := ctx.Player(); player.Valid() {
				if ploc, ok := ctx.Action.Places.LocationOf(player); ok {
					dest, haveDest = ploc, true
				}
			}
		}
		if !haveDest {
			return action.Action{}, false
		}

	case StartAutoexplore, Autoexplore:
		if !ecs.IsPlayer(ctx.Action.World, e) {
			if enemy, ok := firstVisibleEnemy(ctx, e); ok {
				return Decide(ctx, e, Goal{Kind: Attack, Target: enemy})
			}
		}

		zone := zoneOrSector(goal, loc)
		dm := AutoexploreMap(ctx, zone)
		if len(dm) == 0 {
			return action.Action{}, false
		}
		if goal.Kind == StartAutoexplore {
			// Arriving here just drops the start marker; NextGoal promotes
			// to plain Autoexplore next turn.
			return action.Action{}, false
		}

		// Bump covers both "step onto open floor" and "step onto a frontier
		// cell to reveal/pick up whatever's there" — there is no separate
		// move-only action kind, so both cases below resolve the same way.
		_, dir, ok := autoexploreStep(dm, loc, walkNeighbors(ctx))
		if !ok {
			return action.Action{}, false
		}
		return action.Action{Kind: action.Bump, Dir: dir}, true

	case GoTo:
		dest, haveDest = goal.Destination, true
		if goal.IsAttackMove {
			if enemy, ok := firstVisibleEnemy(ctx, e); ok {
				if eloc, ok := ctx.Action.Places.LocationOf(enemy); ok {
					dest = eloc
				}
			}
		}

	case Attack:
		if !ctx.Action.World.Alive(goal.Target) {
			return action.Action{}, false
		}
		eloc, ok := ctx.Action.Places.LocationOf(goal.Target)
		if !ok {
			return action.Action{}, false
		}
		dest, haveDest = eloc, true

	case Escort:
		if !ctx.Action.World.Alive(goal.Target) {
			return action.Action{}, false
		}
		if ecs.IsPlayer(ctx.Action.World, e) {
			return action.Action{}, false
		}
		eloc, ok := ctx.Action.Places.LocationOf(goal.Target)
		if !ok {
			return action.Action{}, false
		}
		dest, haveDest = eloc, true
	}

	if !haveDest {
		return action.Action{}, false
	}
	if loc == dest {
		return action.Action{}, false
	}

	// Adjacent to the destination: fight or bump rather than pathfind.
	if dir, ok := dirTowards(loc, dest); ok {
		next := loc.Step(dir)
		if mob, ok := mobAt(ctx, next); ok && isEnemy(ctx, e, mob) {
			return action.Action{Kind: action.Bump, Dir: dir}, true
		}
		if goal.Kind == Escort {
			return action.Action{Kind: action.Pass}, true
		}
		if canStep(ctx, e, dir) {
			return action.Action{Kind: action.Bump, Dir: dir}, true
		}
	}

	var path []lattice.Location
	var found bool
	if isPlayerAligned(ctx, e) {
		path, found = pathing.FindFogPath(ctx.Terrain, loc, pathing.PointGoal(dest), ctx.explored, loc.Sector(), 2000)
	} else {
		path, found = pathing.FindPath(loc, pathing.PointGoal(dest), walkNeighbors(ctx), 2000)
	}
	if !found || len(path) == 0 {
		return action.Action{}, false
	}

	next := path[0]
	dir, ok := dirTowards(loc, next)
	if !ok {
		return action.Action{}, false
	}

	if canStep(ctx, e, dir) {
		return action.Action{Kind: action.Bump, Dir: dir}, true
	}

	// Blocked by an undisplaceable mob; try the other three cardinals
	// before giving up and waiting.
	for _, d := range lattice.Dirs4 {
		if d == dir {
			continue
		}
		if canStep(ctx, e, d) {
			return action.Action{Kind: action.Bump, Dir: d}, true
		}
	}
	return action.Action{Kind: action.Pass}, true
}

// AutoexploreMap builds a Dijkstra map whose seeds are explored
// walk-standable cells bordering at least one unexplored cell within zone:
// spec.md §4.10, "seeds = frontier cells". Walking downhill over
// already-explored territory leads a mob to the nearest unseen edge.
func AutoexploreMap(ctx *Context, zone lattice.Box) pathing.DijkstraMap {
	var seeds []lattice.Location
	for x := zone.Min.X; x < zone.Max.X; x++ {
		for y := zone.Min.Y; y < zone.Max.Y; y++ {
			loc := lattice.At(x, y, zone.Min.Z)
			if !ctx.Terrain.CanBeStoodIn(loc) || !ctx.explored(loc) {
				continue
			}
			for _, n := range ctx.Terrain.WalkNeighbors4(loc) {
				if !ctx.explored(n) {
					seeds = append(seeds, loc)
					break
				}
			}
		}
	}

	neighbors := func(loc lattice.Location) []lattice.Location {
		var out []lattice.Location
		for _, n := range ctx.Terrain.WalkNeighbors4(loc) {
			if zone.Contains(n) && ctx.explored(n) {
				out = append(out, n)
			}
		}
		return out
	}
	return pathing.BuildDijkstraMap(seeds, neighbors, 0)
}

// autoexploreStep reports the distance at loc and the direction of the next
// downhill step towards the nearest frontier seed. n==0 means loc is itself
// a frontier cell; the caller bumps towards the nearest unexplored neighbor
// to reveal it.
func autoexploreStep(dm pathing.DijkstraMap, loc lattice.Location, neighbors pathing.Neighbors) (int, lattice.Dir4, bool) {
	n, ok := dm[loc]
	if !ok {
		return 0, lattice.Dir4{}, false
	}
	if n == 0 {
		for _, d := range lattice.Dirs4 {
			if _, known := dm[loc.Step(d)]; !known {
				return 0, d, true
			}
		}
		return 0, lattice.Dir4{}, false
	}
	next, ok := dm.Downhill(loc, neighbors)
	if !ok {
		return 0, lattice.Dir4{}, false
	}
	dir, ok := dirTowards(loc, next)
	if !ok {
		return 0, lattice.Dir4{}, false
	}
	return n, dir, true
}
