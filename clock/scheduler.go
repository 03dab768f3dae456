package clock

import (
	"sort"

	"voxelrogue/ecs"
)

// Scheduler advances game time and decides, phase by phase, which mobs are
// eligible to act. Grounded on
// Afromullet-TinkerRogue/timesystem/timemanager.go's ActionManager, which
// keeps a priority-ordered queue and re-sorts after each entity acts;
// Scheduler replaces its action-point budget with Instant-based phase
// eligibility (ActsNext) per time.rs.
type Scheduler struct {
	now Instant
}

// NewScheduler starts a Scheduler at the given instant.
func NewScheduler(start Instant) *Scheduler {
	return &Scheduler{now: start}
}

// Now returns the current instant.
func (s *Scheduler) Now() Instant { return s.now }

// Advance moves time forward by n phases.
func (s *Scheduler) Advance(n int64) { s.now = s.now.Add(n) }

// Speed reads an entity's Speed component, defaulting to 0 (never acts)
// when unset, per spec.md §3.8's "Speed 0 = never acts" and the
// defaults-elide-to-absence rule: a mob that matters takes its real speed
// at spawn (gamedata.BuildMonster sets it from the bestiary), so an absent
// value means there genuinely is no mob there to schedule.
func Speed(w *ecs.World, e ecs.Entity) int {
	return ecs.With[int](w, e, ecs.KindSpeed)
}

// ActsNext reports whether e is eligible to act on the scheduler's current
// instant, per its Speed.
func (s *Scheduler) ActsNext(w *ecs.World, e ecs.Entity) bool {
	return s.now.IsActionFrame(Speed(w, e))
}

// Eligible returns every mob in candidates that is allowed to act this
// phase, ordered by entity ID for determinism (so replays with the same
// world seed produce the same turn order on ties).
func (s *Scheduler) Eligible(w *ecs.World, candidates []ecs.Entity) []ecs.Entity {
	out := make([]ecs.Entity, 0, len(candidates))
	for _, e := range candidates {
		if s.ActsNext(w, e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}
