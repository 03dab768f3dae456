// Package clock implements the turn/phase scheduler: spec.md §4.8. Time
// advances in phases, and an entity with speed s acts on each phase where
// phase*s/PhasesInTurn (integer division) steps up by one or more; see
// Instant.IsActionFrame. Grounded on
// original_source/engine/src/time.rs (Instant, is_action_frame) for the
// phase-eligibility formula, and on
// Afromullet-TinkerRogue/timesystem/timemanager.go's ActionManager for the
// priority-queue shape used to decide who acts next.
package clock

import (
	"fmt"

	"voxelrogue/config"
)

// Instant is an opaque point in game time, counted in phases (1/PhasesInTurn
// of a turn).
type Instant int64

// Add returns the instant n phases later (n may be negative).
func (i Instant) Add(n int64) Instant { return i + Instant(n) }

// Sub returns the number of phases between i and o (i - o).
func (i Instant) Sub(o Instant) int64 { return int64(i - o) }

// Phase returns i's position within its turn, in [0, PhasesInTurn).
func (i Instant) Phase() int64 {
	p := int64(i) % int64(config.PhasesInTurn)
	if p < 0 {
		p += int64(config.PhasesInTurn)
	}
	return p
}

// IsActionFrame reports whether an entity with the given speed acts on
// instant i. speed 0 never acts; speed == PhasesInTurn acts every phase.
// Grounded verbatim on time.rs's is_action_frame: compares the integer
// division of phase*speed across the phase boundary, which spreads a
// speed-N entity's N actions per turn as evenly as integer division allows
// rather than bunching them at the start of the turn.
func (i Instant) IsActionFrame(speed int) bool {
	if speed == 0 {
		return false
	}
	phase := i.Phase()
	s := int64(speed)
	n := int64(config.PhasesInTurn)
	return phase*s/n != (phase+1)*s/n
}

// String renders an instant as "HH:MM:SS" (omitting the hour field under one
// hour), matching time.rs's Display impl.
func (i Instant) String() string {
	v := int64(i)
	if v >= 3600 {
		return fmt.Sprintf("%02d:%02d:%02d", v/3600, (v/60)%60, v%60)
	}
	return fmt.Sprintf("%02d:%02d", (v/60)%60, v%60)
}
