package clock

import (
	"testing"

	"voxelrogue/config"
	"voxelrogue/ecs"
)

func TestSpeedDefaultsToZeroWhenUnset(t *testing.T) {
	w := ecs.NewWorld()
	e := w.Spawn(ecs.SiloItem)

	if got := Speed(w, e); got != 0 {
		t.Errorf("want 0 for an entity with no Speed component, got %d", got)
	}

	s := NewScheduler(config.StartInstant)
	for p := int64(0); p < int64(config.PhasesInTurn); p++ {
		if s.ActsNext(w, e) {
			t.Fatalf("a speed-0 entity should never be an action frame, phase %d", p)
		}
		s.Advance(1)
	}
}

func TestSpeedReadsExplicitValue(t *testing.T) {
	w := ecs.NewWorld()
	e := w.Spawn(ecs.SiloMob)
	ecs.Set(w, e, ecs.KindSpeed, config.PhasesInTurn)

	if got := Speed(w, e); got != config.PhasesInTurn {
		t.Errorf("want %d, got %d", config.PhasesInTurn, got)
	}
}
