package placement

import (
	"testing"

	"voxelrogue/ecs"
	"voxelrogue/lattice"
)

func TestInsertAndAt(t *testing.T) {
	w := ecs.NewWorld()
	ix := NewIndex()

	e1 := w.Spawn(ecs.SiloMob)
	e2 := w.Spawn(ecs.SiloMob)
	loc := lattice.At(1, 2, 0)

	ix.Insert(At(loc), e1)
	ix.Insert(At(loc), e2)

	got := ix.At(loc)
	if len(got) != 2 {
		t.Fatalf("want 2 entities at loc, got %d", len(got))
	}
}

func TestAtPreservesInsertionOrder(t *testing.T) {
	w := ecs.NewWorld()
	ix := NewIndex()
	loc := lattice.At(1, 2, 0)

	var spawned []ecs.Entity
	for i := 0; i < 8; i++ {
		e := w.Spawn(ecs.SiloMob)
		spawned = append(spawned, e)
		ix.Insert(At(loc), e)
	}

	got := ix.At(loc)
	if len(got) != len(spawned) {
		t.Fatalf("want %d entities, got %d", len(spawned), len(got))
	}
	for i, e := range got {
		if e.ID() != spawned[i].ID() {
			t.Fatalf("At(loc)[%d] = %s, want %s (insertion order)", i, e, spawned[i])
		}
	}

	// Removing a middle entity should not disturb the relative order of the
	// rest, and re-inserting it should put it at the back.
	mid := spawned[3]
	ix.Remove(mid)
	ix.Insert(At(loc), mid)

	want := append(append([]ecs.Entity{}, spawned[:3]...), spawned[4:]...)
	want = append(want, mid)

	got = ix.At(loc)
	if len(got) != len(want) {
		t.Fatalf("want %d entities after reinsert, got %d", len(want), len(got))
	}
	for i, e := range got {
		if e.ID() != want[i].ID() {
			t.Fatalf("after reinsert, At(loc)[%d] = %s, want %s", i, e, want[i])
		}
	}
}

func TestMoveRemovesOldPlacement(t *testing.T) {
	w := ecs.NewWorld()
	ix := NewIndex()
	e := w.Spawn(ecs.SiloMob)

	a := lattice.At(0, 0, 0)
	b := lattice.At(5, 5, 0)

	ix.Insert(At(a), e)
	ix.Insert(At(b), e)

	if len(ix.At(a)) != 0 {
		t.Error("old location should no longer hold the entity")
	}
	if len(ix.At(b)) != 1 {
		t.Error("new location should hold the entity")
	}
}

func TestLocationOfFollowsContainer(t *testing.T) {
	w := ecs.NewWorld()
	ix := NewIndex()
	pack := w.Spawn(ecs.SiloItem)
	coin := w.Spawn(ecs.SiloItem)

	loc := lattice.At(3, 3, 0)
	ix.Insert(At(loc), pack)
	ix.Insert(In(pack), coin)

	got, ok := ix.LocationOf(coin)
	if !ok || got != loc {
		t.Errorf("want coin to resolve to pack's location %v, got %v (ok=%v)", loc, got, ok)
	}
}

func TestContainsDetectsNesting(t *testing.T) {
	w := ecs.NewWorld()
	ix := NewIndex()
	chest := w.Spawn(ecs.SiloItem)
	pouch := w.Spawn(ecs.SiloItem)
	gem := w.Spawn(ecs.SiloItem)

	ix.Insert(At(lattice.At(0, 0, 0)), chest)
	ix.Insert(In(chest), pouch)
	ix.Insert(In(pouch), gem)

	if !ix.Contains(chest, gem) {
		t.Error("gem should be transitively contained by chest")
	}
}

func TestInsertPanicsOnCycle(t *testing.T) {
	w := ecs.NewWorld()
	ix := NewIndex()
	a := w.Spawn(ecs.SiloItem)
	b := w.Spawn(ecs.SiloItem)

	ix.Insert(At(lattice.At(0, 0, 0)), a)
	ix.Insert(In(a), b)

	defer func() {
		if recover() == nil {
			t.Error("placing a container inside its own contents should panic")
		}
	}()
	ix.Insert(In(b), a)
}

func TestRemoveClearsPlacement(t *testing.T) {
	w := ecs.NewWorld()
	ix := NewIndex()
	e := w.Spawn(ecs.SiloMob)
	loc := lattice.At(0, 0, 0)

	ix.Insert(At(loc), e)
	ix.Remove(e)

	if _, ok := ix.Get(e); ok {
		t.Error("removed entity should have no place")
	}
	if len(ix.At(loc)) != 0 {
		t.Error("removed entity should not appear at its old location")
	}
}
