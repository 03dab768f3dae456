package ecs

import "testing"

func TestSpawnDespawn(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(SiloMob)

	if !w.Alive(e) {
		t.Error("freshly spawned entity should be alive")
	}

	w.Despawn(e)
	if w.Alive(e) {
		t.Error("despawned entity should not be alive")
	}
}

func TestGetSetAbsence(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(SiloItem)

	if _, ok := Get[string](w, e, KindName); ok {
		t.Error("unset component should report absent")
	}

	Set(w, e, KindName, "torch")
	got, ok := Get[string](w, e, KindName)
	if !ok || got != "torch" {
		t.Errorf("want (torch, true), got (%q, %v)", got, ok)
	}

	Remove(w, e, KindName)
	if Has(w, e, KindName) {
		t.Error("removed component should report absent")
	}
}

func TestWithMut(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(SiloMob)
	Set(w, e, KindWounds, Wounds{Current: 10, Max: 10})

	WithMut(w, e, KindWounds, func(wd *Wounds) {
		wd.Current -= 4
	})

	got := With[Wounds](w, e, KindWounds)
	if got.Current != 6 {
		t.Errorf("want 6 hp remaining, got %d", got.Current)
	}
}

func TestSpawnClone(t *testing.T) {
	w := NewWorld()
	src := w.Spawn(SiloItem)
	Set(w, src, KindName, "dagger")
	Set(w, src, KindCount, 3)

	dst := w.SpawnClone(src)
	if dst.ID() == src.ID() {
		t.Error("clone should have a distinct identity")
	}
	if With[string](w, dst, KindName) != "dagger" {
		t.Error("clone should copy component values")
	}
}

func TestDescNicknameAndStack(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(SiloMob)
	Set(w, e, KindName, "goblin")
	Set(w, e, KindIsMob, true)

	if got := Desc(w, e, 1); got != "goblin" {
		t.Errorf("want plain name, got %q", got)
	}

	Set(w, e, KindNickname, "Grubnash")
	if got := Desc(w, e, 1); got != "Grubnash the goblin" {
		t.Errorf("want nickname-the-name form, got %q", got)
	}

	Remove(w, e, KindNickname)
	if got := Desc(w, e, 3); got != "3 goblins" {
		t.Errorf("want pluralized stack description, got %q", got)
	}
}

func TestEntityHandleRoundTrips(t *testing.T) {
	w := NewWorld()
	e := w.Spawn(SiloMob)
	w.Despawn(e)
	reuse := w.Spawn(SiloItem) // recycles e's slot at a bumped generation

	for _, e := range []Entity{e, reuse} {
		got, err := Parse(e.String())
		if err != nil {
			t.Fatalf("Parse(%q): %v", e.String(), err)
		}
		if got != e.ID() {
			t.Errorf("Parse(%q) = %d, want %d", e.String(), got, e.ID())
		}
	}

	if e.ID() == reuse.ID() {
		t.Error("recycling a slot should bump its generation, not reuse the old id")
	}
}

func TestParseRejectsMissingHash(t *testing.T) {
	if _, err := Parse("A1B2"); err == nil {
		t.Error("expected Parse to reject a handle with no '#' prefix")
	}
	if _, err := Parse("#"); err == nil {
		t.Error("expected Parse to reject an empty handle body")
	}
}

func TestCanStackWith(t *testing.T) {
	w := NewWorld()
	a := w.Spawn(SiloItem)
	b := w.Spawn(SiloItem)
	Set(w, a, KindName, "arrow")
	Set(w, b, KindName, "arrow")
	Set(w, a, KindItemKind, "ammo")
	Set(w, b, KindItemKind, "ammo")

	if !CanStackWith(w, a, b) {
		t.Error("identical unnamed arrows should stack")
	}

	Set(w, b, KindNickname, "Swiftwing")
	if CanStackWith(w, a, b) {
		t.Error("a nicknamed item should never merge into a stack")
	}
}
