package gamedata

import "testing"

func sampleData() Data {
	return Data{
		Settings: Settings{ID: "test", Title: "Test Game"},
		Bestiary: map[string]Monster{
			"goblin": {Icon: 'g', Level: 1, Evasion: 2, AttackDamage: 3, SpawnRarity: 1, SpawnDepth: 0},
			"dragon": {Icon: 'D', Level: 10, Evasion: 1, AttackDamage: 20, SpawnRarity: 0, SpawnDepth: 10},
		},
		Armory: map[string]Item{
			"short sword": {Level: 1, Kind: ItemMeleeWeapon, SpawnRarity: 2},
			"potion":      {Level: 1, Kind: ItemPotion, SpawnRarity: 1},
		},
		Plurals: map[string]string{"goose": "geese"},
	}
}

func TestRegisterIsIdempotentOnIdenticalContent(t *testing.T) {
	reset()
	defer reset()
	d := sampleData()
	Register(d)
	Register(d) // must not panic

	if Get().Settings.Title != "Test Game" {
		t.Errorf("unexpected registered data: %+v", Get())
	}
}

func TestRegisterPanicsOnMismatch(t *testing.T) {
	reset()
	defer reset()
	Register(sampleData())

	defer func() {
		if recover() == nil {
			t.Error("expected a panic registering different gamedata twice")
		}
	}()
	other := sampleData()
	other.Settings.Title = "Different"
	Register(other)
}

func TestGetPanicsBeforeRegistration(t *testing.T) {
	reset()
	defer reset()
	defer func() {
		if recover() == nil {
			t.Error("expected a panic reading gamedata before registration")
		}
	}()
	Get()
}

func TestSpawnWeightZeroForUnspawnableRarity(t *testing.T) {
	d := sampleData()
	if w := SpawnWeight(d.Bestiary["dragon"]); w != 0 {
		t.Errorf("a rarity-0 monster should never be randomly spawned, got weight %v", w)
	}
	if w := SpawnWeight(d.Bestiary["goblin"]); w != 1 {
		t.Errorf("rarity 1 should give weight 1, got %v", w)
	}
}

func TestMonsterSpawnsFiltersByDepthAndRarity(t *testing.T) {
	d := sampleData()
	cands := d.MonsterSpawns(5)
	if len(cands) != 1 || cands[0].Name != "goblin" {
		t.Errorf("expected only goblin eligible at depth 5, got %+v", cands)
	}

	cands = d.MonsterSpawns(10)
	names := map[string]bool{}
	for _, c := range cands {
		names[c.Name] = true
	}
	if names["dragon"] {
		t.Error("dragon has rarity 0 and should never appear as a spawn candidate")
	}
}

func TestPluralizeUsesExceptionTableThenFallsBack(t *testing.T) {
	d := sampleData()
	if got := d.Pluralize("goose"); got != "geese" {
		t.Errorf("expected irregular plural geese, got %v", got)
	}
	if got := d.Pluralize("goblin"); got != "goblins" {
		t.Errorf("expected regular plural goblins, got %v", got)
	}
}
