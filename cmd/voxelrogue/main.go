// Command voxelrogue is a headless driver exercising one Runtime end to
// end: it builds a small demo scenario and bestiary/armory, seeds a
// Runtime, ticks it a fixed number of times, and prints a summary. Grounded
// on dshills-dungo/cmd/dungeongen/main.go's flag-parsing, -seed/-verbose/
// -version/-help shape and its run() error split from main.
package main

import (
	"flag"
	"fmt"
	"os"

	"voxelrogue/action"
	"voxelrogue/config"
	"voxelrogue/ecs"
	"voxelrogue/gamedata"
	"voxelrogue/runtime"
	"voxelrogue/scenario"
)

const version = "0.1.0"

var (
	seedFlag  = flag.Uint64("seed", 1, "world seed")
	ticksFlag = flag.Int("ticks", 50, "number of simulation ticks to run")
	verbose   = flag.Bool("verbose", false, "print a line per tick instead of just the final summary")
	versionF  = flag.Bool("version", false, "print version and exit")
	help      = flag.Bool("help", false, "show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("voxelrogue version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("voxelrogue: headless driver for the demo scenario")
	flag.PrintDefaults()
}

func run() error {
	rt, err := runtime.New(*seedFlag, demoScenario(), demoData(), config.DefaultTuning())
	if err != nil {
		return fmt.Errorf("building runtime: %w", err)
	}

	if *verbose {
		loc, _ := rt.Places.LocationOf(rt.Player())
		fmt.Printf("tick %6s  player at %v\n", rt.Clock.Now(), loc)
	}

	for i := 0; i < *ticksFlag; i++ {
		rt.PlayerAct(action.Action{Kind: action.Pass})
		rt.Tick()

		if *verbose {
			loc, _ := rt.Places.LocationOf(rt.Player())
			fmt.Printf("tick %6s  player at %v\n", rt.Clock.Now(), loc)
		}
	}

	printSummary(rt)
	return nil
}

func printSummary(rt *runtime.Runtime) {
	var mobs, items int
	rt.ECS.Each(func(e ecs.Entity) {
		switch e.Silo() {
		case ecs.SiloMob:
			mobs++
		case ecs.SiloItem:
			items++
		}
	})

	players := 0
	if rt.ECS.Alive(rt.Player()) {
		players = 1
	}

	loc, _ := rt.Places.LocationOf(rt.Player())

	fmt.Println("--- voxelrogue summary ---")
	fmt.Printf("seed:          %d\n", rt.World.Seed())
	fmt.Printf("ticks run:     %d\n", *ticksFlag)
	fmt.Printf("final instant: %s\n", rt.Clock.Now())
	fmt.Printf("player alive:  %d\n", players)
	fmt.Printf("player at:     %v\n", loc)
	fmt.Printf("levels known:  %d\n", len(rt.World.Levels()))
	fmt.Printf("entities:      %d (%d mobs, %d items)\n", mobs+items, mobs, items)
}

// demoScenario builds a tiny single-branch scenario: an above-ground
// entrance site dropping straight into two stacked procedurally generated
// dungeon sectors, grounded on skeleton/unfold_test.go's minimal single-entrance
// fixtures.
func demoScenario() scenario.Scenario {
	return scenario.Scenario{
		Map: "A",
		Legend: []scenario.LegendEntry{
			{Char: 'A', Stack: []scenario.Region{
				scenario.NewSite(scenario.SectorMap{Map: "@"}),
				scenario.NewGenerate(scenario.Dungeon),
				scenario.NewGenerate(scenario.Dungeon),
			}},
		},
	}
}

// demoData is a small, self-contained bestiary/armory: enough for the
// generic dungeon generator to have something to scatter. Bundle loading
// off disk is out of core scope (config.Tuning's doc comment).
func demoData() *gamedata.Data {
	return &gamedata.Data{
		Bestiary: map[string]gamedata.Monster{
			"goblin": {Icon: 'g', Level: 1, Evasion: 1, AttackDamage: 3, SpawnRarity: 2, SpawnDepth: 0},
			"rat":    {Icon: 'r', Level: 1, Evasion: 2, AttackDamage: 1, SpawnRarity: 4, SpawnDepth: 0},
		},
		Armory: map[string]gamedata.Item{
			"potion":      {Level: 1, Kind: gamedata.ItemPotion, SpawnRarity: 3},
			"short sword": {Level: 1, Kind: gamedata.ItemMeleeWeapon, SpawnRarity: 2},
		},
	}
}
