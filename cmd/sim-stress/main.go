package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/voidfall/component"
	"github.com/plus3/voidfall/config"
	"github.com/plus3/voidfall/sim"
	"github.com/plus3/voidfall/vmath"
)

func main() {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	enemyCount := flag.Int("enemies", 500, "The number of enemies to spawn.")
	projectileCount := flag.Int("projectiles", 200, "The number of projectiles to spawn.")
	horde := flag.Bool("horde", false, "Run with horde-mode difficulty scaling.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log.Println("Starting simulation stress test...")

	tuning := config.Default()
	world := sim.NewWorld(tuning)

	world.SpawnPlayer(vmath.Vec3{},
		component.Health{Current: 1000, Max: 1000, Shield: 200, MaxShield: 200, RegenRate: 10, RegenDelay: 3},
		component.RigidBody{Mass: 10, Radius: 20, Drag: 0.5},
	)

	log.Printf("Populating world with %d enemies and %d projectiles...\n", *enemyCount, *projectileCount)
	for i := 0; i < *enemyCount; i++ {
		spawnRandomEnemy(world, tuning)
	}
	for i := 0; i < *projectileCount; i++ {
		spawnRandomProjectile(world)
	}
	log.Println("Population complete.")

	report := &Report{
		Duration:       *duration,
		Enemies:        *enemyCount,
		Projectiles:    *projectileCount,
		GCPauseMetrics: *gcPauseMetrics,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Running simulation for %s...\n", *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	var difficulty config.Difficulty
	startTime := time.Now()
	var totalTicks int64
	var totalEvents int64
	lastFrameTime := time.Now()

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			if *horde {
				difficulty = config.Difficulty{
					HordeMode:         true,
					HordeSurvivalTime: time.Since(startTime).Seconds(),
				}
			}

			updateStart := time.Now()
			events := world.Step(deltaTime.Seconds(), difficulty)
			updateDuration := time.Since(updateStart)

			report.UpdateTime.Samples = append(report.UpdateTime.Samples, updateDuration)
			totalEvents += int64(len(events))
			totalTicks++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalTicks = totalTicks
	report.TotalEvents = totalEvents
	report.FinalEntities = world.EntityCount()
	report.SystemStats = world.Stats()
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Simulation finished.")

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")

	log.Println("Stress test complete.")
}

func spawnRandomEnemy(world *sim.World, tuning config.Tuning) {
	pos := vmath.Vec3{
		X: (rand.Float64()*2 - 1) * 5000,
		Y: (rand.Float64()*2 - 1) * 1000,
		Z: (rand.Float64()*2 - 1) * 5000,
	}

	archetype := component.Archetype(rand.IntN(3))
	enemy := component.EnemyAI{
		Archetype:        archetype,
		SpiralAmplitude:  50 + rand.Float64()*100,
		SpiralFrequency:  1 + rand.Float64()*2,
		SpiralPhase:      rand.Float64() * 6.28,
		SeparationWeight: 0.5 + rand.Float64()*0.5,
		DetectionRange:   2000,
		Speed:            tuning.BaseEnemySpeed,
		Damage:           tuning.BaseEnemyDamage,
	}

	world.SpawnEnemy(pos, enemy,
		component.Health{Current: tuning.BaseEnemyHealth, Max: tuning.BaseEnemyHealth},
		component.RigidBody{Mass: 5, Radius: 15, Drag: 0.2},
	)
}

func spawnRandomProjectile(world *sim.World) {
	pos := vmath.Vec3{
		X: (rand.Float64()*2 - 1) * 3000,
		Y: (rand.Float64()*2 - 1) * 500,
		Z: (rand.Float64()*2 - 1) * 3000,
	}
	velocity := vmath.Vec3{
		X: (rand.Float64()*2 - 1) * 800,
		Y: (rand.Float64()*2 - 1) * 100,
		Z: (rand.Float64()*2 - 1) * 800,
	}

	world.SpawnProjectile(pos, velocity, 25, 5, 5+rand.Float64()*10)
}
