package main

import (
	"context"
	"log"

	"videoach_backend/internals/configs"
	"videoach_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	db := configs.InitSeederDB()
	if err := seeds.RunAllSeeds(context.Background(), db); err != nil {
		log.Fatalf("❌ seeding failed: %v", err)
	}
}
