package main

import (
	"context"
	"incubator/cache"
	"incubator/config"
	"incubator/database"
	"incubator/models/learning"
	"incubator/utils"
	"log"
	_ "time/tzdata"
)

func main() {
	// Load config and connect to database
	config.LoadConfig()
	clock := utils.NewClock(config.AppConfig.Timezone)
	database.ConnectDb(clock)

	if err := database.SeedCatalog(database.Database.Db, clock); err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}

	// Cached course lists would hide freshly seeded rows until they expire
	ctx := context.Background()
	catalog, err := cache.NewCatalogCache(ctx, config.AppConfig.RedisURL, config.AppConfig.CatalogCacheTTL)
	if err != nil {
		log.Printf("Skipping cache invalidation: %v", err)
	} else {
		defer catalog.Close()
		if err := catalog.InvalidateCourses(ctx, string(learning.RoutePreIncubation), string(learning.RouteIncubation)); err != nil {
			log.Printf("Failed to invalidate course cache: %v", err)
		}
	}

	log.Println("Catalog seeding completed successfully.")
}
