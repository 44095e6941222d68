package main

import (
	"context"
	"incubator/cache"
	"incubator/config"
	"incubator/database"
	"incubator/routers"
	"incubator/utils"
	"log"
	_ "time/tzdata"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig

	clock := utils.NewClock(cfg.Timezone)
	database.ConnectDb(clock)
	db := database.Database.Db

	catalog, err := cache.NewCatalogCache(context.Background(), cfg.RedisURL, cfg.CatalogCacheTTL)
	if err != nil {
		log.Printf("[CACHE] Redis unavailable, serving catalog from the database: %v", err)
	} else if catalog == nil {
		log.Println("[CACHE] REDIS_URL not set, catalog cache disabled")
	}
	defer catalog.Close()

	svc := routers.NewServices(db, clock)
	app := routers.NewApp(routers.Options{
		DB:             db,
		Clock:          clock,
		Cache:          catalog,
		IdentitySecret: cfg.IdentityJWTSecret,
		CORSOrigins:    cfg.AllowedOrigins(),
		AccessLog:      true,
	}, svc)

	if cfg.SchedulerEnabled {
		scheduler, err := utils.InitializeSlotScheduler(clock, svc.Booking)
		if err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer scheduler.Stop()
	}

	log.Printf("Server is running on port %s", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}
