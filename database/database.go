package database

import (
	"fmt"
	"incubator/config"
	achievementModels "incubator/models/achievement"
	calendarModels "incubator/models/calendar"
	communityModels "incubator/models/community"
	financeModels "incubator/models/finance"
	learningModels "incubator/models/learning"
	"incubator/utils"
	"log"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DbInstance struct holds the database connection instance
type DbInstance struct {
	Db *gorm.DB
}

// Database is the global database instance
var Database DbInstance

// ConnectDb opens the configured store, runs migrations and saves the handle globally
func ConnectDb(clock *utils.Clock) {
	cfg := config.AppConfig

	db, err := Open(cfg.DBDriver, DSN(cfg), clock, LogLevel(cfg.DBLogLevel))
	if err != nil {
		log.Fatalf("Failed to connect to %s: %v", cfg.DBDriver, err)
		os.Exit(2)
	}

	// Set up connection pooling
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(10)   // Maximum open connections
	sqlDB.SetMaxIdleConns(5)    // Maximum idle connections
	sqlDB.SetConnMaxLifetime(0) // No timeout

	if err := RunMigrations(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	Database = DbInstance{Db: db}
}

// DSN builds the connection string for the configured driver
func DSN(cfg *config.Config) string {
	if cfg.DBDriver == "sqlite" {
		return cfg.SQLitePath
	}
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	if cfg.DBDriver == "mysql" {
		return fmt.Sprintf(
			"%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
		)
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode,
	)
}

// Open connects with the dialector matching driver. Timestamps written by gorm
// come from clock so they carry the platform timezone.
func Open(driver, dsn string, clock *utils.Clock, level logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	case "mysql":
		dialector = mysql.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		NowFunc: clock.Now,
		Logger:  logger.Default.LogMode(level),
	})
}

// LogLevel maps the DB_LOG_LEVEL setting onto gorm's levels
func LogLevel(name string) logger.LogLevel {
	switch name {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// RunMigrations performs database migrations. Parents precede children so the
// cascade constraints have something to reference.
func RunMigrations(db *gorm.DB) error {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&learningModels.Course{},
		&learningModels.Section{},
		&learningModels.SectionProgress{},
		&learningModels.CourseProgress{},
		&financeModels.Transaction{},
		&communityModels.Post{},
		&communityModels.Comment{},
		&communityModels.Like{},
		&achievementModels.Achievement{},
		&achievementModels.UserAchievement{},
		&calendarModels.MentorAvailability{},
		&calendarModels.MentorBooking{},
		&calendarModels.Event{},
		&calendarModels.EventRegistration{},
	)
	if err != nil {
		return err
	}

	log.Println("Migrations completed successfully.")
	return nil
}

// SupportsRowLocks reports whether SELECT ... FOR UPDATE is meaningful on db
func SupportsRowLocks(db *gorm.DB) bool {
	name := db.Dialector.Name()
	return name == "postgres" || name == "mysql"
}
