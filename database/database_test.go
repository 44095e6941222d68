package database

import (
	"incubator/config"
	achievementModels "incubator/models/achievement"
	calendarModels "incubator/models/calendar"
	learningModels "incubator/models/learning"
	"incubator/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func testClock() *utils.Clock {
	loc := time.FixedZone(utils.DefaultTimezone, -4*60*60)
	return utils.NewFixedClock(time.Date(2026, 3, 2, 10, 0, 0, 0, loc), loc)
}

func TestDSN(t *testing.T) {
	cfg := &config.Config{
		DBDriver: "postgres", DBHost: "db", DBPort: "5432", DBUser: "u",
		DBPassword: "p", DBName: "app", DBSSLMode: "disable", SQLitePath: "local.db",
	}
	assert.Equal(t, "host=db user=u password=p dbname=app port=5432 sslmode=disable", DSN(cfg))

	cfg.DBDriver = "mysql"
	assert.Equal(t, "u:p@tcp(db:5432)/app?charset=utf8mb4&parseTime=True&loc=Local", DSN(cfg))

	cfg.DatabaseURL = "postgresql://x@y/z"
	assert.Equal(t, "postgresql://x@y/z", DSN(cfg))

	cfg.DBDriver = "sqlite"
	assert.Equal(t, "local.db", DSN(cfg))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("oracle", "", testClock(), logger.Silent)
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, LogLevel("info"))
	assert.Equal(t, logger.Silent, LogLevel("silent"))
	assert.Equal(t, logger.Warn, LogLevel("anything"))
}

func TestSeedCatalogIsIdempotent(t *testing.T) {
	clock := testClock()
	db := NewTestDB(t, clock)

	require.NoError(t, SeedCatalog(db, clock))
	require.NoError(t, SeedCatalog(db, clock))

	var courses, sections, achievements, slots, events int64
	db.Model(&learningModels.Course{}).Count(&courses)
	db.Model(&learningModels.Section{}).Count(&sections)
	db.Model(&achievementModels.Achievement{}).Count(&achievements)
	db.Model(&calendarModels.MentorAvailability{}).Count(&slots)
	db.Model(&calendarModels.Event{}).Count(&events)

	assert.EqualValues(t, len(preIncubationCourses)+len(incubationCourses), courses)
	assert.EqualValues(t, 7, sections)
	assert.EqualValues(t, 8, achievements)
	// 20 weekdays with 3 individual slots, plus a group slot on 12 of them
	assert.EqualValues(t, 20*3+12, slots)
	assert.EqualValues(t, 4, events)
}

func TestSupportsRowLocks(t *testing.T) {
	db := NewTestDB(t, testClock())
	assert.False(t, SupportsRowLocks(db))
}
