package services

import (
	"incubator/database"
	achievementModels "incubator/models/achievement"
	calendarModels "incubator/models/calendar"
	learningModels "incubator/models/learning"
	"incubator/utils"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var laPaz = time.FixedZone(utils.DefaultTimezone, -4*60*60)

func newTestClock() *utils.Clock {
	return utils.NewFixedClock(time.Date(2026, 3, 2, 10, 30, 0, 0, laPaz), laPaz)
}

func setup(t *testing.T) (*gorm.DB, *utils.Clock) {
	clock := newTestClock()
	return database.NewTestDB(t, clock), clock
}

func createCourse(t *testing.T, db *gorm.DB, sections int) (learningModels.Course, []learningModels.Section) {
	t.Helper()
	course := learningModels.Course{
		RouteType:   learningModels.RoutePreIncubation,
		MonthNumber: 1,
		Title:       "Ideación y Oportunidad",
		OrderNumber: 1,
	}
	require.NoError(t, db.Create(&course).Error)

	list := make([]learningModels.Section, 0, sections)
	for i := 0; i < sections; i++ {
		s := learningModels.Section{CourseID: course.ID, Title: "Section", OrderNumber: i + 1}
		require.NoError(t, db.Create(&s).Error)
		list = append(list, s)
	}
	return course, list
}

func createAchievement(t *testing.T, db *gorm.DB, kind achievementModels.RequirementType, value *string) achievementModels.Achievement {
	t.Helper()
	a := achievementModels.Achievement{
		Name:             string(kind),
		Points:           50,
		Category:         "aprendizaje",
		RequirementType:  kind,
		RequirementValue: value,
	}
	require.NoError(t, db.Create(&a).Error)
	return a
}

func createSlot(t *testing.T, db *gorm.DB, date time.Time, kind calendarModels.SessionType, capacity int, available bool) calendarModels.MentorAvailability {
	t.Helper()
	slot := calendarModels.MentorAvailability{
		MentorID:        "mentor-1",
		Date:            datatypes.Date(date),
		StartTime:       datatypes.NewTime(9, 0, 0, 0),
		EndTime:         datatypes.NewTime(10, 0, 0, 0),
		SessionType:     kind,
		MaxParticipants: capacity,
		IsAvailable:     available,
	}
	require.NoError(t, db.Create(&slot).Error)
	return slot
}

func createEvent(t *testing.T, db *gorm.DB, capacity *int) calendarModels.Event {
	t.Helper()
	start := time.Date(2026, 3, 9, 10, 0, 0, 0, laPaz)
	e := calendarModels.Event{
		Title:           "Workshop",
		EventType:       "workshop",
		StartDate:       start,
		EndDate:         start.Add(3 * time.Hour),
		MaxParticipants: capacity,
	}
	require.NoError(t, db.Create(&e).Error)
	return e
}

func ptr[T any](v T) *T { return &v }
