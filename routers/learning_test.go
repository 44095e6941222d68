package routers

import (
	achievementModels "incubator/models/achievement"
	learningModels "incubator/models/learning"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLearningHealth(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do("GET", "/api/learning/health", nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Status)

	status, _ = s.do("GET", "/health", nil)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestListCoursesRequiresRouteType(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do("GET", "/api/learning/courses", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, decode[map[string]string](t, env.Data), "route_type")

	status, _ = s.do("GET", "/api/learning/courses?route_type=xyz", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestListCoursesWithSectionCounts(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do("GET", "/api/learning/courses?route_type=pre", nil)
	require.Equal(t, fiber.StatusOK, status)

	courses := decode[[]learningModels.Course](t, env.Data)
	require.Len(t, courses, 10)
	assert.Equal(t, 1, courses[0].OrderNumber)
	assert.EqualValues(t, 4, courses[0].TotalSections)
	assert.EqualValues(t, 0, courses[1].TotalSections)
}

func TestCourseDetailAndNotFound(t *testing.T) {
	s := newTestServer(t)
	var course learningModels.Course
	require.NoError(t, s.db.Where("route_type = ? AND order_number = ?", "inc", 1).Take(&course).Error)

	status, env := s.do("GET", "/api/learning/courses/"+course.ID, nil)
	require.Equal(t, fiber.StatusOK, status)
	detail := decode[struct {
		TotalSections int                      `json:"total_sections"`
		Sections      []learningModels.Section `json:"sections"`
	}](t, env.Data)
	assert.Equal(t, 3, detail.TotalSections)
	require.Len(t, detail.Sections, 3)
	assert.Equal(t, "Liderazgo con propósito", detail.Sections[0].Title)

	status, _ = s.do("GET", "/api/learning/courses/missing", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
	status, _ = s.do("GET", "/api/learning/courses/missing/sections", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCompletingCourseThroughAPI(t *testing.T) {
	s := newTestServer(t)
	var course learningModels.Course
	require.NoError(t, s.db.Where("route_type = ? AND order_number = ?", "inc", 1).Take(&course).Error)
	var sections []learningModels.Section
	require.NoError(t, s.db.Where("course_id = ?", course.ID).Order("order_number").Find(&sections).Error)

	status, env := s.do("GET", "/api/learning/progress/user-1/course/"+course.ID, nil)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "null", string(env.Data))

	for _, sec := range sections {
		status, _ = s.do("POST", "/api/learning/progress/section", map[string]interface{}{
			"user_id": "user-1", "section_id": sec.ID, "completed": true,
		})
		require.Equal(t, fiber.StatusOK, status)
	}

	status, env = s.do("GET", "/api/learning/progress/user-1/course/"+course.ID, nil)
	require.Equal(t, fiber.StatusOK, status)
	detail := decode[struct {
		ProgressPercentage int                              `json:"progress_percentage"`
		SectionsProgress   []learningModels.SectionProgress `json:"sections_progress"`
	}](t, env.Data)
	assert.Equal(t, 100, detail.ProgressPercentage)
	assert.Len(t, detail.SectionsProgress, 3)

	// the seeded "Primer Paso" achievement unlocks on the first completed course
	var first achievementModels.Achievement
	require.NoError(t, s.db.Where("requirement_type = ?", achievementModels.RequirementFirstCourseCompleted).Take(&first).Error)
	var unlocked int64
	s.db.Model(&achievementModels.UserAchievement{}).
		Where("user_id = ? AND achievement_id = ? AND progress = ?", "user-1", first.ID, 100).
		Count(&unlocked)
	assert.EqualValues(t, 1, unlocked)

	status, env = s.do("GET", "/api/learning/progress/user-1", nil)
	require.Equal(t, fiber.StatusOK, status)
	all := decode[struct {
		Courses  []learningModels.CourseProgress  `json:"courses"`
		Sections []learningModels.SectionProgress `json:"sections"`
	}](t, env.Data)
	assert.Len(t, all.Courses, 1)
	assert.Len(t, all.Sections, 3)
}

func TestSectionProgressValidation(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do("POST", "/api/learning/progress/section", map[string]interface{}{"completed": true})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	errs := decode[map[string]string](t, env.Data)
	assert.Contains(t, errs, "user_id")
	assert.Contains(t, errs, "section_id")

	status, _ = s.do("POST", "/api/learning/progress/section", map[string]interface{}{
		"user_id": "user-1", "section_id": "missing", "completed": true,
	})
	assert.Equal(t, fiber.StatusNotFound, status)
}
