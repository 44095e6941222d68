package controllers

import (
	"errors"
	"incubator/cache"
	"incubator/middleware"
	learningModels "incubator/models/learning"
	"incubator/services"
	learningValidator "incubator/validators/learning"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// LearningController serves the course catalog and per-user progress
type LearningController struct {
	DB       *gorm.DB
	Progress *services.ProgressService
	Cache    *cache.CatalogCache
}

func NewLearningController(db *gorm.DB, progress *services.ProgressService, catalog *cache.CatalogCache) *LearningController {
	return &LearningController{DB: db, Progress: progress, Cache: catalog}
}

// CourseDetail is a course with its ordered sections
type CourseDetail struct {
	learningModels.Course
	Sections []learningModels.Section `json:"sections"`
}

// CourseProgressDetail adds the user's section rows to a course aggregate
type CourseProgressDetail struct {
	learningModels.CourseProgress
	SectionsProgress []learningModels.SectionProgress `json:"sections_progress"`
}

func (lc *LearningController) Health(c *fiber.Ctx) error {
	var count int64
	if err := lc.DB.Model(&learningModels.Course{}).Count(&count).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Learning API is unhealthy!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Learning API is running", fiber.Map{"courses_count": count})
}

// sectionCounts returns the number of sections per course id
func (lc *LearningController) sectionCounts(db *gorm.DB, courseIDs []string) (map[string]int64, error) {
	var rows []struct {
		CourseID string
		Total    int64
	}
	counts := make(map[string]int64, len(courseIDs))
	if len(courseIDs) == 0 {
		return counts, nil
	}
	err := db.Model(&learningModels.Section{}).
		Select("course_id, count(*) as total").
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&rows).Error
	for _, r := range rows {
		counts[r.CourseID] = r.Total
	}
	return counts, err
}

func (lc *LearningController) ListCourses(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCourseList").(*learningValidator.CourseListQuery)
	ctx := c.UserContext()
	key := cache.CoursesKey(reqData.RouteType)

	var courses []learningModels.Course
	err := lc.Cache.Get(ctx, key, &courses)
	if err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		log.Printf("[CACHE] Read %s failed: %v", key, err)
	}

	db := lc.DB.WithContext(ctx)
	if err := db.Where("route_type = ?", reqData.RouteType).Order("order_number asc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	ids := make([]string, len(courses))
	for i, course := range courses {
		ids[i] = course.ID
	}
	counts, err := lc.sectionCounts(db, ids)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}
	for i := range courses {
		courses[i].TotalSections = counts[courses[i].ID]
	}

	if err := lc.Cache.Set(ctx, key, courses); err != nil {
		log.Printf("[CACHE] Write %s failed: %v", key, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

func (lc *LearningController) findCourse(c *fiber.Ctx) (*learningModels.Course, []learningModels.Section, error) {
	db := lc.DB.WithContext(c.UserContext())

	var course learningModels.Course
	if err := db.Where("id = ?", c.Params("id")).Take(&course).Error; err != nil {
		return nil, nil, err
	}
	var sections []learningModels.Section
	if err := db.Where("course_id = ?", course.ID).Order("order_number asc").Find(&sections).Error; err != nil {
		return nil, nil, err
	}
	course.TotalSections = int64(len(sections))
	return &course, sections, nil
}

func (lc *LearningController) GetCourse(c *fiber.Ctx) error {
	course, sections, err := lc.findCourse(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", CourseDetail{Course: *course, Sections: sections})
}

func (lc *LearningController) GetCourseSections(c *fiber.Ctx) error {
	_, sections, err := lc.findCourse(c)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch sections!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sections fetched successfully!", sections)
}

func (lc *LearningController) GetUserProgress(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	db := lc.DB.WithContext(c.UserContext())

	var courses []learningModels.CourseProgress
	if err := db.Where("user_id = ?", userID).Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}
	var sections []learningModels.SectionProgress
	if err := db.Where("user_id = ?", userID).Find(&sections).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"courses":  courses,
		"sections": sections,
	})
}

func (lc *LearningController) GetCourseProgress(c *fiber.Ctx) error {
	userID, courseID := c.Params("user_id"), c.Params("course_id")
	db := lc.DB.WithContext(c.UserContext())

	var progress learningModels.CourseProgress
	err := db.Where("user_id = ? AND course_id = ?", userID, courseID).Take(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No progress recorded", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	var sections []learningModels.SectionProgress
	err = db.Joins("JOIN learning_sections ON learning_sections.id = user_section_progress.section_id").
		Where("user_section_progress.user_id = ? AND learning_sections.course_id = ?", userID, courseID).
		Find(&sections).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", CourseProgressDetail{
		CourseProgress:   progress,
		SectionsProgress: sections,
	})
}

func (lc *LearningController) UpdateSectionProgress(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSectionProgress").(*learningValidator.SectionProgressRequest)

	progress, err := lc.Progress.SetSectionCompletion(c.UserContext(), reqData.UserID, reqData.SectionID, reqData.Completed)
	if err != nil {
		return middleware.ServiceErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Section progress updated!", progress)
}
