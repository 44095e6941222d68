package services

import (
	"context"
	"errors"
	achievementModels "incubator/models/achievement"
	learningModels "incubator/models/learning"
	"incubator/utils"
	"log"

	"gorm.io/gorm"
)

// ProgressService keeps CourseProgress in step with a user's SectionProgress rows
type ProgressService struct {
	db           *gorm.DB
	clock        *utils.Clock
	achievements *AchievementService
}

func NewProgressService(db *gorm.DB, clock *utils.Clock, achievements *AchievementService) *ProgressService {
	return &ProgressService{db: db, clock: clock, achievements: achievements}
}

// SetSectionCompletion records the section flag and rebuilds the owning course's
// aggregate in one transaction.
func (s *ProgressService) SetSectionCompletion(ctx context.Context, userID, sectionID string, completed bool) (*learningModels.SectionProgress, error) {
	const op = "progress.SetSectionCompletion"

	var progress learningModels.SectionProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var section learningModels.Section
		if err := tx.Where("id = ?", sectionID).Take(&section).Error; err != nil {
			return found(op, "Section not found", err)
		}

		err := tx.Where("user_id = ? AND section_id = ?", userID, sectionID).Take(&progress).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			progress = learningModels.SectionProgress{
				UserID:    userID,
				SectionID: sectionID,
				Completed: completed,
			}
			if completed {
				now := s.clock.Now()
				progress.CompletedAt = &now
			}
			if err := tx.Create(&progress).Error; err != nil {
				return storage(op, err)
			}
		case err != nil:
			return storage(op, err)
		default:
			updates := map[string]interface{}{"completed": completed}
			if completed && !progress.Completed {
				now := s.clock.Now()
				updates["completed_at"] = now
				progress.CompletedAt = &now
			}
			if err := tx.Model(&progress).Updates(updates).Error; err != nil {
				return storage(op, err)
			}
			progress.Completed = completed
		}

		_, err = s.recompute(tx, userID, section.CourseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

// RecomputeCourseProgress rebuilds the aggregate from section rows. A course
// without sections is left untouched and yields nil.
func (s *ProgressService) RecomputeCourseProgress(ctx context.Context, userID, courseID string) (*learningModels.CourseProgress, error) {
	var result *learningModels.CourseProgress
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		result, err = s.recompute(tx, userID, courseID)
		return err
	})
	return result, err
}

func (s *ProgressService) recompute(tx *gorm.DB, userID, courseID string) (*learningModels.CourseProgress, error) {
	const op = "progress.RecomputeCourseProgress"

	var total int64
	if err := tx.Model(&learningModels.Section{}).Where("course_id = ?", courseID).Count(&total).Error; err != nil {
		return nil, storage(op, err)
	}
	if total == 0 {
		return nil, nil
	}

	var completed int64
	err := tx.Model(&learningModels.SectionProgress{}).
		Joins("JOIN learning_sections ON learning_sections.id = user_section_progress.section_id").
		Where("learning_sections.course_id = ? AND user_section_progress.user_id = ? AND user_section_progress.completed = ?", courseID, userID, true).
		Count(&completed).Error
	if err != nil {
		return nil, storage(op, err)
	}

	percentage := int(completed * 100 / total)

	var course learningModels.CourseProgress
	err = tx.Where("user_id = ? AND course_id = ?", userID, courseID).Take(&course).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		course = learningModels.CourseProgress{
			UserID:    userID,
			CourseID:  courseID,
			StartedAt: s.clock.Now(),
		}
	case err != nil:
		return nil, storage(op, err)
	}

	course.CompletedSections = int(completed)
	course.TotalSections = int(total)
	course.ProgressPercentage = percentage

	justCompleted := percentage >= 100 && course.CompletedAt == nil
	if justCompleted {
		now := s.clock.Now()
		course.CompletedAt = &now
	}

	if err := tx.Save(&course).Error; err != nil {
		return nil, storage(op, err)
	}

	if justCompleted {
		log.Printf("[PROGRESS] User %s completed course %s", userID, courseID)
		if s.achievements != nil {
			s.achievements.checkAndUnlock(tx, userID, achievementModels.RequirementCourseCompleted, &courseID)
			s.achievements.checkAndUnlock(tx, userID, achievementModels.RequirementFirstCourseCompleted, nil)
		}
	}
	return &course, nil
}
