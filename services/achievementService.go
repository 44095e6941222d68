package services

import (
	"context"
	"errors"
	"fmt"
	achievementModels "incubator/models/achievement"
	communityModels "incubator/models/community"
	financeModels "incubator/models/finance"
	learningModels "incubator/models/learning"
	"incubator/utils"
	"log"
	"time"

	"gorm.io/gorm"
)

// requirementPredicate reports whether userID currently satisfies a
type requirementPredicate func(tx *gorm.DB, userID string, a *achievementModels.Achievement) (bool, error)

// requirementPredicates holds one entry per declared requirement kind
var requirementPredicates = map[achievementModels.RequirementType]requirementPredicate{
	achievementModels.RequirementCourseCompleted:      courseCompleted,
	achievementModels.RequirementFirstCourseCompleted: firstCourseCompleted,
	achievementModels.RequirementFirstSale:            firstSale,
	achievementModels.RequirementFirstPost:            firstPost,

	// Catalog kinds without unlock logic yet
	achievementModels.RequirementCoursesCompleted:    neverSatisfied,
	achievementModels.RequirementAllCoursesCompleted: neverSatisfied,
	achievementModels.RequirementSalesMonth:          neverSatisfied,
	achievementModels.RequirementPostLikes:           neverSatisfied,
	achievementModels.RequirementCommentsCount:       neverSatisfied,
}

func exists(tx *gorm.DB, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	err := tx.Model(model).Where(query, args...).Count(&count).Error
	return count > 0, err
}

func courseCompleted(tx *gorm.DB, userID string, a *achievementModels.Achievement) (bool, error) {
	if a.RequirementValue == nil {
		return false, nil
	}
	return exists(tx, &learningModels.CourseProgress{},
		"user_id = ? AND course_id = ? AND progress_percentage >= ?", userID, *a.RequirementValue, 100)
}

func firstCourseCompleted(tx *gorm.DB, userID string, _ *achievementModels.Achievement) (bool, error) {
	return exists(tx, &learningModels.CourseProgress{},
		"user_id = ? AND progress_percentage >= ?", userID, 100)
}

func firstSale(tx *gorm.DB, userID string, _ *achievementModels.Achievement) (bool, error) {
	return exists(tx, &financeModels.Transaction{},
		"user_id = ? AND type = ?", userID, financeModels.TransactionIncome)
}

func firstPost(tx *gorm.DB, userID string, _ *achievementModels.Achievement) (bool, error) {
	return exists(tx, &communityModels.Post{}, "user_id = ?", userID)
}

func neverSatisfied(*gorm.DB, string, *achievementModels.Achievement) (bool, error) {
	return false, nil
}

// AchievementService evaluates unlock rules and materializes UserAchievement rows
type AchievementService struct {
	db    *gorm.DB
	clock *utils.Clock
}

func NewAchievementService(db *gorm.DB, clock *utils.Clock) *AchievementService {
	return &AchievementService{db: db, clock: clock}
}

// CheckAndUnlock returns the achievements unlocked by this call. It never fails:
// evaluation errors are logged and reported as nothing unlocked.
func (s *AchievementService) CheckAndUnlock(ctx context.Context, userID string, kind achievementModels.RequirementType, value *string) []achievementModels.Achievement {
	return s.checkAndUnlock(s.db.WithContext(ctx), userID, kind, value)
}

// checkAndUnlock runs inside db's transaction when there is one, as a savepoint,
// so a failure here never rolls back the caller's work.
func (s *AchievementService) checkAndUnlock(db *gorm.DB, userID string, kind achievementModels.RequirementType, value *string) []achievementModels.Achievement {
	unlocked := []achievementModels.Achievement{}

	err := db.Transaction(func(tx *gorm.DB) error {
		predicate, ok := requirementPredicates[kind]
		if !ok {
			return fmt.Errorf("unknown requirement type %q", kind)
		}

		query := tx.Where("requirement_type = ?", kind)
		if value != nil {
			query = query.Where("requirement_value = ?", *value)
		}
		var candidates []achievementModels.Achievement
		if err := query.Order("created_at asc, id asc").Find(&candidates).Error; err != nil {
			return err
		}

		for i := range candidates {
			a := &candidates[i]

			var record achievementModels.UserAchievement
			err := tx.Where("user_id = ? AND achievement_id = ?", userID, a.ID).Take(&record).Error
			hasRecord := err == nil
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			if hasRecord && record.Progress >= 100 {
				continue
			}

			satisfied, err := predicate(tx, userID, a)
			if err != nil {
				return err
			}
			if !satisfied {
				continue
			}

			now := s.clock.Now()
			if hasRecord {
				err = tx.Model(&record).Updates(map[string]interface{}{
					"progress":    100,
					"unlocked_at": now,
				}).Error
			} else {
				record = achievementModels.UserAchievement{
					UserID:        userID,
					AchievementID: a.ID,
					Progress:      100,
					UnlockedAt:    &now,
				}
				err = tx.Create(&record).Error
			}
			if err != nil {
				return err
			}
			unlocked = append(unlocked, *a)
		}
		return nil
	})

	if err != nil {
		log.Printf("[ACHIEVEMENTS] Check %s for user %s failed: %v", kind, userID, err)
		return []achievementModels.Achievement{}
	}
	for _, a := range unlocked {
		log.Printf("[ACHIEVEMENTS] User %s unlocked %q", userID, a.Name)
	}
	return unlocked
}

// UserAchievementView is a catalog entry annotated with one user's state
type UserAchievementView struct {
	achievementModels.Achievement
	Unlocked   bool       `json:"unlocked"`
	Progress   int        `json:"progress"`
	UnlockedAt *time.Time `json:"unlocked_at"`
}

// UserAchievements returns the whole catalog with the user's unlock state
func (s *AchievementService) UserAchievements(ctx context.Context, userID string) ([]UserAchievementView, error) {
	const op = "achievements.UserAchievements"
	db := s.db.WithContext(ctx)

	var catalog []achievementModels.Achievement
	if err := db.Order("category asc, points asc").Find(&catalog).Error; err != nil {
		return nil, storage(op, err)
	}

	var records []achievementModels.UserAchievement
	if err := db.Where("user_id = ?", userID).Find(&records).Error; err != nil {
		return nil, storage(op, err)
	}
	byAchievement := make(map[string]achievementModels.UserAchievement, len(records))
	for _, r := range records {
		byAchievement[r.AchievementID] = r
	}

	views := make([]UserAchievementView, 0, len(catalog))
	for _, a := range catalog {
		view := UserAchievementView{Achievement: a}
		if r, ok := byAchievement[a.ID]; ok {
			view.Progress = r.Progress
			view.Unlocked = r.Progress >= 100
			view.UnlockedAt = r.UnlockedAt
		}
		views = append(views, view)
	}
	return views, nil
}

// AchievementStats summarizes a user's unlocks
type AchievementStats struct {
	TotalAchievements    int            `json:"total_achievements"`
	UnlockedAchievements int            `json:"unlocked_achievements"`
	TotalPoints          int            `json:"total_points"`
	CompletionPercentage float64        `json:"completion_percentage"`
	ByCategory           map[string]int `json:"by_category"`
}

func (s *AchievementService) Stats(ctx context.Context, userID string) (*AchievementStats, error) {
	views, err := s.UserAchievements(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &AchievementStats{TotalAchievements: len(views), ByCategory: map[string]int{}}
	for _, v := range views {
		if !v.Unlocked {
			continue
		}
		stats.UnlockedAchievements++
		stats.TotalPoints += v.Points
		category := v.Category
		if category == "" {
			category = "others"
		}
		stats.ByCategory[category]++
	}
	if stats.TotalAchievements > 0 {
		pct := float64(stats.UnlockedAchievements) / float64(stats.TotalAchievements) * 100
		stats.CompletionPercentage = float64(int(pct*10+0.5)) / 10
	}
	return stats, nil
}
