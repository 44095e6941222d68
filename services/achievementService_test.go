package services

import (
	"context"
	achievementModels "incubator/models/achievement"
	communityModels "incubator/models/community"
	financeModels "incubator/models/finance"
	learningModels "incubator/models/learning"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryRequirementKindHasPredicate(t *testing.T) {
	for _, kind := range achievementModels.RequirementTypes {
		_, ok := requirementPredicates[kind]
		assert.True(t, ok, "no predicate registered for %s", kind)
	}
	assert.Len(t, requirementPredicates, len(achievementModels.RequirementTypes))
}

func TestCheckAndUnlockFirstSaleIsIdempotent(t *testing.T) {
	db, clock := setup(t)
	svc := NewAchievementService(db, clock)
	ctx := context.Background()
	ach := createAchievement(t, db, achievementModels.RequirementFirstSale, nil)

	assert.Empty(t, svc.CheckAndUnlock(ctx, "user-1", achievementModels.RequirementFirstSale, nil))

	require.NoError(t, db.Create(&financeModels.Transaction{
		UserID: "user-1", Type: financeModels.TransactionExpense, Category: "rent", Amount: 10, Date: clock.Now(),
	}).Error)
	assert.Empty(t, svc.CheckAndUnlock(ctx, "user-1", achievementModels.RequirementFirstSale, nil))

	require.NoError(t, db.Create(&financeModels.Transaction{
		UserID: "user-1", Type: financeModels.TransactionIncome, Category: "sales", Amount: 25, Date: clock.Now(),
	}).Error)
	unlocked := svc.CheckAndUnlock(ctx, "user-1", achievementModels.RequirementFirstSale, nil)
	require.Len(t, unlocked, 1)
	assert.Equal(t, ach.ID, unlocked[0].ID)

	assert.Empty(t, svc.CheckAndUnlock(ctx, "user-1", achievementModels.RequirementFirstSale, nil))

	var rows int64
	db.Model(&achievementModels.UserAchievement{}).Where("user_id = ?", "user-1").Count(&rows)
	assert.EqualValues(t, 1, rows)
}

func TestCheckAndUnlockFiltersByValue(t *testing.T) {
	db, clock := setup(t)
	svc := NewAchievementService(db, clock)
	ctx := context.Background()
	courseA, _ := createCourse(t, db, 1)
	courseB, _ := createCourse(t, db, 1)
	achA := createAchievement(t, db, achievementModels.RequirementCourseCompleted, ptr(courseA.ID))
	createAchievement(t, db, achievementModels.RequirementCourseCompleted, ptr(courseB.ID))

	require.NoError(t, db.Create(&learningModels.CourseProgress{
		UserID: "user-1", CourseID: courseA.ID, CompletedSections: 1, TotalSections: 1,
		ProgressPercentage: 100, StartedAt: clock.Now(),
	}).Error)

	assert.Empty(t, svc.CheckAndUnlock(ctx, "user-1", achievementModels.RequirementCourseCompleted, ptr(courseB.ID)))

	unlocked := svc.CheckAndUnlock(ctx, "user-1", achievementModels.RequirementCourseCompleted, nil)
	require.Len(t, unlocked, 1)
	assert.Equal(t, achA.ID, unlocked[0].ID)
}

func TestCheckAndUnlockUpgradesLockedRecord(t *testing.T) {
	db, clock := setup(t)
	svc := NewAchievementService(db, clock)
	ctx := context.Background()
	ach := createAchievement(t, db, achievementModels.RequirementFirstPost, nil)
	require.NoError(t, db.Create(&achievementModels.UserAchievement{
		UserID: "user-1", AchievementID: ach.ID, Progress: 40,
	}).Error)
	require.NoError(t, db.Create(&communityModels.Post{
		UserID: "user-1", Title: "Hola", Content: "Primer post", Category: "general",
	}).Error)

	unlocked := svc.CheckAndUnlock(ctx, "user-1", achievementModels.RequirementFirstPost, nil)

	require.Len(t, unlocked, 1)
	var ua achievementModels.UserAchievement
	require.NoError(t, db.Where("user_id = ? AND achievement_id = ?", "user-1", ach.ID).Take(&ua).Error)
	assert.Equal(t, 100, ua.Progress)
	assert.NotNil(t, ua.UnlockedAt)
}

func TestCheckAndUnlockUnusedKindsNeverUnlock(t *testing.T) {
	db, clock := setup(t)
	svc := NewAchievementService(db, clock)
	createAchievement(t, db, achievementModels.RequirementPostLikes, ptr("10"))

	assert.Empty(t, svc.CheckAndUnlock(context.Background(), "user-1", achievementModels.RequirementPostLikes, nil))
}

func TestCheckAndUnlockSwallowsErrors(t *testing.T) {
	db, clock := setup(t)
	svc := NewAchievementService(db, clock)
	require.NoError(t, db.Migrator().DropTable(&achievementModels.UserAchievement{}, &achievementModels.Achievement{}))

	unlocked := svc.CheckAndUnlock(context.Background(), "user-1", achievementModels.RequirementFirstPost, nil)

	assert.NotNil(t, unlocked)
	assert.Empty(t, unlocked)
	assert.Empty(t, svc.CheckAndUnlock(context.Background(), "user-1", "bogus", nil))
}

func TestUserAchievementsAndStats(t *testing.T) {
	db, clock := setup(t)
	svc := NewAchievementService(db, clock)
	ctx := context.Background()
	createAchievement(t, db, achievementModels.RequirementFirstPost, nil)
	createAchievement(t, db, achievementModels.RequirementFirstSale, nil)
	require.NoError(t, db.Create(&communityModels.Post{
		UserID: "user-1", Title: "Hola", Content: "Primer post", Category: "general",
	}).Error)
	require.Len(t, svc.CheckAndUnlock(ctx, "user-1", achievementModels.RequirementFirstPost, nil), 1)

	views, err := svc.UserAchievements(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, views, 2)
	unlockedViews := 0
	for _, v := range views {
		if v.Unlocked {
			unlockedViews++
			assert.Equal(t, 100, v.Progress)
			assert.NotNil(t, v.UnlockedAt)
		}
	}
	assert.Equal(t, 1, unlockedViews)

	stats, err := svc.Stats(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalAchievements)
	assert.Equal(t, 1, stats.UnlockedAchievements)
	assert.Equal(t, 50, stats.TotalPoints)
	assert.Equal(t, 50.0, stats.CompletionPercentage)
	assert.Equal(t, map[string]int{"aprendizaje": 1}, stats.ByCategory)
}
