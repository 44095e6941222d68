package routers

import (
	"incubator/services"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAchievementCatalogAndStats(t *testing.T) {
	s := newTestServer(t)

	status, env := s.do("GET", "/api/achievements", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]map[string]interface{}](t, env.Data), 8)

	status, env = s.do("POST", "/api/achievements/check/user-1", map[string]interface{}{"type": "first_post"})
	require.Equal(t, fiber.StatusOK, status)
	assert.Zero(t, decode[struct {
		Count int `json:"count"`
	}](t, env.Data).Count)

	s.do("POST", "/api/community/posts", map[string]interface{}{
		"user_id": "user-1", "title": "Hola", "content": "Primer post", "category": "general",
	})

	status, env = s.do("GET", "/api/achievements/stats/user-1", nil)
	require.Equal(t, fiber.StatusOK, status)
	stats := decode[services.AchievementStats](t, env.Data)
	assert.Equal(t, 8, stats.TotalAchievements)
	assert.Equal(t, 1, stats.UnlockedAchievements)
	assert.Equal(t, 50, stats.TotalPoints)
	assert.Equal(t, 12.5, stats.CompletionPercentage)
	assert.Equal(t, map[string]int{"comunidad": 1}, stats.ByCategory)

	status, env = s.do("GET", "/api/achievements/user/user-1", nil)
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, decode[[]services.UserAchievementView](t, env.Data), 8)

	status, _ = s.do("POST", "/api/achievements/check/user-1", map[string]interface{}{"type": "bogus"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}
