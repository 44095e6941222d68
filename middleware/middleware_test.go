package middleware

import (
	"encoding/json"
	"incubator/services"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func signed(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func identityApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", IdentityMiddleware(secret), func(c *fiber.Ctx) error {
		return c.SendString(ResolveUserID(c, c.Query("user_id")))
	})
	return app
}

func call(t *testing.T, app *fiber.App, target, auth string) (int, string) {
	t.Helper()
	req := httptest.NewRequest("GET", target, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestIdentityMiddleware(t *testing.T) {
	app := identityApp()
	valid := signed(t, jwt.MapClaims{"sub": "user-7", "exp": time.Now().Add(time.Hour).Unix()})

	status, body := call(t, app, "/whoami", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.Empty(t, body)

	status, body = call(t, app, "/whoami", "Bearer "+valid)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user-7", body)

	status, body = call(t, app, "/whoami?user_id=user-9", "Bearer "+valid)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user-9", body)

	status, _ = call(t, app, "/whoami", "Token "+valid)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	expired := signed(t, jwt.MapClaims{"sub": "user-7", "exp": time.Now().Add(-time.Hour).Unix()})
	status, _ = call(t, app, "/whoami", "Bearer "+expired)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	noSubject := signed(t, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	status, _ = call(t, app, "/whoami", "Bearer "+noSubject)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestServiceErrorResponse(t *testing.T) {
	app := fiber.New()
	app.Get("/:kind", func(c *fiber.Ctx) error {
		switch c.Params("kind") {
		case "missing":
			return ServiceErrorResponse(c, &services.ServiceError{Op: "t", Kind: services.ErrNotFound, Message: "Event not found"})
		case "full":
			return ServiceErrorResponse(c, &services.ServiceError{Op: "t", Kind: services.ErrValidation, Reason: services.ReasonSlotFull, Message: "This slot is full"})
		default:
			return ServiceErrorResponse(c, &services.ServiceError{Op: "t", Kind: services.ErrStorage, Message: "storage failure"})
		}
	})

	cases := []struct {
		path   string
		status int
		reason string
	}{
		{"/missing", fiber.StatusNotFound, ""},
		{"/full", fiber.StatusBadRequest, services.ReasonSlotFull},
		{"/broken", fiber.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		resp, err := app.Test(httptest.NewRequest("GET", tc.path, nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, resp.StatusCode, tc.path)

		var body struct {
			Status bool `json:"status"`
			Data   struct {
				Reason string `json:"reason"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Status)
		assert.Equal(t, tc.reason, body.Data.Reason)
	}
}
