package validators

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string  `json:"name" validate:"required,max=5"`
	Kind  string  `json:"kind" validate:"omitempty,oneof=a b"`
	Date  string  `json:"date" validate:"omitempty,datestr"`
	Rule  string  `json:"rule" validate:"omitempty,requirement"`
	Price float64 `json:"price" validate:"gt=0"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	errs := ValidateStruct(&sample{Name: "toolong", Kind: "c", Date: "03/02/2026", Rule: "nope"})

	assert.Equal(t, "name must be at most 5 characters long!", errs["name"])
	assert.Equal(t, "kind must be one of: a, b!", errs["kind"])
	assert.Contains(t, errs, "date")
	assert.Contains(t, errs, "rule")
	assert.Equal(t, "price must be greater than 0!", errs["price"])

	assert.Empty(t, ValidateStruct(&sample{Name: "ok", Date: "2026-03-02T10:00:00Z", Rule: "first_post", Price: 1}))
}

func TestBodyHandler(t *testing.T) {
	app := fiber.New()
	app.Post("/", Body("validatedSample", func(c *fiber.Ctx, req *sample) {
		Trim(&req.Name)
	}), func(c *fiber.Ctx) error {
		return c.JSON(c.Locals("validatedSample"))
	})

	post := func(body string) (int, map[string]interface{}) {
		req := httptest.NewRequest("POST", "/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		out := map[string]interface{}{}
		_ = json.NewDecoder(resp.Body).Decode(&out)
		return resp.StatusCode, out
	}

	status, out := post(`{"name": "  abc ", "price": 2}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "abc", out["name"])

	status, out = post(`{"price": 0}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "Validation failed!", out["message"])

	status, _ = post(`{broken`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}
