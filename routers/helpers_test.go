package routers

import (
	"bytes"
	"encoding/json"
	"incubator/database"
	"incubator/utils"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var laPaz = time.FixedZone(utils.DefaultTimezone, -4*60*60)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type testServer struct {
	t     *testing.T
	app   *fiber.App
	db    *gorm.DB
	clock *utils.Clock
}

func newTestServer(t *testing.T) *testServer {
	clock := utils.NewFixedClock(time.Date(2026, 3, 2, 10, 30, 0, 0, laPaz), laPaz)
	db := database.NewTestDB(t, clock)
	require.NoError(t, database.SeedCatalog(db, clock))

	app := NewApp(Options{DB: db, Clock: clock}, NewServices(db, clock))
	return &testServer{t: t, app: app, db: db, clock: clock}
}

// do sends body as JSON and decodes the response envelope
func (s *testServer) do(method, path string, body interface{}) (int, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)

	var env envelope
	require.NoError(s.t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}
