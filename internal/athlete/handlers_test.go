package athlete

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func passthroughAuth(athleteID string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("athlete_id", athleteID)
		return c.Next()
	}
}

func TestProfileRoutes(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT athlete_id, gender, birth_date, age, team, updated_at`).
		WithArgs("athlete-1").
		WillReturnRows(pgxmock.NewRows([]string{"athlete_id", "gender", "birth_date", "age", "team", "updated_at"}).
			AddRow("athlete-1", "GIRLS", nil, 12, "Sharks", time.Now()))

	app := fiber.New()
	RegisterRoutes(app.Group("/athletes"), NewService(mock), passthroughAuth("athlete-1"))

	req := httptest.NewRequest(http.MethodGet, "/athletes/me", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("get profile status: %v", err)
	}
	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if profile.AthleteID != "athlete-1" || profile.Team != "Sharks" {
		t.Fatalf("unexpected profile: %+v", profile)
	}
}

func TestProfileNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT athlete_id, gender, birth_date, age, team, updated_at`).
		WithArgs("missing").
		WillReturnError(errNoProfile)

	app := fiber.New()
	RegisterRoutes(app.Group("/athletes"), NewService(mock), passthroughAuth("athlete-1"))

	req := httptest.NewRequest(http.MethodGet, "/athletes/missing", nil)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected not found, got %v %v", resp.StatusCode, err)
	}
}

var errNoProfile = errors.New("no rows in result set")
