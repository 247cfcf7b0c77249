package training

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pashagolub/pgxmock/v3"
)

func TestLogSession(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	day := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO training_sessions`).
		WithArgs(pgxmock.AnyArg(), "athlete-1", day, 60, 2500, "main set").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	svc := NewService(mock)
	sess, err := svc.LogSession(context.Background(), Session{
		AthleteID:   "athlete-1",
		SessionDate: day,
		DurationMin: 60,
		DistanceM:   2500,
		Notes:       "main set",
	})
	if err != nil {
		t.Fatalf("log session: %v", err)
	}
	if sess.ID == "" {
		t.Fatalf("expected generated id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestDatesSince(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	cutoff := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	rows := pgxmock.NewRows([]string{"session_date"}).
		AddRow(time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC)).
		AddRow(time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC))
	mock.ExpectQuery(`SELECT DISTINCT session_date`).
		WithArgs("athlete-1", cutoff).
		WillReturnRows(rows)

	svc := NewService(mock)
	dates, err := svc.DatesSince(context.Background(), "athlete-1", cutoff)
	if err != nil {
		t.Fatalf("dates since: %v", err)
	}
	if len(dates) != 2 {
		t.Fatalf("expected 2 dates, got %d", len(dates))
	}
}

func TestLogSessionRoute(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`INSERT INTO training_sessions`).
		WithArgs(pgxmock.AnyArg(), "athlete-1", pgxmock.AnyArg(), 45, 0, "").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(time.Now()))

	app := fiber.New()
	auth := func(c *fiber.Ctx) error {
		c.Locals("athlete_id", "athlete-1")
		return c.Next()
	}
	RegisterRoutes(app.Group("/training"), NewService(mock), auth)

	body, _ := json.Marshal(Session{DurationMin: 45})
	req := httptest.NewRequest(http.MethodPost, "/training/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusCreated {
		t.Fatalf("log session status: %v", err)
	}
}

func TestLogSessionRouteRejectsEmpty(t *testing.T) {
	app := fiber.New()
	auth := func(c *fiber.Ctx) error {
		c.Locals("athlete_id", "athlete-1")
		return c.Next()
	}
	RegisterRoutes(app.Group("/training"), NewService(nil), auth)

	req := httptest.NewRequest(http.MethodPost, "/training/", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected bad request, got %v %v", resp.StatusCode, err)
	}
}
