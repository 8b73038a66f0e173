package routes

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/wanderhub/wanderhub/internal/config"
	"github.com/wanderhub/wanderhub/internal/logging"
)

func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := config.Config{
		AppName:         "wanderhub-test",
		AppEnv:          "development",
		Port:            "0",
		JWTSecret:       "test-access-secret",
		RefreshSecret:   "test-refresh-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		Credentials: []config.Credential{
			{Username: "alice", Password: "alicepw"},
		},
	}

	app := fiber.New()
	if err := Setup(app, Deps{Cfg: cfg, Logger: logging.Discard()}); err != nil {
		t.Fatalf("setup routes: %v", err)
	}
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body, bearer string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	payload, _ := io.ReadAll(resp.Body)
	decoded := map[string]any{}
	_ = json.Unmarshal(payload, &decoded)
	return resp.StatusCode, decoded
}

func getJSON(t *testing.T, app *fiber.App, path, bearer string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	payload, _ := io.ReadAll(resp.Body)
	decoded := map[string]any{}
	_ = json.Unmarshal(payload, &decoded)
	return resp.StatusCode, decoded
}

func TestLoginCheckInFlow(t *testing.T) {
	app := setupTestApp(t)

	status, body := postJSON(t, app, "/api/v1/auth/login", `{"username":"alice","password":"wrong"}`, "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", status)
	}

	status, body = postJSON(t, app, "/api/v1/auth/login", `{"username":"alice","password":"alicepw"}`, "")
	if status != fiber.StatusOK {
		t.Fatalf("login: expected 200, got %d (%v)", status, body)
	}
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatalf("missing access token in %v", body)
	}
	if points, _ := body["points"].(float64); points != 100 {
		t.Fatalf("expected welcome bonus of 100 points, got %v", body["points"])
	}

	status, body = getJSON(t, app, "/api/v1/me", token)
	if status != fiber.StatusOK {
		t.Fatalf("me: expected 200, got %d", status)
	}
	if can, _ := body["can_check_in"].(bool); !can {
		t.Fatalf("fresh session must be allowed to check in")
	}

	status, body = postJSON(t, app, "/api/v1/checkin", "{}", token)
	if status != fiber.StatusOK {
		t.Fatalf("checkin: expected 200, got %d (%v)", status, body)
	}
	if earned, _ := body["points_earned"].(float64); earned != 5 {
		t.Fatalf("expected 5 points on streak day 1, got %v", body["points_earned"])
	}

	status, _ = postJSON(t, app, "/api/v1/checkin", "{}", token)
	if status != fiber.StatusConflict {
		t.Fatalf("second checkin today: expected 409, got %d", status)
	}

	status, body = postJSON(t, app, "/api/v1/points/redeem", `{"amount":1000}`, token)
	if status != fiber.StatusConflict {
		t.Fatalf("overdraft redeem: expected 409, got %d", status)
	}

	status, body = postJSON(t, app, "/api/v1/points/redeem", `{"amount":50}`, token)
	if status != fiber.StatusOK {
		t.Fatalf("redeem: expected 200, got %d", status)
	}
	if points, _ := body["points"].(float64); points != 55 {
		t.Fatalf("expected 55 points after redeem, got %v", body["points"])
	}

	status, _ = postJSON(t, app, "/api/v1/auth/logout", "{}", "")
	if status != fiber.StatusOK {
		t.Fatalf("logout: expected 200, got %d", status)
	}

	// The token no longer maps to an active session.
	status, _ = getJSON(t, app, "/api/v1/me", token)
	if status != fiber.StatusUnauthorized {
		t.Fatalf("me after logout: expected 401, got %d", status)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := setupTestApp(t)

	status, _ := getJSON(t, app, "/api/v1/me", "")
	if status != fiber.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", status)
	}
}

func TestCartFlow(t *testing.T) {
	app := setupTestApp(t)

	_, body := postJSON(t, app, "/api/v1/auth/login", `{"username":"alice","password":"alicepw"}`, "")
	token, _ := body["access_token"].(string)
	if token == "" {
		t.Fatalf("missing access token")
	}

	item := func(id string, qty int) string {
		return fmt.Sprintf(`{"id":%q,"name":"City Pass","price":1500,"quantity":%d}`, id, qty)
	}

	status, body := postJSON(t, app, "/api/v1/cart/items", item("pass-1", 2), token)
	if status != fiber.StatusOK {
		t.Fatalf("add: expected 200, got %d", status)
	}
	status, body = postJSON(t, app, "/api/v1/cart/items", item("pass-1", 3), token)
	if status != fiber.StatusOK {
		t.Fatalf("merge add: expected 200, got %d", status)
	}
	if count, _ := body["count"].(float64); count != 5 {
		t.Fatalf("expected merged count 5, got %v", body["count"])
	}
	items, _ := body["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("expected single merged entry, got %d", len(items))
	}

	req := httptest.NewRequest(fiber.MethodPut, "/api/v1/cart/items/pass-1", strings.NewReader(`{"quantity":0}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	defer resp.Body.Close()
	payload, _ := io.ReadAll(resp.Body)
	decoded := map[string]any{}
	_ = json.Unmarshal(payload, &decoded)
	if count, _ := decoded["count"].(float64); count != 0 {
		t.Fatalf("expected zero-quantity update to empty the cart, got %v", decoded["count"])
	}
}
