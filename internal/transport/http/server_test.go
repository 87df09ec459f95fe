package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dietcoach/backend/internal/models"
	"github.com/dietcoach/backend/internal/repo"
	"github.com/dietcoach/backend/internal/service"
	"github.com/dietcoach/backend/pkg/db"
	"github.com/dietcoach/backend/pkg/events"
	"github.com/dietcoach/backend/pkg/genai"
	"github.com/dietcoach/backend/pkg/hash"
	"github.com/dietcoach/backend/pkg/revocation"
	"github.com/dietcoach/backend/pkg/tokens"
)

type testServer struct {
	e    *echo.Echo
	repo *repo.GormRepo

	mu    sync.Mutex
	aiErr error
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ctx := context.Background()
	gdb, err := db.Open(ctx, "sqlite::memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := repo.New(gdb)
	require.NoError(t, r.Migrate(ctx))

	ts := &testServer{e: echo.New(), repo: r}
	ai := genai.Func(func(context.Context, string) (string, error) {
		ts.mu.Lock()
		defer ts.mu.Unlock()
		if ts.aiErr != nil {
			return "", ts.aiErr
		}
		return "Eat more vegetables and lean protein.", nil
	})

	hasher := hash.NewHasher(bcrypt.MinCost)
	mgr := tokens.NewManager([]byte("http-test-secret-http-test-secret"), time.Hour, revocation.NewMemory())
	pub := events.Noop{}

	ts.e.HTTPErrorHandler = ErrorHandler
	Register(ts.e, &Deps{
		DB:       gdb,
		Auth:     &service.AuthService{Repo: r, Hasher: hasher, Tokens: mgr, Events: pub, PhoneRegion: "US"},
		Users:    &service.UserService{Repo: r, Hasher: hasher, Events: pub, PhoneRegion: "US"},
		Diet:     &service.DietService{Repo: r, AI: ai, Events: pub, AITimeout: time.Second},
		Chat:     &service.ChatService{Repo: r, AI: ai, Events: pub, AITimeout: time.Second},
		Exercise: &service.ExerciseService{Repo: r, Events: pub},
		Catalog:  &service.CatalogService{Repo: r},
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.e.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	}
	return rec, out
}

func (ts *testServer) signup(t *testing.T, username string) string {
	t.Helper()

	rec, body := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return body["access_token"].(string)
}

func (ts *testServer) makeAdmin(t *testing.T, username string) {
	t.Helper()

	ctx := context.Background()
	u, err := ts.repo.UserByEmail(ctx, username+"@x.com")
	require.NoError(t, err)
	role, err := ts.repo.RoleByName(ctx, models.RoleAdmin)
	require.NoError(t, err)
	u.RoleID = role.ID
	require.NoError(t, ts.repo.SaveUser(ctx, u))
}

func TestHealth(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	for _, path := range []string{"/health/live", "/health/ready"} {
		rec, _ := ts.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestScenario_RegisterProfileLogout(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec, body := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	t1, _ := body["access_token"].(string)
	require.NotEmpty(t, t1)
	assert.Equal(t, "User registered successfully", body["message"])

	rec, body = ts.do(t, http.MethodGet, "/api/auth/profile", t1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "user", body["role"])

	rec, body = ts.do(t, http.MethodPost, "/api/auth/logout", t1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logout successful", body["message"])

	rec, body = ts.do(t, http.MethodGet, "/api/auth/profile", t1, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Authentication failed", body["error"])
	assert.Equal(t, "token_revoked", body["code"])
}

func TestScenario_LoginFailureIsUniform(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	rec, _ := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice", "email": "a@x.com", "password": "secret1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	wrong, _ := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@x.com", "password": "wrong"})
	unknown, _ := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "nobody@x.com", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, wrong.Code)
	assert.Equal(t, http.StatusUnauthorized, unknown.Code)
	assert.Equal(t, wrong.Body.String(), unknown.Body.String())

	ok, body := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, ok.Code)
	assert.Equal(t, "Login successful", body["message"])
	assert.NotEmpty(t, body["access_token"])
}

func TestAuth_TokenErrors(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	tests := []struct {
		name   string
		header string
		code   string
	}{
		{name: "missing", header: "", code: "token_missing"},
		{name: "wrong scheme", header: "Basic abc", code: "token_invalid"},
		{name: "garbage", header: "Bearer not.a.jwt", code: "token_invalid"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			ts.e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, "Authentication failed", body["error"])
			assert.Equal(t, tt.code, body["code"])
		})
	}
}

func TestAuth_ProfileAndPassword(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	token := ts.signup(t, "alice")
	ts.signup(t, "bob")

	rec, body := ts.do(t, http.MethodGet, "/api/auth/verify", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["valid"])

	rec, body = ts.do(t, http.MethodPut, "/api/auth/profile", token, map[string]string{"username": "bob"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Username already taken", body["error"])

	rec, body = ts.do(t, http.MethodPut, "/api/auth/profile", token, map[string]string{"mobile_number": "+1 650-253-0000"})
	require.Equal(t, http.StatusOK, rec.Code)
	user := body["user"].(map[string]any)
	assert.Equal(t, "+16502530000", user["mobile_number"])

	rec, body = ts.do(t, http.MethodPost, "/api/auth/change-password", token, map[string]string{"old_password": "nope", "new_password": "secret2"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid old password", body["error"])

	rec, _ = ts.do(t, http.MethodPost, "/api/auth/change-password", token, map[string]string{"old_password": "secret1", "new_password": "secret2"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body = ts.do(t, http.MethodPost, "/api/auth/register", "", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid JSON body", body["error"])
}

func TestAuth_OverlongInputIsBadRequest(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)

	rec, body := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": "alice",
		"email":    "alice@x.com",
		"password": strings.Repeat("p", 80),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Password must be at most 72 bytes", body["error"])

	rec, body = ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"username": strings.Repeat("u", 81),
		"email":    "alice@x.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Username must be at most 80 characters", body["error"])

	token := ts.signup(t, "alice")
	rec, _ = ts.do(t, http.MethodPost, "/api/auth/change-password", token, map[string]string{
		"old_password": "secret1",
		"new_password": strings.Repeat("n", 80),
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = ts.do(t, http.MethodPut, "/api/auth/profile", token, map[string]string{"password": strings.Repeat("n", 80)})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUsers_AdminOnly(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	alice := ts.signup(t, "alice")
	root := ts.signup(t, "root")

	rec, body := ts.do(t, http.MethodGet, "/api/users", alice, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access required", body["error"])

	ts.makeAdmin(t, "root")

	rec, body = ts.do(t, http.MethodGet, "/api/users?per_page=1", root, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, body["total"])
	assert.EqualValues(t, 2, body["pages"])
	assert.Len(t, body["users"], 1)

	rec, body = ts.do(t, http.MethodGet, "/api/users/search?q=ali", root, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["results"], 1)

	rec, _ = ts.do(t, http.MethodGet, "/api/users/search", root, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, body = ts.do(t, http.MethodGet, "/api/users/2", alice, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Access denied", body["error"])

	rec, body = ts.do(t, http.MethodGet, "/api/users/1/stats", alice, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "alice", body["user"].(map[string]any)["username"])
	assert.EqualValues(t, 0, body["statistics"].(map[string]any)["total_exercise_plans"])
	assert.Nil(t, body["latest_activity"].(map[string]any)["exercise_plan"])

	rec, body = ts.do(t, http.MethodDelete, "/api/users/2", root, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Cannot delete last admin", body["error"])

	rec, _ = ts.do(t, http.MethodDelete, "/api/users/1", root, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body = ts.do(t, http.MethodGet, "/api/auth/profile", alice, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "User not found", body["error"])
}

func TestDietEndpoints(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	token := ts.signup(t, "alice")

	req := map[string]any{
		"age": 30, "gender": "female", "weight": 60, "height": 165,
		"activity_level": "moderate", "goal": "maintenance", "diet_type": "balanced",
	}

	rec, body := ts.do(t, http.MethodPost, "/api/diet/generate", token, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	plan := body["diet_plan"].(map[string]any)
	assert.Equal(t, "maintenance", plan["goal"])

	rec, body = ts.do(t, http.MethodPost, "/api/diet/generate", token, map[string]any{"age": 30})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required field: gender", body["error"])

	rec, body = ts.do(t, http.MethodGet, "/api/diet", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["total"])

	rec, _ = ts.do(t, http.MethodGet, "/api/diet/latest", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body = ts.do(t, http.MethodPut, "/api/diet/1", token, map[string]any{"goal": "weight_loss"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "weight_loss", body["diet_plan"].(map[string]any)["goal"])

	rec, body = ts.do(t, http.MethodGet, "/api/diet/statistics", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["total_plans"])

	other := ts.signup(t, "bob")
	rec, body = ts.do(t, http.MethodGet, "/api/diet/1", other, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Diet plan not found", body["error"])

	rec, _ = ts.do(t, http.MethodGet, "/api/diet/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	ts.mu.Lock()
	ts.aiErr = errors.New("quota exceeded")
	ts.mu.Unlock()
	rec, body = ts.do(t, http.MethodPost, "/api/diet/generate", token, req)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, "AI service unavailable", body["error"])

	rec, _ = ts.do(t, http.MethodDelete, "/api/diet/1", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = ts.do(t, http.MethodGet, "/api/diet/latest", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestChatbotEndpoints(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	token := ts.signup(t, "alice")

	rec, body := ts.do(t, http.MethodPost, "/api/chatbot/query", token, map[string]string{"question": "How much protein per meal?"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "diet", body["query_type"])

	rec, body = ts.do(t, http.MethodPost, "/api/chatbot/query", token, map[string]string{"question": "Who won the match?"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Question must be diet-related", body["error"])
	assert.Equal(t, "I can only answer questions about diet and nutrition", body["message"])

	rec, body = ts.do(t, http.MethodPost, "/api/chatbot/quick-ask", token, map[string]string{"question": "Is rice ok?"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["saved"])

	rec, body = ts.do(t, http.MethodGet, "/api/chatbot/history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["total"])

	rec, body = ts.do(t, http.MethodGet, "/api/chatbot/statistics", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["today_queries"])
	assert.NotNil(t, body["latest_query"])

	rec, _ = ts.do(t, http.MethodGet, "/api/chatbot/1", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, body = ts.do(t, http.MethodDelete, "/api/chatbot/history", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["deleted"])

	rec, body = ts.do(t, http.MethodDelete, "/api/chatbot/1", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Query not found", body["error"])
}

func TestErrorHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		err    error
		status int
		body   string
	}{
		{name: "validation", err: service.NewError(service.ErrValidation, "bad"), status: 400, body: `{"error":"bad"}`},
		{name: "conflict", err: service.NewError(service.ErrConflict, "dup"), status: 409, body: `{"error":"dup"}`},
		{name: "credentials", err: service.NewError(service.ErrInvalidCredentials, "no"), status: 401, body: `{"error":"no"}`},
		{name: "not found", err: service.NewError(service.ErrNotFound, "gone"), status: 404, body: `{"error":"gone"}`},
		{name: "forbidden", err: service.NewError(service.ErrForbidden, "stop"), status: 403, body: `{"error":"stop"}`},
		{name: "upstream", err: service.NewError(service.ErrUpstream, "ai"), status: 502, body: `{"error":"ai"}`},
		{name: "expired", err: tokens.ErrTokenExpired, status: 401, body: `{"error":"Authentication failed","code":"token_expired"}`},
		{name: "echo", err: echo.NewHTTPError(http.StatusMethodNotAllowed, "nope"), status: 405, body: `{"error":"nope"}`},
		{name: "internal", err: errors.New("pq: connection refused on 10.0.0.5"), status: 500, body: `{"error":"Internal server error"}`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			ErrorHandler(tt.err, c)

			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, tt.body, rec.Body.String())
			assert.False(t, strings.Contains(rec.Body.String(), "10.0.0.5"))
		})
	}
}

func TestExerciseEndpoints(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	token := ts.signup(t, "alice")

	rec, body := ts.do(t, http.MethodPost, "/api/exercise/generate", token, map[string]any{
		"weight": 70, "height": 175, "goal": "endurance", "difficulty_level": "beginner",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Exercise plan generated", body["message"])
	plan := body["plan"].(map[string]any)
	assert.EqualValues(t, 4, plan["duration_weeks"])
	assert.InDelta(t, 22.86, plan["plan"].(map[string]any)["bmi"], 0.0001)

	rec, body = ts.do(t, http.MethodPost, "/api/exercise/generate", token, map[string]any{"weight": 70})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required field: height", body["error"])

	rec, body = ts.do(t, http.MethodGet, "/api/exercise", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["total"])
	assert.Len(t, body["plans"], 1)

	rec, body = ts.do(t, http.MethodPut, "/api/exercise/1", token, map[string]any{"duration_weeks": 8})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Plan updated successfully", body["message"])
	assert.EqualValues(t, 8, body["plan"].(map[string]any)["duration_weeks"])

	rec, body = ts.do(t, http.MethodGet, "/api/users/1/stats", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["statistics"].(map[string]any)["total_exercise_plans"])
	assert.NotNil(t, body["latest_activity"].(map[string]any)["exercise_plan"])

	other := ts.signup(t, "bob")
	rec, body = ts.do(t, http.MethodGet, "/api/exercise/1", other, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Exercise plan not found", body["error"])

	rec, _ = ts.do(t, http.MethodGet, "/api/exercise", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = ts.do(t, http.MethodDelete, "/api/exercise/1", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = ts.do(t, http.MethodGet, "/api/exercise/1", token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCatalogEndpoints(t *testing.T) {
	t.Parallel()

	ts := newTestServer(t)
	alice := ts.signup(t, "alice")
	root := ts.signup(t, "root")
	ts.makeAdmin(t, "root")

	workout := map[string]any{"workout_name": "Rowing", "category": "cardio", "difficulty_level": "intermediate"}

	rec, _ := ts.do(t, http.MethodPost, "/api/workouts", "", workout)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body := ts.do(t, http.MethodPost, "/api/workouts", alice, workout)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Admin access required", body["error"])

	rec, body = ts.do(t, http.MethodPost, "/api/workouts", root, workout)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Rowing", body["workout"].(map[string]any)["workout_name"])

	rec, body = ts.do(t, http.MethodGet, "/api/workouts?difficulty=intermediate&search=row", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["total"])

	rec, body = ts.do(t, http.MethodPut, "/api/workouts/1", root, map[string]any{"calories_burned": 400})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 400, body["workout"].(map[string]any)["calories_burned"])

	rec, _ = ts.do(t, http.MethodDelete, "/api/workouts/1", alice, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	rec, _ = ts.do(t, http.MethodDelete, "/api/workouts/1", root, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, body = ts.do(t, http.MethodGet, "/api/workouts/1", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Workout not found", body["error"])

	rec, body = ts.do(t, http.MethodPost, "/api/yoga", root, map[string]any{"yoga_name": "Crow", "difficulty_level": "advanced"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Yoga pose created successfully", body["message"])

	rec, body = ts.do(t, http.MethodGet, "/api/yoga/difficulty/advanced", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, body["count"])

	rec, body = ts.do(t, http.MethodGet, "/api/yoga/difficulty/expert", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid difficulty level", body["error"])

	rec, body = ts.do(t, http.MethodGet, "/api/yoga?difficulty_level=beginner", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 0, body["total"])
}
