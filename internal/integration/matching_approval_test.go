package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"mentorhub/internal/config"
	"mentorhub/internal/database"
	"mentorhub/internal/database/migration"
	dbpostgres "mentorhub/internal/database/postgres"
	"mentorhub/internal/delivery/http/middleware"
	"mentorhub/internal/delivery/http/routes"
	"mentorhub/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type suggestionItem struct {
	MentorID     uuid.UUID `json:"mentor_id"`
	MenteeID     uuid.UUID `json:"mentee_id"`
	Type         string    `json:"type"`
	MatchScore   int       `json:"match_score"`
	MatchReasons []string  `json:"match_reasons"`
}

type pairingItem struct {
	ID       uuid.UUID `json:"id"`
	MentorID uuid.UUID `json:"mentor_id"`
	MenteeID uuid.UUID `json:"mentee_id"`
	Status   string    `json:"status"`
	Notes    string    `json:"notes"`
}

func TestIntegration_Login_Matches_Approve(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	db := connectTestDB(t, ctx)
	defer func() { _ = db.Close() }()

	runMigrations(t, ctx, db)

	seed := seedDummyData(t, ctx, db)
	defer cleanupSeed(t, ctx, db, seed)

	app := newTestFiberApp(t, seed.cfg, db)

	tok := loginAndGetJWT(t, app)
	if tok == "" {
		t.Fatalf("login: empty access_token")
	}

	items := callMatches(t, app, tok)
	if len(items) == 0 {
		t.Fatalf("matches: expected non-empty array")
	}

	assertSortedByScoreDesc(t, items)

	var suggestion *suggestionItem
	for i := range items {
		if items[i].MenteeID == seed.studentID {
			suggestion = &items[i]
			break
		}
	}
	if suggestion == nil {
		t.Fatalf("matches: seeded student not suggested")
	}
	if suggestion.MentorID != seed.mentorID {
		t.Fatalf("matches: expected mentor %s, got %s", seed.mentorID, suggestion.MentorID)
	}
	// Shared interests (2) + same chapter + no mentees + complete bio.
	if suggestion.MatchScore != 80 {
		t.Fatalf("matches: expected score 80, got %d", suggestion.MatchScore)
	}
	if len(suggestion.MatchReasons) != 4 {
		t.Fatalf("matches: expected 4 reasons, got %v", suggestion.MatchReasons)
	}

	approveStatus := callApprove(t, app, tok, suggestion.MentorID, suggestion.MenteeID)
	if approveStatus != fiber.StatusOK {
		t.Fatalf("approve: expected 200, got %d", approveStatus)
	}

	// Same triple again must lose to the partial unique index.
	approveStatus = callApprove(t, app, tok, suggestion.MentorID, suggestion.MenteeID)
	if approveStatus != fiber.StatusConflict {
		t.Fatalf("approve duplicate: expected 409, got %d", approveStatus)
	}

	// An approved mentee drops out of the candidate pool.
	for _, it := range callMatches(t, app, tok) {
		if it.MenteeID == seed.studentID {
			t.Fatalf("matches: approved mentee still suggested")
		}
	}

	pairings := callPairings(t, app, tok)
	found := false
	for _, p := range pairings {
		if p.MentorID == seed.mentorID && p.MenteeID == seed.studentID {
			found = true
			if p.Status != "ACTIVE" {
				t.Fatalf("pairings: expected ACTIVE, got %s", p.Status)
			}
			if p.Notes != "Created via Mentor Match Algorithm" {
				t.Fatalf("pairings: unexpected notes %q", p.Notes)
			}
		}
	}
	if !found {
		t.Fatalf("pairings: approved pairing not listed")
	}
}

func connectTestDB(t *testing.T, ctx context.Context) database.DB {
	t.Helper()

	host := stringsOrDefault(os.Getenv("MENTORHUB_TEST_DB_HOST"), os.Getenv("DB_HOST"))
	port := stringsOrDefault(os.Getenv("MENTORHUB_TEST_DB_PORT"), os.Getenv("DB_PORT"))
	name := stringsOrDefault(os.Getenv("MENTORHUB_TEST_DB_NAME"), os.Getenv("DB_NAME"))
	user := stringsOrDefault(os.Getenv("MENTORHUB_TEST_DB_USER"), os.Getenv("DB_USER"))
	pass := stringsOrDefault(os.Getenv("MENTORHUB_TEST_DB_PASSWORD"), os.Getenv("DB_PASSWORD"))
	ssl := stringsOrDefault(os.Getenv("MENTORHUB_TEST_DB_SSL_MODE"), os.Getenv("DB_SSL_MODE"))

	if host == "" || port == "" || name == "" || user == "" {
		t.Skip("missing test DB env vars: set MENTORHUB_TEST_DB_HOST/PORT/NAME/USER/PASSWORD (or DB_HOST/DB_PORT/DB_NAME/DB_USER/DB_PASSWORD)")
	}
	if ssl == "" {
		ssl = "disable"
	}

	dbcfg := config.DatabaseConfig{
		DBHost:     host,
		DBPort:     port,
		DBName:     name,
		DBUser:     user,
		DBPassword: pass,
		DBSSLMode:  ssl,
	}

	db, err := dbpostgres.Connect(ctx, dbcfg)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return db
}

func runMigrations(t *testing.T, ctx context.Context, db database.DB) {
	t.Helper()

	migDir := resolveMigrationsDir(t)
	r := migration.Runner{Dir: migDir}
	if err := r.Run(ctx, db.SQLDB()); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
}

func resolveMigrationsDir(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("resolve migrations dir: runtime.Caller failed")
	}

	// this file: internal/integration/matching_approval_test.go
	// repo root: ../../
	root := filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
	migDir := filepath.Join(root, "migrations")

	if st, err := os.Stat(migDir); err != nil || !st.IsDir() {
		t.Fatalf("resolve migrations dir: not found or not a dir: %s", migDir)
	}
	files, _ := filepath.Glob(filepath.Join(migDir, "V*__*.sql"))
	if len(files) == 0 {
		t.Fatalf("resolve migrations dir: no migration files found in %s", migDir)
	}

	return migDir
}

type seededIDs struct {
	cfg       config.Config
	chapterID uuid.UUID
	adminID   uuid.UUID
	mentorID  uuid.UUID
	studentID uuid.UUID
}

func seedDummyData(t *testing.T, ctx context.Context, db database.DB) seededIDs {
	t.Helper()

	out := seededIDs{
		cfg: config.Config{
			App: config.AppConfig{AppName: "mentorhub", Environment: "test", HTTPPort: "0"},
			JWT: config.JWTConfig{
				AccessSecret:     stringsOrDefault(os.Getenv("MENTORHUB_TEST_JWT_ACCESS_SECRET"), "test-access-secret"),
				RefreshSecret:    stringsOrDefault(os.Getenv("MENTORHUB_TEST_JWT_REFRESH_SECRET"), "test-refresh-secret"),
				AccessExpiresIn:  15 * time.Minute,
				RefreshExpiresIn: 24 * time.Hour,
			},
			RateLimit: config.RateLimitConfig{Enabled: false},
		},
	}

	out.chapterID = ensureChapter(t, ctx, db, "IT-Test Chapter")
	out.adminID = ensureUser(t, ctx, db, "it-admin@example.test", "password", nil, "ADMIN")
	out.mentorID = ensureUser(t, ctx, db, "it-mentor@example.test", "password", &out.chapterID, "MENTOR")
	out.studentID = ensureUser(t, ctx, db, "it-student@example.test", "password", &out.chapterID, "STUDENT")

	ensureProfile(t, ctx, db, out.mentorID, "Ten years of jazz ensemble coaching.", []string{"Music", "Coding"})
	ensureProfile(t, ctx, db, out.studentID, "", []string{"music", "coding", "games"})

	return out
}

func cleanupSeed(t *testing.T, ctx context.Context, db database.DB, seed seededIDs) {
	t.Helper()

	ids := []uuid.UUID{seed.adminID, seed.mentorID, seed.studentID}
	for _, id := range ids {
		_, _ = db.Exec(ctx, `DELETE FROM mentorships WHERE mentor_id = $1 OR mentee_id = $1`, id)
		_, _ = db.Exec(ctx, `DELETE FROM profiles WHERE user_id = $1`, id)
		_, _ = db.Exec(ctx, `DELETE FROM user_capabilities WHERE user_id = $1`, id)
		_, _ = db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	}
	_, _ = db.Exec(ctx, `DELETE FROM chapters WHERE id = $1`, seed.chapterID)
}

func newTestFiberApp(t *testing.T, cfg config.Config, db database.DB) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{})
	errMw := middleware.NewErrorMiddleware(nil)
	app.Use(errMw.Middleware())

	hub := ws.NewHub(nil)
	go hub.Run()

	routes.NewRegistry(cfg, db, nil, hub, nil).Register(app)
	return app
}

func loginAndGetJWT(t *testing.T, app *fiber.App) string {
	t.Helper()

	body := map[string]string{"email": "it-admin@example.test", "password": "password"}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/api/v1/auth/login", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login request error: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("login decode error: %v", err)
	}
	if env.Status != 200 {
		t.Fatalf("login: expected status=200, got %d (message=%s)", env.Status, env.Message)
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(env.Data, &m); err != nil {
		t.Fatalf("login: data unmarshal error: %v", err)
	}
	var token string
	if raw, ok := m["access_token"]; ok {
		_ = json.Unmarshal(raw, &token)
	}
	if token == "" {
		t.Fatalf("login: missing access_token")
	}
	return token
}

func callMatches(t *testing.T, app *fiber.App, jwt string) []suggestionItem {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/mentorships/matches?type=STUDENT_MENTORSHIP", nil)
	req.Header.Set("Authorization", "Bearer "+jwt)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("matches request error: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("matches decode error: %v", err)
	}
	if env.Status != 200 {
		t.Fatalf("matches: expected status=200, got %d (message=%s)", env.Status, env.Message)
	}

	var items []suggestionItem
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("matches: data unmarshal error: %v", err)
	}
	return items
}

func callApprove(t *testing.T, app *fiber.App, jwt string, mentorID, menteeID uuid.UUID) int {
	t.Helper()

	body := map[string]string{
		"mentorId": mentorID.String(),
		"menteeId": menteeID.String(),
		"type":     "STUDENT_MENTORSHIP",
	}
	b, _ := json.Marshal(body)

	req := httptest.NewRequest("POST", "/api/v1/mentorships/matches/approve", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+jwt)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("approve request error: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("approve decode error: %v", err)
	}
	return env.Status
}

func callPairings(t *testing.T, app *fiber.App, jwt string) []pairingItem {
	t.Helper()

	req := httptest.NewRequest("GET", "/api/v1/mentorships/?type=STUDENT_MENTORSHIP", nil)
	req.Header.Set("Authorization", "Bearer "+jwt)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("pairings request error: %v", err)
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		t.Fatalf("pairings decode error: %v", err)
	}
	if env.Status != 200 {
		t.Fatalf("pairings: expected status=200, got %d (message=%s)", env.Status, env.Message)
	}

	var items []pairingItem
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("pairings: data unmarshal error: %v", err)
	}
	return items
}

func assertSortedByScoreDesc(t *testing.T, items []suggestionItem) {
	t.Helper()

	for i := 1; i < len(items); i++ {
		if items[i].MatchScore > items[i-1].MatchScore {
			t.Fatalf("matches: expected match_score descending at idx=%d: prev=%d cur=%d", i, items[i-1].MatchScore, items[i].MatchScore)
		}
	}
}

func ensureChapter(t *testing.T, ctx context.Context, db database.DB, name string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	if _, err := db.Exec(ctx,
		`INSERT INTO chapters (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
		id, name,
	); err != nil {
		t.Fatalf("seed chapter: %v", err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM chapters WHERE name = $1`, name)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed chapter lookup: %v", err)
	}
	return got
}

func ensureUser(t *testing.T, ctx context.Context, db database.DB, email, password string, chapterID *uuid.UUID, capabilities ...string) uuid.UUID {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("seed user hash: %v", err)
	}

	id := uuid.New()
	if _, err := db.Exec(ctx,
		`INSERT INTO users (id, name, email, password_hash, chapter_id) VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (email) DO NOTHING`,
		id, email, email, string(hash), chapterID,
	); err != nil {
		t.Fatalf("seed user: %v", err)
	}

	row := db.QueryRow(ctx, `SELECT id FROM users WHERE email = $1`, email)
	var got uuid.UUID
	if err := row.Scan(&got); err != nil {
		t.Fatalf("seed user lookup: %v", err)
	}

	for _, c := range capabilities {
		if _, err := db.Exec(ctx,
			`INSERT INTO user_capabilities (user_id, capability) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
			got, c,
		); err != nil {
			t.Fatalf("seed capability: %v", err)
		}
	}
	return got
}

func ensureProfile(t *testing.T, ctx context.Context, db database.DB, userID uuid.UUID, bio string, interests []string) {
	t.Helper()

	if _, err := db.Exec(ctx,
		`INSERT INTO profiles (id, user_id, bio, interests) VALUES (gen_random_uuid(), $1, $2, $3)
		 ON CONFLICT (user_id) DO UPDATE SET bio = EXCLUDED.bio, interests = EXCLUDED.interests`,
		userID, bio, interests,
	); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
}

func stringsOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}
