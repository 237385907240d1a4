package integration

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	stdhttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"golang.org/x/time/rate"

	"github.com/quickpoll/api/internal/adapters/broadcast"
	handler "github.com/quickpoll/api/internal/adapters/handler/http"
	repo "github.com/quickpoll/api/internal/adapters/repository/postgres"
	"github.com/quickpoll/api/internal/core/domain"
	"github.com/quickpoll/api/internal/core/services"
)

const testJWTSecret = "test-secret"

type TestApp struct {
	DB          *sql.DB
	Server      *httptest.Server
	Client      *stdhttp.Client
	Hub         *broadcast.Hub
	DBContainer testcontainers.Container
}

func setupPostgresContainer(ctx context.Context) (testcontainers.Container, string, error) {
	dbName := "testdb"
	user := "user"
	password := "password"

	pgContainer, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(user),
		postgres.WithPassword(password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", err
	}

	return pgContainer, connStr, nil
}

func applyMigrations(db *sql.DB) error {
	dirPath := "../../internal/adapters/repository/postgres/migrations"

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}

		fullPath := filepath.Join(dirPath, entry.Name())
		content, err := os.ReadFile(fullPath)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", entry.Name(), err)
		}

		_, err = db.Exec(string(content))
		if err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", entry.Name(), err)
		}
	}

	return nil
}

func setupTestApp(t *testing.T) *TestApp {
	t.Helper()
	ctx := context.Background()

	dbContainer, dbURL, err := setupPostgresContainer(ctx)
	require.NoError(t, err)

	db, err := sql.Open("postgres", dbURL)
	require.NoError(t, err)

	err = applyMigrations(db)
	require.NoError(t, err)

	hub := broadcast.NewHub()

	userRepo := repo.NewUserRepository(db)
	pollRepo := repo.NewPollRepository(db)
	optionRepo := repo.NewOptionRepository(db)
	voteRepo := repo.NewVoteRepository(db)
	likeRepo := repo.NewLikeRepository(db)

	credSvc := services.NewCredentialService(userRepo, []byte(testJWTSecret), 15*time.Minute)
	pollSvc := services.NewPollService(pollRepo, optionRepo, hub)
	voteSvc := services.NewVoteService(pollRepo, optionRepo, voteRepo, hub)
	likeSvc := services.NewLikeService(pollRepo, likeRepo, hub)

	router := handler.NewHandler(
		handler.NewUserHandler(credSvc),
		handler.NewPollHandler(pollSvc),
		handler.NewVoteHandler(voteSvc),
		handler.NewLikeHandler(likeSvc),
		handler.NewWSHandler(hub),
		handler.NewAuthMiddleware(credSvc),
		handler.NewRateLimiter(rate.Inf, 0),
	)

	server := httptest.NewServer(router)

	return &TestApp{
		DB:          db,
		Server:      server,
		Client:      server.Client(),
		Hub:         hub,
		DBContainer: dbContainer,
	}
}

func (app *TestApp) Teardown(t *testing.T) {
	t.Helper()
	app.Server.Close()
	app.DB.Close()
	require.NoError(t, app.DBContainer.Terminate(context.Background()))
}

type tokenResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        domain.User `json:"user"`
}

// registerUser creates a user with a unique email and returns the bearer
// token and the public user view.
func registerUser(t *testing.T, app *TestApp) (string, domain.User) {
	t.Helper()

	email := fmt.Sprintf("user-%s@example.com", uuid.New())
	body, _ := json.Marshal(map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "hunter22",
	})

	resp, err := app.Client.Post(app.Server.URL+"/user/register", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, stdhttp.StatusCreated, resp.StatusCode)

	var tr tokenResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&tr))
	require.NotEmpty(t, tr.AccessToken)
	return tr.AccessToken, tr.User
}

func doJSON(t *testing.T, app *TestApp, method, path, token string, payload interface{}) *stdhttp.Response {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := stdhttp.NewRequest(method, app.Server.URL+path, body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Client.Do(req)
	require.NoError(t, err)
	return resp
}

func createPoll(t *testing.T, app *TestApp, token, text string) domain.Poll {
	t.Helper()

	resp := doJSON(t, app, stdhttp.MethodPost, "/polls/create", token, map[string]string{"text": text})
	defer resp.Body.Close()
	require.Equal(t, stdhttp.StatusCreated, resp.StatusCode)

	var poll domain.Poll
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&poll))
	return poll
}

func addOption(t *testing.T, app *TestApp, token, pollID, text string) domain.PollOption {
	t.Helper()

	resp := doJSON(t, app, stdhttp.MethodPost, "/polls/"+pollID+"/options", token, map[string]string{"text": text})
	defer resp.Body.Close()
	require.Equal(t, stdhttp.StatusCreated, resp.StatusCode)

	var option domain.PollOption
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&option))
	return option
}
