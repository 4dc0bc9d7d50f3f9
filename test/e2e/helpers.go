//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adresponse/adresponse/internal/api/handlers"
	"github.com/adresponse/adresponse/internal/repository"
	"github.com/adresponse/adresponse/internal/seed"
	"github.com/adresponse/adresponse/internal/server"
	"github.com/adresponse/adresponse/internal/service"
	"github.com/adresponse/adresponse/internal/testutil"
	"github.com/adresponse/adresponse/internal/workflow"
)

// TestEnv holds all resources needed for end-to-end tests: a Postgres
// container, the seeded sample dataset and the full HTTP stack.
type TestEnv struct {
	T          *testing.T
	Ctx        context.Context
	PostgresC  *testutil.PostgresContainer
	Pool       *pgxpool.Pool
	Server     *httptest.Server
	HTTPClient *http.Client
}

// SetupEnv starts Postgres, runs migrations, seeds the sample data and
// serves the router over Postgres-backed repositories.
func SetupEnv(t *testing.T) *TestEnv {
	ctx := context.Background()

	pgC := testutil.NewPostgresContainer(ctx, t)
	pool := testutil.NewTestPool(ctx, t, pgC, "../../migrations")

	rfps := repository.NewRFPRepository(pool)
	emails := repository.NewEmailRepository(pool)
	articles := repository.NewArticleRepository(pool)
	team := repository.NewTeamRepository(pool)

	if err := seed.Run(ctx, seed.Stores{
		RFPs: rfps, Articles: articles, Team: team, Emails: emails,
	}); err != nil {
		t.Fatalf("failed to seed sample data: %v", err)
	}

	stages := workflow.NewTemplateGenerator()
	rfpSvc := service.NewRFPService(rfps, emails, stages)
	articleSvc := service.NewArticleService(articles)
	attachmentSvc := service.NewAttachmentService(rfps, nil)
	dashboardSvc := service.NewDashboardService(rfps, service.DashboardRates{
		AIResponseRate: 78, WinRate: 32,
	})

	router := server.NewRouter(server.RouterConfig{
		RFPHandler:       handlers.NewRFPHandler(rfpSvc, attachmentSvc),
		ArticleHandler:   handlers.NewArticleHandler(articleSvc),
		TeamHandler:      handlers.NewTeamHandler(team),
		DashboardHandler: handlers.NewDashboardHandler(dashboardSvc),
	})

	return &TestEnv{
		T:          t,
		Ctx:        ctx,
		PostgresC:  pgC,
		Pool:       pool,
		Server:     httptest.NewServer(router),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Cleanup releases all resources
func (e *TestEnv) Cleanup() {
	if e.Server != nil {
		e.Server.Close()
	}
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.PostgresC != nil {
		e.PostgresC.Terminate(e.Ctx)
	}
}

// Do performs a JSON request against the test server and decodes the
// response body.
func (e *TestEnv) Do(method, path string, body interface{}) (int, map[string]interface{}) {
	e.T.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			e.T.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, e.Server.URL+path, reader)
	if err != nil {
		e.T.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.HTTPClient.Do(req)
	if err != nil {
		e.T.Fatalf("request %s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		e.T.Fatalf("failed to decode response for %s %s: %v", method, path, err)
	}
	return resp.StatusCode, decoded
}
