//go:build e2e

package e2e

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestE2E_SeededDataset(t *testing.T) {
	env := SetupEnv(t)
	defer env.Cleanup()

	status, body := env.Do(http.MethodGet, "/api/rfps?per_page=20", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(8), body["total"])

	status, body = env.Do(http.MethodGet, "/api/team/members", nil)
	require.Equal(t, http.StatusOK, status)
	members := body["members"].([]interface{})
	require.Len(t, members, 4)
	assert.Equal(t, "John Doe", members[0].(map[string]interface{})["name"])

	status, body = env.Do(http.MethodGet, "/api/emails/rfps", nil)
	require.Equal(t, http.StatusOK, status)
	emails := body["emails"].([]interface{})
	require.Len(t, emails, 4)
}

func TestE2E_RFPLifecycle(t *testing.T) {
	env := SetupEnv(t)
	defer env.Cleanup()

	status, body := env.Do(http.MethodPost, "/api/rfps", map[string]interface{}{
		"name":          "Winter Brand Push",
		"agency_name":   "Northside Media",
		"campaign_type": "Digital Media",
		"budget_range":  "$250K - $400K",
		"due_date":      "2026-01-15",
	})
	require.Equal(t, http.StatusCreated, status)
	rfp := body["rfp"].(map[string]interface{})
	id := int(rfp["id"].(float64))
	assert.Equal(t, "New", rfp["status"])

	// Quality check is refused until a proposal exists
	status, body = env.Do(http.MethodPost, rfpPath(id)+"/quality-check", nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, false, body["success"])

	status, body = env.Do(http.MethodPost, rfpPath(id)+"/extract-placements", nil)
	require.Equal(t, http.StatusOK, status)
	placements := body["placements"].([]interface{})
	require.Len(t, placements, 3)

	// Proposal generation auto-runs the analysis stage
	status, _ = env.Do(http.MethodPost, rfpPath(id)+"/generate-proposal", nil)
	require.Equal(t, http.StatusOK, status)

	status, body = env.Do(http.MethodGet, rfpPath(id), nil)
	require.Equal(t, http.StatusOK, status)
	rfp = body["rfp"].(map[string]interface{})
	require.NotNil(t, rfp["analysis"])
	require.NotNil(t, rfp["proposal"])

	status, body = env.Do(http.MethodPost, rfpPath(id)+"/quality-check", nil)
	require.Equal(t, http.StatusOK, status)
	check := body["quality_check"].(map[string]interface{})
	assert.Equal(t, 8.7, check["overall_score"])

	// Partial update only touches the supplied fields
	status, body = env.Do(http.MethodPut, rfpPath(id), map[string]interface{}{
		"status":                "Completed",
		"completion_percentage": 100,
	})
	require.Equal(t, http.StatusOK, status)
	rfp = body["rfp"].(map[string]interface{})
	assert.Equal(t, "Completed", rfp["status"])
	assert.Equal(t, "Winter Brand Push", rfp["name"])

	status, _ = env.Do(http.MethodDelete, rfpPath(id), nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = env.Do(http.MethodGet, rfpPath(id), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestE2E_ImportFromMailbox(t *testing.T) {
	env := SetupEnv(t)
	defer env.Cleanup()

	status, body := env.Do(http.MethodPost, "/api/rfps/import", map[string]interface{}{
		"method":   "email",
		"email_id": 1,
	})
	require.Equal(t, http.StatusCreated, status)
	rfp := body["rfp"].(map[string]interface{})
	assert.Equal(t, "MediaBuyers Agency", rfp["agency_name"])
	attachments := rfp["attachments"].([]interface{})
	assert.Len(t, attachments, 2)

	status, body = env.Do(http.MethodGet, "/api/emails/rfps", nil)
	require.Equal(t, http.StatusOK, status)
	emails := body["emails"].([]interface{})
	require.Len(t, emails, 4)
	for _, raw := range emails {
		email := raw.(map[string]interface{})
		if int(email["id"].(float64)) == 1 {
			assert.Equal(t, true, email["processed"])
		}
	}
}

func TestE2E_KnowledgeBase(t *testing.T) {
	env := SetupEnv(t)
	defer env.Cleanup()

	// Seeded articles are searchable by tag
	status, body := env.Do(http.MethodGet, "/api/knowledge-base/articles?search=programmatic", nil)
	require.Equal(t, http.StatusOK, status)
	articles := body["articles"].([]interface{})
	require.NotEmpty(t, articles)

	// Detail reads bump the view counter
	first := articles[0].(map[string]interface{})
	id := int(first["id"].(float64))
	views := first["views"].(float64)

	status, body = env.Do(http.MethodGet, articlePath(id), nil)
	require.Equal(t, http.StatusOK, status)
	article := body["article"].(map[string]interface{})
	assert.Equal(t, views+1, article["views"])
}

func TestE2E_DashboardStats(t *testing.T) {
	env := SetupEnv(t)
	defer env.Cleanup()

	status, body := env.Do(http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, status)

	stats := body["stats"].(map[string]interface{})
	// One of the eight seeded RFPs is Completed
	assert.Equal(t, float64(7), stats["active_rfps"])
	assert.Equal(t, float64(12), stats["completion_rate"])
	assert.Equal(t, float64(78), stats["ai_response_rate"])
	assert.Equal(t, float64(32), stats["win_rate"])

	recent := body["recent_rfps"].([]interface{})
	assert.Len(t, recent, 4)
}

func rfpPath(id int) string {
	return fmt.Sprintf("/api/rfps/%d", id)
}

func articlePath(id int) string {
	return fmt.Sprintf("/api/knowledge-base/articles/%d", id)
}
