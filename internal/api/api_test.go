package api

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/thorcollective/hearth/internal/catalog"
	"github.com/thorcollective/hearth/internal/chat"
	"github.com/thorcollective/hearth/internal/models"
)

func seedHunts() []models.Hunt {
	return []models.Hunt{
		{ID: "F001", Category: "Flames", Title: "Scheduled task persistence",
			Tactic: "Persistence", Notes: "schtasks.exe baselines",
			Tags:      []string{"windows", "persistence"},
			Submitter: models.Submitter{Name: "alice", Link: "https://github.com/alice"},
			FilePath:  "Flames/F001.md"},
		{ID: "F010", Category: "Flames", Title: "Registry run key abuse",
			Tactic: "Persistence, Privilege Escalation",
			Tags:      []string{"windows"},
			Submitter: models.Submitter{Name: "bob"},
			FilePath:  "Flames/F010.md"},
		{ID: "E001", Category: "Embers", Title: "DNS beacon baselining",
			Tactic: "Command and Control",
			Tags:      []string{"dns"},
			Submitter: models.Submitter{Name: "alice", Link: "https://github.com/alice"},
			FilePath:  "Embers/E001.md"},
	}
}

// testEnv builds a ready catalog store and router. authToken == "" means
// auth disabled.
func testEnv(t *testing.T, authToken string) (*catalog.Store, http.Handler) {
	t.Helper()
	store := catalog.NewStore()
	store.Swap(catalog.NewSnapshot(seedHunts()))
	return store, testRouter(t, store, authToken)
}

func testRouter(t *testing.T, store *catalog.Store, authToken string) http.Handler {
	t.Helper()
	h := NewHandler(store,
		chat.NewResponder(rand.New(rand.NewSource(1))),
		"https://github.com/THORCollective/HEARTH/blob/main",
		"https://github.com/THORCollective/HEARTH")
	return NewRouter(h, authToken != "", authToken, nil, nil)
}

func do(router http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestListHunts_DefaultOrder(t *testing.T) {
	_, router := testEnv(t, "")

	w := do(router, http.MethodGet, "/hunts", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp HuntListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 3 {
		t.Fatalf("total = %d, want 3", resp.Total)
	}
	want := []string{"E001", "F001", "F010"}
	for i, id := range want {
		if resp.Hunts[i].ID != id {
			t.Errorf("hunts[%d] = %q, want %q", i, resp.Hunts[i].ID, id)
		}
	}
	if len(resp.Facets.Tactics) == 0 || len(resp.Facets.Categories) != 3 {
		t.Errorf("facets not populated: %+v", resp.Facets)
	}
	if resp.Hunts[0].SourceURL != "https://github.com/THORCollective/HEARTH/blob/main/Embers/E001.md" {
		t.Errorf("source_url = %q", resp.Hunts[0].SourceURL)
	}
}

func TestListHunts_FilterAndDescOrder(t *testing.T) {
	_, router := testEnv(t, "")

	w := do(router, http.MethodGet, "/hunts?category=Flames&tactic=Persistence&order=desc", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp HuntListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 2 {
		t.Fatalf("total = %d, want 2", resp.Total)
	}
	if resp.Hunts[0].ID != "F010" || resp.Hunts[1].ID != "F001" {
		t.Errorf("desc order wrong: %q, %q", resp.Hunts[0].ID, resp.Hunts[1].ID)
	}
}

func TestGetHunt(t *testing.T) {
	_, router := testEnv(t, "")

	w := do(router, http.MethodGet, "/hunts/F001", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var item HuntItem
	_ = json.Unmarshal(w.Body.Bytes(), &item)
	if item.Title != "Scheduled task persistence" {
		t.Errorf("title = %q", item.Title)
	}

	if w := do(router, http.MethodGet, "/hunts/Z999", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", w.Code)
	}
}

func TestSearch_TitleBoost(t *testing.T) {
	_, router := testEnv(t, "")

	// "persistence" is in F001's title and in F010's tactic only.
	w := do(router, http.MethodGet, "/search?q=persistence", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp SearchResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 2 {
		t.Fatalf("total = %d, want 2", resp.Total)
	}
	if resp.Results[0].ID != "F001" {
		t.Errorf("title match not ranked first: %q", resp.Results[0].ID)
	}
}

func TestSearch_MissingQuery(t *testing.T) {
	_, router := testEnv(t, "")
	if w := do(router, http.MethodGet, "/search", nil); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestStatsAndLeaderboard(t *testing.T) {
	_, router := testEnv(t, "")

	w := do(router, http.MethodGet, "/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	var stats StatisticsResponse
	_ = json.Unmarshal(w.Body.Bytes(), &stats)
	if stats.Total != 3 || stats.Categories["Alchemy"] != 0 {
		t.Errorf("stats = %+v", stats)
	}

	w = do(router, http.MethodGet, "/leaderboard", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("leaderboard status = %d", w.Code)
	}
	var lb LeaderboardResponse
	_ = json.Unmarshal(w.Body.Bytes(), &lb)
	if len(lb.Contributors) != 2 || lb.Contributors[0].Name != "alice" {
		t.Errorf("leaderboard = %+v", lb.Contributors)
	}
}

func TestChat(t *testing.T) {
	_, router := testEnv(t, "")

	body, _ := json.Marshal(ChatRequest{Message: "how many hunts do we have"})
	w := do(router, http.MethodPost, "/chat", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp ChatResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Intent != "stats" {
		t.Errorf("intent = %q, want stats", resp.Intent)
	}
	if !strings.Contains(resp.Reply, "3 hunts") {
		t.Errorf("reply missing total: %q", resp.Reply)
	}
}

func TestChat_EmptyMessage(t *testing.T) {
	_, router := testEnv(t, "")
	body, _ := json.Marshal(ChatRequest{Message: "   "})
	if w := do(router, http.MethodPost, "/chat", body); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestReportDownload(t *testing.T) {
	_, router := testEnv(t, "")

	w := do(router, http.MethodGet, "/hunts/F001/report", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "F001_report.md") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	body := w.Body.String()
	if !strings.Contains(body, "- **Hunt ID**: F001") {
		t.Errorf("report body missing header: %s", body)
	}

	if w := do(router, http.MethodGet, "/hunts/Z999/report", nil); w.Code != http.StatusNotFound {
		t.Errorf("unknown id report status = %d, want 404", w.Code)
	}
}

func TestSubmit(t *testing.T) {
	_, router := testEnv(t, "")

	body, _ := json.Marshal(map[string]any{
		"hypothesis": "Adversaries abuse WMI event subscriptions for persistence",
		"tactic":     "Persistence",
	})
	w := do(router, http.MethodPost, "/submissions", body)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp SubmissionResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if !strings.HasPrefix(resp.IssueURL, "https://github.com/THORCollective/HEARTH/issues/new?") {
		t.Errorf("issue_url = %q", resp.IssueURL)
	}
}

func TestSubmit_ValidationErrors(t *testing.T) {
	_, router := testEnv(t, "")

	body, _ := json.Marshal(map[string]any{"tactic": "Persistence"})
	w := do(router, http.MethodPost, "/submissions", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	// ozzo keys field errors by the json tag name.
	if _, ok := resp.Fields["hypothesis"]; !ok {
		t.Errorf("missing field error for hypothesis: %s", w.Body.String())
	}
}

func TestNotReadyCatalog(t *testing.T) {
	store := catalog.NewStore()
	router := testRouter(t, store, "")

	for _, target := range []string{"/hunts", "/hunts/F001", "/search?q=x", "/stats", "/leaderboard"} {
		if w := do(router, http.MethodGet, target, nil); w.Code != http.StatusServiceUnavailable {
			t.Errorf("GET %s status = %d, want 503", target, w.Code)
		}
	}

	if w := do(router, http.MethodGet, "/health/ready", nil); w.Code != http.StatusServiceUnavailable {
		t.Errorf("readiness = %d, want 503", w.Code)
	}
	if w := do(router, http.MethodGet, "/health/live", nil); w.Code != http.StatusOK {
		t.Errorf("liveness = %d, want 200", w.Code)
	}
}

func TestAuth(t *testing.T) {
	_, router := testEnv(t, "secret")

	if w := do(router, http.MethodGet, "/hunts", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("missing token status = %d, want 401", w.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/hunts", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token status = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/hunts", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("valid token status = %d, want 200", w.Code)
	}

	// Health probes stay open.
	if w := do(router, http.MethodGet, "/health/live", nil); w.Code != http.StatusOK {
		t.Errorf("liveness behind auth = %d, want 200", w.Code)
	}
}
