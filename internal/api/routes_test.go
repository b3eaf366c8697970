package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"digimun_backend/internal/repository"
	"digimun_backend/internal/service"
	"digimun_backend/internal/testutil"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	services := service.NewServices(repository.NewRepositories(db), service.Options{
		DefaultConfig: testutil.DefaultConfig(),
	})

	r := gin.New()
	SetupRoutes(r, services)
	return r
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, w.Body.String())
	}
	return out
}

func expectStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d, body=%s", w.Code, want, w.Body.String())
	}
}

func TestHealthAndNoRoute(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/health", nil)
	expectStatus(t, w, http.StatusOK)
	if decode(t, w)["status"] != "ok" {
		t.Errorf("unexpected health body: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/nope", nil)
	expectStatus(t, w, http.StatusNotFound)
	if _, ok := decode(t, w)["error"]; !ok {
		t.Errorf("404 body missing error: %s", w.Body.String())
	}
}

func TestGetSessionCreatesDefaults(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/session/current", nil)
	expectStatus(t, w, http.StatusOK)

	body := decode(t, w)
	if body["state"] != "idle" {
		t.Errorf("state = %v, want idle", body["state"])
	}
	if body["chairUserId"] != nil || body["currentSpeechStart"] != nil {
		t.Errorf("expected null chair and speech start, got %v / %v", body["chairUserId"], body["currentSpeechStart"])
	}
	cfg, _ := body["sessionConfig"].(map[string]any)
	if cfg["gslTime"] != float64(90) || cfg["modTime"] != float64(45) {
		t.Errorf("sessionConfig = %v", body["sessionConfig"])
	}
	for _, key := range []string{"speakersList", "chatLog", "chits"} {
		if list, ok := body[key].([]any); !ok || len(list) != 0 {
			t.Errorf("%s = %v, want empty list", key, body[key])
		}
	}
	if d, ok := body["delegates"].(map[string]any); !ok || len(d) != 0 {
		t.Errorf("delegates = %v, want empty object", body["delegates"])
	}
	vote, _ := body["voteData"].(map[string]any)
	if vote["active"] != false {
		t.Errorf("voteData = %v, want inactive", body["voteData"])
	}
}

func TestVoteFlowOverHTTP(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/session/vote/start", gin.H{
		"topic":   "Motion to extend debate",
		"type":    "procedural",
		"options": []string{"Yes", "No"},
	})
	expectStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodPost, "/api/session/vote/cast", gin.H{"userId": "u1", "vote": "Yes"})
	expectStatus(t, w, http.StatusOK)
	w = doJSON(t, r, http.MethodPost, "/api/session/vote/cast", gin.H{"userId": "u2", "vote": "No"})
	expectStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodPost, "/api/session/vote/cast", gin.H{"userId": "u1", "vote": "No"})
	expectStatus(t, w, http.StatusBadRequest)
	if decode(t, w)["code"] != "duplicate_ballot" {
		t.Errorf("duplicate cast body = %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/session/vote/cast", gin.H{"userId": "u3", "vote": "Maybe"})
	expectStatus(t, w, http.StatusBadRequest)
	if decode(t, w)["code"] != "unknown_option" {
		t.Errorf("unknown option body = %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/session/current", nil)
	expectStatus(t, w, http.StatusOK)
	body := decode(t, w)
	if body["state"] != "voting" {
		t.Errorf("state = %v, want voting", body["state"])
	}
	vote := body["voteData"].(map[string]any)
	results := vote["results"].(map[string]any)
	if vote["active"] != true || vote["totalVotes"] != float64(2) || results["Yes"] != float64(1) || results["No"] != float64(1) {
		t.Errorf("voteData = %v", vote)
	}

	w = doJSON(t, r, http.MethodPost, "/api/session/vote/end", nil)
	expectStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodPost, "/api/session/vote/cast", gin.H{"userId": "u4", "vote": "Yes"})
	expectStatus(t, w, http.StatusBadRequest)
	if decode(t, w)["code"] != "no_active_vote" {
		t.Errorf("cast after end body = %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/session/current", nil)
	vote = decode(t, w)["voteData"].(map[string]any)
	if vote["active"] != false || vote["totalVotes"] != float64(2) {
		t.Errorf("ended voteData = %v", vote)
	}
}

func TestValidationRejections(t *testing.T) {
	r := setupRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"unknown state", http.MethodPatch, "/api/session/current", gin.H{"state": "recess"}},
		{"unknown vote type", http.MethodPost, "/api/session/vote/start", gin.H{"topic": "t", "type": "secret", "options": []string{"Yes"}}},
		{"duplicate options", http.MethodPost, "/api/session/vote/start", gin.H{"topic": "t", "type": "substantive", "options": []string{"Yes", "Yes"}}},
		{"empty options", http.MethodPost, "/api/session/vote/start", gin.H{"topic": "t", "type": "substantive", "options": []string{}}},
		{"missing ballot choice", http.MethodPost, "/api/session/vote/cast", gin.H{"userId": "u1"}},
		{"unknown role", http.MethodPost, "/api/session/join", gin.H{"userId": "u1", "country": "France", "role": "observer"}},
		{"missing score", http.MethodPost, "/api/session/mark", gin.H{"userId": "u1"}},
		{"unknown speech action", http.MethodPatch, "/api/session/speakers", gin.H{"list": []any{}, "action": "rewind"}},
		{"empty chat", http.MethodPost, "/api/session/chat", gin.H{"userId": "u1", "country": "France"}},
		{"chit without sender", http.MethodPost, "/api/session/chits", gin.H{"message": "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(t, r, tt.method, tt.path, tt.body)
			expectStatus(t, w, http.StatusBadRequest)
			if decode(t, w)["code"] != "invalid_request" {
				t.Errorf("body = %s", w.Body.String())
			}
		})
	}
}

func TestJoinAndMark(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/session/mark", gin.H{"userId": "ghost", "score": 5})
	expectStatus(t, w, http.StatusNotFound)
	if decode(t, w)["code"] != "delegate_not_found" {
		t.Errorf("ghost mark body = %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/session/join", gin.H{"userId": "u1", "country": "France", "role": "delegate"})
	expectStatus(t, w, http.StatusOK)
	w = doJSON(t, r, http.MethodPost, "/api/session/join", gin.H{"userId": "c1", "country": "Chair", "role": "chair"})
	expectStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodPost, "/api/session/mark", gin.H{"userId": "u1", "score": 3})
	expectStatus(t, w, http.StatusOK)
	w = doJSON(t, r, http.MethodPost, "/api/session/mark", gin.H{"userId": "u1", "score": -1})
	expectStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodGet, "/api/session/current", nil)
	body := decode(t, w)
	if body["chairUserId"] != "c1" {
		t.Errorf("chairUserId = %v, want c1", body["chairUserId"])
	}
	delegates := body["delegates"].(map[string]any)
	u1 := delegates["u1"].(map[string]any)
	if u1["country"] != "France" || u1["role"] != "delegate" || u1["score"] != float64(2) {
		t.Errorf("delegate u1 = %v", u1)
	}
	if len(delegates) != 2 {
		t.Errorf("delegates = %v, want 2 entries", delegates)
	}
}

func TestSessionPatchAndSpeakers(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPatch, "/api/session/current", gin.H{
		"state":         "debating",
		"sessionConfig": gin.H{"gslTime": 120},
	})
	expectStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodPatch, "/api/session/speakers", gin.H{
		"list":   []gin.H{{"userId": "u1", "country": "France"}, {"userId": "u2", "country": "Chile"}},
		"action": "start",
	})
	expectStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodGet, "/api/session/current", nil)
	body := decode(t, w)
	if body["state"] != "debating" {
		t.Errorf("state = %v, want debating", body["state"])
	}
	if cfg := body["sessionConfig"].(map[string]any); cfg["gslTime"] != float64(120) {
		t.Errorf("sessionConfig = %v", cfg)
	}
	speakers := body["speakersList"].([]any)
	if len(speakers) != 2 || speakers[0].(map[string]any)["country"] != "France" {
		t.Errorf("speakersList = %v", speakers)
	}
	if body["currentSpeechStart"] == nil {
		t.Error("expected currentSpeechStart after start action")
	}

	w = doJSON(t, r, http.MethodPatch, "/api/session/speakers", gin.H{"list": []gin.H{}, "action": "end"})
	expectStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodGet, "/api/session/current", nil)
	body = decode(t, w)
	if body["currentSpeechStart"] != nil {
		t.Errorf("currentSpeechStart = %v, want null after end", body["currentSpeechStart"])
	}
	if len(body["speakersList"].([]any)) != 0 {
		t.Errorf("speakersList = %v, want empty", body["speakersList"])
	}
}

func TestChatAndChits(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/session/chat", gin.H{"userId": "u1", "country": "France", "message": "Hello"})
	expectStatus(t, w, http.StatusCreated)
	w = doJSON(t, r, http.MethodPost, "/api/session/chat", gin.H{"userId": "u2", "country": "Chile", "message": "Motion to caucus", "isMotion": true})
	expectStatus(t, w, http.StatusCreated)

	w = doJSON(t, r, http.MethodPost, "/api/session/chits", gin.H{
		"fromUserId": "u1", "toUserId": "u2",
		"fromCountry": "France", "toCountry": "Chile",
		"message": "Support our draft?",
	})
	expectStatus(t, w, http.StatusCreated)
	if decode(t, w)["status"] != "chit sent" {
		t.Errorf("chit ack = %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/session/current", nil)
	body := decode(t, w)

	chatLog := body["chatLog"].([]any)
	if len(chatLog) != 2 {
		t.Fatalf("chatLog = %v, want 2 entries", chatLog)
	}
	first, second := chatLog[0].(map[string]any), chatLog[1].(map[string]any)
	if first["message"] != "Hello" || first["type"] != "chat" {
		t.Errorf("first chat = %v", first)
	}
	if second["type"] != "motion" {
		t.Errorf("second chat type = %v, want motion", second["type"])
	}

	chits := body["chits"].([]any)
	if len(chits) != 1 {
		t.Fatalf("chits = %v, want 1 entry", chits)
	}
	chit := chits[0].(map[string]any)
	if chit["tag"] != "General" || chit["isRead"] != false || chit["toCountry"] != "Chile" {
		t.Errorf("chit = %v", chit)
	}
}

func TestPatchSessionConfigIsOpaque(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPatch, "/api/session/current", gin.H{
		"sessionConfig": gin.H{"gslTime": 60, "committee": "UNSC"},
	})
	expectStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodGet, "/api/session/current", nil)
	cfg := decode(t, w)["sessionConfig"].(map[string]any)
	if cfg["gslTime"] != float64(60) || cfg["committee"] != "UNSC" {
		t.Errorf("sessionConfig = %v", cfg)
	}
}

func TestPatchChairNullClearsChair(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodPatch, "/api/session/current", gin.H{"chairUserId": "c1"})
	expectStatus(t, w, http.StatusOK)

	// 未提供 chairUserId 時主席不變
	w = doJSON(t, r, http.MethodPatch, "/api/session/current", gin.H{"state": "debating"})
	expectStatus(t, w, http.StatusOK)
	w = doJSON(t, r, http.MethodGet, "/api/session/current", nil)
	if chair := decode(t, w)["chairUserId"]; chair != "c1" {
		t.Fatalf("chairUserId = %v, want c1", chair)
	}

	w = doJSON(t, r, http.MethodPatch, "/api/session/current", gin.H{"chairUserId": nil})
	expectStatus(t, w, http.StatusOK)
	w = doJSON(t, r, http.MethodGet, "/api/session/current", nil)
	body := decode(t, w)
	if chair, ok := body["chairUserId"]; !ok || chair != nil {
		t.Errorf("chairUserId = %v, want null", chair)
	}
	if body["state"] != "debating" {
		t.Errorf("state = %v, want debating", body["state"])
	}

	w = doJSON(t, r, http.MethodPatch, "/api/session/current", gin.H{"chairUserId": 42})
	expectStatus(t, w, http.StatusBadRequest)
}

func TestGetDelegate(t *testing.T) {
	r := setupRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/session/delegates/u1", nil)
	expectStatus(t, w, http.StatusNotFound)
	if decode(t, w)["code"] != "delegate_not_found" {
		t.Errorf("unknown delegate body = %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/session/join", gin.H{"userId": "u1", "country": "Kenya", "role": "delegate"})
	expectStatus(t, w, http.StatusOK)
	w = doJSON(t, r, http.MethodPost, "/api/session/mark", gin.H{"userId": "u1", "score": 4})
	expectStatus(t, w, http.StatusOK)

	w = doJSON(t, r, http.MethodGet, "/api/session/delegates/u1", nil)
	expectStatus(t, w, http.StatusOK)
	body := decode(t, w)
	if body["userId"] != "u1" || body["country"] != "Kenya" || body["role"] != "delegate" || body["score"] != float64(4) {
		t.Errorf("delegate = %v", body)
	}
}
