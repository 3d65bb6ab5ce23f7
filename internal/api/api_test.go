package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall/studyhall-server/internal/ai"
	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/store"
	"github.com/studyhall/studyhall-server/internal/store/memory"
)

// stubCompletions is a canned AI provider for handler tests.
type stubCompletions struct {
	available   bool
	backend     string
	reply       string
	replyErr    error
	jsonPayload string
	jsonErr     error
}

func (s *stubCompletions) Available() bool       { return s.available }
func (s *stubCompletions) ActiveBackend() string { return s.backend }

func (s *stubCompletions) Complete(context.Context, []ai.Message) (string, error) {
	return s.reply, s.replyErr
}

func (s *stubCompletions) CompleteJSON(_ context.Context, _ []ai.Message, out any) error {
	if s.jsonErr != nil {
		return s.jsonErr
	}
	return json.Unmarshal([]byte(s.jsonPayload), out)
}

type testEnv struct {
	server *httptest.Server
	store  store.Store
	ai     *stubCompletions
}

func newTestEnv(t *testing.T, seeded bool) *testEnv {
	t.Helper()
	var st store.Store
	if seeded {
		st = memory.NewSeeded()
	} else {
		st = memory.New()
	}
	stub := &stubCompletions{available: true, backend: "OpenAI"}
	router := NewRouter(Deps{
		Store:       st,
		Completions: stub,
		UploadDir:   t.TempDir(),
		IsHealthy:   func() bool { return true },
		Log:         zerolog.Nop(),
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return &testEnv{server: srv, store: st, ai: stub}
}

func (e *testEnv) post(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(e.server.URL+path, "application/json", bytes.NewReader(b))
	require.NoError(t, err)
	return resp
}

func (e *testEnv) put(t *testing.T, path string, body any) *http.Response {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPut, e.server.URL+path, bytes.NewReader(b))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()
	resp, err := http.Get(e.server.URL + path)
	require.NoError(t, err)
	return resp
}

func (e *testEnv) delete(t *testing.T, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodDelete, e.server.URL+path, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t, false)

	resp := env.post(t, "/api/auth/register", map[string]any{
		"username": "jordan",
		"password": "password123",
		"name":     "Jordan",
		"email":    "jordan@example.com",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		User map[string]any `json:"user"`
	}
	decodeBody(t, resp, &created)
	assert.Equal(t, "jordan", created.User["username"])
	assert.NotContains(t, created.User, "password")
	assert.EqualValues(t, 1, created.User["level"])

	// Duplicate username conflicts.
	resp = env.post(t, "/api/auth/register", map[string]any{
		"username": "jordan",
		"password": "different1",
		"email":    "other@example.com",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = env.post(t, "/api/auth/login", map[string]any{"username": "jordan", "password": "password123"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.post(t, "/api/auth/login", map[string]any{"username": "jordan", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestGetUserWithBadges(t *testing.T) {
	env := newTestEnv(t, true)

	resp := env.get(t, "/api/user/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var profile struct {
		Username string         `json:"username"`
		Badges   []*model.Badge `json:"badges"`
	}
	decodeBody(t, resp, &profile)
	assert.Equal(t, "alex", profile.Username)
	assert.Len(t, profile.Badges, 3)

	resp = env.get(t, "/api/user/999")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestMaterialLifecycle(t *testing.T) {
	env := newTestEnv(t, false)

	resp := env.post(t, "/api/materials", map[string]any{
		"userId": 1,
		"title":  "Linear Algebra.pdf",
		"file":   base64.StdEncoding.EncodeToString([]byte("%PDF-1.4 fake")),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var mat model.StudyMaterial
	decodeBody(t, resp, &mat)
	assert.Equal(t, "pdf", mat.FileType)
	assert.Contains(t, mat.FilePath, "/uploads/")

	// Missing file is rejected before anything is stored.
	resp = env.post(t, "/api/materials", map[string]any{"userId": 1, "title": "No file"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.get(t, fmt.Sprintf("/api/materials/detail/%d", mat.ID))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.put(t, fmt.Sprintf("/api/materials/%d", mat.ID), map[string]any{"progress": 60})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated model.StudyMaterial
	decodeBody(t, resp, &updated)
	assert.Equal(t, 60, updated.Progress)

	resp = env.put(t, fmt.Sprintf("/api/materials/%d", mat.ID), map[string]any{"progress": 150})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.delete(t, fmt.Sprintf("/api/materials/%d", mat.ID))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = env.get(t, fmt.Sprintf("/api/materials/detail/%d", mat.ID))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestMaterialUploadWritesFile(t *testing.T) {
	dir := t.TempDir()
	st := memory.New()
	router := NewRouter(Deps{
		Store:       st,
		Completions: &stubCompletions{},
		UploadDir:   dir,
		IsHealthy:   func() bool { return true },
		Log:         zerolog.Nop(),
	})
	srv := httptest.NewServer(router)
	defer srv.Close()

	body, _ := json.Marshal(map[string]any{
		"userId": 1,
		"title":  "Notes.txt",
		"file":   base64.StdEncoding.EncodeToString([]byte("hello")),
	})
	resp, err := http.Post(srv.URL+"/api/materials", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var mat model.StudyMaterial
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&mat))
	resp.Body.Close()

	stored, err := os.ReadFile(filepath.Join(dir, filepath.Base(mat.FilePath)))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(stored))
	assert.Equal(t, ".txt", filepath.Ext(mat.FilePath))
}

func TestSessionEndpoints(t *testing.T) {
	env := newTestEnv(t, false)
	now := time.Now().UTC()

	resp := env.post(t, "/api/sessions", map[string]any{
		"userId":    1,
		"title":     "Calculus review",
		"subject":   "Math",
		"startTime": now.Add(2 * time.Hour).Format(time.RFC3339),
		"endTime":   now.Add(3 * time.Hour).Format(time.RFC3339),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sess model.StudySession
	decodeBody(t, resp, &sess)

	// Inverted window is a 400.
	resp = env.post(t, "/api/sessions", map[string]any{
		"userId":    1,
		"title":     "Backwards",
		"subject":   "Math",
		"startTime": now.Add(3 * time.Hour).Format(time.RFC3339),
		"endTime":   now.Add(2 * time.Hour).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.get(t, "/api/sessions/upcoming/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var upcoming []*model.StudySession
	decodeBody(t, resp, &upcoming)
	require.Len(t, upcoming, 1)
	assert.Equal(t, sess.ID, upcoming[0].ID)

	// Completing the session removes it from upcoming.
	resp = env.put(t, fmt.Sprintf("/api/sessions/%d", sess.ID), map[string]any{"isCompleted": true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.get(t, "/api/sessions/upcoming/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	upcoming = nil
	decodeBody(t, resp, &upcoming)
	assert.Empty(t, upcoming)
}

func TestFlashcardEndpoints(t *testing.T) {
	env := newTestEnv(t, false)

	// Referencing an unknown material is a validation failure.
	resp := env.post(t, "/api/flashcards", map[string]any{
		"userId":     1,
		"materialId": 42,
		"question":   "Q",
		"answer":     "A",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = env.post(t, "/api/flashcards", map[string]any{
		"userId":   1,
		"question": "What is Big-O?",
		"answer":   "An upper bound on growth rate.",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var card model.Flashcard
	decodeBody(t, resp, &card)
	assert.Nil(t, card.MaterialID)

	resp = env.get(t, "/api/flashcards/1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cards []*model.Flashcard
	decodeBody(t, resp, &cards)
	assert.Len(t, cards, 1)

	resp = env.delete(t, fmt.Sprintf("/api/flashcards/%d", card.ID))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = env.delete(t, fmt.Sprintf("/api/flashcards/%d", card.ID))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestConversationEndpoints(t *testing.T) {
	env := newTestEnv(t, false)

	resp := env.post(t, "/api/conversations", map[string]any{
		"userId":   1,
		"messages": []map[string]string{{"role": "user", "content": "hi"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var conv model.Conversation
	decodeBody(t, resp, &conv)

	resp = env.put(t, fmt.Sprintf("/api/conversations/%d", conv.ID), map[string]any{
		"messages": []map[string]string{
			{"role": "user", "content": "hi"},
			{"role": "assistant", "content": "hello"},
		},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var updated model.Conversation
	decodeBody(t, resp, &updated)
	assert.Len(t, updated.Messages, 2)

	resp = env.put(t, "/api/conversations/999", map[string]any{"messages": []map[string]string{}})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAssistantStatusEndpoint(t *testing.T) {
	env := newTestEnv(t, false)
	env.ai.available = true
	env.ai.backend = "OpenAI"

	resp := env.get(t, "/api/ai/status")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status struct {
		Available bool   `json:"available"`
		Service   string `json:"service"`
	}
	decodeBody(t, resp, &status)
	assert.True(t, status.Available)
	assert.Equal(t, "OpenAI", status.Service)
}

func TestAssistantChatEndpoint(t *testing.T) {
	env := newTestEnv(t, false)
	env.ai.reply = "Entropy measures disorder."

	resp := env.post(t, "/api/ai/chat", map[string]any{"userId": 1, "message": "What is entropy?"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out struct {
		Response     string              `json:"response"`
		Conversation *model.Conversation `json:"conversation"`
	}
	decodeBody(t, resp, &out)
	assert.Equal(t, "Entropy measures disorder.", out.Response)
	require.NotNil(t, out.Conversation)
	assert.Len(t, out.Conversation.Messages, 3)

	// Second turn continues the same conversation.
	resp = env.post(t, "/api/ai/chat", map[string]any{
		"userId":         1,
		"message":        "Tell me more",
		"conversationId": out.Conversation.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &out)
	assert.Len(t, out.Conversation.Messages, 5)

	resp = env.post(t, "/api/ai/chat", map[string]any{"userId": 1})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestAssistantChatNoBackend(t *testing.T) {
	env := newTestEnv(t, false)
	env.ai.replyErr = ai.ErrNoBackend

	resp := env.post(t, "/api/ai/chat", map[string]any{"userId": 1, "message": "hi"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	resp.Body.Close()
}

func TestAssistantFlashcardsEndpoint(t *testing.T) {
	env := newTestEnv(t, false)
	env.ai.jsonPayload = `{"flashcards":[{"question":"Q1","answer":"A1"}]}`

	resp := env.post(t, "/api/ai/flashcards", map[string]any{"userId": 1, "topic": "physics", "count": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cards []*model.Flashcard
	decodeBody(t, resp, &cards)
	require.Len(t, cards, 1)
	assert.Equal(t, "Q1", cards[0].Question)
}

func TestAssistantFlashcardsDegradedFallback(t *testing.T) {
	env := newTestEnv(t, false)
	env.ai.jsonErr = &ai.ParseError{Backend: "Gemini", Err: fmt.Errorf("no json found")}
	env.ai.reply = "Physics is the study of matter and energy."

	resp := env.post(t, "/api/ai/flashcards", map[string]any{"userId": 1, "topic": "physics"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var cards []*model.Flashcard
	decodeBody(t, resp, &cards)
	require.Len(t, cards, 1)
	assert.Equal(t, "Key concepts about physics?", cards[0].Question)
}

func TestAssistantStudyPlanEndpoint(t *testing.T) {
	env := newTestEnv(t, false)
	env.ai.jsonPayload = `{"sessions":[{"title":"Day 1","subject":"Math","startTime":"2026-09-02T09:00:00Z","endTime":"2026-09-02T11:00:00Z"}]}`

	resp := env.post(t, "/api/ai/study-plan", map[string]any{
		"userId": 1, "topics": []string{"Math"}, "durationDays": 1, "hoursPerDay": 2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var sessions []*model.StudySession
	decodeBody(t, resp, &sessions)
	assert.Len(t, sessions, 1)

	env.ai.jsonErr = &ai.ParseError{Backend: "Gemini", Err: fmt.Errorf("no json found")}
	resp = env.post(t, "/api/ai/study-plan", map[string]any{
		"userId": 1, "topics": []string{"Math"}, "durationDays": 1, "hoursPerDay": 2,
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	resp.Body.Close()
}

func TestHealthEndpoint(t *testing.T) {
	env := newTestEnv(t, false)

	resp := env.get(t, "/api/health")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Status string `json:"status"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "healthy", body.Status)
}
