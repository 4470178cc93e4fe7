package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/navan-labs/navan/internal/assistant"
	"github.com/navan-labs/navan/internal/llm"
	"github.com/navan-labs/navan/internal/weather"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	asst := assistant.New(slog.Default(), llm.Offline{}, weather.Offline{})
	s := NewServer("127.0.0.1", 0, asst, slog.Default())
	ts := httptest.NewServer(s.routes())
	t.Cleanup(ts.Close)
	return s, ts
}

func postChat(t *testing.T, url string, req ChatRequest) ChatResponse {
	t.Helper()
	body, _ := json.Marshal(req)
	resp, err := http.Post(url+"/api/chat", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /api/chat: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST /api/chat status = %d, want 200", resp.StatusCode)
	}
	var out ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestChatEndpoint(t *testing.T) {
	_, ts := newTestServer(t)

	res := postChat(t, ts.URL, ChatRequest{Message: "I'm going to Rome next week"})
	if res.SessionID == "" {
		t.Error("no session ID in response")
	}
	if res.Intent != "destination" {
		t.Errorf("intent = %q, want destination", res.Intent)
	}
	if res.Reply == "" {
		t.Error("empty reply")
	}

	// The second turn reuses the session and keeps its context.
	res2 := postChat(t, ts.URL, ChatRequest{SessionID: res.SessionID, Message: "what's the weather?"})
	if res2.SessionID != res.SessionID {
		t.Errorf("session ID changed between turns: %s → %s", res.SessionID, res2.SessionID)
	}
	if res2.Intent != "weather" {
		t.Errorf("intent = %q, want weather", res2.Intent)
	}
	if !strings.Contains(res2.Reply, "Rome") {
		t.Errorf("weather reply lost the city: %q", res2.Reply)
	}
}

func TestChatEndpointBadJSON(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/chat", "application/json", strings.NewReader("{nope"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestHealthAndVersion(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/health status = %d, want 200", resp.StatusCode)
	}

	resp, err = http.Get(ts.URL + "/api/version")
	if err != nil {
		t.Fatalf("GET /api/version: %v", err)
	}
	defer resp.Body.Close()
	var info map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatalf("decode version: %v", err)
	}
	if info["version"] == "" {
		t.Error("version info missing version field")
	}
}

func TestSessionHistoryFromMemory(t *testing.T) {
	_, ts := newTestServer(t)

	res := postChat(t, ts.URL, ChatRequest{Message: "hello"})

	resp, err := http.Get(ts.URL + "/api/sessions/" + res.SessionID + "/history")
	if err != nil {
		t.Fatalf("GET history: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("history status = %d, want 200", resp.StatusCode)
	}
	var out struct {
		SessionID string `json:"session_id"`
		History   []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"history"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if len(out.History) != 2 {
		t.Fatalf("history = %d entries, want user+assistant", len(out.History))
	}
	if out.History[0].Role != "user" || out.History[0].Content != "hello" {
		t.Errorf("first entry = %+v", out.History[0])
	}
}

func TestSessionHistoryUnknown(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/sessions/nope/history")
	if err != nil {
		t.Fatalf("GET history: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestWebSocketChat(t *testing.T) {
	_, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial websocket: %v", err)
	}
	defer conn.Close()

	if err := conn.WriteJSON(ChatRequest{Message: "I'm going to Rome next week"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var res ChatResponse
	if err := conn.ReadJSON(&res); err != nil {
		t.Fatalf("read: %v", err)
	}
	if res.SessionID == "" || res.Reply == "" {
		t.Fatalf("first frame = %+v, want session and reply", res)
	}

	// The connection carries the session; a follow-up keeps context.
	if err := conn.WriteJSON(ChatRequest{Message: "what's the weather?"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var res2 ChatResponse
	if err := conn.ReadJSON(&res2); err != nil {
		t.Fatalf("read: %v", err)
	}
	if res2.SessionID != res.SessionID {
		t.Errorf("session changed across frames: %s → %s", res.SessionID, res2.SessionID)
	}
	if !strings.Contains(res2.Reply, "Rome") {
		t.Errorf("weather reply lost the city: %q", res2.Reply)
	}
}

func TestRootInfoAlongsideChatUI(t *testing.T) {
	// Root is method-restricted while /chat is not; both must register
	// on one mux and answer independently.
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET /: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("/ status = %d, want 200", resp.StatusCode)
	}
	var info map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		t.Fatalf("decode root info: %v", err)
	}
	if info["name"] != "Navan" {
		t.Errorf("root info name = %q, want Navan", info["name"])
	}

	// An unknown path falls through to the mux's 404, not the root
	// handler.
	resp2, err := http.Get(ts.URL + "/nope")
	if err != nil {
		t.Fatalf("GET /nope: %v", err)
	}
	resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Errorf("/nope status = %d, want 404", resp2.StatusCode)
	}
}

func TestWebUIServed(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/chat")
	if err != nil {
		t.Fatalf("GET /chat: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/chat status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("/chat content type = %q, want HTML", ct)
	}
}
