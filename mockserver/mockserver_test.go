package mockserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/contentgen/hotlist"
	"github.com/kbukum/contentgen/llm"
	_ "github.com/kbukum/contentgen/llm/ollama"
	"github.com/kbukum/contentgen/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(cfg Config, opts ...Option) *Server {
	return New(cfg, logger.Nop(), opts...)
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHotList_Pages(t *testing.T) {
	s := newTestServer(Config{})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/weibo/hot?page=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var page HotPage
	if err := json.Unmarshal(rec.Body.Bytes(), &page); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].TopicID != "t-1001" {
		t.Errorf("page 1 = %+v", page.Data)
	}

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/weibo/hot?page=2", nil))
	if body := strings.TrimSpace(rec.Body.String()); body != `{"data":[]}` {
		t.Errorf("page 2 body = %s", body)
	}

	rec = serve(s, httptest.NewRequest(http.MethodGet, "/weibo/hot?page=zero", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad page status = %d", rec.Code)
	}
	if s.HotRequests() != 2 {
		t.Errorf("HotRequests = %d, want 2", s.HotRequests())
	}
}

func TestHotList_PageSize(t *testing.T) {
	topics := []HotItem{{TopicID: "a", Title: "A"}, {TopicID: "b", Title: "B"}, {TopicID: "c", Title: "C"}}
	s := newTestServer(Config{PageSize: 2}, WithTopics(topics))

	for page, want := range map[string]int{"1": 2, "2": 1, "3": 0} {
		rec := serve(s, httptest.NewRequest(http.MethodGet, "/weibo/hot?page="+page, nil))
		var p HotPage
		json.Unmarshal(rec.Body.Bytes(), &p)
		if len(p.Data) != want {
			t.Errorf("page %s has %d topics, want %d", page, len(p.Data), want)
		}
	}
}

func TestHotList_Token(t *testing.T) {
	s := newTestServer(Config{Token: "mock-token"})

	rec := serve(s, httptest.NewRequest(http.MethodGet, "/weibo/hot", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status without token = %d", rec.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/weibo/hot", nil)
	req.Header.Set("Authorization", "Bearer mock-token")
	if rec := serve(s, req); rec.Code != http.StatusOK {
		t.Errorf("status with token = %d", rec.Code)
	}
}

func TestChat(t *testing.T) {
	s := newTestServer(Config{})

	body := `{"model":"qwen","stream":false,"messages":[{"role":"system","content":"s"},{"role":"user","content":"- 热点标题：测试话题"}]}`
	rec := serve(s, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body)
	}
	var resp struct {
		Model   string      `json:"model"`
		Message llm.Message `json:"message"`
		Done    bool        `json:"done"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Model != "qwen" || !resp.Done || resp.Message.Role != "assistant" {
		t.Errorf("resp = %+v", resp)
	}
	if !strings.HasPrefix(resp.Message.Content, "# 测试话题解读") {
		t.Errorf("content = %q", resp.Message.Content)
	}
	if s.Model().Calls() != 1 {
		t.Errorf("model calls = %d", s.Model().Calls())
	}
}

func TestChat_BadRequests(t *testing.T) {
	s := newTestServer(Config{})
	for _, body := range []string{
		`not json`,
		`{"messages":[{"role":"system","content":"only system"}]}`,
		`{"stream":true,"messages":[{"role":"user","content":"x"}]}`,
	} {
		rec := serve(s, httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body)))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, rec.Code)
		}
	}
}

func TestStartStop_WithClients(t *testing.T) {
	s := newTestServer(Config{Token: "mock-token"})
	ctx := context.Background()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop(ctx)

	src, err := hotlist.New(hotlist.Config{Endpoint: s.URL() + "/weibo/hot", Token: "mock-token", MaxPages: 3},
		hotlist.WithLogger(logger.Nop()))
	if err != nil {
		t.Fatalf("hotlist.New: %v", err)
	}
	topic, ok, err := src.Next(ctx)
	if err != nil || !ok || topic.ID != "t-1001" {
		t.Fatalf("Next = %+v, %v, %v", topic, ok, err)
	}
	if _, ok, _ := src.Next(ctx); ok {
		t.Error("expected end of stream after the fixture topic")
	}

	adapter, err := llm.New(llm.Config{Dialect: "ollama", BaseURL: s.URL(), Model: "qwen"})
	if err != nil {
		t.Fatalf("llm.New: %v", err)
	}
	if !adapter.IsAvailable(ctx) {
		t.Error("adapter should see the server as available")
	}
	resp, err := adapter.Generate(ctx, llm.Request{RequestID: "r-1", UserPrompt: "JSON 格式要求"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.RequestID != "r-1" || !strings.Contains(resp.Content, `"segments"`) {
		t.Errorf("resp = %+v", resp)
	}
}
