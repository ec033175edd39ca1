package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/Dozuki/rag-guide-chat-poc/internal/answer"
	"github.com/Dozuki/rag-guide-chat-poc/internal/config"
	"github.com/Dozuki/rag-guide-chat-poc/internal/server"
	"github.com/Dozuki/rag-guide-chat-poc/internal/store"
	"github.com/Dozuki/rag-guide-chat-poc/pkg/api"
)

type failingGen struct{}

func (failingGen) Generate(context.Context, answer.Question) (string, error) {
	return "", errors.New("model endpoint down")
}

func newTestServer(t *testing.T, gen answer.Generator) *httptest.Server {
	t.Helper()
	st, err := store.Open(context.Background(), "mem://")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.UpsertChunks(context.Background(), []api.Chunk{
		{ID: "1", Source: "hansaw_guide_1", GuideID: 1, Text: "Loosen the blade bolt with a 5mm hex wrench.", GuideTitle: "Blade swap", GuideURL: "https://example.com/g/1"},
		{ID: "2", Source: "hansaw_guide_2", GuideID: 2, Text: "Charge the battery for four hours before first use."},
	}))

	cfg := viper.New()
	for _, opt := range config.Options() {
		cfg.SetDefault(opt.Key, opt.Default)
	}
	logger := log.New(os.Stderr, "", 0)
	svc := &answer.Service{Store: st, Gen: gen, Log: logger, TopK: 5}
	ts := httptest.NewServer(server.New(cfg, st, svc, logger).Router())
	t.Cleanup(ts.Close)
	return ts
}

func postChat(t *testing.T, ts *httptest.Server, req api.ChatRequest) *http.Response {
	t.Helper()
	body, err := json.Marshal(req)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+"/api/chat", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestChatEndpoint(t *testing.T) {
	ts := newTestServer(t, answer.Extractive{})

	resp := postChat(t, ts, api.ChatRequest{Messages: []api.ChatMessage{
		{Role: api.RoleUser, Content: "how do I loosen the blade bolt?"},
	}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res api.QueryResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.Contains(t, res.Answer, "Loosen the blade bolt")
	require.Contains(t, res.AnswerHTML, "<h2>From the documentation</h2>")
	require.Contains(t, res.AnswerHTML, "<ul><li>")
	require.NotContains(t, res.AnswerHTML, "##")
	require.Equal(t, []string{"hansaw_guide_1"}, res.Sources)
	require.Len(t, res.SourceGuides, 1)
	require.Equal(t, "Blade swap", res.SourceGuides[0].Title)
	require.Greater(t, res.NumContexts, 0)
}

func TestChatUsesLatestUserMessage(t *testing.T) {
	ts := newTestServer(t, answer.Extractive{})

	resp := postChat(t, ts, api.ChatRequest{Messages: []api.ChatMessage{
		{Role: api.RoleUser, Content: "charge the battery"},
		{Role: api.RoleAssistant, Content: "Charge it for four hours."},
		{Role: api.RoleUser, Content: "loosen the blade bolt"},
	}})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res api.QueryResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	require.Equal(t, []string{"hansaw_guide_1"}, res.Sources)
}

func TestChatRejectsBadRequests(t *testing.T) {
	ts := newTestServer(t, answer.Extractive{})

	cases := []struct {
		name string
		req  api.ChatRequest
	}{
		{"no messages", api.ChatRequest{}},
		{"no user message", api.ChatRequest{Messages: []api.ChatMessage{
			{Role: api.RoleAssistant, Content: "hello"},
		}}},
		{"blank user message", api.ChatRequest{Messages: []api.ChatMessage{
			{Role: api.RoleUser, Content: "   "},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := postChat(t, ts, tc.req)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}

	resp, err := http.Get(ts.URL + "/api/chat")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestChatGeneratorFailure(t *testing.T) {
	ts := newTestServer(t, failingGen{})

	resp := postChat(t, ts, api.ChatRequest{Messages: []api.ChatMessage{
		{Role: api.RoleUser, Content: "loosen the blade bolt"},
	}})
	require.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestCORS(t *testing.T) {
	ts := newTestServer(t, answer.Extractive{})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/chat", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://app.example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCORSAllowList(t *testing.T) {
	st, err := store.Open(context.Background(), "mem://")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	cfg := viper.New()
	cfg.Set("cors.allowed_origins", "https://a.example.com, https://b.example.com")
	logger := log.New(os.Stderr, "", 0)
	svc := &answer.Service{Store: st, Gen: answer.Extractive{}, Log: logger}
	ts := httptest.NewServer(server.New(cfg, st, svc, logger).Router())
	t.Cleanup(ts.Close)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/chat", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "https://b.example.com")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "https://b.example.com", resp.Header.Get("Access-Control-Allow-Origin"))

	req2, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/chat", nil)
	require.NoError(t, err)
	req2.Header.Set("Origin", "https://evil.example.com")
	resp2, err := http.DefaultClient.Do(req2)
	require.NoError(t, err)
	defer resp2.Body.Close()
	require.Empty(t, resp2.Header.Get("Access-Control-Allow-Origin"))
}

func TestStatusAndHealth(t *testing.T) {
	ts := newTestServer(t, answer.Extractive{})

	resp, err := http.Get(ts.URL + "/api/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var status struct {
		Documents int `json:"documents"`
		Guides    int `json:"guides"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&status))
	require.Equal(t, 2, status.Documents)
	require.Equal(t, 2, status.Guides)

	hr, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer hr.Body.Close()
	require.Equal(t, http.StatusOK, hr.StatusCode)
}
