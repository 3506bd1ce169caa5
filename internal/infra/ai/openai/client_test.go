package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/osintmap/internal/domain/ai"
	"github.com/bryanwahyu/osintmap/internal/domain/findings"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return NewClientWithConfig(cfg, "gpt-4o-mini")
}

func TestBrief(t *testing.T) {
	var got openai.ChatCompletionRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-1",
			"object":  "chat.completion",
			"created": 1,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message": map[string]any{
					"role":    "assistant",
					"content": `{"summary":"One exposed host.","highlights":["8.8.8.8"]}`,
				},
			}},
		})
	})

	b, err := c.Brief(context.Background(), []findings.Finding{{Type: findings.CategoryIP, Value: "8.8.8.8", Source: "Shodan"}})
	require.NoError(t, err)
	assert.Equal(t, "One exposed host.", b.Summary)
	assert.Equal(t, []string{"8.8.8.8"}, b.Highlights)
	assert.Equal(t, "gpt-4o-mini", b.Model)
	assert.Equal(t, 1, b.Findings)

	assert.Equal(t, 1024, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Contains(t, got.Messages[1].Content, "8.8.8.8")
}

func TestBriefQuotaExceeded(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"quota reached","type":"insufficient_quota","code":"insufficient_quota"}}`))
	})

	_, err := c.Brief(context.Background(), nil)
	assert.ErrorIs(t, err, ai.ErrQuotaExceeded)
}
