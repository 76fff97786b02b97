package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
	"github.com/joseph-ayodele/docanalyzer/internal/core/llm"
)

func chatResponse(content string) []byte {
	b, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
		"usage": map[string]any{"prompt_tokens": 10, "completion_tokens": 5, "total_tokens": 15},
	})
	return b
}

func newTestServer(t *testing.T, status int, reply []byte, payload *map[string]any) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		if payload != nil {
			if err := json.Unmarshal(body, payload); err != nil {
				t.Errorf("unmarshal body: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write(reply)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestCompleteSuccess(t *testing.T) {
	var payload map[string]any
	reply := "```json\n{\"title\":\"Durable Power of Attorney\",\"page_count\":4,\"document_date\":null}\n```"
	server := newTestServer(t, http.StatusOK, chatResponse(reply), &payload)

	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, nil)
	got, raw, err := client.Complete(context.Background(), llm.CompletionRequest{
		System:     "system",
		Prompt:     "extract please",
		SchemaKeys: []string{"title", "page_count", "document_date"},
	})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got["title"] != "Durable Power of Attorney" || got["page_count"] != "4" || got["document_date"] != "" {
		t.Errorf("unexpected fields %v", got)
	}
	if !strings.HasPrefix(string(raw), "{") {
		t.Errorf("raw should be bare JSON, got %q", raw)
	}

	if got, _ := payload["model"].(string); got != DefaultModel {
		t.Errorf("expected model %s, got %q", DefaultModel, got)
	}
	if got, ok := payload["temperature"].(float64); !ok || got != 0 {
		t.Errorf("expected temperature 0, got %v", payload["temperature"])
	}
	rf, _ := payload["response_format"].(map[string]any)
	if rf["type"] != "json_object" {
		t.Errorf("expected json_object response format, got %v", payload["response_format"])
	}
	msgs, _ := payload["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system+user messages, got %d", len(msgs))
	}
}

func TestCompleteNotJSON(t *testing.T) {
	server := newTestServer(t, http.StatusOK, chatResponse("Sorry, I can't read that."), nil)
	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, nil)

	_, _, err := client.Complete(context.Background(), llm.CompletionRequest{Prompt: "x"})
	if !common.IsExternalService(err) {
		t.Fatalf("expected external service error, got %v", err)
	}
}

func TestCompleteHTTPError(t *testing.T) {
	server := newTestServer(t, http.StatusInternalServerError,
		[]byte(`{"error":{"message":"upstream down","type":"server_error"}}`), nil)
	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, nil)

	_, _, err := client.Complete(context.Background(), llm.CompletionRequest{Prompt: "x"})
	if !common.IsExternalService(err) {
		t.Fatalf("expected external service error, got %v", err)
	}
	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error should carry the status: %v", err)
	}
}

func TestVision(t *testing.T) {
	var payload map[string]any
	server := newTestServer(t, http.StatusOK, chatResponse(" 03/04/2021 "), &payload)
	client := NewClient(Config{APIKey: "test-key", BaseURL: server.URL}, nil)

	got, err := client.Vision(context.Background(), "find the date", []byte("png-bytes"), "image/png")
	if err != nil {
		t.Fatalf("Vision() error = %v", err)
	}
	if got != "03/04/2021" {
		t.Errorf("Vision() = %q", got)
	}
	if got, _ := payload["max_completion_tokens"].(float64); got != defaultVisionMaxTokens {
		t.Errorf("max_completion_tokens = %v", payload["max_completion_tokens"])
	}
	body, _ := json.Marshal(payload["messages"])
	if !strings.Contains(string(body), "data:image/png;base64,") {
		t.Errorf("image not inlined: %s", body)
	}
}
