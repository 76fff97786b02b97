package vertex

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"cloud.google.com/go/vertexai/genai"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
	"github.com/joseph-ayodele/docanalyzer/internal/core/llm"
)

type fakeModel struct {
	reply string
	err   error
	parts []genai.Part
}

func (f *fakeModel) GenerateContent(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.parts = parts
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: []genai.Part{genai.Text(f.reply)}}}},
	}, nil
}

func newTestClient(json, vision *fakeModel) *Client {
	return &Client{
		cfg:    Config{Project: "p", Location: DefaultLocation, Model: DefaultModel},
		json:   json,
		vision: vision,
		logger: slog.New(slog.DiscardHandler),
	}
}

func TestComplete(t *testing.T) {
	model := &fakeModel{reply: "```json\n{\"title\": \"POA\", \"page_count\": 3}\n```"}
	c := newTestClient(model, nil)

	got, raw, err := c.Complete(context.Background(), llm.CompletionRequest{System: "sys", Prompt: "extract"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got["title"] != "POA" || got["page_count"] != "3" {
		t.Errorf("unexpected fields %v", got)
	}
	if len(raw) == 0 {
		t.Error("expected raw JSON")
	}
	if txt, ok := model.parts[0].(genai.Text); !ok || string(txt) != "sys\n\nextract" {
		t.Errorf("unexpected prompt part %v", model.parts[0])
	}
}

func TestCompleteErrors(t *testing.T) {
	c := newTestClient(&fakeModel{err: errors.New("unavailable")}, nil)
	if _, _, err := c.Complete(context.Background(), llm.CompletionRequest{Prompt: "x"}); !common.IsExternalService(err) {
		t.Fatalf("expected external service error, got %v", err)
	}

	c = newTestClient(&fakeModel{reply: "I cannot help with that"}, nil)
	if _, _, err := c.Complete(context.Background(), llm.CompletionRequest{Prompt: "x"}); !common.IsExternalService(err) {
		t.Fatalf("expected external service error for prose reply, got %v", err)
	}
}

func TestVision(t *testing.T) {
	model := &fakeModel{reply: " March 4, 2021 \n"}
	c := newTestClient(nil, model)

	got, err := c.Vision(context.Background(), "date?", []byte{0x89, 'P', 'N', 'G'}, "")
	if err != nil {
		t.Fatalf("Vision: %v", err)
	}
	if got != "March 4, 2021" {
		t.Errorf("Vision = %q", got)
	}
	blob, ok := model.parts[1].(genai.Blob)
	if !ok || blob.MIMEType != "image/png" || len(blob.Data) != 4 {
		t.Errorf("unexpected image part %#v", model.parts[1])
	}
}

func TestNewClientRequiresProject(t *testing.T) {
	if _, err := NewClient(context.Background(), Config{}, nil); !common.IsInput(err) {
		t.Fatalf("expected config error, got %v", err)
	}
}
