package vertex

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"cloud.google.com/go/vertexai/genai"
	"github.com/google/uuid"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
	"github.com/joseph-ayodele/docanalyzer/internal/core/llm"
)

const (
	DefaultModel    = "gemini-2.0-flash"
	DefaultLocation = "us-central1"
)

// Config for the Vertex AI Gemini client.
type Config struct {
	Project     string
	Location    string
	Model       string
	Temperature float64
}

// generator is the part of *genai.GenerativeModel we call.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Client implements llm.Completer on Vertex AI.
type Client struct {
	cfg    Config
	base   *genai.Client
	json   generator
	vision generator
	logger *slog.Logger
}

var _ llm.Completer = (*Client)(nil)

// NewClient dials Vertex AI with application default credentials.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Location == "" {
		cfg.Location = DefaultLocation
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Project == "" {
		return nil, common.NewConfigError("vertex provider needs a GCP project (llm.vertex_project or GOOGLE_CLOUD_PROJECT)", nil)
	}

	base, err := genai.NewClient(ctx, cfg.Project, cfg.Location)
	if err != nil {
		return nil, common.NewExternalServiceError("genai.NewClient", err)
	}

	jsonModel := base.GenerativeModel(cfg.Model)
	jsonModel.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr(float32(cfg.Temperature)),
	}

	visionModel := base.GenerativeModel(cfg.Model)
	visionModel.GenerationConfig = genai.GenerationConfig{
		Temperature:     genai.Ptr(float32(cfg.Temperature)),
		MaxOutputTokens: genai.Ptr[int32](30),
	}

	logger.Info("vertex ai client initialized", "project", cfg.Project, "location", cfg.Location, "model", cfg.Model)
	return &Client{cfg: cfg, base: base, json: jsonModel, vision: visionModel, logger: logger}, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	if c.base == nil {
		return nil
	}
	return c.base.Close()
}

func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (map[string]string, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()
	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"provider", "vertex",
		"model", c.cfg.Model,
		"prompt_len", len(req.Prompt),
		"keys", len(req.SchemaKeys),
	)

	prompt := req.Prompt
	if req.System != "" {
		prompt = req.System + "\n\n" + prompt
	}
	resp, err := c.json.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		c.logger.Error("llm.extract.http_error", "req_id", rid, "error", err, "elapsed_ms", llm.ElapsedMS(start))
		return nil, nil, common.NewExternalServiceError("vertex generate content failed", err)
	}

	content := textOf(resp)
	m, raw, err := llm.ParseStructuredJSON(content)
	if err != nil {
		c.logger.Error("llm.extract.decode_error", "req_id", rid, "error", err, "elapsed_ms", llm.ElapsedMS(start))
		return nil, []byte(content), common.NewExternalServiceError("vertex reply is not a JSON object", err)
	}

	c.logger.Info("llm.extract.ok", "req_id", rid, "keys", len(m), "elapsed_ms", llm.ElapsedMS(start))
	return llm.Stringify(m), raw, nil
}

func (c *Client) Vision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()
	if mimeType == "" {
		mimeType = "image/png"
	}

	resp, err := c.vision.GenerateContent(ctx, genai.Text(prompt), genai.Blob{MIMEType: mimeType, Data: image})
	if err != nil {
		c.logger.Error("llm.vision.http_error", "req_id", rid, "error", err, "elapsed_ms", llm.ElapsedMS(start))
		return "", common.NewExternalServiceError("vertex vision call failed", err)
	}
	out := textOf(resp)
	c.logger.Debug("llm.vision.ok", "req_id", rid, "reply", out, "elapsed_ms", llm.ElapsedMS(start))
	return out, nil
}

// textOf joins the text parts of the first candidate.
func textOf(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(b.String())
}

func (c *Client) String() string {
	return fmt.Sprintf("vertex(%s/%s/%s)", c.cfg.Project, c.cfg.Location, c.cfg.Model)
}
