package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	sdk "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/shared"

	"github.com/joseph-ayodele/docanalyzer/internal/common"
	"github.com/joseph-ayodele/docanalyzer/internal/core/llm"
)

var _ llm.Completer = (*Client)(nil)

// Complete implements llm.Completer with a json_object chat completion.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (map[string]string, []byte, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Info("llm.extract.start",
		"req_id", rid,
		"provider", "openai",
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"prompt_len", len(req.Prompt),
		"keys", len(req.SchemaKeys),
	)

	var msgs []sdk.ChatCompletionMessageParamUnion
	if req.System != "" {
		msgs = append(msgs, sdk.SystemMessage(req.System))
	}
	msgs = append(msgs, sdk.UserMessage(req.Prompt))

	resp, err := c.client.Chat.Completions.New(ctx, sdk.ChatCompletionNewParams{
		Model:       c.cfg.Model,
		Messages:    msgs,
		Temperature: sdk.Float(c.cfg.Temperature),
		ResponseFormat: sdk.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		c.logger.Error("llm.extract.http_error",
			"req_id", rid, "error", err,
			"elapsed_ms", llm.ElapsedMS(start),
		)
		return nil, nil, common.NewExternalServiceError("openai chat completion failed", mapOpenAIError(err))
	}
	if len(resp.Choices) == 0 {
		c.logger.Error("llm.extract.no_choices", "req_id", rid, "elapsed_ms", llm.ElapsedMS(start))
		return nil, nil, common.NewExternalServiceError("openai returned no choices", nil)
	}

	content := resp.Choices[0].Message.Content
	m, raw, err := llm.ParseStructuredJSON(content)
	if err != nil {
		c.logger.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "content_len", len(content),
			"elapsed_ms", llm.ElapsedMS(start),
		)
		return nil, []byte(content), common.NewExternalServiceError("openai reply is not a JSON object", err)
	}

	c.logger.Info("llm.extract.ok",
		"req_id", rid,
		"keys", len(m),
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"elapsed_ms", llm.ElapsedMS(start),
	)
	return llm.Stringify(m), raw, nil
}

// Vision implements llm.Completer with an image_url content part.
func (c *Client) Vision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	rid := uuid.New().String()
	start := time.Now()

	c.logger.Debug("llm.vision.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"image_bytes", len(image),
	)

	resp, err := c.client.Chat.Completions.New(ctx, sdk.ChatCompletionNewParams{
		Model: c.cfg.Model,
		Messages: []sdk.ChatCompletionMessageParamUnion{
			sdk.UserMessage([]sdk.ChatCompletionContentPartUnionParam{
				sdk.TextContentPart(prompt),
				sdk.ImageContentPart(sdk.ChatCompletionContentPartImageImageURLParam{
					URL: llm.DataURL(mimeType, image),
				}),
			}),
		},
		MaxCompletionTokens: sdk.Int(int64(c.cfg.VisionMaxTokens)),
		Temperature:         sdk.Float(c.cfg.Temperature),
	})
	if err != nil {
		c.logger.Error("llm.vision.http_error", "req_id", rid, "error", err, "elapsed_ms", llm.ElapsedMS(start))
		return "", common.NewExternalServiceError("openai vision call failed", mapOpenAIError(err))
	}
	if len(resp.Choices) == 0 {
		return "", common.NewExternalServiceError("openai vision returned no choices", nil)
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	c.logger.Debug("llm.vision.ok", "req_id", rid, "reply", out, "elapsed_ms", llm.ElapsedMS(start))
	return out, nil
}

func mapOpenAIError(err error) error {
	var apiErr *sdk.Error
	if errors.As(err, &apiErr) {
		if apiErr.Message != "" {
			return fmt.Errorf("openai error (status %d): %s", apiErr.StatusCode, apiErr.Message)
		}
		return fmt.Errorf("openai error (status %d)", apiErr.StatusCode)
	}
	return err
}
