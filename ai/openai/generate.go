package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/finsight/newsintel/core"
	"github.com/tmc/langchaingo/llms"
)

// completeJSON runs a chat completion and unmarshals the JSON response into
// out. Transport failures are retried with exponential backoff; malformed
// JSON is retried immediately after an attempted repair. Exhausted retries
// surface as core.ErrService.
func completeJSON(ctx context.Context, client llms.Model, logger *slog.Logger, maxRetries int, systemPrompt, userText string, out any) error {
	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(systemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(userText),
			},
		},
	}

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		response, err := client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			lastErr = err
			logger.Warn("model call failed", "attempt", attempt+1, "err", err)
			if attempt+1 < maxRetries {
				if sleepErr := backoff(ctx, attempt, err); sleepErr != nil {
					return sleepErr
				}
			}
			continue
		}

		if len(response.Choices) < 1 {
			lastErr = fmt.Errorf("no choices returned from model")
			logger.Warn("empty model response", "attempt", attempt+1)
			continue
		}

		responseText := stripCodeFences(response.Choices[0].Content)
		responseText = repairJSON(responseText)

		if err := json.Unmarshal([]byte(responseText), out); err != nil {
			lastErr = err
			logger.Warn("error parsing model response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		return nil
	}

	logger.Error("model call failed after retries", "attempts", maxRetries, "err", lastErr)
	return fmt.Errorf("%w: model call failed after %d attempts: %w", core.ErrService, maxRetries, lastErr)
}

// backoff sleeps for 1s doubled each attempt, doubled again when the error
// looks like a rate limit. Honors context cancellation.
func backoff(ctx context.Context, attempt int, err error) error {
	wait := time.Second << attempt
	if isRateLimited(err) {
		wait *= 2
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// isRateLimited detects rate-limit responses from the error text.
func isRateLimited(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rate limit") || strings.Contains(msg, "429")
}

// stripCodeFences removes markdown code fences some models wrap JSON in.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
