// Package ai extracts thought candidates from pasted text through an
// OpenAI-compatible chat completions endpoint. Extraction is an assist
// feature; nothing on the matching path depends on it.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Candidate is one extracted thought suggestion; the user decides whether
// to keep it.
type Candidate struct {
	Content string `json:"content"`
}

// Extractor calls the chat completions API.
type Extractor struct {
	client *resty.Client
	model  string
}

const systemPrompt = "You extract short, actionable insights from text. " +
	"Reply with a JSON array of strings, one insight per element, at most %d elements. " +
	"Each insight must be a single sentence in the author's voice. Reply with the JSON array only."

// NewExtractor creates an Extractor against an OpenAI-compatible base URL.
func NewExtractor(baseURL, model, apiKey string) *Extractor {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(2 * time.Minute)
	if apiKey != "" {
		c.SetAuthToken(apiKey)
	}
	return &Extractor{client: c, model: model}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// ExtractThoughts asks the model for up to max insights found in text.
func (e *Extractor) ExtractThoughts(ctx context.Context, text string, max int) ([]Candidate, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("empty text")
	}
	if max <= 0 {
		max = 5
	}

	reqBody := chatRequest{
		Model: e.model,
		Messages: []chatMessage{
			{Role: "system", Content: fmt.Sprintf(systemPrompt, max)},
			{Role: "user", Content: text},
		},
	}

	resp, err := e.client.R().
		SetContext(ctx).
		SetBody(&reqBody).
		Post("/v1/chat/completions")
	if err != nil {
		return nil, fmt.Errorf("extraction request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("extraction status %d: %s", resp.StatusCode(), resp.String())
	}

	var cr chatResponse
	if err := json.Unmarshal(resp.Body(), &cr); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(cr.Choices) == 0 {
		return nil, fmt.Errorf("no completion returned")
	}

	return parseCandidates(cr.Choices[0].Message.Content, max)
}

// parseCandidates decodes the model reply, tolerating a markdown code fence
// around the JSON array.
func parseCandidates(reply string, max int) ([]Candidate, error) {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")

	var raw []string
	if err := json.Unmarshal([]byte(strings.TrimSpace(reply)), &raw); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}

	out := make([]Candidate, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		out = append(out, Candidate{Content: s})
		if len(out) == max {
			break
		}
	}
	return out, nil
}

// HealthPing probes the models endpoint so the extractor participates in
// service health checks.
func (e *Extractor) HealthPing(ctx context.Context) error {
	resp, err := e.client.R().SetContext(ctx).Get("/v1/models")
	if err != nil {
		return err
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("ai status %d", resp.StatusCode())
	}
	return nil
}
