// Package groq calls the external LLM classification service for uploaded
// files. The service is stateless: given a file name and MIME type it
// returns a verdict, a category and a risk level. Any failure degrades to a
// fixed low-risk classification so a broken classifier never blocks uploads.
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const endpoint = "https://api.groq.com/openai/v1/chat/completions"

const systemPrompt = "You are a cybersecurity expert. Analyze files and return JSON output with keys: " +
	"'verdict' (brief sentence), 'category' (Legal, Financial, Technical, Multimedia, or Other), " +
	"and 'riskLevel' (Low, Medium, High)."

// Classification is the external classifier's JSON shape, reused verbatim at
// the HTTP boundary.
type Classification struct {
	Verdict   string `json:"verdict"`
	Category  string `json:"category"`
	RiskLevel string `json:"riskLevel"`
}

// DefaultClassification is returned whenever the classifier cannot be
// reached or answers garbage.
func DefaultClassification() Classification {
	return Classification{
		Verdict:   "Security scan unavailable.",
		Category:  "Other",
		RiskLevel: "Low",
	}
}

type chatRequest struct {
	Model          string        `json:"model"`
	Messages       []chatMessage `json:"messages"`
	ResponseFormat respFormat    `json:"response_format"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type respFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client holds the API key, model and HTTP client.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

func NewClient(apiKey, model string) *Client {
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Analyze asks the model for a classification of the file, identified only
// by its name and declared type — file content never leaves the server.
func (c *Client) Analyze(ctx context.Context, fileName, fileType string) (Classification, error) {
	if c.apiKey == "" {
		return Classification{}, errors.New("groq: api key is not configured")
	}

	body := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Analyze file: Name=%q, Type=%q.", fileName, fileType)},
		},
		ResponseFormat: respFormat{Type: "json_object"},
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return Classification{}, fmt.Errorf("groq: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
	if err != nil {
		return Classification{}, fmt.Errorf("groq: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Classification{}, fmt.Errorf("groq: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return Classification{}, fmt.Errorf("groq: unexpected status %s: %s", resp.Status, msg)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Classification{}, fmt.Errorf("groq: decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return Classification{}, errors.New("groq: empty choices in response")
	}

	var result Classification
	if err := json.Unmarshal([]byte(parsed.Choices[0].Message.Content), &result); err != nil {
		return Classification{}, fmt.Errorf("groq: classifier returned non-JSON content: %w", err)
	}
	return result, nil
}
