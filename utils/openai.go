package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SimplyAgenticAI/Simply-Agentic-Ai-Dashboard/models"
)

// System instructions for the two drafting operations. The JSON-only
// contract is what lets the reply be parsed straight into a Draft.
const (
	generateSystem = "You are an email drafting assistant. " +
		"Return ONLY valid JSON with keys: to, subject, body. " +
		"If the user provides a line like 'Recipient Email: someone@domain.com', you MUST set 'to' to that exact email. " +
		"If the user did not provide a recipient email, set 'to' to an empty string. " +
		"Keep it clear, professional, and ready to send."

	followUpSystem = "You write email follow-ups. " +
		"Return ONLY valid JSON with keys: to, subject, body. " +
		"The follow-up must be short, friendly, and easy to reply to. " +
		"Do not mention that you are an AI."

	// Used when the service returns a follow-up with a blank subject.
	fallbackFollowUpSubject = "Quick follow-up"
)

// OpenAIConfig configures the chat-completions client.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// OpenAIClient talks to an OpenAI-compatible chat-completions endpoint
// and normalizes replies into Drafts.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *logrus.Logger
}

func NewOpenAIClient(config OpenAIConfig, logger *logrus.Logger) *OpenAIClient {
	if config.BaseURL == "" {
		config.BaseURL = "https://api.openai.com/v1"
	}
	if config.Timeout == 0 {
		config.Timeout = 120 * time.Second
	}
	return &OpenAIClient{
		apiKey:  config.APIKey,
		baseURL: config.BaseURL,
		model:   config.Model,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// FollowUpRequest carries the context needed to draft a follow-up to a
// previously sent email.
type FollowUpRequest struct {
	To              string
	ProspectName    string
	PreviousSubject string
	PreviousBody    string
	CampaignPrompt  string
}

// Generate drafts a fresh email from the prompt document. An empty
// prompt, a failed call, or an unparseable reply all surface as
// GenerationError; no retries.
func (c *OpenAIClient) Generate(ctx context.Context, prompt string) (models.Draft, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return models.Draft{}, &models.GenerationError{Message: "Prompt is required"}
	}

	reply, err := c.complete(ctx, generateSystem, prompt)
	if err != nil {
		return models.Draft{}, &models.GenerationError{Message: "generation request failed", Err: err}
	}

	draft, err := parseDraft(reply)
	if err != nil {
		return models.Draft{}, &models.GenerationError{Message: "AI response was not valid JSON. Try again with a clearer prompt."}
	}
	return draft, nil
}

// FollowUp drafts a short reply-nudge to a previously sent email. The
// reply's To falls back to the requested recipient and a blank subject
// falls back to a fixed line; a follow-up never surfaces incomplete.
func (c *OpenAIClient) FollowUp(ctx context.Context, req FollowUpRequest) (models.Draft, error) {
	req.To = strings.TrimSpace(req.To)
	req.PreviousSubject = strings.TrimSpace(req.PreviousSubject)
	req.PreviousBody = strings.TrimSpace(req.PreviousBody)
	if req.To == "" || req.PreviousSubject == "" || req.PreviousBody == "" {
		return models.Draft{}, models.NewValidationError("To, previous_subject, and previous_body are required")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Recipient Email: %s\n", req.To)
	fmt.Fprintf(&b, "Prospect Name: %s\n\n", strings.TrimSpace(req.ProspectName))
	b.WriteString("Create a follow-up email to the previous email below.\n")
	b.WriteString("Keep it under 110 words. One clear question at the end.\n")
	if campaign := strings.TrimSpace(req.CampaignPrompt); campaign != "" {
		fmt.Fprintf(&b, "\nCampaign context:\n%s\n", campaign)
	}
	fmt.Fprintf(&b, "\nPrevious subject:\n%s\n\nPrevious body:\n%s\n", req.PreviousSubject, req.PreviousBody)

	reply, err := c.complete(ctx, followUpSystem, b.String())
	if err != nil {
		return models.Draft{}, &models.GenerationError{Message: "follow-up request failed", Err: err}
	}

	draft, err := parseDraft(reply)
	if err != nil {
		return models.Draft{}, &models.GenerationError{Message: "AI response was not valid JSON. Try again."}
	}

	if draft.To == "" {
		draft.To = req.To
	}
	if draft.Subject == "" {
		draft.Subject = fallbackFollowUpSubject
	}
	return draft, nil
}

// complete performs one chat-completions round trip and returns the
// assistant message text.
func (c *OpenAIClient) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("API key not configured")
	}

	start := time.Now()
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: 0.6,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("no completion returned")
	}

	reply := strings.TrimSpace(parsed.Choices[0].Message.Content)
	c.logger.WithFields(logrus.Fields{
		"model":    c.model,
		"duration": time.Since(start),
	}).Debug("completion finished")
	return reply, nil
}

// parseDraft decodes the strict {to, subject, body} reply shape,
// trimming each field. Missing keys become empty strings.
func parseDraft(reply string) (models.Draft, error) {
	var draft models.Draft
	if err := json.Unmarshal([]byte(reply), &draft); err != nil {
		return models.Draft{}, err
	}
	draft.To = strings.TrimSpace(draft.To)
	draft.Subject = strings.TrimSpace(draft.Subject)
	draft.Body = strings.TrimSpace(draft.Body)
	return draft, nil
}
