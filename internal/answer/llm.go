package answer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// systemPrompt keeps the model inside the retrieved documentation.
const systemPrompt = "You are a professional technical assistant. Answer questions precisely and accurately using only the information provided. Do not add general advice or assumptions beyond what is stated in the documentation. Be clear, direct, and specific to the procedures described."

// HTTPGenerator posts the question with its context block to a
// messages-style completion endpoint and returns the generated text.
type HTTPGenerator struct {
	URL       string
	Model     string
	MaxTokens int

	httpClient *http.Client
}

func NewHTTPGenerator(url, model string, maxTokens int) *HTTPGenerator {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &HTTPGenerator{
		URL:       url,
		Model:     model,
		MaxTokens: maxTokens,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type generateRequest struct {
	Model       string            `json:"model,omitempty"`
	MaxTokens   int               `json:"max_tokens"`
	Temperature float64           `json:"temperature"`
	System      string            `json:"system"`
	Messages    []generateMessage `json:"messages"`
}

type generateMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type generateResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, q Question) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:       g.Model,
		MaxTokens:   g.MaxTokens,
		Temperature: 0.1,
		System:      systemPrompt,
		Messages:    []generateMessage{{Role: "user", Content: buildPrompt(q)}},
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.URL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("completion endpoint: %d - %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode completion response: %w", err)
	}
	if len(out.Content) == 0 {
		return "", fmt.Errorf("completion endpoint returned no content")
	}
	return strings.TrimSpace(out.Content[0].Text), nil
}

// buildPrompt assembles conversation history, the context block, and
// the question into one user message.
func buildPrompt(q Question) string {
	var sections []string
	if len(q.History) > 0 {
		sections = append(sections, "Conversation so far:\n"+strings.Join(q.History, "\n"))
	}
	if len(q.Contexts) > 0 {
		var b strings.Builder
		b.WriteString("Relevant information from documentation:\n")
		for _, c := range q.Contexts {
			b.WriteString("- " + c + "\n")
		}
		sections = append(sections, strings.TrimRight(b.String(), "\n"))
	}
	sections = append(sections, "User question: "+q.Text)
	return strings.Join(sections, "\n\n")
}
