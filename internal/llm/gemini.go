package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/liliang-cn/askcontract/internal/domain"
)

// Gemini generateContent wire types. This shape is a versioned external
// contract; do not reuse these types outside this package.

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

type geminiErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) completeGemini(ctx context.Context, prompt, apiKey string) (string, error) {
	return c.callGemini(ctx, apiKey, []geminiPart{{Text: prompt}})
}

func (c *Client) transcribeGemini(ctx context.Context, instruction, imageB64, mimeType, apiKey string) (string, error) {
	parts := []geminiPart{
		{Text: instruction},
		{InlineData: &geminiInlineData{MimeType: mimeType, Data: imageB64}},
	}
	return c.callGemini(ctx, apiKey, parts)
}

func (c *Client) callGemini(ctx context.Context, apiKey string, parts []geminiPart) (string, error) {
	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: parts}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     c.cfg.Temperature,
			MaxOutputTokens: c.cfg.MaxOutputTokens,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.cfg.GeminiBaseURL, c.cfg.GeminiModel, apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &domain.ProviderError{Provider: ProviderGemini, Message: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.ProviderError{Provider: ProviderGemini, Message: err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp geminiErrorResponse
		_ = json.Unmarshal(data, &errResp)
		return "", &domain.ProviderError{
			Provider:   ProviderGemini,
			StatusCode: resp.StatusCode,
			Message:    errResp.Error.Message,
		}
	}

	var parsed geminiResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", &domain.ProviderError{Provider: ProviderGemini, Message: "invalid response body"}
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
