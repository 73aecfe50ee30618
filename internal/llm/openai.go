package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/liliang-cn/askcontract/internal/domain"
)

func (c *Client) newOpenAIClient(apiKey string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if c.cfg.OpenAIBaseURL != "" {
		cfg.BaseURL = c.cfg.OpenAIBaseURL
	}
	cfg.HTTPClient = c.httpClient
	return openai.NewClientWithConfig(cfg)
}

func (c *Client) completeOpenAI(ctx context.Context, prompt, apiKey string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}
	return c.callOpenAI(ctx, apiKey, messages)
}

func (c *Client) transcribeOpenAI(ctx context.Context, instruction, imageB64, mimeType, apiKey string) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{Type: openai.ChatMessagePartTypeText, Text: instruction},
				{
					Type: openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{
						URL: fmt.Sprintf("data:%s;base64,%s", mimeType, imageB64),
					},
				},
			},
		},
	}
	return c.callOpenAI(ctx, apiKey, messages)
}

func (c *Client) callOpenAI(ctx context.Context, apiKey string, messages []openai.ChatCompletionMessage) (string, error) {
	client := c.newOpenAIClient(apiKey)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.cfg.OpenAIModel,
		Messages:    messages,
		Temperature: float32(c.cfg.Temperature),
		MaxTokens:   c.cfg.MaxOutputTokens,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &domain.ProviderError{
				Provider:   ProviderOpenAI,
				StatusCode: apiErr.HTTPStatusCode,
				Message:    apiErr.Message,
			}
		}
		return "", &domain.ProviderError{Provider: ProviderOpenAI, Message: err.Error()}
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
