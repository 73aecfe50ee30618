package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/liliang-cn/askcontract/internal/config"
	"github.com/liliang-cn/askcontract/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(geminiURL, openaiURL string) *Client {
	return NewClient(config.LLMConfig{
		OpenAIModel:     "test-model",
		GeminiModel:     "test-model",
		OpenAIBaseURL:   openaiURL,
		GeminiBaseURL:   geminiURL,
		Temperature:     0.7,
		MaxOutputTokens: 256,
		TimeoutSeconds:  5,
	}, zap.NewNop())
}

func TestComplete_MissingCredentials(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, srv.URL)

	for _, provider := range []string{ProviderGemini, ProviderOpenAI} {
		_, err := client.Complete(context.Background(), "prompt", Config{Provider: provider})
		var missing *domain.MissingCredentialsError
		require.ErrorAs(t, err, &missing)
	}
	assert.Zero(t, requests, "credential gating must precede network I/O")
}

func TestComplete_Gemini(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"câu trả lời"}]}}]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "")
	text, err := client.Complete(context.Background(), "xin chào", Config{Provider: ProviderGemini, APIKey: "secret"})

	require.NoError(t, err)
	assert.Equal(t, "câu trả lời", text)
	assert.Equal(t, "/models/test-model:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)

	contents := gotBody["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	assert.Equal(t, "xin chào", parts[0].(map[string]any)["text"])
	genCfg := gotBody["generationConfig"].(map[string]any)
	assert.InDelta(t, 0.7, genCfg["temperature"], 0.001)
	assert.InDelta(t, 256, genCfg["maxOutputTokens"], 0.001)
}

func TestComplete_GeminiEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "")
	text, err := client.Complete(context.Background(), "p", Config{Provider: ProviderGemini, APIKey: "k"})

	require.NoError(t, err)
	assert.Empty(t, text)
}

func TestComplete_GeminiProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		io.WriteString(w, `{"error":{"message":"API key not valid"}}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "")
	_, err := client.Complete(context.Background(), "p", Config{Provider: ProviderGemini, APIKey: "bad"})

	var provider *domain.ProviderError
	require.ErrorAs(t, err, &provider)
	assert.Equal(t, "API key not valid", provider.Message)
	assert.Equal(t, http.StatusForbidden, provider.StatusCode)
}

func TestComplete_GeminiProviderErrorWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "")
	_, err := client.Complete(context.Background(), "p", Config{Provider: ProviderGemini, APIKey: "k"})

	var provider *domain.ProviderError
	require.ErrorAs(t, err, &provider)
	assert.Contains(t, provider.Error(), "503")
}

func TestComplete_OpenAI(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices":[{"message":{"role":"assistant","content":"trả lời từ openai"}}]}`)
	}))
	defer srv.Close()

	client := newTestClient("", srv.URL+"/v1")
	text, err := client.Complete(context.Background(), "câu hỏi", Config{Provider: ProviderOpenAI, APIKey: "sk-test"})

	require.NoError(t, err)
	assert.Equal(t, "trả lời từ openai", text)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "test-model", gotBody["model"])

	messages := gotBody["messages"].([]any)
	require.Len(t, messages, 1)
	msg := messages[0].(map[string]any)
	assert.Equal(t, "user", msg["role"])
	assert.Equal(t, "câu hỏi", msg["content"])
}

func TestComplete_OpenAIProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error"}}`)
	}))
	defer srv.Close()

	client := newTestClient("", srv.URL+"/v1")
	_, err := client.Complete(context.Background(), "p", Config{Provider: ProviderOpenAI, APIKey: "bad"})

	var provider *domain.ProviderError
	require.ErrorAs(t, err, &provider)
	assert.Equal(t, "Incorrect API key provided", provider.Message)
}

func TestTranscribe_GeminiSendsInlineData(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		json.Unmarshal(body, &gotBody)
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"văn bản trong ảnh"}]}}]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "")
	text, err := client.Transcribe(context.Background(), "hãy trích xuất", "aGVsbG8=", "image/png", Config{Provider: ProviderGemini, APIKey: "k"})

	require.NoError(t, err)
	assert.Equal(t, "văn bản trong ảnh", text)

	contents := gotBody["contents"].([]any)
	parts := contents[0].(map[string]any)["parts"].([]any)
	require.Len(t, parts, 2)
	assert.Equal(t, "hãy trích xuất", parts[0].(map[string]any)["text"])
	inline := parts[1].(map[string]any)["inline_data"].(map[string]any)
	assert.Equal(t, "image/png", inline["mime_type"])
	assert.Equal(t, "aGVsbG8=", inline["data"])
}

func TestTranscribe_MissingCredentials(t *testing.T) {
	client := newTestClient("http://unused", "http://unused")
	_, err := client.Transcribe(context.Background(), "i", "data", "image/png", Config{Provider: ProviderGemini})

	var missing *domain.MissingCredentialsError
	require.ErrorAs(t, err, &missing)
}
