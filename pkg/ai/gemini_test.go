package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geminiTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestGeminiComplete_Success(t *testing.T) {
	srv := geminiTestServer(t, http.StatusOK,
		`{"candidates":[{"content":{"parts":[{"text":"olá "},{"text":"mundo"}]}}]}`)
	defer srv.Close()

	client := NewGeminiClient(GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})

	got, err := client.Complete(context.Background(), "sistema", "pergunta")
	require.NoError(t, err)
	assert.Equal(t, "olá mundo", got)
}

func TestGeminiComplete_SendsSystemInstruction(t *testing.T) {
	var captured geminiRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&captured)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	_, err := client.Complete(context.Background(), "regras da escala", "monte a escala")
	require.NoError(t, err)

	require.NotNil(t, captured.SystemInstruction)
	assert.Equal(t, "regras da escala", captured.SystemInstruction.Parts[0].Text)
	require.Len(t, captured.Contents, 1)
	assert.Equal(t, "monte a escala", captured.Contents[0].Parts[0].Text)
}

func TestGeminiComplete_MissingAPIKey(t *testing.T) {
	client := NewGeminiClient(GeminiConfig{})
	_, err := client.Complete(context.Background(), "", "pergunta")
	assert.Error(t, err)
}

func TestGeminiComplete_NonOKStatus(t *testing.T) {
	srv := geminiTestServer(t, http.StatusTooManyRequests, `{"error":{"code":429,"message":"quota"}}`)
	defer srv.Close()

	client := NewGeminiClient(GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	_, err := client.Complete(context.Background(), "", "pergunta")
	assert.Error(t, err)
}

func TestGeminiComplete_APIErrorBody(t *testing.T) {
	srv := geminiTestServer(t, http.StatusOK, `{"error":{"code":400,"message":"invalid model"}}`)
	defer srv.Close()

	client := NewGeminiClient(GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	_, err := client.Complete(context.Background(), "", "pergunta")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid model")
}

func TestGeminiComplete_NoCandidates(t *testing.T) {
	srv := geminiTestServer(t, http.StatusOK, `{"candidates":[]}`)
	defer srv.Close()

	client := NewGeminiClient(GeminiConfig{APIKey: "test-key", BaseURL: srv.URL})
	_, err := client.Complete(context.Background(), "", "pergunta")
	assert.Error(t, err)
}

func TestGeminiComplete_TimeoutBounded(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"tarde demais"}]}}]}`))
	}))
	defer srv.Close()

	client := NewGeminiClient(GeminiConfig{APIKey: "test-key", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})

	start := time.Now()
	_, err := client.Complete(context.Background(), "", "pergunta")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 2*time.Second)
}
