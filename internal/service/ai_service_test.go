package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"qa_judge_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *AIService) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	svc := NewAIService(config.AIConfig{
		BaseURL: server.URL,
		APIKey:  "test-key",
		Model:   "default-model",
	})
	return server, svc
}

func TestChat_Success(t *testing.T) {
	var gotReq ChatCompletionRequest
	var gotAuth string

	_, svc := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "{\"verdict\": \"pass\"}"}}]}`))
	})

	content, err := svc.Chat(context.Background(), "rubric", "question", "gpt-4o")
	require.NoError(t, err)

	assert.Equal(t, `{"verdict": "pass"}`, content)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "gpt-4o", gotReq.Model)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "rubric", gotReq.Messages[0].Content)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
	assert.Equal(t, "question", gotReq.Messages[1].Content)
}

func TestChat_EmptyModelFallsBackToConfig(t *testing.T) {
	var gotReq ChatCompletionRequest
	_, svc := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	})

	_, err := svc.Chat(context.Background(), "s", "u", "")
	require.NoError(t, err)
	assert.Equal(t, "default-model", gotReq.Model)
}

func TestChat_Non200Status(t *testing.T) {
	_, svc := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	})

	_, err := svc.Chat(context.Background(), "s", "u", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestChat_NoChoices(t *testing.T) {
	_, svc := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	})

	_, err := svc.Chat(context.Background(), "s", "u", "m")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestChat_MalformedResponseBody(t *testing.T) {
	_, svc := newChatServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := svc.Chat(context.Background(), "s", "u", "m")
	require.Error(t, err)
}
