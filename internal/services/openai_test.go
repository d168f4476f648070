package services

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbraworks/darkfall/pkg/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testInput() domain.CharacterInput {
	return domain.CharacterInput{
		Mode:             domain.ModeAuto,
		WorldGenre:       &domain.WorldGenre{ID: 1, Name: "中世ダークファンタジー"},
		ProtagonistScore: 3,
	}
}

func testSelection() domain.DarknessSelection {
	return domain.DarknessSelection{
		Selections: map[domain.AttributeCategory][]domain.AttributeOption{
			domain.CategoryMotive: {{ID: 10, Category: domain.CategoryMotive, Name: "復讐心"}},
		},
		Preset: domain.PresetHeavy,
	}
}

// capturedRequest records what the fake Responses API received.
type capturedRequest struct {
	Authorization string
	Body          responsesRequest
}

func decodeRequest(t *testing.T, r *http.Request) capturedRequest {
	t.Helper()
	var body responsesRequest
	require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
	return capturedRequest{
		Authorization: r.Header.Get("Authorization"),
		Body:          body,
	}
}

func successBody(text string) map[string]any {
	return map[string]any{
		"id":    "resp_123",
		"model": "gpt-4o",
		"output": []any{
			map[string]any{
				"type": "message",
				"content": []any{
					map[string]any{"type": "output_text", "text": text},
				},
			},
		},
	}
}

func errorBody(code, message string) map[string]any {
	return map[string]any{
		"error": map[string]any{
			"type":    "invalid_request_error",
			"code":    code,
			"message": message,
		},
	}
}

func TestGenerateNarrative_Success(t *testing.T) {
	var requests []capturedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/responses", r.URL.Path)
		requests = append(requests, decodeRequest(t, r))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(successBody("  闇に堕ちた騎士の物語。  "))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, testLogger())
	narrative, prompt, err := client.GenerateNarrative(context.Background(), "test-key", "gpt-4o", testInput(), testSelection())

	require.NoError(t, err)
	assert.Equal(t, "闇に堕ちた騎士の物語。", narrative)
	assert.Contains(t, prompt, "中世ダークファンタジー")

	require.Len(t, requests, 1)
	assert.Equal(t, "Bearer test-key", requests[0].Authorization)
	assert.Equal(t, "gpt-4o", requests[0].Body.Model)
	require.NotNil(t, requests[0].Body.Temperature)
	assert.Equal(t, 0.8, *requests[0].Body.Temperature)
	assert.Equal(t, 600, requests[0].Body.MaxOutputTokens)
}

func TestGenerateNarrative_RetriesWithoutTemperatureOnCode(t *testing.T) {
	var requests []capturedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, decodeRequest(t, r))
		w.Header().Set("Content-Type", "application/json")
		if len(requests) == 1 {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(errorBody("temperature_not_supported", "Temperature is not available."))
			return
		}
		_ = json.NewEncoder(w).Encode(successBody("再試行の結果。"))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, testLogger())
	narrative, _, err := client.GenerateNarrative(context.Background(), "test-key", "gpt-4o", testInput(), testSelection())

	require.NoError(t, err)
	assert.Equal(t, "再試行の結果。", narrative)

	require.Len(t, requests, 2)
	assert.NotNil(t, requests[0].Body.Temperature, "first attempt must include temperature")
	assert.Nil(t, requests[1].Body.Temperature, "retry must omit temperature")
}

func TestGenerateNarrative_RetriesOnMessageVariant(t *testing.T) {
	var requests []capturedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests = append(requests, decodeRequest(t, r))
		w.Header().Set("Content-Type", "application/json")
		if len(requests) == 1 {
			w.WriteHeader(http.StatusBadRequest)
			// Extra whitespace and different casing must still be recognized.
			_ = json.NewEncoder(w).Encode(errorBody("", "  'Temperature'   is not supported\nfor this model.  "))
			return
		}
		_ = json.NewEncoder(w).Encode(successBody("本文"))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, testLogger())
	narrative, _, err := client.GenerateNarrative(context.Background(), "test-key", "gpt-4o", testInput(), testSelection())

	require.NoError(t, err)
	assert.Equal(t, "本文", narrative)
	assert.Len(t, requests, 2)
}

func TestGenerateNarrative_UnrecognizedErrorFailsWithoutRetry(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		_ = json.NewEncoder(w).Encode(errorBody("rate_limit_exceeded", "Rate limit reached."))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, testLogger())
	_, _, err := client.GenerateNarrative(context.Background(), "test-key", "gpt-4o", testInput(), testSelection())

	require.Error(t, err)
	assert.Equal(t, 1, callCount, "unrecognized errors must not trigger a retry")

	var integrationErr *IntegrationError
	require.ErrorAs(t, err, &integrationErr)
	assert.Contains(t, integrationErr.Message, "HTTP 429")
	assert.Contains(t, integrationErr.Message, "errorCode=rate_limit_exceeded")
}

func TestGenerateNarrative_SecondFailureIsTerminal(t *testing.T) {
	callCount := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		callCount++
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorBody("temperature_not_supported", ""))
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, testLogger())
	_, _, err := client.GenerateNarrative(context.Background(), "test-key", "gpt-4o", testInput(), testSelection())

	require.Error(t, err)
	assert.Equal(t, 2, callCount, "at most one retry is allowed")
}

func TestGenerateNarrative_BlankModel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent when the model is blank")
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, testLogger())
	_, _, err := client.GenerateNarrative(context.Background(), "test-key", "   ", testInput(), testSelection())

	require.Error(t, err)
	var integrationErr *IntegrationError
	require.ErrorAs(t, err, &integrationErr)
	assert.Contains(t, integrationErr.Message, "モデルが選択されていません")
}

func TestGenerateNarrative_EmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "resp_1", "output": []any{}})
	}))
	defer server.Close()

	client := NewOpenAIClient(server.URL, testLogger())
	_, _, err := client.GenerateNarrative(context.Background(), "test-key", "gpt-4o", testInput(), testSelection())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "テキストを取得できませんでした")
}

func TestGenerateNarrative_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // closed before use: connection refused

	client := NewOpenAIClient(server.URL, testLogger())
	_, _, err := client.GenerateNarrative(context.Background(), "test-key", "gpt-4o", testInput(), testSelection())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "リクエスト中にエラーが発生しました")
}

func TestExtractOutputText(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		expected string
	}{
		{
			name:     "standard message content",
			payload:  `{"output":[{"type":"message","content":[{"type":"output_text","text":"hello"}]}]}`,
			expected: "hello",
		},
		{
			name:     "nested message wrapper",
			payload:  `{"output":[{"message":{"content":[{"type":"text","text":"nested"}]}}]}`,
			expected: "nested",
		},
		{
			name:     "flat text without type",
			payload:  `{"output":[{"text":"flat"}]}`,
			expected: "flat",
		},
		{
			name:     "multiple fragments concatenated",
			payload:  `{"output":[{"content":[{"type":"output_text","text":"a"},{"type":"output_text","text":"b"}]}]}`,
			expected: "ab",
		},
		{
			name:     "non-text types skipped",
			payload:  `{"output":[{"type":"reasoning","text":"ignore"},{"content":[{"type":"output_text","text":"keep"}]}]}`,
			expected: "keep",
		},
		{
			name:     "missing output",
			payload:  `{"id":"resp_1"}`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload map[string]any
			require.NoError(t, json.Unmarshal([]byte(tt.payload), &payload))
			assert.Equal(t, tt.expected, extractOutputText(payload))
		})
	}
}

func TestIsTemperatureUnsupported(t *testing.T) {
	tests := []struct {
		name     string
		detail   *openAIError
		expected bool
	}{
		{"nil detail", nil, false},
		{"known code", &openAIError{Code: "temperature_not_supported"}, true},
		{"nested capability code", &openAIError{Code: "model_capabilities.temperature_not_supported"}, true},
		{"code case insensitive", &openAIError{Code: "Temperature_Not_Supported"}, true},
		{"known message", &openAIError{Message: "'temperature' is not supported for this model."}, true},
		{"backtick message", &openAIError{Message: "This model does not support the parameter `temperature`."}, true},
		{"unrelated code", &openAIError{Code: "rate_limit_exceeded"}, false},
		{"unrelated message", &openAIError{Message: "Invalid API key."}, false},
		{"empty detail", &openAIError{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isTemperatureUnsupported(tt.detail))
		})
	}
}
