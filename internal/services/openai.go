package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/umbraworks/darkfall/pkg/domain"
	"github.com/umbraworks/darkfall/pkg/prompts"
	"github.com/umbraworks/darkfall/pkg/textfilter"
)

const (
	openAIBaseURL = "https://api.openai.com/v1"

	// Sampling parameters for narrative generation. Some models reject the
	// temperature parameter entirely; see the retry logic in GenerateNarrative.
	generationTemperature     = 0.8
	generationMaxOutputTokens = 600
)

// temperatureUnsupportedCodes are the error codes OpenAI uses when the
// selected model rejects the temperature parameter.
var temperatureUnsupportedCodes = map[string]struct{}{
	"temperature_not_supported":                    {},
	"model_capabilities.temperature_not_supported": {},
}

// temperatureUnsupportedMessages holds normalized variants of the same
// condition reported by message text instead of a stable code.
var temperatureUnsupportedMessages = buildUnsupportedMessageSet(
	"'temperature' is not supported for this model.",
	"'temperature' is not supported by this model.",
	"this model does not support the parameter `temperature`.",
	"the parameter `temperature` is not supported by this model.",
)

var whitespaceRuns = regexp.MustCompile(`\s+`)

// OpenAIClient calls the OpenAI Responses API to generate character
// narratives. It implements GenerationClient.
type OpenAIClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Ensure OpenAIClient implements GenerationClient.
var _ GenerationClient = (*OpenAIClient)(nil)

// NewOpenAIClient creates a client against the public OpenAI endpoint.
// baseURL overrides the endpoint when non-empty (used by tests and proxies).
func NewOpenAIClient(baseURL string, logger *slog.Logger) *OpenAIClient {
	if baseURL == "" {
		baseURL = openAIBaseURL
	}
	return &OpenAIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 90 * time.Second,
		},
		logger: logger,
	}
}

type responsesRequest struct {
	Model           string             `json:"model"`
	Input           []responsesMessage `json:"input"`
	Temperature     *float64           `json:"temperature,omitempty"`
	MaxOutputTokens int                `json:"max_output_tokens"`
}

type responsesMessage struct {
	Role    string             `json:"role"`
	Content []responsesContent `json:"content"`
}

type responsesContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type openAIError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Param   string `json:"param"`
}

type openAIErrorResponse struct {
	Error *openAIError `json:"error"`
}

// GenerateNarrative renders the prompt once and calls the Responses API with
// it, at most twice: the first attempt includes the sampling temperature; a
// second attempt without it is made only when the first failure explicitly
// signals that the model does not support the parameter. Any other failure,
// and any second failure, is classified and returned immediately.
func (c *OpenAIClient) GenerateNarrative(ctx context.Context, apiKey, modelID string, input domain.CharacterInput, selection domain.DarknessSelection) (string, string, error) {
	normalizedModel := textfilter.NormalizeModelID(modelID)
	if normalizedModel == "" {
		return "", "", newIntegrationError("OpenAIリクエストに使用するモデルが選択されていません。", nil)
	}

	prompt := prompts.Render(input, selection)

	for attempt := 0; attempt < 2; attempt++ {
		includeTemperature := attempt == 0

		c.logger.Info("Calling OpenAI responses API",
			"model", normalizedModel,
			"temperature_included", includeTemperature,
			"max_output_tokens", generationMaxOutputTokens)

		text, apiErr, err := c.callResponses(ctx, apiKey, normalizedModel, prompt, includeTemperature)
		if err != nil {
			return "", "", err
		}
		if apiErr != nil {
			if includeTemperature && isTemperatureUnsupported(apiErr.detail) {
				c.logger.Info("Model does not support temperature; retrying without it",
					"model", normalizedModel,
					"error_code", safeValue(apiErr.detail.Code),
					"error_message", safeValue(apiErr.detail.Message))
				continue
			}
			return "", "", apiErr.toIntegrationError()
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			return trimmed, prompt, nil
		}
	}

	return "", "", newIntegrationError("OpenAIレスポンスからテキストを取得できませんでした。", nil)
}

// responsesAPIError is a request-level failure that carried an HTTP status
// and, when the body could be parsed, a structured error payload.
type responsesAPIError struct {
	status int
	detail *openAIError
}

func (e *responsesAPIError) toIntegrationError() error {
	message := fmt.Sprintf("OpenAI API呼び出しに失敗しました: HTTP %d %s", e.status, http.StatusText(e.status))
	if e.detail != nil {
		message += fmt.Sprintf(" (errorType=%s, errorCode=%s, errorMessage=%s)",
			safeValue(e.detail.Type), safeValue(e.detail.Code), safeValue(e.detail.Message))
	}
	return newIntegrationError(message, fmt.Errorf("openai responses api returned status %d", e.status))
}

// callResponses performs one POST to the Responses API. It returns either the
// extracted text, a structured API error the caller can classify, or a
// terminal transport/decoding error.
func (c *OpenAIClient) callResponses(ctx context.Context, apiKey, modelID, prompt string, includeTemperature bool) (string, *responsesAPIError, error) {
	request := responsesRequest{
		Model: modelID,
		Input: []responsesMessage{
			{
				Role:    "user",
				Content: []responsesContent{{Type: "input_text", Text: prompt}},
			},
		},
		MaxOutputTokens: generationMaxOutputTokens,
	}
	if includeTemperature {
		temperature := generationTemperature
		request.Temperature = &temperature
	}

	reqBody, err := json.Marshal(request)
	if err != nil {
		return "", nil, newIntegrationError("OpenAIリクエストの組み立てに失敗しました。", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewBuffer(reqBody))
	if err != nil {
		return "", nil, newIntegrationError("OpenAIリクエストの作成に失敗しました。", err)
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("OpenAI responses API request failed", "model", modelID, "error", err)
		return "", nil, newIntegrationError("OpenAI APIへのリクエスト中にエラーが発生しました。", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, newIntegrationError("OpenAIレスポンスの読み取りに失敗しました。", err)
	}

	if resp.StatusCode != http.StatusOK {
		apiErr := &responsesAPIError{status: resp.StatusCode, detail: parseErrorDetail(body)}
		c.logger.Warn("OpenAI responses API call failed",
			"status", resp.StatusCode,
			"model", modelID,
			"error_type", safeValue(errField(apiErr.detail, func(e *openAIError) string { return e.Type })),
			"error_code", safeValue(errField(apiErr.detail, func(e *openAIError) string { return e.Code })),
			"error_message", safeValue(errField(apiErr.detail, func(e *openAIError) string { return e.Message })))
		return "", apiErr, nil
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", nil, newIntegrationError("OpenAIレスポンスの解析に失敗しました。", err)
	}

	c.logger.Info("Received OpenAI response",
		"id", stringField(payload, "id"),
		"model", stringField(payload, "model"))

	return extractOutputText(payload), nil, nil
}

// extractOutputText walks the response's output tree and concatenates every
// text leaf it finds. The walk is deliberately structure-tolerant: content
// items may appear directly, nested one level under a message-style wrapper,
// or as a flat text field, and all of them are collected.
func extractOutputText(payload map[string]any) string {
	var sb strings.Builder
	collectText(payload["output"], &sb)
	return sb.String()
}

func collectText(node any, sb *strings.Builder) {
	switch v := node.(type) {
	case []any:
		for _, item := range v {
			collectText(item, sb)
		}
	case map[string]any:
		if text, ok := v["text"].(string); ok && textBearingType(v) {
			sb.WriteString(text)
		}
		collectText(v["content"], sb)
		collectText(v["message"], sb)
		collectText(v["output"], sb)
	}
}

// textBearingType accepts nodes with no type discriminator as well as the
// known text-carrying types, so schema drift does not silently drop text.
func textBearingType(node map[string]any) bool {
	t, ok := node["type"].(string)
	if !ok {
		return true
	}
	return t == "output_text" || t == "text"
}

func parseErrorDetail(body []byte) *openAIError {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	var parsed openAIErrorResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil
	}
	return parsed.Error
}

// isTemperatureUnsupported reports whether the error payload explicitly says
// the model rejects the temperature parameter, either by a known error code
// or by normalized message text.
func isTemperatureUnsupported(detail *openAIError) bool {
	if detail == nil {
		return false
	}
	if code := strings.ToLower(strings.TrimSpace(detail.Code)); code != "" {
		if _, ok := temperatureUnsupportedCodes[code]; ok {
			return true
		}
	}
	normalized := normalizeMessageIndicator(detail.Message)
	if normalized == "" {
		return false
	}
	_, ok := temperatureUnsupportedMessages[normalized]
	return ok
}

// normalizeMessageIndicator lowercases, trims and squeezes whitespace so
// message matching survives upstream formatting drift.
func normalizeMessageIndicator(message string) string {
	normalized := strings.ToLower(strings.TrimSpace(message))
	if normalized == "" {
		return ""
	}
	return whitespaceRuns.ReplaceAllString(normalized, " ")
}

func buildUnsupportedMessageSet(messages ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(messages))
	for _, m := range messages {
		set[normalizeMessageIndicator(m)] = struct{}{}
	}
	return set
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "n/a"
	}
	return value
}

func errField(detail *openAIError, field func(*openAIError) string) string {
	if detail == nil {
		return ""
	}
	return field(detail)
}

func stringField(payload map[string]any, key string) string {
	s, _ := payload[key].(string)
	return s
}
