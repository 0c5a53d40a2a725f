package dashscope

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/at-ishikawa/agrichat/internal/config"
	"github.com/at-ishikawa/agrichat/internal/inference"
	"github.com/google/uuid"
	"resty.dev/v3"
)

// ResultFormatMessage asks DashScope to answer with output.choices[].message.
const ResultFormatMessage = "message"

type Client struct {
	httpClient *resty.Client
	endpoint   string
	model      string
}

func NewClient(cfg config.DashScopeConfig) *Client {
	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(cfg.Timeout)

	return &Client{
		httpClient: client,
		endpoint:   cfg.Endpoint,
		model:      cfg.Model,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
	return client.model
}

type GenerationRequest struct {
	Model      string          `json:"model"`
	Input      GenerationInput `json:"input"`
	Parameters Parameters      `json:"parameters"`
}

type GenerationInput struct {
	Messages []Message `json:"messages"`
}

type Parameters struct {
	ResultFormat string `json:"result_format"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// GenerationResponse uses pointers so that absent fields can be told apart from empty ones.
type GenerationResponse struct {
	RequestID string  `json:"request_id"`
	Output    *Output `json:"output"`
	Usage     *Usage  `json:"usage,omitempty"`
}

type Output struct {
	Choices []Choice `json:"choices"`
}

type Choice struct {
	FinishReason string         `json:"finish_reason"`
	Message      *ChoiceMessage `json:"message"`
}

type ChoiceMessage struct {
	Role    Role    `json:"role"`
	Content *string `json:"content"`
}

type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

var (
	errOutputMissing  = errors.New("output is missing")
	errChoicesMissing = errors.New("output.choices is missing or empty")
)

// Complete implements the inference.Client interface
func (client *Client) Complete(ctx context.Context, prompt string) (string, error) {
	requestID := uuid.NewString()
	requestBody, err := json.Marshal(client.newRequest(prompt))
	if err != nil {
		return "", inference.NewCompletionError(inference.ErrorKindUnknown, fmt.Errorf("json.Marshal > %w", err))
	}

	slog.Default().Debug("dashscope request",
		slog.String("requestID", requestID),
		slog.String("model", client.model),
		slog.Int("promptLength", len(prompt)),
	)
	response, err := client.httpClient.R().
		SetContext(ctx).
		SetHeader("X-Request-Id", requestID).
		SetBody(requestBody).
		Post(client.endpoint)
	if err != nil {
		return "", inference.NewCompletionError(inference.ErrorKindTransport, fmt.Errorf("httpClient.Post > %w", err))
	}
	if response.IsError() {
		return "", inference.NewCompletionError(
			inference.ErrorKindHTTPStatus,
			fmt.Errorf("response error %d: %s", response.StatusCode(), response.String()),
		)
	}

	answer, err := parseAnswer(response.String())
	if err != nil {
		slog.Default().Warn("failed to parse a dashscope response",
			slog.String("requestID", requestID),
			slog.Any("error", err),
			slog.String("body", response.String()),
		)
		return "", err
	}
	slog.Default().Debug("dashscope response",
		slog.String("requestID", requestID),
		slog.Int("answerLength", len(answer)),
	)
	return answer, nil
}

func (client *Client) newRequest(prompt string) GenerationRequest {
	return GenerationRequest{
		Model: client.model,
		Input: GenerationInput{
			Messages: []Message{
				{Role: RoleUser, Content: prompt},
			},
		},
		Parameters: Parameters{
			ResultFormat: ResultFormatMessage,
		},
	}
}

// parseAnswer extracts output.choices[0].message.content.
// A wrong top-level shape (invalid JSON, no output, no choices) is a malformed response;
// a missing message or content under the first choice is reported by field name.
func parseAnswer(body string) (string, error) {
	var decoded GenerationResponse
	if err := json.NewDecoder(strings.NewReader(body)).Decode(&decoded); err != nil {
		return "", inference.NewCompletionError(inference.ErrorKindMalformedResponse, fmt.Errorf("json.Unmarshal(%s) > %w", body, err))
	}
	if decoded.Output == nil {
		return "", inference.NewCompletionError(inference.ErrorKindMalformedResponse, errOutputMissing)
	}
	if len(decoded.Output.Choices) == 0 {
		return "", inference.NewCompletionError(inference.ErrorKindMalformedResponse, errChoicesMissing)
	}

	message := decoded.Output.Choices[0].Message
	if message == nil {
		return "", inference.NewMissingFieldError("message")
	}
	if message.Content == nil {
		return "", inference.NewMissingFieldError("content")
	}
	return strings.TrimSpace(*message.Content), nil
}
