package ai

import (
	"context"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"

	"kicharme.com.br/storefront/pkg/logger"
)

// Config holds the Azure OpenAI settings. Missing credentials disable the
// insight endpoints; they then return raw data only.
type Config struct {
	Endpoint   string `envconfig:"AZURE_OPENAI_ENDPOINT"`
	APIKey     string `envconfig:"AZURE_OPENAI_API_KEY"`
	Deployment string `envconfig:"AZURE_OPENAI_DEPLOYMENT_NAME" default:"gpt-35-turbo"`
}

var (
	client        *openai.Client
	deployment    string
	isInitialized bool
)

// Initialize sets up the OpenAI client. Safe to call with empty config.
func Initialize(cfg Config) {
	if cfg.Endpoint == "" || cfg.APIKey == "" {
		logger.Info().Msg("AI insights disabled - OpenAI credentials not provided")
		isInitialized = false
		return
	}

	clientValue := openai.NewClient(
		option.WithBaseURL(cfg.Endpoint),
		option.WithAPIKey(cfg.APIKey),
	)
	client = &clientValue
	deployment = cfg.Deployment
	isInitialized = true
	logger.Info().Msg("AI insights initialized")
}

// IsEnabled returns whether the AI service is properly initialized.
func IsEnabled() bool {
	return isInitialized && client != nil
}

func generateCompletion(ctx context.Context, systemMessage, userMessage string) (string, error) {
	if !IsEnabled() {
		return "", &AIError{Message: "AI service is not enabled"}
	}

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(deployment),
		Messages: []openai.ChatCompletionMessageParamUnion{
			{
				OfSystem: &openai.ChatCompletionSystemMessageParam{
					Content: openai.ChatCompletionSystemMessageParamContentUnion{
						OfString: openai.String(systemMessage),
					},
				},
			},
			{
				OfUser: &openai.ChatCompletionUserMessageParam{
					Content: openai.ChatCompletionUserMessageParamContentUnion{
						OfString: openai.String(userMessage),
					},
				},
			},
		},
		MaxTokens:   openai.Int(1500),
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		logger.Error().Err(err).Msg("AI API error")
		return "", &AIError{Message: "Failed to generate AI response", Cause: err}
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", &AIError{Message: "AI returned empty response"}
	}
	return resp.Choices[0].Message.Content, nil
}

// AIError represents an AI service error.
type AIError struct {
	Message string
	Cause   error
}

func (e *AIError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}
