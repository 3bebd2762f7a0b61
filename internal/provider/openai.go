package provider

import (
	"context"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"

	"github.com/yuta-hayashi/tabiplan/internal/config"
	"github.com/yuta-hayashi/tabiplan/internal/conversation"
	"github.com/yuta-hayashi/tabiplan/internal/errors"
)

// OpenAI streams completions from the OpenAI chat completions API, or any
// compatible endpoint via base_url.
type OpenAI struct {
	client openai.Client
	model  string
}

// NewOpenAI builds an OpenAI provider from configuration.
func NewOpenAI(cfg *config.ProviderConfig) *OpenAI {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey()),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if timeout := cfg.Timeout(); timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(timeout))
	}

	return &OpenAI{
		client: openai.NewClient(opts...),
		model:  cfg.Model,
	}
}

// Name implements Provider.
func (o *OpenAI) Name() string { return "openai" }

// Stream implements Provider.
func (o *OpenAI) Stream(ctx context.Context, req Request) (Stream, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.Turns)+1)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	for _, turn := range req.Turns {
		switch turn.Role {
		case conversation.RoleAssistant:
			messages = append(messages, openai.AssistantMessage(turn.Content))
		default:
			messages = append(messages, openai.UserMessage(turn.Content))
		}
	}

	stream := o.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: messages,
	})
	if err := stream.Err(); err != nil {
		return nil, classify(err)
	}

	return &openaiStream{inner: stream}, nil
}

// openaiStream adapts the SDK's SSE stream to the Stream interface.
type openaiStream struct {
	inner *ssestream.Stream[openai.ChatCompletionChunk]
	text  string
}

func (s *openaiStream) Next() bool {
	for s.inner.Next() {
		chunk := s.inner.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		s.text = delta
		return true
	}
	return false
}

func (s *openaiStream) Text() string { return s.text }

func (s *openaiStream) Err() error {
	err := s.inner.Err()
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return errors.NewProviderError("stream canceled", errors.ErrStreamCanceled).WithProvider("openai")
	}
	return classify(err)
}

func (s *openaiStream) Close() error { return s.inner.Close() }

// classify maps SDK errors onto the provider error taxonomy so callers
// can decide whether to retry.
func classify(err error) error {
	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return errors.NewProviderError("request failed", err).WithProvider("openai")
	}

	switch {
	case apiErr.StatusCode == 401 || apiErr.StatusCode == 403:
		return errors.NewProviderError("authentication failed", errors.ErrInvalidCredential).
			WithProvider("openai").WithStatusCode(apiErr.StatusCode)
	case apiErr.StatusCode == 429:
		return errors.NewProviderError("rate limited", errors.ErrRateLimited).
			WithProvider("openai").WithStatusCode(apiErr.StatusCode)
	case apiErr.StatusCode >= 500:
		return errors.NewProviderError("service unavailable", errors.ErrProviderUnavailable).
			WithProvider("openai").WithStatusCode(apiErr.StatusCode)
	default:
		return errors.NewProviderError("request failed", err).
			WithProvider("openai").WithStatusCode(apiErr.StatusCode)
	}
}
