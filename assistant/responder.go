package assistant

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// Responder produces a reply to a question. ok is false when it has nothing
// to say and the next responder should try.
type Responder interface {
	Reply(ctx context.Context, question string) (answer string, ok bool, err error)
}

// CannedResponder answers from a knowledge base.
type CannedResponder struct {
	KB KnowledgeBase
}

func (r CannedResponder) Reply(_ context.Context, question string) (string, bool, error) {
	answer, ok := r.KB.Lookup(question)
	return answer, ok, nil
}

const systemPrompt = `You are the setup assistant of a property management console.
Answer briefly and only about configuring service requests: teams, categories, service types, statuses, form fields, notifications and tenant messaging.
If the question is unrelated, say you can only help with service request setup.`

// OpenAIResponder asks a chat model. If client is nil every reply is
// declined, which leaves the fallback to the caller.
type OpenAIResponder struct {
	client *openai.Client
	model  shared.ChatModel
}

// NewOpenAIResponder creates the responder. Pass an empty apiKey to disable
// calls.
func NewOpenAIResponder(apiKey string) *OpenAIResponder {
	if apiKey == "" {
		return &OpenAIResponder{client: nil}
	}
	c := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIResponder{client: &c, model: shared.ChatModelGPT4oMini}
}

func (r *OpenAIResponder) Enabled() bool {
	return r.client != nil
}

func (r *OpenAIResponder) Reply(ctx context.Context, question string) (string, bool, error) {
	if r.client == nil {
		return "", false, nil
	}

	resp, err := r.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: r.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(question),
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", false, nil
	}
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	return answer, answer != "", nil
}

// Chain asks each responder in turn and returns the first answer. Errors
// from one responder are collected and the next one is tried.
type Chain []Responder

func (c Chain) Reply(ctx context.Context, question string) (string, bool, error) {
	var firstErr error
	for _, r := range c {
		answer, ok, err := r.Reply(ctx, question)
		if err != nil {
			if ctx.Err() != nil {
				return "", false, ctx.Err()
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok {
			return answer, true, nil
		}
	}
	return "", false, firstErr
}
