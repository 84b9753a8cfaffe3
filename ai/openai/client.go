package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
)

// errNoChoices indicates the model returned an empty choice list.
var errNoChoices = errors.New("no choices returned from model")

// generateText runs one chat completion and returns the trimmed first choice.
// system may be empty, in which case only the user message is sent.
func generateText(ctx context.Context, client llms.Model, system, user string, opts ...llms.CallOption) (string, error) {
	var content []llms.MessageContent
	if system != "" {
		content = append(content, llms.MessageContent{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(system),
			},
		})
	}
	content = append(content, llms.MessageContent{
		Role: llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{
			llms.TextPart(user),
		},
	})

	response, err := client.GenerateContent(ctx, content, opts...)
	if err != nil {
		return "", err
	}
	if len(response.Choices) < 1 {
		return "", errNoChoices
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
