// File: services/intelligence/geminiClient.go
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"grillbook/models"

	genai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const summarizerSystemPrompt = "You are a helpful assistant that summarizes documents."

type GeminiClient struct {
	client *genai.Client
}

func NewGeminiClient(apiKey string) *GeminiClient {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		panic(fmt.Sprintf("failed to create Gemini client: %v", err))
	}
	return &GeminiClient{client: client}
}

// Complete replays the role-tagged history as a chat session with the system
// text as the system instruction, and sends the final user turn.
func (g *GeminiClient) Complete(ctx context.Context, system string, history []models.Message) (string, error) {
	if len(history) == 0 {
		return "", errors.New("empty message history")
	}

	model := g.client.GenerativeModel("models/gemini-1.5-pro")
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}

	cs := model.StartChat()
	for _, msg := range history[:len(history)-1] {
		role := "user"
		if msg.Role == models.RoleAssistant {
			role = "model"
		}
		cs.History = append(cs.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	resp, err := cs.SendMessage(ctx, genai.Text(history[len(history)-1].Content))
	if err != nil {
		return "", fmt.Errorf("gemini generate error: %w", err)
	}
	return collectText(resp)
}

// Summarize condenses document text with a fixed summarizer prompt.
func (g *GeminiClient) Summarize(ctx context.Context, content string) (string, error) {
	model := g.client.GenerativeModel("models/gemini-1.5-pro")
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(summarizerSystemPrompt)}}

	prompt := fmt.Sprintf("Please summarize the following content:\n\n%s", content)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini summarize error: %w", err)
	}
	return collectText(resp)
}

func collectText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini returned no candidates")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if textPart, ok := part.(genai.Text); ok {
			sb.WriteString(string(textPart))
		}
	}
	return sb.String(), nil
}
