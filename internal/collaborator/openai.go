package collaborator

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/DHYEY166/teamflow-enterprise/internal/contract"
	"github.com/DHYEY166/teamflow-enterprise/internal/models"
)

const systemInstruction = `You are TeamFlow AI Core. Respond ONLY in JSON.

ACTION TRIGGERS:
1. ADD_TASK:
   - Pattern: "[Name] needs to [action]", "I should [action]", "Task: [action]", "[Name] will [action]".
   - Assignee: Map names to the PERSONNEL list (e.g., "Alex" -> "Alex Rivera").
   - Title: The specific action and deadline mentioned.

2. ANNOUNCE:
   - Pattern: "Announce...", "Broadcast...", "Tell everyone...".
   - Scope: "global" for all channels, "local" for this channel.

3. PRESENCE_UPDATE:
   - Pattern: "going on a break", "brb", "away", "back", "lunch", "meeting", "signing off".
   - Status: "idle" for breaks/lunch, "offline" for signing off, "online" for back.

RESPONSE PROTOCOL:
- shouldIntervene: MUST be true if any of the above patterns are detected.
- replyText: A very short confirmation (e.g., "Logged the task for Alex.").
- presenceUpdates: Array of { userId: string, status: "online" | "offline" | "idle" }.
- actions: Array of { type: "ADD_TASK" | "ANNOUNCE", payload: { title, assignee, content, scope } }.`

const (
	summaryFallback = "Recap failed."
	summaryEmpty    = "No recent logs."
)

// OpenAICollaborator talks to an OpenAI-compatible chat completion
// endpoint with a fixed low-temperature, JSON-only response mode.
type OpenAICollaborator struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

func NewOpenAICollaborator(apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) *OpenAICollaborator {
	return &OpenAICollaborator{
		client:      openai.NewClient(apiKey),
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

func (c *OpenAICollaborator) ProcessChatContext(ctx context.Context, room models.Room, newMessage, senderName string) (*contract.AIResponse, error) {
	prompt := buildPrompt(room, newMessage, senderName)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemInstruction,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONObject,
			},
		},
	)
	if err != nil {
		c.logger.Error("Collaborator call failed",
			zap.Error(err),
			zap.String("room_id", room.ID))
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return contract.Empty(), nil
	}

	// Decode is tolerant: anything malformed is a non-intervention.
	return contract.Decode(resp.Choices[0].Message.Content), nil
}

func (c *OpenAICollaborator) SummarizeRoom(ctx context.Context, room models.Room) (string, error) {
	history := flattenMessages(room.Messages, 10)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "One short sentence.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: "Short technical recap:\n\n" + history,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
		},
	)
	if err != nil {
		c.logger.Error("Summarization failed",
			zap.Error(err),
			zap.String("room_id", room.ID))
		return summaryFallback, nil
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return summaryEmpty, nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// buildPrompt flattens the room context into the fixed request shape:
// room name, sender, roster, last two prior messages, new input.
func buildPrompt(room models.Room, newMessage, senderName string) string {
	personnel := make([]string, 0, len(room.Members))
	for _, m := range room.Members {
		personnel = append(personnel, m.Name)
	}

	return fmt.Sprintf("ROOM: #%s\nSENDER: %s\nPERSONNEL: %s\nHISTORY:\n%s\nINPUT: %q",
		room.Name,
		senderName,
		strings.Join(personnel, ", "),
		flattenMessages(room.Messages, 2),
		newMessage,
	)
}

// flattenMessages renders the last n messages as "sender: content" lines.
func flattenMessages(msgs []models.Message, n int) string {
	if len(msgs) > n {
		msgs = msgs[len(msgs)-n:]
	}
	lines := make([]string, 0, len(msgs))
	for _, m := range msgs {
		lines = append(lines, m.SenderName+": "+m.Content)
	}
	return strings.Join(lines, "\n")
}
