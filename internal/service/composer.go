package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"hitechhomes/internal/model"
	"hitechhomes/internal/observability"
)

// ComposeInput carries everything the composer needs for one reply
type ComposeInput struct {
	Message      string
	Exact        []model.Property
	Alternatives []model.Property
	History      []model.ConversationTurn
}

// Composer turns search results into a natural-language reply. It never
// fails: implementations absorb every error into a valid reply string.
type Composer interface {
	Compose(ctx context.Context, in ComposeInput) string
}

// ClassifyState maps search results onto the three mutually exclusive
// presentation states, checked in order.
func ClassifyState(exact, alternatives []model.Property) model.ResultState {
	switch {
	case len(exact) > 0:
		return model.StateExactMatch
	case len(alternatives) > 0:
		return model.StateAlternatives
	default:
		return model.StateNoResults
	}
}

// CompletionComposer phrases replies through the completion service and falls
// back to the deterministic templates on any failure.
type CompletionComposer struct {
	client       CompletionClient
	fallback     TemplateComposer
	historyTurns int
	log          zerolog.Logger
}

var _ Composer = (*CompletionComposer)(nil)

// NewCompletionComposer creates the completion-backed composer
func NewCompletionComposer(client CompletionClient, historyTurns int, log zerolog.Logger) *CompletionComposer {
	return &CompletionComposer{client: client, historyTurns: historyTurns, log: log}
}

// Compose requests a completion and returns its text. Missing credential,
// non-success status, malformed payload, timeout: all of them route to the
// template reply. This is the terminal error boundary of the chatbot request.
func (c *CompletionComposer) Compose(ctx context.Context, in ComposeInput) string {
	if c.client == nil || !c.client.IsEnabled() {
		observability.ObserveFallback("disabled")
		return c.fallback.Compose(ctx, in)
	}

	resp, err := c.client.ChatCompletion(ctx, ChatCompletionRequest{
		Messages: c.buildMessages(in),
	})
	if err != nil {
		c.log.Warn().Err(err).Msg("completion service failed, using template reply")
		observability.ObserveFallback("service_error")
		return c.fallback.Compose(ctx, in)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		c.log.Warn().Msg("completion response carried no content, using template reply")
		observability.ObserveFallback("service_error")
		return c.fallback.Compose(ctx, in)
	}

	return resp.Choices[0].Message.Content
}

// buildMessages assembles the system instruction, the trailing conversation
// turns (system turns dropped, roles mapped), and the current message.
func (c *CompletionComposer) buildMessages(in ComposeInput) []ChatMessage {
	messages := []ChatMessage{
		{Role: "system", Content: buildSystemPrompt(in)},
	}

	history := make([]model.ConversationTurn, 0, len(in.History))
	for _, turn := range in.History {
		if turn.Type == model.TurnSystem {
			continue
		}
		history = append(history, turn)
	}
	if len(history) > c.historyTurns {
		history = history[len(history)-c.historyTurns:]
	}

	for _, turn := range history {
		role := "assistant"
		if turn.Type == model.TurnUser {
			role = "user"
		}
		messages = append(messages, ChatMessage{Role: role, Content: turn.Text})
	}

	messages = append(messages, ChatMessage{Role: "user", Content: in.Message})
	return messages
}

func buildSystemPrompt(in ComposeInput) string {
	state := ClassifyState(in.Exact, in.Alternatives)

	var b strings.Builder
	b.WriteString(`You are an intelligent property assistant for the Hi-Tech Homes real estate website. Your role is to:

1. Answer user questions naturally and conversationally
2. Help users find properties based on their specific requirements
3. Provide detailed information about properties, pricing, locations, and amenities
4. When no exact match is found, politely inform the user and suggest alternatives
5. Be friendly, helpful, and always respond directly to what the user asks

SEARCH STATUS: ` + string(state) + "\n")

	switch state {
	case model.StateExactMatch:
		b.WriteString("\nPERFECT MATCHES FOUND:\n")
		b.WriteString(formatPropertyList(in.Exact))
		b.WriteString("\nPresent these properties enthusiastically! They are exactly what the user is looking for. 🎉\n")
	case model.StateAlternatives:
		b.WriteString("\nNO EXACT MATCHES for the user's specific requirements.\n")
		b.WriteString("\nHowever, we have ALTERNATIVE SUGGESTIONS:\n")
		b.WriteString(formatPropertyList(in.Alternatives))
		b.WriteString(`
IMPORTANT:
- First apologize that we don't have exact matches for their requirements
- Explain what's different (price, BHK, location)
- Present these alternatives as "close matches" or "similar options"
- Be encouraging: "You might also like..." or "Here are some great alternatives..."
- Ask if they'd like to adjust their budget/requirements
`)
	case model.StateNoResults:
		b.WriteString(`
NO PROPERTIES FOUND matching the user's query AND no suitable alternatives.

IMPORTANT:
- Politely apologize: "I'm sorry, we don't currently have properties matching your exact requirements."
- Ask for their contact details: "However, I can notify you when matching properties become available!"
- Suggest they try: a different budget range, a different BHK, a different location
- Offer to show them our latest properties
- Be empathetic and helpful
`)
	}

	b.WriteString(`
CONVERSATION STYLE:
- Be warm, friendly, and empathetic
- Answer questions directly and naturally
- Use emojis occasionally: 🏠 🔑 💰 📍 ✨ 😊
- Always end with a helpful follow-up question
- Keep responses concise but informative (2-4 sentences for most answers)`)

	return b.String()
}

func formatPropertyList(properties []model.Property) string {
	var b strings.Builder
	for i, p := range properties {
		amenities := strings.Join(p.Amenities, ", ")
		if amenities == "" {
			amenities = "Basic amenities"
		}
		area := "Not specified"
		if p.Area != nil {
			area = *p.Area
		}
		fmt.Fprintf(&b, `
%d. %s
   💰 Price: ₹%s
   🏠 Config: %d BHK, %d Bathrooms
   📍 Location: %s, %s
   📏 Area: %s
   ✨ Amenities: %s
`, i+1, p.Title, formatINR(p.Price), p.BHK, p.Bathrooms, p.City, p.Address, area, amenities)
	}
	return b.String()
}

// formatINR renders a price with Indian digit grouping, e.g. 4500000 ->
// "45,00,000".
func formatINR(amount float64) string {
	s := strconv.FormatInt(int64(amount), 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(append(groups, tail), ",")
	}
	if neg {
		s = "-" + s
	}
	return s
}
