package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hitechhomes/internal/model"
)

type fakeCompletionClient struct {
	enabled bool
	resp    *ChatCompletionResponse
	err     error
	lastReq *ChatCompletionRequest
	calls   int
}

func (f *fakeCompletionClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	f.calls++
	f.lastReq = &req
	return f.resp, f.err
}

func (f *fakeCompletionClient) IsEnabled() bool { return f.enabled }

func completionResponse(t *testing.T, content string) *ChatCompletionResponse {
	t.Helper()
	payload := fmt.Sprintf(`{"choices":[{"index":0,"message":{"role":"assistant","content":%q},"finish_reason":"stop"}]}`, content)
	var resp ChatCompletionResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))
	return &resp
}

func TestCompletionComposer_UsesCompletionContent(t *testing.T) {
	client := &fakeCompletionClient{enabled: true, resp: completionResponse(t, "Here are two lovely flats in Pune! 🏠")}
	c := NewCompletionComposer(client, 6, zerolog.Nop())

	reply := c.Compose(context.Background(), ComposeInput{Message: "2 bhk in Pune"})

	assert.Equal(t, "Here are two lovely flats in Pune! 🏠", reply)
	assert.Equal(t, 1, client.calls)
}

func TestCompletionComposer_DisabledClientUsesTemplate(t *testing.T) {
	client := &fakeCompletionClient{enabled: false}
	c := NewCompletionComposer(client, 6, zerolog.Nop())

	reply := c.Compose(context.Background(), ComposeInput{Message: "2 bhk under 50 lakh"})

	assert.Zero(t, client.calls, "disabled client must never be called")
	assert.Equal(t, TemplateComposer{}.Compose(context.Background(), ComposeInput{Message: "2 bhk under 50 lakh"}), reply)
}

func TestCompletionComposer_NilClientUsesTemplate(t *testing.T) {
	c := NewCompletionComposer(nil, 6, zerolog.Nop())

	reply := c.Compose(context.Background(), ComposeInput{Message: "hello"})

	assert.NotEmpty(t, reply)
}

func TestCompletionComposer_ErrorFallsBackToTemplate(t *testing.T) {
	client := &fakeCompletionClient{enabled: true, err: fmt.Errorf("upstream timeout")}
	c := NewCompletionComposer(client, 6, zerolog.Nop())

	in := ComposeInput{
		Message: "2 bhk in Pune",
		Exact:   []model.Property{{ID: 1, Title: "Sunrise Towers", Price: 4500000, BHK: 2, Bathrooms: 2, City: "Pune"}},
	}
	reply := c.Compose(context.Background(), in)

	assert.Contains(t, reply, "Great news", "template reply must still reflect the exact matches")
	assert.Contains(t, reply, "45,00,000")
}

func TestCompletionComposer_EmptyContentFallsBackToTemplate(t *testing.T) {
	for name, resp := range map[string]*ChatCompletionResponse{
		"no choices":    {},
		"blank content": completionResponse(t, "   \n"),
	} {
		t.Run(name, func(t *testing.T) {
			client := &fakeCompletionClient{enabled: true, resp: resp}
			c := NewCompletionComposer(client, 6, zerolog.Nop())

			reply := c.Compose(context.Background(), ComposeInput{Message: "hello"})

			assert.NotEmpty(t, reply)
			assert.Contains(t, reply, "perfect property")
		})
	}
}

func TestCompletionComposer_BuildMessages(t *testing.T) {
	c := NewCompletionComposer(nil, 6, zerolog.Nop())

	history := []model.ConversationTurn{
		{Type: model.TurnUser, Text: "turn 1"},
		{Type: model.TurnSystem, Text: "internal note"},
		{Type: model.TurnBot, Text: "turn 2"},
		{Type: model.TurnUser, Text: "turn 3"},
		{Type: model.TurnBot, Text: "turn 4"},
		{Type: model.TurnUser, Text: "turn 5"},
		{Type: model.TurnBot, Text: "turn 6"},
		{Type: model.TurnUser, Text: "turn 7"},
	}
	messages := c.buildMessages(ComposeInput{Message: "current question", History: history})

	// system prompt + 6 trailing non-system turns + current message
	require.Len(t, messages, 8)
	assert.Equal(t, "system", messages[0].Role)
	assert.Contains(t, messages[0].Content, "Hi-Tech Homes")

	assert.Equal(t, ChatMessage{Role: "assistant", Content: "turn 2"}, messages[1], "oldest turn beyond the window is dropped")
	assert.Equal(t, ChatMessage{Role: "user", Content: "turn 3"}, messages[2])
	assert.Equal(t, ChatMessage{Role: "user", Content: "turn 7"}, messages[6])
	assert.Equal(t, ChatMessage{Role: "user", Content: "current question"}, messages[7])

	for _, m := range messages {
		assert.NotEqual(t, "internal note", m.Content, "system turns never reach the completion API")
	}
}

func TestBuildSystemPrompt_States(t *testing.T) {
	exact := []model.Property{{ID: 1, Title: "Sunrise Towers", Price: 4500000, BHK: 2, Bathrooms: 2, City: "Pune", Address: "MG Road"}}

	t.Run("exact match", func(t *testing.T) {
		prompt := buildSystemPrompt(ComposeInput{Exact: exact})
		assert.Contains(t, prompt, "SEARCH STATUS: EXACT_MATCH")
		assert.Contains(t, prompt, "Sunrise Towers")
		assert.Contains(t, prompt, "₹45,00,000")
		assert.Contains(t, prompt, "2 BHK")
		assert.Contains(t, prompt, "Area: Not specified")
		assert.Contains(t, prompt, "Amenities: Basic amenities")
	})

	t.Run("alternatives", func(t *testing.T) {
		prompt := buildSystemPrompt(ComposeInput{Alternatives: exact})
		assert.Contains(t, prompt, "SEARCH STATUS: ALTERNATIVES")
		assert.Contains(t, prompt, "ALTERNATIVE SUGGESTIONS")
		assert.Contains(t, prompt, "Sunrise Towers")
	})

	t.Run("no results", func(t *testing.T) {
		prompt := buildSystemPrompt(ComposeInput{})
		assert.Contains(t, prompt, "SEARCH STATUS: NO_RESULTS")
		assert.Contains(t, prompt, "NO PROPERTIES FOUND")
		assert.NotContains(t, prompt, "Sunrise Towers")
	})
}

func TestTemplateComposer_Deterministic(t *testing.T) {
	in := ComposeInput{
		Message: "2 bhk under 50 lakh",
		Exact: []model.Property{
			{ID: 1, Title: "Sunrise Towers", Price: 4500000, BHK: 2, Bathrooms: 2, City: "Pune"},
			{ID: 2, Title: "Lake View", Price: 4800000, BHK: 2, Bathrooms: 2, City: "Pune"},
		},
	}
	first := TemplateComposer{}.Compose(context.Background(), in)
	second := TemplateComposer{}.Compose(context.Background(), in)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "found 2 properties")
	assert.Contains(t, first, `"Sunrise Towers"`)
}

func TestFormatINR(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0"},
		{123, "123"},
		{1000, "1,000"},
		{100000, "1,00,000"},
		{800000, "8,00,000"},
		{4500000, "45,00,000"},
		{10000000, "1,00,00,000"},
		{15000000, "1,50,00,000"},
		{-4500000, "-45,00,000"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatINR(tt.amount))
		})
	}
}

func TestTemplateComposer_AlternativesMentionClosestMatch(t *testing.T) {
	in := ComposeInput{
		Message: "3 bhk under 50 lakh in Pune",
		Alternatives: []model.Property{
			{ID: 9, Title: "Palm Grove", Price: 5200000, BHK: 3, Bathrooms: 3, City: "Pune"},
		},
	}
	reply := TemplateComposer{}.Compose(context.Background(), in)

	assert.True(t, strings.Contains(reply, "Palm Grove"))
	assert.Contains(t, reply, "52,00,000")
	assert.Contains(t, reply, "similar properties")
}
