package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"hitechhomes/internal/model"
	"hitechhomes/internal/observability"
	"hitechhomes/internal/repository"
)

// ChatLogStore records handled chatbot turns for the analytics dashboard
type ChatLogStore interface {
	LogChat(ctx context.Context, entry model.ChatLog) error
}

var _ ChatLogStore = (*repository.PostgresRepository)(nil)

// maxReturnedProperties caps the property summaries in the HTTP response
const maxReturnedProperties = 3

// ChatService runs the full chatbot pipeline for one message: primary
// search, the relaxation chain when that comes back empty, and response
// composition. It holds no state across requests.
type ChatService struct {
	search   *PropertySearch
	suggest  *Suggester
	composer Composer
	logs     ChatLogStore
	log      zerolog.Logger
}

// NewChatService wires the chatbot pipeline
func NewChatService(search *PropertySearch, suggest *Suggester, composer Composer, logs ChatLogStore, log zerolog.Logger) *ChatService {
	return &ChatService{
		search:   search,
		suggest:  suggest,
		composer: composer,
		logs:     logs,
		log:      log,
	}
}

// HandleMessage answers one chat message. The suggester only runs when the
// primary search found nothing, and the response carries either exact
// matches or alternatives, never both.
func (s *ChatService) HandleMessage(ctx context.Context, req model.ChatRequest) *model.ChatResponse {
	startTime := time.Now()

	exact := s.search.Search(ctx, req.Message)

	var alternatives []model.Property
	if len(exact) == 0 {
		alternatives = s.suggest.Suggest(ctx, req.Message)
	}

	reply := s.composer.Compose(ctx, ComposeInput{
		Message:      req.Message,
		Exact:        exact,
		Alternatives: alternatives,
		History:      req.ConversationHistory,
	})

	state := ClassifyState(exact, alternatives)
	properties := pickResponseProperties(exact, alternatives)
	took := time.Since(startTime)
	observability.ObserveChat(string(state), took)

	// Analytics logging is best-effort and off the request path
	go func() {
		entry := model.ChatLog{
			ID:             uuid.NewString(),
			Message:        req.Message,
			Intent:         ExtractIntent(req.Message),
			ResultState:    state,
			ResultCount:    len(properties),
			ResponseTimeMs: took.Milliseconds(),
		}
		if err := s.logs.LogChat(context.Background(), entry); err != nil {
			s.log.Warn().Err(err).Msg("failed to log chat turn")
		}
	}()

	return &model.ChatResponse{
		Success:    true,
		Reply:      reply,
		Properties: properties,
	}
}

// pickResponseProperties returns up to three exact matches if any, else up
// to three alternatives, else nil (rendered as JSON null).
func pickResponseProperties(exact, alternatives []model.Property) []model.Property {
	source := exact
	if len(source) == 0 {
		source = alternatives
	}
	if len(source) == 0 {
		return nil
	}
	if len(source) > maxReturnedProperties {
		source = source[:maxReturnedProperties]
	}
	return source
}
