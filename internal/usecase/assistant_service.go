package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/tagtracer/backend/internal/domain"
)

const (
	assistantGreeting = "Hi! I'm **TagTracer AI**. Type any product above to compare live, " +
		"or ask me to analyze these specific deals for you."
	assistantFailureReply = "Connection timeout. Please ensure your API key is correctly configured."
)

// liveDealKeywords route a question to the live web search instead of advice
// over the products already on screen
var liveDealKeywords = []string{"better", "more", "other"}

// AssistantService keeps the chat history and answers shopping questions
type AssistantService struct {
	advisor  domain.Advisor
	products func() []domain.Product

	mu      sync.Mutex
	history []domain.ChatMessage
	busy    bool
}

// NewAssistantService creates an assistant. products supplies the listing
// the user is currently looking at.
func NewAssistantService(advisor domain.Advisor, products func() []domain.Product) *AssistantService {
	return &AssistantService{
		advisor:  advisor,
		products: products,
		history: []domain.ChatMessage{
			{Role: domain.RoleAssistant, Content: assistantGreeting},
		},
	}
}

// History returns a copy of the conversation so far
func (s *AssistantService) History() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ChatMessage(nil), s.history...)
}

// Send appends the user's question and the assistant's reply to the history
// and returns the reply. AI failures are answered with a fixed message rather
// than an error.
func (s *AssistantService) Send(ctx context.Context, query string) (domain.ChatMessage, error) {
	if strings.TrimSpace(query) == "" {
		return domain.ChatMessage{}, domain.ErrInvalidRequest
	}

	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return domain.ChatMessage{}, domain.ErrAssistantBusy
	}
	s.busy = true
	s.history = appendMessage(s.history, domain.ChatMessage{Role: domain.RoleUser, Content: query})
	s.mu.Unlock()

	reply := s.answer(ctx, query)

	s.mu.Lock()
	s.history = appendMessage(s.history, reply)
	s.busy = false
	s.mu.Unlock()

	return reply, nil
}

func (s *AssistantService) answer(ctx context.Context, query string) domain.ChatMessage {
	reply := domain.ChatMessage{Role: domain.RoleAssistant}

	if wantsLiveDeals(query) {
		deals, err := s.advisor.SearchLiveDeals(ctx, query)
		if err != nil {
			log.Error().Err(err).Msg("live deal search failed")
			reply.Content = assistantFailureReply
			return reply
		}
		reply.Content = deals.Text
		reply.Sources = deals.Sources
		return reply
	}

	var products []domain.Product
	if s.products != nil {
		products = s.products()
	}
	advice, err := s.advisor.SmartAdvice(ctx, query, products)
	if err != nil {
		log.Error().Err(err).Msg("smart advice failed")
		reply.Content = assistantFailureReply
		return reply
	}
	reply.Content = advice
	return reply
}

func wantsLiveDeals(query string) bool {
	q := strings.ToLower(query)
	for _, kw := range liveDealKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// appendMessage never writes into the backing array of history, so copies
// handed out by History stay valid
func appendMessage(history []domain.ChatMessage, msg domain.ChatMessage) []domain.ChatMessage {
	out := make([]domain.ChatMessage, len(history), len(history)+1)
	copy(out, history)
	return append(out, msg)
}
