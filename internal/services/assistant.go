package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/studyhall/studyhall-server/internal/ai"
	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/store"
)

// Completions is the slice of the AI provider the assistant needs.
// *ai.Provider satisfies it; tests substitute a fake.
type Completions interface {
	Available() bool
	ActiveBackend() string
	Complete(ctx context.Context, msgs []ai.Message) (string, error)
	CompleteJSON(ctx context.Context, msgs []ai.Message, out any) error
}

const (
	chatSystemPrompt = "You are an AI study assistant helping students learn and understand complex topics. Provide clear, concise explanations and be supportive."

	summarizePrompt = "You are an AI academic assistant. Summarize the following text to create a comprehensive study note that captures the key points and important details. Format with appropriate headings, bullet points, and emphasis."
)

// AssistantService implements AI-backed study features on top of the
// completion provider and the store.
type AssistantService struct {
	completions Completions
	store       store.Store
	log         zerolog.Logger
}

func NewAssistantService(c Completions, s store.Store, log zerolog.Logger) *AssistantService {
	return &AssistantService{completions: c, store: s, log: log}
}

// Status reports whether any AI backend is configured and which one
// would serve the next request.
type Status struct {
	Available bool   `json:"available"`
	Service   string `json:"service"`
}

func (a *AssistantService) Status() Status {
	return Status{
		Available: a.completions.Available(),
		Service:   a.completions.ActiveBackend(),
	}
}

// ChatResult carries the assistant reply together with the persisted
// conversation it now belongs to.
type ChatResult struct {
	Response     string              `json:"response"`
	Conversation *model.Conversation `json:"conversation"`
}

// Chat sends a user message through the assistant. When conversationID
// is non-nil the existing transcript forms the context; otherwise a new
// conversation is seeded with the assistant's system prompt. The user
// message and the reply are persisted as a pair.
func (a *AssistantService) Chat(ctx context.Context, userID int64, conversationID *int64, message string) (*ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, fmt.Errorf("%w: message is required", model.ErrValidation)
	}

	var conv *model.Conversation
	if conversationID != nil {
		var err error
		conv, err = a.store.Conversations().Get(ctx, *conversationID)
		if err != nil {
			return nil, err
		}
	}

	var history []model.ChatMessage
	if conv != nil {
		history = append(history, conv.Messages...)
	} else {
		history = append(history, model.ChatMessage{Role: ai.RoleSystem, Content: chatSystemPrompt})
	}
	history = append(history, model.ChatMessage{Role: ai.RoleUser, Content: message})

	reply, err := a.completions.Complete(ctx, toAIMessages(history))
	if err != nil {
		return nil, err
	}

	updated := append(history, model.ChatMessage{Role: ai.RoleAssistant, Content: reply})

	if conv != nil {
		conv, err = a.store.Conversations().UpdateMessages(ctx, conv.ID, updated)
	} else {
		conv, err = a.store.Conversations().Create(ctx, &model.Conversation{UserID: userID, Messages: updated})
	}
	if err != nil {
		return nil, err
	}
	return &ChatResult{Response: reply, Conversation: conv}, nil
}

// Summarize generates a study note for the given content and persists
// it as a new summary row for the material. The material must exist.
func (a *AssistantService) Summarize(ctx context.Context, userID, materialID int64, content string) (*model.MaterialSummary, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("%w: content is required", model.ErrValidation)
	}
	if _, err := a.store.Materials().Get(ctx, materialID); err != nil {
		return nil, err
	}

	msgs := []ai.Message{
		{Role: ai.RoleSystem, Content: summarizePrompt},
		{Role: ai.RoleUser, Content: content},
	}
	summary, err := a.completions.Complete(ctx, msgs)
	if err != nil {
		return nil, err
	}

	return a.store.Summaries().Create(ctx, &model.MaterialSummary{
		UserID:     userID,
		MaterialID: materialID,
		Content:    summary,
	})
}

type generatedFlashcards struct {
	Flashcards []struct {
		Question string `json:"question"`
		Answer   string `json:"answer"`
	} `json:"flashcards"`
}

// GenerateFlashcards asks the assistant for count question/answer pairs
// about topic and persists each well-formed one. When the structured
// response cannot be used, it degrades to a single card built from a
// plain-text summary instead of failing the whole request.
func (a *AssistantService) GenerateFlashcards(ctx context.Context, userID int64, materialID *int64, topic string, count int) ([]*model.Flashcard, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, fmt.Errorf("%w: topic is required", model.ErrValidation)
	}
	if count <= 0 {
		count = 5
	}

	msgs := []ai.Message{{
		Role:    ai.RoleUser,
		Content: fmt.Sprintf("Generate %d flashcards for studying the topic: %s. Format the response as a JSON object with a 'flashcards' array of objects, each with 'question' and 'answer' fields.", count, topic),
	}}

	var payload generatedFlashcards
	err := a.completions.CompleteJSON(ctx, msgs, &payload)
	if err == nil && len(payload.Flashcards) > 0 {
		var cards []*model.Flashcard
		for _, c := range payload.Flashcards {
			if c.Question == "" || c.Answer == "" {
				continue
			}
			card, err := a.store.Flashcards().Create(ctx, &model.Flashcard{
				UserID:     userID,
				MaterialID: materialID,
				Question:   c.Question,
				Answer:     c.Answer,
			})
			if err != nil {
				return nil, err
			}
			cards = append(cards, card)
		}
		if len(cards) > 0 {
			return cards, nil
		}
	}
	var parseErr *ai.ParseError
	if err != nil && !errors.As(err, &parseErr) {
		return nil, err
	}

	// Unusable structured output: fall back to one card built from a
	// free-text summary, so the student still gets something.
	a.log.Warn().Err(err).Str("topic", topic).Msg("flashcard generation degraded to summary fallback")
	summary, sumErr := a.completions.Complete(ctx, []ai.Message{{
		Role:    ai.RoleUser,
		Content: fmt.Sprintf("Provide a concise summary of key concepts about: %s", topic),
	}})
	if sumErr != nil {
		return nil, sumErr
	}
	if summary == "" {
		summary = fmt.Sprintf("Information about %s", topic)
	}
	card, cardErr := a.store.Flashcards().Create(ctx, &model.Flashcard{
		UserID:     userID,
		MaterialID: materialID,
		Question:   fmt.Sprintf("Key concepts about %s?", topic),
		Answer:     summary,
	})
	if cardErr != nil {
		return nil, cardErr
	}
	return []*model.Flashcard{card}, nil
}

type generatedPlan struct {
	Sessions []struct {
		Title     string `json:"title"`
		Subject   string `json:"subject"`
		StartTime string `json:"startTime"`
		EndTime   string `json:"endTime"`
	} `json:"sessions"`
}

// GenerateStudyPlan asks the assistant to lay out study sessions across
// durationDays and persists each well-formed one. Rows missing a field
// or with a malformed timestamp are skipped; a response that is not
// valid JSON at all fails the call, there is no degraded plan.
func (a *AssistantService) GenerateStudyPlan(ctx context.Context, userID int64, topics []string, durationDays, hoursPerDay int) ([]*model.StudySession, error) {
	if len(topics) == 0 {
		return nil, fmt.Errorf("%w: topics are required", model.ErrValidation)
	}
	if durationDays <= 0 || hoursPerDay <= 0 {
		return nil, fmt.Errorf("%w: duration days and hours per day must be positive", model.ErrValidation)
	}

	msgs := []ai.Message{{
		Role:    ai.RoleUser,
		Content: fmt.Sprintf("Generate a detailed %d-day study plan for the following topics: %s. The student can study %d hours per day. Format the response as a JSON object with a 'sessions' array, each session having fields 'title', 'subject', 'startTime', 'endTime'. Use ISO date strings for times, starting from tomorrow. Distribute the sessions appropriately across the specified duration.", durationDays, strings.Join(topics, ", "), hoursPerDay),
	}}

	var payload generatedPlan
	if err := a.completions.CompleteJSON(ctx, msgs, &payload); err != nil {
		return nil, err
	}
	if len(payload.Sessions) == 0 {
		return nil, errors.New("assistant returned no study sessions")
	}

	var sessions []*model.StudySession
	for _, row := range payload.Sessions {
		if row.Title == "" || row.Subject == "" {
			continue
		}
		start, err := time.Parse(time.RFC3339, row.StartTime)
		if err != nil {
			a.log.Warn().Str("startTime", row.StartTime).Msg("skipping plan session with bad start time")
			continue
		}
		end, err := time.Parse(time.RFC3339, row.EndTime)
		if err != nil {
			a.log.Warn().Str("endTime", row.EndTime).Msg("skipping plan session with bad end time")
			continue
		}
		if !start.Before(end) {
			continue
		}
		sess, err := a.store.Sessions().Create(ctx, &model.StudySession{
			UserID:    userID,
			Title:     row.Title,
			Subject:   row.Subject,
			StartTime: start,
			EndTime:   end,
		})
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	if len(sessions) == 0 {
		return nil, errors.New("assistant returned no usable study sessions")
	}
	return sessions, nil
}

func toAIMessages(in []model.ChatMessage) []ai.Message {
	out := make([]ai.Message, len(in))
	for i, m := range in {
		out[i] = ai.Message{Role: m.Role, Content: m.Content}
	}
	return out
}
