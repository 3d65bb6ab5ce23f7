package memory

import (
	"time"

	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/store"
)

// NewSeeded constructs an in-memory store pre-populated with demo fixture
// rows: one user, three badges (all earned), three materials, three
// sessions, one flashcard and one conversation. The dataset is volatile
// and recreated on every process start.
func NewSeeded() store.Store {
	s := newMemStore()
	s.seed(time.Now())
	return s
}

func (s *memStore) seed(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.userID++
	alex := &model.User{
		ID:             s.userID,
		Username:       "alex",
		Password:       "password123",
		Name:           "Alex Johnson",
		Email:          "alex@example.com",
		Level:          5,
		XP:             2500,
		TotalStudyTime: 750,
		CreatedAt:      now,
	}
	s.users[alex.ID] = alex

	badgeRows := []*model.Badge{
		{Name: "Quick Learner", Description: "Completed 10 study sessions", Icon: "bolt", Requirement: "10 study sessions"},
		{Name: "Consistent", Description: "Studied for 7 days in a row", Icon: "calendar_today", Requirement: "7 day streak"},
		{Name: "Note Master", Description: "Created 50 flashcards", Icon: "edit_note", Requirement: "50 flashcards"},
	}
	for _, b := range badgeRows {
		s.badgeID++
		b.ID = s.badgeID
		s.badges[b.ID] = b

		s.userBadgeID++
		s.userBadges[s.userBadgeID] = &model.UserBadge{
			ID:       s.userBadgeID,
			UserID:   alex.ID,
			BadgeID:  b.ID,
			EarnedAt: now,
		}
	}

	materialRows := []*model.StudyMaterial{
		{
			Title:       "Introduction to Psychology.pdf",
			Description: strPtr("Comprehensive introduction to psychology concepts"),
			FileType:    "pdf",
			FilePath:    "/uploads/psychology_intro.pdf",
			Progress:    75,
			LastViewed:  timePtr(now.Add(-2 * time.Hour)),
			CreatedAt:   now.Add(-7 * 24 * time.Hour),
		},
		{
			Title:       "Data Structures & Algorithms.pdf",
			Description: strPtr("Computer science fundamentals"),
			FileType:    "pdf",
			FilePath:    "/uploads/dsa.pdf",
			Progress:    40,
			LastViewed:  timePtr(now.Add(-24 * time.Hour)),
			CreatedAt:   now.Add(-14 * 24 * time.Hour),
		},
		{
			Title:       "Organic Chemistry Notes.pdf",
			Description: strPtr("Collection of organic chemistry notes"),
			FileType:    "pdf",
			FilePath:    "/uploads/organic_chem.pdf",
			Progress:    25,
			LastViewed:  timePtr(now.Add(-3 * 24 * time.Hour)),
			CreatedAt:   now.Add(-21 * 24 * time.Hour),
		},
	}
	for _, m := range materialRows {
		s.materialID++
		m.ID = s.materialID
		m.UserID = alex.ID
		s.materials[m.ID] = m
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := today.Add(24 * time.Hour)
	sessionRows := []*model.StudySession{
		{
			Title:     "Data Structures & Algorithms",
			Subject:   "Computer Science",
			StartTime: today.Add(10 * time.Hour),
			EndTime:   today.Add(11*time.Hour + 30*time.Minute),
			CreatedAt: today.Add(-24 * time.Hour),
		},
		{
			Title:     "Psychology Exam Prep",
			Subject:   "Psychology",
			StartTime: today.Add(14 * time.Hour),
			EndTime:   today.Add(16 * time.Hour),
			CreatedAt: today.Add(-24 * time.Hour),
		},
		{
			Title:     "Organic Chemistry Review",
			Subject:   "Chemistry",
			StartTime: tomorrow.Add(9*time.Hour + 30*time.Minute),
			EndTime:   tomorrow.Add(11 * time.Hour),
			CreatedAt: today.Add(-24 * time.Hour),
		},
	}
	for _, sess := range sessionRows {
		s.sessionID++
		sess.ID = s.sessionID
		sess.UserID = alex.ID
		s.sessions[sess.ID] = sess
	}

	s.flashcardID++
	psychologyID := materialRows[0].ID
	s.flashcards[s.flashcardID] = &model.Flashcard{
		ID:         s.flashcardID,
		UserID:     alex.ID,
		MaterialID: &psychologyID,
		Question:   "What are the key components of a neural network?",
		Answer:     "A neural network consists of: neurons (nodes), connections (weights), activation functions, and input, hidden, and output layers.",
		CreatedAt:  now.Add(-3 * 24 * time.Hour),
	}

	s.conversationID++
	s.conversations[s.conversationID] = &model.Conversation{
		ID:     s.conversationID,
		UserID: alex.ID,
		Messages: []model.ChatMessage{
			{Role: "assistant", Content: "Hi Alex! I'm your AI Study Buddy. How can I help with your studies today?"},
			{Role: "user", Content: "Can you explain the concept of neural networks in simple terms?"},
			{Role: "assistant", Content: "Think of neural networks like a team of friends solving a puzzle: each friend spots certain patterns, they pass information to each other, and when they make mistakes they adjust. With practice the team gets better at similar puzzles. Would you like me to explain any specific part in more detail?"},
		},
		CreatedAt: now.Add(-30 * time.Minute),
	}
}

func strPtr(s string) *string        { return &s }
func timePtr(t time.Time) *time.Time { return &t }
