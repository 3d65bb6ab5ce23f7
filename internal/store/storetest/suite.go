package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/store"
)

// Run exercises a compliance suite against a store.Store implementation.
// Implementations should provide a clean, isolated store from makeStore.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	// Users
	u, err := s.Users().Create(ctx, &model.User{Username: "taylor", Password: "secret99", Name: "Taylor", Email: "taylor@example.test"})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if u.ID == 0 || u.Level != 1 || u.XP != 0 || u.TotalStudyTime != 0 || u.CreatedAt.IsZero() {
		t.Fatalf("CreateUser defaults not applied: %+v", u)
	}
	if got, err := s.Users().Get(ctx, u.ID); err != nil || got.Username != "taylor" {
		t.Fatalf("GetUser: got=%v err=%v", got, err)
	}
	if got, err := s.Users().GetByUsername(ctx, "taylor"); err != nil || got.ID != u.ID {
		t.Fatalf("GetUserByUsername: got=%v err=%v", got, err)
	}
	if _, err := s.Users().Create(ctx, &model.User{Username: "taylor", Password: "other", Email: "dup@example.test"}); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate username: want ErrConflict, got %v", err)
	}
	lvl := 3
	if got, err := s.Users().Update(ctx, u.ID, model.UserPatch{Level: &lvl}); err != nil || got.Level != 3 {
		t.Fatalf("UpdateUser: got=%v err=%v", got, err)
	}

	// Materials
	m, err := s.Materials().Create(ctx, &model.StudyMaterial{UserID: u.ID, Title: "Calculus.pdf", FileType: "pdf", FilePath: "/uploads/calc.pdf"})
	if err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}
	if m.Progress != 0 {
		t.Fatalf("CreateMaterial default progress: %d", m.Progress)
	}
	prog := 50
	if got, err := s.Materials().Update(ctx, m.ID, model.MaterialPatch{Progress: &prog}); err != nil || got.Progress != 50 {
		t.Fatalf("UpdateMaterial: got=%v err=%v", got, err)
	}
	if got, err := s.Materials().Get(ctx, m.ID); err != nil || got.Progress != 50 {
		t.Fatalf("GetMaterial after update: got=%v err=%v", got, err)
	}
	if err := s.Materials().Delete(ctx, m.ID); err != nil {
		t.Fatalf("DeleteMaterial: %v", err)
	}
	if _, err := s.Materials().Get(ctx, m.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("GetMaterial after delete: want ErrNotFound, got %v", err)
	}
	if err := s.Materials().Delete(ctx, m.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteMaterial unknown id: want ErrNotFound, got %v", err)
	}

	// Sessions: upcoming filter excludes past and completed rows.
	now := time.Now()
	past, err := s.Sessions().Create(ctx, &model.StudySession{UserID: u.ID, Title: "past", Subject: "s", StartTime: now.Add(-time.Hour), EndTime: now.Add(-30 * time.Minute)})
	if err != nil {
		t.Fatalf("CreateSession past: %v", err)
	}
	soon, err := s.Sessions().Create(ctx, &model.StudySession{UserID: u.ID, Title: "soon", Subject: "s", StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)})
	if err != nil {
		t.Fatalf("CreateSession soon: %v", err)
	}
	later, err := s.Sessions().Create(ctx, &model.StudySession{UserID: u.ID, Title: "later", Subject: "s", StartTime: now.Add(2 * time.Hour), EndTime: now.Add(3 * time.Hour)})
	if err != nil {
		t.Fatalf("CreateSession later: %v", err)
	}
	done := true
	if _, err := s.Sessions().Update(ctx, later.ID, model.SessionPatch{IsCompleted: &done}); err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}
	up, err := s.Sessions().ListUpcoming(ctx, u.ID, now)
	if err != nil {
		t.Fatalf("ListUpcoming: %v", err)
	}
	if len(up) != 1 || up[0].ID != soon.ID {
		t.Fatalf("ListUpcoming: want only %d, got %+v", soon.ID, up)
	}
	if lst, err := s.Sessions().ListByUser(ctx, u.ID); err != nil || len(lst) != 3 || lst[0].ID != past.ID {
		t.Fatalf("ListByUser sessions: n=%d err=%v", len(lst), err)
	}

	// Summaries are append-only.
	m2, err := s.Materials().Create(ctx, &model.StudyMaterial{UserID: u.ID, Title: "Physics.pdf", FileType: "pdf", FilePath: "/uploads/physics.pdf"})
	if err != nil {
		t.Fatalf("CreateMaterial m2: %v", err)
	}
	if _, err := s.Summaries().Create(ctx, &model.MaterialSummary{MaterialID: m2.ID, UserID: u.ID, Content: "first"}); err != nil {
		t.Fatalf("CreateSummary: %v", err)
	}
	if _, err := s.Summaries().Create(ctx, &model.MaterialSummary{MaterialID: m2.ID, UserID: u.ID, Content: "second"}); err != nil {
		t.Fatalf("CreateSummary second: %v", err)
	}
	if lst, err := s.Summaries().ListByMaterial(ctx, m2.ID); err != nil || len(lst) != 2 {
		t.Fatalf("ListSummaries: n=%d err=%v", len(lst), err)
	}

	// Flashcards, with and without a material reference.
	fc, err := s.Flashcards().Create(ctx, &model.Flashcard{UserID: u.ID, MaterialID: &m2.ID, Question: "Q", Answer: "A"})
	if err != nil {
		t.Fatalf("CreateFlashcard: %v", err)
	}
	if _, err := s.Flashcards().Create(ctx, &model.Flashcard{UserID: u.ID, Question: "global Q", Answer: "global A"}); err != nil {
		t.Fatalf("CreateFlashcard global: %v", err)
	}
	if lst, err := s.Flashcards().ListByUser(ctx, u.ID); err != nil || len(lst) != 2 {
		t.Fatalf("ListFlashcardsByUser: n=%d err=%v", len(lst), err)
	}
	if lst, err := s.Flashcards().ListByMaterial(ctx, m2.ID); err != nil || len(lst) != 1 || lst[0].ID != fc.ID {
		t.Fatalf("ListFlashcardsByMaterial: n=%d err=%v", len(lst), err)
	}
	if err := s.Flashcards().Delete(ctx, fc.ID); err != nil {
		t.Fatalf("DeleteFlashcard: %v", err)
	}
	if err := s.Flashcards().Delete(ctx, fc.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("DeleteFlashcard unknown: want ErrNotFound, got %v", err)
	}

	// Conversations: whole-array replacement on update.
	conv, err := s.Conversations().Create(ctx, &model.Conversation{UserID: u.ID, Messages: []model.ChatMessage{{Role: "user", Content: "hi"}}})
	if err != nil {
		t.Fatalf("CreateConversation: %v", err)
	}
	replaced := []model.ChatMessage{
		{Role: "user", Content: "hi"},
		{Role: "assistant", Content: "hello"},
	}
	got, err := s.Conversations().UpdateMessages(ctx, conv.ID, replaced)
	if err != nil || len(got.Messages) != 2 {
		t.Fatalf("UpdateMessages: got=%v err=%v", got, err)
	}
	if _, err := s.Conversations().UpdateMessages(ctx, 9999, replaced); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateMessages unknown id: want ErrNotFound, got %v", err)
	}
	if lst, err := s.Conversations().ListByUser(ctx, u.ID); err != nil || len(lst) != 1 {
		t.Fatalf("ListConversations: n=%d err=%v", len(lst), err)
	}
}
