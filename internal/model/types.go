package model

import "time"

// User represents an account in the system. Password is stored as an
// opaque string and compared verbatim; it never crosses the API boundary.
type User struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"password"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Level          int       `json:"level"`
	XP             int       `json:"xp"`
	TotalStudyTime int       `json:"totalStudyTime"` // minutes
	CreatedAt      time.Time `json:"createdAt"`
}

// StudyMaterial is an uploaded document a user studies from.
type StudyMaterial struct {
	ID          int64      `json:"id"`
	UserID      int64      `json:"userId"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	FileType    string     `json:"fileType"`
	FilePath    string     `json:"filePath"`
	Progress    int        `json:"progress"` // 0-100
	LastViewed  *time.Time `json:"lastViewed,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// StudySession is a planned block of study time.
type StudySession struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Subject     string    `json:"subject"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
}

// MaterialSummary is a generated study note for a material. Summaries are
// append-only: regeneration creates a new row rather than overwriting.
type MaterialSummary struct {
	ID         int64     `json:"id"`
	MaterialID int64     `json:"materialId"`
	UserID     int64     `json:"userId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Flashcard is a question/answer pair. MaterialID is nil for global cards.
type Flashcard struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"userId"`
	MaterialID *int64    `json:"materialId,omitempty"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ChatMessage is one role-tagged message inside a conversation.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is an ordered chat transcript owned by a user. Updates
// replace the whole message list (last write wins, no merge).
type Conversation struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"userId"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"createdAt"`
}

// Badge is a static catalog entry.
type Badge struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Requirement string `json:"requirement"`
}

// UserBadge records a badge earned by a user.
type UserBadge struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"userId"`
	BadgeID  int64     `json:"badgeId"`
	EarnedAt time.Time `json:"earnedAt"`
}

// UserPatch carries optional field updates for a user. Nil fields are
// left unchanged.
type UserPatch struct {
	Name           *string
	Email          *string
	Level          *int
	XP             *int
	TotalStudyTime *int
}

// MaterialPatch carries optional field updates for a study material.
type MaterialPatch struct {
	Title       *string
	Description *string
	Progress    *int
	LastViewed  *time.Time
}

// SessionPatch carries optional field updates for a study session.
type SessionPatch struct {
	Title       *string
	Subject     *string
	StartTime   *time.Time
	EndTime     *time.Time
	IsCompleted *bool
}
