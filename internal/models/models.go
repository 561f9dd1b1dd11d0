package models

import "time"

// Wellbeing statuses a user can set on their profile.
const (
	StatusFeelingGood = "Feeling Good"
	StatusUneasy      = "Uneasy"
	StatusStruggling  = "Struggling"
)

// ValidStatus reports whether s is one of the known wellbeing statuses.
func ValidStatus(s string) bool {
	return s == StatusFeelingGood || s == StatusUneasy || s == StatusStruggling
}

// Alert types sent to a user's support circle.
const (
	AlertCrisis  = "Crisis"
	AlertSupport = "Support Request"
)

// ValidAlertType reports whether t is a known alert type.
func ValidAlertType(t string) bool {
	return t == AlertCrisis || t == AlertSupport
}

// Profile represents a user in the system
type Profile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Status       string    `json:"status"`
	IsAmbassador bool      `json:"is_ambassador"`
	IsPremium    bool      `json:"is_premium"`
	Bio          string    `json:"bio"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	PushToken    *string   `json:"push_token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// JournalEntry represents one immutable journal record
type JournalEntry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Suggestion represents a free-text suggestion-box submission
type Suggestion struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Alert represents an alert sent to circle members
type Alert struct {
	Type         string    `json:"type"`
	FromID       string    `json:"from_id"`
	FromUsername string    `json:"from_username"`
	SentAt       time.Time `json:"sent_at"`
}
