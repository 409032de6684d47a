package editor

import "time"

// Like records that a user liked a UI.
// At most one Like exists per (UserID, UiID).
type Like struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	UiID      string    `json:"uiId" db:"ui_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
