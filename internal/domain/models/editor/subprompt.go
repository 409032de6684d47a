package editor

import "time"

// SubPrompt is one revision node in a UI's history.
// SubID encodes its position in the tree (see service/revision).
type SubPrompt struct {
	ID            string    `json:"id" db:"id"`
	UiID          string    `json:"uiId" db:"ui_id"`
	SubID         string    `json:"subId" db:"sub_id"`
	SubPromptText string    `json:"subPrompt" db:"sub_prompt"`
	ModelID       *string   `json:"modelId" db:"model_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	// Exactly one Code per SubPrompt; nil only while being built
	Code *Code `json:"code,omitempty"`
}

// Code is the generated source payload for one revision.
// Never mutated after creation; a new revision is added instead.
type Code struct {
	ID          string `json:"id" db:"id"`
	SubPromptID string `json:"-" db:"subprompt_id"`
	Code        string `json:"code" db:"code"`
}
