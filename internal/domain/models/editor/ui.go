package editor

import (
	"time"
)

// Ui is a top-level generated design owned by a user.
// Its SubPrompts form a branching revision tree keyed by SubID.
type Ui struct {
	ID           string    `json:"id" db:"id"`
	OwnerID      string    `json:"ownerId" db:"owner_id"`
	UiType       string    `json:"uiType" db:"ui_type"` // target framework/library tag, see catalog
	Prompt       string    `json:"prompt" db:"prompt"`
	Public       bool      `json:"public" db:"public"`
	PreviewImage string    `json:"img" db:"preview_image"`
	ViewCount    uint64    `json:"viewCount" db:"view_count"`
	LikesCount   uint64    `json:"likesCount" db:"likes_count"`
	ForkedFrom   *string   `json:"forkedFrom,omitempty" db:"forked_from"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Computed fields (not stored on the ui row)
	Owner      *Owner      `json:"user,omitempty"`
	SubPrompts []SubPrompt `json:"subPrompts,omitempty"`
	Liked      *bool       `json:"liked,omitempty"` // set only when the requester is known
}

// Owner is the minimal profile attached to listed UIs
type Owner struct {
	ID    string  `json:"id" db:"id"`
	Name  *string `json:"name" db:"name"`
	Image *string `json:"image" db:"image"`
}

// UiUpdate carries the mutable fields of a UI; nil means unchanged
type UiUpdate struct {
	PreviewImage *string
	Prompt       *string
	UpdatedAt    time.Time
}
