package config

const (
	// MaxPromptLength bounds both the UI prompt and a revision's prompt text.
	MaxPromptLength = 10000

	// MaxPreviewImageLength bounds the preview image reference (URL or storage key).
	MaxPreviewImageLength = 2048

	// MaxSubIDLength bounds a parent sub_id supplied by callers. Deep
	// branching beyond this is an editor bug, not a real history.
	MaxSubIDLength = 255

	// MaxCodeLength bounds a single generated code payload (5MB).
	MaxCodeLength = 5 << 20

	// MaxAllocationAttempts is how many times revision creation re-reads
	// siblings after a (ui_id, sub_id) conflict before giving up.
	MaxAllocationAttempts = 3
)
