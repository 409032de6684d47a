package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"website-editor/internal/domain"
)

func TestFeedQuery_ApplyDefaults(t *testing.T) {
	q := &FeedQuery{Start: -3, Limit: 500}
	q.ApplyDefaults()

	assert.Equal(t, FeedModeLatest, q.Mode)
	assert.Equal(t, 0, q.Start)
	assert.Equal(t, MaxFeedLimit, q.Limit)
	assert.NoError(t, q.Validate())
}

func TestFeedQuery_Validate(t *testing.T) {
	tests := []struct {
		name    string
		query   FeedQuery
		wantErr bool
	}{
		{"latest", FeedQuery{Mode: FeedModeLatest, Limit: 20}, false},
		{"most liked", FeedQuery{Mode: FeedModeMostLiked, Start: 40, Limit: MaxFeedLimit}, false},
		{"most viewed", FeedQuery{Mode: FeedModeMostViewed, Limit: 1}, false},
		{"unknown mode", FeedQuery{Mode: "random", Limit: 20}, true},
		{"empty mode", FeedQuery{Limit: 20}, true},
		{"negative start", FeedQuery{Mode: FeedModeLatest, Start: -1, Limit: 20}, true},
		{"zero limit", FeedQuery{Mode: FeedModeLatest}, true},
		{"limit over cap", FeedQuery{Mode: FeedModeLatest, Limit: MaxFeedLimit + 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.query.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
