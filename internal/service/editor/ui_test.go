package editor

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"website-editor/internal/config"
	"website-editor/internal/domain"
	editorSvc "website-editor/internal/domain/services/editor"
)

func newTestUiService(store *memStore) (*uiService, *fakeInvalidator) {
	inv := &fakeInvalidator{}
	svc := NewUiService(store, subPromptRepo{store}, store, &fakeTxManager{}, inv, discardLogger())
	return svc.(*uiService), inv
}

func text(s string) editorSvc.OptionalText {
	return editorSvc.OptionalText{Present: true, Value: &s}
}

func TestForkUi_CopiesTree(t *testing.T) {
	store := newMemStore()
	owner, forker := uuid.NewString(), uuid.NewString()
	source := store.seedUi(owner, true)
	store.seedRevision(source.ID, "a-0", "<div>0</div>")
	store.seedRevision(source.ID, "a-1", "<div>1</div>")
	store.seedRevision(source.ID, "a-1-1", "<div>1-1</div>")
	svc, inv := newTestUiService(store)

	forked, err := svc.ForkUi(context.Background(), source.ID, forker)
	require.NoError(t, err)

	assert.NotEqual(t, source.ID, forked.ID)
	assert.Equal(t, forker, forked.OwnerID)
	require.NotNil(t, forked.ForkedFrom)
	assert.Equal(t, source.ID, *forked.ForkedFrom)
	assert.True(t, forked.Public)
	assert.Zero(t, forked.ViewCount)
	assert.Zero(t, forked.LikesCount)
	assert.Equal(t, source.Prompt, forked.Prompt)
	assert.Equal(t, source.PreviewImage, forked.PreviewImage)
	assert.Equal(t, source.UiType, forked.UiType)

	pairs := map[string]string{}
	for _, sp := range forked.SubPrompts {
		pairs[sp.SubID] = sp.Code.Code
	}
	assert.Equal(t, map[string]string{
		"a-0":   "<div>0</div>",
		"a-1":   "<div>1</div>",
		"a-1-1": "<div>1-1</div>",
	}, pairs)
	assert.Equal(t, 1, inv.calls)

	// Source is untouched
	original, err := svc.GetUiDetail(context.Background(), source.ID, "")
	require.NoError(t, err)
	assert.Len(t, original.SubPrompts, 3)
	assert.Equal(t, owner, original.OwnerID)
}

func TestForkUi_Failures(t *testing.T) {
	store := newMemStore()
	owner := uuid.NewString()
	source := store.seedUi(owner, true)
	private := store.seedUi(owner, false)
	svc, inv := newTestUiService(store)

	tests := []struct {
		name      string
		sourceID  string
		requester string
		wantErr   error
	}{
		{"self fork", source.ID, owner, domain.ErrForbidden},
		{"unknown source", uuid.NewString(), uuid.NewString(), domain.ErrNotFound},
		{"private source", private.ID, uuid.NewString(), domain.ErrNotFound},
		{"anonymous", source.ID, "", domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ForkUi(context.Background(), tt.sourceID, tt.requester)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	assert.Len(t, store.uis, 2, "no ui created on failure")
	assert.Zero(t, inv.calls)
}

func TestDeleteUi(t *testing.T) {
	store := newMemStore()
	owner := uuid.NewString()
	ui := store.seedUi(owner, true)
	store.seedRevision(ui.ID, "a-0", "<div/>")
	svc, inv := newTestUiService(store)

	err := svc.DeleteUi(context.Background(), ui.ID, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = svc.GetUiDetail(context.Background(), ui.ID, "")
	require.NoError(t, err, "aggregate intact after forbidden delete")

	require.NoError(t, svc.DeleteUi(context.Background(), ui.ID, owner))
	assert.Equal(t, 1, inv.calls)
	assert.Empty(t, store.subs)

	err = svc.DeleteUi(context.Background(), ui.ID, owner)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateUi(t *testing.T) {
	store := newMemStore()
	owner := uuid.NewString()
	ui := store.seedUi(owner, true)
	svc, inv := newTestUiService(store)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	updated, err := svc.UpdateUi(context.Background(), ui.ID, owner, &editorSvc.UpdateUiRequest{
		Img: text("https://cdn.example/new.png"),
	})
	require.NoError(t, err)
	require.NotNil(t, updated.Img)
	assert.Equal(t, "https://cdn.example/new.png", *updated.Img)
	assert.Nil(t, updated.Prompt, "absent fields are not echoed")
	assert.True(t, fixed.Equal(updated.UpdatedAt))
	assert.Equal(t, "landing page", store.uis[ui.ID].Prompt)
	assert.Equal(t, 1, inv.calls)

	updated, err = svc.UpdateUi(context.Background(), ui.ID, owner, &editorSvc.UpdateUiRequest{
		Prompt: text("a dashboard"),
	})
	require.NoError(t, err)
	assert.Equal(t, "a dashboard", *updated.Prompt)
	assert.Equal(t, "https://cdn.example/new.png", store.uis[ui.ID].PreviewImage)
}

func TestUpdateUi_Failures(t *testing.T) {
	store := newMemStore()
	owner := uuid.NewString()
	ui := store.seedUi(owner, true)
	svc, _ := newTestUiService(store)

	tests := []struct {
		name      string
		id        string
		requester string
		req       *editorSvc.UpdateUiRequest
		wantErr   error
	}{
		{"no fields", ui.ID, owner, &editorSvc.UpdateUiRequest{}, domain.ErrValidation},
		{"null img", ui.ID, owner, &editorSvc.UpdateUiRequest{Img: editorSvc.OptionalText{Present: true}}, domain.ErrValidation},
		{"empty prompt", ui.ID, owner, &editorSvc.UpdateUiRequest{Prompt: text("")}, domain.ErrValidation},
		{"img too long", ui.ID, owner, &editorSvc.UpdateUiRequest{Img: text(strings.Repeat("i", config.MaxPreviewImageLength+1))}, domain.ErrValidation},
		{"not owner", ui.ID, uuid.NewString(), &editorSvc.UpdateUiRequest{Prompt: text("x")}, domain.ErrForbidden},
		{"unknown ui", uuid.NewString(), owner, &editorSvc.UpdateUiRequest{Prompt: text("x")}, domain.ErrNotFound},
		{"anonymous", ui.ID, "", &editorSvc.UpdateUiRequest{Prompt: text("x")}, domain.ErrUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateUi(context.Background(), tt.id, tt.requester, tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetUiDetail(t *testing.T) {
	store := newMemStore()
	owner, viewer := uuid.NewString(), uuid.NewString()
	ui := store.seedUi(owner, true)
	private := store.seedUi(owner, false)
	store.seedRevision(ui.ID, "a-0", "<div/>")
	store.likes[[2]string{viewer, ui.ID}] = true
	svc, _ := newTestUiService(store)

	detail, err := svc.GetUiDetail(context.Background(), ui.ID, viewer)
	require.NoError(t, err)
	assert.Len(t, detail.SubPrompts, 1)
	require.NotNil(t, detail.Liked)
	assert.True(t, *detail.Liked)
	require.NotNil(t, detail.Owner)
	assert.Equal(t, owner, detail.Owner.ID)

	anonymous, err := svc.GetUiDetail(context.Background(), ui.ID, "")
	require.NoError(t, err)
	assert.Nil(t, anonymous.Liked)

	_, err = svc.GetUiDetail(context.Background(), private.ID, viewer)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetUiDetail(context.Background(), private.ID, owner)
	assert.NoError(t, err)
}
