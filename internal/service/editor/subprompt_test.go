package editor

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"website-editor/internal/config"
	"website-editor/internal/domain"
	models "website-editor/internal/domain/models/editor"
	editorSvc "website-editor/internal/domain/services/editor"
)

func newTestSubPromptService(store *memStore) (*subPromptService, *fakeTxManager) {
	tx := &fakeTxManager{}
	svc := NewSubPromptService(store, subPromptRepo{store}, tx, fakeCatalog{"gpt-4o": true}, discardLogger())
	return svc.(*subPromptService), tx
}

func createRequest(uiID, parent string) *editorSvc.CreateSubPromptRequest {
	return &editorSvc.CreateSubPromptRequest{
		UserID:      uuid.NewString(),
		UiID:        uiID,
		SubPrompt:   "make the header blue",
		ParentSubID: parent,
		Code:        "<header class=\"bg-blue-500\"/>",
	}
}

func TestCreateSubPrompt_AllocatesNextSubID(t *testing.T) {
	store := newMemStore()
	ui := store.seedUi(uuid.NewString(), true)
	store.seedRevision(ui.ID, "a-0", "<div/>")
	store.seedRevision(ui.ID, "a-1", "<div/>")
	svc, tx := newTestSubPromptService(store)

	sp, err := svc.CreateSubPrompt(context.Background(), createRequest(ui.ID, "a-0"))
	require.NoError(t, err)
	assert.Equal(t, "a-1-1", sp.SubID)
	assert.Equal(t, 1, tx.calls)
	require.NotNil(t, sp.Code)
	assert.NotEmpty(t, sp.Code.ID)

	sp, err = svc.CreateSubPrompt(context.Background(), createRequest(ui.ID, "a-0"))
	require.NoError(t, err)
	assert.Equal(t, "a-1-2", sp.SubID)
}

func TestCreateSubPrompt_RetriesOnCollision(t *testing.T) {
	store := newMemStore()
	ui := store.seedUi(uuid.NewString(), true)
	store.seedRevision(ui.ID, "a-0", "<div/>")
	svc, tx := newTestSubPromptService(store)

	// A competing writer takes the allocated id between read and insert, once
	raced := false
	store.beforeCreate = func(sp *models.SubPrompt) {
		if !raced {
			raced = true
			store.seedRevision(sp.UiID, sp.SubID, "<competing/>")
		}
	}

	sp, err := svc.CreateSubPrompt(context.Background(), createRequest(ui.ID, "a-0"))
	require.NoError(t, err)
	assert.Equal(t, "a-1-1", sp.SubID, "second attempt sees a-1 and branches")
	assert.Equal(t, 2, tx.calls)
	assert.Equal(t, 2, store.creates)
}

func TestCreateSubPrompt_GivesUpAfterMaxAttempts(t *testing.T) {
	store := newMemStore()
	ui := store.seedUi(uuid.NewString(), true)
	svc, tx := newTestSubPromptService(store)

	store.beforeCreate = func(sp *models.SubPrompt) {
		store.seedRevision(sp.UiID, sp.SubID, "<competing/>")
	}

	_, err := svc.CreateSubPrompt(context.Background(), createRequest(ui.ID, "a-0"))
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, config.MaxAllocationAttempts, tx.calls)
}

func TestCreateSubPrompt_NamedAnchorConflictIsNotRetried(t *testing.T) {
	store := newMemStore()
	ui := store.seedUi(uuid.NewString(), true)
	store.seedRevision(ui.ID, "precise-a", "<div/>")
	svc, tx := newTestSubPromptService(store)

	_, err := svc.CreateSubPrompt(context.Background(), createRequest(ui.ID, "precise-a"))

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "precise-a", conflict.ResourceID)
	assert.Equal(t, 1, tx.calls)
}

func TestCreateSubPrompt_Validation(t *testing.T) {
	store := newMemStore()
	ui := store.seedUi(uuid.NewString(), true)
	svc, _ := newTestSubPromptService(store)

	unknownModel := "made-up-model"
	knownModel := "gpt-4o"

	tests := []struct {
		name    string
		mutate  func(req *editorSvc.CreateSubPromptRequest)
		wantErr error
	}{
		{
			name:    "anonymous caller",
			mutate:  func(req *editorSvc.CreateSubPromptRequest) { req.UserID = "" },
			wantErr: domain.ErrUnauthorized,
		},
		{
			name:    "missing prompt",
			mutate:  func(req *editorSvc.CreateSubPromptRequest) { req.SubPrompt = "" },
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing parent",
			mutate:  func(req *editorSvc.CreateSubPromptRequest) { req.ParentSubID = "" },
			wantErr: domain.ErrValidation,
		},
		{
			name:    "missing code",
			mutate:  func(req *editorSvc.CreateSubPromptRequest) { req.Code = "" },
			wantErr: domain.ErrValidation,
		},
		{
			name: "prompt too long",
			mutate: func(req *editorSvc.CreateSubPromptRequest) {
				req.SubPrompt = strings.Repeat("x", config.MaxPromptLength+1)
			},
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown model",
			mutate:  func(req *editorSvc.CreateSubPromptRequest) { req.ModelID = &unknownModel },
			wantErr: domain.ErrValidation,
		},
		{
			name:    "unknown ui",
			mutate:  func(req *editorSvc.CreateSubPromptRequest) { req.UiID = uuid.NewString() },
			wantErr: domain.ErrNotFound,
		},
		{
			name:   "known model",
			mutate: func(req *editorSvc.CreateSubPromptRequest) { req.ModelID = &knownModel },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := createRequest(ui.ID, "a-0")
			tt.mutate(req)

			_, err := svc.CreateSubPrompt(context.Background(), req)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGetSubPromptAndCode(t *testing.T) {
	store := newMemStore()
	ui := store.seedUi(uuid.NewString(), true)
	svc, _ := newTestSubPromptService(store)

	created, err := svc.CreateSubPrompt(context.Background(), createRequest(ui.ID, "a-0"))
	require.NoError(t, err)

	sp, err := svc.GetSubPrompt(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.SubID, sp.SubID)

	code, err := svc.GetCode(context.Background(), created.Code.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Code.Code, code.Code)

	_, err = svc.GetSubPrompt(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.GetCode(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
