package editor

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"website-editor/internal/domain"
	models "website-editor/internal/domain/models/editor"
	"website-editor/internal/domain/repositories"
)

// memStore is an in-memory stand-in for the postgres repositories.
// It implements UiRepository, SubPromptRepository and EngagementRepository.
type memStore struct {
	mu    sync.Mutex
	uis   map[string]*models.Ui
	subs  []*models.SubPrompt
	likes map[[2]string]bool

	// beforeCreate runs (without the lock) ahead of every CreateWithCode
	beforeCreate func(sp *models.SubPrompt)

	creates   int
	viewCalls int
	viewErr   error
}

func newMemStore() *memStore {
	return &memStore{
		uis:   map[string]*models.Ui{},
		likes: map[[2]string]bool{},
	}
}

func (m *memStore) seedUi(ownerID string, public bool) *models.Ui {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	ui := &models.Ui{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		UiType:       "shadcn",
		Prompt:       "landing page",
		Public:       public,
		PreviewImage: "img.png",
		ViewCount:    7,
		LikesCount:   3,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	m.uis[ui.ID] = ui
	return ui
}

func (m *memStore) seedRevision(uiID, subID, code string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs = append(m.subs, &models.SubPrompt{
		ID:            uuid.NewString(),
		UiID:          uiID,
		SubID:         subID,
		SubPromptText: "prompt " + subID,
		CreatedAt:     time.Now(),
		Code:          &models.Code{ID: uuid.NewString(), Code: code},
	})
}

func cloneUi(ui *models.Ui) *models.Ui {
	c := *ui
	c.Owner = &models.Owner{ID: ui.OwnerID}
	c.SubPrompts = nil
	c.Liked = nil
	return &c
}

func cloneSubPrompt(sp *models.SubPrompt) models.SubPrompt {
	c := *sp
	code := *sp.Code
	code.SubPromptID = sp.ID
	c.Code = &code
	return c
}

// UiRepository

func (m *memStore) Create(_ context.Context, ui *models.Ui) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ui.ID = uuid.NewString()
	stored := *ui
	m.uis[ui.ID] = &stored
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*models.Ui, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ui, ok := m.uis[id]
	if !ok {
		return nil, fmt.Errorf("ui %s: %w", id, domain.ErrNotFound)
	}
	return cloneUi(ui), nil
}

func (m *memStore) Update(_ context.Context, id string, update *models.UiUpdate) (*models.Ui, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ui, ok := m.uis[id]
	if !ok {
		return nil, fmt.Errorf("ui %s: %w", id, domain.ErrNotFound)
	}
	if update.PreviewImage != nil {
		ui.PreviewImage = *update.PreviewImage
	}
	if update.Prompt != nil {
		ui.Prompt = *update.Prompt
	}
	ui.UpdatedAt = update.UpdatedAt
	return cloneUi(ui), nil
}

func (m *memStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.uis[id]; !ok {
		return fmt.Errorf("ui %s: %w", id, domain.ErrNotFound)
	}
	delete(m.uis, id)
	kept := m.subs[:0]
	for _, sp := range m.subs {
		if sp.UiID != id {
			kept = append(kept, sp)
		}
	}
	m.subs = kept
	for key := range m.likes {
		if key[1] == id {
			delete(m.likes, key)
		}
	}
	return nil
}

func (m *memStore) LockForUpdate(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.uis[id]; !ok {
		return fmt.Errorf("ui %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// SubPromptRepository

func (m *memStore) findSub(id string) (*models.SubPrompt, bool) {
	for _, sp := range m.subs {
		if sp.ID == id {
			return sp, true
		}
	}
	return nil, false
}

func (m *memStore) ListByUiID(_ context.Context, uiID string) ([]models.SubPrompt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := []models.SubPrompt{}
	for _, sp := range m.subs {
		if sp.UiID == uiID {
			result = append(result, cloneSubPrompt(sp))
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].SubID < result[j].SubID
	})
	return result, nil
}

func (m *memStore) ListSubIDs(_ context.Context, uiID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ids []string
	for _, sp := range m.subs {
		if sp.UiID == uiID {
			ids = append(ids, sp.SubID)
		}
	}
	return ids, nil
}

func (m *memStore) CreateWithCode(_ context.Context, sp *models.SubPrompt) error {
	if m.beforeCreate != nil {
		m.beforeCreate(sp)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	for _, existing := range m.subs {
		if existing.UiID == sp.UiID && existing.SubID == sp.SubID {
			return &domain.ConflictError{
				Message:      "duplicate sub_id",
				ResourceType: "subprompt",
				ResourceID:   sp.SubID,
			}
		}
	}
	sp.ID = uuid.NewString()
	sp.Code.ID = uuid.NewString()
	sp.Code.SubPromptID = sp.ID
	stored := cloneSubPrompt(sp)
	m.subs = append(m.subs, &stored)
	return nil
}

func (m *memStore) CopyTree(_ context.Context, sourceUiID, targetUiID string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var copies []*models.SubPrompt
	for _, sp := range m.subs {
		if sp.UiID == sourceUiID {
			c := cloneSubPrompt(sp)
			c.ID = uuid.NewString()
			c.UiID = targetUiID
			c.Code.ID = uuid.NewString()
			copies = append(copies, &c)
		}
	}
	m.subs = append(m.subs, copies...)
	return len(copies), nil
}

func (m *memStore) GetCode(_ context.Context, id string) (*models.Code, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sp := range m.subs {
		if sp.Code.ID == id {
			code := *sp.Code
			return &code, nil
		}
	}
	return nil, fmt.Errorf("code %s: %w", id, domain.ErrNotFound)
}

// subPromptRepo adapts memStore's Get for the SubPromptRepository method set,
// whose GetByID collides with UiRepository's
type subPromptRepo struct{ *memStore }

func (r subPromptRepo) GetByID(_ context.Context, id string) (*models.SubPrompt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sp, ok := r.findSub(id)
	if !ok {
		return nil, fmt.Errorf("subprompt %s: %w", id, domain.ErrNotFound)
	}
	c := cloneSubPrompt(sp)
	return &c, nil
}

// EngagementRepository

func (m *memStore) ToggleLike(_ context.Context, userID, uiID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ui, ok := m.uis[uiID]
	if !ok {
		return false, fmt.Errorf("ui %s: %w", uiID, domain.ErrNotFound)
	}
	key := [2]string{userID, uiID}
	if m.likes[key] {
		delete(m.likes, key)
		ui.LikesCount--
		return false, nil
	}
	m.likes[key] = true
	ui.LikesCount++
	return true, nil
}

func (m *memStore) HasLiked(_ context.Context, userID, uiID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.likes[[2]string{userID, uiID}], nil
}

func (m *memStore) IncrementViewCount(_ context.Context, uiID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.viewCalls++
	if m.viewErr != nil {
		return m.viewErr
	}
	ui, ok := m.uis[uiID]
	if !ok {
		return fmt.Errorf("ui %s: %w", uiID, domain.ErrNotFound)
	}
	ui.ViewCount++
	return nil
}

// fakeTxManager runs the unit of work directly and counts calls
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	f.calls++
	return fn(ctx)
}

// fakeFeedRepo records the queries it receives
type fakeFeedRepo struct {
	uis []models.Ui

	lastQuery      *models.FeedQuery
	lastPublicOnly bool
	lastOwner      string
	lastLikedBy    string
	recentCalls    int
}

func (f *fakeFeedRepo) List(_ context.Context, query *models.FeedQuery) ([]models.Ui, error) {
	q := *query
	f.lastQuery = &q
	return f.uis, nil
}

func (f *fakeFeedRepo) ListRecentlyUpdated(_ context.Context, limit int, publicOnly bool) ([]models.Ui, error) {
	f.recentCalls++
	f.lastPublicOnly = publicOnly
	return f.uis, nil
}

func (f *fakeFeedRepo) ListByOwner(_ context.Context, ownerID string, start, limit int, publicOnly bool) ([]models.Ui, error) {
	f.lastOwner = ownerID
	f.lastPublicOnly = publicOnly
	f.lastQuery = &models.FeedQuery{Start: start, Limit: limit}
	return f.uis, nil
}

func (f *fakeFeedRepo) ListLikedBy(_ context.Context, userID string, start, limit int) ([]models.Ui, error) {
	f.lastLikedBy = userID
	f.lastQuery = &models.FeedQuery{Start: start, Limit: limit}
	return f.uis, nil
}

// fakeInvalidator counts home feed invalidations
type fakeInvalidator struct {
	calls int
}

func (f *fakeInvalidator) InvalidateHomeFeed(context.Context) {
	f.calls++
}

// fakeCatalog accepts a fixed model set
type fakeCatalog map[string]bool

func (c fakeCatalog) HasModel(id string) bool { return c[id] }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
