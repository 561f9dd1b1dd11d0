package services

import (
	"context"
	"sync"
	"time"

	"statuscheck-backend/internal/errs"
	"statuscheck-backend/internal/models"
	"statuscheck-backend/internal/repository"
)

// In-memory store fakes backing the service tests.

type fakeProfileStore struct {
	mu       sync.Mutex
	profiles map[string]*models.Profile
	hashes   map[string]string
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		profiles: make(map[string]*models.Profile),
		hashes:   make(map[string]string),
	}
}

func (f *fakeProfileStore) Create(_ context.Context, p *models.Profile, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.profiles {
		if existing.Email == p.Email || existing.Username == p.Username {
			return errs.ErrAlreadyExists
		}
	}
	cp := *p
	f.profiles[p.ID] = &cp
	f.hashes[p.ID] = passwordHash
	return nil
}

func (f *fakeProfileStore) GetByID(_ context.Context, id string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileStore) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeProfileStore) GetByUsername(_ context.Context, username string) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.Username == username {
			cp := *p
			return &cp, nil
		}
	}
	return nil, errs.ErrNotFound
}

func (f *fakeProfileStore) GetByIDs(_ context.Context, ids []string) ([]*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Profile
	for _, id := range ids {
		if p, ok := f.profiles[id]; ok {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProfileStore) CredentialsByEmail(ctx context.Context, email string) (*models.Profile, string, error) {
	p, err := f.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return p, f.hashes[p.ID], nil
}

func (f *fakeProfileStore) UsernameExists(_ context.Context, username string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProfileStore) Update(_ context.Context, id string, params repository.UpdateParams) (*models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok {
		return nil, errs.ErrNotFound
	}
	if params.Status != nil {
		p.Status = *params.Status
	}
	if params.IsAmbassador != nil {
		p.IsAmbassador = *params.IsAmbassador
	}
	if params.IsPremium != nil {
		p.IsPremium = *params.IsPremium
	}
	if params.Bio != nil {
		p.Bio = *params.Bio
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfileStore) SetPushToken(_ context.Context, id string, pushToken *string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[id]; ok {
		p.PushToken = pushToken
	}
	return nil
}

func (f *fakeProfileStore) SetAvatarURL(_ context.Context, id, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.profiles[id]; ok {
		p.AvatarURL = url
	}
	return nil
}

// seed inserts a profile directly, bypassing validation.
func (f *fakeProfileStore) seed(p *models.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.profiles[p.ID] = &cp
}

type fakeCircleStore struct {
	mu      sync.Mutex
	members map[string]map[string]struct{}
}

func newFakeCircleStore() *fakeCircleStore {
	return &fakeCircleStore{members: make(map[string]map[string]struct{})}
}

func (f *fakeCircleStore) AddMember(_ context.Context, ownerID, memberID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.members[ownerID] == nil {
		f.members[ownerID] = make(map[string]struct{})
	}
	f.members[ownerID][memberID] = struct{}{}
	return nil
}

func (f *fakeCircleStore) RemoveMember(_ context.Context, ownerID, memberID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.members[ownerID], memberID)
	return nil
}

func (f *fakeCircleStore) MemberIDs(_ context.Context, ownerID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var ids []string
	for id := range f.members[ownerID] {
		ids = append(ids, id)
	}
	return ids, nil
}

type fakeJournalStore struct {
	mu      sync.Mutex
	entries map[string][]*models.JournalEntry
	clock   time.Time
}

func newFakeJournalStore() *fakeJournalStore {
	return &fakeJournalStore{
		entries: make(map[string][]*models.JournalEntry),
		clock:   time.Now(),
	}
}

func (f *fakeJournalStore) Create(_ context.Context, entry *models.JournalEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clock = f.clock.Add(time.Second)
	entry.CreatedAt = f.clock
	cp := *entry
	// newest first
	f.entries[entry.UserID] = append([]*models.JournalEntry{&cp}, f.entries[entry.UserID]...)
	return nil
}

func (f *fakeJournalStore) ListByUser(_ context.Context, userID string, limit int) ([]*models.JournalEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entries := f.entries[userID]
	if len(entries) > limit {
		entries = entries[:limit]
	}
	out := make([]*models.JournalEntry, 0, len(entries))
	for _, e := range entries {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

type fakeSuggestionStore struct {
	mu     sync.Mutex
	byUser map[string][]*models.Suggestion
	clock  time.Time
}

func newFakeSuggestionStore() *fakeSuggestionStore {
	return &fakeSuggestionStore{
		byUser: make(map[string][]*models.Suggestion),
		clock:  time.Now(),
	}
}

func (f *fakeSuggestionStore) Create(_ context.Context, s *models.Suggestion) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clock = f.clock.Add(time.Second)
	s.CreatedAt = f.clock
	cp := *s
	// newest first
	f.byUser[s.UserID] = append([]*models.Suggestion{&cp}, f.byUser[s.UserID]...)
	return nil
}

func (f *fakeSuggestionStore) ListByUser(_ context.Context, userID string) ([]*models.Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Suggestion, 0, len(f.byUser[userID]))
	for _, s := range f.byUser[userID] {
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

type fakePusher struct {
	mu     sync.Mutex
	pushed []string // device tokens
	err    error
}

func (f *fakePusher) Push(_ context.Context, deviceToken string, _ models.Alert) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.pushed = append(f.pushed, deviceToken)
	return nil
}

func (f *fakePusher) tokens() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.pushed...)
}
