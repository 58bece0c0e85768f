package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/osworks/service-orders/internal/core/domain"
	"github.com/osworks/service-orders/internal/core/ports"
)

// ── user repository ──────────────────────────────────────────────────────────

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	copy := cloneUser(user)
	copy.ID = fmt.Sprintf("user_%d", r.seq)
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) ListActive(_ context.Context) ([]*domain.User, error) {
	all, _ := r.List(context.Background())
	out := all[:0]
	for _, u := range all {
		if u.Active {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id string, fields ports.UpdateUserFields) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if fields.Username != nil {
		u.Username = *fields.Username
	}
	if fields.Name != nil {
		u.Name = *fields.Name
	}
	if fields.Email != nil {
		u.Email = *fields.Email
	}
	if fields.Role != nil {
		u.Role = *fields.Role
	}
	if fields.PasswordHash != nil {
		u.PasswordHash = *fields.PasswordHash
	}
	if fields.Active != nil {
		u.Active = *fields.Active
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// seed inserts a user directly, bypassing uniqueness checks.
func (r *stubUserRepo) seed(u *domain.User) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	copy := cloneUser(u)
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("user_%d", r.seq)
	}
	r.users[copy.ID] = cloneUser(copy)
	return copy
}

// ── token store ──────────────────────────────────────────────────────────────

// memTokenStore mirrors the persistent store's soft-state semantics in
// memory: records are never deleted, revocation flips a flag.
type memTokenStore struct {
	mu        sync.Mutex
	records   map[string]*domain.TokenRecord
	recordErr error
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{records: make(map[string]*domain.TokenRecord)}
}

func (s *memTokenStore) Record(_ context.Context, token, userID string, issuedAt, expiresAt time.Time) error {
	if s.recordErr != nil {
		return s.recordErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.records[token]; exists {
		return domain.ErrTokenExists
	}
	s.records[token] = &domain.TokenRecord{
		Token:     token,
		UserID:    userID,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	}
	return nil
}

func (s *memTokenStore) Revoke(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.records[token]; ok {
		rec.Revoked = true
	}
	return nil
}

func (s *memTokenStore) IsValid(_ context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[token]
	if !ok {
		return false, nil
	}
	return rec.Usable(time.Now().UTC()), nil
}

// ── event publisher ──────────────────────────────────────────────────────────

type stubPublisher struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *stubPublisher) Publish(_ context.Context, event domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *stubPublisher) names() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Name)
	}
	return out
}

// ── login throttle ───────────────────────────────────────────────────────────

type stubThrottle struct {
	failures map[string]int
	limit    int
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: limit}
}

func (t *stubThrottle) TooMany(_ context.Context, username string) (bool, error) {
	return t.failures[username] >= t.limit, nil
}

func (t *stubThrottle) NoteFailure(_ context.Context, username string) error {
	t.failures[username]++
	return nil
}

func (t *stubThrottle) Clear(_ context.Context, username string) error {
	delete(t.failures, username)
	return nil
}

// ── catalog repositories ─────────────────────────────────────────────────────

type stubClientRepo struct {
	clients map[string]*domain.Client
	seq     int
}

func newStubClientRepo() *stubClientRepo {
	return &stubClientRepo{clients: make(map[string]*domain.Client)}
}

func (r *stubClientRepo) Create(_ context.Context, client *domain.Client) (*domain.Client, error) {
	r.seq++
	copy := *client
	copy.ID = fmt.Sprintf("client_%d", r.seq)
	r.clients[copy.ID] = &copy
	return &copy, nil
}

func (r *stubClientRepo) FindByID(_ context.Context, id string) (*domain.Client, error) {
	if c, ok := r.clients[id]; ok {
		return c, nil
	}
	return nil, domain.ErrClientNotFound
}

func (r *stubClientRepo) List(_ context.Context) ([]*domain.Client, error) {
	out := make([]*domain.Client, 0, len(r.clients))
	for _, c := range r.clients {
		out = append(out, c)
	}
	return out, nil
}

type stubEquipmentRepo struct {
	equipment map[string]*domain.Equipment
	seq       int
}

func newStubEquipmentRepo() *stubEquipmentRepo {
	return &stubEquipmentRepo{equipment: make(map[string]*domain.Equipment)}
}

func (r *stubEquipmentRepo) Create(_ context.Context, eq *domain.Equipment) (*domain.Equipment, error) {
	for _, existing := range r.equipment {
		if eq.SerialNumber != "" && existing.SerialNumber == eq.SerialNumber {
			return nil, domain.ErrEquipmentExists
		}
	}
	r.seq++
	copy := *eq
	copy.ID = fmt.Sprintf("equipment_%d", r.seq)
	r.equipment[copy.ID] = &copy
	return &copy, nil
}

func (r *stubEquipmentRepo) FindByID(_ context.Context, id string) (*domain.Equipment, error) {
	if eq, ok := r.equipment[id]; ok {
		return eq, nil
	}
	return nil, domain.ErrEquipmentNotFound
}

func (r *stubEquipmentRepo) List(_ context.Context) ([]*domain.Equipment, error) {
	out := make([]*domain.Equipment, 0, len(r.equipment))
	for _, eq := range r.equipment {
		out = append(out, eq)
	}
	return out, nil
}

// ── order repository ─────────────────────────────────────────────────────────

type stubOrderRepo struct {
	orders map[string]*domain.ServiceOrder
	seq    int
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{orders: make(map[string]*domain.ServiceOrder)}
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.ServiceOrder) (*domain.ServiceOrder, error) {
	r.seq++
	copy := *order
	copy.ID = fmt.Sprintf("order_%d", r.seq)
	r.orders[copy.ID] = &copy
	return &copy, nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*domain.ServiceOrder, error) {
	if o, ok := r.orders[id]; ok {
		copy := *o
		return &copy, nil
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) List(_ context.Context, filter ports.ListOrdersFilter) ([]*domain.ServiceOrder, int64, error) {
	matched := make([]*domain.ServiceOrder, 0, len(r.orders))
	for _, o := range r.orders {
		if filter.Status != "" && string(o.Status) != filter.Status {
			continue
		}
		copy := *o
		matched = append(matched, &copy)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := int64(len(matched))
	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubOrderRepo) Update(_ context.Context, id string, fields ports.UpdateOrderFields) (*domain.ServiceOrder, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	if fields.Title != nil {
		o.Title = *fields.Title
	}
	if fields.Description != nil {
		o.Description = *fields.Description
	}
	if fields.Activities != nil {
		o.Activities = *fields.Activities
	}
	if fields.Status != nil {
		o.Status = *fields.Status
	}
	if fields.UserID != nil {
		o.UserID = *fields.UserID
	}
	o.UpdatedAt = time.Now().UTC()
	copy := *o
	return &copy, nil
}

func (r *stubOrderRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.orders[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.orders, id)
	return nil
}

// ── photo repository and file store ──────────────────────────────────────────

type stubPhotoRepo struct {
	photos    map[string]*domain.Photo
	seq       int
	createErr error
}

func newStubPhotoRepo() *stubPhotoRepo {
	return &stubPhotoRepo{photos: make(map[string]*domain.Photo)}
}

func (r *stubPhotoRepo) Create(_ context.Context, photo *domain.Photo) (*domain.Photo, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	copy := *photo
	copy.ID = fmt.Sprintf("photo_%d", r.seq)
	r.photos[copy.ID] = &copy
	return &copy, nil
}

func (r *stubPhotoRepo) FindByID(_ context.Context, id string) (*domain.Photo, error) {
	if p, ok := r.photos[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPhotoNotFound
}

func (r *stubPhotoRepo) ListByOrder(_ context.Context, orderID string) ([]*domain.Photo, error) {
	out := make([]*domain.Photo, 0)
	for _, p := range r.photos {
		if p.OrderID == orderID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *stubPhotoRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.photos[id]; !ok {
		return domain.ErrPhotoNotFound
	}
	delete(r.photos, id)
	return nil
}

type stubFileStore struct {
	saved   map[string][]byte
	removed []string
	saveErr error
}

func newStubFileStore() *stubFileStore {
	return &stubFileStore{saved: make(map[string][]byte)}
}

func (s *stubFileStore) Save(_ context.Context, name string, content io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}
	s.saved[name] = data
	return "/uploads/" + name, nil
}

func (s *stubFileStore) Remove(_ context.Context, name string) error {
	delete(s.saved, name)
	s.removed = append(s.removed, name)
	return nil
}

// ── checklist repository ─────────────────────────────────────────────────────

type stubChecklistRepo struct {
	checklists map[string]*domain.Checklist
	items      map[string]*domain.ChecklistItem
	responses  map[string]*domain.ChecklistResponse // keyed by orderID+"/"+itemID
	seq        int
}

func newStubChecklistRepo() *stubChecklistRepo {
	return &stubChecklistRepo{
		checklists: make(map[string]*domain.Checklist),
		items:      make(map[string]*domain.ChecklistItem),
		responses:  make(map[string]*domain.ChecklistResponse),
	}
}

func (r *stubChecklistRepo) CreateChecklist(_ context.Context, name string) (*domain.Checklist, error) {
	r.seq++
	cl := &domain.Checklist{ID: fmt.Sprintf("checklist_%d", r.seq), Name: name}
	r.checklists[cl.ID] = cl
	return cl, nil
}

func (r *stubChecklistRepo) FindChecklistByID(_ context.Context, id string) (*domain.Checklist, error) {
	if cl, ok := r.checklists[id]; ok {
		return cl, nil
	}
	return nil, domain.ErrChecklistNotFound
}

func (r *stubChecklistRepo) ListChecklists(_ context.Context) ([]*domain.Checklist, error) {
	out := make([]*domain.Checklist, 0, len(r.checklists))
	for _, cl := range r.checklists {
		out = append(out, cl)
	}
	return out, nil
}

func (r *stubChecklistRepo) CreateItem(_ context.Context, checklistID, description string) (*domain.ChecklistItem, error) {
	if _, ok := r.checklists[checklistID]; !ok {
		return nil, domain.ErrChecklistNotFound
	}
	r.seq++
	item := &domain.ChecklistItem{
		ID:          fmt.Sprintf("item_%d", r.seq),
		ChecklistID: checklistID,
		Description: description,
	}
	r.items[item.ID] = item
	return item, nil
}

func (r *stubChecklistRepo) FindItemByID(_ context.Context, id string) (*domain.ChecklistItem, error) {
	if item, ok := r.items[id]; ok {
		return item, nil
	}
	return nil, domain.ErrChecklistItemNotFound
}

func (r *stubChecklistRepo) UpsertResponse(_ context.Context, resp *domain.ChecklistResponse) (*domain.ChecklistResponse, error) {
	key := resp.OrderID + "/" + resp.ItemID
	if existing, ok := r.responses[key]; ok {
		existing.Checked = resp.Checked
		existing.RespondedAt = resp.RespondedAt
		copy := *existing
		return &copy, nil
	}
	r.seq++
	copy := *resp
	copy.ID = fmt.Sprintf("response_%d", r.seq)
	r.responses[key] = &copy
	out := copy
	return &out, nil
}

func (r *stubChecklistRepo) ListResponses(_ context.Context, orderID string) ([]*domain.ChecklistResponse, error) {
	out := make([]*domain.ChecklistResponse, 0)
	for _, resp := range r.responses {
		if resp.OrderID == orderID {
			copy := *resp
			out = append(out, &copy)
		}
	}
	return out, nil
}

var errStoreDown = errors.New("store unavailable")
