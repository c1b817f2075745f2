package handler

import (
	"context"
	"sync"
	"time"

	"github.com/hitoshi/taskman/internal/model"
)

// memStore はルーターテスト用のインメモリストア。
// PostgreSQL実装と同じく、タスクのカテゴリ参照とリマインダーのタスク参照は検証しない。
type memStore struct {
	mu         sync.Mutex
	users      map[string]*model.User
	identities map[string]*model.Identity
	sessions   map[string]*model.Session
	categories []*model.Category
	tasks      []*model.Task
	reminders  []*model.Reminder
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[string]*model.User),
		identities: make(map[string]*model.Identity),
		sessions:   make(map[string]*model.Session),
	}
}

func (s *memStore) reminderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reminders)
}

func (s *memStore) findTask(id string) *model.Task {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// --- users / identities / sessions ---

type memUsers struct{ *memStore }

func (s memUsers) FindByID(ctx context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (s memUsers) CreateWithIdentity(ctx context.Context, user *model.User, identity *model.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, i := *user, *identity
	s.users[u.ID] = &u
	s.identities[i.Provider+"|"+i.ProviderUserID] = &i
	return nil
}

func (s memUsers) UpdateProfile(ctx context.Context, id, name, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		u.Name, u.Email = name, email
	}
	return nil
}

type memIdentities struct{ *memStore }

func (s memIdentities) FindByProviderAndProviderUserID(ctx context.Context, provider, providerUserID string) (*model.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i, ok := s.identities[provider+"|"+providerUserID]; ok {
		cp := *i
		return &cp, nil
	}
	return nil, nil
}

type memSessions struct{ *memStore }

func (s memSessions) Create(ctx context.Context, session *model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *session
	s.sessions[cp.ID] = &cp
	return nil
}

func (s memSessions) FindByID(ctx context.Context, id string) (*model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok && sess.ExpiresAt.After(time.Now()) {
		cp := *sess
		return &cp, nil
	}
	return nil, nil
}

func (s memSessions) DeleteByID(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// --- categories ---

type memCategories struct{ *memStore }

func (s memCategories) List(ctx context.Context) ([]*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (s memCategories) Create(ctx context.Context, category *model.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *category
	s.categories = append(s.categories, &cp)
	return nil
}

func (s memCategories) Update(ctx context.Context, id string, patch model.CategoryPatch) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.categories {
		if c.ID == id {
			if patch.Name != nil {
				c.Name = *patch.Name
			}
			c.UpdatedAt = time.Now().UTC()
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s memCategories) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, c := range s.categories {
		if c.ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// --- tasks ---

type memTasks struct{ *memStore }

func (s memTasks) ListWithCategory(ctx context.Context) ([]*model.TaskWithCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.TaskWithCategory, 0, len(s.tasks))
	for _, t := range s.tasks {
		item := &model.TaskWithCategory{Task: *t}
		if t.CategoryID != nil {
			for _, c := range s.categories {
				if c.ID == *t.CategoryID {
					cp := *c
					item.Category = &cp
				}
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (s memTasks) Create(ctx context.Context, task *model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *task
	s.tasks = append(s.tasks, &cp)
	return nil
}

func (s memTasks) Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.findTask(id)
	if t == nil {
		return nil, nil
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.DueDate != nil {
		t.DueDate = patch.DueDate
	}
	if patch.Priority != nil {
		t.Priority = *patch.Priority
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.CategoryID != nil {
		t.CategoryID = patch.CategoryID
	}
	t.UpdatedAt = time.Now().UTC()
	cp := *t
	return &cp, nil
}

func (s memTasks) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// --- reminders ---

type memReminders struct{ *memStore }

func (s memReminders) ListByUserWithTask(ctx context.Context, userID string) ([]*model.ReminderWithTask, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*model.ReminderWithTask
	for _, r := range s.reminders {
		if r.UserID != userID {
			continue
		}
		item := &model.ReminderWithTask{Reminder: *r}
		if t := s.findTask(r.TaskID); t != nil {
			cp := *t
			item.Task = &cp
		}
		out = append(out, item)
	}
	return out, nil
}

func (s memReminders) find(id, userID string) *model.Reminder {
	for _, r := range s.reminders {
		if r.ID == id && r.UserID == userID {
			return r
		}
	}
	return nil
}

func (s memReminders) FindByIDAndUser(ctx context.Context, id, userID string) (*model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r := s.find(id, userID); r != nil {
		cp := *r
		return &cp, nil
	}
	return nil, nil
}

func (s memReminders) Create(ctx context.Context, reminder *model.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *reminder
	s.reminders = append(s.reminders, &cp)
	return nil
}

func (s memReminders) UpdateByIDAndUser(ctx context.Context, id, userID string, patch model.ReminderPatch) (*model.Reminder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := s.find(id, userID)
	if r == nil {
		return nil, nil
	}
	if patch.TaskID != nil {
		r.TaskID = *patch.TaskID
	}
	if patch.ReminderDate != nil {
		r.ReminderDate = *patch.ReminderDate
	}
	if patch.Note != nil {
		r.Note = *patch.Note
	}
	r.UpdatedAt = time.Now().UTC()
	cp := *r
	return &cp, nil
}

func (s memReminders) DeleteByIDAndUser(ctx context.Context, id, userID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.reminders {
		if r.ID == id && r.UserID == userID {
			s.reminders = append(s.reminders[:i], s.reminders[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
