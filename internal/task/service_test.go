package task

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"

	"github.com/hitoshi/taskman/internal/model"
)

// --- モック ---

type mockTaskRepo struct {
	listFn   func(ctx context.Context) ([]*model.TaskWithCategory, error)
	createFn func(ctx context.Context, task *model.Task) error
	updateFn func(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error)
	deleteFn func(ctx context.Context, id string) (bool, error)
}

func (m *mockTaskRepo) ListWithCategory(ctx context.Context) ([]*model.TaskWithCategory, error) {
	return m.listFn(ctx)
}
func (m *mockTaskRepo) Create(ctx context.Context, task *model.Task) error {
	return m.createFn(ctx, task)
}
func (m *mockTaskRepo) Update(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
	return m.updateFn(ctx, id, patch)
}
func (m *mockTaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	return m.deleteFn(ctx, id)
}

func newTestService(repo *mockTaskRepo) *Service {
	return NewService(repo)
}

func assertAPIError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *model.APIError, got %T (%v)", err, err)
	}
	if apiErr.HTTPStatus() != status || apiErr.Code != code {
		t.Errorf("got %d %s, want %d %s", apiErr.HTTPStatus(), apiErr.Code, status, code)
	}
}

func TestCreate_AppliesDefaults(t *testing.T) {
	repo := &mockTaskRepo{
		createFn: func(ctx context.Context, task *model.Task) error { return nil },
	}

	got, err := newTestService(repo).Create(context.Background(), CreateInput{Title: "Finish report"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID == "" {
		t.Error("expected generated ID")
	}
	if got.Priority != model.PriorityMedium {
		t.Errorf("Priority = %q, want medium", got.Priority)
	}
	if got.Status != model.TaskStatusPending {
		t.Errorf("Status = %q, want pending", got.Status)
	}
	if got.CategoryID != nil || got.DueDate != nil {
		t.Errorf("optional fields should stay nil: %+v", got)
	}
}

func TestCreate_KeepsSuppliedFields(t *testing.T) {
	due := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	categoryID := "c1"
	var saved *model.Task
	repo := &mockTaskRepo{
		createFn: func(ctx context.Context, task *model.Task) error {
			saved = task
			return nil
		},
	}

	_, err := newTestService(repo).Create(context.Background(), CreateInput{
		Title:       "Check <script>alert(1)</script>",
		Description: "if a<b and x > y",
		DueDate:     &due,
		Priority:    model.PriorityHigh,
		Status:      model.TaskStatusCompleted,
		CategoryID:  &categoryID,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Title != "Check <script>alert(1)</script>" || saved.Description != "if a<b and x > y" {
		t.Errorf("text not stored as supplied: %q / %q", saved.Title, saved.Description)
	}
	if !saved.DueDate.Equal(due) || saved.Priority != model.PriorityHigh || saved.Status != model.TaskStatusCompleted {
		t.Errorf("fields not kept: %+v", saved)
	}
	if saved.CategoryID == nil || *saved.CategoryID != "c1" {
		t.Errorf("CategoryID = %v, want c1", saved.CategoryID)
	}
}

func TestCreate_ValidationErrors(t *testing.T) {
	repo := &mockTaskRepo{
		createFn: func(ctx context.Context, task *model.Task) error {
			t.Fatal("invalid input must not reach the repository")
			return nil
		},
	}
	svc := newTestService(repo)

	tests := []struct {
		name string
		in   CreateInput
	}{
		{"タイトルなし", CreateInput{}},
		{"タイトルが空白のみ", CreateInput{Title: "  "}},
		{"未定義の優先度", CreateInput{Title: "t", Priority: "urgent"}},
		{"未定義の状態", CreateInput{Title: "t", Status: "archived"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), tt.in)
			assertAPIError(t, err, http.StatusBadRequest, model.ErrCodeValidation)
		})
	}
}

func TestCreate_StoreRejectionIsBadRequest(t *testing.T) {
	repo := &mockTaskRepo{
		createFn: func(ctx context.Context, task *model.Task) error {
			return &pq.Error{Code: "22P02", Message: "invalid input syntax for type uuid"}
		},
	}
	categoryID := "not-a-uuid"

	_, err := newTestService(repo).Create(context.Background(), CreateInput{Title: "t", CategoryID: &categoryID})
	assertAPIError(t, err, http.StatusBadRequest, model.ErrCodeValidation)
}

func TestCreate_StoreFailureIsNotAPIError(t *testing.T) {
	storeErr := errors.New("connection refused")
	repo := &mockTaskRepo{
		createFn: func(ctx context.Context, task *model.Task) error { return storeErr },
	}

	_, err := newTestService(repo).Create(context.Background(), CreateInput{Title: "t"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		t.Errorf("unexpected APIError %v", apiErr)
	}
}

func TestUpdate_PartialPatch(t *testing.T) {
	status := model.TaskStatusCompleted
	repo := &mockTaskRepo{
		updateFn: func(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
			if patch.Title != nil || patch.Description != nil || patch.Priority != nil || patch.DueDate != nil || patch.CategoryID != nil {
				t.Errorf("unexpected fields in patch: %+v", patch)
			}
			return &model.Task{ID: id, Title: "kept", Priority: model.PriorityLow, Status: *patch.Status}, nil
		},
	}

	got, err := newTestService(repo).Update(context.Background(), "t1", model.TaskPatch{Status: &status})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != model.TaskStatusCompleted || got.Title != "kept" {
		t.Errorf("got %+v", got)
	}
}

func TestUpdate_Errors(t *testing.T) {
	repo := &mockTaskRepo{
		updateFn: func(ctx context.Context, id string, patch model.TaskPatch) (*model.Task, error) {
			return nil, nil
		},
	}
	svc := newTestService(repo)

	empty := "  "
	bad := model.Priority("urgent")

	_, err := svc.Update(context.Background(), "t1", model.TaskPatch{Title: &empty})
	assertAPIError(t, err, http.StatusBadRequest, model.ErrCodeValidation)

	_, err = svc.Update(context.Background(), "t1", model.TaskPatch{Priority: &bad})
	assertAPIError(t, err, http.StatusBadRequest, model.ErrCodeValidation)

	_, err = svc.Update(context.Background(), "missing", model.TaskPatch{})
	assertAPIError(t, err, http.StatusNotFound, model.ErrCodeTaskNotFound)
}

func TestDelete_NotFound(t *testing.T) {
	repo := &mockTaskRepo{
		deleteFn: func(ctx context.Context, id string) (bool, error) { return false, nil },
	}
	err := newTestService(repo).Delete(context.Background(), "missing")
	assertAPIError(t, err, http.StatusNotFound, model.ErrCodeTaskNotFound)
}
