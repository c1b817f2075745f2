package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"不正なUUID", &pq.Error{Code: "22P02"}, true},
		{"日付範囲外", &pq.Error{Code: "22008"}, true},
		{"CHECK制約違反", &pq.Error{Code: "23514"}, true},
		{"ラップされたデータ例外", fmt.Errorf("failed to create task: %w", &pq.Error{Code: "22P02"}), true},
		{"接続エラー", &pq.Error{Code: "08006"}, false},
		{"pq以外のエラー", errors.New("boom"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsInvalidInput(tt.err); got != tt.want {
				t.Errorf("IsInvalidInput() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if !IsUniqueViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23505"})) {
		t.Error("expected 23505 to be a unique violation")
	}
	if IsUniqueViolation(&pq.Error{Code: "23514"}) {
		t.Error("check violation must not be reported as unique violation")
	}
}
