package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsWarning(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"plain scheduling failure", ErrNotificationSchedulingFailed, true},
		{"wrapped scheduling failure", fmt.Errorf("create task: %w", ErrNotificationSchedulingFailed), true},
		{"validation error", ErrEmptyText, false},
		{"storage error", fmt.Errorf("%w: disk full", ErrStorageUnavailable), false},
		{"unrelated", errors.New("boom"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWarning(tt.err))
		})
	}
}
