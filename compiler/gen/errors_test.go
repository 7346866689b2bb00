package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Workers", 0, "worker count must be positive")

		assert.Contains(t, err.Error(), "enumgen: config error")
		assert.Contains(t, err.Error(), "Workers")
		assert.Contains(t, err.Error(), "0")
		assert.Contains(t, err.Error(), "worker count must be positive")
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Package", nil, "cannot be empty")

		assert.Contains(t, err.Error(), "Package")
		assert.Contains(t, err.Error(), "cannot be empty")
		assert.NotContains(t, err.Error(), "value:")
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, errors.Is(err, ErrMissingConfig))
	})

	t.Run("IsConfigError helper", func(t *testing.T) {
		err := NewConfigError("Target", nil, "missing")
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})

	t.Run("IsConfigError sees through wrapping", func(t *testing.T) {
		err := fmt.Errorf("apply options: %w", NewConfigError("Target", nil, "missing"))
		assert.True(t, IsConfigError(err))
	})
}

func TestResolveError(t *testing.T) {
	t.Run("Error message singular", func(t *testing.T) {
		err := NewResolveError("Categories", "Categories", "id")

		assert.Contains(t, err.Error(), `enumgen: rule "Categories"`)
		assert.Contains(t, err.Error(), "on table Categories")
		assert.Contains(t, err.Error(), "cannot resolve id column")
		assert.NotContains(t, err.Error(), "columns")
	})

	t.Run("Error message plural", func(t *testing.T) {
		err := NewResolveError("tbl", "tbl", "id", "description", "key")

		assert.Contains(t, err.Error(), "cannot resolve id, description, key columns")
	})

	t.Run("Error message without table", func(t *testing.T) {
		err := NewResolveError("tbl", "", "id")
		assert.NotContains(t, err.Error(), "on table")
	})

	t.Run("Is matches ErrUnresolvedColumns", func(t *testing.T) {
		err := NewResolveError("tbl", "tbl", "id")
		assert.True(t, errors.Is(err, ErrUnresolvedColumns))
	})

	t.Run("IsResolveError helper", func(t *testing.T) {
		err := NewResolveError("tbl", "tbl", "id")
		assert.True(t, IsResolveError(err))
		assert.False(t, IsResolveError(errors.New("other")))
	})
}

func TestFormatError(t *testing.T) {
	t.Run("Error message names the file", func(t *testing.T) {
		cause := errors.New("expected declaration")
		err := NewFormatError("categories.go", cause)

		assert.Contains(t, err.Error(), "enumgen: format categories.go")
		assert.Contains(t, err.Error(), "expected declaration")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewFormatError("x.go", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrFormatFailed", func(t *testing.T) {
		err := NewFormatError("x.go", errors.New("bad"))
		assert.True(t, errors.Is(err, ErrFormatFailed))
	})

	t.Run("IsFormatError helper", func(t *testing.T) {
		err := NewFormatError("x.go", errors.New("bad"))
		assert.True(t, IsFormatError(err))
		assert.False(t, IsFormatError(errors.New("other")))
	})
}
