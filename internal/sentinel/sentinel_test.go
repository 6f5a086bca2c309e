package sentinel

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  Error
		want string
	}{
		"simple message": {err: Error("spawn failed"), want: "spawn failed"},
		"empty message":  {err: Error(""), want: ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := tc.err.Error(); got != tc.want {
				t.Errorf("Error() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestError_ErrorsIs(t *testing.T) {
	t.Parallel()

	const base = Error("ready timeout")

	t.Run("direct match", func(t *testing.T) {
		t.Parallel()

		if !errors.Is(base, base) {
			t.Error("errors.Is should match identical const errors")
		}
	})

	t.Run("wrapped match", func(t *testing.T) {
		t.Parallel()

		wrapped := fmt.Errorf("launch my-server: %w", base)
		if !errors.Is(wrapped, base) {
			t.Error("errors.Is should match const error through wrapping")
		}
	})

	t.Run("same text different type no match", func(t *testing.T) {
		t.Parallel()

		if errors.Is(base, errors.New("ready timeout")) {
			t.Error("errors.Is should not match errors.New with the same text")
		}
	})
}
