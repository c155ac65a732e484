package errors

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
)

type customError struct {
	msg string
}

func (e *customError) Error() string { return e.msg }

func TestCLIErrorAdapter_ExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, slog.Default())

	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil error", err: nil, expected: 0},
		{name: "validation error", err: ValidationError("invalid input").Build(), expected: 2},
		{name: "config error", err: ConfigError("bad config").Build(), expected: 7},
		{name: "read error", err: ReadError("cannot decode").Build(), expected: 11},
		{name: "parse error", err: ParseError("bad yaml").Build(), expected: 11},
		{name: "template error", err: TemplateError("missing template").Build(), expected: 11},
		{name: "write error", err: WriteError("disk full").Build(), expected: 11},
		{name: "internal error", err: InternalError("bug").Build(), expected: 10},
		{name: "wrapped config error", err: fmt.Errorf("load: %w", ConfigError("bad").Build()), expected: 7},
		{name: "unclassified error", err: &customError{msg: "unknown error"}, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := adapter.ExitCodeFor(tt.err)
			if got != tt.expected {
				t.Errorf("ExitCodeFor() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestCLIErrorAdapter_FormatError(t *testing.T) {
	cause := errors.New("yaml: line 2: did not find expected key")
	err := ParseError("invalid front matter").WithContext("file", "a.md").WithCause(cause).Build()

	t.Run("non-verbose shows message and cause", func(t *testing.T) {
		adapter := NewCLIErrorAdapter(false, slog.Default())
		got := adapter.FormatError(err)
		want := "Error: invalid front matter: yaml: line 2: did not find expected key"
		if got != want {
			t.Errorf("FormatError() = %q, want %q", got, want)
		}
	})

	t.Run("verbose shows full classified error", func(t *testing.T) {
		adapter := NewCLIErrorAdapter(true, slog.Default())
		if got := adapter.FormatError(err); got != err.Error() {
			t.Errorf("FormatError() = %q, want %q", got, err.Error())
		}
	})

	t.Run("unclassified", func(t *testing.T) {
		adapter := NewCLIErrorAdapter(false, slog.Default())
		if got := adapter.FormatError(&customError{msg: "boom"}); got != "Error: boom" {
			t.Errorf("FormatError() = %q", got)
		}
	})
}

func TestCLIErrorAdapter_HandleError(t *testing.T) {
	var out bytes.Buffer
	var code int
	adapter := NewCLIErrorAdapter(false, slog.New(slog.NewTextHandler(io.Discard, nil)))
	adapter.out = &out
	adapter.exit = func(c int) { code = c }

	adapter.HandleError(WriteError("cannot write tag page").Build())

	if code != 11 {
		t.Errorf("exit code = %d, want 11", code)
	}
	if out.String() != "Error: cannot write tag page\n" {
		t.Errorf("stderr = %q", out.String())
	}
}
