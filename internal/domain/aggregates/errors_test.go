package aggregates

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsCodeThroughWrapping(t *testing.T) {
	base := NewError(CodeForbidden, "Publishing.Post.Update", "not the author", nil)
	wrapped := fmt.Errorf("handler: %w", base)
	if !IsCode(wrapped, CodeForbidden) {
		t.Fatalf("expected forbidden through wrap, got=%q", CodeOf(wrapped))
	}
	if IsCode(errors.New("plain"), CodeForbidden) {
		t.Fatal("plain error should carry no code")
	}
	if CodeOf(nil) != "" {
		t.Fatal("nil error should carry no code")
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(CodeInternal, "op", nil) != nil {
		t.Fatal("wrapping nil should stay nil")
	}
}

func TestNewValidationErrorCarriesFields(t *testing.T) {
	err := NewValidationError("op", []FieldViolation{{Field: "title", Reason: "is required"}, {Field: "slug", Reason: "bad"}})
	if !IsCode(err, CodeValidation) {
		t.Fatalf("expected validation code, got=%q", CodeOf(err))
	}
	fields := FieldsOf(err)
	if len(fields) != 2 || fields[0].Field != "title" || fields[1].Field != "slug" {
		t.Fatalf("unexpected fields: %+v", fields)
	}
	if got := err.Error(); got != "op: invalid fields: title, slug (validation)" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestErrorString(t *testing.T) {
	cases := []struct {
		err  *Error
		want string
	}{
		{&Error{Code: CodeNotFound, Op: "op", Message: "gone"}, "op: gone (not_found)"},
		{&Error{Code: CodeNotFound, Op: "op"}, "op (not_found)"},
		{&Error{Code: CodeNotFound, Message: "gone"}, "gone (not_found)"},
		{&Error{Code: CodeNotFound}, "not_found"},
	}
	for _, tc := range cases {
		if got := tc.err.Error(); got != tc.want {
			t.Fatalf("want=%q got=%q", tc.want, got)
		}
	}
}
