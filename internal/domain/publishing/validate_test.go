package publishing

import (
	"strings"
	"testing"
)

func valid() CreateInput {
	return CreateInput{Title: "Hello", Slug: "hello-world-2", Content: "Body"}
}

func hasField(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

func TestValidateCreateAcceptsValid(t *testing.T) {
	if errs := ValidateCreate(valid()); len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}

func TestValidateCreateRejectsBlank(t *testing.T) {
	in := valid()
	in.Title = "   "
	in.Content = ""
	errs := ValidateCreate(in)
	if !hasField(errs, "title") || !hasField(errs, "content") {
		t.Fatalf("expected title and content errors, got=%+v", errs)
	}
}

func TestValidateCreateSlugCharset(t *testing.T) {
	for _, slug := range []string{"Hello", "hello world", "héllo", "hello_world", " hello"} {
		in := valid()
		in.Slug = slug
		if !hasField(ValidateCreate(in), "slug") {
			t.Fatalf("slug %q should be rejected", slug)
		}
	}
}

func TestValidateCreateLengthLimits(t *testing.T) {
	in := valid()
	in.Title = strings.Repeat("a", 256)
	in.Content = strings.Repeat("b", 2048)
	if errs := ValidateCreate(in); len(errs) != 0 {
		t.Fatalf("limits should be inclusive, got=%+v", errs)
	}
	in.Title = strings.Repeat("a", 257)
	in.Content = strings.Repeat("b", 2049)
	errs := ValidateCreate(in)
	if !hasField(errs, "title") || !hasField(errs, "content") {
		t.Fatalf("expected length errors, got=%+v", errs)
	}
}

func TestValidateCountsUTF16Units(t *testing.T) {
	in := valid()
	// each emoji is two UTF-16 code units
	in.Title = strings.Repeat("\U0001F600", 129)
	if !hasField(ValidateCreate(in), "title") {
		t.Fatal("258 code units should exceed the title limit")
	}
	in.Title = strings.Repeat("\U0001F600", 128)
	if hasField(ValidateCreate(in), "title") {
		t.Fatal("256 code units should fit")
	}
}

func TestValidateUpdate(t *testing.T) {
	errs := ValidateUpdate(UpdateInput{ID: 1, Title: "ok", Slug: "BAD", Content: "ok"})
	if len(errs) != 1 || errs[0].Field != "slug" {
		t.Fatalf("expected single slug error, got=%+v", errs)
	}
}
