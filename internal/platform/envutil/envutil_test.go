package envutil

import (
	"testing"
	"time"
)

func TestIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("POSTBOARD_TEST_INT", "nope")
	if got := Int("POSTBOARD_TEST_INT", 5); got != 5 {
		t.Fatalf("want=5 got=%d", got)
	}
	t.Setenv("POSTBOARD_TEST_INT", " 12 ")
	if got := Int("POSTBOARD_TEST_INT", 5); got != 12 {
		t.Fatalf("want=12 got=%d", got)
	}
}

func TestBool(t *testing.T) {
	t.Setenv("POSTBOARD_TEST_BOOL", "off")
	if Bool("POSTBOARD_TEST_BOOL", true) {
		t.Fatal("off should be false")
	}
	t.Setenv("POSTBOARD_TEST_BOOL", "maybe")
	if !Bool("POSTBOARD_TEST_BOOL", true) {
		t.Fatal("unknown value should keep default")
	}
}

func TestSeconds(t *testing.T) {
	t.Setenv("POSTBOARD_TEST_TTL", "90")
	if got := Seconds("POSTBOARD_TEST_TTL", time.Second); got != 90*time.Second {
		t.Fatalf("want=90s got=%s", got)
	}
	t.Setenv("POSTBOARD_TEST_TTL", "-1")
	if got := Seconds("POSTBOARD_TEST_TTL", time.Second); got != time.Second {
		t.Fatalf("negative should fall back, got=%s", got)
	}
}

func TestList(t *testing.T) {
	t.Setenv("POSTBOARD_TEST_LIST", "a, b,,c ")
	got := List("POSTBOARD_TEST_LIST", nil)
	if len(got) != 3 || got[0] != "a" || got[1] != "b" || got[2] != "c" {
		t.Fatalf("unexpected list: %v", got)
	}
	t.Setenv("POSTBOARD_TEST_LIST", " , ")
	if got := List("POSTBOARD_TEST_LIST", []string{"x"}); len(got) != 1 || got[0] != "x" {
		t.Fatalf("empty list should fall back, got=%v", got)
	}
}
