package util

import (
	"testing"

	"github.com/google/uuid"
)

func TestCoalesce(t *testing.T) {
	if got := Coalesce("", "", "hello", "world"); got != "hello" {
		t.Errorf("expected 'hello', got %q", got)
	}
	if got := Coalesce(0, 0, 42); got != 42 {
		t.Errorf("expected 42, got %d", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestDefaultIfBlank(t *testing.T) {
	tests := []struct {
		in, def, want string
	}{
		{"", "x", "x"},
		{"   ", "x", "x"},
		{"\t\n", "x", "x"},
		{"a", "x", "a"},
		{" a ", "x", " a "},
	}
	for _, tc := range tests {
		if got := DefaultIfBlank(tc.in, tc.def); got != tc.want {
			t.Errorf("DefaultIfBlank(%q, %q) = %q, want %q", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestFirstNonBlank(t *testing.T) {
	if got := FirstNonBlank("", " ", "b", "c"); got != "b" {
		t.Errorf("expected 'b', got %q", got)
	}
	if got := FirstNonBlank(" "); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"  Go 1.26 released!! ", "go-1-26-released"},
		{"微博热搜", ""},
		{"AI 大模型 News", "ai-news"},
		{"a--b__c", "a-b-c"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("abcdef", 3); got != "abc" {
		t.Errorf("expected 'abc', got %q", got)
	}
	if got := Truncate("热点解读", 2); got != "热点" {
		t.Errorf("expected '热点', got %q", got)
	}
	if got := Truncate("ab", 10); got != "ab" {
		t.Errorf("expected 'ab', got %q", got)
	}
	if got := Truncate("ab", 0); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestRuneCount(t *testing.T) {
	if got := RuneCount("  你好 world \n"); got != 8 {
		t.Errorf("expected 8, got %d", got)
	}
}

func TestPtr(t *testing.T) {
	v := 0.7
	p := Ptr(v)
	v = 0.1
	if *p != 0.7 {
		t.Errorf("expected 0.7, got %v", *p)
	}
}

func TestClone_NeverNil(t *testing.T) {
	var in []string
	out := Clone(in)
	if out == nil || len(out) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", out)
	}
	src := []int{1, 2}
	cp := Clone(src)
	cp[0] = 9
	if src[0] != 1 {
		t.Error("expected Clone to copy")
	}
}

func TestNewID_IsV4(t *testing.T) {
	id, err := uuid.Parse(NewID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id.Version() != 4 {
		t.Errorf("expected version 4, got %d", id.Version())
	}
	if NewID() == NewID() {
		t.Error("expected distinct ids")
	}
}

func TestMaskSecret(t *testing.T) {
	if got := MaskSecret("sk-123456", 3); got != "sk-***" {
		t.Errorf("unexpected mask %q", got)
	}
	if got := MaskSecret("ab", 3); got != "***" {
		t.Errorf("unexpected mask %q", got)
	}
}
