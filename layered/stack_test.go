package layered

import (
	"errors"
	"maps"
	"testing"
)

// configStack builds a stack with defaults, user, and environment layers,
// pushed out of precedence order on purpose.
func configStack() *Stack[string] {
	s := NewStack[string]()
	s.Push(NewLayerWithData("environment", SourceEnv, map[string]string{
		"editor.theme": "solarized",
	}))
	s.Push(NewLayerWithData("defaults", SourceDefault, map[string]string{
		"editor.theme":   "plain",
		"editor.tabSize": "4",
		"lsp.enabled":    "true",
	}))
	s.Push(NewLayerWithData("user", SourceUser, map[string]string{
		"editor.theme":   "dark",
		"editor.tabSize": "2",
	}))
	return s
}

func TestStack_Get_ResolvesBySourcePrecedence(t *testing.T) {
	s := configStack()

	tests := []struct {
		key  string
		want string
	}{
		{"editor.theme", "solarized"}, // env beats user and defaults
		{"editor.tabSize", "2"},       // user beats defaults
		{"lsp.enabled", "true"},       // only in defaults
	}

	for _, tt := range tests {
		got, ok := s.Get(tt.key)
		if !ok || got != tt.want {
			t.Errorf("Get(%q) = %q, %v, want %q, true", tt.key, got, ok, tt.want)
		}
	}

	if _, ok := s.Get("missing"); ok {
		t.Error("Get(missing) should report absent")
	}
}

func TestStack_LayerNames_OrderedByPrecedence(t *testing.T) {
	s := configStack()

	want := []string{"environment", "user", "defaults"}
	got := s.LayerNames()
	if len(got) != len(want) {
		t.Fatalf("LayerNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("LayerNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestStack_EqualPrecedenceEarlierWins(t *testing.T) {
	s := NewStack[string]()
	s.Push(NewLayerWithData("user-a", SourceUser, map[string]string{"k": "a"}))
	s.Push(NewLayerWithData("user-b", SourceUser, map[string]string{"k": "b"}))

	if got, _ := s.Get("k"); got != "a" {
		t.Errorf("Get(k) = %q, want %q (earlier-pushed layer wins)", got, "a")
	}
}

func TestStack_WhichLayer(t *testing.T) {
	s := configStack()

	tests := []struct {
		key  string
		want string
	}{
		{"editor.theme", "environment"},
		{"editor.tabSize", "user"},
		{"lsp.enabled", "defaults"},
		{"missing", ""},
	}

	for _, tt := range tests {
		if got := s.WhichLayer(tt.key); got != tt.want {
			t.Errorf("WhichLayer(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestStack_Set_WritesNamedLayer(t *testing.T) {
	s := configStack()

	if err := s.Set("user", "editor.tabSize", "8"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// env doesn't hold tabSize, so the user write is effective.
	if got, _ := s.Get("editor.tabSize"); got != "8" {
		t.Errorf("Get(editor.tabSize) = %q, want %q", got, "8")
	}

	// Writing a shadowed key changes the layer, not the effective value.
	if err := s.Set("defaults", "editor.theme", "light"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if got, _ := s.Get("editor.theme"); got != "solarized" {
		t.Errorf("Get(editor.theme) = %q, env layer should still win", got)
	}
}

func TestStack_Set_Errors(t *testing.T) {
	s := configStack()

	if err := s.Set("nope", "k", "v"); !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("Set on missing layer error = %v, want ErrLayerNotFound", err)
	}

	s.Layer("defaults").ReadOnly = true
	if err := s.Set("defaults", "k", "v"); !errors.Is(err, ErrLayerReadOnly) {
		t.Errorf("Set on read-only layer error = %v, want ErrLayerReadOnly", err)
	}
}

func TestStack_SetOverride(t *testing.T) {
	s := configStack()

	s.SetOverride("editor.theme", "high-contrast")

	if got, _ := s.Get("editor.theme"); got != "high-contrast" {
		t.Errorf("Get(editor.theme) = %q, override should win over env", got)
	}
	if got := s.WhichLayer("editor.theme"); got != "override" {
		t.Errorf("WhichLayer(editor.theme) = %q, want 'override'", got)
	}

	// Second call reuses the same layer.
	s.SetOverride("editor.tabSize", "3")
	if s.LayerCount() != 4 {
		t.Errorf("LayerCount() = %d, want 4", s.LayerCount())
	}
}

func TestStack_Delete_ResurfacesLowerLayer(t *testing.T) {
	s := configStack()

	if err := s.Delete("environment", "editor.theme"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	// With the env value gone, the user value becomes visible.
	if got, _ := s.Get("editor.theme"); got != "dark" {
		t.Errorf("Get(editor.theme) = %q, want %q", got, "dark")
	}

	if err := s.Delete("nope", "k"); !errors.Is(err, ErrLayerNotFound) {
		t.Errorf("Delete on missing layer error = %v, want ErrLayerNotFound", err)
	}
}

func TestStack_Remove(t *testing.T) {
	s := configStack()

	if !s.Remove("environment") {
		t.Fatal("Remove(environment) = false, want true")
	}
	if got, _ := s.Get("editor.theme"); got != "dark" {
		t.Errorf("Get(editor.theme) = %q after removing env layer, want %q", got, "dark")
	}
	if s.Remove("environment") {
		t.Error("Remove of an absent layer should return false")
	}
}

func TestStack_Effective(t *testing.T) {
	s := configStack()

	got := s.Effective()
	want := map[string]string{
		"editor.theme":   "solarized",
		"editor.tabSize": "2",
		"lsp.enabled":    "true",
	}
	if !maps.Equal(got, want) {
		t.Errorf("Effective() = %v, want %v", got, want)
	}

	if s.Len() != len(want) {
		t.Errorf("Len() = %d, want %d", s.Len(), len(want))
	}
}

func TestStack_All(t *testing.T) {
	s := configStack()

	got := maps.Collect(s.All())
	if !maps.Equal(got, s.Effective()) {
		t.Errorf("All() collected = %v, want %v", got, s.Effective())
	}
}

func TestStack_Empty(t *testing.T) {
	s := NewStack[int]()

	if !s.IsEmpty() {
		t.Error("new stack should be empty")
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if s.WhichLayer("k") != "" {
		t.Error("WhichLayer on an empty stack should return \"\"")
	}
}

func TestStack_MustGet_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustGet on an absent key should panic")
		}
	}()

	NewStack[int]().MustGet("missing")
}

func TestStack_Invalidate(t *testing.T) {
	s := configStack()

	// Prime the cached view, then mutate layer data directly.
	if got, _ := s.Get("editor.tabSize"); got != "2" {
		t.Fatalf("Get(editor.tabSize) = %q, want %q", got, "2")
	}
	s.Layer("user").Data["editor.tabSize"] = "6"

	s.Invalidate()
	if got, _ := s.Get("editor.tabSize"); got != "6" {
		t.Errorf("Get(editor.tabSize) after Invalidate = %q, want %q", got, "6")
	}
}
