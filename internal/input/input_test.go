package input

import "testing"

func TestController_SetAndGet(t *testing.T) {
	c := NewController("")
	if c.URL() != "" {
		t.Fatalf("URL() = %q, want empty", c.URL())
	}

	c.SetURL("  not a url  ")
	if c.URL() != "  not a url  " {
		t.Errorf("SetURL must store text verbatim, got %q", c.URL())
	}
}

func TestController_Editing(t *testing.T) {
	tests := []struct {
		name  string
		start string
		edit  func(*Controller)
		want  string
	}{
		{"insert", "https://", func(c *Controller) { c.InsertRunes([]rune("go.dev")) }, "https://go.dev"},
		{"backspace", "abc", func(c *Controller) { c.Backspace() }, "ab"},
		{"backspace multibyte", "héé", func(c *Controller) { c.Backspace() }, "hé"},
		{"backspace empty", "", func(c *Controller) { c.Backspace() }, ""},
		{"clear", "https://go.dev", func(c *Controller) { c.Clear() }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(tt.start)
			tt.edit(c)
			if c.URL() != tt.want {
				t.Errorf("URL() = %q, want %q", c.URL(), tt.want)
			}
		})
	}
}
