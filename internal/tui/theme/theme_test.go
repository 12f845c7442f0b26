package theme

import "testing"

func TestByName(t *testing.T) {
	for _, want := range All {
		if got := ByName(want.Name); got != want {
			t.Errorf("ByName(%q) = %q", want.Name, got.Name)
		}
	}
	if got := ByName("no-such-theme"); got.Name != FlexokiDark.Name {
		t.Errorf("unknown theme resolved to %q, want %q", got.Name, FlexokiDark.Name)
	}
}

func TestSetActive(t *testing.T) {
	t.Cleanup(func() { Active = FlexokiDark })

	SetActive("terminal")
	if Active.Name != "terminal" {
		t.Fatalf("Active = %q, want terminal", Active.Name)
	}
	SetActive("")
	if Active.Name != FlexokiDark.Name {
		t.Errorf("Active = %q after empty name, want default", Active.Name)
	}
}
