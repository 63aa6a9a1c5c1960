package fetch

import "testing"

func TestSafeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Run Fast!", "Run_Fast_"},
		{"already_safe-1.2", "already_safe-1.2"},
		{"slash/back\\colon:", "slash_back_colon_"},
		{"  spaced  out  ", "__spaced__out__"},
		{"Capoeira Ginga", "Capoeira_Ginga"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SafeName(tt.in); got != tt.want {
			t.Errorf("SafeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSafeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Run Fast!.fbx", "Run_Fast_.fbx"},
		{"Run", "Run.fbx"},
		{"idle.fbx", "idle.fbx"},
		{"Sword & Shield Slash", "Sword___Shield_Slash.fbx"},
	}

	for _, tt := range tests {
		if got := SafeFileName(tt.in); got != tt.want {
			t.Errorf("SafeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
