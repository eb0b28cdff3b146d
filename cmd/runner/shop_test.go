package main

import (
	"testing"

	"github.com/vovakirdan/boko-runner/internal/profile"
)

func TestResolveItem(t *testing.T) {
	tests := []struct {
		arg  string
		want profile.ItemID
		ok   bool
	}{
		{"doubler", profile.ItemDoubler, true},
		{"shop_doubler", profile.ItemDoubler, true},
		{" Shield_Plus ", profile.ItemShieldPlus, true},
		{"pokeball_skin", profile.ItemPokeballSkin, true},
		{"jetpack", "", false},
	}
	for _, tt := range tests {
		item, ok := resolveItem(tt.arg)
		if ok != tt.ok {
			t.Errorf("resolveItem(%q) ok = %v, want %v", tt.arg, ok, tt.ok)
			continue
		}
		if ok && item.ID != tt.want {
			t.Errorf("resolveItem(%q) = %s, want %s", tt.arg, item.ID, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[float64]string{
		0:     "0:00",
		9.7:   "0:09",
		61:    "1:01",
		600.2: "10:00",
	}
	for in, want := range tests {
		if got := formatDuration(in); got != want {
			t.Errorf("formatDuration(%v) = %q, want %q", in, got, want)
		}
	}
}
