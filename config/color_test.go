package config

import (
	"errors"
	"testing"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"EEEDF0", RGB{0xEE, 0xED, 0xF0}, false},
		{"#000000", RGB{}, false},
		{" ff8000 ", RGB{0xFF, 0x80, 0x00}, false},
		{"fff", RGB{}, true},
		{"GG0000", RGB{}, true},
		{"", RGB{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalid) {
					t.Fatalf("expected ErrInvalid, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.want {
				t.Errorf("ParseHexColor(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLoadParsesColors(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.BackgroundColor() != (RGB{0xEE, 0xED, 0xF0}) {
		t.Errorf("background = %+v", cfg.BackgroundColor())
	}
	if cfg.InkColor() != (RGB{}) {
		t.Errorf("ink = %+v", cfg.InkColor())
	}
}
