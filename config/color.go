package config

import (
	"fmt"
	"strconv"
	"strings"
)

// RGB is an 8-bit color.
type RGB struct {
	R, G, B uint8
}

// ParseHexColor parses "RRGGBB" with an optional leading '#'.
func ParseHexColor(s string) (RGB, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return RGB{}, fmt.Errorf("%w: color %q must have six hex digits", ErrInvalid, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: color %q: %v", ErrInvalid, s, err)
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// BackgroundColor returns the parsed render background.
func (c *Config) BackgroundColor() RGB {
	return c.Derived.Background
}

// InkColor returns the parsed particle color.
func (c *Config) InkColor() RGB {
	return c.Derived.Ink
}
