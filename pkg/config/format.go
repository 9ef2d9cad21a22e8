package config

import (
	"fmt"
	"strings"
)

// ParseFormat converts a flag or environment value to an OutputFormat.
func ParseFormat(s string) (OutputFormat, error) {
	f := OutputFormat(strings.ToLower(strings.TrimSpace(s)))
	if !f.IsValid() {
		return "", fmt.Errorf("invalid output format %q (want text, json, yaml or html)", s)
	}
	return f, nil
}

// ParseMode converts a flag or environment value to a CountMode.
func ParseMode(s string) (CountMode, error) {
	m := CountMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", fmt.Errorf("invalid count mode %q (want files, lines or bytes)", s)
	}
	return m, nil
}

// ParseColor converts a flag or environment value to a ColorMode.
func ParseColor(s string) (ColorMode, error) {
	c := ColorMode(strings.ToLower(strings.TrimSpace(s)))
	if !c.IsValid() {
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
	return c, nil
}
