package models

import (
	"fmt"
	"strings"
)

// ============================================================
// Connection endpoints
// ============================================================

// Endpoint — конец соединения "<component_id>-<pin_name>".
type Endpoint struct {
	Component string `json:"component"`
	Pin       string `json:"pin"`
}

// ParseEndpoint разбирает строку по первому дефису: "U1-3" -> {U1, 3}.
func ParseEndpoint(s string) (Endpoint, error) {
	s = strings.TrimSpace(s)
	idx := strings.Index(s, "-")
	if idx <= 0 || idx == len(s)-1 {
		return Endpoint{}, fmt.Errorf("endpoint %q: expected <component>-<pin>", s)
	}
	return Endpoint{Component: s[:idx], Pin: s[idx+1:]}, nil
}

func (e Endpoint) String() string {
	return e.Component + "-" + e.Pin
}

// NetName — имя цепи для одного соединения.
func NetName(c Connection) string {
	return fmt.Sprintf("net_%s_%s", c.From, c.To)
}
