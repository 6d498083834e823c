// Package permission decides whether a set of granted permission strings
// covers a requested capability.
//
// Permissions are dotted strings ("caisse.vendre"). A granted entry ending in
// ".*" covers every permission that starts with its prefix, separator
// included: "stock.*" covers "stock.modifier" but not "stockage.voir".
package permission

import "strings"

// Wildcard is the reserved suffix of a prefix grant.
const Wildcard = ".*"

// Can reports whether granted covers requested, by exact match or by a
// wildcard grant. No other prefix matching happens.
func Can(granted []string, requested string) bool {
	if requested == "" {
		return false
	}
	for _, g := range granted {
		if g == requested {
			return true
		}
		if strings.HasSuffix(g, Wildcard) {
			prefix := strings.TrimSuffix(g, "*") // keeps the separator
			if len(requested) > len(prefix) && strings.HasPrefix(requested, prefix) {
				return true
			}
		}
	}
	return false
}

// Decision is the outcome of a gate check.
type Decision int

const (
	// Unknown means permissions are still loading: render nothing, deny nothing.
	Unknown Decision = iota
	Granted
	Denied
)

func (d Decision) String() string {
	switch d {
	case Granted:
		return "granted"
	case Denied:
		return "denied"
	default:
		return "unknown"
	}
}

// Gate wraps the permission list of the current user as last returned by the
// backend. It is recomputed from that list on every call; nothing is cached.
type Gate struct {
	granted []string
	loaded  bool
}

// Loading returns a gate for which permissions have not arrived yet.
func Loading() Gate { return Gate{} }

// NewGate returns a gate over a loaded permission list.
func NewGate(granted []string) Gate {
	return Gate{granted: granted, loaded: true}
}

func (g Gate) Loaded() bool { return g.loaded }

// Permissions returns a copy of the granted list, nil while loading.
func (g Gate) Permissions() []string {
	if !g.loaded {
		return nil
	}
	return append([]string{}, g.granted...)
}

// Check returns Unknown while loading, then Granted or Denied.
func (g Gate) Check(requested string) Decision {
	if !g.loaded {
		return Unknown
	}
	if Can(g.granted, requested) {
		return Granted
	}
	return Denied
}

// Can is true only for a loaded gate that grants requested.
func (g Gate) Can(requested string) bool {
	return g.Check(requested) == Granted
}

// Any is Granted when at least one of requested is granted.
func (g Gate) Any(requested ...string) Decision {
	if !g.loaded {
		return Unknown
	}
	for _, r := range requested {
		if Can(g.granted, r) {
			return Granted
		}
	}
	return Denied
}
