package flow

import "strings"

// Role classifies an element by the part it plays in a connection.
// Roles are bit flags: a transform stage is both a passive sink and a
// passive source.
type Role uint8

const (
	ActiveSink Role = 1 << iota
	ActiveSource
	PassiveSink
	PassiveSource
)

// Has reports whether every flag of other is set in r.
func (r Role) Has(other Role) bool {
	return other != 0 && r&other == other
}

func (r Role) String() string {
	if r == 0 {
		return "none"
	}
	var parts []string
	if r.Has(ActiveSink) {
		parts = append(parts, "active_sink")
	}
	if r.Has(ActiveSource) {
		parts = append(parts, "active_source")
	}
	if r.Has(PassiveSink) {
		parts = append(parts, "passive_sink")
	}
	if r.Has(PassiveSource) {
		parts = append(parts, "passive_source")
	}
	return strings.Join(parts, "|")
}

// Classified is implemented by every element that declares its role.
type Classified interface {
	Role() Role
}

// RoleOf returns the declared role of c, or zero if c does not declare one.
func RoleOf(c any) Role {
	if cl, ok := c.(Classified); ok {
		return cl.Role()
	}
	return 0
}

// IsActive reports whether c initiates connections.
func IsActive(c any) bool { return RoleOf(c)&(ActiveSink|ActiveSource) != 0 }

func IsActiveSink(c any) bool    { return RoleOf(c).Has(ActiveSink) }
func IsActiveSource(c any) bool  { return RoleOf(c).Has(ActiveSource) }
func IsPassiveSink(c any) bool   { return RoleOf(c).Has(PassiveSink) }
func IsPassiveSource(c any) bool { return RoleOf(c).Has(PassiveSource) }
