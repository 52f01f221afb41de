package logdom

import "strings"

// RootDomain is the name of the root of the domain hierarchy. It is
// CHASSIS_LOG_DEFAULT_DOMAIN's Go counterpart.
const RootDomain = ""

// Ancestors splits a dotted domain name into its ancestor sequence,
// root first, the name itself last:
//
//	Ancestors("")                      = [""]
//	Ancestors("a")                     = ["", "a"]
//	Ancestors("a.b.c")                 = ["", "a", "a.b", "a.b.c"]
//
// A nil return signals name is not a valid domain name: a valid name
// is either the root ("") or has no empty segment (no leading,
// trailing, or doubled '.'). This is the pure-function analogue of
// the spec's "ancestors(absent) = empty list".
func Ancestors(name string) []string {
	if name == RootDomain {
		return []string{RootDomain}
	}

	segments := strings.Split(name, ".")
	out := make([]string, 0, len(segments)+1)
	out = append(out, RootDomain)
	for i := range segments {
		if segments[i] == "" {
			return nil
		}
		out = append(out, strings.Join(segments[:i+1], "."))
	}
	return out
}

// Parent returns the name's parent domain: the longest proper dotted
// prefix, or the root if name has no dot. Parent(RootDomain) returns
// RootDomain itself (the root is its own fixed point).
func Parent(name string) string {
	if name == RootDomain {
		return RootDomain
	}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		return name[:i]
	}
	return RootDomain
}
