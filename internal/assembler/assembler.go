package assembler

import (
	"errors"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

// Recoverable assembly failures, surfaced to the user as warnings
var (
	ErrDuplicateFragment = errors.New("fragment already in query")
	ErrFragmentNotFound  = errors.New("fragment not in query")
	ErrTooFewForGroup    = errors.New("an OR group needs at least two fragments")
)

var placeholderRe = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// part is one unit of the active set: a term, a negated term, or an OR group
type part struct {
	texts   []string // single element unless an OR group
	negated bool
	group   bool
}

// Assembler maintains the ordered, duplicate-free active set of dork
// fragments and renders it into a query string. Not safe for concurrent
// use; Service adds locking on top.
type Assembler struct {
	parts []part
	vars  map[string]string
}

// New creates an empty assembler
func New() *Assembler {
	return &Assembler{vars: make(map[string]string)}
}

// Add appends a plain fragment at the end of the active set
func (a *Assembler) Add(text string) error {
	return a.add(text, false)
}

// AddNot appends a negated fragment, rendered with a leading "-"
func (a *Assembler) AddNot(text string) error {
	return a.add(text, true)
}

func (a *Assembler) add(text string, negated bool) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if a.Contains(text) {
		return ErrDuplicateFragment
	}
	a.parts = append(a.parts, part{texts: []string{text}, negated: negated})
	return nil
}

// AddOrGroup appends a "(a OR b)" group. Blank members are dropped;
// duplicates within the group collapse to one member.
func (a *Assembler) AddOrGroup(texts []string) error {
	members := dedupeGroup(texts)
	if len(members) < 2 {
		return ErrTooFewForGroup
	}
	for _, t := range members {
		if a.Contains(t) {
			return ErrDuplicateFragment
		}
	}
	a.parts = append(a.parts, part{texts: members, group: true})
	return nil
}

// Remove drops a fragment from the active set. Removing a member from an
// OR group that leaves a single member degrades the group to a plain term.
func (a *Assembler) Remove(text string) error {
	for i, p := range a.parts {
		for j, t := range p.texts {
			if t != text {
				continue
			}
			if !p.group {
				a.parts = append(a.parts[:i], a.parts[i+1:]...)
				return nil
			}
			remaining := append(append([]string(nil), p.texts[:j]...), p.texts[j+1:]...)
			if len(remaining) == 1 {
				a.parts[i] = part{texts: remaining}
			} else {
				a.parts[i] = part{texts: remaining, group: true}
			}
			return nil
		}
	}
	return ErrFragmentNotFound
}

// ToggleNot flips a plain term to a negated one and back. OR group
// members cannot be negated.
func (a *Assembler) ToggleNot(text string) error {
	for i, p := range a.parts {
		if !p.group && p.texts[0] == text {
			a.parts[i].negated = !p.negated
			return nil
		}
	}
	return ErrFragmentNotFound
}

// Contains reports whether a fragment is anywhere in the active set
func (a *Assembler) Contains(text string) bool {
	for _, p := range a.parts {
		for _, t := range p.texts {
			if t == text {
				return true
			}
		}
	}
	return false
}

// IsNegated reports whether a fragment is present as a negated term
func (a *Assembler) IsNegated(text string) bool {
	for _, p := range a.parts {
		if !p.group && p.negated && p.texts[0] == text {
			return true
		}
	}
	return false
}

// InGroup reports whether a fragment is a member of an OR group
func (a *Assembler) InGroup(text string) bool {
	for _, p := range a.parts {
		if !p.group {
			continue
		}
		for _, t := range p.texts {
			if t == text {
				return true
			}
		}
	}
	return false
}

// Len returns the number of fragments in the active set, counting every
// OR group member
func (a *Assembler) Len() int {
	n := 0
	for _, p := range a.parts {
		n += len(p.texts)
	}
	return n
}

// Fragments returns every fragment in insertion order
func (a *Assembler) Fragments() []string {
	var out []string
	for _, p := range a.parts {
		out = append(out, p.texts...)
	}
	return out
}

// Clear empties the active set. Variables survive so a rebuilt query
// keeps its substitutions.
func (a *Assembler) Clear() {
	a.parts = nil
}

// SetVar records a substitution value for {name} placeholders
func (a *Assembler) SetVar(name, value string) {
	a.vars[name] = value
}

// Vars returns a copy of the variable map
func (a *Assembler) Vars() map[string]string {
	out := make(map[string]string, len(a.vars))
	for k, v := range a.vars {
		out[k] = v
	}
	return out
}

// Placeholders returns the sorted distinct {name} tokens used by the
// active set
func (a *Assembler) Placeholders() []string {
	seen := make(map[string]bool)
	for _, p := range a.parts {
		for _, t := range p.texts {
			for _, m := range placeholderRe.FindAllStringSubmatch(t, -1) {
				seen[m[1]] = true
			}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the space-joined query in insertion order. Placeholders
// with a known variable value are substituted; unknown ones stay verbatim.
func (a *Assembler) Render() string {
	out := make([]string, 0, len(a.parts))
	for _, p := range a.parts {
		switch {
		case p.group:
			subst := make([]string, len(p.texts))
			for i, t := range p.texts {
				subst[i] = a.substitute(t)
			}
			out = append(out, "("+strings.Join(subst, " OR ")+")")
		case p.negated:
			out = append(out, "-"+a.substitute(p.texts[0]))
		default:
			out = append(out, a.substitute(p.texts[0]))
		}
	}
	return strings.Join(out, " ")
}

// GoogleURL returns the rendered query as a Google search URL, or ""
// when the active set is empty
func (a *Assembler) GoogleURL() string {
	rendered := a.Render()
	if rendered == "" {
		return ""
	}
	q := url.Values{}
	q.Set("q", rendered)
	return "https://www.google.com/search?" + q.Encode()
}

// dedupeGroup trims members, drops blanks, and collapses duplicates,
// preserving first-seen order
func dedupeGroup(texts []string) []string {
	var members []string
	seen := make(map[string]bool)
	for _, t := range texts {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		members = append(members, t)
	}
	return members
}

func (a *Assembler) substitute(s string) string {
	return placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		name := m[1 : len(m)-1]
		if v, ok := a.vars[name]; ok && v != "" {
			return v
		}
		return m
	})
}
