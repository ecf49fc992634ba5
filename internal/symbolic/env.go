package symbolic

import (
	"sort"
	"strings"

	"github.com/gnoverse/rangelogic/rangeset"
)

// Env maps variable names to the set of values they may hold.
type Env struct {
	vars   map[string]*rangeset.List
	parent *Env
}

// NewEnv creates a new empty environment.
func NewEnv() *Env {
	return &Env{
		vars: make(map[string]*rangeset.List),
	}
}

// NewChildEnv returns an empty scope on top of parent. Bindings made in
// the child narrow or shadow the parent's without touching it.
func NewChildEnv(parent *Env) *Env {
	return &Env{
		vars:   make(map[string]*rangeset.List),
		parent: parent,
	}
}

// Get returns the domain of a variable, or nil if it is not bound.
func (e *Env) Get(name string) *rangeset.List {
	if d, ok := e.vars[name]; ok {
		return d
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil
}

// Set binds name to domain in the current scope. The environment keeps the
// list; callers must not modify it afterwards.
func (e *Env) Set(name string, domain *rangeset.List) {
	e.vars[name] = domain
}

// Keys returns all variable names in this environment (not including parent).
func (e *Env) Keys() []string {
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (e *Env) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, k := range e.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(k + ": " + e.vars[k].String())
	}
	if e.parent != nil {
		b.WriteString(" | parent: " + e.parent.String())
	}
	b.WriteString("}")
	return b.String()
}
