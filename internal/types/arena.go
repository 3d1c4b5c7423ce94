// Package types holds the arena-indexed type representation shared by the
// whole inference core: type variables, constructors, functions, objects,
// and the type operators layered on top of them. Every Type lives in an
// Arena and is referred to everywhere else by its stable Idx rather than
// by pointer, so a Variable can be resolved in place without invalidating
// any reference already held to it.
package types

// Idx is a stable reference into an Arena. Unlike a pointer, an Idx never
// dangles across arena growth and is cheap to copy, hash, and compare.
type Idx int

// Arena owns every Type produced during inference of a single unit of
// work. Nothing is ever removed from it; unification narrows types by
// mutating a Variable's instance field in place, never by deleting.
type Arena struct {
	types []Type
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Insert appends a Type holding kind and returns the Idx it can now be
// looked up by. The returned Idx is also written into that Type's ID
// field so printers and error messages can report it without a separate
// lookup.
func (a *Arena) Insert(kind Kind) Idx {
	idx := Idx(len(a.types))
	a.types = append(a.types, Type{ID: idx, Kind: kind})
	return idx
}

// Get returns the Type at idx. Callers that need to follow Variable
// instance chains should call Prune first.
func (a *Arena) Get(idx Idx) Type {
	return a.types[idx]
}

// Set overwrites the Type stored at idx, preserving its ID.
func (a *Arena) Set(idx Idx, kind Kind) {
	a.types[idx] = Type{ID: idx, Kind: kind}
}

// SetInstance records that the Variable at idx now resolves to inst. It
// panics if idx does not hold a Variable: that would be an internal
// invariant violation, not a recoverable type error.
func (a *Arena) SetInstance(idx Idx, inst Idx) {
	v, ok := a.types[idx].Kind.(Variable)
	if !ok {
		panic("types: SetInstance called on a non-Variable type")
	}
	v.Instance = &inst
	a.types[idx].Kind = v
}

// Len reports how many types have been allocated so far.
func (a *Arena) Len() int { return len(a.types) }

// Prune follows a chain of Variable.Instance links and returns the Idx of
// the first non-instantiated type reached, path-compressing every
// intermediate Variable along the way so later lookups are O(1).
func (a *Arena) Prune(idx Idx) Idx {
	v, ok := a.types[idx].Kind.(Variable)
	if !ok || v.Instance == nil {
		return idx
	}
	root := a.Prune(*v.Instance)
	if root != *v.Instance {
		v.Instance = &root
		a.types[idx].Kind = v
	}
	return root
}

// NewVar allocates a fresh, unbound type variable with no constraint.
func (a *Arena) NewVar() Idx {
	return a.Insert(Variable{})
}

// NewVarWithConstraint allocates a fresh type variable bound to unify
// against constraint whenever it is resolved.
func (a *Arena) NewVarWithConstraint(constraint Idx) Idx {
	return a.Insert(Variable{Constraint: &constraint})
}
