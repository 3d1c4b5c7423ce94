package types

// Scheme is a let-polymorphic type: a body type together with the names
// of its generic type parameters. Binding a Scheme into a Context (a
// `let` or a type alias) defers copying until the bound name is actually
// looked up, at which point checker.Fresh copies Body, giving a new
// variable to every variable the looking-up scope considers generic and
// sharing the non-generic ones.
type Scheme struct {
	TypeParams []TypeParam
	Body       Idx
}

// Mono wraps a non-generic type as a trivial Scheme with no type
// parameters, letting callers treat monomorphic and polymorphic bindings
// uniformly in Context.Values.
func Mono(idx Idx) Scheme {
	return Scheme{Body: idx}
}
