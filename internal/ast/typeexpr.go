package ast

// TypeExpr is a syntactic type annotation as produced by the parser. The
// checker resolves a TypeExpr into an arena-backed types.Idx (see
// checker/resolve_type.go); TypeExpr itself never touches the arena.
type TypeExpr interface {
	Node
	typeExprNode()
}

// TypeParamExpr is one declared type parameter of a generic alias,
// function, or object method.
type TypeParamExpr struct {
	Name       string
	Constraint TypeExpr // nil if unconstrained
	Default    TypeExpr // nil if no default
}

// NameTypeExpr is a named type reference, optionally applied to type
// arguments: `T`, `Array<T>`, `Result<T, E>`. Reserved constructor names
// (Array, Promise, @@tuple, @@union, @@intersection) are recognized by
// name; any other name resolves through Context.Schemes.
type NameTypeExpr struct {
	SpanV Span
	Name  string
	Args  []TypeExpr
}

func (t *NameTypeExpr) Span() Span    { return t.SpanV }
func (*NameTypeExpr) typeExprNode()   {}

// LiteralTypeExpr is a literal-singleton type annotation, e.g. `"DIV"`,
// `5`, `true`.
type LiteralTypeExpr struct {
	SpanV Span
	Kind  LiteralKind
	Text  string
	Bool  bool
}

func (t *LiteralTypeExpr) Span() Span  { return t.SpanV }
func (*LiteralTypeExpr) typeExprNode() {}

// RestTypeExpr marks the trailing variadic element of a tuple or the
// trailing variadic parameter of a function type.
type RestTypeExpr struct {
	SpanV Span
	Inner TypeExpr
}

func (t *RestTypeExpr) Span() Span    { return t.SpanV }
func (*RestTypeExpr) typeExprNode()   {}

// TupleTypeExpr is `[T, U, ...V]`.
type TupleTypeExpr struct {
	SpanV    Span
	Elements []TypeExpr
}

func (t *TupleTypeExpr) Span() Span    { return t.SpanV }
func (*TupleTypeExpr) typeExprNode()   {}

// UnionTypeExpr is `A | B | C` (flattened and deduplicated once resolved).
type UnionTypeExpr struct {
	SpanV   Span
	Members []TypeExpr
}

func (t *UnionTypeExpr) Span() Span    { return t.SpanV }
func (*UnionTypeExpr) typeExprNode()   {}

// IntersectionTypeExpr is `A & B & C`.
type IntersectionTypeExpr struct {
	SpanV   Span
	Members []TypeExpr
}

func (t *IntersectionTypeExpr) Span() Span  { return t.SpanV }
func (*IntersectionTypeExpr) typeExprNode() {}

// FuncTypeExpr is a function type annotation: `<T>(a: A, b?: B) => R throws E`.
type FuncTypeExpr struct {
	SpanV      Span
	TypeParams []TypeParamExpr
	Params     []FuncParamExpr
	Ret        TypeExpr
	Throws     TypeExpr // nil if the function cannot throw
}

func (t *FuncTypeExpr) Span() Span    { return t.SpanV }
func (*FuncTypeExpr) typeExprNode()   {}

// ObjectTypeElem is one member of an ObjectTypeExpr: a property, a method,
// an index signature, or a mapped-type element.
type ObjectTypeElem interface {
	objectTypeElemNode()
}

// PropTypeElem is `name: T`, `name?: T`, or `mutable name: T`.
type PropTypeElem struct {
	Name     string
	Type     TypeExpr
	Optional bool
	Mutable  bool
}

func (PropTypeElem) objectTypeElemNode() {}

// MethodTypeElem is `name(params): R` (optionally generic).
type MethodTypeElem struct {
	Name       string
	TypeParams []TypeParamExpr
	Params     []FuncParamExpr
	Ret        TypeExpr
	IsMutating bool
}

func (MethodTypeElem) objectTypeElemNode() {}

// IndexTypeElem is `[key: K]: V`.
type IndexTypeElem struct {
	KeyType   TypeExpr
	ValueType TypeExpr
	Mutable   bool
}

func (IndexTypeElem) objectTypeElemNode() {}

// MappedChange models the `+`/`-` modifier used on `optional`/`mutable`
// mapped-type markers; nil means "preserve the source property's flag".
type MappedChange *bool

// MappedTypeElem is `[K in Source]: Value`, optionally constrained by
// `Check extends Extends` for homomorphic mapping.
type MappedTypeElem struct {
	TargetName string
	Source     TypeExpr
	Value      TypeExpr
	Optional   MappedChange
	Mutable    MappedChange
	Check      TypeExpr
	Extends    TypeExpr
}

func (MappedTypeElem) objectTypeElemNode() {}

// ObjectTypeExpr is `{ elems... }`.
type ObjectTypeExpr struct {
	SpanV    Span
	Elements []ObjectTypeElem
}

func (t *ObjectTypeExpr) Span() Span   { return t.SpanV }
func (*ObjectTypeExpr) typeExprNode()  {}

// KeyOfTypeExpr is `keyof T`.
type KeyOfTypeExpr struct {
	SpanV   Span
	Operand TypeExpr
}

func (t *KeyOfTypeExpr) Span() Span   { return t.SpanV }
func (*KeyOfTypeExpr) typeExprNode()  {}

// IndexAccessTypeExpr is `T[K]`.
type IndexAccessTypeExpr struct {
	SpanV  Span
	Object TypeExpr
	Index  TypeExpr
}

func (t *IndexAccessTypeExpr) Span() Span  { return t.SpanV }
func (*IndexAccessTypeExpr) typeExprNode() {}

// ConditionalTypeExpr is `Check extends Extends ? True : False`.
type ConditionalTypeExpr struct {
	SpanV   Span
	Check   TypeExpr
	Extends TypeExpr
	True    TypeExpr
	False   TypeExpr
}

func (t *ConditionalTypeExpr) Span() Span  { return t.SpanV }
func (*ConditionalTypeExpr) typeExprNode() {}

// MutableTypeExpr is `Mutable<T>`, stripping read-only flags recursively.
type MutableTypeExpr struct {
	SpanV   Span
	Operand TypeExpr
}

func (t *MutableTypeExpr) Span() Span  { return t.SpanV }
func (*MutableTypeExpr) typeExprNode() {}
