package types

// Reserved constructor names. The unifier and type operators special-case
// these directly rather than resolving them through a Context's alias
// table.
const (
	ArrayName        = "Array"
	PromiseName       = "Promise"
	TupleName        = "@@tuple"
	UnionName        = "@@union"
	IntersectionName = "@@intersection"
)

// Primitive kind names.
const (
	Number    = "number"
	String    = "string"
	Boolean   = "boolean"
	Symbol    = "symbol"
	Null      = "null"
	Undefined = "undefined"
	Never     = "never"
	Unknown   = "unknown"
)

// Type is one arena slot: a stable ID plus the variant data describing it.
type Type struct {
	ID   Idx
	Kind Kind
}

// Kind is the sum type of every variant a Type can hold. Implementations
// are value types (not pointers) so that Arena.types stays a flat,
// cache-friendly slice.
type Kind interface {
	isKind()
}

// Variable is an as-yet-unresolved type. Instance is nil until
// unification binds it to a concrete Idx; Constraint, if set, must unify
// against whatever Instance is eventually bound to.
type Variable struct {
	Instance   *Idx
	Constraint *Idx
}

func (Variable) isKind() {}

// LiteralKind distinguishes the three literal-producing primitives.
type LiteralKind int

const (
	LitNumber LiteralKind = iota
	LitString
	LitBoolean
)

// Literal is a singleton type inhabited by exactly one value: the number
// or string text as written in source (so "1" and "1.0" are distinct
// literal types), or a boolean.
type Literal struct {
	Kind LiteralKind
	Text string
	Bool bool
}

func (Literal) isKind() {}

// Constructor is a nominal type applied to zero or more type arguments:
// a primitive (0 args), Array<T>, Promise<T>, a user-defined generic
// alias, or one of the three structural markers (@@tuple, @@union,
// @@intersection) whose Args hold the member types.
type Constructor struct {
	Name string
	Args []Idx
}

func (Constructor) isKind() {}

// TypeParam is one generic parameter of a Function or an alias Scheme.
type TypeParam struct {
	Name       string
	Constraint *Idx
	Default    *Idx
}

// FuncParam is one formal parameter of a Function type.
type FuncParam struct {
	Pattern  string // the bound identifier name; "" for an unnamed/pattern param
	Type     Idx
	Optional bool
}

// Function is a function signature: its params, return type, the set of
// types it may throw (a single type or a @@union of them, or nil if it
// cannot throw), and its
// own generic type parameters when used as a polymorphic call signature
// (as opposed to Scheme-level polymorphism for let-bound functions).
type Function struct {
	Params     []FuncParam
	Ret        Idx
	Throws     *Idx
	IsAsync    bool
	TypeParams []TypeParam
}

func (Function) isKind() {}

// Prop is a named property of an Object type.
type Prop struct {
	Name     string
	Type     Idx
	Optional bool
	Mutable  bool
}

// Method is a named, possibly generic, callable member of an Object type.
type Method struct {
	Name       string
	TypeParams []TypeParam
	Params     []FuncParam
	Ret        Idx
}

// Index is an index signature `[key: K]: V` on an Object type.
type Index struct {
	KeyType   Idx
	ValueType Idx
	Mutable   bool
}

// ObjElem is one member of an Object type: a Prop, Method, or Index.
type ObjElem interface {
	isObjElem()
}

func (Prop) isObjElem()   {}
func (Method) isObjElem() {}
func (Index) isObjElem()  {}

// Object is a structural record type: width-subtyping matches on Props by
// name, allowing extra properties on the source side.
type Object struct {
	Elems []ObjElem
}

func (Object) isKind() {}

// Rest wraps the trailing variadic element of a tuple or function
// parameter list. It only ever appears as the last element of a Tuple
// Constructor's Args or a Function's Params.
type Rest struct {
	Arg Idx
}

func (Rest) isKind() {}

// UtilityOp tags which lazily-expanded type operator a Utility type
// represents.
type UtilityOp int

const (
	OpKeyOf UtilityOp = iota
	OpIndexAccess
	OpMapped
	OpConditional
	OpMutable
)

// MappedChange models the `+`/`-` modifier on a mapped type's `optional`
// or `mutable` marker; nil preserves the source property's flag.
type MappedChange *bool

// Utility is an unevaluated type-level operator. One resolved from a type
// annotation is expanded to a concrete Kind on demand during unification
// (see ExpandUtility in operators.go), so that the operand types may still
// contain unresolved type variables at the time the operator is written.
// The checker expands the index access of a member or index expression as
// soon as that expression is inferred.
type Utility struct {
	Op UtilityOp

	// KeyOf / Mutable
	Operand Idx

	// IndexAccess
	Object Idx
	Index  Idx

	// Mapped
	TargetName string
	Source     Idx
	Value      Idx
	Optional   MappedChange
	Mutable    MappedChange
	Check      *Idx
	Extends    *Idx

	// Conditional
	CheckType   Idx
	ExtendsType Idx
	True        Idx
	False       Idx
}

func (Utility) isKind() {}
