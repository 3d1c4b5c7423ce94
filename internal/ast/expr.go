package ast

// Expr is any syntactic expression node.
type Expr interface {
	Node
	exprNode()
}

// LiteralKind tags the three literal-producing primitive kinds.
type LiteralKind int

const (
	LitNumber LiteralKind = iota
	LitString
	LitBoolean
)

// Ident is a bare name reference, resolved by looking up a value scheme in
// the current Context.
type Ident struct {
	SpanV Span
	Name  string
}

func (e *Ident) Span() Span { return e.SpanV }
func (*Ident) exprNode()    {}

// Literal is a boolean, number, or string literal. Number is stored as the
// original source text: "1.0" and "1" are distinct literal types.
type Literal struct {
	SpanV Span
	Kind  LiteralKind
	Text  string // source text for LitNumber/LitString
	Bool  bool   // valid when Kind == LitBoolean
}

func (e *Literal) Span() Span { return e.SpanV }
func (*Literal) exprNode()    {}

// NullLiteral and UndefinedLiteral are the sole inhabitants of the `null`
// and `undefined` primitive types.
type NullLiteral struct{ SpanV Span }

func (e *NullLiteral) Span() Span { return e.SpanV }
func (*NullLiteral) exprNode()    {}

type UndefinedLiteral struct{ SpanV Span }

func (e *UndefinedLiteral) Span() Span { return e.SpanV }
func (*UndefinedLiteral) exprNode()    {}

// TupleLiteral is `[a, b, c]` inferred as a tuple of element types.
type TupleLiteral struct {
	SpanV    Span
	Elements []Expr
}

func (e *TupleLiteral) Span() Span { return e.SpanV }
func (*TupleLiteral) exprNode()    {}

// ObjectLiteralProp is one `name: value` entry of an object literal.
type ObjectLiteralProp struct {
	Name  string
	Value Expr
}

// ObjectLiteral is `{ a: 1, b: 2 }`, inferred as an object type whose
// properties mirror the inferred value types.
type ObjectLiteral struct {
	SpanV Span
	Props []ObjectLiteralProp
}

func (e *ObjectLiteral) Span() Span { return e.SpanV }
func (*ObjectLiteral) exprNode()    {}

// MemberExpr is `obj.prop`, inferred via indexed access with a literal
// string index.
type MemberExpr struct {
	SpanV    Span
	Object   Expr
	Property string
}

func (e *MemberExpr) Span() Span { return e.SpanV }
func (*MemberExpr) exprNode()    {}

// IndexExpr is `obj[idx]`, inferred via the indexed-access type operator.
type IndexExpr struct {
	SpanV  Span
	Object Expr
	Index  Expr
}

func (e *IndexExpr) Span() Span { return e.SpanV }
func (*IndexExpr) exprNode()    {}

// CallExpr is `callee(args...)`, optionally with explicit type arguments.
type CallExpr struct {
	SpanV    Span
	Callee   Expr
	Args     []Expr
	TypeArgs []TypeExpr // explicit instantiation, may be nil
}

func (e *CallExpr) Span() Span { return e.SpanV }
func (*CallExpr) exprNode()    {}

// FuncParamExpr is one formal parameter of a lambda or function type: a
// binding pattern, an optional annotation, and an optional flag.
type FuncParamExpr struct {
	Pattern  Pattern
	Type     TypeExpr // nil if uninferred/unannotated
	Optional bool
}

// LambdaExpr is `(params) => body` or `async (params) => body`.
type LambdaExpr struct {
	SpanV      Span
	Params     []FuncParamExpr
	Body       Expr
	IsAsync    bool
	ReturnType TypeExpr // optional explicit annotation
	Throws     TypeExpr // optional explicit throws annotation
}

func (e *LambdaExpr) Span() Span { return e.SpanV }
func (*LambdaExpr) exprNode()    {}

// IfExpr is `if (cond) then else else`.
type IfExpr struct {
	SpanV Span
	Cond  Expr
	Then  Expr
	Else  Expr // nil for a statement-only `if` with no else
}

func (e *IfExpr) Span() Span { return e.SpanV }
func (*IfExpr) exprNode()    {}

// MatchArm is one `pattern -> body` (optionally guarded) arm of a match
// expression.
type MatchArm struct {
	Pattern Pattern
	Guard   Expr // nil if unguarded
	Body    Expr
}

// MatchExpr is `match (scrutinee) { arms... }`.
type MatchExpr struct {
	SpanV     Span
	Scrutinee Expr
	Arms      []MatchArm
}

func (e *MatchExpr) Span() Span { return e.SpanV }
func (*MatchExpr) exprNode()    {}

// TryExpr is `try { ... } catch (e) { ... } finally { ... }`.
type TryExpr struct {
	SpanV       Span
	Try         Expr
	CatchParam  string // empty if no catch clause
	Catch       Expr   // nil if no catch clause
	Finally     Expr   // nil if absent
}

func (e *TryExpr) Span() Span { return e.SpanV }
func (*TryExpr) exprNode()    {}

// ThrowExpr is `throw expr`.
type ThrowExpr struct {
	SpanV Span
	Value Expr
}

func (e *ThrowExpr) Span() Span { return e.SpanV }
func (*ThrowExpr) exprNode()    {}

// AwaitExpr is `await expr`.
type AwaitExpr struct {
	SpanV Span
	Value Expr
}

func (e *AwaitExpr) Span() Span { return e.SpanV }
func (*AwaitExpr) exprNode()    {}

// BinaryExpr is a binary operator application, resolved against the
// built-in overload set.
type BinaryExpr struct {
	SpanV Span
	Op    string
	Left  Expr
	Right Expr
}

func (e *BinaryExpr) Span() Span { return e.SpanV }
func (*BinaryExpr) exprNode()    {}

// UnaryExpr is a unary operator application.
type UnaryExpr struct {
	SpanV   Span
	Op      string
	Operand Expr
}

func (e *UnaryExpr) Span() Span { return e.SpanV }
func (*UnaryExpr) exprNode()    {}

// BlockExpr is `{ stmts... }` used as an expression (a lambda body or a
// do-expression): its type is that of the last statement, or `undefined`
// if empty.
type BlockExpr struct {
	SpanV      Span
	Statements []Stmt
}

func (e *BlockExpr) Span() Span { return e.SpanV }
func (*BlockExpr) exprNode()    {}
