package types

import "testing"

// noAliases is a trivial AliasResolver for tests that never reference a
// user-defined type alias.
type noAliases struct{}

func (noAliases) ResolveAlias(string) (Scheme, bool)               { return Scheme{}, false }
func (noAliases) InstantiateScheme(*Arena, Scheme, []Idx) Idx { return 0 }

func TestUnifyPrimitives(t *testing.T) {
	a := NewArena()
	n1 := a.NewPrimitive(Number)
	n2 := a.NewPrimitive(Number)
	if err := Unify(a, noAliases{}, n1, n2); err != nil {
		t.Fatalf("Unify(number, number) failed: %v", err)
	}

	s := a.NewPrimitive(String)
	if err := Unify(a, noAliases{}, n1, s); err == nil {
		t.Fatalf("Unify(number, string) should fail")
	}
}

func TestUnifyVariableBinds(t *testing.T) {
	a := NewArena()
	v := a.NewVar()
	n := a.NewPrimitive(Number)
	if err := Unify(a, noAliases{}, v, n); err != nil {
		t.Fatalf("Unify(var, number) failed: %v", err)
	}
	if got := a.Prune(v); got != n {
		t.Errorf("Prune(v) = %d, want %d", got, n)
	}
}

func TestUnifyOccursCheck(t *testing.T) {
	a := NewArena()
	v := a.NewVar()
	arr := a.NewArray(v)
	if err := Unify(a, noAliases{}, v, arr); err == nil {
		t.Fatalf("expected occurs-check failure unifying v with Array<v>")
	}
}

func TestUnifyUnionLeftRequiresAll(t *testing.T) {
	a := NewArena()
	n := a.NewPrimitive(Number)
	s := a.NewPrimitive(String)
	union := a.NewUnion(n, s)
	unknown := a.NewPrimitive(Unknown)
	if err := Unify(a, noAliases{}, union, unknown); err != nil {
		t.Fatalf("everything should unify against unknown: %v", err)
	}

	if err := Unify(a, noAliases{}, union, n); err == nil {
		t.Fatalf("(number | string) should not unify against number alone")
	}
}

func TestUnifyUnionRightAcceptsAny(t *testing.T) {
	a := NewArena()
	n := a.NewPrimitive(Number)
	s := a.NewPrimitive(String)
	union := a.NewUnion(n, s)
	n2 := a.NewPrimitive(Number)
	if err := Unify(a, noAliases{}, n2, union); err != nil {
		t.Fatalf("number should unify against (number | string): %v", err)
	}
}

func TestUnifyTuplesWithRest(t *testing.T) {
	a := NewArena()
	n := a.NewPrimitive(Number)
	s := a.NewPrimitive(String)
	rest := a.NewRest(a.NewArray(s))
	t1 := a.NewTuple(n, rest)
	t2 := a.NewTuple(n, s, s, s)
	if err := Unify(a, noAliases{}, t2, t1); err != nil {
		t.Fatalf("Unify([number, string, string, string], [number, ...string[]]) failed: %v", err)
	}
}

func TestUnifyFunctionsContravariantParams(t *testing.T) {
	a := NewArena()
	num := a.NewPrimitive(Number)
	unk := a.NewPrimitive(Unknown)

	// f: (unknown) => number  should be a subtype of  g: (number) => number
	f := a.NewFunc([]FuncParam{{Type: unk}}, num, nil, false, nil)
	g := a.NewFunc([]FuncParam{{Type: num}}, num, nil, false, nil)
	if err := Unify(a, noAliases{}, f, g); err != nil {
		t.Fatalf("contravariant param unification failed: %v", err)
	}
}

func TestUnifyObjectWidthSubtyping(t *testing.T) {
	a := NewArena()
	num := a.NewPrimitive(Number)
	str := a.NewPrimitive(String)

	wide := a.NewObject(Prop{Name: "x", Type: num}, Prop{Name: "y", Type: str})
	narrow := a.NewObject(Prop{Name: "x", Type: num})

	if err := Unify(a, noAliases{}, wide, narrow); err != nil {
		t.Fatalf("wider object should satisfy narrower shape: %v", err)
	}
	if err := Unify(a, noAliases{}, narrow, wide); err == nil {
		t.Fatalf("narrower object should not satisfy wider shape")
	}
}

func TestUnifyObjectMissingMethodFails(t *testing.T) {
	a := NewArena()
	num := a.NewPrimitive(Number)

	push := Method{Name: "push", Params: []FuncParam{{Type: num}}, Ret: num}
	withPush := a.NewObject(push)
	empty := a.NewObject()

	if err := Unify(a, noAliases{}, withPush, withPush); err != nil {
		t.Fatalf("object with matching method should unify: %v", err)
	}
	if err := Unify(a, noAliases{}, empty, withPush); err == nil {
		t.Fatalf("object missing a required method should not unify")
	}
}

func TestUnifyObjectMethodSignatureMismatch(t *testing.T) {
	a := NewArena()
	num := a.NewPrimitive(Number)
	str := a.NewPrimitive(String)

	x := a.NewObject(Method{Name: "push", Params: []FuncParam{{Type: str}}, Ret: num})
	y := a.NewObject(Method{Name: "push", Params: []FuncParam{{Type: num}}, Ret: num})
	if err := Unify(a, noAliases{}, x, y); err == nil {
		t.Fatalf("mismatched method parameter types should not unify")
	}
}

func TestUnifyObjectIndexSignatureSatisfiesNamedProp(t *testing.T) {
	a := NewArena()
	str := a.NewPrimitive(String)
	num := a.NewPrimitive(Number)

	// { [key: string]: number } should satisfy { count: number }.
	indexed := a.NewObject(Index{KeyType: str, ValueType: num})
	required := a.NewObject(Prop{Name: "count", Type: num})
	if err := Unify(a, noAliases{}, indexed, required); err != nil {
		t.Fatalf("index signature should satisfy a named property of a compatible value type: %v", err)
	}

	// A number-keyed index should not satisfy a string-named property.
	numIndexed := a.NewObject(Index{KeyType: num, ValueType: num})
	if err := Unify(a, noAliases{}, numIndexed, required); err == nil {
		t.Fatalf("a number index signature should not satisfy a named string property")
	}
}

func TestUnifyObjectIndexVsIndex(t *testing.T) {
	a := NewArena()
	str := a.NewPrimitive(String)
	num := a.NewPrimitive(Number)
	boolT := a.NewPrimitive(Boolean)

	x := a.NewObject(Index{KeyType: str, ValueType: num})
	y := a.NewObject(Index{KeyType: str, ValueType: num})
	if err := Unify(a, noAliases{}, x, y); err != nil {
		t.Fatalf("matching index signatures should unify: %v", err)
	}

	mismatched := a.NewObject(Index{KeyType: str, ValueType: boolT})
	if err := Unify(a, noAliases{}, x, mismatched); err == nil {
		t.Fatalf("index signatures with different value types should not unify")
	}
}

func TestUnifyCallWithUnionCallee(t *testing.T) {
	a := NewArena()
	num := a.NewPrimitive(Number)
	str := a.NewPrimitive(String)

	f1 := a.NewFunc([]FuncParam{{Type: num}}, num, nil, false, nil)
	f2 := a.NewFunc([]FuncParam{{Type: num}}, str, nil, false, nil)
	union := a.NewUnion(f1, f2)

	ret, err := UnifyCall(a, noAliases{}, []Idx{num}, nil, union)
	if err != nil {
		t.Fatalf("UnifyCall failed: %v", err)
	}
	got := Print(a, ret)
	if got != "number | string" {
		t.Errorf("UnifyCall result = %q, want %q", got, "number | string")
	}
}
