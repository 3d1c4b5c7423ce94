package types

import "testing"

func TestExpandKeyOfObject(t *testing.T) {
	a := NewArena()
	num := a.NewPrimitive(Number)
	str := a.NewPrimitive(String)
	obj := a.NewObject(Prop{Name: "x", Type: num}, Prop{Name: "y", Type: str})
	keyOf := a.Insert(Utility{Op: OpKeyOf, Operand: obj})

	expanded, err := ExpandUtility(a, noAliases{}, keyOf)
	if err != nil {
		t.Fatalf("ExpandUtility(keyof) failed: %v", err)
	}
	got := Print(a, expanded)
	if got != `"x" | "y"` {
		t.Errorf("keyof {x,y} = %q, want %q", got, `"x" | "y"`)
	}
}

func TestExpandKeyOfTuple(t *testing.T) {
	a := NewArena()
	num := a.NewPrimitive(Number)
	tup := a.NewTuple(num, num)
	keyOf := a.Insert(Utility{Op: OpKeyOf, Operand: tup})

	expanded, err := ExpandUtility(a, noAliases{}, keyOf)
	if err != nil {
		t.Fatalf("ExpandUtility(keyof tuple) failed: %v", err)
	}
	got := Print(a, expanded)
	if got != `0 | 1 | number` {
		t.Errorf("keyof [number, number] = %q, want %q", got, `0 | 1 | number`)
	}
}

func TestExpandIndexAccessLiteral(t *testing.T) {
	a := NewArena()
	num := a.NewPrimitive(Number)
	str := a.NewPrimitive(String)
	obj := a.NewObject(Prop{Name: "x", Type: num}, Prop{Name: "y", Type: str})
	xKey := a.NewLiteralString("x")
	access := a.Insert(Utility{Op: OpIndexAccess, Object: obj, Index: xKey})

	expanded, err := ExpandUtility(a, noAliases{}, access)
	if err != nil {
		t.Fatalf("ExpandUtility(indexed access) failed: %v", err)
	}
	if got := a.Prune(expanded); got != num {
		t.Errorf("{x,y}[\"x\"] = %s, want number", Print(a, got))
	}
}

func TestExpandIndexAccessTupleOutOfBounds(t *testing.T) {
	a := NewArena()
	num := a.NewPrimitive(Number)
	tup := a.NewTuple(num, num)
	idx := a.NewLiteralNumber("5")
	access := a.Insert(Utility{Op: OpIndexAccess, Object: tup, Index: idx})

	if _, err := ExpandUtility(a, noAliases{}, access); err == nil {
		t.Fatalf("expected out-of-bounds tuple index error")
	}
}

func TestExpandMappedDistributesOverUnionKeys(t *testing.T) {
	a := NewArena()
	num := a.NewPrimitive(Number)
	keyA := a.NewLiteralString("a")
	keyB := a.NewLiteralString("b")
	keys := a.NewUnion(keyA, keyB)

	// {[K in "a" | "b"]: number}
	mapped := a.Insert(Utility{Op: OpMapped, TargetName: "K", Source: keys, Value: num})
	expanded, err := ExpandUtility(a, noAliases{}, mapped)
	if err != nil {
		t.Fatalf("ExpandUtility(mapped) failed: %v", err)
	}
	obj, ok := a.Get(a.Prune(expanded)).Kind.(Object)
	if !ok {
		t.Fatalf("expected an Object result, got %T", a.Get(a.Prune(expanded)).Kind)
	}
	if len(obj.Elems) != 2 {
		t.Fatalf("expected 2 properties, got %d", len(obj.Elems))
	}
}

func TestExpandConditionalTrueBranch(t *testing.T) {
	a := NewArena()
	num := a.NewPrimitive(Number)
	str := a.NewPrimitive(String)
	trueBranch := a.NewLiteralString("yes")
	falseBranch := a.NewLiteralString("no")

	cond := a.Insert(Utility{Op: OpConditional, CheckType: num, ExtendsType: num, True: trueBranch, False: falseBranch})
	got, err := ExpandUtility(a, noAliases{}, cond)
	if err != nil {
		t.Fatalf("ExpandUtility(conditional) failed: %v", err)
	}
	if got != trueBranch {
		t.Errorf("number extends number should take the true branch")
	}

	cond2 := a.Insert(Utility{Op: OpConditional, CheckType: str, ExtendsType: num, True: trueBranch, False: falseBranch})
	got2, err := ExpandUtility(a, noAliases{}, cond2)
	if err != nil {
		t.Fatalf("ExpandUtility(conditional) failed: %v", err)
	}
	if got2 != falseBranch {
		t.Errorf("string extends number should take the false branch")
	}
}

func TestExpandMutableStripsReadOnly(t *testing.T) {
	a := NewArena()
	num := a.NewPrimitive(Number)
	obj := a.NewObject(Prop{Name: "x", Type: num, Mutable: false})
	mut := a.Insert(Utility{Op: OpMutable, Operand: obj})

	expanded, err := ExpandUtility(a, noAliases{}, mut)
	if err != nil {
		t.Fatalf("ExpandUtility(mutable) failed: %v", err)
	}
	result, ok := a.Get(a.Prune(expanded)).Kind.(Object)
	if !ok {
		t.Fatalf("expected Object result")
	}
	p, ok := result.Elems[0].(Prop)
	if !ok || !p.Mutable {
		t.Errorf("expected property to be marked mutable after Mutable<T>")
	}
}
