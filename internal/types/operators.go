package types

// ExpandUtility lazily evaluates a Utility type operator into a concrete
// Kind, returning the Idx of the expanded result. It is called by Unify
// whenever one side of a comparison is still an unevaluated operator;
// operand types may themselves still contain unresolved variables.
func ExpandUtility(a *Arena, res AliasResolver, idx Idx) (Idx, error) {
	u, ok := a.Get(a.Prune(idx)).Kind.(Utility)
	if !ok {
		return idx, nil
	}
	switch u.Op {
	case OpKeyOf:
		return expandKeyOf(a, res, u.Operand)
	case OpIndexAccess:
		return expandIndexAccess(a, res, u.Object, u.Index)
	case OpMapped:
		return expandMapped(a, res, u)
	case OpConditional:
		return expandConditional(a, res, u)
	case OpMutable:
		return expandMutable(a, res, u.Operand)
	}
	return idx, nil
}

func expandKeyOf(a *Arena, res AliasResolver, operand Idx) (Idx, error) {
	operand, err := resolveHead(a, res, operand)
	if err != nil {
		return 0, err
	}
	switch k := a.Get(operand).Kind.(type) {
	case Object:
		named := map[string]Idx{}
		var indexKeys []Idx
		for _, e := range k.Elems {
			switch el := e.(type) {
			case Prop:
				named[el.Name] = a.NewLiteralString(el.Name)
			case Method:
				named[el.Name] = a.NewLiteralString(el.Name)
			case Index:
				indexKeys = append(indexKeys, el.KeyType)
			}
		}
		// Named keys are sorted so KeyOf's result is deterministic
		// regardless of the Object's declaration order.
		keys := make([]Idx, 0, len(named)+len(indexKeys))
		for _, name := range SortedKeys(named) {
			keys = append(keys, named[name])
		}
		keys = append(keys, indexKeys...)
		if len(keys) == 0 {
			return a.NewConstructor(Never), nil
		}
		return a.NewUnion(keys...), nil
	case Constructor:
		if k.Name == TupleName {
			keys := make([]Idx, 0, len(k.Args)+1)
			for i := range k.Args {
				keys = append(keys, a.NewLiteralNumber(itoa(i)))
			}
			keys = append(keys, a.NewPrimitive(Number))
			return a.NewUnion(keys...), nil
		}
		if k.Name == ArrayName {
			return a.NewPrimitive(Number), nil
		}
	}
	return 0, errNotCallable(a, operand)
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := []byte{}
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

func expandIndexAccess(a *Arena, res AliasResolver, object, index Idx) (Idx, error) {
	object, err := resolveHead(a, res, object)
	if err != nil {
		return 0, err
	}
	index = a.Prune(index)

	// Distribute over a union index: T[A | B] == T[A] | T[B].
	if ic, ok := a.Get(index).Kind.(Constructor); ok && ic.Name == UnionName {
		var results []Idx
		for _, m := range ic.Args {
			r, err := expandIndexAccess(a, res, object, m)
			if err != nil {
				return 0, err
			}
			results = append(results, r)
		}
		return a.NewUnion(results...), nil
	}

	lit, isLit := a.Get(index).Kind.(Literal)

	switch k := a.Get(object).Kind.(type) {
	case Object:
		if isLit && lit.Kind == LitString {
			for _, e := range k.Elems {
				if p, ok := e.(Prop); ok && p.Name == lit.Text {
					return p.Type, nil
				}
				if m, ok := e.(Method); ok && m.Name == lit.Text {
					return a.NewFunc(m.Params, m.Ret, nil, false, m.TypeParams), nil
				}
			}
			for _, e := range k.Elems {
				if ix, ok := e.(Index); ok {
					return ix.ValueType, nil
				}
			}
			return 0, errMissingProperty(a, object, lit.Text)
		}
		// Non-literal index: union over every property's value type.
		var results []Idx
		for _, e := range k.Elems {
			switch el := e.(type) {
			case Prop:
				results = append(results, el.Type)
			case Method:
				results = append(results, a.NewFunc(el.Params, el.Ret, nil, false, el.TypeParams))
			case Index:
				results = append(results, el.ValueType)
			}
		}
		return a.NewUnion(results...), nil
	case Constructor:
		if k.Name == TupleName {
			if isLit && lit.Kind == LitNumber {
				i := atoi(lit.Text)
				if i < 0 || i >= len(k.Args) {
					return 0, errTupleIndexOutOfBounds(a, object, i, len(k.Args))
				}
				return k.Args[i], nil
			}
			return a.NewUnion(k.Args...), nil
		}
		if k.Name == ArrayName {
			return k.Args[0], nil
		}
	}
	return 0, errNotCallable(a, object)
}

func atoi(s string) int {
	n := 0
	neg := false
	for i, c := range s {
		if i == 0 && c == '-' {
			neg = true
			continue
		}
		if c < '0' || c > '9' {
			return -1
		}
		n = n*10 + int(c-'0')
	}
	if neg {
		n = -n
	}
	return n
}

// expandMapped evaluates a mapped type `{[K in Source]: Value}` by
// computing Source as keyof-or-explicit-union, then substituting each
// member key for TargetName into Value and building one Prop per key.
// Distributing over a union of keys this way (rather than requiring a
// single homomorphic source) follows the reference mapped-type
// evaluator this package is modeled on.
func expandMapped(a *Arena, res AliasResolver, u Utility) (Idx, error) {
	source, err := ExpandUtility(a, res, u.Source)
	if err != nil {
		return 0, err
	}
	source = a.Prune(source)
	var keys []Idx
	if sc, ok := a.Get(source).Kind.(Constructor); ok && sc.Name == UnionName {
		keys = sc.Args
	} else {
		keys = []Idx{source}
	}

	elems := make([]ObjElem, 0, len(keys))
	for _, keyIdx := range keys {
		lit, ok := a.Get(a.Prune(keyIdx)).Kind.(Literal)
		if !ok || lit.Kind != LitString {
			continue
		}
		valueIdx := substituteTypeVarName(a, u.Value, u.TargetName, keyIdx)

		optional, mutable := false, false
		if u.Check != nil && u.Extends != nil {
			// Homomorphic mapped type: preserve the source property's
			// own optional/mutable flags unless overridden by +/-.
			if obj, ok := a.Get(a.Prune(*u.Check)).Kind.(Object); ok {
				for _, e := range obj.Elems {
					if p, ok := e.(Prop); ok && p.Name == lit.Text {
						optional, mutable = p.Optional, p.Mutable
					}
				}
			}
		}
		if u.Optional != nil {
			optional = *u.Optional
		}
		if u.Mutable != nil {
			mutable = *u.Mutable
		}

		elems = append(elems, Prop{Name: lit.Text, Type: valueIdx, Optional: optional, Mutable: mutable})
	}
	return a.NewObject(elems...), nil
}

// substituteTypeVarName replaces every Constructor named name within idx
// with replacement, copying the structure it walks through. Used to
// instantiate a mapped type's Value template per key.
func substituteTypeVarName(a *Arena, idx Idx, name string, replacement Idx) Idx {
	idx = a.Prune(idx)
	switch k := a.Get(idx).Kind.(type) {
	case Constructor:
		if k.Name == name && len(k.Args) == 0 {
			return replacement
		}
		args := make([]Idx, len(k.Args))
		for i, arg := range k.Args {
			args[i] = substituteTypeVarName(a, arg, name, replacement)
		}
		return a.Insert(Constructor{Name: k.Name, Args: args})
	case Utility:
		if k.Op == OpIndexAccess {
			obj := substituteTypeVarName(a, k.Object, name, replacement)
			ind := substituteTypeVarName(a, k.Index, name, replacement)
			return a.Insert(Utility{Op: OpIndexAccess, Object: obj, Index: ind})
		}
		return idx
	default:
		return idx
	}
}

// expandConditional tentatively unifies checkType against extendsType; if
// that succeeds, the result is trueBranch, otherwise falseBranch. A
// conditional whose check type is itself a union distributes over each
// member, matching TypeScript-style distributive conditional types.
func expandConditional(a *Arena, res AliasResolver, u Utility) (Idx, error) {
	check := a.Prune(u.CheckType)
	if c, ok := a.Get(check).Kind.(Constructor); ok && c.Name == UnionName {
		var results []Idx
		for _, m := range c.Args {
			sub := Utility{Op: OpConditional, CheckType: m, ExtendsType: u.ExtendsType, True: u.True, False: u.False}
			r, err := expandConditional(a, res, sub)
			if err != nil {
				return 0, err
			}
			results = append(results, r)
		}
		return a.NewUnion(results...), nil
	}

	snapshot := append([]Type(nil), a.types...)
	err := Unify(a, res, check, u.ExtendsType)
	if err == nil {
		return u.True, nil
	}
	// Restore every pre-existing slot to its state before the failed
	// tentative unification so we don't leak half-bound variables into
	// the surrounding inference. Slots it allocated stay, unreferenced.
	copy(a.types, snapshot)
	return u.False, nil
}

func expandMutable(a *Arena, res AliasResolver, operand Idx) (Idx, error) {
	operand, err := resolveHead(a, res, operand)
	if err != nil {
		return 0, err
	}
	obj, ok := a.Get(operand).Kind.(Object)
	if !ok {
		return operand, nil
	}
	elems := make([]ObjElem, len(obj.Elems))
	for i, e := range obj.Elems {
		switch el := e.(type) {
		case Prop:
			el.Mutable = true
			if inner, ok := a.Get(a.Prune(el.Type)).Kind.(Object); ok {
				_ = inner
				m, err := expandMutable(a, res, el.Type)
				if err == nil {
					el.Type = m
				}
			}
			elems[i] = el
		case Index:
			el.Mutable = true
			elems[i] = el
		default:
			elems[i] = e
		}
	}
	return a.NewObject(elems...), nil
}
