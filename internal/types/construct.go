package types

// Convenience constructors that allocate a new arena slot for a common
// shape. Kept separate from the Kind definitions in types.go so callers
// reach for these first and only build a Kind literal by hand for
// one-off cases.

func (a *Arena) NewLiteralNumber(text string) Idx {
	return a.Insert(Literal{Kind: LitNumber, Text: text})
}

func (a *Arena) NewLiteralString(text string) Idx {
	return a.Insert(Literal{Kind: LitString, Text: text})
}

func (a *Arena) NewLiteralBoolean(b bool) Idx {
	return a.Insert(Literal{Kind: LitBoolean, Bool: b})
}

func (a *Arena) NewPrimitive(name string) Idx {
	return a.Insert(Constructor{Name: name})
}

func (a *Arena) NewConstructor(name string, args ...Idx) Idx {
	return a.Insert(Constructor{Name: name, Args: args})
}

func (a *Arena) NewArray(elem Idx) Idx {
	return a.NewConstructor(ArrayName, elem)
}

func (a *Arena) NewPromise(elem Idx) Idx {
	return a.NewConstructor(PromiseName, elem)
}

func (a *Arena) NewTuple(elems ...Idx) Idx {
	return a.Insert(Constructor{Name: TupleName, Args: elems})
}

func (a *Arena) NewUnion(members ...Idx) Idx {
	members = a.flattenDedup(UnionName, members)
	if len(members) == 1 {
		return members[0]
	}
	return a.Insert(Constructor{Name: UnionName, Args: members})
}

func (a *Arena) NewIntersection(members ...Idx) Idx {
	members = a.flattenDedup(IntersectionName, members)
	if len(members) == 1 {
		return members[0]
	}
	return a.Insert(Constructor{Name: IntersectionName, Args: members})
}

// flattenDedup inlines nested constructors of the same marker name and
// removes duplicate members by structural equality, matching the
// associative/commutative/idempotent invariant union/intersection types
// (and the throws effect built from them) are expected to hold.
func (a *Arena) flattenDedup(name string, members []Idx) []Idx {
	var out []Idx
	seen := map[string]bool{}
	var walk func(Idx)
	walk = func(idx Idx) {
		idx = a.Prune(idx)
		if c, ok := a.Get(idx).Kind.(Constructor); ok && c.Name == name {
			for _, m := range c.Args {
				walk(m)
			}
			return
		}
		key := Print(a, idx)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, idx)
	}
	for _, m := range members {
		walk(m)
	}
	return out
}

func (a *Arena) NewFunc(params []FuncParam, ret Idx, throws *Idx, isAsync bool, typeParams []TypeParam) Idx {
	return a.Insert(Function{Params: params, Ret: ret, Throws: throws, IsAsync: isAsync, TypeParams: typeParams})
}

func (a *Arena) NewObject(elems ...ObjElem) Idx {
	return a.Insert(Object{Elems: elems})
}

func (a *Arena) NewRest(arg Idx) Idx {
	return a.Insert(Rest{Arg: arg})
}
