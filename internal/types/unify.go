package types

// AliasResolver looks up a named type alias's Scheme. checker.Context
// implements this so Unify can expand a user-defined alias Constructor
// without the types package importing checker (which imports types).
type AliasResolver interface {
	ResolveAlias(name string) (Scheme, bool)
	// InstantiateScheme copies scheme.Body into fresh arena slots,
	// substituting each of scheme.TypeParams for the corresponding Idx
	// in args (positionally). checker.Context owns this because it also
	// needs to track which variables are generic for later unification.
	InstantiateScheme(a *Arena, scheme Scheme, args []Idx) Idx
}

var nonAliasNames = map[string]bool{
	Number: true, String: true, Boolean: true, Symbol: true,
	Null: true, Undefined: true, Never: true, Unknown: true,
	ArrayName: true, PromiseName: true,
	TupleName: true, UnionName: true, IntersectionName: true,
}

// resolveHead prunes idx and, if it names a user-defined alias
// constructor, expands one layer of that alias. Reserved names and
// structural markers are left alone.
func resolveHead(a *Arena, res AliasResolver, idx Idx) (Idx, error) {
	idx = a.Prune(idx)
	c, ok := a.Get(idx).Kind.(Constructor)
	if !ok || nonAliasNames[c.Name] {
		return idx, nil
	}
	scheme, ok := res.ResolveAlias(c.Name)
	if !ok {
		return 0, errUnboundType(c.Name)
	}
	return res.InstantiateScheme(a, scheme, c.Args), nil
}

// Unify makes t1 a subtype of t2 (t1 may flow where t2 is expected),
// mutating shared type variables to record the binding. An error means
// the two types can never describe the same value.
func Unify(a *Arena, res AliasResolver, t1, t2 Idx) error {
	x, err := resolveHead(a, res, t1)
	if err != nil {
		return err
	}
	y, err := resolveHead(a, res, t2)
	if err != nil {
		return err
	}

	if _, ok := a.Get(x).Kind.(Utility); ok {
		expanded, err := ExpandUtility(a, res, x)
		if err != nil {
			return err
		}
		x = a.Prune(expanded)
	}
	if _, ok := a.Get(y).Kind.(Utility); ok {
		expanded, err := ExpandUtility(a, res, y)
		if err != nil {
			return err
		}
		y = a.Prune(expanded)
	}

	xk := a.Get(x).Kind
	yk := a.Get(y).Kind

	if _, ok := xk.(Variable); ok {
		return bind(a, res, x, y)
	}
	if _, ok := yk.(Variable); ok {
		return bind(a, res, y, x)
	}

	if yc, ok := yk.(Constructor); ok && yc.Name == Unknown {
		return nil
	}

	if xc, ok := xk.(Constructor); ok && xc.Name == UnionName {
		for _, m := range xc.Args {
			if err := Unify(a, res, m, y); err != nil {
				return err
			}
		}
		return nil
	}
	if yc, ok := yk.(Constructor); ok && yc.Name == UnionName {
		for _, m := range yc.Args {
			if Unify(a, res, x, m) == nil {
				return nil
			}
		}
		return errTypeMismatch(a, x, y)
	}

	if xc, okx := xk.(Constructor); okx && xc.Name == TupleName {
		if yc, oky := yk.(Constructor); oky && yc.Name == TupleName {
			return unifyTuples(a, res, xc, yc, x, y)
		}
		if yc, oky := yk.(Constructor); oky && yc.Name == ArrayName {
			return unifyTupleArray(a, res, xc, yc)
		}
	}
	if xc, okx := xk.(Constructor); okx && xc.Name == ArrayName {
		if yc, oky := yk.(Constructor); oky && yc.Name == TupleName {
			return unifyArrayTuple(a, res, xc, yc, y)
		}
	}

	if xr, ok := xk.(Rest); ok {
		if yc, oky := yk.(Constructor); oky && (yc.Name == ArrayName || yc.Name == TupleName) {
			return Unify(a, res, xr.Arg, y)
		}
	}
	if yr, ok := yk.(Rest); ok {
		if xc, okx := xk.(Constructor); okx && (xc.Name == ArrayName || xc.Name == TupleName) {
			return Unify(a, res, x, yr.Arg)
		}
	}

	if xo, okx := xk.(Object); okx {
		if yc, oky := yk.(Constructor); oky && yc.Name == IntersectionName {
			return unifyObjectVsIntersection(a, res, x, xo, yc, false)
		}
	}
	if xc, okx := xk.(Constructor); okx && xc.Name == IntersectionName {
		if yo, oky := yk.(Object); oky {
			return unifyObjectVsIntersection(a, res, y, yo, xc, true)
		}
	}

	if xc, okx := xk.(Constructor); okx {
		if yc, oky := yk.(Constructor); oky {
			if xc.Name != yc.Name || len(xc.Args) != len(yc.Args) {
				return errTypeMismatch(a, x, y)
			}
			for i := range xc.Args {
				if err := Unify(a, res, xc.Args[i], yc.Args[i]); err != nil {
					return err
				}
			}
			return nil
		}
	}

	if xf, okx := xk.(Function); okx {
		if yf, oky := yk.(Function); oky {
			return unifyFuncs(a, res, xf, yf, x, y)
		}
	}

	if xl, okx := xk.(Literal); okx {
		if yl, oky := yk.(Literal); oky {
			if literalsEqual(xl, yl) {
				return nil
			}
			return errTypeMismatch(a, x, y)
		}
		if yc, oky := yk.(Constructor); oky {
			if literalCompatiblePrimitive(xl, yc.Name) {
				return nil
			}
		}
		return errTypeMismatch(a, x, y)
	}

	if xo, okx := xk.(Object); okx {
		if yo, oky := yk.(Object); oky {
			return unifyObjects(a, res, xo, yo, x)
		}
	}

	return errTypeMismatch(a, x, y)
}

func literalsEqual(a, b Literal) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case LitBoolean:
		return a.Bool == b.Bool
	default:
		return a.Text == b.Text
	}
}

func literalCompatiblePrimitive(lit Literal, primName string) bool {
	switch lit.Kind {
	case LitNumber:
		return primName == Number
	case LitString:
		return primName == String
	case LitBoolean:
		return primName == Boolean
	}
	return false
}

func unifyTuples(a *Arena, res AliasResolver, x, y Constructor, xi, yi Idx) error {
	if len(x.Args) < len(y.Args) {
		if len(x.Args) == 0 {
			return errArityMismatch(len(y.Args), len(x.Args), a, xi)
		}
		last := a.Prune(x.Args[len(x.Args)-1])
		if _, ok := a.Get(last).Kind.(Rest); !ok {
			return errArityMismatch(len(y.Args), len(x.Args), a, xi)
		}
	}
	n := len(x.Args)
	if len(y.Args) < n {
		n = len(y.Args)
	}
	for i := 0; i < n; i++ {
		p, q := a.Prune(x.Args[i]), a.Prune(y.Args[i])
		_, pRest := a.Get(p).Kind.(Rest)
		_, qRest := a.Get(q).Kind.(Rest)
		switch {
		case pRest && qRest:
			return errTypeMismatch(a, p, q)
		case pRest:
			restY := a.NewTuple(y.Args[i:]...)
			if err := Unify(a, res, p, restY); err != nil {
				return err
			}
			return nil
		case qRest:
			restX := a.NewTuple(x.Args[i:]...)
			if err := Unify(a, res, restX, q); err != nil {
				return err
			}
			return nil
		default:
			if err := Unify(a, res, p, q); err != nil {
				return err
			}
		}
	}
	return nil
}

func unifyTupleArray(a *Arena, res AliasResolver, tup, arr Constructor) error {
	elem := arr.Args[0]
	for _, p := range tup.Args {
		pk := a.Get(a.Prune(p)).Kind
		if c, ok := pk.(Constructor); ok && c.Name == ArrayName {
			if err := Unify(a, res, c.Args[0], elem); err != nil {
				return err
			}
			continue
		}
		if r, ok := pk.(Rest); ok {
			if err := Unify(a, res, r.Arg, elem); err != nil {
				return err
			}
			continue
		}
		if err := Unify(a, res, p, elem); err != nil {
			return err
		}
	}
	return nil
}

func unifyArrayTuple(a *Arena, res AliasResolver, arr, tup Constructor, tupIdx Idx) error {
	elem := arr.Args[0]
	undef := a.NewPrimitive(Undefined)
	elemOrUndef := a.NewUnion(elem, undef)
	for _, q := range tup.Args {
		if r, ok := a.Get(a.Prune(q)).Kind.(Rest); ok {
			if err := Unify(a, res, tupIdx, r.Arg); err != nil {
				return err
			}
			continue
		}
		if err := Unify(a, res, elemOrUndef, q); err != nil {
			return err
		}
	}
	return nil
}

func unifyFuncs(a *Arena, res AliasResolver, x, y Function, xi, yi Idx) error {
	if len(x.Params) > len(y.Params) {
		return errArityMismatch(len(y.Params), len(x.Params), a, xi)
	}
	for i := range x.Params {
		// Contravariant in parameters: y's param must flow into x's.
		if err := Unify(a, res, y.Params[i].Type, x.Params[i].Type); err != nil {
			return err
		}
	}
	if err := Unify(a, res, x.Ret, y.Ret); err != nil {
		return err
	}
	return nil
}

func unifyObjects(a *Arena, res AliasResolver, x, y Object, xi Idx) error {
	for _, ye := range y.Elems {
		switch yel := ye.(type) {
		case Prop:
			if err := unifyObjectProp(a, res, x, xi, yel); err != nil {
				return err
			}
		case Method:
			if err := unifyObjectMethod(a, res, x, xi, yel); err != nil {
				return err
			}
		case Index:
			if err := unifyObjectIndex(a, res, x, xi, yel); err != nil {
				return err
			}
		}
	}
	return nil
}

// unifyObjectProp checks that y's required Prop yp is satisfied by x:
// first by a same-named Prop on x, falling back to any index signature on
// x whose key type accepts yp's name as a literal string (the spec's
// index-signature-satisfies-named-property rule).
func unifyObjectProp(a *Arena, res AliasResolver, x Object, xi Idx, yp Prop) error {
	for _, xe := range x.Elems {
		xp, ok := xe.(Prop)
		if !ok || xp.Name != yp.Name {
			continue
		}
		p1, p2 := xp.Type, yp.Type
		if xp.Optional {
			p1 = a.NewUnion(p1, a.NewPrimitive(Undefined))
		}
		if yp.Optional {
			p2 = a.NewUnion(p2, a.NewPrimitive(Undefined))
		}
		return Unify(a, res, p1, p2)
	}
	for _, xe := range x.Elems {
		xi2, ok := xe.(Index)
		if !ok {
			continue
		}
		nameLit := a.NewLiteralString(yp.Name)
		if Unify(a, res, nameLit, xi2.KeyType) != nil {
			continue
		}
		return Unify(a, res, xi2.ValueType, yp.Type)
	}
	return errMissingProperty(a, xi, yp.Name)
}

// unifyObjectMethod checks that y's required Method ym is satisfied by a
// same-named Method on x, unifying the two signatures as functions
// (contravariant params, covariant return, via the same unifyFuncs rule
// Function-vs-Function uses).
func unifyObjectMethod(a *Arena, res AliasResolver, x Object, xi Idx, ym Method) error {
	for _, xe := range x.Elems {
		xm, ok := xe.(Method)
		if !ok || xm.Name != ym.Name {
			continue
		}
		xFn := Function{Params: xm.Params, Ret: xm.Ret, TypeParams: xm.TypeParams}
		yFn := Function{Params: ym.Params, Ret: ym.Ret, TypeParams: ym.TypeParams}
		return unifyFuncs(a, res, xFn, yFn, xi, xi)
	}
	return errMissingProperty(a, xi, ym.Name+"(...)")
}

// unifyObjectIndex checks that y's required index signature yi is
// satisfied by a compatible index signature on x.
func unifyObjectIndex(a *Arena, res AliasResolver, x Object, xi Idx, yi Index) error {
	for _, xe := range x.Elems {
		xi2, ok := xe.(Index)
		if !ok {
			continue
		}
		if err := Unify(a, res, yi.KeyType, xi2.KeyType); err != nil {
			return err
		}
		return Unify(a, res, xi2.ValueType, yi.ValueType)
	}
	return errMissingProperty(a, xi, "[index signature]")
}

// unifyObjectVsIntersection handles `{...} <: A & B` (or, with reversed
// set true, the mirror direction `A & B <: {...}`).
func unifyObjectVsIntersection(a *Arena, res AliasResolver, objIdx Idx, obj Object, inter Constructor, reversed bool) error {
	var objArgs, varArgs []Idx
	for _, t := range inter.Args {
		pt := a.Prune(t)
		switch a.Get(pt).Kind.(type) {
		case Object:
			objArgs = append(objArgs, pt)
		case Variable:
			varArgs = append(varArgs, pt)
		}
	}
	merged := SimplifyIntersection(a, objArgs)

	switch len(varArgs) {
	case 0:
		if reversed {
			return Unify(a, res, merged, objIdx)
		}
		return Unify(a, res, objIdx, merged)
	case 1:
		mergedElems, _ := a.Get(merged).Kind.(Object)
		have := func(name string) bool {
			for _, e := range mergedElems.Elems {
				if p, ok := e.(Prop); ok && p.Name == name {
					return true
				}
			}
			return false
		}
		var rest []ObjElem
		var overlap []ObjElem
		for _, e := range obj.Elems {
			p, ok := e.(Prop)
			if ok && have(p.Name) {
				overlap = append(overlap, e)
			} else {
				rest = append(rest, e)
			}
		}
		overlapIdx := a.NewObject(overlap...)
		restIdx := a.NewObject(rest...)
		if reversed {
			if err := Unify(a, res, merged, overlapIdx); err != nil {
				return err
			}
			return Unify(a, res, varArgs[0], restIdx)
		}
		if err := Unify(a, res, overlapIdx, merged); err != nil {
			return err
		}
		return Unify(a, res, restIdx, varArgs[0])
	default:
		return errUndecidable(a, objIdx)
	}
}

// SimplifyIntersection merges a set of Object types into one Object whose
// properties are the union of all input properties; a property present
// in more than one input with differing types becomes an intersection of
// those types (spec object/intersection merge rule).
func SimplifyIntersection(a *Arena, objIdxs []Idx) Idx {
	propTypes := map[string][]Idx{}
	var order []string
	for _, oi := range objIdxs {
		obj, ok := a.Get(a.Prune(oi)).Kind.(Object)
		if !ok {
			continue
		}
		for _, e := range obj.Elems {
			p, ok := e.(Prop)
			if !ok {
				continue
			}
			if _, seen := propTypes[p.Name]; !seen {
				order = append(order, p.Name)
			}
			propTypes[p.Name] = append(propTypes[p.Name], p.Type)
		}
	}
	elems := make([]ObjElem, 0, len(order))
	for _, name := range order {
		types := propTypes[name]
		t := types[0]
		if len(types) > 1 {
			t = a.NewIntersection(types...)
		}
		elems = append(elems, Prop{Name: name, Type: t})
	}
	return a.NewObject(elems...)
}

func occursInType(a *Arena, v, t Idx) bool {
	t = a.Prune(t)
	if t == v {
		return true
	}
	switch k := a.Get(t).Kind.(type) {
	case Variable:
		if k.Constraint != nil {
			return occursInType(a, v, *k.Constraint)
		}
		return false
	case Constructor:
		for _, arg := range k.Args {
			if occursInType(a, v, arg) {
				return true
			}
		}
		return false
	case Function:
		for _, p := range k.Params {
			if occursInType(a, v, p.Type) {
				return true
			}
		}
		return occursInType(a, v, k.Ret)
	case Object:
		for _, e := range k.Elems {
			switch el := e.(type) {
			case Prop:
				if occursInType(a, v, el.Type) {
					return true
				}
			case Method:
				if occursInType(a, v, el.Ret) {
					return true
				}
			case Index:
				if occursInType(a, v, el.ValueType) {
					return true
				}
			}
		}
		return false
	case Rest:
		return occursInType(a, v, k.Arg)
	}
	return false
}

func bind(a *Arena, res AliasResolver, v, t Idx) error {
	if v == t {
		return nil
	}
	if occursInType(a, v, t) {
		return errOccursCheck(a, v, t)
	}
	vv := a.Get(v).Kind.(Variable)
	if vv.Constraint != nil {
		if err := Unify(a, res, t, *vv.Constraint); err != nil {
			return err
		}
	}
	a.SetInstance(v, t)
	return nil
}

// UnifyCall unifies argTypes (and, if non-nil, explicit typeArgs) against
// calleeIdx as a call signature and returns the resulting return type.
func UnifyCall(a *Arena, res AliasResolver, argTypes []Idx, typeArgs []Idx, calleeIdx Idx) (Idx, error) {
	callee := a.Prune(calleeIdx)
	k := a.Get(callee).Kind

	switch v := k.(type) {
	case Variable:
		ret := a.NewVar()
		params := make([]FuncParam, len(argTypes))
		for i, t := range argTypes {
			params[i] = FuncParam{Type: t}
		}
		callType := a.NewFunc(params, ret, nil, false, nil)
		if err := bind(a, res, callee, callType); err != nil {
			return 0, err
		}
		return a.Prune(ret), nil

	case Constructor:
		switch v.Name {
		case UnionName:
			var rets []Idx
			for _, t := range v.Args {
				r, err := UnifyCall(a, res, argTypes, typeArgs, t)
				if err != nil {
					return 0, err
				}
				rets = append(rets, r)
			}
			return a.NewUnion(rets...), nil
		case IntersectionName:
			for _, t := range v.Args {
				r, err := UnifyCall(a, res, argTypes, typeArgs, t)
				if err == nil {
					return r, nil
				}
			}
			return 0, errNoValidOverload(a, callee)
		default:
			return 0, errNotCallable(a, callee)
		}

	case Function:
		fn := v
		if len(fn.TypeParams) > 0 {
			fn = instantiateFuncTypeParams(a, fn, typeArgs)
		}
		if len(argTypes) < len(fn.Params) {
			return 0, errArityMismatch(len(fn.Params), len(argTypes), a, callee)
		}
		n := len(fn.Params)
		for i := 0; i < n; i++ {
			if err := Unify(a, res, argTypes[i], fn.Params[i].Type); err != nil {
				return 0, err
			}
		}
		return a.Prune(fn.Ret), nil

	default:
		return 0, errNotCallable(a, callee)
	}
}

// instantiateFuncTypeParams replaces each of fn's TypeParams with a fresh
// variable (or the corresponding explicit type argument) throughout its
// params and return type.
func instantiateFuncTypeParams(a *Arena, fn Function, explicit []Idx) Function {
	mapping := map[string]Idx{}
	for i, tp := range fn.TypeParams {
		if i < len(explicit) {
			mapping[tp.Name] = explicit[i]
		} else {
			mapping[tp.Name] = a.NewVar()
		}
	}
	var subst func(Idx) Idx
	subst = func(idx Idx) Idx {
		idx = a.Prune(idx)
		switch k := a.Get(idx).Kind.(type) {
		case Constructor:
			if repl, ok := mapping[k.Name]; ok && len(k.Args) == 0 {
				return repl
			}
			args := make([]Idx, len(k.Args))
			for i, arg := range k.Args {
				args[i] = subst(arg)
			}
			return a.Insert(Constructor{Name: k.Name, Args: args})
		case Function:
			params := make([]FuncParam, len(k.Params))
			for i, p := range k.Params {
				params[i] = FuncParam{Pattern: p.Pattern, Type: subst(p.Type), Optional: p.Optional}
			}
			return a.NewFunc(params, subst(k.Ret), k.Throws, k.IsAsync, k.TypeParams)
		default:
			return idx
		}
	}
	params := make([]FuncParam, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = FuncParam{Pattern: p.Pattern, Type: subst(p.Type), Optional: p.Optional}
	}
	return Function{Params: params, Ret: subst(fn.Ret), Throws: fn.Throws, IsAsync: fn.IsAsync}
}
