package types

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nocturne-lang/nocturne/internal/config"
)

// Print renders the type at idx as source-like text. Auto-generated type
// variable names (t3, t17, ...) are normalized to "t?" under
// config.IsTestMode or config.IsLSPMode so that golden test output and
// editor hovers stay stable across runs that allocate a different number
// of arena slots before reaching the type of interest.
func Print(a *Arena, idx Idx) string {
	return printIdx(a, idx, map[Idx]bool{})
}

func printIdx(a *Arena, idx Idx, seen map[Idx]bool) string {
	idx = a.Prune(idx)
	if seen[idx] {
		return "..."
	}
	seen[idx] = true
	defer delete(seen, idx)

	t := a.Get(idx)
	switch k := t.Kind.(type) {
	case Variable:
		if config.IsTestMode || config.IsLSPMode {
			return "t?"
		}
		return fmt.Sprintf("t%d", idx)
	case Literal:
		switch k.Kind {
		case LitNumber:
			return k.Text
		case LitString:
			return fmt.Sprintf("%q", k.Text)
		case LitBoolean:
			if k.Bool {
				return "true"
			}
			return "false"
		}
		return "<literal>"
	case Constructor:
		switch k.Name {
		case TupleName:
			return "[" + joinIdx(a, k.Args, seen, ", ") + "]"
		case UnionName:
			return joinIdx(a, k.Args, seen, " | ")
		case IntersectionName:
			return joinIdx(a, k.Args, seen, " & ")
		}
		if len(k.Args) == 0 {
			return k.Name
		}
		return fmt.Sprintf("%s<%s>", k.Name, joinIdx(a, k.Args, seen, ", "))
	case Function:
		parts := make([]string, len(k.Params))
		for i, p := range k.Params {
			opt := ""
			if p.Optional {
				opt = "?"
			}
			name := p.Pattern
			if name == "" {
				name = fmt.Sprintf("arg%d", i)
			}
			parts[i] = fmt.Sprintf("%s%s: %s", name, opt, printIdx(a, p.Type, seen))
		}
		tps := ""
		if len(k.TypeParams) > 0 {
			names := make([]string, len(k.TypeParams))
			for i, tp := range k.TypeParams {
				names[i] = tp.Name
			}
			tps = "<" + strings.Join(names, ", ") + ">"
		}
		throws := ""
		if k.Throws != nil {
			throws = " throws " + printIdx(a, *k.Throws, seen)
		}
		async := ""
		if k.IsAsync {
			async = "async "
		}
		return fmt.Sprintf("%s%s(%s) => %s%s", async, tps, strings.Join(parts, ", "), printIdx(a, k.Ret, seen), throws)
	case Object:
		fields := make([]string, 0, len(k.Elems))
		for _, el := range k.Elems {
			switch e := el.(type) {
			case Prop:
				opt := ""
				if e.Optional {
					opt = "?"
				}
				mut := ""
				if e.Mutable {
					mut = "mutable "
				}
				fields = append(fields, fmt.Sprintf("%s%s%s: %s", mut, e.Name, opt, printIdx(a, e.Type, seen)))
			case Method:
				fields = append(fields, fmt.Sprintf("%s(...): %s", e.Name, printIdx(a, e.Ret, seen)))
			case Index:
				fields = append(fields, fmt.Sprintf("[key: %s]: %s", printIdx(a, e.KeyType, seen), printIdx(a, e.ValueType, seen)))
			}
		}
		return "{" + strings.Join(fields, ", ") + "}"
	case Rest:
		return "..." + printIdx(a, k.Arg, seen)
	case Utility:
		return printUtility(a, k, seen)
	}
	return "<?>"
}

func printUtility(a *Arena, u Utility, seen map[Idx]bool) string {
	switch u.Op {
	case OpKeyOf:
		return "keyof " + printIdx(a, u.Operand, seen)
	case OpIndexAccess:
		return printIdx(a, u.Object, seen) + "[" + printIdx(a, u.Index, seen) + "]"
	case OpMapped:
		return fmt.Sprintf("{[%s in %s]: %s}", u.TargetName, printIdx(a, u.Source, seen), printIdx(a, u.Value, seen))
	case OpConditional:
		return fmt.Sprintf("%s extends %s ? %s : %s",
			printIdx(a, u.CheckType, seen), printIdx(a, u.ExtendsType, seen),
			printIdx(a, u.True, seen), printIdx(a, u.False, seen))
	case OpMutable:
		return "Mutable<" + printIdx(a, u.Operand, seen) + ">"
	}
	return "<utility>"
}

func joinIdx(a *Arena, idxs []Idx, seen map[Idx]bool, sep string) string {
	parts := make([]string, len(idxs))
	for i, idx := range idxs {
		parts[i] = printIdx(a, idx, seen)
	}
	return strings.Join(parts, sep)
}

// SortedKeys returns m's keys in sorted order, for callers (such as
// expandKeyOf) that need a map's iteration order to be deterministic.
func SortedKeys(m map[string]Idx) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
