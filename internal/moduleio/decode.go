package moduleio

import (
	"fmt"

	"github.com/gitrdm/stepkanren/pkg/stepkernel"
)

// decodeChain turns a YAML step list into a *stepkernel.Chain.
func decodeChain(raw []any) (*stepkernel.Chain, error) {
	steps := make([]stepkernel.Step, 0, len(raw))
	for _, r := range raw {
		s, err := decodeStep(r)
		if err != nil {
			return nil, err
		}
		steps = append(steps, s)
	}
	return stepkernel.NewChain(steps...), nil
}

func decodeStep(v any) (stepkernel.Step, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("step must be a mapping, got %T", v)
	}

	if tokens, ok := m["emit"]; ok {
		list, _ := tokens.([]any)
		exprs, err := decodeExprList(list)
		if err != nil {
			return nil, err
		}
		return stepkernel.Emit{Tokens: exprs}, nil
	}

	if body, ok := m["call"]; ok {
		spec, _ := body.(map[string]any)
		callee, err := decodeCallee(spec["task"])
		if err != nil {
			return nil, err
		}
		argList, _ := spec["args"].([]any)
		args, err := decodeExprList(argList)
		if err != nil {
			return nil, err
		}
		return stepkernel.Call{Callee: callee, Args: args}, nil
	}

	if body, ok := m["set"]; ok {
		spec, _ := body.(map[string]any)
		expr, err := decodeExpr(spec["expr"])
		if err != nil {
			return nil, err
		}
		target, err := stateElementFromSpec(spec, "target")
		if err != nil {
			return nil, err
		}
		return stepkernel.Set{Expr: expr, Target: target}, nil
	}

	if body, ok := m["add"]; ok {
		spec, _ := body.(map[string]any)
		elt, err := decodeExpr(spec["elt"])
		if err != nil {
			return nil, err
		}
		target, err := stateElementFromSpec(spec, "target")
		if err != nil {
			return nil, err
		}
		return stepkernel.Add{Elt: elt, Target: target}, nil
	}

	if body, ok := m["removeNext"]; ok {
		spec, _ := body.(map[string]any)
		pattern, err := decodeExpr(spec["pattern"])
		if err != nil {
			return nil, err
		}
		source, err := stateElementFromSpec(spec, "source")
		if err != nil {
			return nil, err
		}
		return stepkernel.RemoveNext{Pattern: pattern, Source: source}, nil
	}

	if body, ok := m["cool"]; ok {
		spec, _ := body.(map[string]any)
		duration, _ := toInt(spec["duration"])
		bodyList, _ := spec["body"].([]any)
		chain, err := decodeChain(bodyList)
		if err != nil {
			return nil, err
		}
		return stepkernel.NewCool(duration, chain), nil
	}

	if body, ok := m["sequence"]; ok {
		spec, _ := body.(map[string]any)
		name, _ := spec["name"].(string)
		branchLists, _ := spec["branches"].([]any)
		chains := make([]*stepkernel.Chain, 0, len(branchLists))
		for _, bl := range branchLists {
			stepList, _ := bl.([]any)
			chain, err := decodeChain(stepList)
			if err != nil {
				return nil, err
			}
			chains = append(chains, chain)
		}
		return stepkernel.NewSequence(name, chains...), nil
	}

	if body, ok := m["conjugate"]; ok {
		spec, _ := body.(map[string]any)
		flag, err := stateElementFromSpec(spec, "flag")
		if err != nil {
			return nil, err
		}
		return stepkernel.ConjugateVerb{ThirdPersonSingular: flag}, nil
	}

	return nil, fmt.Errorf("unrecognized step node: %v", m)
}

func decodeCallee(v any) (stepkernel.CalleeRef, error) {
	if name, ok := v.(string); ok {
		return stepkernel.StaticCallee{Name: name}, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("call target must be a task name or a reference, got %v", v)
	}
	ref, err := decodeExpr(m["ref"])
	if err != nil {
		return nil, err
	}
	return stepkernel.VarCallee{Ref: ref}, nil
}

func decodeExprList(raw []any) ([]stepkernel.ValueExpr, error) {
	out := make([]stepkernel.ValueExpr, len(raw))
	for i, r := range raw {
		e, err := decodeExpr(r)
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

var binaryOps = map[string]stepkernel.ArithOp{
	"add": stepkernel.OpAdd,
	"sub": stepkernel.OpSub,
	"mul": stepkernel.OpMul,
	"div": stepkernel.OpDiv,
}

func decodeExpr(v any) (stepkernel.ValueExpr, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return stepkernel.ConstExpr{Value: toAtomOrLiteral(v)}, nil
	}

	if cv, ok := m["const"]; ok {
		return stepkernel.ConstExpr{Value: toAtomOrLiteral(cv)}, nil
	}
	if lv, ok := m["local"]; ok {
		slot, err := toInt(lv)
		if err != nil {
			return nil, err
		}
		return stepkernel.LocalRef{Slot: slot}, nil
	}
	if _, ok := m["state"]; ok {
		elem, err := stateElementFromSpec(m, "state")
		if err != nil {
			return nil, err
		}
		return stepkernel.StateRef{Elem: elem}, nil
	}
	if gv, ok := m["global"]; ok {
		name, _ := gv.(string)
		return stepkernel.GlobalRef{Name: name}, nil
	}
	if tv, ok := m["tuple"]; ok {
		list, _ := tv.([]any)
		elems, err := decodeExprList(list)
		if err != nil {
			return nil, err
		}
		return stepkernel.TupleExpr{Elems: elems}, nil
	}
	if nv, ok := m["neg"]; ok {
		sub, err := decodeExpr(nv)
		if err != nil {
			return nil, err
		}
		return stepkernel.ArithExpr{Op: stepkernel.OpNeg, L: sub}, nil
	}
	for name, op := range binaryOps {
		if ov, ok := m[name]; ok {
			pair, _ := ov.([]any)
			if len(pair) != 2 {
				return nil, fmt.Errorf("%s expects a 2-element [left, right] list", name)
			}
			l, err := decodeExpr(pair[0])
			if err != nil {
				return nil, err
			}
			r, err := decodeExpr(pair[1])
			if err != nil {
				return nil, err
			}
			return stepkernel.ArithExpr{Op: op, L: l, R: r}, nil
		}
	}

	return nil, fmt.Errorf("unrecognized expression node: %v", m)
}

// stateElementFromSpec reads spec[nameKey] as the element's name and,
// if present, spec["default"] as its default value.
func stateElementFromSpec(spec map[string]any, nameKey string) (stepkernel.StateElement, error) {
	name, ok := spec[nameKey].(string)
	if !ok {
		return stepkernel.StateElement{}, fmt.Errorf("expected string state/global name at key %q, got %v", nameKey, spec[nameKey])
	}
	if def, ok := spec["default"]; ok {
		return stepkernel.NewStateElementWithDefault(name, toAtomOrLiteral(def)), nil
	}
	return stepkernel.NewStateElement(name), nil
}

// toAtomOrLiteral converts a YAML-decoded scalar into an Atom, with
// integers normalized to int64 to match the numeric convention
// expr.go's arithmetic evaluator expects (YAML's decoder otherwise
// hands back plain int).
func toAtomOrLiteral(v any) stepkernel.Term {
	switch x := v.(type) {
	case int:
		return stepkernel.NewAtom(int64(x))
	case int64, float64, string, bool, nil:
		return stepkernel.NewAtom(x)
	default:
		return stepkernel.NewAtom(fmt.Sprintf("%v", x))
	}
}

func toInt(v any) (int, error) {
	switch x := v.(type) {
	case int:
		return x, nil
	case int64:
		return int(x), nil
	case float64:
		return int(x), nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}
