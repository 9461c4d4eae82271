// Package moduleio loads a stepkernel.Module from a host-supplied
// module definition document. It is not a surface-syntax parser: it
// never parses source text, only an already-structured YAML document
// whose shape mirrors the step-chain data model. It exists because a
// host (the example CLI, or a test fixture) needs some concrete way to
// hand the core a Module without hand-assembling Go struct literals
// for every task.
package moduleio

import (
	"fmt"

	"github.com/go-viper/mapstructure/v2"
	"github.com/hashicorp/go-hclog"
	"gopkg.in/yaml.v3"

	"github.com/gitrdm/stepkanren/pkg/stepkernel"
)

// rawModule, rawTask, and rawMethod give mapstructure a concrete shape
// to decode the flat parts of a module document into; the polymorphic
// parts (step variants, expression nodes) stay as map[string]any and
// are interpreted by decodeStep/decodeExpr below, since their shape
// genuinely varies by which step/expression kind is present — the same
// boundary a real parser's AST-to-core lowering pass would cross.
type rawModule struct {
	Name     string         `mapstructure:"name"`
	Defaults map[string]any `mapstructure:"defaults"`
	Tasks    []rawTask      `mapstructure:"tasks"`
}

type rawTask struct {
	Name      string     `mapstructure:"name"`
	Primitive string     `mapstructure:"primitive"`
	Methods   []rawMethod `mapstructure:"methods"`
}

type rawMethod struct {
	Pattern []any `mapstructure:"pattern"`
	Locals  int   `mapstructure:"locals"`
	Body    []any `mapstructure:"body"`
}

// Load parses a YAML module document and builds a *stepkernel.Module,
// wiring in any host-provided primitives by name.
func Load(data []byte, primitives map[string]stepkernel.Primitive, log hclog.Logger) (*stepkernel.Module, error) {
	var tree map[string]any
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("moduleio: parsing yaml: %w", err)
	}

	var raw rawModule
	if err := mapstructure.Decode(tree, &raw); err != nil {
		return nil, fmt.Errorf("moduleio: decoding module shape: %w", err)
	}

	defaults := make(map[string]stepkernel.Term, len(raw.Defaults))
	for k, v := range raw.Defaults {
		defaults[k] = toAtomOrLiteral(v)
	}

	tasks := make([]*stepkernel.Task, 0, len(raw.Tasks))
	for _, rt := range raw.Tasks {
		if rt.Primitive != "" {
			prim, ok := primitives[rt.Primitive]
			if !ok {
				return nil, fmt.Errorf("moduleio: task %q references unknown primitive %q", rt.Name, rt.Primitive)
			}
			tasks = append(tasks, &stepkernel.Task{Name: rt.Name, Primitive: prim})
			continue
		}

		methods := make([]stepkernel.Method, 0, len(rt.Methods))
		for _, rm := range rt.Methods {
			pattern := make([]stepkernel.ValueExpr, len(rm.Pattern))
			for i, p := range rm.Pattern {
				e, err := decodeExpr(p)
				if err != nil {
					return nil, fmt.Errorf("moduleio: task %q pattern: %w", rt.Name, err)
				}
				pattern[i] = e
			}
			chain, err := decodeChain(rm.Body)
			if err != nil {
				return nil, fmt.Errorf("moduleio: task %q body: %w", rt.Name, err)
			}
			methods = append(methods, stepkernel.Method{Pattern: pattern, LocalCount: rm.Locals, Body: chain})
		}
		tasks = append(tasks, &stepkernel.Task{Name: rt.Name, Methods: methods})
	}

	return stepkernel.NewModule(raw.Name, tasks, defaults, log)
}
