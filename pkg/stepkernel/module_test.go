package stepkernel

import (
	"testing"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/require"
)

func TestGreetFirstMethodWins(t *testing.T) {
	// Scenario 1: two zero-arg methods, the first committing wins.
	greet := &Task{Name: "Greet", Methods: []Method{
		{Body: NewChain(Emit{Tokens: []ValueExpr{
			ConstExpr{Value: NewAtom("hello")},
			ConstExpr{Value: NewAtom("world")},
		}})},
		{Body: NewChain(Emit{Tokens: []ValueExpr{ConstExpr{Value: NewAtom("hi")}}})},
	}}
	mod, err := NewModule("greet", []*Task{greet}, nil, nil)
	require.NoError(t, err)

	out, committed, err := mod.Call("Greet")
	require.NoError(t, err)
	require.True(t, committed)
	require.Equal(t, "hello world", out)
}

func TestCountSetThenEmitAgainstArgument(t *testing.T) {
	// Scenario 2: Count ?n -> [set ?n+1 N] [emit ?n], called with 0.
	countTask := &Task{
		Name: "Count",
		Methods: []Method{
			{
				Pattern:    []ValueExpr{LocalRef{Slot: 0}},
				LocalCount: 1,
				Body: NewChain(
					Set{
						Expr:   ArithExpr{Op: OpAdd, L: LocalRef{Slot: 0}, R: ConstExpr{Value: NewAtom(int64(1))}},
						Target: NewStateElement("N"),
					},
					Emit{Tokens: []ValueExpr{LocalRef{Slot: 0}}},
				),
			},
		},
	}
	mod, err := NewModule("count", []*Task{countTask}, nil, nil)
	require.NoError(t, err)

	out, committed, err := mod.Call("Count", NewAtom(int64(0)))
	require.NoError(t, err)
	require.True(t, committed)
	require.Equal(t, "0", out)
}

func TestDispatchBacktracksOnPatternMismatch(t *testing.T) {
	task := &Task{
		Name: "Classify",
		Methods: []Method{
			{Pattern: []ValueExpr{ConstExpr{Value: NewAtom("a")}}, Body: NewChain(Emit{Tokens: []ValueExpr{ConstExpr{Value: NewAtom("was-a")}}})},
			{Pattern: []ValueExpr{ConstExpr{Value: NewAtom("b")}}, Body: NewChain(Emit{Tokens: []ValueExpr{ConstExpr{Value: NewAtom("was-b")}}})},
		},
	}
	mod, err := NewModule("classify", []*Task{task}, nil, nil)
	require.NoError(t, err)

	out, committed, err := mod.Call("Classify", NewAtom("b"))
	require.NoError(t, err)
	require.True(t, committed)
	require.Equal(t, "was-b", out)
}

func TestCallFailsWhenNoMethodMatches(t *testing.T) {
	task := &Task{Name: "OnlyA", Methods: []Method{
		{Pattern: []ValueExpr{ConstExpr{Value: NewAtom("a")}}, Body: NewChain(Emit{Tokens: []ValueExpr{ConstExpr{Value: NewAtom("a")}}})},
	}}
	mod, err := NewModule("onlya", []*Task{task}, nil, nil)
	require.NoError(t, err)

	_, committed, err := mod.Call("OnlyA", NewAtom("z"))
	require.NoError(t, err, "exhausting every method is an ordinary miss, not an error")
	require.False(t, committed)
}

func TestCallToUnknownTaskIsACallException(t *testing.T) {
	mod, err := NewModule("empty", nil, nil, nil)
	require.NoError(t, err)

	_, _, err = mod.Call("Nowhere")
	require.Error(t, err)
	ce, ok := err.(*CallException)
	require.True(t, ok)
	require.Equal(t, "Nowhere", ce.Task)
}

func TestNewModuleRejectsCallToUnknownTask(t *testing.T) {
	task := &Task{Name: "A", Methods: []Method{
		{Body: NewChain(Call{Callee: StaticCallee{Name: "DoesNotExist"}})},
	}}
	_, err := NewModule("bad", []*Task{task}, nil, nil)
	require.Error(t, err)
	require.Equal(t, Syntax, err.(*EngineError).Kind)
}

func TestNewModuleRejectsLowercaseStateName(t *testing.T) {
	task := &Task{Name: "A", Methods: []Method{
		{Body: NewChain(Set{Expr: ConstExpr{Value: NewAtom(int64(1))}, Target: NewStateElement("lower")})},
	}}
	_, err := NewModule("bad", []*Task{task}, nil, nil)
	require.Error(t, err)
	require.Equal(t, Syntax, err.(*EngineError).Kind)
}

func TestCallStepInvokesAnotherTask(t *testing.T) {
	inner := &Task{Name: "Inner", Methods: []Method{
		{Body: NewChain(Emit{Tokens: []ValueExpr{ConstExpr{Value: NewAtom("from-inner")}}})},
	}}
	outer := &Task{Name: "Outer", Methods: []Method{
		{Body: NewChain(Call{Callee: StaticCallee{Name: "Inner"}})},
	}}
	mod, err := NewModule("nested", []*Task{inner, outer}, nil, nil)
	require.NoError(t, err)

	out, committed, err := mod.Call("Outer")
	require.NoError(t, err)
	require.True(t, committed)
	require.Equal(t, "from-inner", out)
}

func TestModuleAutoRegistersCurrentFrame(t *testing.T) {
	caller := &Task{Name: "Caller", Methods: []Method{
		{Body: NewChain(Call{Callee: StaticCallee{Name: "%current-frame"}})},
	}}
	mod, err := NewModule("auto", []*Task{caller}, nil, nil)
	require.NoError(t, err)

	out, committed, err := mod.Call("Caller")
	require.NoError(t, err)
	require.True(t, committed)
	require.Equal(t, "%current-frame 2", out)
}

func TestPrimitiveTaskCurrentFrame(t *testing.T) {
	task := &Task{Name: "Whoami", Primitive: currentFramePrimitive}
	mod, err := NewModule("whoami", []*Task{task}, nil, nil)
	require.NoError(t, err)

	out, committed, err := mod.Call("Whoami")
	require.NoError(t, err)
	require.True(t, committed)
	require.Equal(t, "Whoami 1", out)
}

func TestLastMissAggregatesCausesFromEveryRejectedMethod(t *testing.T) {
	task := &Task{Name: "OnlyAB", Methods: []Method{
		{Pattern: []ValueExpr{ConstExpr{Value: NewAtom("a")}}, Body: NewChain(Emit{Tokens: []ValueExpr{ConstExpr{Value: NewAtom("a")}}})},
		{Pattern: []ValueExpr{ConstExpr{Value: NewAtom("b")}}, Body: NewChain(Emit{Tokens: []ValueExpr{ConstExpr{Value: NewAtom("b")}}})},
	}}
	mod, err := NewModule("onlyab", []*Task{task}, nil, nil)
	require.NoError(t, err)

	require.Nil(t, mod.LastMiss(), "no call has run yet")

	_, committed, err := mod.Call("OnlyAB", NewAtom("z"))
	require.NoError(t, err, "exhausting every method is still an ordinary miss, not an error")
	require.False(t, committed)

	miss := mod.LastMiss()
	require.NotNil(t, miss)
	require.Equal(t, "OnlyAB", miss.Task)
	merr, ok := miss.Cause.(*multierror.Error)
	require.True(t, ok, "two rejected methods must aggregate via go-multierror")
	require.Len(t, merr.Errors, 2)
}

func TestGlobalDefaultsFlowIntoGlobalRef(t *testing.T) {
	task := &Task{Name: "Hail", Methods: []Method{
		{Body: NewChain(Emit{Tokens: []ValueExpr{GlobalRef{Name: "Greeting"}}})},
	}}
	mod, err := NewModule("hail", []*Task{task}, map[string]Term{"Greeting": NewAtom("hail")}, nil)
	require.NoError(t, err)

	out, committed, err := mod.Call("Hail")
	require.NoError(t, err)
	require.True(t, committed)
	require.Equal(t, "hail", out)
}
