package moduleio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gitrdm/stepkanren/pkg/stepkernel"
)

const greetYAML = `
name: greet
tasks:
  - name: Greet
    methods:
      - locals: 0
        body:
          - emit: ["hello", "world"]
      - locals: 0
        body:
          - emit: ["hi"]
`

func TestLoadGreetModule(t *testing.T) {
	mod, err := Load([]byte(greetYAML), nil, nil)
	require.NoError(t, err)

	out, committed, err := mod.Call("Greet")
	require.NoError(t, err)
	require.True(t, committed)
	require.Equal(t, "hello world", out)
}

const countYAML = `
name: count
tasks:
  - name: Count
    methods:
      - locals: 1
        pattern:
          - local: 0
        body:
          - set:
              expr:
                add: [{local: 0}, {const: 1}]
              target: N
          - emit:
              - local: 0
`

func TestLoadCountModuleSetThenEmit(t *testing.T) {
	mod, err := Load([]byte(countYAML), nil, nil)
	require.NoError(t, err)

	out, committed, err := mod.Call("Count", stepkernel.NewAtom(int64(0)))
	require.NoError(t, err)
	require.True(t, committed)
	require.Equal(t, "0", out)
}

const coolYAML = `
name: cooldown
tasks:
  - name: Ping
    methods:
      - locals: 0
        body:
          - cool:
              duration: 2
              body:
                - emit: ["ping"]
`

func TestLoadCooldownModule(t *testing.T) {
	mod, err := Load([]byte(coolYAML), nil, nil)
	require.NoError(t, err)

	results := []bool{true, false, false, true}
	for i, want := range results {
		_, committed, err := mod.Call("Ping")
		require.NoError(t, err)
		require.Equal(t, want, committed, "call %d", i)
	}
}

const sequenceYAML = `
name: cycle
tasks:
  - name: Cycle
    methods:
      - locals: 0
        body:
          - sequence:
              name: Pos
              branches:
                - - emit: ["A"]
                - - emit: ["B"]
                - - emit: ["C"]
`

func TestLoadSequenceModuleAdvancesAcrossCalls(t *testing.T) {
	mod, err := Load([]byte(sequenceYAML), nil, nil)
	require.NoError(t, err)

	for _, want := range []string{"A", "B", "C"} {
		out, committed, err := mod.Call("Cycle")
		require.NoError(t, err)
		require.True(t, committed)
		require.Equal(t, want, out)
	}
	_, committed, err := mod.Call("Cycle")
	require.NoError(t, err)
	require.False(t, committed)
}

func TestLoadRejectsUnknownTaskCall(t *testing.T) {
	const badYAML = `
name: bad
tasks:
  - name: A
    methods:
      - locals: 0
        body:
          - call:
              task: DoesNotExist
              args: []
`
	_, err := Load([]byte(badYAML), nil, nil)
	require.Error(t, err)
}

func TestLoadRejectsUnknownPrimitiveReference(t *testing.T) {
	const badYAML = `
name: bad
tasks:
  - name: A
    primitive: nope
`
	_, err := Load([]byte(badYAML), nil, nil)
	require.Error(t, err)
}
