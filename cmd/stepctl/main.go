// Command stepctl is an out-of-core command-line driver — the core
// itself has no notion of a CLI; this is just one host built on top of
// it. It loads a module definition document and invokes a single task,
// printing the rendered output, or on failure a styled error line (with
// the task and arguments for a CallException, or the LastMiss reasons
// for a call with no solution). It does not print a frame back-trace.
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/gitrdm/stepkanren/internal/moduleio"
	"github.com/gitrdm/stepkanren/pkg/stepkernel"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	dimStyle  = lipgloss.NewStyle().Faint(true)
)

func main() {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(3) // termenv.Ascii: no color when piped
	}

	var modulePath string
	var verbose bool

	root := &cobra.Command{
		Use:   "stepctl TASK [ARGS...]",
		Short: "Run a task in a stepkanren module",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, cliArgs []string) error {
			level := hclog.Warn
			if verbose {
				level = hclog.Trace
			}
			log := hclog.New(&hclog.LoggerOptions{Name: "stepctl", Level: level})

			data, err := os.ReadFile(modulePath)
			if err != nil {
				return fmt.Errorf("reading module file: %w", err)
			}

			mod, err := moduleio.Load(data, builtinPrimitives(), log)
			if err != nil {
				return fmt.Errorf("loading module: %w", err)
			}

			task := cliArgs[0]
			args := make([]stepkernel.Term, len(cliArgs)-1)
			for i, raw := range cliArgs[1:] {
				args[i] = parseArg(raw)
			}

			output, committed, err := mod.Call(task, args...)
			if err != nil {
				fmt.Fprintln(os.Stderr, failStyle.Render("error: ")+err.Error())
				if ce, ok := err.(*stepkernel.CallException); ok {
					fmt.Fprintln(os.Stderr, dimStyle.Render(fmt.Sprintf("task=%s args=%v", ce.Task, ce.Args)))
				}
				os.Exit(1)
			}
			if !committed {
				fmt.Fprintln(os.Stderr, failStyle.Render("no solution"))
				if miss := mod.LastMiss(); miss != nil {
					fmt.Fprintln(os.Stderr, dimStyle.Render(miss.Error()))
				}
				os.Exit(1)
			}
			fmt.Println(okStyle.Render(output))
			return nil
		},
	}

	root.Flags().StringVarP(&modulePath, "module", "m", "", "path to a module definition YAML file")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace dispatch/unification")
	root.MarkFlagRequired("module")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// parseArg makes a best-effort guess at a CLI argument's term shape:
// integers and floats become numeric atoms, everything else a string
// atom. A real host would thread typed arguments through some other
// channel; this is just enough for cmd/stepctl to be a usable example
// driver — real argument marshaling is the host's concern, not the
// core's.
func parseArg(raw string) stepkernel.Term {
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return stepkernel.NewAtom(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return stepkernel.NewAtom(f)
	}
	return stepkernel.NewAtom(raw)
}

// builtinPrimitives lists primitives a loaded module may reference by
// name beyond the one the core ships itself (%current-frame, wired
// automatically by every Module — see primitive.go). A real deployment
// would register its own text-generator library here; the core itself
// has no opinion on what primitives a host provides.
func builtinPrimitives() map[string]stepkernel.Primitive {
	return map[string]stepkernel.Primitive{}
}
