package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/arbor"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/aretw0/arbor/pkg/adapters/input"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/shape"
)

// ErrUnknownCommand is returned for input the REPL does not understand.
var ErrUnknownCommand = errors.New("unknown command")

const replHelp = `Commands:
  build <values>          build a tree, e.g. "build 50, 30, 70"
  shape <kind> <values>   build with an insertion strategy (binary, avl, complete, balanced)
  traverse <kind>         animate a traversal (in, pre, post)
  in | pre | post         shorthand for traverse
  clear                   remove the tree
  stats                   print the tree statistics
  mermaid                 print the tree as a Mermaid diagram
  help                    show this help
  quit                    leave`

// REPL drives a visualizer from line commands.
type REPL struct {
	v   *arbor.Visualizer
	in  io.Reader
	out io.Writer
}

// NewREPL creates a REPL reading commands from in.
func NewREPL(v *arbor.Visualizer, in io.Reader, out io.Writer) *REPL {
	return &REPL{v: v, in: in, out: out}
}

// Run reads commands until quit, end of input or ctx cancellation.
// Command errors are reported and the loop continues.
func (r *REPL) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		fmt.Fprint(r.out, "arbor> ")
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(r.out)
				return nil
			}
			quit, err := r.Exec(ctx, line)
			if err != nil {
				if IsInterrupted(err) && ctx.Err() != nil {
					return ctx.Err()
				}
				printSystemMessage(r.out, "%v", err)
			}
			if quit {
				return nil
			}
		}
	}
}

// Exec runs a single command and waits for its animation to finish.
func (r *REPL) Exec(ctx context.Context, line string) (quit bool, err error) {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "":
		return false, nil
	case "q", "quit", "exit":
		return true, nil
	case "help", "?":
		fmt.Fprintln(r.out, replHelp)
		return false, nil
	case "build", "b":
		return false, r.wait(ctx)(r.v.BuildFrom(ctx, input.Text(spaced(rest))))
	case "shape":
		name, values, _ := strings.Cut(rest, " ")
		kind, err := shape.Parse(name)
		if err != nil {
			return false, err
		}
		parsed, err := input.Text(spaced(values)).ReadIntegers()
		if err != nil {
			return false, err
		}
		return false, r.wait(ctx)(r.v.BuildShaped(ctx, kind, parsed))
	case "traverse", "t":
		return false, r.traverse(ctx, rest)
	case "in", "pre", "post", "inorder", "preorder", "postorder":
		return false, r.traverse(ctx, cmd)
	case "clear":
		if err := r.wait(ctx)(r.v.Clear(ctx)); err != nil {
			return false, err
		}
		printSystemMessage(r.out, "Tree cleared.")
		return false, nil
	case "stats":
		stats := r.v.Snapshot().Stats
		if stats.Count == 0 {
			printSystemMessage(r.out, "Tree is empty.")
			return false, nil
		}
		tui.NewStatsTable(r.out).PublishStats(stats)
		return false, nil
	case "mermaid", "graph":
		snap := r.v.Snapshot()
		fmt.Fprint(r.out, graph.GenerateMermaid(snap.Tree, nil))
		return false, nil
	}
	return false, fmt.Errorf("%w: %q (try \"help\")", ErrUnknownCommand, cmd)
}

func (r *REPL) traverse(ctx context.Context, name string) error {
	kind, err := domain.ParseTraversal(name)
	if err != nil {
		return err
	}
	return r.wait(ctx)(r.v.Traverse(ctx, kind))
}

func (r *REPL) wait(ctx context.Context) func(*arbor.Run, error) error {
	return func(run *arbor.Run, err error) error {
		if err != nil {
			return err
		}
		return run.Wait(ctx)
	}
}

// JoinArgs turns command-line arguments into one comma-separated input,
// so `50 30 70`, `"50 30 70"` and `50,30,70` read the same.
func JoinArgs(args []string) string {
	return spaced(strings.Join(args, " "))
}

// spaced accepts "5 3 8" as well as "5,3,8".
func spaced(s string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(s, ",", " ")), ",")
}
