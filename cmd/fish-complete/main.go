// Command fish-complete is a small demonstration front-end for the
// completion engine: it reads a command line and a cursor offset and prints
// the ranked candidates, or dumps the registry in its textual form.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/vially/fish-shell/pkg/complete"
	"github.com/vially/fish-shell/pkg/fsutil"
	"github.com/vially/fish-shell/pkg/getopt"
	"github.com/vially/fish-shell/pkg/registry"
	"github.com/vially/fish-shell/pkg/shellenv"
	"github.com/vially/fish-shell/pkg/wrapgraph"
)

// cliOptions are this demo's own flags, parsed with pkg/getopt, whose own
// doc names completion front-ends among its uses.
var cliOptions = []*getopt.OptionSpec{
	{Long: "autosuggest", Arity: getopt.NoArgument},
	{Long: "no-fuzzy", Arity: getopt.NoArgument},
	{Long: "print-registry", Arity: getopt.NoArgument},
}

func main() {
	opts, args, err := getopt.Parse(os.Args[1:], cliOptions, getopt.GNU)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}

	autosuggest, fuzzy, dumpRegistry := false, true, false
	for _, o := range opts {
		switch o.Spec.Long {
		case "autosuggest":
			autosuggest = true
		case "no-fuzzy":
			fuzzy = false
		case "print-registry":
			dumpRegistry = true
		}
	}

	reg := registry.New(nil)
	wraps := wrapgraph.New()

	if dumpRegistry {
		fmt.Print(reg.PrintRegistry(wraps))
		return
	}

	if len(args) == 0 {
		runInteractive(reg, wraps, autosuggest, fuzzy)
		return
	}

	line := args[0]
	cursor := len(line)
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			cursor = n
		}
	}
	printCompletions(line, cursor, reg, wraps, autosuggest, fuzzy)
}

// runInteractive reads "line<TAB>cursor" requests from stdin, one per line,
// until EOF — the shape a line editor or a pty-driven test harness talks in.
// It never prints a prompt when stdin is not a terminal, mirroring how the
// teacher's own tools distinguish interactive from piped use.
func runInteractive(reg *registry.Registry, wraps *wrapgraph.Graph, autosuggest, fuzzy bool) {
	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Fprint(os.Stderr, "> ")
		}
		if !scanner.Scan() {
			return
		}
		line, cursorStr, hasCursor := strings.Cut(scanner.Text(), "\t")
		cursor := len(line)
		if hasCursor {
			if n, err := strconv.Atoi(cursorStr); err == nil {
				cursor = n
			}
		}
		printCompletions(line, cursor, reg, wraps, autosuggest, fuzzy)
	}
}

func printCompletions(line string, cursor int, reg *registry.Registry, wraps *wrapgraph.Graph, autosuggest, fuzzy bool) {
	var flags complete.RequestFlags
	if autosuggest {
		flags |= complete.Autosuggestion
	}
	if fuzzy {
		flags |= complete.FuzzyMatch
	}
	flags |= complete.Descriptions

	res, err := complete.Complete(line, cursor, flags, complete.Deps{
		Env:      shellenv.NewSnapshot(envAsMap()),
		Registry: reg,
		Wraps:    wraps,
		Commands: complete.CommandGeneratorInputs{
			External: externalScanner{each: fsutil.EachExternal},
		},
		Files: dirFileExpander{},
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return
	}
	for _, c := range res.Candidates {
		if c.Description != "" {
			fmt.Printf("%s\t%s\n", c.Text, c.Description)
		} else {
			fmt.Println(c.Text)
		}
	}
}

func envAsMap() map[string]string {
	m := make(map[string]string)
	for _, kv := range os.Environ() {
		if name, value, ok := strings.Cut(kv, "="); ok {
			m[name] = value
		}
	}
	return m
}
