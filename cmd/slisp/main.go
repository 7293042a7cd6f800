// Command slisp is a REPL and batch driver for the slisp interpreter.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/ehollis/slisp"
	"github.com/ehollis/slisp/internal/lisperr"
)

func newInterpreter() *slisp.Interpreter {
	return slisp.New()
}

const usage = `slisp

Usage:
  slisp [-c EXPR]
  slisp FILE
  slisp -h
  slisp -v

Arguments:
  FILE  Path to a file containing one expression per line.

Options:
  -c, --command=EXPR  Evaluate EXPR and print its result.
  -h, --help          Display this help.
  -v, --version       Print slisp's version.
`

const version = "slisp 0.1.0"

func main() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		panic(err.Error())
	}

	if v, _ := opts.Bool("--version"); v {
		fmt.Println(version)
		return
	}

	command, _ := opts.String("--command")
	if command != "" {
		runOne(command)
		return
	}

	path, _ := opts.String("FILE")
	if path != "" {
		runFile(path)
		return
	}

	if isatty.IsTerminal(os.Stdin.Fd()) {
		runInteractive()
		return
	}

	runBatch(os.Stdin)
}

func runOne(expr string) {
	in := newInterpreter()
	defer in.Close()
	watchInterrupt(in)

	out, err := in.Run(expr)
	if err != nil {
		fmt.Fprintln(os.Stderr, formatError(err))
		os.Exit(1)
	}

	fmt.Println(out)
}

func runFile(path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer f.Close()

	runBatch(f)
}

func runBatch(r *os.File) {
	in := newInterpreter()
	defer in.Close()
	watchInterrupt(in)

	scanner := bufio.NewScanner(r)

	var pending strings.Builder

	for scanner.Scan() {
		pending.WriteString(scanner.Text())
		pending.WriteByte('\n')

		out, err := in.Run(pending.String())
		if err == nil {
			fmt.Println(out)
			pending.Reset()

			continue
		}

		if isIncomplete(err) {
			continue
		}

		fmt.Fprintln(os.Stderr, formatError(err))
		pending.Reset()
	}
}

func runInteractive() {
	in := newInterpreter()
	defer in.Close()

	cli := liner.NewLiner()
	defer cli.Close()

	cli.SetCtrlCAborts(true)

	var pending strings.Builder

	for {
		prompt := "slisp> "
		if pending.Len() > 0 {
			prompt = "...... "
		}

		line, err := cli.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			pending.Reset()
			continue
		}

		if err != nil {
			break
		}

		cli.AppendHistory(line)
		pending.WriteString(line)
		pending.WriteByte('\n')

		out, err := in.Run(pending.String())
		if err == nil {
			fmt.Println(out)
			pending.Reset()

			continue
		}

		if isIncomplete(err) {
			continue
		}

		fmt.Fprintln(os.Stderr, formatError(err))
		pending.Reset()
	}
}

// isIncomplete reports whether err is the SyntaxError a partially typed
// expression produces, in which case the REPL should keep reading lines
// rather than reporting failure.
func isIncomplete(err error) bool {
	se, ok := err.(*lisperr.SyntaxError)
	return ok && strings.Contains(se.Error(), "unexpected end of input")
}

func formatError(err error) string {
	return "error: " + err.Error()
}
