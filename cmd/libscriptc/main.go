// Package main implements the libscript front-end compiler entry
// point.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/libscript-lang/libscript/internal/ast"
	"github.com/libscript-lang/libscript/internal/check"
	"github.com/libscript-lang/libscript/internal/lexer"
	"github.com/libscript-lang/libscript/internal/parser"
	"github.com/libscript-lang/libscript/internal/symbols"
	"github.com/libscript-lang/libscript/internal/token"
)

// Compiler flags.
var (
	emitTokens = flag.Bool("emit-tokens", false, "Output token stream")
	emitAST    = flag.Bool("emit-ast", false, "Output AST")
	emitChecked = flag.Bool("emit-checked", false, "Type-check and report diagnostics")
	version    = flag.Bool("version", false, "Print version")
)

// Version information.
const Version = "0.1.0-dev"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "libscript compiler %s\n\n", Version)
		fmt.Fprintf(os.Stderr, "Usage: libscriptc [options] <file.lsc>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}

	flag.Parse()

	if *version {
		fmt.Printf("libscriptc version %s\n", Version)
		fmt.Printf("go version %s\n", runtime.Version())
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: no input file")
		fmt.Fprintln(os.Stderr, "usage: libscriptc [options] <file.lsc>")
		os.Exit(1)
	}

	filename := args[0]

	if *emitTokens {
		os.Exit(runEmitTokens(filename))
	}
	if *emitAST {
		os.Exit(runEmitAST(filename))
	}
	if *emitChecked {
		os.Exit(runEmitChecked(filename))
	}

	os.Exit(runEmitChecked(filename))
}

func runEmitTokens(filename string) int {
	f, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer f.Close()

	var errs []string
	errh := func(pos token.Pos, msg string) {
		errs = append(errs, fmt.Sprintf("%s: %s", pos, msg))
	}

	l := lexer.New(filename, f, errh)

	fmt.Printf("%-20s %-14s %s\n", "POSITION", "TOKEN", "TEXT")
	for {
		tok := l.Next()
		fmt.Printf("%-20s %-14s %q\n", tok.Pos.String(), tok.Kind.String(), tok.Text)
		if tok.Kind == token.EOF {
			break
		}
	}

	if len(errs) > 0 {
		fmt.Println()
		fmt.Println("Errors:")
		for _, e := range errs {
			fmt.Printf("  %s\n", e)
		}
		return 1
	}
	return 0
}

func parseFile(filename string) (*ast.File, []string, int) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, []string{fmt.Sprintf("error: %v", err)}, 1
	}
	defer f.Close()

	var errs []string
	errh := func(pos token.Pos, msg string) {
		errs = append(errs, fmt.Sprintf("%s: %s", pos, msg))
	}

	p := parser.New(filename, f, errh)
	file := p.Parse()
	return file, errs, p.Errors()
}

func runEmitAST(filename string) int {
	file, errs, errCount := parseFile(filename)
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e)
	}
	if file != nil {
		ast.Fprint(os.Stdout, file)
	}
	if errCount > 0 {
		return 1
	}
	return 0
}

func runEmitChecked(filename string) int {
	file, parseErrs, parseErrCount := parseFile(filename)
	for _, e := range parseErrs {
		fmt.Fprintln(os.Stderr, e)
	}
	if parseErrCount > 0 {
		return 1
	}

	table := symbols.NewTable()
	var checkErrs int
	errh := func(e *check.TypeError) {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", e.Pos, e.Code, e.Msg)
		checkErrs++
	}

	c := check.New(table, errh)
	c.CheckFile(file)

	if checkErrs > 0 {
		return 1
	}
	fmt.Println("ok")
	return 0
}
