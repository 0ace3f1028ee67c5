package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/corani/pytac/internal/lexer"
	"github.com/corani/pytac/internal/loader"
	"github.com/corani/pytac/internal/tac"
)

func withExt(filename, ext string) string {
	// replace the existing extension with the new one
	current := filepath.Ext(filename)

	if current != "" {
		return filename[:len(filename)-len(current)] + ext
	}

	return filename + ext
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	var (
		writeAST bool
		tacFile  string
		tabWidth int
		help     bool
	)

	flag.BoolVar(&writeAST, "ast", false, "write AST to file")
	flag.StringVar(&tacFile, "tac", "", "write TAC to file instead of stdout")
	flag.IntVar(&tabWidth, "tabwidth", lexer.DefaultTabWidth, "tab width for indentation")
	flag.BoolVar(&help, "help", false, "show help message")

	flag.Parse()

	if help || flag.NArg() == 0 {
		fmt.Println("Usage: pytac [options] source_file")
		fmt.Println("Options:")
		flag.PrintDefaults()

		if !help {
			os.Exit(1)
		}

		return
	}

	srcFile := flag.Arg(0)

	program, err := loader.NewLoader().WithTabWidth(tabWidth).Load(srcFile)
	if err != nil {
		fail("%v", err)
	}

	if writeAST {
		astFile := withExt(srcFile, ".ast")

		if err := os.WriteFile(astFile, []byte(program.String()+"\n"), 0644); err != nil {
			fail("failed to write AST file: %v", err)
		}
	}

	code, err := tac.Lower(program)
	if err != nil {
		fail("%v", err)
	}

	if tacFile != "" {
		if err := os.WriteFile(tacFile, []byte(code.String()), 0644); err != nil {
			fail("failed to write TAC file: %v", err)
		}

		return
	}

	fmt.Print(code.String())
}
