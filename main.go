package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"
	"github.com/davecgh/go-spew/spew"

	"github.com/19wintersp/Facsimile/internal/lexer"
	"github.com/19wintersp/Facsimile/internal/printer"
	"github.com/19wintersp/Facsimile/internal/workspace"
)

var (
	dumpTokens = kingpin.Flag("dump-tokens", "Print the token stream for each file").Bool()
	dumpAST    = kingpin.Flag("dump-ast", "Print the parse tree for each file").Bool()
	format     = kingpin.Flag("format", "Print each file back in canonical form").Bool()
	watch      = kingpin.Flag("watch", "Watch files for changes and recheck automatically").Short('w').Bool()
	files      = kingpin.Arg("files", "List of files to check").Required().ExistingFiles()
)

func main() {
	kingpin.Parse()

	if *watch {
		err := watchFiles()
		if err != nil {
			kingpin.Fatalf("failed to watch files: %s", err)
		}
	} else {
		err := checkAll()
		if err != nil {
			kingpin.Fatalf("%s", err)
		}
	}
}

func checkAll() error {
	wd, _ := os.Getwd()
	ws := workspace.New(wd)

	for _, fname := range *files {
		err := checkFile(ws, fname)
		if err != nil {
			return fmt.Errorf("check file %q: %w", fname, err)
		}
	}

	return nil
}

func checkFile(ws *workspace.Workspace, fname string) error {
	if *dumpTokens {
		contents, err := os.ReadFile(fname)
		if err != nil {
			return fmt.Errorf("read file: %w", err)
		}

		l := lexer.New(contents, fname)
		tks, err := l.Collect()
		if err != nil {
			return err
		}

		for i := range tks {
			printToken(&tks[i])
		}
	}

	f, err := ws.Load(fname)
	if err != nil {
		return err
	}

	if *dumpAST {
		spew.Dump(f)
	}

	if *format {
		err = printer.Visit(os.Stdout, f)
		if err != nil {
			return fmt.Errorf("print file: %w", err)
		}
	}

	return nil
}

func printToken(tk *lexer.Token) {
	switch tk.Type {
	case lexer.TokenSymbol:
		fmt.Printf("%s\t%s %s\n", &tk.Location, tk.Type, tk.Symbol)
	case lexer.TokenNumber:
		fmt.Printf("%s\t%s %v\n", &tk.Location, tk.Type, tk.Number)
	case lexer.TokenString:
		fmt.Printf("%s\t%s %q\n", &tk.Location, tk.Type, tk.Text)
	case lexer.TokenBoolean:
		fmt.Printf("%s\t%s %t\n", &tk.Location, tk.Type, tk.Boolean)
	default:
		fmt.Printf("%s\t%s\n", &tk.Location, tk.Type)
	}
}

func watchFiles() error {
	watcher, err := NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	for _, f := range *files {
		err = watcher.WatchFile(f)
		if err != nil {
			return fmt.Errorf("watch file %q: %w", f, err)
		}
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	log.Println("watching files for changes...")

	<-ch
	return nil
}
