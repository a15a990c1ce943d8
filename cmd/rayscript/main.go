// rayscript — translate Erlang abstract forms to JavaScript.
//
//	rayscript build <forms.txt>       translate a file of printed abstract
//	                                  forms; -js (default) or -json output
//	rayscript repl                    interactive form-by-form translation
//	rayscript version
//
// Input is the textual abstract format erl_parse/io:format print, one
// period-terminated form per term:
//
//	{attribute,1,export,[{foo,1}]}.
//	{function,2,foo,1,[{clause,2,[{var,2,'X'}],[],
//	    [{op,3,'+',{var,3,'X'},{integer,3,1}}]}]}.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	rayscript "github.com/zaoqi-unsafe/rayscript"
)

const (
	appName     = "rayscript"
	historyFile = ".rayscript_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("RayScript %s REPL\nEnter abstract forms ('.'-terminated). Ctrl+C cancels input, Ctrl+D exits. Type :quit to exit.", rayscript.Version)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch cmd := os.Args[1]; cmd {
	case "build":
		os.Exit(cmdBuild(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(rayscript.Version)
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`RayScript %s — Erlang abstract format to JavaScript

Usage:
  %s build [-json] [-o <out>] <forms.txt>   Translate a module's forms.
  %s repl                                   Translate forms interactively.
  %s version                                Print the version.

`, rayscript.Version, appName, appName, appName)
}

// -----------------------------------------------------------------------------
// build
// -----------------------------------------------------------------------------

func cmdBuild(args []string) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "emit the ESTree program as JSON instead of JavaScript")
	out := fs.String("o", "", "write output to file (default stdout)")
	showDiags := fs.Bool("diag", false, "report forms that degraded to the null placeholder")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s build [-json] [-o <out>] <forms.txt>\n", appName)
		return 2
	}

	file := fs.Arg(0)
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		return 1
	}

	forms, err := rayscript.ParseForms(string(src))
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}

	tr := rayscript.NewTranslator()
	program := tr.Translate(forms)

	var rendered string
	if *asJSON {
		b, err := json.MarshalIndent(program, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
			return 1
		}
		rendered = string(b) + "\n"
	} else {
		rendered = rayscript.GenerateJS(program)
	}

	if *showDiags {
		for _, d := range tr.Diagnostics() {
			fmt.Fprintln(os.Stderr, red(d.String()))
		}
	}

	if *out == "" {
		fmt.Print(rendered)
		return 0
	}
	if err := os.WriteFile(*out, []byte(rendered), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot write %s: %v\n", appName, *out, err)
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(code)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			if strings.ToLower(trimmed) == ":quit" {
				return 0
			}
			fmt.Printf("unknown command. Type :quit to exit.\n")
			continue
		}

		forms, err := rayscript.ParseForms(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		tr := rayscript.NewTranslator()
		fmt.Print(blue(rayscript.GenerateJS(tr.Translate(forms))))
		for _, d := range tr.Diagnostics() {
			fmt.Fprintln(os.Stderr, red(d.String()))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readByParseProbe accumulates lines until the term reader stops reporting
// an incomplete parse, so multi-line forms can be pasted naturally.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder
	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := rayscript.ParseForms(src); perr != nil && rayscript.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
