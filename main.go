package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strconv"
	"strings"

	"github.com/grailbio/base/log"
	"github.com/kr/pretty"
	"github.com/magical/calc-compiler/algebra"
	"github.com/pkg/errors"
)

// example inputs:
//
// 	derivar x^2 + 3*x
// 	integrar x
// 	atribuir f = (x + 1) * (x + 1)
//

type letFlags []string

func (l *letFlags) String() string { return strings.Join(*l, ", ") }

func (l *letFlags) Set(s string) error {
	*l = append(*l, s)
	return nil
}

func main() {
	var (
		configPath = flag.String("config", "", "read configuration from the YAML `file`")
		output     = flag.String("o", "", "write the IR to `file` (default out.ll)")
		funcName   = flag.String("func", "", "name of the generated function (default calc)")
		param      = flag.String("param", "", "name of the function parameter (default x)")
		variable   = flag.String("var", "", "variable for derivar and integrar (default x)")
		dump       = flag.Bool("dump", false, "dump the syntax tree and canonical expression")
		showTAC    = flag.Bool("tac", false, "print the three-address code")
		at         = flag.String("at", "", "evaluate the generated function at `x`")
		dryRun     = flag.Bool("n", false, "do not write the IR file")
		lets       letFlags
	)
	flag.Var(&lets, "let", "bind `name=expr` for this run; may be repeated")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] [command]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "The command is read from the arguments, or else one line of standard input.\n")
		fmt.Fprintf(os.Stderr, "Exit status is 2 for syntax errors, 3 when derivar or integrar fails,\n")
		fmt.Fprintf(os.Stderr, "4 for expressions with no IR translation and 1 otherwise.\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}
	for _, o := range []struct {
		dst *string
		val string
	}{
		{&cfg.Output, *output},
		{&cfg.Func, *funcName},
		{&cfg.Param, *param},
		{&cfg.Var, *variable},
	} {
		if o.val != "" {
			*o.dst = o.val
		}
	}
	cfg.Let = append(cfg.Let, lets...)

	src, err := readSource(flag.Args(), os.Stdin)
	if err != nil {
		fatal(err)
	}

	c := &Compiler{Config: cfg, Engine: algebra.Engine{}}
	res, err := c.Compile(src)
	for _, d := range res.Diagnostics {
		log.Error.Printf("%v", d)
	}
	if err != nil {
		fatal(err)
	}

	fmt.Println("syntax tree:", formatTree(res.Command))
	if *dump {
		pretty.Println(res.Command)
		pretty.Println(res.Expr)
	}
	if res.Name != "" {
		fmt.Printf("%s = %s\n", res.Name, res.Expr)
	} else {
		fmt.Println("result:", res.Expr)
	}
	if *showTAC {
		printTAC(os.Stdout, res.Code)
	}
	if *at != "" {
		x, err := strconv.ParseFloat(*at, 64)
		if err != nil {
			fatal(errors.Wrap(err, "-at"))
		}
		v, err := res.Module.Eval(x)
		if err != nil {
			fatal(err)
		}
		fmt.Printf("%s(%v) = %v\n", cfg.Func, x, v)
	}
	if *dryRun {
		fmt.Print(res.Module)
		return
	}
	if err := ioutil.WriteFile(cfg.Output, []byte(res.Module.String()), 0644); err != nil {
		fatal(err)
	}
	log.Printf("wrote %s", cfg.Output)
}

// readSource returns the command: the arguments joined by spaces, or
// else the first line of r.
func readSource(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", errors.Wrap(err, "reading command")
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" && err == io.EOF {
		return "", errors.New("no command given")
	}
	return line, nil
}

func fatal(err error) {
	log.Error.Printf("%v", err)
	os.Exit(exitCode(err))
}

// exitCode is the exit status for a failed compilation.
func exitCode(err error) int {
	switch kindOf(err) {
	case Syntax:
		return 2
	case Resolve:
		return 3
	case Unsupported:
		return 4
	}
	return 1
}
