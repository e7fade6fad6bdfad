// Command jmesgo checks and evaluates query expressions from the shell.
//
//	jmesgo check 'locations[?state == `"WA"`].name'
//	jmesgo eval 'reservations[].instances[].state' -f doc.json
//	cat doc.json | jmesgo eval 'people[?age > `30`]'
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/Celebrate-future/jmesgo"
	"github.com/Celebrate-future/jmesgo/pkg/evaluator"
	"github.com/Celebrate-future/jmesgo/pkg/types"
)

type Globals struct {
	Debug bool `help:"Enable debug logging on stderr." short:"d"`
}

type CheckCmd struct {
	Expression string `arg:"" help:"Expression to parse."`
}

type EvalCmd struct {
	Expression string `arg:"" help:"Expression to evaluate."`
	File       string `help:"JSON document to query ('-' for stdin)." short:"f" default:"-"`
}

var cli struct {
	Globals

	Check   CheckCmd         `cmd:"" help:"Parse an expression and report syntax errors."`
	Eval    EvalCmd          `cmd:"" help:"Evaluate an expression against a JSON document."`
	Version kong.VersionFlag `help:"Print version and exit."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("jmesgo"),
		kong.Description("Query JSON documents with jmesgo expressions."),
		kong.UsageOnError(),
		kong.Vars{"version": jmesgo.Version()},
	)
	ctx.FatalIfErrorf(ctx.Run(&cli.Globals))
}

func (c *CheckCmd) Run(g *Globals) error {
	if _, err := jmesgo.Parse(c.Expression); err != nil {
		printSyntaxError(os.Stderr, c.Expression, err)
		os.Exit(1)
	}
	fmt.Println("OK")
	return nil
}

func (c *EvalCmd) Run(g *Globals) error {
	doc, err := readDocument(c.File)
	if err != nil {
		return err
	}

	opts := []evaluator.EvalOption{}
	if g.Debug {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		opts = append(opts, evaluator.WithLogger(logger), evaluator.WithDebug(true))
	}

	result, err := jmesgo.Search(c.Expression, doc, opts...)
	if err != nil {
		var perr *types.ParseError
		var lerr *types.LexError
		if errors.As(err, &perr) || errors.As(err, &lerr) {
			printSyntaxError(os.Stderr, c.Expression, err)
			os.Exit(1)
		}
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func readDocument(path string) (interface{}, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	var doc interface{}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}
	return doc, nil
}

// printSyntaxError renders a parse or lex failure with a caret pointing
// at the byte offset inside the expression.
func printSyntaxError(w io.Writer, expression string, err error) {
	offset := -1
	var perr *types.ParseError
	var lerr *types.LexError
	switch {
	case errors.As(err, &perr):
		offset = perr.Offset
	case errors.As(err, &lerr):
		offset = lerr.Offset
	}

	fmt.Fprintf(w, "error: %v\n", err)
	if offset >= 0 && offset <= len(expression) {
		fmt.Fprintf(w, "  %s\n  %s^\n", expression, strings.Repeat(" ", offset))
	}
}
