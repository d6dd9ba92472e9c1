// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program jnode lists the typed nodes of a JSON document, and extracts and
// replays the schemas of those nodes.
//
// Usage:
//
//	jnode nodes FILE           # print the keypath, tag, and value of each node
//	jnode schema FILE PATH     # print the encoded schema of the node at PATH
//	jnode replay SCHEMA FILE   # decode the value of FILE described by SCHEMA
//
// A FILE of "-" reads standard input. A PATH has the form .name[index] and
// may begin with "$".
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/creachadair/jnode"
	"github.com/creachadair/jnode/keypath"
)

type cli struct {
	JWCC  bool `name:"jwcc" help:"Allow comments and trailing commas in the input."`
	Times bool `name:"times" help:"Recognize ISO-8601 timestamps in string values."`

	Nodes  nodesCmd  `cmd:"" help:"List the nodes of a JSON document."`
	Schema schemaCmd `cmd:"" help:"Print the encoded schema of a node."`
	Replay replayCmd `cmd:"" help:"Decode a value at an encoded schema."`
}

// env carries the settings and I/O streams shared by the subcommands.
type env struct {
	opts *jnode.Options
	in   io.Reader
	out  io.Writer
}

func (e *env) readFile(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(e.in)
	}
	return os.ReadFile(path)
}

func (e *env) parseFile(path string) (jnode.Node, error) {
	data, err := e.readFile(path)
	if err != nil {
		return jnode.Node{}, err
	}
	root, err := e.opts.ParseJSON(data)
	if err != nil {
		return jnode.Node{}, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}

type nodesCmd struct {
	File string `arg:"" help:"Input file (- for stdin)."`
}

func (c *nodesCmd) Run(e *env) error {
	root, err := e.parseFile(c.File)
	if err != nil {
		return err
	}
	for n := range root.All() {
		fmt.Fprintf(e.out, "%s\t%s\t%s\n", n.Keypath().JSONPath(), n.Tag(), render(n))
	}
	return nil
}

type schemaCmd struct {
	File string `arg:"" help:"Input file (- for stdin)."`
	Path string `arg:"" help:"Keypath of the node, for example .items[0].name"`
}

func (c *schemaCmd) Run(e *env) error {
	kp, err := keypath.Parse(c.Path)
	if err != nil {
		return err
	}
	root, err := e.parseFile(c.File)
	if err != nil {
		return err
	}
	n, ok := jnode.Find(root, kp)
	if !ok {
		return fmt.Errorf("%s: no node at %s", c.File, kp.JSONPath())
	}
	data, err := jnode.EncodeSchema(n.Schema)
	if err != nil {
		return err
	}
	fmt.Fprintln(e.out, string(data))
	return nil
}

type replayCmd struct {
	Schema string `arg:"" help:"Encoded schema, as printed by the schema command."`
	File   string `arg:"" help:"Input file (- for stdin)."`
}

func (c *replayCmd) Run(e *env) error {
	s, err := jnode.DecodeSchema([]byte(c.Schema))
	if err != nil {
		return err
	}
	data, err := e.readFile(c.File)
	if err != nil {
		return err
	}
	v, err := e.opts.DecodeJSON(s.Keypath, s.Tag, data)
	if err != nil {
		return fmt.Errorf("%s: %w", c.File, err)
	}
	fmt.Fprintln(e.out, render(jnode.Node{Value: v, Schema: jnode.Schema{Keypath: s.Keypath, Tag: s.Tag}}))
	return nil
}

// textView renders values as compact JSON text. Timestamps are rendered as
// RFC 3339 strings.
var textView = jnode.Renderers[string]{
	String: strconv.Quote,
	Int:    func(z int64) string { return strconv.FormatInt(z, 10) },
	Float:  func(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) },
	Bool:   strconv.FormatBool,
	Time:   func(t time.Time) string { return strconv.Quote(t.Format(time.RFC3339Nano)) },
	Null:   func() string { return "null" },
	List: func(elts []string) string {
		return "[" + strings.Join(elts, ",") + "]"
	},
	Object: func(fields []jnode.Field[string]) string {
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = strconv.Quote(f.Key) + ":" + f.Value
		}
		return "{" + strings.Join(parts, ",") + "}"
	},
}

func render(n jnode.Node) string { return jnode.View(textView, n) }

func newParser(c *cli, out io.Writer) (*kong.Kong, error) {
	return kong.New(c,
		kong.Name("jnode"),
		kong.Description("List, extract, and replay the typed nodes of JSON documents."),
		kong.Writers(out, out),
		kong.UsageOnError(),
	)
}

// run parses args and executes the selected subcommand.
func run(args []string, in io.Reader, out io.Writer) error {
	var c cli
	p, err := newParser(&c, out)
	if err != nil {
		return err
	}
	ctx, err := p.Parse(args)
	if err != nil {
		return err
	}
	return ctx.Run(&env{
		opts: &jnode.Options{AllowJWCC: c.JWCC, ParseTimes: c.Times},
		in:   in,
		out:  out,
	})
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "jnode: %v\n", err)
		os.Exit(1)
	}
}
