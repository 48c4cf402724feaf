// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/creachadair/aslan"
	"github.com/creachadair/aslan/ast"
	"github.com/creachadair/aslan/ast/cursor"
	"github.com/goccy/go-yaml"
	"github.com/theory/jsonpath"
)

// openInput opens the file named by args, or stdin if there is none.
func openInput(args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

// outputFlags select how a decoded value is written.
type outputFlags struct {
	format string
	sel    string
	query  string
}

// write renders v to w after applying the selection and query, if any.
func (o *outputFlags) write(w io.Writer, v ast.Value) error {
	if o.sel != "" {
		c := cursor.New(v).Down(cursor.ParsePath(o.sel)...)
		if err := c.Err(); err != nil {
			return fmt.Errorf("select %q: %w", o.sel, err)
		}
		v = c.Value()
	}
	if o.query == "" {
		return render(w, v, o.format)
	}
	path, err := jsonpath.Parse(o.query)
	if err != nil {
		return fmt.Errorf("parse query: %w", err)
	}
	for _, r := range path.Select(ast.ToAny(v)) {
		if err := renderAny(w, r, o.format); err != nil {
			return err
		}
	}
	return nil
}

// render writes v to w in the named format, "json" or "yaml".
func render(w io.Writer, v ast.Value, format string) error {
	switch format {
	case "json", "":
		if v == nil {
			v = ast.Null{}
		}
		_, err := fmt.Fprintln(w, v.JSON())
		return err
	case "yaml":
		data, err := yaml.Marshal(toYAML(v))
		if err != nil {
			return fmt.Errorf("render yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// renderAny writes a plain Go value as selected by a query.
func renderAny(w io.Writer, v any, format string) error {
	switch format {
	case "json", "":
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("render json: %w", err)
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	case "yaml":
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("render yaml: %w", err)
		}
		_, err = fmt.Fprintf(w, "---\n%s", data)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// toYAML converts v into values the YAML encoder renders in document order.
func toYAML(v ast.Value) any {
	switch t := v.(type) {
	case *ast.Object:
		out := make(yaml.MapSlice, len(t.Members))
		for i, m := range t.Members {
			out[i] = yaml.MapItem{Key: m.Key, Value: toYAML(m.Value)}
		}
		return out
	case *ast.Array:
		out := make([]any, len(t.Values))
		for i, elt := range t.Values {
			out[i] = toYAML(elt)
		}
		return out
	case ast.String:
		return string(t)
	default:
		return nil
	}
}

// documents returns the roots as a single array value.
func documents(roots []*ast.Object) *ast.Array {
	out := ast.NewArray()
	for _, r := range roots {
		out.Append(r)
	}
	return out
}

// formatEvent renders ev as a single tab-separated line.
func formatEvent(ev aslan.Event) string {
	path := strings.Join(ev.Path, ".")
	if path == "" {
		path = "."
	}
	fields := []string{ev.Tag.String(), fmt.Sprint(ev.Document), path}
	switch ev.Tag {
	case aslan.TagEndData:
		var parts []string
		for _, p := range ev.Parts {
			s := fmt.Sprintf("%d:%q", p.PartIndex, p.Value)
			if p.Null {
				s = fmt.Sprintf("%d:null", p.PartIndex)
			}
			for _, in := range p.Instructions {
				s += " " + in.Name
			}
			parts = append(parts, s)
		}
		fields = append(fields, "["+strings.Join(parts, ", ")+"]")
	default:
		fields = append(fields, ev.Instruction, fmt.Sprint(ev.PartIndex), fmt.Sprintf("%q", ev.Content))
	}
	return strings.Join(fields, "\t")
}
