// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"

	"github.com/creachadair/aslan"
	"github.com/creachadair/aslan/ast"
	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	var (
		cf     configFlags
		out    outputFlags
		events bool
	)
	cmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode ASLAN text to JSON or YAML",
		Long: `Decode ASLAN text from a file, or from stdin if no file is given, and
write the resulting structure to stdout.

With --multi, every document is written as a single array. Use --select to
write only the value at a dotted path such as "items.0.name", and --query to
write the results of a JSONPath expression.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cf.parserConfig(cmd)
			if err != nil {
				return err
			}
			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()

			p := aslan.New(cfg)
			if events {
				ew := cmd.ErrOrStderr()
				for _, tag := range []aslan.Tag{aslan.TagContent, aslan.TagEnd, aslan.TagEndData} {
					p.AddListener(tag, func(ev aslan.Event) { fmt.Fprintln(ew, formatEvent(ev)) })
				}
			}
			if err := aslan.NewStream(in).Parse(cmd.Context(), p); err != nil {
				return fmt.Errorf("decode: %w", err)
			}
			log.Debugf("decoded %d document(s)", len(p.Results()))

			var v ast.Value = p.Result()
			if cfg.MultiDocument {
				v = documents(p.Results())
			}
			return out.write(cmd.OutOrStdout(), v)
		},
	}
	cf.register(cmd)
	cmd.Flags().StringVarP(&out.format, "format", "f", "json", "output format (json or yaml)")
	cmd.Flags().StringVar(&out.sel, "select", "", "write only the value at this dotted path")
	cmd.Flags().StringVarP(&out.query, "query", "q", "", "write the results of this JSONPath query")
	cmd.Flags().BoolVar(&events, "events", false, "print parser events to stderr")
	return cmd
}
