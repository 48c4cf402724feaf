// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"
	"io"

	"github.com/creachadair/aslan/encode"
	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "encode [file]",
		Short: "Encode a JSON object as ASLAN text",
		Long: `Encode a JSON or JWCC object from a file, or from stdin if no file is
given, as ASLAN text. Numbers and booleans are written as their literal text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()
			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}
			text, err := encode.JSON(data, encode.Options{Prefix: prefix})
			if err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "delimiter prefix")
	return cmd
}
