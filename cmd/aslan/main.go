// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program aslan decodes and encodes ASLAN text.
//
// Usage:
//
//	aslan decode [file]   # ASLAN to JSON or YAML
//	aslan encode [file]   # JSON or JWCC to ASLAN
//	aslan replay [file]   # decode in paced chunks, printing events
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("aslan")

func main() {
	var verbose int
	rootCmd := &cobra.Command{
		Use:   "aslan",
		Short: "Decode and encode ASLAN text",
		PersistentPreRun: func(*cobra.Command, []string) {
			commonlog.Configure(verbose, nil)
		},
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "increase log verbosity (repeatable)")

	rootCmd.AddCommand(newDecodeCmd())
	rootCmd.AddCommand(newEncodeCmd())
	rootCmd.AddCommand(newReplayCmd())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}
