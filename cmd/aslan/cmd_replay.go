// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"context"
	"fmt"
	"io"

	"github.com/creachadair/aslan"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

func newReplayCmd() *cobra.Command {
	var (
		cf    configFlags
		out   outputFlags
		chunk int
		rps   float64
	)
	cmd := &cobra.Command{
		Use:   "replay [file]",
		Short: "Decode ASLAN text in paced chunks and print events",
		Long: `Replay feeds ASLAN text to the decoder in fixed-size chunks, at most
--rate chunks per second, printing each event as it is delivered. This
simulates text arriving incrementally, as from a language model. When the
input is exhausted, the final result is written.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if chunk <= 0 {
				return fmt.Errorf("invalid chunk size %d", chunk)
			}
			cfg, err := cf.parserConfig(cmd)
			if err != nil {
				return err
			}
			in, err := openInput(args)
			if err != nil {
				return err
			}
			defer in.Close()
			data, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			w := cmd.OutOrStdout()
			p := aslan.New(cfg)
			for _, tag := range []aslan.Tag{aslan.TagContent, aslan.TagEnd, aslan.TagEndData} {
				p.AddListener(tag, func(ev aslan.Event) { fmt.Fprintln(w, formatEvent(ev)) })
			}
			if err := replay(cmd.Context(), p, data, chunk, newLimiter(rps)); err != nil {
				return err
			}
			if cfg.MultiDocument {
				return out.write(w, documents(p.Results()))
			}
			return out.write(w, p.Result())
		},
	}
	cf.register(cmd)
	cmd.Flags().IntVar(&chunk, "chunk", 8, "chunk size in bytes")
	cmd.Flags().Float64Var(&rps, "rate", 20, "chunks per second (0 for unlimited)")
	cmd.Flags().StringVarP(&out.format, "format", "f", "json", "output format (json or yaml)")
	return cmd
}

func newLimiter(rps float64) *rate.Limiter {
	if rps <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Limit(rps), 1)
}

// replay writes data to p in chunks of the given size, waiting on lim before
// each chunk, and closes p when the data are exhausted.
func replay(ctx context.Context, p *aslan.Parser, data []byte, size int, lim *rate.Limiter) error {
	for len(data) > 0 {
		if err := lim.Wait(ctx); err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		n := min(size, len(data))
		if _, err := p.Write(data[:n]); err != nil {
			return fmt.Errorf("replay: %w", err)
		}
		log.Debugf("wrote %d bytes", n)
		data = data[n:]
	}
	return p.Close()
}
