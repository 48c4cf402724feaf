// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/creachadair/aslan"
	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"
)

// loadConfig reads parser settings from the file at path. Files named with a
// .yaml or .yml extension are YAML; anything else is JWCC.
func loadConfig(path string) (aslan.Config, error) {
	var cfg aslan.Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data), yaml.Strict())
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("parse config %q: %w", path, err)
		}
	default:
		std, err := hujson.Standardize(data)
		if err != nil {
			return cfg, fmt.Errorf("parse config %q: %w", path, err)
		}
		dec := json.NewDecoder(bytes.NewReader(std))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("parse config %q: %w", path, err)
		}
	}
	return cfg, nil
}

// configFlags are the command-line flags that select parser settings.
// Flags given explicitly override the settings from a config file.
type configFlags struct {
	file         string
	prefix       string
	defaultField string
	strictStart  bool
	strictEnd    bool
	multi        bool
	preserveWS   bool
	separator    string
	maxDepth     int
}

func (f *configFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVar(&f.file, "config", "", "read parser settings from this JWCC or YAML file")
	fs.StringVar(&f.prefix, "prefix", "", "delimiter prefix (default \""+aslan.DefaultPrefix+"\")")
	fs.StringVar(&f.defaultField, "default-field", "", "name of the default field (default \""+aslan.DefaultFieldName+"\")")
	fs.BoolVar(&f.strictStart, "strict-start", false, "ignore input before each GO delimiter")
	fs.BoolVar(&f.strictEnd, "strict-end", false, "finish a document at each STOP delimiter")
	fs.BoolVar(&f.multi, "multi", false, "output every document")
	fs.BoolVar(&f.preserveWS, "preserve-whitespace", false, "count whitespace as field content")
	fs.StringVar(&f.separator, "separator", "", "text inserted between spans of a repeated field")
	fs.IntVar(&f.maxDepth, "max-object-depth", -1, "maximum object nesting depth (negative for unlimited)")
}

// parserConfig returns the parser settings selected by the flags of cmd.
func (f *configFlags) parserConfig(cmd *cobra.Command) (aslan.Config, error) {
	var cfg aslan.Config
	if f.file != "" {
		var err error
		cfg, err = loadConfig(f.file)
		if err != nil {
			return cfg, err
		}
		log.Debugf("loaded config from %q", f.file)
	}
	fs := cmd.Flags()
	if fs.Changed("prefix") {
		cfg.Prefix = f.prefix
	}
	if fs.Changed("default-field") {
		cfg.DefaultField = f.defaultField
	}
	if fs.Changed("strict-start") {
		cfg.StrictStart = f.strictStart
	}
	if fs.Changed("strict-end") {
		cfg.StrictEnd = f.strictEnd
	}
	if fs.Changed("multi") {
		cfg.MultiDocument = f.multi
	}
	if fs.Changed("preserve-whitespace") {
		cfg.PreserveWhitespace = f.preserveWS
	}
	if fs.Changed("separator") {
		cfg.AppendSeparator = f.separator
	}
	if fs.Changed("max-object-depth") {
		cfg.LimitObjectDepth = f.maxDepth >= 0
		cfg.MaxObjectDepth = max(f.maxDepth, 0)
	}
	if cfg.Prefix != "" && !aslan.ValidName(cfg.Prefix) {
		return cfg, fmt.Errorf("invalid prefix %q", cfg.Prefix)
	}
	return cfg, nil
}
