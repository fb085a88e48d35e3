package logcfg

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Config is a decoded logging profile.
type Config struct {
	Level      slog.Level
	Format     string
	AddSource  bool
	Attributes []Attribute
}

// Attribute is one static logger attribute, stamped on every record.
type Attribute struct {
	Key   string
	Value string
}

// hclProfile is the top-level structure of a profile document.
type hclProfile struct {
	Logging *hclLogging `hcl:"logging,block"`
}

type hclLogging struct {
	Level      string         `hcl:"level,optional"`
	Format     string         `hcl:"format,optional"`
	Source     bool           `hcl:"source,optional"`
	Attributes *hclAttributes `hcl:"attributes,block"`
}

// hclAttributes keeps the attribute body undecoded so the keys stay
// free-form.
type hclAttributes struct {
	Body hcl.Body `hcl:",remain"`
}

// Parse decodes an HCL logging profile. Unknown level or format values are
// rejected, a profile is explicit configuration and silent fallbacks would
// hide typos.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse logging profile %s: %w", filename, diags)
	}

	var parsed hclProfile
	diags = gohcl.DecodeBody(file.Body, nil, &parsed)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode logging profile %s: %w", filename, diags)
	}
	if parsed.Logging == nil {
		return nil, fmt.Errorf("logging profile %s has no logging block", filename)
	}

	cfg := DefaultConfig()
	cfg.AddSource = parsed.Logging.Source

	if parsed.Logging.Level != "" {
		level, err := parseLevel(parsed.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("logging profile %s: %w", filename, err)
		}
		cfg.Level = level
	}

	if parsed.Logging.Format != "" {
		switch parsed.Logging.Format {
		case "text", "json":
			cfg.Format = parsed.Logging.Format
		default:
			return nil, fmt.Errorf("logging profile %s: invalid format '%s': must be 'text' or 'json'", filename, parsed.Logging.Format)
		}
	}

	if parsed.Logging.Attributes != nil {
		attrs, err := decodeAttributes(parsed.Logging.Attributes.Body, filename)
		if err != nil {
			return nil, err
		}
		cfg.Attributes = attrs
	}

	return cfg, nil
}

func parseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid level '%s': must be 'debug', 'info', 'warn', or 'error'", level)
}

// decodeAttributes evaluates the free-form attributes block into sorted
// string pairs. Sorting keeps logger construction deterministic.
func decodeAttributes(body hcl.Body, filename string) ([]Attribute, error) {
	hclAttrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode logging attributes in %s: %w", filename, diags)
	}

	attrs := make([]Attribute, 0, len(hclAttrs))
	for name, attr := range hclAttrs {
		value, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to evaluate logging attribute %s in %s: %w", name, filename, diags)
		}
		converted, err := convert.Convert(value, cty.String)
		if err != nil || converted.IsNull() {
			return nil, fmt.Errorf("logging attribute %s in %s is not a string value", name, filename)
		}
		attrs = append(attrs, Attribute{Key: name, Value: converted.AsString()})
	}

	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Key < attrs[j].Key })
	return attrs, nil
}
