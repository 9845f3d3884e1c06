package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/wpconfig/internal/resolver"
)

// Format names an output encoding.
type Format string

const (
	FormatPHP  Format = "php"
	FormatEnv  Format = "env"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// RedactedValue replaces secret values when Options.Redact is set.
const RedactedValue = "[redacted]"

var (
	// ErrUnknownFormat is returned for output formats other than php, env, json and yaml.
	ErrUnknownFormat = errors.New("unknown output format")
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatPHP, FormatEnv, FormatJSON, FormatYAML}
}

// ParseFormat maps a user supplied name onto a Format.
func ParseFormat(raw string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Formats() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, raw)
}

// ContentType returns the MIME type served for f.
func (f Format) ContentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatYAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Options tune rendering.
type Options struct {
	// AbsPath pins ABSPATH in php output. Empty keeps the __DIR__ fallback.
	AbsPath string
	// Redact hides secret values.
	Redact bool
}

// Render writes cfg to w in the given format.
func Render(w io.Writer, cfg resolver.Config, format Format, opts Options) error {
	settings := cfg.Settings()
	if opts.Redact {
		settings = redact(settings)
	}

	var (
		buf bytes.Buffer
		err error
	)
	switch format {
	case FormatPHP:
		writePHP(&buf, settings, opts.AbsPath)
	case FormatEnv:
		writeEnv(&buf, settings)
	case FormatJSON:
		err = writeJSON(&buf, settings)
	case FormatYAML:
		err = writeYAML(&buf, settings)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", format, err)
	}
	return nil
}

func redact(settings []resolver.Setting) []resolver.Setting {
	for i := range settings {
		if settings[i].Secret {
			settings[i].Value = RedactedValue
		}
	}
	return settings
}

func writePHP(buf *bytes.Buffer, settings []resolver.Setting, absPath string) {
	buf.WriteString("<?php\n")

	var group resolver.Group
	for i, s := range settings {
		if i > 0 && s.Group != group {
			buf.WriteByte('\n')
		}
		group = s.Group

		if s.Variable {
			fmt.Fprintf(buf, "$%s = %s;\n", s.Key, phpLiteral(s.Value))
			continue
		}
		fmt.Fprintf(buf, "define( %s, %s );\n", phpLiteral(s.Key), phpLiteral(s.Value))
	}

	abs := "__DIR__ . '/'"
	if absPath != "" {
		if !strings.HasSuffix(absPath, "/") {
			absPath += "/"
		}
		abs = phpLiteral(absPath)
	}

	buf.WriteString("\nif ( ! defined( 'ABSPATH' ) ) {\n")
	fmt.Fprintf(buf, "\tdefine( 'ABSPATH', %s );\n", abs)
	buf.WriteString("}\n\nrequire_once ABSPATH . 'wp-settings.php';\n")
}

// phpLiteral renders v as a PHP single-quoted string or boolean.
func phpLiteral(v any) string {
	switch t := v.(type) {
	case bool:
		return strconv.FormatBool(t)
	case string:
		r := strings.NewReplacer(`\`, `\\`, `'`, `\'`)
		return "'" + r.Replace(t) + "'"
	default:
		return "''"
	}
}

func writeEnv(buf *bytes.Buffer, settings []resolver.Setting) {
	for _, s := range settings {
		switch v := s.Value.(type) {
		case bool:
			fmt.Fprintf(buf, "%s=%t\n", s.Key, v)
		case string:
			fmt.Fprintf(buf, "%s=%s\n", s.Key, shellQuote(v))
		}
	}
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

// writeJSON emits the object member by member so keys keep declaration
// order, matching the yaml output.
func writeJSON(buf *bytes.Buffer, settings []resolver.Setting) error {
	var compact bytes.Buffer
	compact.WriteByte('{')
	for i, s := range settings {
		if i > 0 {
			compact.WriteByte(',')
		}
		key, err := json.Marshal(s.Key)
		if err != nil {
			return err
		}
		value, err := json.Marshal(s.Value)
		if err != nil {
			return err
		}
		compact.Write(key)
		compact.WriteByte(':')
		compact.Write(value)
	}
	compact.WriteByte('}')

	if err := json.Indent(buf, compact.Bytes(), "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	return nil
}

// writeYAML builds the mapping node by hand so keys keep declaration order.
func writeYAML(buf *bytes.Buffer, settings []resolver.Setting) error {
	mapping := &yaml.Node{Kind: yaml.MappingNode}
	for _, s := range settings {
		var key, value yaml.Node
		if err := key.Encode(s.Key); err != nil {
			return err
		}
		if err := value.Encode(s.Value); err != nil {
			return err
		}
		mapping.Content = append(mapping.Content, &key, &value)
	}

	enc := yaml.NewEncoder(buf)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{mapping}}); err != nil {
		return err
	}
	return enc.Close()
}
