// Package codegen turns a parsed feature manifest into a Go source unit
// containing the key enumeration, the resolver capability contract and a
// typed facade. Generation is a pure function of the manifest and config:
// identical inputs produce byte-identical output.
package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"

	features "github.com/goliatone/go-features"
)

const sourceTemplate = `// Code generated by featgen. DO NOT EDIT.

package {{.Package}}

// Key identifies a feature declared in the manifest.
type Key string

// Feature keys, in manifest order.
const (
{{- range .Entries}}
	{{- if .Description}}
	// {{.Description}}
	{{- end}}
	Key{{.Name}} Key = {{printf "%q" .Key}}
{{- end}}
)

// Getter is the capability contract a resolver backend must satisfy. Accessors
// return zero values on miss and never fail.
type Getter interface {
	GetString(key string) string
	GetBool(key string) bool
	GetInt(key string) int64
	GetDouble(key string) float64
}

// {{.Facade}} exposes one typed accessor per declared feature, delegating to
// the wrapped Getter.
type {{.Facade}} struct {
	getter Getter
}

// New{{.Facade}} wraps getter.
func New{{.Facade}}(getter Getter) {{.Facade}} {
	return {{.Facade}}{getter: getter}
}
{{range .Entries}}
{{- if .Description}}
// {{.Description}}
{{- end}}
func (f {{$.Facade}}) {{.Name}}() {{.ReturnType}} {
	return f.getter.{{.Accessor}}(string(Key{{.Name}}))
}
{{end -}}
`

type templateEntry struct {
	Key         string
	Name        string
	Description string
	ReturnType  string
	Accessor    string
}

type templateData struct {
	Package string
	Facade  string
	Entries []templateEntry
}

var tmpl = template.Must(template.New("source").Parse(sourceTemplate))

// Generate renders the source unit for manifest under cfg. The result is
// gofmt-formatted; a manifest that renders to invalid Go fails outright
// rather than emitting broken output.
func Generate(manifest *features.Manifest, cfg Config) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if manifest == nil {
		return nil, fmt.Errorf("codegen: manifest is required")
	}

	data := templateData{
		Package: cfg.OutputPackage,
		Facade:  cfg.OutputFilename,
	}
	if data.Package == "" {
		data.Package = "features"
	}

	seen := map[string]string{}
	for _, entry := range manifest.Entries() {
		name := exportedName(entry.Key)
		if prior, dup := seen[name]; dup {
			return nil, fmt.Errorf("codegen: keys %q and %q map to the same accessor name %s", prior, entry.Key, name)
		}
		seen[name] = entry.Key
		returnType, accessor, err := kindBinding(entry.Value.Kind())
		if err != nil {
			return nil, fmt.Errorf("codegen: entry %q: %w", entry.Key, err)
		}
		data.Entries = append(data.Entries, templateEntry{
			Key:         entry.Key,
			Name:        name,
			Description: sanitizeComment(entry.Description),
			ReturnType:  returnType,
			Accessor:    accessor,
		})
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("codegen: render: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("codegen: generated source does not format: %w", err)
	}
	return formatted, nil
}

func kindBinding(kind features.Kind) (returnType, accessor string, err error) {
	switch kind {
	case features.KindString:
		return "string", "GetString", nil
	case features.KindBool:
		return "bool", "GetBool", nil
	case features.KindInt:
		return "int64", "GetInt", nil
	case features.KindDouble:
		return "float64", "GetDouble", nil
	default:
		return "", "", fmt.Errorf("unsupported kind %s", kind)
	}
}

// exportedName converts an identifier-safe manifest key into an exported Go
// name: snake segments are capitalized and joined, an existing leading
// capital is preserved.
func exportedName(key string) string {
	parts := strings.Split(key, "_")
	var b strings.Builder
	for _, part := range parts {
		if part == "" {
			continue
		}
		b.WriteString(strings.ToUpper(part[:1]))
		b.WriteString(part[1:])
	}
	if b.Len() == 0 {
		// Parse-time key validation makes this unreachable for real manifests.
		return "X"
	}
	return b.String()
}

// sanitizeComment keeps descriptions single-line so they cannot break out of
// a comment position in the rendered source.
func sanitizeComment(description string) string {
	description = strings.ReplaceAll(description, "\r", " ")
	description = strings.ReplaceAll(description, "\n", " ")
	return strings.TrimSpace(description)
}
