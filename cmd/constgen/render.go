package main

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"go/format"
	"go/token"
	"strconv"
	"strings"
	"text/template"
)

// Supported output languages.
const (
	langGo = "go"
	langC  = "c"
)

// templateData is the input passed to the output templates.
type templateData struct {
	Package    string
	Source     string
	SourceHash string
	Config     *Config
}

// render produces the output file for lang. Go output is gofmt'ed.
func render(lang, pkg, source string, raw []byte, cfg *Config) ([]byte, error) {
	data := templateData{
		Package:    pkg,
		Source:     source,
		SourceHash: sha256Hex(raw),
		Config:     cfg,
	}

	switch lang {
	case langGo:
		if !token.IsIdentifier(pkg) {
			return nil, fmt.Errorf("package name %q is not a Go identifier (set -package)", pkg)
		}
		var sb strings.Builder
		if err := goTemplate.Execute(&sb, data); err != nil {
			return nil, fmt.Errorf("execute go template: %w", err)
		}
		src, err := format.Source([]byte(sb.String()))
		if err != nil {
			return nil, fmt.Errorf("gofmt generated source: %w", err)
		}
		return src, nil
	case langC:
		var sb strings.Builder
		if err := cTemplate.Execute(&sb, data); err != nil {
			return nil, fmt.Errorf("execute c template: %w", err)
		}
		return []byte(sb.String()), nil
	default:
		return nil, fmt.Errorf("unsupported language %q", lang)
	}
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// floatLiteral always carries a decimal point or exponent so the C side sees a double.
func floatLiteral(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func cBool(v bool) int {
	if v {
		return 1
	}
	return 0
}

// cQuote quotes s as a C string literal. Bytes outside printable ASCII use
// three-digit octal escapes: C's \x escape consumes every following hex digit.
func cQuote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '"' || c == '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case c == '\n':
			b.WriteString(`\n`)
		case c == '\t':
			b.WriteString(`\t`)
		case c == '?' && i+1 < len(s) && s[i+1] == '?':
			// Break up trigraphs.
			b.WriteString(`?\`)
		case c < 0x20 || c > 0x7e:
			fmt.Fprintf(&b, `\%03o`, c)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

var templateFuncs = template.FuncMap{
	"quote":  strconv.Quote,
	"cquote": cQuote,
	"float":  floatLiteral,
	"upper":  strings.ToUpper,
	"cbool":  cBool,
}

var goTemplate = template.Must(
	template.New("go").Funcs(templateFuncs).Parse(`// Code generated by constgen; DO NOT EDIT.
// Source: {{.Source}}
// Source-SHA256: {{.SourceHash}}

package {{.Package}}

// Generated returns the constants bundle built from {{.Source}}.
func Generated() Bundle {
	return Bundle{
		Project: Project{
			Name: {{quote .Config.Project.Name}},
			Version: {{quote .Config.Project.Version}},
			Author: {{quote .Config.Project.Author}},
		},
		Messages: Messages{
			Welcome: {{quote .Config.Messages.Welcome}},
			Error: {{quote .Config.Messages.Error}},
			Success: {{quote .Config.Messages.Success}},
		},
		Features: []Feature{
		{{- range .Config.Features}}
			{Name: {{quote .Name}}, Enabled: {{.Enabled}}},
		{{- end}}
		},
		Constants: Constants{
			MaxBufferSize: {{.Config.Constants.MaxBufferSize}},
			DefaultTimeout: {{.Config.Constants.DefaultTimeout}},
			Pi: {{float .Config.Constants.Pi}},
			Debug: {{.Config.Constants.Debug}},
		},
	}
}
`),
)

var cTemplate = template.Must(
	template.New("c").Funcs(templateFuncs).Parse(`/* Code generated by constgen; DO NOT EDIT.
 * Source: {{.Source}}
 * Source-SHA256: {{.SourceHash}}
 */
#pragma once

#define PROJECT_NAME {{cquote .Config.Project.Name}}
#define PROJECT_VERSION {{cquote .Config.Project.Version}}
#define PROJECT_AUTHOR {{cquote .Config.Project.Author}}

#define MSG_WELCOME {{cquote .Config.Messages.Welcome}}
#define MSG_ERROR {{cquote .Config.Messages.Error}}
#define MSG_SUCCESS {{cquote .Config.Messages.Success}}
{{range .Config.Features}}
#define FEATURE_{{upper .Name}} {{cbool .Enabled}}
{{- end}}

#define MAX_BUFFER_SIZE {{.Config.Constants.MaxBufferSize}}
#define DEFAULT_TIMEOUT {{.Config.Constants.DefaultTimeout}}
#define PI {{float .Config.Constants.Pi}}
#define DEBUG {{cbool .Config.Constants.Debug}}
`),
)
