package main

import (
	"fmt"
	"strings"
	"text/template"
)

// funcMap provides helper functions available to all templates.
var funcMap = template.FuncMap{
	"stubName":   func(name string) string { return firstLower(name) + "Stub" },
	"firstLower": firstLower,
	"quote":      func(s string) string { return fmt.Sprintf("%q", s) },
	"params":     params,
	"callArgs":   callArgs,
}

var templates = template.Must(template.New("").Funcs(funcMap).Parse(
	headerTmpl + stubTmpl,
))

// renderTemplate executes a named template into the builder.
func renderTemplate(b *strings.Builder, name string, data any) {
	if err := templates.ExecuteTemplate(b, name, data); err != nil {
		panic(fmt.Sprintf("template %s: %v", name, err))
	}
}

const headerTmpl = `{{define "header"}}// Code generated by connman-gen. DO NOT EDIT.

package {{.Package}}

import (
"context"
"fmt"

"github.com/connman-go/connman/pkg/variant"
)
{{end}}`

const stubTmpl = `{{define "stub"}}
{{- $stub := stubName .Name}}
// {{$stub}} calls methods of {{.Interface}}.
type {{$stub}} struct {
caller Caller
path variant.ObjectPath
}
{{range .Methods}}
{{- $where := printf "%s.%s" $.Interface .Name}}
// {{.Name}} {{.Description}}
{{- if eq .Returns "props"}}
func (s {{$stub}}) {{.Name}}(ctx context.Context{{params .Args}}) (variant.Map, error) {
reply, err := s.caller.Call(ctx, s.path, {{$.Const}}, {{quote .Name}}{{callArgs .Args}})
if err != nil {
return nil, fmt.Errorf("{{$where}}: %w", err)
}
return replyMap(reply)
}
{{- else if eq .Returns "objects"}}
func (s {{$stub}}) {{.Name}}(ctx context.Context{{params .Args}}) ([]Object, error) {
reply, err := s.caller.Call(ctx, s.path, {{$.Const}}, {{quote .Name}}{{callArgs .Args}})
if err != nil {
return nil, fmt.Errorf("{{$where}}: %w", err)
}
return replyObjects(reply)
}
{{- else if eq .Returns "strings"}}
func (s {{$stub}}) {{.Name}}(ctx context.Context{{params .Args}}) ([]string, error) {
reply, err := s.caller.Call(ctx, s.path, {{$.Const}}, {{quote .Name}}{{callArgs .Args}})
if err != nil {
return nil, fmt.Errorf("{{$where}}: %w", err)
}
return replyStrings(reply)
}
{{- else}}
func (s {{$stub}}) {{.Name}}(ctx context.Context{{params .Args}}) error {
if _, err := s.caller.Call(ctx, s.path, {{$.Const}}, {{quote .Name}}{{callArgs .Args}}); err != nil {
return fmt.Errorf("{{$where}}: %w", err)
}
return nil
}
{{- end}}
{{end}}
{{end}}`

func firstLower(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// goArgType maps a D-Bus signature letter to the parameter type.
func goArgType(sig string) string {
	switch sig {
	case "s":
		return "string"
	case "b":
		return "bool"
	case "o":
		return "variant.ObjectPath"
	default:
		return "variant.Value"
	}
}

// wrapArg maps a parameter to the expression that builds its wire value.
func wrapArg(a RawArgDef) string {
	switch a.Type {
	case "s":
		return "variant.String(" + a.Name + ")"
	case "b":
		return "variant.Bool(" + a.Name + ")"
	case "o":
		return "variant.Path(" + a.Name + ")"
	default:
		return "variant.Wrap(" + a.Name + ")"
	}
}

// params renders ", name string, value variant.Value".
func params(args []RawArgDef) string {
	var b strings.Builder
	for _, a := range args {
		fmt.Fprintf(&b, ", %s %s", a.Name, goArgType(a.Type))
	}
	return b.String()
}

// callArgs renders ", variant.String(name), variant.Wrap(value)".
func callArgs(args []RawArgDef) string {
	var b strings.Builder
	for _, a := range args {
		b.WriteString(", ")
		b.WriteString(wrapArg(a))
	}
	return b.String()
}
