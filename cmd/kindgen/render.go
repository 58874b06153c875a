package main

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"
)

var fileTemplate = template.Must(template.New("kinds").Parse(`// Code generated by kindgen. DO NOT EDIT.

package {{.Package}}

import (
	"{{.ECS}}"
)

const (
{{- range $i, $c := .Components}}
	{{$c.Name}}Kind ecs.Kind = {{$i}}
{{- end}}
)

const (
{{- range .Components}}
	{{.Name}}Mask ecs.Mask = 1 << {{.Name}}Kind
{{- end}}
)

// RegisterComponents registers every {{.Package}} component with r in kind order.
// It panics if r already holds other kinds.
func RegisterComponents(r *ecs.ComponentRegistry) {
{{- range .Components}}
	mustRegister(ecs.RegisterComponent[{{.Name}}](r{{if .HasDefault}}, Default{{.Name}}(){{end}}), {{.Name}}Kind, "{{.Name}}")
{{- end}}
}

func mustRegister(got, want ecs.Kind, name string) {
	if got != want {
		panic("{{.Package}}: component " + name + " registered out of order")
	}
}
`))

func render(pkg, ecsPath string, components []component) ([]byte, error) {
	var buf bytes.Buffer
	err := fileTemplate.Execute(&buf, struct {
		Package    string
		ECS        string
		Components []component
	}{pkg, ecsPath, components})
	if err != nil {
		return nil, err
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w\n%s", err, buf.Bytes())
	}
	return src, nil
}
