// Package prompttmpl wraps text/template for embedded prompt sources.
package prompttmpl

import (
	"strings"
	"text/template"
)

func MustParse(name, src string, funcs template.FuncMap) *template.Template {
	t := template.New(name).Option("missingkey=error")
	if len(funcs) > 0 {
		t = t.Funcs(funcs)
	}
	return template.Must(t.Parse(src))
}

func Render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
