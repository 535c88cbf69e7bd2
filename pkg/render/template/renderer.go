package template

import (
	"io"
)

// TemplateRenderer is the rendering half of the github.com/goliatone/go-template
// engine contract, the seam the render callback relies on.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}

// Lookup is implemented by engines that can tell whether a named template
// exists on their search path without rendering it.
type Lookup interface {
	HasTemplate(name string) bool
}
