package nodeview

import (
	"io/fs"

	"github.com/goliatone/go-nodeview/pkg/renderers/builtin"
)

// EmbeddedTemplates exposes the built-in renderer templates so callers can
// reuse or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return builtin.TemplatesFS()
}
