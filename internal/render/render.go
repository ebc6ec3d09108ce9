// Package render wraps the Liquid template engine behind the renderer
// port. Template sources come straight from the template store; render
// failures propagate to the caller unmasked.
package render

import (
	"github.com/osteele/liquid"

	"fortnight-ads/internal/core/port"
)

// Engine renders HTML template sources with Liquid semantics.
type Engine struct {
	engine *liquid.Engine
}

// New creates a renderer.
func New() *Engine {
	return &Engine{engine: liquid.NewEngine()}
}

// Render parses and renders a template source with the given variables.
func (e *Engine) Render(source string, vars map[string]any) (string, error) {
	return e.engine.ParseAndRenderString(source, vars)
}

var _ port.Renderer = (*Engine)(nil)
