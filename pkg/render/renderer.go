package render

import "context"

// Renderer lays out a graph description and returns the rendered document.
// Implementations may reject the description; rejections are reported as
// *errors.RenderError.
type Renderer interface {
	Render(ctx context.Context, dot string) (*Document, error)
}

// RendererFunc adapts a function to the [Renderer] interface.
type RendererFunc func(ctx context.Context, dot string) (*Document, error)

// Render calls f(ctx, dot).
func (f RendererFunc) Render(ctx context.Context, dot string) (*Document, error) {
	return f(ctx, dot)
}
