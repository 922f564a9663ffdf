package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/prospect/pkg/render"
)

// graphSVG is a small Graphviz-style document: start at the top, one
// statement in the middle and end at the bottom of a 200x100 box.
const graphSVG = `<svg width="200pt" height="100pt" viewBox="0.00 0.00 200.00 100.00" xmlns="http://www.w3.org/2000/svg">
<g id="graph0" class="graph" transform="scale(1 1) rotate(0) translate(0 0)">
<g id="node1" class="node"><title>start</title>
<ellipse cx="100" cy="10" rx="20" ry="5"/><text x="100" y="12">start</text></g>
<g id="node2" class="node"><title>node_1_assign_1</title>
<polygon points="80,40 120,40 120,60 80,60 80,40"/><text x="100" y="52">1: x</text></g>
<g id="node3" class="node"><title>end</title>
<ellipse cx="100" cy="90" rx="20" ry="5"/><text x="100" y="92">end</text></g>
</g>
</svg>`

// fixedRenderer renders every description to graphSVG and counts calls.
func fixedRenderer(calls *int) render.Renderer {
	return render.RendererFunc(func(ctx context.Context, dot string) (*render.Document, error) {
		if calls != nil {
			*calls++
		}
		return render.ParseDocument([]byte(graphSVG))
	})
}

// writeTrialDOT stores a trial's description under dir like the server does
// and returns the file path.
func writeTrialDOT(t *testing.T, dir, trial, text string) string {
	t.Helper()
	p := filepath.Join(dir, "trials", trial, "prospective.dot")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}
