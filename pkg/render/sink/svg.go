package sink

import "github.com/matzehuels/mathproblem/pkg/diagram"

// RenderSVG renders l as a standalone SVG document sized to its bounds plus
// padding.
func RenderSVG(l diagram.Layout) []byte { return l.SVG() }
