package sink

import (
	"encoding/json"

	"github.com/matzehuels/mathproblem/pkg/diagram"
)

// RenderJSON renders l as indented JSON. The output decodes back into an
// identical layout with [diagram.Layout.UnmarshalJSON].
func RenderJSON(l diagram.Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}
