// Package pdf implements the document-generation pipeline for the
// lifting-plan service.
//
// Functions:
//   - RenderOverlay: Draws submitted field values onto a transient
//     single-page canvas sized like the template page.
//   - Flatten: Composites the overlays onto the template and removes
//     the interactive widgets.
//   - BuildAnnexPage: Renders one landscape page presenting an uploaded
//     image with the standard header and frames.
//   - Merge: Concatenates the flattened template with the annex pages.
//   - Generate: Runs the full pipeline for one request.
//
// All coordinates handed into this package are PDF points with the
// origin at the bottom-left of the page; conversion to the canvas
// origin happens at the individual draw calls and nowhere else.
package pdf

import (
	"time"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// creationDate is stamped into every generated canvas so identical
// inputs produce identical page bytes.
var creationDate = time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

func newConfiguration() *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}
