package pdf

import (
	"fmt"
	"log"
	"time"

	"go-liftplan/internal/form"
	"go-liftplan/internal/images"
)

// Request carries everything one generation needs: the submitted value
// per field name and the decoded images, in upload order. It is passed
// by value into the pipeline; nothing in this package reads state
// outside of it.
type Request struct {
	Values map[string]string
	Images []images.Attachment
}

// Generate runs the full pipeline for one request: apply the submitted
// values to the startup field list, flatten the template, build one
// annex page per image and merge everything into the final document.
// An annex that fails to render is skipped without shifting the
// others; flatten and merge errors abort the generation.
func Generate(template []byte, fields []form.Field, logo *images.Attachment, req Request) ([]byte, error) {
	applied := form.ApplyValues(fields, req.Values)

	flattened, err := Flatten(template, applied)
	if err != nil {
		return nil, err
	}

	annexes := make([][]byte, 0, len(req.Images))
	for i := range req.Images {
		img := &req.Images[i]
		annex, err := BuildAnnexPage(img, logo, img.Name)
		if err != nil {
			log.Printf("Skipping annex for %s: %v", img.Name, err)
			continue
		}
		annexes = append(annexes, annex)
	}

	return Merge(flattened, annexes)
}

// OutputFilename returns the download filename for a document generated
// at ts.
func OutputFilename(ts time.Time) string {
	return fmt.Sprintf("Plan_Izado_ESPAGRUAS_%s.pdf", ts.Format("20060102_1504"))
}
