package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"go-liftplan/internal/form"
)

// RenderOverlay builds a single-page document of exactly pageW x pageH
// points that draws each non-empty field value inside its widget
// rectangle, ready to be composited onto the matching template page.
// Values are drawn left-aligned with a small inset and vertically
// centered in the rectangle; text wider than the rectangle overflows
// untouched. Empty values produce no draw call at all.
func RenderOverlay(fields []form.Field, pageW, pageH float64) ([]byte, error) {
	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: pageW, Ht: pageH},
	})
	doc.SetCreationDate(creationDate)
	doc.SetCompression(false)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, f := range fields {
		val := strings.Trim(f.Value, "()")
		if val == "" {
			continue
		}
		size := fontSizeFor(f.Y2 - f.Y1)
		doc.SetFont("Helvetica", "", size)
		doc.SetTextColor(0, 0, 0)
		// widget rects are bottom-left origin, the canvas draws from the top
		baseline := f.Y1 + (f.Y2-f.Y1-size)/2
		doc.Text(f.X1+2, pageH-baseline, tr(val))
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("render overlay: %w", err)
	}
	return buf.Bytes(), nil
}

// fontSizeFor approximates a readable font size from the widget height.
func fontSizeFor(rectHeight float64) float64 {
	size := rectHeight * 0.50
	if size < 8.0 {
		size = 8.0
	}
	if size > 10.5 {
		size = 10.5
	}
	return size
}
