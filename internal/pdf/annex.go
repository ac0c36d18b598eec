package pdf

import (
	"bytes"
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"go-liftplan/internal/images"
)

const (
	cm = 72.0 / 2.54

	annexMargin = 1.5 * cm
	logoWidth   = 4.5 * cm
	leading     = 12.0

	companyName = "ESPAGRUAS S.L."

	explanation = "Este anexo presenta la evidencia gráfica asociada al plan de izaje. " +
		"Las imágenes muestran la disposición real en obra, los accesos, la ubicación de la grúa " +
		"y/o el desarrollo de la maniobra, con el único fin de complementar la evaluación técnica " +
		"y facilitar la verificación de las condiciones de seguridad establecidas."
)

// BuildAnnexPage renders one landscape A4 page presenting an uploaded
// image: company header, "ANEXO – {title}" (extension stripped), the
// fixed explanatory paragraph word-wrapped to the text width, a solid
// outer frame, and the image fit-scaled and centered inside a dashed
// frame below the paragraph. logo may be nil; the page then renders
// without one.
func BuildAnnexPage(img *images.Attachment, logo *images.Attachment, title string) ([]byte, error) {
	doc := fpdf.New("L", "pt", "A4", "")
	doc.SetCreationDate(creationDate)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()
	tr := doc.UnicodeTranslatorFromDescriptor("")
	pageW, pageH := doc.GetPageSize()

	if logo != nil && logo.Width > 0 {
		logoH := float64(logo.Height) * logoWidth / float64(logo.Width)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		doc.RegisterImageOptionsReader("logo", opts, bytes.NewReader(logo.PNG))
		doc.ImageOptions("logo", annexMargin, annexMargin, logoWidth, logoH, false, opts, 0, "")
	}

	title = normalizeTitle(title)
	doc.SetFont("Helvetica", "B", 16)
	drawCentered(doc, tr(companyName), pageW/2, annexMargin+0.9*cm)
	doc.SetFont("Helvetica", "B", 14)
	drawCentered(doc, tr("ANEXO – "+title), pageW/2, annexMargin+1.9*cm)

	doc.SetFont("Helvetica", "", 10)
	textW := pageW - 2*annexMargin
	yText := annexMargin + 3.0*cm
	for _, line := range doc.SplitText(tr(explanation), textW) {
		doc.Text(annexMargin, yText, line)
		yText += leading
	}

	doc.SetLineWidth(1)
	doc.Rect(annexMargin, annexMargin, pageW-2*annexMargin, pageH-2*annexMargin, "D")

	frameX := annexMargin + 0.3*cm
	frameW := pageW - 2*annexMargin - 0.6*cm
	frameTop := yText + 0.6*cm
	frameH := pageH - annexMargin - 0.8*cm - frameTop
	doc.SetDashPattern([]float64{3, 3}, 0)
	doc.Rect(frameX, frameTop, frameW, frameH, "D")
	doc.SetDashPattern([]float64{}, 0)

	if img != nil {
		w, h := fitRect(float64(img.Width), float64(img.Height), frameW, frameH)
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		doc.RegisterImageOptionsReader("annex", opts, bytes.NewReader(img.PNG))
		doc.ImageOptions("annex", frameX+(frameW-w)/2, frameTop+(frameH-h)/2, w, h, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("annex %q: %w", title, err)
	}
	return buf.Bytes(), nil
}

// normalizeTitle strips a trailing filename extension from the display
// title. Titles without one pass through unchanged.
func normalizeTitle(title string) string {
	return strings.TrimSuffix(title, filepath.Ext(title))
}

// fitRect scales (w, h) uniformly so it fits inside (maxW, maxH)
// without distortion.
func fitRect(w, h, maxW, maxH float64) (float64, float64) {
	scale := math.Min(maxW/w, maxH/h)
	return w * scale, h * scale
}

func drawCentered(doc *fpdf.Fpdf, s string, x, y float64) {
	doc.Text(x-doc.GetStringWidth(s)/2, y, s)
}
