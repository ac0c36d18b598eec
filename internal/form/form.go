// Package form extracts text form widgets from the lifting-plan template.
//
// The template is scanned once at startup. Every widget annotation that
// carries both a field name and a numeric rectangle becomes a Field; a
// widget missing either is invisible to the rest of the pipeline.
// Rectangles use PDF point space with the origin at the bottom-left of
// the page, the single coordinate convention shared with the overlay
// renderer and the annex builder.
package form

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

// Field describes one text widget of the template.
//
// Name is the merge key for submitted values. Page is the zero-based
// page index. The rectangle satisfies X1 < X2 and Y1 < Y2.
type Field struct {
	Name  string  `json:"name"`
	Value string  `json:"value"`
	Page  int     `json:"page"`
	X1    float64 `json:"-"`
	Y1    float64 `json:"-"`
	X2    float64 `json:"-"`
	Y2    float64 `json:"-"`
}

// Extract scans every page of the template for widget annotations and
// returns the fields in page order, then annotation order within the
// page. Widgets with a non-numeric rectangle are skipped silently.
func Extract(template []byte) ([]Field, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(template), conf)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("resolve template pages: %w", err)
	}

	var fields []Field
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pageDict, _, _, err := ctx.PageDict(pageNr, false)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNr, err)
		}
		annotsObj, found := pageDict.Find("Annots")
		if !found {
			continue
		}
		annots, err := ctx.DereferenceArray(annotsObj)
		if err != nil || annots == nil {
			continue
		}
		for _, annotRef := range annots {
			annot, err := ctx.DereferenceDict(annotRef)
			if err != nil || annot == nil {
				continue
			}
			if f, ok := widgetField(ctx, annot, pageNr-1); ok {
				fields = append(fields, f)
			}
		}
	}
	return fields, nil
}

// widgetField turns a widget annotation dict into a Field. It reports
// false for non-widgets and for widgets without a usable name or
// rectangle.
func widgetField(ctx *model.Context, annot types.Dict, pageIndex int) (Field, bool) {
	subObj, found := annot.Find("Subtype")
	if !found {
		return Field{}, false
	}
	subtype, err := ctx.DereferenceName(subObj, model.V10, nil)
	if err != nil || subtype != "Widget" {
		return Field{}, false
	}

	nameObj, found := annot.Find("T")
	if !found {
		return Field{}, false
	}
	name, err := ctx.DereferenceStringOrHexLiteral(nameObj, model.V10, nil)
	if err != nil || name == "" {
		return Field{}, false
	}

	rectObj, found := annot.Find("Rect")
	if !found {
		return Field{}, false
	}
	rect, err := ctx.DereferenceArray(rectObj)
	if err != nil || len(rect) != 4 {
		return Field{}, false
	}
	coords := make([]float64, 4)
	for i, c := range rect {
		n, err := ctx.DereferenceNumber(c)
		if err != nil {
			return Field{}, false
		}
		coords[i] = n
	}

	f := Field{
		Name: strings.Trim(name, "()"),
		Page: pageIndex,
		X1:   coords[0],
		Y1:   coords[1],
		X2:   coords[2],
		Y2:   coords[3],
	}
	if valObj, found := annot.Find("V"); found {
		if val, err := ctx.DereferenceStringOrHexLiteral(valObj, model.V10, nil); err == nil {
			f.Value = strings.Trim(val, "()")
		}
	}
	return f, true
}

// ApplyValues returns a copy of fields with each value replaced by the
// submitted one. A field absent from values renders empty.
func ApplyValues(fields []Field, values map[string]string) []Field {
	applied := make([]Field, len(fields))
	copy(applied, fields)
	for i := range applied {
		applied[i].Value = values[applied[i].Name]
	}
	return applied
}
