package pdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"

	"go-liftplan/internal/form"
	"go-liftplan/internal/utils"
)

type pageSize struct {
	w, h float64
}

// pageSizes resolves every page's media box into width and height. A
// page without a usable box aborts the whole flatten; there is no
// partial output.
func pageSizes(ctx *model.Context) ([]pageSize, error) {
	sizes := make([]pageSize, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		_, _, inh, err := ctx.PageDict(pageNr, false)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNr, err)
		}
		box := inh.MediaBox
		if box == nil {
			return nil, fmt.Errorf("page %d: missing media box", pageNr)
		}
		w, h := box.Width(), box.Height()
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("page %d: malformed media box %v", pageNr, box)
		}
		sizes[pageNr-1] = pageSize{w: w, h: h}
	}
	return sizes, nil
}

// Flatten burns the field values into the template's page content and
// strips the interactive widgets. Pages without fields pass through
// unchanged; the output keeps the original page order.
func Flatten(template []byte, fields []form.Field) ([]byte, error) {
	conf := newConfiguration()

	ctx, err := api.ReadContext(bytes.NewReader(template), conf)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("resolve template pages: %w", err)
	}
	sizes, err := pageSizes(ctx)
	if err != nil {
		return nil, err
	}

	byPage := make(map[int][]form.Field)
	for _, f := range fields {
		if f.Page < 0 || f.Page >= len(sizes) {
			continue
		}
		byPage[f.Page] = append(byPage[f.Page], f)
	}

	stamped := template
	if len(byPage) > 0 {
		tmpDir, err := os.MkdirTemp("", "liftplan-overlays-")
		if err != nil {
			return nil, fmt.Errorf("overlay workspace: %w", err)
		}
		defer os.RemoveAll(tmpDir)

		overlays := make(map[int]*model.Watermark, len(byPage))
		for pageIndex, pageFields := range byPage {
			overlay, err := RenderOverlay(pageFields, sizes[pageIndex].w, sizes[pageIndex].h)
			if err != nil {
				return nil, fmt.Errorf("page %d: %w", pageIndex+1, err)
			}
			path := filepath.Join(tmpDir, fmt.Sprintf("overlay-%s.pdf", utils.GenerateUUID()))
			if err := os.WriteFile(path, overlay, 0o600); err != nil {
				return nil, fmt.Errorf("page %d: %w", pageIndex+1, err)
			}
			// Same page size as the target, so abs scale 1 centered is
			// an exact 1:1 composite painted over the page content.
			wm, err := pdfcpu.ParsePDFWatermarkDetails(path, "pos:c, scale:1 abs, rot:0", true, types.POINTS)
			if err != nil {
				return nil, fmt.Errorf("page %d: parse overlay stamp: %w", pageIndex+1, err)
			}
			overlays[pageIndex+1] = wm
		}

		var buf bytes.Buffer
		if err := api.AddWatermarksMap(bytes.NewReader(template), &buf, overlays, conf); err != nil {
			return nil, fmt.Errorf("apply overlays: %w", err)
		}
		stamped = buf.Bytes()
	}

	return removeWidgets(stamped, conf)
}

// removeWidgets deletes every page's annotation array and the
// document-level form dictionary, leaving only flattened content.
func removeWidgets(doc []byte, conf *model.Configuration) ([]byte, error) {
	ctx, err := api.ReadContext(bytes.NewReader(doc), conf)
	if err != nil {
		return nil, fmt.Errorf("read stamped document: %w", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("resolve stamped pages: %w", err)
	}

	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pageDict, _, _, err := ctx.PageDict(pageNr, false)
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", pageNr, err)
		}
		pageDict.Delete("Annots")
	}
	if rootDict, err := ctx.Catalog(); err == nil {
		rootDict.Delete("AcroForm")
	}

	var out bytes.Buffer
	if err := api.WriteContext(ctx, &out); err != nil {
		return nil, fmt.Errorf("write flattened document: %w", err)
	}
	return out.Bytes(), nil
}
