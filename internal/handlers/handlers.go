// Package handlers provides HTTP handlers for the lifting-plan API.
//
// Two endpoints: ListFields exposes the form fields discovered in the
// template at startup, Generate runs the document pipeline for one
// request and streams the final PDF back as an attachment.
//
// All handlers are designed to be used with the chi router.
package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"go-liftplan/internal/form"
	"go-liftplan/internal/images"
	"go-liftplan/internal/pdf"
	"go-liftplan/internal/utils"
)

type APIHandler struct {
	Template []byte
	Fields   []form.Field
	Logo     *images.Attachment
}

func NewAPIHandler(template []byte, fields []form.Field, logo *images.Attachment) *APIHandler {
	return &APIHandler{Template: template, Fields: fields, Logo: logo}
}

type fieldInfo struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Value string `json:"value"`
	Page  int    `json:"page"`
}

// ListFields godoc
// @Summary      List template form fields
// @Description  Returns the text fields discovered in the template, with display labels and default values
// @Tags         fields
// @Produce      json
// @Success      200  {array}  handlers.fieldInfo
// @Router       /api/fields [get]
func (h *APIHandler) ListFields(w http.ResponseWriter, r *http.Request) {
	out := make([]fieldInfo, len(h.Fields))
	for i, f := range h.Fields {
		out[i] = fieldInfo{Name: f.Name, Label: form.Label(f.Name), Value: f.Value, Page: f.Page}
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(out); err != nil {
		log.Printf("Error encoding field list: %v", err)
	}
}

// Generate godoc
// @Summary      Generate the final lifting-plan PDF
// @Description  Fills and flattens the template with the submitted values, appends one annex page per uploaded image and returns the merged document
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      application/pdf
// @Param        fields  formData  string  false  "JSON object mapping field name to value"
// @Param        images  formData  file    false  "Annex images (PNG, JPG, JPEG, BMP, TIF, TIFF), repeatable"
// @Success      200  {file}  file  "Generated PDF download"
// @Failure      400  {string}  string  "Bad request"
// @Failure      500  {string}  string  "Generation failed"
// @Router       /api/generate [post]
func (h *APIHandler) Generate(w http.ResponseWriter, r *http.Request) {
	const maxUploadSize = 50 * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "Request too large", http.StatusBadRequest)
		return
	}

	values := make(map[string]string)
	if raw := r.FormValue("fields"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &values); err != nil {
			http.Error(w, "Invalid field values", http.StatusBadRequest)
			return
		}
	}

	var attachments []images.Attachment
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["images"] {
			att, ok := readImage(fh)
			if !ok {
				continue
			}
			attachments = append(attachments, *att)
		}
	}

	out, err := pdf.Generate(h.Template, h.Fields, h.Logo, pdf.Request{
		Values: values,
		Images: attachments,
	})
	if err != nil {
		log.Printf("Error generating document: %v", err)
		http.Error(w, fmt.Sprintf("Failed to generate PDF: %v", err), http.StatusInternalServerError)
		return
	}

	filename := pdf.OutputFilename(time.Now())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Type", "application/pdf")
	if _, err := w.Write(out); err != nil {
		log.Printf("Error writing response: %v", err)
	}
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// readImage reads and decodes one uploaded image part. A part with an
// unsupported extension or undecodable content is skipped; the batch
// keeps going.
func readImage(fh *multipart.FileHeader) (*images.Attachment, bool) {
	name := utils.SanitizeFilename(fh.Filename)
	if !imageExtensions[strings.ToLower(filepath.Ext(name))] {
		log.Printf("Skipping %s: unsupported image type", name)
		return nil, false
	}

	file, err := fh.Open()
	if err != nil {
		log.Printf("Skipping %s: %v", name, err)
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("Skipping %s: %v", name, err)
		return nil, false
	}

	att, err := images.Decode(name, data)
	if err != nil {
		log.Printf("Skipping %s: %v", name, err)
		return nil, false
	}
	return att, true
}
