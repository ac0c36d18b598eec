package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"codeberg.org/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"go-liftplan/internal/form"
)

func buildTestTemplate(t *testing.T, pages int) []byte {
	t.Helper()
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetFont("Helvetica", "", 12)
	for i := 0; i < pages; i++ {
		doc.AddPage()
		doc.Text(72, 72, "template page")
	}
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		t.Fatalf("Failed to build test template: %v", err)
	}
	return buf.Bytes()
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for x := 0; x < 40; x++ {
		for y := 0; y < 30; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: uint8(x), B: uint8(y), A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func countPages(t *testing.T, doc []byte) int {
	t.Helper()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := api.ReadContext(bytes.NewReader(doc), conf)
	if err != nil {
		t.Fatalf("Failed to read generated PDF: %v", err)
	}
	if err := ctx.EnsurePageCount(); err != nil {
		t.Fatalf("Failed to count pages: %v", err)
	}
	return ctx.PageCount
}

func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	template := buildTestTemplate(t, 2)
	fields, err := form.Extract(template)
	if err != nil {
		t.Fatalf("Failed to extract fields: %v", err)
	}
	s := &Server{
		Template: template,
		Fields:   fields,
	}
	return httptest.NewServer(s.RegisterRoutes())
}

func TestListFields(t *testing.T) {
	server := setupTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/fields")
	if err != nil {
		t.Fatalf("Failed to list fields: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", resp.StatusCode)
	}
	var fields []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(fields) != 0 {
		t.Errorf("Expected no fields for a plain template, got %d", len(fields))
	}
}

func postGenerate(t *testing.T, url string, values string, imgs map[string][]byte) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if values != "" {
		if err := writer.WriteField("fields", values); err != nil {
			t.Fatalf("Failed to write field values: %v", err)
		}
	}
	for name, data := range imgs {
		part, err := writer.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("Failed to create image part: %v", err)
		}
		if _, err := part.Write(data); err != nil {
			t.Fatalf("Failed to write image part: %v", err)
		}
	}
	writer.Close()

	req, _ := http.NewRequest("POST", url+"/api/generate", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("Failed to post generate request: %v", err)
	}
	return resp
}

func TestGenerateWithoutImages(t *testing.T) {
	server := setupTestServer(t)
	defer server.Close()

	resp := postGenerate(t, server.URL, `{"Text1": "Main Site"}`, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %q", ct)
	}
	cd := resp.Header.Get("Content-Disposition")
	if !strings.Contains(cd, `attachment; filename="Plan_Izado_ESPAGRUAS_`) {
		t.Errorf("Unexpected Content-Disposition: %q", cd)
	}

	var body bytes.Buffer
	if _, err := body.ReadFrom(resp.Body); err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	if got := countPages(t, body.Bytes()); got != 2 {
		t.Errorf("Expected template page count 2, got %d", got)
	}
}

func TestGenerateSkipsCorruptImages(t *testing.T) {
	server := setupTestServer(t)
	defer server.Close()

	imgs := map[string][]byte{
		"acceso.png":  testPNG(t),
		"corrupt.png": []byte("not an image at all"),
		"grua.png":    testPNG(t),
	}
	resp := postGenerate(t, server.URL, "", imgs)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", resp.StatusCode)
	}

	var body bytes.Buffer
	if _, err := body.ReadFrom(resp.Body); err != nil {
		t.Fatalf("Failed to read response body: %v", err)
	}
	// 2 template pages + 2 annexes; the corrupt upload is skipped
	if got := countPages(t, body.Bytes()); got != 4 {
		t.Errorf("Expected 4 pages, got %d", got)
	}
}

func TestGenerateRejectsBadValues(t *testing.T) {
	server := setupTestServer(t)
	defer server.Close()

	resp := postGenerate(t, server.URL, `{"Text1": `, nil)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("Expected 400 Bad Request, got %d", resp.StatusCode)
	}
}

func TestSwaggerIsLocalhostOnly(t *testing.T) {
	server := setupTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/swagger/index.html")
	if err != nil {
		t.Fatalf("Failed to reach swagger route: %v", err)
	}
	defer resp.Body.Close()
	// httptest serves on 127.0.0.1, so the localhost guard lets it through
	if resp.StatusCode != http.StatusOK {
		t.Errorf("Expected 200 OK from localhost, got %d", resp.StatusCode)
	}
}
