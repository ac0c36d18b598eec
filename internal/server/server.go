// Package server provides the HTTP server setup for go-liftplan.
//
// NewServer creates and configures the HTTP server around the assets
// loaded at startup: the template bytes, the extracted field list and
// the optional logo. These are read-only for the lifetime of the
// process; every generation request works on its own copies.
//
// Usage:
//
//	server := server.NewServer(template, fields, logo)
//	server.ListenAndServe()
//
// See internal/server/routes.go for route registration.
package server

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"go-liftplan/internal/form"
	"go-liftplan/internal/images"

	_ "github.com/joho/godotenv/autoload"
)

type Server struct {
	port     int
	Template []byte
	Fields   []form.Field
	Logo     *images.Attachment
}

func NewServer(template []byte, fields []form.Field, logo *images.Attachment) *http.Server {
	port, _ := strconv.Atoi(os.Getenv("PORT"))
	if port == 0 {
		port = 8080
	}

	srv := &Server{
		port:     port,
		Template: template,
		Fields:   fields,
		Logo:     logo,
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", srv.port),
		Handler:      srv.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return server
}
