package web

import (
	"embed"
	"html/template"
	"log"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes embedded page templates, threading the pending flash
// message into every page.
type Renderer struct {
	tmpl  *template.Template
	flash *Flash
}

func NewRenderer(flash *Flash) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl, flash: flash}, nil
}

// Page is the root object every template executes against.
type Page struct {
	Flash string
	Data  any
}

// Render writes the named page, consuming any flash message queued by a
// previous redirect.
func (rd *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data any) {
	rd.render(w, name, Page{Flash: rd.flash.Pop(w, r), Data: data})
}

// RenderWithFlash writes the named page with an explicit message, for
// handlers that re-render the same page instead of redirecting.
func (rd *Renderer) RenderWithFlash(w http.ResponseWriter, name, msg string, data any) {
	rd.render(w, name, Page{Flash: msg, Data: data})
}

func (rd *Renderer) render(w http.ResponseWriter, name string, page Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := rd.tmpl.ExecuteTemplate(w, name, page); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}
