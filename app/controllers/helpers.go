package controllers

import (
	"encoding/json"
	"html/template"
	"log"
	"mime"
	"net/http"
	"strings"

	"mysite/app/views"
)

// Templates maps a page name from the views package to its parsed set.
type Templates map[string]*template.Template

// isAPI reports whether the request wants a JSON response: an /api/ path,
// or an Accept header listing application/json.
func isAPI(r *http.Request) bool {
	if strings.HasPrefix(r.URL.Path, "/api/") {
		return true
	}
	for _, value := range r.Header.Values("Accept") {
		for _, entry := range strings.Split(value, ",") {
			mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(entry))
			if err == nil && mediaType == "application/json" {
				return true
			}
		}
	}
	return false
}

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("encode json: %v", err)
	}
}

// render executes page through the layout.
func render(w http.ResponseWriter, templates Templates, page string, status int, data interface{}) {
	t, ok := templates[page]
	if !ok {
		log.Printf("template %q not loaded", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := t.ExecuteTemplate(w, "layout", data); err != nil {
		log.Printf("render %s: %v", page, err)
	}
}

// sendError writes message as JSON for API requests and as the error page otherwise.
func sendError(w http.ResponseWriter, r *http.Request, templates Templates, message string, status int) {
	if isAPI(r) {
		sendJSON(w, status, map[string]string{"error": message})
		return
	}
	if _, ok := templates[views.Error]; !ok {
		http.Error(w, message, status)
		return
	}
	render(w, templates, views.Error, status, struct {
		Title   string
		Message string
	}{
		Title:   http.StatusText(status),
		Message: message,
	})
}

// internalError logs err and hides it from the client.
func internalError(w http.ResponseWriter, r *http.Request, templates Templates, err error) {
	log.Printf("%s %s: %v", r.Method, r.URL.Path, err)
	sendError(w, r, templates, "Something went wrong.", http.StatusInternalServerError)
}

// absoluteURL joins path to the scheme and host the request arrived on.
func absoluteURL(r *http.Request, path string) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host + path
}

// NotFound renders the 404 page for unmatched routes.
func NotFound(templates Templates) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendError(w, r, templates, "Page not found.", http.StatusNotFound)
	})
}

// MethodNotAllowed renders the 405 page for routes matched by path only.
func MethodNotAllowed(templates Templates) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sendError(w, r, templates, "Method not allowed", http.StatusMethodNotAllowed)
	})
}
