// Package views holds the HTML templates, embedded into the binary.
package views

import (
	"embed"
	"fmt"
	"html"
	"html/template"
	"strings"
	"time"
)

//go:embed layout.html shared/*.html posts/*.html errors/*.html
var files embed.FS

// URLFunc reverses a named route from alternating key/value pairs.
type URLFunc func(name string, pairs ...string) (string, error)

// Page template names.
const (
	PostList    = "list"
	PostDetail  = "detail"
	PostShare   = "share"
	PostComment = "comment"
	Error       = "error"
)

var pages = map[string]string{
	PostList:    "posts/list.html",
	PostDetail:  "posts/detail.html",
	PostShare:   "posts/share.html",
	PostComment: "posts/comment.html",
	Error:       "errors/error.html",
}

// Load parses the layout and partials once and clones them for each page.
// Every page is executed through the "layout" template.
func Load(urlFor URLFunc) (map[string]*template.Template, error) {
	base, err := template.New("layout").Funcs(Funcs(urlFor)).ParseFS(files, "layout.html", "shared/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	templates := make(map[string]*template.Template, len(pages))
	for name, file := range pages {
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.ParseFS(files, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		templates[name] = t
	}
	return templates, nil
}

// Funcs are the helpers available to every template.
func Funcs(urlFor URLFunc) template.FuncMap {
	return template.FuncMap{
		"url": func(name string, args ...any) (string, error) {
			pairs := make([]string, len(args))
			for i, a := range args {
				pairs[i] = fmt.Sprint(a)
			}
			return urlFor(name, pairs...)
		},
		"date":          FormatDate,
		"truncateWords": TruncateWords,
		"linebreaks":    Linebreaks,
		"pluralize": func(n int) string {
			if n == 1 {
				return ""
			}
			return "s"
		},
		"inc": func(i int) int { return i + 1 },
	}
}

// FormatDate renders t like "May 17, 2024, 9:30 a.m.".
func FormatDate(t time.Time) string {
	t = t.UTC()
	suffix := "a.m."
	if t.Hour() >= 12 {
		suffix = "p.m."
	}
	return fmt.Sprintf("%s, %s %s", t.Format("January 2, 2006"), t.Format("3:04"), suffix)
}

// TruncateWords keeps the first n words of s, adding an ellipsis when cut.
func TruncateWords(n int, s string) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return s
	}
	return strings.Join(words[:n], " ") + " …"
}

// Linebreaks escapes s and wraps blank-line separated blocks in paragraphs.
// Single newlines become <br>.
func Linebreaks(s string) template.HTML {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\r\n", "\n")
	if s == "" {
		return ""
	}
	var paras []string
	for _, para := range strings.Split(s, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		lines := strings.Split(para, "\n")
		for i := range lines {
			lines[i] = html.EscapeString(lines[i])
		}
		paras = append(paras, "<p>"+strings.Join(lines, "<br>")+"</p>")
	}
	return template.HTML(strings.Join(paras, "\n\n"))
}
