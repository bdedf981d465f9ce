// Package view renders the HTML pages.  Every page under templates/pages is
// parsed together with the shared layout into its own template set, so the
// "content" block of one page never leaks into another.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/fyyur/internal/utils"
)

//go:embed templates
var files embed.FS

const (
	layoutFile = "templates/layouts/main.html"
	pagesDir   = "templates/pages"
)

// Page is the value every template receives.  Data holds the page specific
// view model.
type Page struct {
	Title   string
	Flashes []utils.FlashMessage
	Data    any
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page.  Times passed to the datetime function are shown
// in loc.
func New(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.UTC
	}
	funcs := template.FuncMap{
		"datetime": func(t time.Time, format string) string { return FormatDateTime(t, format, loc) },
		"contains": contains,
		"join":     strings.Join,
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	err := fs.WalkDir(files, pagesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) != ".html" {
			return err
		}
		name := strings.TrimPrefix(p, pagesDir+"/")
		t, err := template.New(path.Base(layoutFile)).Funcs(funcs).ParseFS(files, layoutFile, p)
		if err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Render executes the named page, e.g. "venues.html" or "errors/404.html".
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("view: unknown page %q", name)
	}
	return t.ExecuteTemplate(w, path.Base(layoutFile), data)
}

// has reports whether a page with that name exists.
func (r *Renderer) has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Date formats understood by FormatDateTime.
const (
	FormatMedium   = "medium"
	FormatFull     = "full"
	FormatRelative = "relative"

	mediumLayout = "Mon 01, 02, 2006 3:04PM"
	fullLayout   = "Monday January, 2, 2006 at 3:04PM"
)

// FormatDateTime renders t in loc.  Unknown formats fall back to medium.
func FormatDateTime(t time.Time, format string, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	switch format {
	case FormatFull:
		return t.Format(fullLayout)
	case FormatRelative:
		return humanize.Time(t)
	default:
		return t.Format(mediumLayout)
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
