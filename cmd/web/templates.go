package main

import (
	"html/template"
	"path/filepath"
	"time"

	"lutong_bahay/internal/models"
)

type TemplateData struct {
	IsAuthenticated bool
	UserRole        int
	UserName        string
	Flash           string
	Products        []models.Product
	Product         models.Product
	Orders          []models.Order
	Customers       []models.User
	CurrentYear     int
}

func humanDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006 at 15:04")
}

var functions = template.FuncMap{
	"humanDate": humanDate,
}

func newTemplateCache(dir string) (map[string]*template.Template, error) {
	cache := make(map[string]*template.Template)

	pages, err := filepath.Glob(filepath.Join(dir, "*.page.tmpl"))
	if err != nil {
		return nil, err
	}

	for _, page := range pages {
		name := filepath.Base(page)

		ts, err := template.New(name).Funcs(functions).ParseFiles(filepath.Join(dir, "base.layout.tmpl"))
		if err != nil {
			return nil, err
		}

		partials, err := filepath.Glob(filepath.Join(dir, "*.partial.tmpl"))
		if err != nil {
			return nil, err
		}

		if len(partials) > 0 {
			ts, err = ts.ParseGlob(filepath.Join(dir, "*.partial.tmpl"))
			if err != nil {
				return nil, err
			}
		}

		ts, err = ts.ParseFiles(page)
		if err != nil {
			return nil, err
		}

		cache[name] = ts
	}

	return cache, nil
}
