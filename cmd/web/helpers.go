package main

import (
	"bytes"
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"lutong_bahay/internal/models"
)

func (app *application) serverError(w http.ResponseWriter, err error) {
	trace := fmt.Sprintf("%s\n%s", err.Error(), debug.Stack())
	app.errorLog.Output(2, trace)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (app *application) clientError(w http.ResponseWriter, status int) {
	http.Error(w, http.StatusText(status), status)
}

// flash stores a one-shot notice shown on the next rendered page.
func (app *application) flash(r *http.Request, message string) {
	app.session.Put(r.Context(), "flash", message)
}

func (app *application) isAuthenticated(r *http.Request) bool {
	return app.session.Exists(r.Context(), "authenticatedUserID")
}

func (app *application) currentUserID(r *http.Request) int {
	return app.session.GetInt(r.Context(), "authenticatedUserID")
}

func (app *application) addDefaultData(td *TemplateData, r *http.Request) *TemplateData {
	if td == nil {
		td = &TemplateData{}
	}
	td.CurrentYear = time.Now().Year()
	td.Flash = app.session.PopString(r.Context(), "flash")
	td.IsAuthenticated = app.isAuthenticated(r)

	if td.IsAuthenticated {
		td.UserRole = app.session.GetInt(r.Context(), "userRole")
		td.UserName = app.session.GetString(r.Context(), "username")
	}
	return td
}

func (app *application) render(w http.ResponseWriter, r *http.Request, page string, data *TemplateData) {
	ts, ok := app.templateCache[page]
	if !ok {
		app.serverError(w, fmt.Errorf("the template %s does not exist", page))
		return
	}

	buf := new(bytes.Buffer)
	err := ts.ExecuteTemplate(buf, "base", app.addDefaultData(data, r))
	if err != nil {
		app.serverError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// parseCartLines reads the parallel product_id[] / quantity[] form fields.
// Pairs that do not parse as integers are skipped.
func parseCartLines(r *http.Request) []models.CartLine {
	productIDs := r.PostForm["product_id[]"]
	quantities := r.PostForm["quantity[]"]

	n := len(productIDs)
	if len(quantities) < n {
		n = len(quantities)
	}

	lines := make([]models.CartLine, 0, n)
	for i := 0; i < n; i++ {
		productID, err := strconv.Atoi(productIDs[i])
		if err != nil {
			continue
		}
		quantity, err := strconv.Atoi(quantities[i])
		if err != nil {
			continue
		}
		lines = append(lines, models.CartLine{ProductID: productID, Quantity: quantity})
	}
	return lines
}

// parseOrderDate accepts the datetime-local and plain date formats emitted
// by the admin order form.
func parseOrderDate(value string) (time.Time, error) {
	for _, layout := range []string{"2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised order date %q", value)
}
