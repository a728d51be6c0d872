package main

import (
	"fmt"
	"net/http"
)

func (app *application) logRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.infoLog.Printf("%s - %s %s %s", r.RemoteAddr, r.Proto, r.Method, r.URL.RequestURI())
		next.ServeHTTP(w, r)
	})
}

func (app *application) recoverPanic(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				w.Header().Set("Connection", "close")
				app.serverError(w, fmt.Errorf("%v", err))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// requireRole only lets an authenticated session with the given role
// through. Anonymous visitors are sent to the login page, a wrong role gets
// a 403.
func (app *application) requireRole(role int, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !app.isAuthenticated(r) {
			app.flash(r, "Please log in first.")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		if app.session.GetInt(r.Context(), "userRole") != role {
			app.clientError(w, http.StatusForbidden)
			return
		}
		next(w, r)
	}
}
