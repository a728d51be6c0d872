package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"lutong_bahay/internal/models"
)

func (app *application) routes() http.Handler {
	mux := pat.New()

	mux.Get("/", http.HandlerFunc(app.index))
	mux.Post("/login", http.HandlerFunc(app.login))
	mux.Get("/logout", http.HandlerFunc(app.logout))
	mux.Get("/home", http.HandlerFunc(app.home))
	mux.Get("/menu", http.HandlerFunc(app.menu))

	mux.Get("/register", http.HandlerFunc(app.register))
	mux.Get("/register_customer", http.HandlerFunc(app.registerCustomerForm))
	mux.Post("/register_customer", http.HandlerFunc(app.registerCustomer))
	mux.Get("/add_customer", app.requireRole(models.RoleAdmin, app.addCustomerForm))
	mux.Post("/add_customer", app.requireRole(models.RoleAdmin, app.addCustomer))

	mux.Get("/orders", app.requireRole(models.RoleAdmin, app.viewOrders))
	mux.Post("/orders/status", app.requireRole(models.RoleAdmin, app.updateOrderStatus))
	mux.Get("/my-orders", app.requireRole(models.RoleCustomer, app.myOrders))
	mux.Get("/add_order", app.requireRole(models.RoleAdmin, app.addOrderForm))
	mux.Post("/add_order", app.requireRole(models.RoleAdmin, app.addOrder))
	mux.Get("/add_order/customer", app.requireRole(models.RoleCustomer, app.addOrderCustomerForm))
	mux.Post("/add_order/customer", app.requireRole(models.RoleCustomer, app.addOrderCustomer))

	mux.Get("/products/new", app.requireRole(models.RoleAdmin, app.productNewForm))
	mux.Post("/products/new", app.requireRole(models.RoleAdmin, app.productNew))
	mux.Get("/products/list", app.requireRole(models.RoleAdmin, app.productList))
	mux.Get("/products/delete/:id", app.requireRole(models.RoleAdmin, app.productDelete))
	mux.Get("/products/edit/:id", app.requireRole(models.RoleAdmin, app.productEditForm))
	mux.Post("/products/edit/:id", app.requireRole(models.RoleAdmin, app.productEdit))

	mux.Get("/api/products", http.HandlerFunc(app.apiProducts))
	mux.Get("/api/orders", app.requireRole(models.RoleAdmin, app.apiOrders))

	mux.Get("/static/", http.StripPrefix("/static", http.FileServer(http.Dir("./ui/static"))))

	return app.session.LoadAndSave(app.logRequest(app.recoverPanic(mux)))
}
