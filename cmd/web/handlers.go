package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"lutong_bahay/internal/models"
)

// --- AUTH HANDLERS ---

func (app *application) index(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "index.page.tmpl", nil)
}

func (app *application) login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := app.users.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			app.flash(r, "Invalid username or password")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		app.serverError(w, err)
		return
	}

	err = app.session.RenewToken(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.session.Put(r.Context(), "authenticatedUserID", user.ID)
	app.session.Put(r.Context(), "username", user.Username)
	app.session.Put(r.Context(), "userRole", user.Role)

	if user.Role == models.RoleAdmin {
		http.Redirect(w, r, "/add_order", http.StatusSeeOther)
	} else {
		http.Redirect(w, r, "/add_order/customer", http.StatusSeeOther)
	}
}

func (app *application) logout(w http.ResponseWriter, r *http.Request) {
	err := app.session.Destroy(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.flash(r, "You've been logged out.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "home.page.tmpl", nil)
}

func (app *application) register(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/register_customer", http.StatusSeeOther)
}

func (app *application) registerCustomerForm(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "register_customer.page.tmpl", nil)
}

func (app *application) registerCustomer(w http.ResponseWriter, r *http.Request) {
	fullName := strings.TrimSpace(r.FormValue("full_name"))
	username := strings.TrimSpace(r.FormValue("username"))
	email := strings.TrimSpace(r.FormValue("email"))
	password := r.FormValue("password")

	if fullName == "" || username == "" || email == "" || password == "" {
		app.flash(r, "All fields are required!")
		http.Redirect(w, r, "/register_customer", http.StatusSeeOther)
		return
	}

	_, err := app.users.Insert(r.Context(), fullName, username, email, password, models.RoleCustomer)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateUsername) {
			app.flash(r, "Username already exists. Please choose another.")
		} else {
			app.serverError(w, err)
			return
		}
	} else {
		app.flash(r, "Customer registered successfully!")
	}

	// Registration stays on its own view, success or not.
	http.Redirect(w, r, "/register_customer", http.StatusSeeOther)
}

func (app *application) addCustomerForm(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "add_customer.page.tmpl", nil)
}

func (app *application) addCustomer(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.FormValue("name"))
	email := strings.TrimSpace(r.FormValue("email"))

	if name == "" || email == "" {
		app.flash(r, "All fields are required!")
		http.Redirect(w, r, "/add_customer", http.StatusSeeOther)
		return
	}

	_, err := app.users.InsertCustomer(r.Context(), name, email)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateUsername) {
			app.flash(r, "A customer with that email already exists.")
		} else {
			app.serverError(w, err)
			return
		}
	} else {
		app.flash(r, "Customer added successfully!")
	}

	http.Redirect(w, r, "/add_customer", http.StatusSeeOther)
}

// --- ORDER HANDLERS ---

func (app *application) viewOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := app.orders.AllForCustomers(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.render(w, r, "view_orders.page.tmpl", &TemplateData{Orders: orders})
}

func (app *application) myOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := app.orders.ByUser(r.Context(), app.currentUserID(r))
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.render(w, r, "view_orders.page.tmpl", &TemplateData{Orders: orders})
}

func (app *application) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.Atoi(r.FormValue("id"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}
	status := strings.TrimSpace(r.FormValue("status"))
	if status == "" {
		app.flash(r, "All fields are required!")
		http.Redirect(w, r, "/orders", http.StatusSeeOther)
		return
	}

	err = app.orders.UpdateStatus(r.Context(), orderID, status)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.clientError(w, http.StatusNotFound)
			return
		}
		app.serverError(w, err)
		return
	}

	app.flash(r, "Order status updated.")
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (app *application) addOrderForm(w http.ResponseWriter, r *http.Request) {
	products, err := app.products.All(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	customers, err := app.users.Customers(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.render(w, r, "add_order.page.tmpl", &TemplateData{Products: products, Customers: customers})
}

func (app *application) addOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	var customerID int
	if r.PostForm.Get("customer_id") == "new" {
		name := strings.TrimSpace(r.PostForm.Get("new_name"))
		email := strings.TrimSpace(r.PostForm.Get("new_email"))
		if name == "" || email == "" {
			app.flash(r, "All fields are required!")
			http.Redirect(w, r, "/add_order", http.StatusSeeOther)
			return
		}

		id, err := app.users.InsertCustomer(r.Context(), name, email)
		if err != nil {
			if errors.Is(err, models.ErrDuplicateUsername) {
				app.flash(r, "A customer with that email already exists.")
				http.Redirect(w, r, "/add_order", http.StatusSeeOther)
				return
			}
			app.serverError(w, err)
			return
		}
		customerID = id
	} else {
		id, err := strconv.Atoi(r.PostForm.Get("customer_id"))
		if err != nil {
			app.flash(r, "Please choose a customer.")
			http.Redirect(w, r, "/add_order", http.StatusSeeOther)
			return
		}
		customerID = id
	}

	orderDate, err := parseOrderDate(r.PostForm.Get("order_date"))
	if err != nil {
		orderDate = time.Now()
	}
	status := strings.TrimSpace(r.PostForm.Get("order_status"))
	if status == "" {
		status = models.StatusPending
	}

	lines := models.FilterCartLines(parseCartLines(r))
	if len(lines) == 0 {
		app.flash(r, "Select at least one item.")
		http.Redirect(w, r, "/add_order", http.StatusSeeOther)
		return
	}

	_, err = app.orders.Insert(r.Context(), customerID, orderDate, status, lines)
	if err != nil {
		app.serverError(w, err)
		return
	}

	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (app *application) addOrderCustomerForm(w http.ResponseWriter, r *http.Request) {
	products, err := app.products.All(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.render(w, r, "add_order_customer.page.tmpl", &TemplateData{Products: products})
}

func (app *application) addOrderCustomer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	lines := models.FilterCartLines(parseCartLines(r))
	if len(lines) == 0 {
		app.flash(r, "Select at least one item.")
		http.Redirect(w, r, "/add_order/customer", http.StatusSeeOther)
		return
	}

	_, err := app.orders.Insert(r.Context(), app.currentUserID(r), time.Now(), models.StatusPending, lines)
	if err != nil {
		app.serverError(w, err)
		return
	}

	http.Redirect(w, r, "/my-orders", http.StatusSeeOther)
}

// --- CATALOG HANDLERS ---

func (app *application) menu(w http.ResponseWriter, r *http.Request) {
	products, err := app.products.All(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.render(w, r, "menu.page.tmpl", &TemplateData{Products: products})
}

func (app *application) productList(w http.ResponseWriter, r *http.Request) {
	products, err := app.products.All(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	app.render(w, r, "product_list.page.tmpl", &TemplateData{Products: products})
}

func (app *application) productNewForm(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, "product_new.page.tmpl", nil)
}

func (app *application) productNew(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.PostForm.Get("name"))
	description := strings.TrimSpace(r.PostForm.Get("description"))
	price, priceErr := strconv.ParseFloat(r.PostForm.Get("price"), 64)

	if name == "" || description == "" || priceErr != nil || price < 0 {
		app.flash(r, "All fields are required!")
		http.Redirect(w, r, "/products/new", http.StatusSeeOther)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		app.flash(r, "A product image is required.")
		http.Redirect(w, r, "/products/new", http.StatusSeeOther)
		return
	}
	defer file.Close()

	imageName, err := app.saveProductImage(file, header)
	if err != nil {
		if errors.Is(err, errImageType) {
			app.flash(r, "File type not allowed. Use png, jpg, jpeg or gif.")
			http.Redirect(w, r, "/products/new", http.StatusSeeOther)
			return
		}
		app.serverError(w, err)
		return
	}

	_, err = app.products.Insert(r.Context(), models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		ImageURL:    imageName,
	})
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.flash(r, "Product added successfully!")
	http.Redirect(w, r, "/products/list", http.StatusSeeOther)
}

func (app *application) productEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	product, err := app.products.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.clientError(w, http.StatusNotFound)
			return
		}
		app.serverError(w, err)
		return
	}

	app.render(w, r, "product_edit.page.tmpl", &TemplateData{Product: product})
}

func (app *application) productEdit(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	product, err := app.products.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, models.ErrNoRecord) {
			app.clientError(w, http.StatusNotFound)
			return
		}
		app.serverError(w, err)
		return
	}

	name := strings.TrimSpace(r.PostForm.Get("name"))
	description := strings.TrimSpace(r.PostForm.Get("description"))
	price, priceErr := strconv.ParseFloat(r.PostForm.Get("price"), 64)

	if name == "" || description == "" || priceErr != nil || price < 0 {
		app.flash(r, "All fields are required!")
		http.Redirect(w, r, "/products/edit/"+strconv.Itoa(id), http.StatusSeeOther)
		return
	}

	product.Name = name
	product.Description = description
	product.Price = price

	// A fresh image replaces the stored reference; absence keeps it.
	file, header, err := r.FormFile("image")
	if err == nil {
		defer file.Close()
		imageName, err := app.saveProductImage(file, header)
		if err != nil {
			if errors.Is(err, errImageType) {
				app.flash(r, "File type not allowed. Use png, jpg, jpeg or gif.")
				http.Redirect(w, r, "/products/edit/"+strconv.Itoa(id), http.StatusSeeOther)
				return
			}
			app.serverError(w, err)
			return
		}
		product.ImageURL = imageName
	} else if !errors.Is(err, http.ErrMissingFile) {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	if err := app.products.Update(r.Context(), product); err != nil {
		app.serverError(w, err)
		return
	}

	app.flash(r, "Product updated successfully!")
	http.Redirect(w, r, "/products/list", http.StatusSeeOther)
}

func (app *application) productDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.URL.Query().Get(":id"))
	if err != nil {
		app.clientError(w, http.StatusBadRequest)
		return
	}

	err = app.products.Delete(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrProductInUse):
			app.flash(r, "Cannot delete: the product appears in existing orders.")
		case errors.Is(err, models.ErrNoRecord):
			app.clientError(w, http.StatusNotFound)
			return
		default:
			app.serverError(w, err)
			return
		}
	} else {
		app.flash(r, "Product deleted.")
	}

	http.Redirect(w, r, "/products/list", http.StatusSeeOther)
}

// --- JSON API ---

func (app *application) apiProducts(w http.ResponseWriter, r *http.Request) {
	products, err := app.products.All(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

func (app *application) apiOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := app.orders.AllForCustomers(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}
