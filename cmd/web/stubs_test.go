package main

import (
	"context"
	"time"

	"lutong_bahay/internal/models"
)

type stubUserRepo struct {
	users     map[string]models.User
	passwords map[string]string
	nextID    int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		users: map[string]models.User{
			"admin":     {ID: 1, Username: "admin", FullName: "Admin User", Email: "admin@test.com", Role: models.RoleAdmin},
			"customer1": {ID: 2, Username: "customer1", FullName: "Juliana Ritz", Email: "juliana@test.com", Role: models.RoleCustomer},
			"customer2": {ID: 3, Username: "customer2", FullName: "Julianne Curtis", Email: "julianne@test.com", Role: models.RoleCustomer},
		},
		passwords: map[string]string{
			"admin":     "adminpass",
			"customer1": "cust1pass",
			"customer2": "cust2pass",
		},
		nextID: 4,
	}
}

func (s *stubUserRepo) count() int {
	return len(s.users)
}

func (s *stubUserRepo) Insert(_ context.Context, fullName, username, email, password string, role int) (int, error) {
	if _, exists := s.users[username]; exists {
		return 0, models.ErrDuplicateUsername
	}
	id := s.nextID
	s.nextID++
	s.users[username] = models.User{ID: id, Username: username, FullName: fullName, Email: email, Role: role}
	s.passwords[username] = password
	return id, nil
}

func (s *stubUserRepo) InsertCustomer(_ context.Context, fullName, email string) (int, error) {
	username := models.UsernameFromEmail(email)
	if _, exists := s.users[username]; exists {
		return 0, models.ErrDuplicateUsername
	}
	id := s.nextID
	s.nextID++
	s.users[username] = models.User{ID: id, Username: username, FullName: fullName, Email: email, Role: models.RoleCustomer}
	return id, nil
}

func (s *stubUserRepo) Authenticate(_ context.Context, username, password string) (models.User, error) {
	u, ok := s.users[username]
	if !ok {
		return models.User{}, models.ErrInvalidCredentials
	}
	if stored, ok := s.passwords[username]; !ok || stored != password {
		return models.User{}, models.ErrInvalidCredentials
	}
	return u, nil
}

func (s *stubUserRepo) Customers(_ context.Context) ([]models.User, error) {
	var customers []models.User
	for _, u := range s.users {
		if u.Role == models.RoleCustomer {
			customers = append(customers, u)
		}
	}
	return customers, nil
}

type stubProductRepo struct {
	products  []models.Product
	inserted  []models.Product
	updated   []models.Product
	deleteErr map[int]error
	deleted   []int
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		products: []models.Product{
			{ID: 1, Name: "Adobo", Description: "Pork braised in soy sauce and vinegar.", Price: 350.00, ImageURL: "adobo.jpg"},
			{ID: 2, Name: "Sisig", Description: "Chopped pork on a sizzling platter.", Price: 180.00, ImageURL: "sisig.jpg"},
			{ID: 3, Name: "Kare-kare", Description: "Oxtail in peanut sauce.", Price: 299.00, ImageURL: "karekare.jpg"},
		},
		deleteErr: map[int]error{},
	}
}

func (s *stubProductRepo) Insert(_ context.Context, p models.Product) (int, error) {
	p.ID = len(s.products) + len(s.inserted) + 1
	s.inserted = append(s.inserted, p)
	return p.ID, nil
}

func (s *stubProductRepo) Get(_ context.Context, id int) (models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Product{}, models.ErrNoRecord
}

func (s *stubProductRepo) All(_ context.Context) ([]models.Product, error) {
	return s.products, nil
}

func (s *stubProductRepo) Update(_ context.Context, p models.Product) error {
	s.updated = append(s.updated, p)
	return nil
}

func (s *stubProductRepo) Delete(_ context.Context, id int) error {
	if err, ok := s.deleteErr[id]; ok {
		return err
	}
	s.deleted = append(s.deleted, id)
	return nil
}

type orderInsert struct {
	userID   int
	placedAt time.Time
	status   string
	lines    []models.CartLine
}

type stubOrderRepo struct {
	inserts       []orderInsert
	all           []models.Order
	byUser        map[int][]models.Order
	byUserCalls   []int
	statusUpdates map[int]string
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		byUser:        map[int][]models.Order{},
		statusUpdates: map[int]string{},
	}
}

func (s *stubOrderRepo) Insert(_ context.Context, userID int, placedAt time.Time, status string, lines []models.CartLine) (int, error) {
	s.inserts = append(s.inserts, orderInsert{userID: userID, placedAt: placedAt, status: status, lines: lines})
	return len(s.inserts), nil
}

func (s *stubOrderRepo) AllForCustomers(_ context.Context) ([]models.Order, error) {
	return s.all, nil
}

func (s *stubOrderRepo) ByUser(_ context.Context, userID int) ([]models.Order, error) {
	s.byUserCalls = append(s.byUserCalls, userID)
	return s.byUser[userID], nil
}

func (s *stubOrderRepo) UpdateStatus(_ context.Context, orderID int, status string) error {
	s.statusUpdates[orderID] = status
	return nil
}
