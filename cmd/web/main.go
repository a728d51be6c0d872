package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"html/template"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"lutong_bahay/internal/models"
)

// Per-entity data access, so handlers never build SQL themselves and tests
// can substitute stubs.
type userRepository interface {
	Insert(ctx context.Context, fullName, username, email, password string, role int) (int, error)
	InsertCustomer(ctx context.Context, fullName, email string) (int, error)
	Authenticate(ctx context.Context, username, password string) (models.User, error)
	Customers(ctx context.Context) ([]models.User, error)
}

type productRepository interface {
	Insert(ctx context.Context, p models.Product) (int, error)
	Get(ctx context.Context, id int) (models.Product, error)
	All(ctx context.Context) ([]models.Product, error)
	Update(ctx context.Context, p models.Product) error
	Delete(ctx context.Context, id int) error
}

type orderRepository interface {
	Insert(ctx context.Context, userID int, placedAt time.Time, status string, lines []models.CartLine) (int, error)
	AllForCustomers(ctx context.Context) ([]models.Order, error)
	ByUser(ctx context.Context, userID int) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID int, status string) error
}

type application struct {
	errorLog      *log.Logger
	infoLog       *log.Logger
	session       *scs.SessionManager
	templateCache map[string]*template.Template
	uploadDir     string
	users         userRepository
	products      productRepository
	orders        orderRepository
}

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file")
	}
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL environment variable not found")
	}

	addr := flag.String("addr", ":4000", "HTTP network address")
	uploadDir := flag.String("upload-dir", "./ui/static/uploads", "Product image upload directory")
	flag.Parse()

	infoLog := log.New(os.Stdout, "INFO\t", log.Ldate|log.Ltime)
	errorLog := log.New(os.Stderr, "ERROR\t", log.Ldate|log.Ltime|log.Lshortfile)

	db, err := openDB(dsn)
	if err != nil {
		errorLog.Fatal(err)
	}
	defer db.Close()
	infoLog.Println("Connected to database!")

	if err := runMigrations(dsn); err != nil {
		errorLog.Fatal(err)
	}

	users := &models.UserModel{DB: db}
	if err := seedUsers(context.Background(), users, infoLog); err != nil {
		errorLog.Fatal(err)
	}

	templateCache, err := newTemplateCache("./ui/html")
	if err != nil {
		errorLog.Fatal(err)
	}

	session := scs.New()
	session.Lifetime = 12 * time.Hour

	app := &application{
		errorLog:      errorLog,
		infoLog:       infoLog,
		session:       session,
		templateCache: templateCache,
		uploadDir:     *uploadDir,
		users:         users,
		products:      &models.ProductModel{DB: db},
		orders:        &models.OrderModel{DB: db},
	}

	srv := &http.Server{
		Addr:     *addr,
		ErrorLog: errorLog,
		Handler:  app.routes(),
	}

	infoLog.Printf("Starting Lutong Bahay on %s", *addr)
	err = srv.ListenAndServe()
	errorLog.Fatal(err)
}

func openDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func runMigrations(dsn string) error {
	migrator, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	defer migrator.Close()

	if err := migrator.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// seedUsers creates the default admin and two demo customers on first boot.
func seedUsers(ctx context.Context, users *models.UserModel, infoLog *log.Logger) error {
	n, err := users.Count(ctx)
	if err != nil || n > 0 {
		return err
	}

	seed := []struct {
		fullName, username, email, password string
		role                                int
	}{
		{"Admin User", "admin", "admin@test.com", "adminpass", models.RoleAdmin},
		{"Juliana Ritz", "customer1", "juliana@test.com", "cust1pass", models.RoleCustomer},
		{"Julianne Curtis", "customer2", "julianne@test.com", "cust2pass", models.RoleCustomer},
	}
	for _, s := range seed {
		if _, err := users.Insert(ctx, s.fullName, s.username, s.email, s.password, s.role); err != nil {
			return err
		}
	}

	infoLog.Println("Seeded default users")
	return nil
}
