package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

type seedFilm struct {
	title       string
	description string
	releaseYear int
	rentalRate  float64
	length      int
	rating      string
	category    string
	copies      int
}

type seedActor struct {
	firstName string
	lastName  string
	birthDate string
}

type seedCustomer struct {
	firstName string
	lastName  string
	email     string
	phone     string
	address   string
}

func main() {
	fmt.Println("========================================")
	fmt.Println("   Seed Database with Demo Data")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("⚠️  WARNING: This will DELETE ALL EXISTING DATA!")
	fmt.Println()
	fmt.Println("This will:")
	fmt.Println("  - Truncate users, customers, films, actors, inventory, rentals, payments")
	fmt.Println("  - Reset all ID sequences")
	fmt.Println("  - Insert the demo catalog and a manager account")
	fmt.Println()
	fmt.Print("Type 'yes' to confirm: ")

	var confirm string
	fmt.Scanln(&confirm)

	if confirm != "yes" {
		fmt.Println("Seed cancelled.")
		return
	}

	// Load environment variables
	godotenv.Load()

	dbHost := getEnv("DB_HOST", "localhost")
	dbPort := getEnv("DB_PORT", "5432")
	dbUser := getEnv("DB_USER", "postgres")
	dbPassword := getEnv("DB_PASSWORD", "postgres")
	dbName := getEnv("DB_NAME", "video_rental")

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		dbUser, dbPassword, dbHost, dbPort, dbName)

	pool, err := pgxpool.New(context.Background(), connStr)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}
	defer pool.Close()

	fmt.Println()
	fmt.Println("🔄 Seeding database...")

	ctx := context.Background()

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v\n", err)
	}
	defer tx.Rollback(ctx)

	// Truncate all tables
	tables := []string{
		"payments",
		"rentals",
		"inventory",
		"film_actors",
		"actors",
		"films",
		"customers",
		"users",
	}

	for _, table := range tables {
		_, err = tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			log.Fatalf("Failed to truncate %s: %v\n", table, err)
		}
		fmt.Printf("  ✓ Cleared %s\n", table)
	}

	// Reset sequences
	sequences := []string{
		"users_id_seq",
		"customers_customer_id_seq",
		"films_film_id_seq",
		"actors_actor_id_seq",
		"inventory_inventory_id_seq",
		"rentals_rental_id_seq",
		"payments_payment_id_seq",
	}

	for _, seq := range sequences {
		_, err = tx.Exec(ctx, fmt.Sprintf("ALTER SEQUENCE %s RESTART WITH 1", seq))
		if err != nil {
			log.Printf("Warning: Failed to reset sequence %s: %v\n", seq, err)
		}
	}
	fmt.Println("  ✓ Reset ID sequences")

	// Default manager account
	// Password: admin123
	_, err = tx.Exec(ctx, `
		INSERT INTO users (email, password_hash, name, role, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())`,
		"manager@videostore.com",
		"$2a$10$N9qo8uLOickgx2ZMRZoMye7U4hWJQbFlLwt7xW.hQOKvH8QhPVN8S",
		"Store Manager",
		"manager",
	)
	if err != nil {
		log.Fatalf("Failed to create manager user: %v\n", err)
	}
	fmt.Println("  ✓ Created manager user")

	if err := seedCatalog(ctx, tx); err != nil {
		log.Fatalf("Failed to seed catalog: %v\n", err)
	}

	if err := seedCustomers(ctx, tx); err != nil {
		log.Fatalf("Failed to seed customers: %v\n", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit transaction: %v\n", err)
	}

	fmt.Println()
	fmt.Println("✅ Database seeded successfully!")
	fmt.Println()
	fmt.Println("Default credentials:")
	fmt.Println("  Email:    manager@videostore.com")
	fmt.Println("  Password: admin123")
}

func seedCatalog(ctx context.Context, tx pgx.Tx) error {
	films := []seedFilm{
		{"The Shawshank Redemption", "Two imprisoned men bond over a number of years, finding solace and eventual redemption through acts of common decency.", 1994, 3.99, 142, "R", "Drama", 5},
		{"The Godfather", "The aging patriarch of an organized crime dynasty transfers control of his clandestine empire to his reluctant son.", 1972, 4.99, 175, "R", "Crime", 4},
		{"The Dark Knight", "When the menace known as the Joker wreaks havoc and chaos on the people of Gotham, Batman must accept one of the greatest psychological and physical tests.", 2008, 3.99, 152, "PG-13", "Action", 6},
		{"Pulp Fiction", "The lives of two mob hitmen, a boxer, a gangster and his wife intertwine in four tales of violence and redemption.", 1994, 3.99, 154, "R", "Crime", 3},
		{"Forrest Gump", "The presidencies of Kennedy and Johnson unfold through the perspective of an Alabama man with an IQ of 75.", 1994, 2.99, 142, "PG-13", "Drama", 5},
		{"Inception", "A thief who steals corporate secrets through the use of dream-sharing technology is given the inverse task of planting an idea.", 2010, 3.99, 148, "PG-13", "Sci-Fi", 7},
		{"The Matrix", "A computer hacker learns from mysterious rebels about the true nature of his reality and his role in the war against its controllers.", 1999, 2.99, 136, "R", "Sci-Fi", 4},
		{"Goodfellas", "The story of Henry Hill and his life in the mob, covering his relationship with his wife Karen Hill and his mob partners.", 1990, 3.99, 146, "R", "Crime", 3},
		{"Interstellar", "A team of explorers travel through a wormhole in space in an attempt to ensure humanity's survival.", 2014, 4.99, 169, "PG-13", "Sci-Fi", 5},
		{"The Silence of the Lambs", "A young FBI cadet must receive the help of an incarcerated and manipulative cannibal killer to help catch another serial killer.", 1991, 3.99, 118, "R", "Thriller", 4},
	}

	for _, f := range films {
		var filmID int
		err := tx.QueryRow(ctx, `
			INSERT INTO films (title, description, release_year, rental_rate, length, rating, category)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING film_id`,
			f.title, f.description, f.releaseYear, f.rentalRate, f.length, f.rating, f.category,
		).Scan(&filmID)
		if err != nil {
			return fmt.Errorf("insert film %q: %w", f.title, err)
		}
		for i := 0; i < f.copies; i++ {
			if _, err := tx.Exec(ctx,
				"INSERT INTO inventory (film_id, store_id) VALUES ($1, 1)", filmID); err != nil {
				return fmt.Errorf("insert inventory for %q: %w", f.title, err)
			}
		}
	}
	fmt.Printf("  ✓ Inserted %d films with inventory\n", len(films))

	actors := []seedActor{
		{"Tim", "Robbins", "1958-10-16"},
		{"Morgan", "Freeman", "1937-06-01"},
		{"Marlon", "Brando", "1924-04-03"},
		{"Al", "Pacino", "1940-04-25"},
		{"Christian", "Bale", "1974-01-30"},
		{"Heath", "Ledger", "1979-04-04"},
		{"John", "Travolta", "1954-02-18"},
		{"Samuel L.", "Jackson", "1948-12-21"},
		{"Tom", "Hanks", "1956-07-09"},
		{"Leonardo", "DiCaprio", "1974-11-11"},
		{"Keanu", "Reeves", "1964-09-02"},
		{"Robert", "De Niro", "1943-08-17"},
		{"Matthew", "McConaughey", "1969-11-04"},
		{"Jodie", "Foster", "1962-11-19"},
		{"Anthony", "Hopkins", "1937-12-31"},
	}

	for _, a := range actors {
		if _, err := tx.Exec(ctx, `
			INSERT INTO actors (first_name, last_name, birth_date)
			VALUES ($1, $2, $3)`,
			a.firstName, a.lastName, a.birthDate); err != nil {
			return fmt.Errorf("insert actor %s %s: %w", a.firstName, a.lastName, err)
		}
	}
	fmt.Printf("  ✓ Inserted %d actors\n", len(actors))

	// film_id, actor_id pairs; IDs match insertion order after the sequence reset
	links := [][2]int{
		{1, 1}, {1, 2},
		{2, 3}, {2, 4},
		{3, 5}, {3, 6},
		{4, 7}, {4, 8},
		{5, 9},
		{6, 10},
		{7, 11},
		{8, 12},
		{9, 13},
		{10, 14}, {10, 15},
	}

	for _, l := range links {
		if _, err := tx.Exec(ctx,
			"INSERT INTO film_actors (film_id, actor_id) VALUES ($1, $2)", l[0], l[1]); err != nil {
			return fmt.Errorf("link film %d to actor %d: %w", l[0], l[1], err)
		}
	}
	fmt.Printf("  ✓ Inserted %d film-actor links\n", len(links))

	return nil
}

func seedCustomers(ctx context.Context, tx pgx.Tx) error {
	customers := []seedCustomer{
		{"John", "Doe", "john.doe@email.com", "555-0101", "123 Main St, New York, NY 10001"},
		{"Jane", "Smith", "jane.smith@email.com", "555-0102", "456 Oak Ave, Los Angeles, CA 90001"},
		{"Michael", "Johnson", "michael.j@email.com", "555-0103", "789 Pine Rd, Chicago, IL 60601"},
		{"Emily", "Williams", "emily.w@email.com", "555-0104", "321 Elm St, Houston, TX 77001"},
		{"David", "Brown", "david.brown@email.com", "555-0105", "654 Maple Dr, Phoenix, AZ 85001"},
		{"Sarah", "Davis", "sarah.davis@email.com", "555-0106", "987 Cedar Ln, Philadelphia, PA 19101"},
		{"Robert", "Miller", "robert.m@email.com", "555-0107", "147 Birch Ct, San Antonio, TX 78201"},
		{"Lisa", "Wilson", "lisa.wilson@email.com", "555-0108", "258 Walnut St, San Diego, CA 92101"},
	}

	for _, c := range customers {
		if _, err := tx.Exec(ctx, `
			INSERT INTO customers (first_name, last_name, email, phone, address)
			VALUES ($1, $2, $3, $4, $5)`,
			c.firstName, c.lastName, c.email, c.phone, c.address); err != nil {
			return fmt.Errorf("insert customer %s: %w", c.email, err)
		}
	}
	fmt.Printf("  ✓ Inserted %d customers\n", len(customers))

	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
