package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration test database. Tests are skipped when no
// MySQL instance named 'radagast_test' is reachable on localhost:3306.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/radagast_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"order_items", "orders", "food_locations", "foods", "categories"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createCategoriesTable := `
	CREATE TABLE IF NOT EXISTS categories (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(100) NOT NULL UNIQUE,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL
	)`

	createFoodsTable := `
	CREATE TABLE IF NOT EXISTS foods (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		category VARCHAR(100) NOT NULL,
		image VARCHAR(255) NOT NULL DEFAULT '',
		in_stock TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		updated_at DATETIME NOT NULL,
		INDEX idx_category (category)
	)`

	createFoodLocationsTable := `
	CREATE TABLE IF NOT EXISTS food_locations (
		food_id VARCHAR(36) NOT NULL,
		location VARCHAR(100) NOT NULL,
		in_stock TINYINT(1) NOT NULL DEFAULT 1,
		PRIMARY KEY (food_id, location),
		FOREIGN KEY (food_id) REFERENCES foods(id) ON DELETE CASCADE
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id VARCHAR(36) NOT NULL PRIMARY KEY,
		phone_number VARCHAR(20) NOT NULL,
		total DECIMAL(10,2) NOT NULL,
		delivery_method VARCHAR(20) NOT NULL,
		address VARCHAR(255),
		payment_method VARCHAR(20) NOT NULL,
		location VARCHAR(100) NOT NULL,
		status VARCHAR(20) NOT NULL,
		status_changed_at DATETIME,
		created_at DATETIME NOT NULL,
		INDEX idx_location (location)
	)`

	createOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS order_items (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_id VARCHAR(36) NOT NULL,
		food_id VARCHAR(36) NOT NULL,
		quantity INT NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		INDEX idx_order (order_id)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"categories", createCategoriesTable},
		{"foods", createFoodsTable},
		{"food_locations", createFoodLocationsTable},
		{"orders", createOrdersTable},
		{"order_items", createOrderItemsTable},
	}

	for _, tbl := range tables {
		if _, err := db.Exec(tbl.query); err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
