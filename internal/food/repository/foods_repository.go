package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"radagast/internal/domain"
	apperrors "radagast/internal/errors"
)

// MySQLFoodRepository stores catalog items as a foods row plus one
// food_locations row per eligible location. Stock writes touch only the
// targeted rows and recompute the derived foods.in_stock flag from the
// post-write rows inside the same transaction, so concurrent toggles of
// different locations never lose each other's updates.
type MySQLFoodRepository struct {
	db *sql.DB
}

func NewMySQLFoodRepository(db *sql.DB) *MySQLFoodRepository {
	return &MySQLFoodRepository{db: db}
}

const foodColumns = "id, name, price, category, image, in_stock, created_at, updated_at"

func scanFood(row interface{ Scan(...interface{}) error }) (*domain.Food, error) {
	var f domain.Food
	var inStock bool
	err := row.Scan(&f.ID, &f.Name, &f.Price, &f.Category, &f.Image, &inStock, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	f.InStock = inStock
	return &f, nil
}

func (r *MySQLFoodRepository) FindAll(ctx context.Context) ([]domain.Food, error) {
	query := fmt.Sprintf("SELECT %s FROM foods ORDER BY created_at", foodColumns)
	return r.queryFoods(ctx, query)
}

func (r *MySQLFoodRepository) FindByCategory(ctx context.Context, category string) ([]domain.Food, error) {
	query := fmt.Sprintf("SELECT %s FROM foods WHERE category = ? ORDER BY created_at", foodColumns)
	return r.queryFoods(ctx, query, category)
}

func (r *MySQLFoodRepository) FindByIDs(ctx context.Context, ids []string) ([]domain.Food, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	query := fmt.Sprintf("SELECT %s FROM foods WHERE id IN (%s)", foodColumns, strings.Join(placeholders, ", "))
	return r.queryFoods(ctx, query, args...)
}

func (r *MySQLFoodRepository) queryFoods(ctx context.Context, query string, args ...interface{}) ([]domain.Food, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying foods: %w", err)
	}
	defer rows.Close()

	var foods []domain.Food
	for rows.Next() {
		f, err := scanFood(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning food row: %w", err)
		}
		foods = append(foods, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating food rows: %w", err)
	}

	return r.attachLocations(ctx, foods)
}

func (r *MySQLFoodRepository) attachLocations(ctx context.Context, foods []domain.Food) ([]domain.Food, error) {
	if len(foods) == 0 {
		return foods, nil
	}

	placeholders := make([]string, len(foods))
	args := make([]interface{}, len(foods))
	index := make(map[string]int, len(foods))
	for i := range foods {
		placeholders[i] = "?"
		args[i] = foods[i].ID
		index[foods[i].ID] = i
		foods[i].StockByLocation = make(map[domain.Location]bool)
	}

	query := fmt.Sprintf(
		"SELECT food_id, location, in_stock FROM food_locations WHERE food_id IN (%s) ORDER BY location",
		strings.Join(placeholders, ", "),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying food locations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var foodID, location string
		var inStock bool
		if err := rows.Scan(&foodID, &location, &inStock); err != nil {
			return nil, fmt.Errorf("scanning food location row: %w", err)
		}
		i := index[foodID]
		loc := domain.Location(location)
		foods[i].Locations = append(foods[i].Locations, loc)
		foods[i].StockByLocation[loc] = inStock
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating food location rows: %w", err)
	}

	return foods, nil
}

func (r *MySQLFoodRepository) FindByID(ctx context.Context, id string) (*domain.Food, error) {
	query := fmt.Sprintf("SELECT %s FROM foods WHERE id = ?", foodColumns)

	food, err := scanFood(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("food with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("querying food by id: %w", err)
	}

	foods, err := r.attachLocations(ctx, []domain.Food{*food})
	if err != nil {
		return nil, err
	}
	return &foods[0], nil
}

func (r *MySQLFoodRepository) Create(ctx context.Context, food *domain.Food) error {
	food.ID = uuid.New().String()
	now := time.Now().UTC()
	food.CreatedAt = now
	food.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO foods (id, name, price, category, image, in_stock, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		food.ID, food.Name, food.Price, food.Category, food.Image, food.InStock, food.CreatedAt, food.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting food: %w", err)
	}

	for _, loc := range food.Locations {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO food_locations (food_id, location, in_stock) VALUES (?, ?, ?)",
			food.ID, string(loc), food.StockByLocation[loc],
		)
		if err != nil {
			return fmt.Errorf("inserting food location: %w", err)
		}
	}

	return tx.Commit()
}

func (r *MySQLFoodRepository) UpdatePrice(ctx context.Context, id string, price float64) (*domain.Food, error) {
	return r.updateField(ctx, id, "price", price)
}

func (r *MySQLFoodRepository) UpdateName(ctx context.Context, id string, name string) (*domain.Food, error) {
	return r.updateField(ctx, id, "name", name)
}

func (r *MySQLFoodRepository) UpdateImage(ctx context.Context, id string, image string) (*domain.Food, error) {
	return r.updateField(ctx, id, "image", image)
}

func (r *MySQLFoodRepository) updateField(ctx context.Context, id, column string, value interface{}) (*domain.Food, error) {
	query := fmt.Sprintf("UPDATE foods SET %s = ?, updated_at = ? WHERE id = ?", column)

	if _, err := r.db.ExecContext(ctx, query, value, time.Now().UTC(), id); err != nil {
		return nil, fmt.Errorf("updating food %s: %w", column, err)
	}

	// FindByID distinguishes a missing row from an unchanged one; MySQL
	// reports zero affected rows for both.
	return r.FindByID(ctx, id)
}

func (r *MySQLFoodRepository) SetStock(ctx context.Context, id string, loc domain.Location, value bool) (*domain.Food, error) {
	return r.withStockTx(ctx, id, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM food_locations WHERE food_id = ? AND location = ?",
			id, string(loc),
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("checking food location: %w", err)
		}
		if exists == 0 {
			return apperrors.NewBadRequestError(fmt.Sprintf("food is not offered at location %s", loc))
		}

		_, err = tx.ExecContext(ctx,
			"UPDATE food_locations SET in_stock = ? WHERE food_id = ? AND location = ?",
			value, id, string(loc),
		)
		if err != nil {
			return fmt.Errorf("updating location stock: %w", err)
		}

		// Derived flag is recomputed from the rows as just written, never
		// from a value read earlier in the request.
		_, err = tx.ExecContext(ctx,
			`UPDATE foods
			 SET in_stock = (SELECT MAX(in_stock) FROM food_locations WHERE food_id = ?), updated_at = ?
			 WHERE id = ?`,
			id, time.Now().UTC(), id,
		)
		if err != nil {
			return fmt.Errorf("recomputing derived stock: %w", err)
		}
		return nil
	})
}

func (r *MySQLFoodRepository) SetStockAll(ctx context.Context, id string, value bool) (*domain.Food, error) {
	return r.withStockTx(ctx, id, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"UPDATE food_locations SET in_stock = ? WHERE food_id = ?",
			value, id,
		)
		if err != nil {
			return fmt.Errorf("updating all location stock: %w", err)
		}

		// Every location now agrees, so the OR equals the written value.
		_, err = tx.ExecContext(ctx,
			"UPDATE foods SET in_stock = ?, updated_at = ? WHERE id = ?",
			value, time.Now().UTC(), id,
		)
		if err != nil {
			return fmt.Errorf("updating derived stock: %w", err)
		}
		return nil
	})
}

// withStockTx locks the foods row, applies the stock mutation and reloads the
// item. The row lock serializes concurrent stock writes per item.
func (r *MySQLFoodRepository) withStockTx(ctx context.Context, id string, mutate func(tx *sql.Tx) error) (*domain.Food, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var locked string
	err = tx.QueryRowContext(ctx, "SELECT id FROM foods WHERE id = ? FOR UPDATE", id).Scan(&locked)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("food with id %s not found", id))
	}
	if err != nil {
		return nil, fmt.Errorf("locking food row: %w", err)
	}

	if err := mutate(tx); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing stock update: %w", err)
	}

	return r.FindByID(ctx, id)
}

func (r *MySQLFoodRepository) Delete(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM food_locations WHERE food_id = ?", id); err != nil {
		return fmt.Errorf("deleting food locations: %w", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM foods WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting food: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("food with id %s not found", id))
	}

	return tx.Commit()
}
