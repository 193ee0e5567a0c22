package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"petshop/internal/domain"
)

var (
	ErrPetNotFound = errors.New("pet not found")
)

// PetFilter narrows a List call to pets matching one attribute exactly.
// A nil field means "do not filter on this attribute".
type PetFilter struct {
	Category  *string
	Name      *string
	Available *bool
}

// PetRepository defines the interface for pet data access
type PetRepository interface {
	Create(ctx context.Context, pet *domain.Pet) error
	Update(ctx context.Context, pet *domain.Pet) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Pet, error)
	List(ctx context.Context, filter PetFilter) ([]*domain.Pet, error)
}

type petRepository struct {
	db *sql.DB
}

// NewPetRepository creates a new instance of PetRepository
func NewPetRepository(db *sql.DB) PetRepository {
	return &petRepository{db: db}
}

// Create inserts a new pet and fills in the store-assigned id
func (r *petRepository) Create(ctx context.Context, pet *domain.Pet) error {
	query := `
		INSERT INTO pets (name, category, available)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		pet.Name,
		pet.Category,
		pet.Available,
	).Scan(&pet.ID)

	if err != nil {
		return fmt.Errorf("failed to create pet: %w", err)
	}

	return nil
}

// Update overwrites the editable fields of an existing pet
func (r *petRepository) Update(ctx context.Context, pet *domain.Pet) error {
	query := `
		UPDATE pets
		SET name = $2, category = $3, available = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		pet.ID,
		pet.Name,
		pet.Category,
		pet.Available,
	)

	if err != nil {
		return fmt.Errorf("failed to update pet: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPetNotFound
	}

	return nil
}

// Delete removes a pet from the database
func (r *petRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM pets WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete pet: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrPetNotFound
	}

	return nil
}

// FindByID retrieves a pet by its store-assigned id
func (r *petRepository) FindByID(ctx context.Context, id int64) (*domain.Pet, error) {
	query := `
		SELECT id, name, category, available
		FROM pets
		WHERE id = $1
	`

	pet := &domain.Pet{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&pet.ID,
		&pet.Name,
		&pet.Category,
		&pet.Available,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrPetNotFound
		}
		return nil, fmt.Errorf("failed to find pet by ID: %w", err)
	}

	return pet, nil
}

// List retrieves all pets, optionally narrowed by an exact-match filter
func (r *petRepository) List(ctx context.Context, filter PetFilter) ([]*domain.Pet, error) {
	// Build the WHERE clause
	whereClause := ""
	args := []interface{}{}
	argIndex := 1

	switch {
	case filter.Category != nil:
		whereClause = fmt.Sprintf("WHERE category = $%d", argIndex)
		args = append(args, *filter.Category)
	case filter.Name != nil:
		whereClause = fmt.Sprintf("WHERE name = $%d", argIndex)
		args = append(args, *filter.Name)
	case filter.Available != nil:
		whereClause = fmt.Sprintf("WHERE available = $%d", argIndex)
		args = append(args, *filter.Available)
	}

	query := fmt.Sprintf(`
		SELECT id, name, category, available
		FROM pets
		%s
		ORDER BY id
	`, whereClause)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list pets: %w", err)
	}
	defer rows.Close()

	pets := []*domain.Pet{}
	for rows.Next() {
		pet := &domain.Pet{}
		err := rows.Scan(
			&pet.ID,
			&pet.Name,
			&pet.Category,
			&pet.Available,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pet: %w", err)
		}
		pets = append(pets, pet)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pets: %w", err)
	}

	return pets, nil
}
