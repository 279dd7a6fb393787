package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/phonebook/internal/model"
	"github.com/deppfellow/phonebook/internal/server"
	"github.com/deppfellow/phonebook/internal/sqlerr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// PersonRepository reads and writes the persons table.
type PersonRepository struct {
	server *server.Server
}

func NewPersonRepository(s *server.Server) *PersonRepository {
	return &PersonRepository{server: s}
}

// parseID rejects identifiers the persons table could never hold.
func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %q: %v", sqlerr.ErrMalformedID, id, err)
	}
	return parsed, nil
}

func (r *PersonRepository) List(ctx context.Context) ([]model.Person, error) {
	stmt := `
		SELECT id, name, number
		FROM persons
		ORDER BY created_at, id
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("failed to execute list persons query: %w", err)
	}

	persons, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Person])
	if err != nil {
		return nil, fmt.Errorf("failed to collect rows from table:persons: %w", err)
	}

	return persons, nil
}

func (r *PersonRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.server.DB.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM persons`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count persons: %w", err)
	}
	return count, nil
}

func (r *PersonRepository) GetByID(ctx context.Context, id string) (*model.Person, error) {
	personID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	stmt := `
		SELECT id, name, number
		FROM persons
		WHERE id = @id
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{"id": personID})
	if err != nil {
		return nil, fmt.Errorf("failed to execute get person by id query for id=%s: %w", id, err)
	}

	person, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Person])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:persons: id=%s: %w", id, err)
	}

	return &person, nil
}

func (r *PersonRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.server.DB.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM persons WHERE name = @name)`,
		pgx.NamedArgs{"name": name},
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check person name %q: %w", name, err)
	}
	return exists, nil
}

func (r *PersonRepository) Create(ctx context.Context, payload *model.CreatePersonPayload) (*model.Person, error) {
	stmt := `
		INSERT INTO persons (name, number)
		VALUES (@name, @number)
		RETURNING id, name, number
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"name":   payload.Name,
		"number": payload.Number,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute create person query: %w", err)
	}

	person, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Person])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:persons: %w", err)
	}

	return &person, nil
}

func (r *PersonRepository) Update(ctx context.Context, payload *model.UpdatePersonPayload) (*model.Person, error) {
	personID, err := parseID(payload.ID)
	if err != nil {
		return nil, err
	}

	stmt := `
		UPDATE persons
		SET name = @name, number = @number, updated_at = NOW()
		WHERE id = @id
		RETURNING id, name, number
	`

	rows, err := r.server.DB.Pool.Query(ctx, stmt, pgx.NamedArgs{
		"id":     personID,
		"name":   payload.Name,
		"number": payload.Number,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to execute update person query for id=%s: %w", payload.ID, err)
	}

	person, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[model.Person])
	if err != nil {
		return nil, fmt.Errorf("failed to collect row from table:persons: id=%s: %w", payload.ID, err)
	}

	return &person, nil
}

func (r *PersonRepository) Delete(ctx context.Context, id string) error {
	personID, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := r.server.DB.Pool.Exec(ctx, `DELETE FROM persons WHERE id = @id`, pgx.NamedArgs{"id": personID})
	if err != nil {
		return fmt.Errorf("failed to execute delete person query for id=%s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("failed to delete from table:persons: id=%s: %w", id, pgx.ErrNoRows)
	}

	return nil
}
