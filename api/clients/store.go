package clients

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/casenote/casenote/api/custom_errors"
	"github.com/casenote/casenote/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

type Store interface {
	CreateClient(ctx context.Context, body CreateClientBody, createdBy int64) (database.Client, error)
	GetClient(ctx context.Context, clientID int64) (database.Client, error)
	ListClients(ctx context.Context, status string, limit, offset int) ([]database.Client, error)
	UpdateClient(ctx context.Context, clientID int64, body UpdateClientBody) (database.Client, error)
}

const UniqueViolationCode = "23505"

type Repository struct {
	queries *database.Queries
}

func NewClientStore(queries *database.Queries) *Repository {
	return &Repository{queries: queries}
}

func (r *Repository) CreateClient(ctx context.Context, body CreateClientBody, createdBy int64) (database.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	fileNumber := pgtype.Text{}
	if body.FileNumber != "" {
		fileNumber = pgtype.Text{String: body.FileNumber, Valid: true}
	}

	client, err := r.queries.CreateClient(ctx, database.CreateClientParams{
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		FileNumber: fileNumber,
		CreatedBy:  createdBy,
	})
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == UniqueViolationCode {
			return database.Client{}, custom_errors.ErrConflict
		}
		return database.Client{}, fmt.Errorf("error creating client: %v", err)
	}

	return client, nil
}

func (r *Repository) GetClient(ctx context.Context, clientID int64) (database.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := r.queries.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Client{}, custom_errors.ErrNotFound
		}
		return database.Client{}, fmt.Errorf("error getting client: %v", err)
	}

	return client, nil
}

func (r *Repository) ListClients(ctx context.Context, status string, limit, offset int) ([]database.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	statusParam := pgtype.Text{}
	if status != "" {
		statusParam = pgtype.Text{String: status, Valid: true}
	}

	clients, err := r.queries.ListClients(ctx, database.ListClientsParams{
		Status: statusParam,
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, fmt.Errorf("error listing clients: %v", err)
	}

	return clients, nil
}

func (r *Repository) UpdateClient(ctx context.Context, clientID int64, body UpdateClientBody) (database.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	params := database.UpdateClientParams{ID: clientID}
	if body.FirstName != "" {
		params.FirstName = pgtype.Text{String: body.FirstName, Valid: true}
	}
	if body.LastName != "" {
		params.LastName = pgtype.Text{String: body.LastName, Valid: true}
	}
	if body.FileNumber != "" {
		params.FileNumber = pgtype.Text{String: body.FileNumber, Valid: true}
	}
	if body.Status != "" {
		params.Status = pgtype.Text{String: body.Status, Valid: true}
	}

	client, err := r.queries.UpdateClient(ctx, params)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return database.Client{}, custom_errors.ErrNotFound
		}
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == UniqueViolationCode {
			return database.Client{}, custom_errors.ErrConflict
		}
		return database.Client{}, fmt.Errorf("error updating client: %v", err)
	}

	return client, nil
}
