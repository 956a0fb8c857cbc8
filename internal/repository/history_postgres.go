package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/repository/sqlc"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// HistoryRepository defines the interface for history item persistence
type HistoryRepository interface {
	Create(ctx context.Context, item entity.HistoryItem) (*entity.HistoryItem, error)
	// List returns the items of a user, newest first
	List(ctx context.Context, userID string, skip, limit int) ([]*entity.HistoryItem, error)
	Get(ctx context.Context, userID, id string) (*entity.HistoryItem, error)
	Delete(ctx context.Context, userID, id string) error
}

var _ HistoryRepository = &HistoryPostgres{}

// HistoryPostgres implements HistoryRepository using PostgreSQL with sqlc
type HistoryPostgres struct {
	db      *pgxpool.Pool
	queries *sqlc.Queries
}

func NewHistoryPostgres(db *pgxpool.Pool) *HistoryPostgres {
	return &HistoryPostgres{
		db:      db,
		queries: sqlc.New(db),
	}
}

func (r *HistoryPostgres) Create(ctx context.Context, item entity.HistoryItem) (*entity.HistoryItem, error) {
	itemID, err := toPgUUID(item.ID)
	if err != nil {
		return nil, fmt.Errorf("parse history item ID: %w", err)
	}
	userID, err := toPgUUID(item.UserID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	preferences, err := json.Marshal(item.Preferences)
	if err != nil {
		return nil, fmt.Errorf("marshal preferences: %w", err)
	}
	suggestions, err := json.Marshal(item.Suggestions)
	if err != nil {
		return nil, fmt.Errorf("marshal suggestions: %w", err)
	}

	result, err := r.queries.CreateHistoryItem(ctx, sqlc.CreateHistoryItemParams{
		ID:          itemID,
		UserID:      userID,
		Preferences: preferences,
		Suggestions: suggestions,
	})
	if err != nil {
		return nil, fmt.Errorf("create history item: %w", err)
	}

	return toEntityHistoryItem(&result)
}

func (r *HistoryPostgres) List(ctx context.Context, userID string, skip, limit int) ([]*entity.HistoryItem, error) {
	uid, err := toPgUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}

	results, err := r.queries.ListHistoryItems(ctx, sqlc.ListHistoryItemsParams{
		UserID: uid,
		Limit:  int32(limit),
		Offset: int32(skip),
	})
	if err != nil {
		return nil, fmt.Errorf("list history items: %w", err)
	}

	items := make([]*entity.HistoryItem, 0, len(results))
	for i := range results {
		item, err := toEntityHistoryItem(&results[i])
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

func (r *HistoryPostgres) Get(ctx context.Context, userID, id string) (*entity.HistoryItem, error) {
	uid, err := toPgUUID(userID)
	if err != nil {
		return nil, fmt.Errorf("parse user ID: %w", err)
	}
	itemID, err := toPgUUID(id)
	if err != nil {
		return nil, entity.ErrHistoryNotFound
	}

	result, err := r.queries.GetHistoryItem(ctx, sqlc.GetHistoryItemParams{ID: itemID, UserID: uid})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrHistoryNotFound
		}
		return nil, fmt.Errorf("get history item: %w", err)
	}

	return toEntityHistoryItem(&result)
}

func (r *HistoryPostgres) Delete(ctx context.Context, userID, id string) error {
	uid, err := toPgUUID(userID)
	if err != nil {
		return fmt.Errorf("parse user ID: %w", err)
	}
	itemID, err := toPgUUID(id)
	if err != nil {
		return entity.ErrHistoryNotFound
	}

	affected, err := r.queries.DeleteHistoryItem(ctx, sqlc.DeleteHistoryItemParams{ID: itemID, UserID: uid})
	if err != nil {
		return fmt.Errorf("delete history item: %w", err)
	}
	if affected == 0 {
		return entity.ErrHistoryNotFound
	}

	return nil
}
