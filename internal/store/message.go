package store

import (
	"context"
	"fmt"
	"time"

	"karma/internal/utils"
	"karma/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const messageTableName = "karma.messages"

var messageColumns = utils.StructTagValues(types.Message{})

type MessageRepository struct {
	pool *pgxpool.Pool
}

func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// MessagesForUser returns every message the user sent or received, oldest
// first.
func (r *MessageRepository) MessagesForUser(ctx context.Context, userID string) ([]*types.Message, error) {
	query, args, err := psql().
		Select(messageColumns...).
		From(messageTableName).
		Where(sq.Or{sq.Eq{"sender_id": userID}, sq.Eq{"recipient_id": userID}}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate messages query: %w", err)
	}

	var messages []*types.Message
	err = pgxscan.Select(ctx, r.pool, &messages, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	return messages, nil
}

func (r *MessageRepository) Create(ctx context.Context, message *types.Message) error {
	if message.ID == "" {
		message.ID = utils.NanoID()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	query, args, err := psql().
		Insert(messageTableName).
		SetMap(utils.StructToMap(message)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert message query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create message")
}
