package storage

import (
	"context"
	"fmt"

	"nuclight.org/dalbozz/internal/poll"
)

// ArchiveRepository stores polls after they were posted.
type ArchiveRepository struct {
	db *DB
}

func NewArchiveRepository(db *DB) *ArchiveRepository {
	return &ArchiveRepository{db: db}
}

// RecordPosted saves p with its games and sets p.ID.
func (r *ArchiveRepository) RecordPosted(ctx context.Context, p *poll.PostedPoll) error {
	tx, err := r.db.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO posted_polls (author_id, author_name, channel_id, message_id, posted_at)
		VALUES (?, ?, ?, ?, ?)
	`, p.Author.ID, p.Author.Name, p.ChannelID, p.MessageID, p.PostedAt.UTC())
	if err != nil {
		return fmt.Errorf("insert posted poll: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}

	for i, g := range p.Games {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO posted_poll_games (poll_id, position, icon, name)
			VALUES (?, ?, ?, ?)
		`, id, i, g.Icon, g.Name); err != nil {
			return fmt.Errorf("insert game %q: %w", g.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit posted poll: %w", err)
	}
	p.ID = id
	return nil
}

var _ poll.Archive = (*ArchiveRepository)(nil)
