package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nuclight.org/dalbozz/internal/poll"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(filepath.Join(t.TempDir(), "archive.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.Migrate()
	require.NoError(t, err)
	return db
}

// loadPosted reads an archived poll back with its games.
func loadPosted(t *testing.T, db *DB, id int64) *poll.PostedPoll {
	t.Helper()
	p := &poll.PostedPoll{ID: id}
	err := db.db.QueryRow(`
		SELECT author_id, author_name, channel_id, message_id, posted_at
		FROM posted_polls WHERE id = ?
	`, id).Scan(&p.Author.ID, &p.Author.Name, &p.ChannelID, &p.MessageID, &p.PostedAt)
	require.NoError(t, err)

	games, err := NewArchiveRepository(db).games(context.Background(), id)
	require.NoError(t, err)
	p.Games = games
	return p
}

func TestArchiveRepository_RecordPosted(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArchiveRepository(db)
	ctx := context.Background()

	p := &poll.PostedPoll{
		Author:    poll.User{ID: "100", Name: "alice"},
		ChannelID: "C",
		MessageID: "M1",
		Games:     []poll.Game{{Name: "Chess", Icon: "🇦"}, {Name: "Go", Icon: "🇧"}},
		PostedAt:  time.Date(2025, 2, 1, 19, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.RecordPosted(ctx, p))
	assert.NotZero(t, p.ID)

	got := loadPosted(t, db, p.ID)
	assert.Equal(t, p.Author, got.Author)
	assert.Equal(t, "C", got.ChannelID)
	assert.Equal(t, "M1", got.MessageID)
	assert.Equal(t, p.Games, got.Games)
	assert.True(t, p.PostedAt.Equal(got.PostedAt), "posted_at = %v, want %v", got.PostedAt, p.PostedAt)
}

func TestArchiveRepository_RecordPosted_NoGames(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArchiveRepository(db)

	p := &poll.PostedPoll{
		Author:    poll.User{ID: "100", Name: "alice"},
		ChannelID: "C",
		MessageID: "M1",
		PostedAt:  time.Now(),
	}
	require.NoError(t, repo.RecordPosted(context.Background(), p))

	assert.Empty(t, loadPosted(t, db, p.ID).Games)
}

func TestArchiveRepository_RecordPosted_Sequential(t *testing.T) {
	db := setupTestDB(t)
	repo := NewArchiveRepository(db)
	ctx := context.Background()

	var ids []int64
	for i, channel := range []string{"C", "D", "C"} {
		p := &poll.PostedPoll{
			Author:    poll.User{ID: "100", Name: "alice"},
			ChannelID: channel,
			MessageID: "M" + string(rune('0'+i)),
			Games:     []poll.Game{{Name: "Catan", Icon: "🇦"}},
			PostedAt:  time.Now(),
		}
		require.NoError(t, repo.RecordPosted(ctx, p))
		ids = append(ids, p.ID)
	}

	assert.Len(t, ids, 3)
	assert.Less(t, ids[0], ids[1])
	assert.Less(t, ids[1], ids[2])

	var count int
	require.NoError(t, db.db.QueryRow("SELECT COUNT(*) FROM posted_poll_games").Scan(&count))
	assert.Equal(t, 3, count)
	assert.Equal(t, "M2", loadPosted(t, db, ids[2]).MessageID)
}
