package repository

import (
	"context"
	"testing"
	"time"

	"statuscheck-backend/internal/models"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/require"
)

func TestJournalRepo_CreateAssignsServerTimestamp(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewJournalRepository(db)
	ctx := context.Background()

	created := time.Now()
	mock.ExpectQuery(`INSERT INTO journal_entries \(id, user_id, text\) VALUES \(\$1, \$2, \$3\) RETURNING created_at`).
		WithArgs("e1", "a", "feeling okay today").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(created))

	entry := &models.JournalEntry{ID: "e1", UserID: "a", Text: "feeling okay today"}
	require.NoError(t, r.Create(ctx, entry))
	require.Equal(t, created, entry.CreatedAt)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestJournalRepo_ListNewestFirst(t *testing.T) {
	db, mock := newDB(t)
	defer mock.Close()
	r := NewJournalRepository(db)
	ctx := context.Background()

	now := time.Now()
	mock.ExpectQuery(`SELECT id, user_id, text, created_at FROM journal_entries WHERE user_id = \$1 ORDER BY created_at DESC LIMIT \$2`).
		WithArgs("a", 50).
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_id", "text", "created_at"}).
			AddRow("e2", "a", "better now", now).
			AddRow("e1", "a", "feeling okay today", now.Add(-time.Minute)))

	entries, err := r.ListByUser(ctx, "a", 50)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "better now", entries[0].Text)

	require.NoError(t, mock.ExpectationsWereMet())
}
