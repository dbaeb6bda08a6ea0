package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refurnish/refurnish-backend/internal/canvas/domain"
)

func setupStateRepo(t *testing.T) (*StateRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	repo := NewStateRepository(db)
	return repo, mock, db
}

func TestStateRepository_Upsert(t *testing.T) {
	repo, mock, db := setupStateRepo(t)
	defer db.Close()

	t.Run("inserts new state", func(t *testing.T) {
		state := &domain.State{
			ProjectID: 7,
			State:     json.RawMessage(`{"objects":[]}`),
			Zoom:      1.25,
		}

		mock.ExpectQuery(`INSERT INTO canvas_states`).
			WithArgs(int64(7), []byte(`{"objects":[]}`), 1.25).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

		err := repo.Upsert(context.Background(), state)
		require.NoError(t, err)
		assert.False(t, state.UpdatedAt.IsZero())

		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("second save for the same project hits the same statement", func(t *testing.T) {
		state := &domain.State{
			ProjectID: 7,
			State:     json.RawMessage(`{"objects":[{"type":"rect"}]}`),
			Zoom:      1.0,
		}

		mock.ExpectQuery(`INSERT INTO canvas_states`).
			WithArgs(int64(7), []byte(`{"objects":[{"type":"rect"}]}`), 1.0).
			WillReturnRows(sqlmock.NewRows([]string{"updated_at"}).AddRow(time.Now()))

		err := repo.Upsert(context.Background(), state)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rejects invalid JSON without touching the database", func(t *testing.T) {
		state := &domain.State{
			ProjectID: 7,
			State:     json.RawMessage(`{not json`),
			Zoom:      1.0,
		}

		err := repo.Upsert(context.Background(), state)
		assert.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestStateRepository_Get(t *testing.T) {
	repo, mock, db := setupStateRepo(t)
	defer db.Close()

	t.Run("gets state", func(t *testing.T) {
		mock.ExpectQuery(`SELECT state, zoom, updated_at`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows([]string{"state", "zoom", "updated_at"}).
				AddRow([]byte(`{"objects":[]}`), 0.5, time.Now()))

		st, err := repo.Get(context.Background(), 7)
		require.NoError(t, err)
		assert.Equal(t, int64(7), st.ProjectID)
		assert.JSONEq(t, `{"objects":[]}`, string(st.State))
		assert.Equal(t, 0.5, st.Zoom)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to ErrStateNotFound", func(t *testing.T) {
		mock.ExpectQuery(`SELECT state, zoom, updated_at`).
			WithArgs(int64(404)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(context.Background(), 404)
		assert.ErrorIs(t, err, domain.ErrStateNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
