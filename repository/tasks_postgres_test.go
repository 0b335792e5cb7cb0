package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productivity/model"
)

type stubResult struct {
	affected int64
	err      error
}

func (r stubResult) LastInsertId() (int64, error) { return 0, errors.New("unsupported") }
func (r stubResult) RowsAffected() (int64, error) { return r.affected, r.err }

func TestAffectedOne(t *testing.T) {
	t.Run("one row", func(t *testing.T) {
		assert.NoError(t, affectedOne(stubResult{affected: 1}, "update task"))
	})

	t.Run("no rows", func(t *testing.T) {
		assert.ErrorIs(t, affectedOne(stubResult{}, "delete task"), model.ErrTaskNotFound)
	})

	t.Run("driver error is surfaced", func(t *testing.T) {
		driverErr := errors.New("connection reset")
		err := affectedOne(stubResult{err: driverErr}, "update task")
		require.Error(t, err)
		assert.ErrorIs(t, err, driverErr)
		assert.NotErrorIs(t, err, model.ErrTaskNotFound)
		assert.Contains(t, err.Error(), "update task")
	})
}
