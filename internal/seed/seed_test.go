package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harsha-bonthu/pt2/internal/store"
	"github.com/Harsha-bonthu/pt2/internal/testutil"
)

func TestRunSeedsOnce(t *testing.T) {
	ctx := context.Background()
	st := store.New(testutil.NewDB(t))

	seeded, err := Run(ctx, st)
	require.NoError(t, err)
	assert.True(t, seeded)

	employees, err := st.ListEmployees(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, "alice@example.com", employees[0].Email)
	require.Len(t, employees[0].Tasks, 1)
	assert.Equal(t, "done", employees[0].Tasks[0].Status)

	seeded, err = Run(ctx, st)
	require.NoError(t, err)
	assert.False(t, seeded)

	count, err := st.CountEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
