package retrier

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_SucceedsFirstTry(t *testing.T) {
	r := New(3, time.Millisecond, 10*time.Millisecond)

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_RetriesUntilSuccess(t *testing.T) {
	r := New(5, time.Millisecond, 5*time.Millisecond)

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("transient")
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_ExhaustsBudget(t *testing.T) {
	r := New(2, time.Millisecond, 5*time.Millisecond)

	calls := 0
	err := r.Do(context.Background(), func(context.Context) error {
		calls++
		return errors.New("permanent")
	})
	require.Error(t, err)
	assert.Equal(t, 3, calls, "initial attempt plus two retries")
}

func TestDo_ContextCancelled(t *testing.T) {
	r := New(5, 50*time.Millisecond, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Do(ctx, func(context.Context) error {
		return errors.New("always fails")
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDoWithData(t *testing.T) {
	r := New(3, time.Millisecond, 5*time.Millisecond)

	calls := 0
	got, err := DoWithData(r, context.Background(), func(context.Context) (int, error) {
		calls++
		if calls < 2 {
			return 0, errors.New("transient")
		}
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
}

func TestNew_Defaults(t *testing.T) {
	r := New(0, 0, 0)
	assert.Equal(t, 3, r.maxRetries)
	assert.Equal(t, time.Second, r.initialInterval)
	assert.Equal(t, 30*time.Second, r.maxInterval)
}
