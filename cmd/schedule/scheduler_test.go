package schedule_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/north-cloud/pattern-harvester/cmd/schedule"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/domain"
	"github.com/jonesrussell/north-cloud/pattern-harvester/internal/logger"
)

func TestNewScheduler_RejectsInvalidSpec(t *testing.T) {
	t.Parallel()

	noop := func(context.Context) error { return nil }

	for _, spec := range []string{"", "every day", "* * * *", "0 3 * * * *"} {
		_, err := schedule.NewScheduler(spec, noop, logger.NewNop())
		require.Error(t, err, spec)
		assert.Equal(t, domain.KindConfig, domain.KindOf(err), spec)
	}
}

func TestScheduler_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ran := make(chan struct{}, 1)
	s, err := schedule.NewScheduler("0 3 * * *", func(context.Context) error {
		ran <- struct{}{}
		return nil
	}, logger.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Start(ctx) }()

	cancel()
	select {
	case err = <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop after cancellation")
	}
	assert.Empty(t, ran)
}
