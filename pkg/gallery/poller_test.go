package gallery

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/snap-party/snapparty/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoller_PullsImmediatelyOnStart(t *testing.T) {
	updates := make(chan []model.Photo, 1)
	poller := NewPoller(slog.Default(), time.Hour, func(ctx context.Context) ([]model.Photo, error) {
		return []model.Photo{{ID: 1}}, nil
	}, func(photos []model.Photo) {
		updates <- photos
	})

	poller.Start(context.Background())
	defer poller.Stop()

	select {
	case photos := <-updates:
		require.Len(t, photos, 1)
	case <-time.After(time.Second):
		t.Fatal("want an immediate pull on start")
	}
}

func TestPoller_RepullsOnInterval(t *testing.T) {
	var mu sync.Mutex
	pulls := 0
	updates := make(chan struct{}, 16)
	poller := NewPoller(slog.Default(), 10*time.Millisecond, func(ctx context.Context) ([]model.Photo, error) {
		mu.Lock()
		pulls++
		mu.Unlock()
		return nil, nil
	}, func([]model.Photo) {
		updates <- struct{}{}
	})

	poller.Start(context.Background())
	defer poller.Stop()

	for i := 0; i < 3; i++ {
		select {
		case <-updates:
		case <-time.After(time.Second):
			t.Fatal("want recurring pulls")
		}
	}

	mu.Lock()
	assert.GreaterOrEqual(t, pulls, 3)
	mu.Unlock()
}

func TestPoller_ManualRefresh(t *testing.T) {
	updates := make(chan struct{}, 16)
	poller := NewPoller(slog.Default(), time.Hour, func(ctx context.Context) ([]model.Photo, error) {
		return nil, nil
	}, func([]model.Photo) {
		updates <- struct{}{}
	})

	poller.Start(context.Background())
	defer poller.Stop()

	<-updates // initial pull

	poller.Refresh()

	select {
	case <-updates:
	case <-time.After(time.Second):
		t.Fatal("want an out-of-band pull on manual refresh")
	}
}

func TestPoller_FailedPullKeepsPolling(t *testing.T) {
	var mu sync.Mutex
	pulls := 0
	updated := make(chan struct{}, 1)
	poller := NewPoller(slog.Default(), time.Hour, func(ctx context.Context) ([]model.Photo, error) {
		mu.Lock()
		defer mu.Unlock()
		pulls++
		if pulls == 1 {
			return nil, errors.New("backend down")
		}
		return []model.Photo{{ID: 1}}, nil
	}, func([]model.Photo) {
		select {
		case updated <- struct{}{}:
		default:
		}
	})

	poller.Start(context.Background())
	defer poller.Stop()

	poller.Refresh()

	select {
	case <-updated:
	case <-time.After(time.Second):
		t.Fatal("a failed pull must not stop the poller")
	}
}

func TestPoller_StopCancelsRecurringPull(t *testing.T) {
	var mu sync.Mutex
	pulls := 0
	poller := NewPoller(slog.Default(), 5*time.Millisecond, func(ctx context.Context) ([]model.Photo, error) {
		mu.Lock()
		pulls++
		mu.Unlock()
		return nil, nil
	}, func([]model.Photo) {})

	poller.Start(context.Background())
	time.Sleep(20 * time.Millisecond)
	poller.Stop()

	mu.Lock()
	after := pulls
	mu.Unlock()
	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	assert.Equal(t, after, pulls, "no pulls after Stop")
	mu.Unlock()

	// stopping twice must not panic
	poller.Stop()
}

func TestPoller_StartTwiceIsNoop(t *testing.T) {
	poller := NewPoller(slog.Default(), time.Hour, func(ctx context.Context) ([]model.Photo, error) {
		return nil, nil
	}, func([]model.Photo) {})

	poller.Start(context.Background())
	poller.Start(context.Background())
	poller.Stop()
}
