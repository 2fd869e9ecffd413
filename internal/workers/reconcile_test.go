package workers_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/roadwatch/roadwatch/internal/logger"
	"github.com/roadwatch/roadwatch/internal/mock"
	"github.com/roadwatch/roadwatch/internal/workers"
	"github.com/roadwatch/roadwatch/models"
)

func TestReconcileWorker_FetchesAndSubscribesOnStart(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncSvc := mock.NewMockSyncService(ctrl)

	fetched := make(chan struct{})
	subscribed := make(chan struct{})
	unsubscribed := false

	syncSvc.EXPECT().FetchAll(gomock.Any()).DoAndReturn(
		func(context.Context) ([]models.Report, error) {
			select {
			case <-fetched:
			default:
				close(fetched)
			}
			return []models.Report{{ID: "r-1"}}, nil
		}).AnyTimes()
	syncSvc.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, func([]models.ReportDiff), func(error)) (func(), error) {
			close(subscribed)
			return func() { unsubscribed = true }, nil
		})

	worker := workers.NewReconcileWorker(context.Background(), syncSvc, time.Hour, logger.Nop())
	worker.Run()

	select {
	case <-fetched:
	case <-time.After(time.Second):
		t.Fatal("worker never fetched")
	}
	select {
	case <-subscribed:
	case <-time.After(time.Second):
		t.Fatal("worker never subscribed")
	}

	worker.Stop()
	assert.True(t, unsubscribed, "Stop must tear down the subscription")
}

func TestReconcileWorker_AppliesIncomingDiffs(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncSvc := mock.NewMockSyncService(ctrl)

	var mu sync.Mutex
	var onDiffs func([]models.ReportDiff)
	applied := make(chan []models.ReportDiff, 1)

	syncSvc.EXPECT().FetchAll(gomock.Any()).Return([]models.Report{{ID: "r-1"}}, nil).AnyTimes()
	syncSvc.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cb func([]models.ReportDiff), _ func(error)) (func(), error) {
			mu.Lock()
			onDiffs = cb
			mu.Unlock()
			return func() {}, nil
		})
	syncSvc.EXPECT().ApplyDiffs(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, current map[string]models.Report, diffs []models.ReportDiff) ([]models.Report, error) {
			assert.Contains(t, current, "r-1")
			applied <- diffs
			return []models.Report{{ID: "r-1"}, {ID: "r-2"}}, nil
		})

	worker := workers.NewReconcileWorker(context.Background(), syncSvc, time.Hour, logger.Nop())
	worker.Run()
	defer worker.Stop()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return onDiffs != nil
	}, time.Second, 5*time.Millisecond)

	diffs := []models.ReportDiff{{Kind: models.DiffAdded, ID: "r-2", Report: models.Report{ID: "r-2"}}}
	mu.Lock()
	cb := onDiffs
	mu.Unlock()
	cb(diffs)

	select {
	case got := <-applied:
		assert.Equal(t, diffs, got)
	case <-time.After(time.Second):
		t.Fatal("diffs were never applied")
	}
}

func TestReconcileWorker_ResubscribesAfterStreamError(t *testing.T) {
	ctrl := gomock.NewController(t)
	syncSvc := mock.NewMockSyncService(ctrl)

	var mu sync.Mutex
	var onError func(error)
	subscriptions := 0
	resubscribed := make(chan struct{})

	syncSvc.EXPECT().FetchAll(gomock.Any()).Return(nil, nil).AnyTimes()
	syncSvc.EXPECT().Subscribe(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ func([]models.ReportDiff), cb func(error)) (func(), error) {
			mu.Lock()
			onError = cb
			subscriptions++
			if subscriptions == 2 {
				close(resubscribed)
			}
			mu.Unlock()
			return func() {}, nil
		}).Times(2)

	worker := workers.NewReconcileWorker(context.Background(), syncSvc, 10*time.Millisecond, logger.Nop())
	worker.Run()
	defer worker.Stop()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return onError != nil
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	cb := onError
	mu.Unlock()
	cb(errors.New("stream reset"))

	select {
	case <-resubscribed:
	case <-time.After(time.Second):
		t.Fatal("worker never resubscribed after stream error")
	}

	// a healthy stream is left alone on subsequent ticks
	time.Sleep(30 * time.Millisecond)
}
