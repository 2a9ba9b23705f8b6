package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/account-ledger/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWorkerPoolProcessingService_ProcessOperation(t *testing.T) {
	ctx := context.Background()

	t.Run("ReturnsBaseResult", func(t *testing.T) {
		base := new(MockProcessingService)
		pool, err := NewWorkerPoolProcessingService(base, WorkerPoolConfig{Size: 2}, discardLogger())
		require.NoError(t, err)
		defer pool.Shutdown()

		ok := depositRequest(1, 100)
		failing := depositRequest(2, 100)
		baseErr := errors.New("apply failed")
		base.On("ProcessOperation", ctx, mock.MatchedBy(func(r *shared.OperationRequest) bool { return r.OperationID == ok.OperationID })).Return(nil).Once()
		base.On("ProcessOperation", ctx, mock.MatchedBy(func(r *shared.OperationRequest) bool { return r.OperationID == failing.OperationID })).Return(baseErr).Once()

		assert.NoError(t, pool.ProcessOperation(ctx, ok))
		assert.ErrorIs(t, pool.ProcessOperation(ctx, failing), baseErr)
		base.AssertExpectations(t)
	})

	t.Run("BoundsConcurrency", func(t *testing.T) {
		var inFlight, peak int32
		base := processingFunc(func(context.Context, *shared.OperationRequest) error {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return nil
		})
		pool, err := NewWorkerPoolProcessingService(base, WorkerPoolConfig{Size: 2}, discardLogger())
		require.NoError(t, err)
		defer pool.Shutdown()
		assert.Equal(t, 2, pool.Capacity())

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				assert.NoError(t, pool.ProcessOperation(ctx, depositRequest(id, 100)))
			}(int64(i + 1))
		}
		wg.Wait()
		assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
	})

	t.Run("CallerCancellation", func(t *testing.T) {
		release := make(chan struct{})
		base := processingFunc(func(context.Context, *shared.OperationRequest) error {
			<-release
			return nil
		})
		pool, err := NewWorkerPoolProcessingService(base, WorkerPoolConfig{Size: 1}, discardLogger())
		require.NoError(t, err)
		defer pool.Shutdown()
		defer close(release)

		cancelled, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		assert.ErrorIs(t, pool.ProcessOperation(cancelled, depositRequest(1, 100)), context.DeadlineExceeded)
	})

	t.Run("SubmitAfterShutdown", func(t *testing.T) {
		pool, err := NewWorkerPoolProcessingService(new(MockProcessingService), WorkerPoolConfig{Size: 1}, discardLogger())
		require.NoError(t, err)
		pool.Shutdown()

		assert.Error(t, pool.ProcessOperation(ctx, depositRequest(1, 100)))
	})
}

type processingFunc func(ctx context.Context, request *shared.OperationRequest) error

func (f processingFunc) ProcessOperation(ctx context.Context, request *shared.OperationRequest) error {
	return f(ctx, request)
}
