package action

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchProcessesItemsInOrder(t *testing.T) {
	runner := NewRunner(time.Millisecond, time.Minute)

	var mu sync.Mutex
	var order []int

	batch := runner.Start(context.Background(), 3, func(_ context.Context, index int) (string, error) {
		mu.Lock()
		order = append(order, index)
		mu.Unlock()
		return fmt.Sprintf("image-%d", index), nil
	})
	<-batch.Done()

	mu.Lock()
	assert.Equal(t, []int{0, 1, 2}, order)
	mu.Unlock()

	snapshot := batch.Snapshot()
	assert.Equal(t, "succeeded", snapshot.Status)
	assert.Empty(t, snapshot.Error)
	assert.Equal(t, 3, snapshot.Completed)
	assert.Equal(t, map[int]string{0: "image-0", 1: "image-1", 2: "image-2"}, snapshot.Results)
}

func TestBatchFailureKeepsEarlierResults(t *testing.T) {
	runner := NewRunner(time.Millisecond, time.Minute)

	batch := runner.Start(context.Background(), 4, func(_ context.Context, index int) (string, error) {
		if index == 2 {
			return "", errors.New("generation failed")
		}
		return fmt.Sprintf("image-%d", index), nil
	})
	<-batch.Done()

	snapshot := batch.Snapshot()
	assert.Equal(t, "failed", snapshot.Status)
	assert.Equal(t, "generation failed", snapshot.Error)
	// Items before the failure keep their results; nothing after ran.
	assert.Equal(t, map[int]string{0: "image-0", 1: "image-1"}, snapshot.Results)
	assert.Equal(t, 2, snapshot.Completed)
}

func TestBatchSkipsEntryForEmptyResult(t *testing.T) {
	runner := NewRunner(time.Millisecond, time.Minute)

	batch := runner.Start(context.Background(), 3, func(_ context.Context, index int) (string, error) {
		if index == 1 {
			return "", nil // nothing usable came back for this item
		}
		return fmt.Sprintf("image-%d", index), nil
	})
	<-batch.Done()

	snapshot := batch.Snapshot()
	assert.Equal(t, "succeeded", snapshot.Status)
	assert.Equal(t, 3, snapshot.Completed)
	assert.Equal(t, map[int]string{0: "image-0", 2: "image-2"}, snapshot.Results)
}

func TestRunnerEvictsFinishedBatchesAfterRetention(t *testing.T) {
	runner := NewRunner(time.Millisecond, 10*time.Millisecond)

	var batches []*Batch
	for i := 0; i < 5; i++ {
		batch := runner.Start(context.Background(), 1, func(_ context.Context, _ int) (string, error) {
			return "image", nil
		})
		batches = append(batches, batch)
	}
	for _, batch := range batches {
		<-batch.Done()
	}

	// Inside the retention window a finished batch is still pollable.
	_, ok := runner.Get(batches[0].ID)
	require.True(t, ok)

	time.Sleep(25 * time.Millisecond)

	for _, batch := range batches {
		_, ok := runner.Get(batch.ID)
		assert.False(t, ok, "finished batch should be dropped once retention expires")
	}
}

func TestRunnerKeepsRunningBatchesPastRetention(t *testing.T) {
	runner := NewRunner(30*time.Millisecond, time.Millisecond)

	release := make(chan struct{})
	batch := runner.Start(context.Background(), 2, func(_ context.Context, index int) (string, error) {
		if index == 1 {
			<-release
		}
		return fmt.Sprintf("image-%d", index), nil
	})

	time.Sleep(10 * time.Millisecond)
	_, ok := runner.Get(batch.ID)
	assert.True(t, ok, "a batch still running must stay addressable")

	close(release)
	<-batch.Done()
}

func TestRunnerTracksBatchesByID(t *testing.T) {
	runner := NewRunner(time.Millisecond, time.Minute)

	batch := runner.Start(context.Background(), 1, func(_ context.Context, _ int) (string, error) {
		return "image", nil
	})
	<-batch.Done()

	found, ok := runner.Get(batch.ID)
	require.True(t, ok)
	assert.Equal(t, batch.ID, found.ID)

	_, ok = runner.Get("missing")
	assert.False(t, ok)
}
