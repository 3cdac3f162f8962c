package trainer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"rlgridviz/pkg/snapshot"
)

// mockClient implements Client without touching the network
type mockClient struct {
	mu         sync.Mutex
	trainCalls int
	trainErr   error
	entered    chan struct{} // closed signal per Train entry, if set
	release    chan struct{} // Train blocks on this, if set
}

func (m *mockClient) snapshotForCall(call int) *snapshot.Snapshot {
	history := make([]float64, call*10)
	for i := range history {
		history[i] = -50 + float64(i)
	}
	return &snapshot.Snapshot{
		Grid: snapshot.Grid{
			H: 2, W: 2,
			Start: snapshot.Cell{Row: 0, Col: 0},
			Goal:  snapshot.Cell{Row: 1, Col: 1},
			Walls: map[snapshot.Cell]bool{},
		},
		Episode:       call * 10,
		RewardHistory: history,
	}
}

func (m *mockClient) State(ctx context.Context) (*snapshot.Snapshot, error) {
	return m.snapshotForCall(0), nil
}

func (m *mockClient) Train(ctx context.Context, req TrainRequest) (*snapshot.Snapshot, error) {
	if m.entered != nil {
		m.entered <- struct{}{}
	}
	if m.release != nil {
		<-m.release
	}

	m.mu.Lock()
	m.trainCalls++
	call := m.trainCalls
	err := m.trainErr
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return m.snapshotForCall(call), nil
}

func (m *mockClient) Reset(ctx context.Context) (*snapshot.Snapshot, error) {
	return m.snapshotForCall(0), nil
}

func (m *mockClient) SetTimeout(timeout time.Duration) {}

func TestRunnerRunsAllRounds(t *testing.T) {
	client := &mockClient{}
	runner := NewRunner(client, RunnerOptions{
		Rounds:  3,
		Request: TrainRequest{Episodes: 10},
	})

	var rounds []int
	var episodes []int
	err := runner.Run(context.Background(), func(round int, snap *snapshot.Snapshot) {
		rounds = append(rounds, round)
		episodes = append(episodes, snap.Episode)
	})
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(rounds) != 3 {
		t.Fatalf("Expected 3 callback invocations, got %d", len(rounds))
	}
	for i, round := range rounds {
		if round != i+1 {
			t.Errorf("Expected round %d at position %d, got %d", i+1, i, round)
		}
	}
	if episodes[2] != 30 {
		t.Errorf("Expected a growing episode count, got %v", episodes)
	}
}

func TestRunnerStopsOnFirstFailure(t *testing.T) {
	client := &mockClient{trainErr: errors.New("service down")}
	runner := NewRunner(client, RunnerOptions{Rounds: 5})

	calls := 0
	err := runner.Run(context.Background(), func(round int, snap *snapshot.Snapshot) {
		calls++
	})
	if err == nil {
		t.Fatal("Expected Run to surface the training failure")
	}
	if calls != 0 {
		t.Errorf("Callback should not fire on failure, fired %d times", calls)
	}
	if client.trainCalls != 1 {
		t.Errorf("Expected a single attempt, got %d", client.trainCalls)
	}
}

func TestRunnerSingleFlight(t *testing.T) {
	client := &mockClient{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	runner := NewRunner(client, DefaultRunnerOptions())

	done := make(chan error, 1)
	go func() {
		_, err := runner.TriggerTrain(context.Background())
		done <- err
	}()

	// Wait until the first request is inside Train, then overlap.
	select {
	case <-client.entered:
	case <-time.After(time.Second):
		t.Fatal("First training request never started")
	}

	if _, err := runner.TriggerTrain(context.Background()); !errors.Is(err, ErrTrainInFlight) {
		t.Errorf("Expected ErrTrainInFlight for overlapping trigger, got %v", err)
	}

	close(client.release)
	if err := <-done; err != nil {
		t.Errorf("First training request failed: %v", err)
	}

	// The guard clears once the request completes.
	client.release = nil
	client.entered = nil
	if _, err := runner.TriggerTrain(context.Background()); err != nil {
		t.Errorf("Expected trigger to succeed after completion, got %v", err)
	}
}

func TestRunnerHonorsCancellation(t *testing.T) {
	client := &mockClient{}
	runner := NewRunner(client, RunnerOptions{
		Rounds:   10,
		Debounce: time.Second * 5,
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(time.Millisecond * 50)
		cancel()
	}()

	err := runner.Run(ctx, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if client.trainCalls != 1 {
		t.Errorf("Expected a single round before cancellation, got %d", client.trainCalls)
	}
}

func TestRunnerDefaultsMinimumRounds(t *testing.T) {
	client := &mockClient{}
	runner := NewRunner(client, RunnerOptions{Rounds: 0})

	calls := 0
	if err := runner.Run(context.Background(), func(round int, snap *snapshot.Snapshot) {
		calls++
	}); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected the round count floored at 1, got %d", calls)
	}
}
