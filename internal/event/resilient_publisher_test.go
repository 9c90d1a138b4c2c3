package event

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockBus is a test double for event.Bus
type mockBus struct {
	mu         sync.Mutex
	calls      []Event
	shouldFail func(attempt int) bool
}

func (m *mockBus) Publish(ctx context.Context, event Event) error {
	m.mu.Lock()
	m.calls = append(m.calls, event)
	callCount := len(m.calls)
	m.mu.Unlock()

	if m.shouldFail != nil && m.shouldFail(callCount) {
		return errors.New("mock publish error")
	}
	return nil
}

func (m *mockBus) Subscribe(eventType Type, handler Handler) {}

func (m *mockBus) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func TestResilientPublisher_SuccessfulPublish(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{}

	rp, err := NewResilientPublisher(bus, 3, 20*time.Millisecond, tmpFile)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	require.NoError(t, rp.Publish(context.Background(), NewCampaignUpdatedEvent("ABCD1234", 2, "move")))

	assert.Equal(t, 1, bus.CallCount())
	content, _ := os.ReadFile(tmpFile)
	assert.Empty(t, content)
}

func TestResilientPublisher_RetrySuccess(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{shouldFail: func(attempt int) bool { return attempt == 1 }}

	rp, err := NewResilientPublisher(bus, 3, 20*time.Millisecond, tmpFile)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), NewInventoriesUpdatedEvent("ABCD1234", 3, "move"))

	assert.Eventually(t, func() bool { return bus.CallCount() == 2 }, time.Second, 10*time.Millisecond)
	content, _ := os.ReadFile(tmpFile)
	assert.Empty(t, content)
}

func TestResilientPublisher_RetryExhaustion(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{shouldFail: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 3, 10*time.Millisecond, tmpFile)
	require.NoError(t, err)
	defer rp.Shutdown(context.Background())

	rp.PublishWithRetry(context.Background(), NewCampaignUpdatedEvent("ABCD1234", 5, "delete"))

	// initial attempt plus three retries
	require.Eventually(t, func() bool { return bus.CallCount() >= 4 }, 2*time.Second, 10*time.Millisecond)
	require.Eventually(t, func() bool {
		content, _ := os.ReadFile(tmpFile)
		return len(content) > 0
	}, time.Second, 10*time.Millisecond)

	f, err := os.Open(tmpFile)
	require.NoError(t, err)
	defer f.Close()

	entries, err := ReadDeadLetters(f)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, CampaignUpdated, entry.Event.Type)
	assert.Equal(t, 3, entry.Attempts)
	assert.NotEmpty(t, entry.LastError)
	assert.Equal(t, DeadLetterSchemaVersion, entry.SchemaVersion)
}

func TestResilientPublisher_ShutdownDeadLettersPending(t *testing.T) {
	tmpFile := t.TempDir() + "/deadletter.jsonl"
	bus := &mockBus{shouldFail: func(int) bool { return true }}

	rp, err := NewResilientPublisher(bus, 5, time.Hour, tmpFile)
	require.NoError(t, err)

	rp.PublishWithRetry(context.Background(), NewCampaignUpdatedEvent("ABCD1234", 1, "create"))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, rp.Shutdown(ctx))

	content, err := os.ReadFile(tmpFile)
	require.NoError(t, err)
	assert.NotEmpty(t, content)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 16*time.Second, CalculateRetryDelay(base, 4))
	assert.Equal(t, base, CalculateRetryDelay(base, 0))
}

func TestReadDeadLetters_ReportsBadLine(t *testing.T) {
	in := strings.NewReader("{\"schema_version\":\"1.0\",\"attempts\":2}\n\nnot json\n")

	entries, err := ReadDeadLetters(in)

	assert.ErrorContains(t, err, "line 3")
	require.Len(t, entries, 1)
	assert.Equal(t, 2, entries[0].Attempts)
}
