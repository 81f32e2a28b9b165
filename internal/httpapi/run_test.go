package httpapi

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/domain"
)

func bindRecord(t *testing.T, f *fixture, event domain.EventName) {
	t.Helper()
	rr := f.do(t, http.MethodPost, "/events/"+string(event)+"/listeners", `{"action":"record"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	f.recorder.Reset()
}

func TestRunAnnouncesStartAndStop(t *testing.T) {
	f := newFixture(t, nil)
	bindRecord(t, f, domain.EventServerStarted)
	bindRecord(t, f, domain.EventServerStopped)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- f.srv.Run(ctx, "127.0.0.1:0") }()

	require.Eventually(t, func() bool { return len(f.recorder.Calls()) == 1 }, 2*time.Second, 10*time.Millisecond)
	started := f.recorder.Calls()[0]
	assert.Equal(t, string(domain.EventServerStarted), started.Event)
	require.Len(t, started.Args, 1)
	addr, ok := started.Args[0].(string)
	require.True(t, ok)

	resp, err := http.Get("http://" + addr + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	calls := f.recorder.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, string(domain.EventServerStopped), calls[1].Event)
}

func TestRunOnBusyAddressDoesNotAnnounceStart(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer busy.Close()

	f := newFixture(t, nil)
	bindRecord(t, f, domain.EventServerStarted)

	done := make(chan error, 1)
	go func() { done <- f.srv.Run(context.Background(), busy.Addr().String()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to listen")
	case <-time.After(2 * time.Second):
		t.Fatal("Run should fail when the address is in use")
	}
	assert.Empty(t, f.recorder.Calls())
}
