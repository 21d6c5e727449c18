package hirez

import (
	"context"
	"sync"
	"testing"
)

func TestSession_FirstAuthenticatedCallCreatesExactlyOne(t *testing.T) {
	v := newFakeVendor(t)
	v.respond("getdataused", `[{"Total_Requests_Today":1,"Request_Limit_Daily":7500,"Session_Cap":500,"Total_Sessions_Today":1}]`)
	client := newTestClient(v)

	if _, err := client.GetDataUsed(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if n := v.count("createsession"); n != 1 {
		t.Errorf("Expected exactly 1 createsession call, got %d", n)
	}
	if n := v.count("testsession"); n != 0 {
		t.Errorf("Expected no testsession call with no session held, got %d", n)
	}
	if n := v.count("getdataused"); n != 1 {
		t.Errorf("Expected 1 getdataused call, got %d", n)
	}
}

func TestSession_LiveSessionIsReused(t *testing.T) {
	v := newFakeVendor(t)
	v.respond("getdataused", `[{"Total_Requests_Today":1,"Request_Limit_Daily":7500,"Session_Cap":500,"Total_Sessions_Today":1}]`)
	client := newTestClient(v)

	for i := 0; i < 2; i++ {
		if _, err := client.GetDataUsed(context.Background()); err != nil {
			t.Fatalf("Unexpected error on call %d: %v", i+1, err)
		}
	}

	if n := v.count("createsession"); n != 1 {
		t.Errorf("Expected exactly 1 createsession call across both requests, got %d", n)
	}
	// The second call holds a token, so it liveness-checks before reusing.
	if n := v.count("testsession"); n != 1 {
		t.Errorf("Expected exactly 1 testsession call, got %d", n)
	}

	v.mu.Lock()
	last := v.lastSession
	v.mu.Unlock()
	if last != "session-token-1" {
		t.Errorf("Expected the original session token to be reused, got %q", last)
	}
}

func TestSession_StaleSessionIsReplacedBeforeTheCall(t *testing.T) {
	v := newFakeVendor(t)
	v.respond("getdataused", `[{"Total_Requests_Today":1,"Request_Limit_Daily":7500,"Session_Cap":500,"Total_Sessions_Today":1}]`)
	client := newTestClient(v)

	if _, err := client.GetDataUsed(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	// The vendor now reports the held token stale and would hand out a new
	// one on re-creation.
	v.mu.Lock()
	v.sessionAlive = false
	v.sessionToken = "session-token-2"
	v.mu.Unlock()

	if _, err := client.GetDataUsed(context.Background()); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if n := v.count("createsession"); n != 2 {
		t.Errorf("Expected a second createsession after the failed liveness check, got %d", n)
	}
	if n := v.count("getdataused"); n != 2 {
		t.Errorf("Expected 2 getdataused calls, got %d", n)
	}

	v.mu.Lock()
	last := v.lastSession
	v.mu.Unlock()
	if last != "session-token-2" {
		t.Errorf("Expected the replacement token on the retried call, got %q", last)
	}
}

func TestSession_ConcurrentCallsSingleFlightAcquisition(t *testing.T) {
	v := newFakeVendor(t)
	v.respond("getdataused", `[{"Total_Requests_Today":1,"Request_Limit_Daily":7500,"Session_Cap":500,"Total_Sessions_Today":1}]`)
	client := newTestClient(v)

	const callers = 8
	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := client.GetDataUsed(context.Background())
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if n := v.count("createsession"); n != 1 {
		t.Errorf("Expected session acquisition to single-flight, createsession was called %d times", n)
	}
	if n := v.count("getdataused"); n != callers {
		t.Errorf("Expected %d getdataused calls, got %d", callers, n)
	}
}
