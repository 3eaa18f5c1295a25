package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserver(t *testing.T) {
	o := NewObserver("lua-test")

	o.ObserveFrame(10 * time.Millisecond)
	o.ObserveFrame(20 * time.Millisecond)
	o.ObserveFault()

	if got := testutil.ToFloat64(framesTotal.WithLabelValues("lua-test")); got != 2 {
		t.Errorf("frames = %v, expected 2", got)
	}
	if got := testutil.ToFloat64(scriptFaultsTotal.WithLabelValues("lua-test")); got != 1 {
		t.Errorf("faults = %v, expected 1", got)
	}

	before := testutil.ToFloat64(sessionsActive)
	o.SessionStarted()
	if got := testutil.ToFloat64(sessionsActive); got != before+1 {
		t.Errorf("sessions = %v, expected %v", got, before+1)
	}
	o.SessionEnded()
	if got := testutil.ToFloat64(sessionsActive); got != before {
		t.Errorf("sessions = %v, expected %v", got, before)
	}
}

func TestRouter(t *testing.T) {
	NewObserver("js-router").ObserveFrame(time.Millisecond)
	srv := httptest.NewServer(NewRouter())
	defer srv.Close()

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{"/healthz", http.StatusOK, "ok"},
		{"/metrics", http.StatusOK, `turtle_frames_total{engine="js-router"} 1`},
		{"/nope", http.StatusNotFound, ""},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			resp, err := http.Get(srv.URL + tc.path)
			if err != nil {
				t.Fatalf("GET %s: %v", tc.path, err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != tc.status {
				t.Errorf("status = %d, expected %d", resp.StatusCode, tc.status)
			}
			if !strings.Contains(string(body), tc.contains) {
				t.Errorf("body does not contain %q", tc.contains)
			}
		})
	}
}
