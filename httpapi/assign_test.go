package httpapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/katalvlaran/wardrop/httpapi"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(httpapi.NewRouter(zap.NewNop()))
	t.Cleanup(srv.Close)

	return srv
}

func post(t *testing.T, srv *httptest.Server, body any) (*http.Response, []byte) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := http.Post(srv.URL+"/api/v1/assign", "application/json", bytes.NewReader(raw))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)

	return resp, buf.Bytes()
}

// TestHealthz verifies the liveness probe.
func TestHealthz(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
}

// TestAssign_SingleLink verifies an end-to-end solve over HTTP: the
// single-route network equilibrates immediately and the response carries
// the per-link flows and costs.
func TestAssign_SingleLink(t *testing.T) {
	srv := newServer(t)

	req := httpapi.AssignRequest{
		Links: []httpapi.LinkSpec{{
			From: "1", To: "2",
			Capacity: 100, FreeFlowTime: 10, Alpha: 0.15, Beta: 4,
		}},
		Demands: []httpapi.DemandSpec{{From: "1", To: "2", Volume: 50}},
		Options: httpapi.SolveOptions{Algorithm: "FW", Accuracy: 1e-9},
	}

	resp, body := post(t, srv, req)
	require.Equal(t, http.StatusOK, resp.StatusCode, "body: %s", body)

	var out httpapi.AssignResponse
	require.NoError(t, json.Unmarshal(body, &out))

	assert.True(t, out.Converged)
	assert.InDelta(t, 504.6875, out.TSTT, 1e-6)
	require.Len(t, out.Links, 1)
	assert.Equal(t, "1", out.Links[0].From)
	assert.Equal(t, "2", out.Links[0].To)
	assert.InDelta(t, 50.0, out.Links[0].Flow, 1e-9)
	assert.InDelta(t, 10.09375, out.Links[0].Cost, 1e-9)
}

// TestAssign_BadRequests verifies the 400 mappings: malformed JSON,
// unknown fields, invalid links, unknown solver names and missing
// demand.
func TestAssign_BadRequests(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/assign", "application/json",
		bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	badLink := httpapi.AssignRequest{
		Links:   []httpapi.LinkSpec{{From: "1", To: "2", Capacity: 100}}, // fft missing
		Demands: []httpapi.DemandSpec{{From: "1", To: "2", Volume: 10}},
	}
	resp, body := post(t, srv, badLink)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), "error")

	badAlgo := httpapi.AssignRequest{
		Links: []httpapi.LinkSpec{{
			From: "1", To: "2", Capacity: 100, FreeFlowTime: 10, Alpha: 0.15, Beta: 4,
		}},
		Demands: []httpapi.DemandSpec{{From: "1", To: "2", Volume: 10}},
		Options: httpapi.SolveOptions{Algorithm: "simplex"},
	}
	resp, _ = post(t, srv, badAlgo)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	noDemand := httpapi.AssignRequest{
		Links: []httpapi.LinkSpec{{
			From: "1", To: "2", Capacity: 100, FreeFlowTime: 10, Alpha: 0.15, Beta: 4,
		}},
	}
	resp, _ = post(t, srv, noDemand)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// TestAssign_NonConvergenceReported verifies that a starved iteration
// budget still returns 200 with converged=false, matching the library
// contract.
func TestAssign_NonConvergenceReported(t *testing.T) {
	srv := newServer(t)

	req := httpapi.AssignRequest{
		Links: []httpapi.LinkSpec{
			{From: "1", To: "2", Capacity: 5, FreeFlowTime: 1, Alpha: 0.15, Beta: 4},
			{From: "2", To: "4", Capacity: 5, FreeFlowTime: 1, Alpha: 0.15, Beta: 4},
			{From: "1", To: "3", Capacity: 10, FreeFlowTime: 1.5, Alpha: 0.15, Beta: 4},
			{From: "3", To: "4", Capacity: 10, FreeFlowTime: 1.5, Alpha: 0.15, Beta: 4},
		},
		Demands: []httpapi.DemandSpec{{From: "1", To: "4", Volume: 10}},
		Options: httpapi.SolveOptions{Algorithm: "MSA", Accuracy: 1e-12, MaxIterations: 3},
	}

	resp, body := post(t, srv, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out httpapi.AssignResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.False(t, out.Converged)
	assert.Equal(t, 3, out.Iterations)
}
