package probe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainregistry/protoreg/record"
	"github.com/chainregistry/protoreg/violation"
)

const verifiedAddr = "0xaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa1111"

func poolRecords(t *testing.T, linkBase string) []*record.Protocol {
	t.Helper()
	alpha, err := record.Parse([]byte(`{
		"name": "Alpha",
		"links": {"website": "`+linkBase+`/ok", "docs": "`+linkBase+`/gone"},
		"addresses": {"Pool": "`+verifiedAddr+`"}
	}`), "alpha.json")
	require.NoError(t, err)

	beta, err := record.Parse([]byte(`{
		"name": "Beta",
		"links": {},
		"addresses": {"Vault": "0xbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb2222"}
	}`), "beta.json")
	require.NoError(t, err)

	return []*record.Protocol{alpha, beta}
}

func TestProber_Run(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/ok":
			w.WriteHeader(http.StatusOK)
		case r.URL.Path == "/gone":
			w.WriteHeader(http.StatusNotFound)
		case strings.EqualFold(r.URL.Query().Get("address"), verifiedAddr):
			w.Write([]byte(`{"code": 0, "result": {"sourceCode": "..."}}`))
		default:
			w.Write([]byte(`{"code": 0, "result": null}`))
		}
	}))
	t.Cleanup(srv.Close)

	prober := New(Options{
		Contracts:    NewContractClient(srv.URL, "key", srv.Client()),
		Links:        NewLinkChecker(srv.Client()),
		Workers:      3,
		RequestDelay: time.Millisecond,
	})

	summary, err := prober.Run(context.Background(), poolRecords(t, srv.URL))
	require.NoError(t, err)

	assert.Equal(t, 2, summary.Files)
	require.Len(t, summary.Contracts, 2)
	assert.Equal(t, 1, summary.Verified())
	assert.Equal(t, 1, summary.Unverified())

	// Sorted by (file, label).
	assert.Equal(t, "alpha.json", summary.Contracts[0].File)
	assert.Equal(t, StatusVerified, summary.Contracts[0].Status)
	assert.Equal(t, "beta.json", summary.Contracts[1].File)
	assert.Equal(t, StatusNotVerified, summary.Contracts[1].Status)

	require.Len(t, summary.Links, 2)
	assert.Equal(t, "docs", summary.Links[0].Label)
	assert.False(t, summary.Links[0].OK)
	assert.Equal(t, "website", summary.Links[1].Label)
	assert.True(t, summary.Links[1].OK)
	assert.Equal(t, 1, summary.DeadLinks())
}

func TestProber_Run_Cancelled(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"code": 0, "result": null}`))
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	prober := New(Options{
		Contracts:    NewContractClient(srv.URL, "key", srv.Client()),
		RequestDelay: time.Millisecond,
	})

	summary, err := prober.Run(ctx, poolRecords(t, srv.URL))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, summary, "partial results are discarded on cancellation")
}

func TestSummary_Violations(t *testing.T) {
	s := &Summary{
		Contracts: []ContractResult{
			{File: "a.json", Label: "Pool", Address: "0xAAAA", Status: StatusVerified, Detail: "verified"},
			{File: "b.json", Label: "Vault", Address: "0xBBBB", Status: StatusTimeout, Detail: "request timeout"},
		},
		Links: []LinkResult{
			{File: "a.json", Label: "website", URL: "https://a.example", OK: true},
			{File: "a.json", Label: "docs", URL: "https://a.example/docs", OK: false, Detail: "returned status 404"},
		},
	}

	violations := s.Violations()
	require.Len(t, violations, 2)

	assert.Equal(t, violation.KindDeadLink, violations[0].Kind)
	assert.Equal(t, "docs", violations[0].Label)

	assert.Equal(t, violation.KindUnverifiedContract, violations[1].Kind)
	assert.Equal(t, "0xbbbb", violations[1].Address, "address canonicalized")
	assert.Equal(t, violation.SeverityWarning, violations[1].Severity)
}

func TestNewVerifyCache_BadURL(t *testing.T) {
	_, err := NewVerifyCache(CacheOptions{URL: "://not-a-url"})
	assert.Error(t, err)
}
