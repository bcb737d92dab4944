package kegg

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/require"

	"genrich/internal/lookup"
)

func fakeKEGG(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	fixture, err := os.ReadFile("testdata/lp_0001.txt")
	require.NoError(t, err)

	r := httprouter.New()
	r.GET("/get/:query", func(w http.ResponseWriter, _ *http.Request, ps httprouter.Params) {
		hits.Add(1)
		switch ps.ByName("query") {
		case "lpl:lp_0001":
			_, _ = w.Write(fixture)
		case "lpl:lp_broken":
			http.Error(w, "oops", http.StatusInternalServerError)
		case "lpl:lp_garbage":
			_, _ = w.Write([]byte("<html>not a record</html>\n"))
		default:
			http.NotFound(w, nil)
		}
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(Options{
		BaseURL: srv.URL,
		Fetcher: lookup.NewFetcher(lookup.FetchOptions{RetryMax: 1, WaitMin: time.Millisecond, WaitMax: time.Millisecond}),
	})
}

func TestResolveIdentifier(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(fakeKEGG(t, &hits))
	ctx := context.Background()

	up, ncbi := c.ResolveIdentifier(ctx, "lp_0001")
	require.Equal(t, "F9UST2", up)
	require.Equal(t, "CCC77735", ncbi)

	seq, paths := c.FetchSequenceAndPathways(ctx, "lp_0001")
	require.NotEmpty(t, seq)
	require.Len(t, paths, 2)
	require.EqualValues(t, 1, hits.Load(), "second lookup of the same gene must be served from cache")
	require.Zero(t, c.Degraded())
}

func TestLookupDegradesToEmpty(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(fakeKEGG(t, &hits))
	ctx := context.Background()

	for _, id := range []string{"lp_missing", "lp_broken", "lp_garbage"} {
		up, ncbi := c.ResolveIdentifier(ctx, id)
		require.Empty(t, up, id)
		require.Empty(t, ncbi, id)
		seq, paths := c.FetchSequenceAndPathways(ctx, id)
		require.Empty(t, seq, id)
		require.Empty(t, paths, id)
	}
	require.EqualValues(t, 6, c.Degraded())

	before := hits.Load()
	up, _ := c.ResolveIdentifier(ctx, "")
	require.Empty(t, up)
	require.Equal(t, before, hits.Load(), "empty IDs are not looked up")
}

func TestClientURL(t *testing.T) {
	c := NewClient(Options{Organism: "eco"})
	require.Equal(t, "https://rest.kegg.jp/get/eco:b0001", c.URL("b0001"))
}
