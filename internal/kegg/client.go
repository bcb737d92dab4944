package kegg

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/url"
	"strings"
	"sync/atomic"

	"genrich/internal/lookup"
)

const (
	DefaultBaseURL  = "https://rest.kegg.jp"
	DefaultOrganism = "lpl"
)

type Options struct {
	BaseURL   string
	Organism  string
	Fetcher   *lookup.Fetcher
	CacheSize int
	Logger    *slog.Logger
}

// Client implements lookup.IDResolver and lookup.SequencePathwayFetcher on
// top of the KEGG "get" operation. Records are memoised per gene ID, so the
// two lookups of one gene cost a single request.
type Client struct {
	base     string
	org      string
	f        *lookup.Fetcher
	cache    *lookup.Cache[string, *Entry]
	log      *slog.Logger
	degraded atomic.Int64
}

var (
	_ lookup.IDResolver             = (*Client)(nil)
	_ lookup.SequencePathwayFetcher = (*Client)(nil)
)

func NewClient(o Options) *Client {
	c := &Client{
		base:  strings.TrimRight(o.BaseURL, "/"),
		org:   o.Organism,
		f:     o.Fetcher,
		cache: lookup.NewCache[string, *Entry](o.CacheSize),
		log:   o.Logger,
	}
	if c.base == "" {
		c.base = DefaultBaseURL
	}
	if c.org == "" {
		c.org = DefaultOrganism
	}
	if c.f == nil {
		c.f = lookup.NewFetcher(lookup.FetchOptions{Logger: o.Logger})
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// URL returns the record address of a gene ID.
func (c *Client) URL(id string) string {
	return c.base + "/get/" + url.PathEscape(c.org+":"+id)
}

// Entry fetches and parses the record of id. Results, including misses, are
// cached; cancellation is not.
func (c *Client) Entry(ctx context.Context, id string) (*Entry, error) {
	if e, ok := c.cache.Get(id); ok {
		if e == nil {
			return nil, lookup.ErrNotFound
		}
		return e, nil
	}
	body, err := c.f.Get(ctx, c.URL(id))
	var e *Entry
	if err == nil {
		e, err = Parse(bytes.NewReader(body))
	}
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	c.cache.Put(id, e)
	return e, err
}

// entry is Entry with failures logged and reported as nil.
func (c *Client) entry(ctx context.Context, id string) *Entry {
	if id == "" {
		return nil
	}
	e, err := c.Entry(ctx, id)
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			c.degraded.Add(1)
			c.log.Warn("lookup degraded", "service", "kegg", "id", id, "err", err)
		}
		return nil
	}
	return e
}

func (c *Client) ResolveIdentifier(ctx context.Context, id string) (uniprot, ncbi string) {
	e := c.entry(ctx, id)
	if e == nil {
		return "", ""
	}
	return e.DBLink("UniProt"), e.DBLink("NCBI-ProteinID")
}

func (c *Client) FetchSequenceAndPathways(ctx context.Context, id string) (string, []string) {
	e := c.entry(ctx, id)
	if e == nil {
		return "", nil
	}
	return e.NTSeq(), e.Pathways()
}

// Degraded is the number of lookups answered with empty values because of a
// failure or a missing record.
func (c *Client) Degraded() int64 { return c.degraded.Load() }
