package uniprot

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

const DefaultBaseURL = "https://rest.uniprot.org"

type Options struct {
	BaseURL   string
	Fetcher   *lookup.Fetcher
	CacheSize int
	Logger    *slog.Logger
}

// Client implements lookup.FunctionCitationFetcher.
type Client struct {
	base     string
	f        *lookup.Fetcher
	cache    *lookup.Cache[string, *Entry]
	log      *slog.Logger
	degraded atomic.Int64
}

var _ lookup.FunctionCitationFetcher = (*Client)(nil)

func NewClient(o Options) *Client {
	c := &Client{
		base:  strings.TrimRight(o.BaseURL, "/"),
		f:     o.Fetcher,
		cache: lookup.NewCache[string, *Entry](o.CacheSize),
		log:   o.Logger,
	}
	if c.base == "" {
		c.base = DefaultBaseURL
	}
	if c.f == nil {
		c.f = lookup.NewFetcher(lookup.FetchOptions{Logger: o.Logger})
	}
	if c.log == nil {
		c.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c
}

// Accession returns the first accession of a cell that may list several,
// separated by spaces or semicolons.
func Accession(cell string) string {
	f := strings.FieldsFunc(cell, func(r rune) bool { return r == ' ' || r == ';' })
	if len(f) == 0 {
		return ""
	}
	return f[0]
}

func (c *Client) URL(acc string) string {
	return c.base + "/uniprotkb/" + url.PathEscape(acc) + ".txt"
}

// Entry fetches and parses the record of acc, memoising hits and misses.
func (c *Client) Entry(ctx context.Context, acc string) (*Entry, error) {
	if e, ok := c.cache.Get(acc); ok {
		if e == nil {
			return nil, lookup.ErrNotFound
		}
		return e, nil
	}
	body, err := c.f.Get(ctx, c.URL(acc))
	var e *Entry
	if err == nil {
		e, err = Parse(bytes.NewReader(body))
	}
	if err != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	c.cache.Put(acc, e)
	return e, err
}

func (c *Client) FetchFunctionAndCitations(ctx context.Context, id string) (string, []string) {
	acc := Accession(id)
	if acc == "" {
		return "", nil
	}
	e, err := c.Entry(ctx, acc)
	if err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			c.degraded.Add(1)
			c.log.Warn("lookup degraded", "service", "uniprot", "id", acc, "err", err)
		}
		return "", nil
	}
	return e.Function, e.PubMed
}

func (c *Client) Degraded() int64 { return c.degraded.Load() }
