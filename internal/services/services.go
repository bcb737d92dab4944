// Package services builds the remote collaborators described by a Config.
package services

import (
	"log/slog"
	"time"

	"genrich/internal/config"
	"genrich/internal/kegg"
	"genrich/internal/lookup"
	"genrich/internal/stages"
	"genrich/internal/uniprot"
)

// Set holds one client per remote service. Both clients share a fetcher so
// their transport failures are counted together.
type Set struct {
	Fetcher *lookup.Fetcher
	KEGG    *kegg.Client
	UniProt *uniprot.Client
}

func New(c config.Config, log *slog.Logger) *Set {
	retries := c.HTTP.Retries
	if retries == 0 {
		retries = -1
	}
	f := lookup.NewFetcher(lookup.FetchOptions{
		Timeout:  time.Duration(c.HTTP.Timeout),
		RetryMax: retries,
		Logger:   log,
	})
	return &Set{
		Fetcher: f,
		KEGG: kegg.NewClient(kegg.Options{
			BaseURL:   c.KEGG.BaseURL,
			Organism:  c.KEGG.Organism,
			Fetcher:   f,
			CacheSize: c.HTTP.CacheSize,
			Logger:    log,
		}),
		UniProt: uniprot.NewClient(uniprot.Options{
			BaseURL:   c.UniProt.BaseURL,
			Fetcher:   f,
			CacheSize: c.HTTP.CacheSize,
			Logger:    log,
		}),
	}
}

// Deps wires the set into the stage collaborators.
func (s *Set) Deps(c config.Config) stages.Deps {
	return stages.Deps{
		Resolver:  s.KEGG,
		Sequences: s.KEGG,
		Functions: s.UniProt,
		Window:    c.GC.Window,
	}
}

// Degraded is the number of lookups answered with empty values so far.
func (s *Set) Degraded() int64 { return s.KEGG.Degraded() + s.UniProt.Degraded() }

// Failures is the number of requests to either service that failed after
// retries. Records that do not exist are not failures.
func (s *Set) Failures() int64 { return s.Fetcher.Failures() }
