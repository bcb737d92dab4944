package stages

import (
	"context"
	"errors"
	"strings"

	"genrich/internal/engine"
	"genrich/internal/lookup"
	"genrich/internal/progress"
	"genrich/internal/table"
)

var errNoCollaborator = errors.New("stage has no collaborator configured")

// IDMap renames the ID column to KEGG_ID and appends the UniProt and NCBI
// protein identifiers of each gene.
type IDMap struct{ Resolver lookup.IDResolver }

func (*IDMap) Name() string     { return IDMapName }
func (*IDMap) Require() string  { return "ID" }
func (*IDMap) Describe() string { return descRetrieve }

func (s *IDMap) Apply(ctx context.Context, r *table.Reader, bar progress.Reporter) (*table.Table, error) {
	if s.Resolver == nil {
		return nil, errNoCollaborator
	}
	return engine.MapRows(ctx, r, bar, engine.Mapper{
		Header: func(h table.Row) table.Row {
			h[0] = ColKEGG
			return append(h, ColUniProt, ColNCBI)
		},
		Row: func(ctx context.Context, row table.Row) []string {
			up, ncbi := s.Resolver.ResolveIdentifier(ctx, row[0])
			return []string{clean(up), clean(ncbi)}
		},
	})
}

// KEGG appends the lower-cased nucleotide sequence and the pathway list.
type KEGG struct{ Fetcher lookup.SequencePathwayFetcher }

func (*KEGG) Name() string     { return KEGGName }
func (*KEGG) Require() string  { return ColKEGG }
func (*KEGG) Describe() string { return descRetrieve }

func (s *KEGG) Apply(ctx context.Context, r *table.Reader, bar progress.Reporter) (*table.Table, error) {
	if s.Fetcher == nil {
		return nil, errNoCollaborator
	}
	return engine.MapRows(ctx, r, bar, engine.Mapper{
		Header: func(h table.Row) table.Row { return append(h, ColSeq, ColPathway) },
		Row: func(ctx context.Context, row table.Row) []string {
			seq, paths := s.Fetcher.FetchSequenceAndPathways(ctx, row[0])
			return []string{strings.ToLower(clean(seq)), engine.JoinList(cleanAll(paths))}
		},
	})
}

// UniProt appends the function annotation and PubMed identifiers of the
// protein named in the UniProt_ID column. Rows without a UniProt ID get empty
// cells and no lookup.
type UniProt struct{ Fetcher lookup.FunctionCitationFetcher }

func (*UniProt) Name() string     { return UniProtName }
func (*UniProt) Require() string  { return ColKEGG }
func (*UniProt) Describe() string { return descRetrieve }

func (s *UniProt) Apply(ctx context.Context, r *table.Reader, bar progress.Reporter) (*table.Table, error) {
	if s.Fetcher == nil {
		return nil, errNoCollaborator
	}
	col, err := r.Column(ColUniProt)
	if err != nil {
		return nil, err
	}
	return engine.MapRows(ctx, r, bar, engine.Mapper{
		Header: func(h table.Row) table.Row { return append(h, ColFunc, ColPubMed) },
		Row: func(ctx context.Context, row table.Row) []string {
			id := row[col]
			if id == "" {
				return []string{"", ""}
			}
			fn, pm := s.Fetcher.FetchFunctionAndCitations(ctx, id)
			return []string{engine.Sanitize(clean(fn)), engine.JoinList(cleanAll(pm))}
		},
	})
}
