// Package lookup defines the remote collaborators used by the enrichment
// stages and the shared plumbing behind them: a retrying HTTP fetcher and a
// bounded memoisation cache.
//
// Collaborators never return errors. "Not found" and every remote failure
// are reported as empty values; the implementation logs the cause.
package lookup

import "context"

// IDResolver maps a primary gene identifier to its UniProt and NCBI protein
// identifiers. Either may be empty.
type IDResolver interface {
	ResolveIdentifier(ctx context.Context, id string) (uniprot, ncbi string)
}

// SequencePathwayFetcher returns the nucleotide sequence of a gene and its
// pathway descriptions ("<id>: <name>").
type SequencePathwayFetcher interface {
	FetchSequenceAndPathways(ctx context.Context, id string) (seq string, pathways []string)
}

// FunctionCitationFetcher returns the functional description of a protein
// and the PubMed identifiers citing it, in record order.
type FunctionCitationFetcher interface {
	FetchFunctionAndCitations(ctx context.Context, id string) (function string, pubmed []string)
}
