// Package stages holds the fixed transforms of the enrichment pipeline.
//
// Every stage declares the literal its input must carry in header[0] and is
// independently runnable through engine.Run. Stages that need remote data
// receive it through the lookup interfaces; none of them talk to the network
// directly.
package stages

import (
	"fmt"
	"strings"

	"genrich/internal/engine"
	"genrich/internal/lookup"
)

// Stage names, in default workflow order.
const (
	IDMapName   = "idmap"
	KEGGName    = "kegg"
	UniProtName = "uniprot"
	SortName    = "sort"
	ClusterName = "cluster"
	GCName      = "gc"
)

// Names lists every stage in default workflow order.
var Names = []string{IDMapName, KEGGName, UniProtName, SortName, GCName, ClusterName}

// Column names shared between stages.
const (
	ColKEGG    = "KEGG_ID"
	ColUniProt = "UniProt_ID"
	ColNCBI    = "NCBI_protein_ID"
	ColSeq     = "nt_seq"
	ColPathway = "pathways"
	ColFunc    = "gene_function"
	ColPubMed  = "PubMed_ID"
	ColGC      = "gc_content"
	ColGCSub   = "gc_content_subsections"
)

// Progress descriptions.
const (
	descRetrieve = "Retrieving data"
	descSort     = "Reading file"
	descCluster  = "Clustering"
	descGC       = "Calculating GC"
)

// Deps are the collaborators a stage may need. Unused fields may be nil.
type Deps struct {
	Resolver  lookup.IDResolver
	Sequences lookup.SequencePathwayFetcher
	Functions lookup.FunctionCitationFetcher
	Window    int // GC profile window; <= 0 selects gc.DefaultWindow
}

// New returns the stage called name.
func New(name string, d Deps) (engine.Stage, error) {
	switch name {
	case IDMapName:
		return &IDMap{Resolver: d.Resolver}, nil
	case KEGGName:
		return &KEGG{Fetcher: d.Sequences}, nil
	case UniProtName:
		return &UniProt{Fetcher: d.Functions}, nil
	case SortName:
		return SortByPubMed{}, nil
	case ClusterName:
		return ClusterPubMed{}, nil
	case GCName:
		return GC{Window: d.Window}, nil
	}
	return nil, fmt.Errorf("unknown stage %q (known: %s)", name, strings.Join(Names, ", "))
}

// Known reports whether name is a stage.
func Known(name string) bool {
	for _, n := range Names {
		if n == name {
			return true
		}
	}
	return false
}

var cellBreaks = strings.NewReplacer("\t", " ", "\r", " ", "\n", " ")

// clean makes a remote value storable in a single cell.
func clean(s string) string { return cellBreaks.Replace(strings.TrimSpace(s)) }

func cleanAll(vs []string) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = clean(v)
	}
	return out
}

