package stages

import (
	"context"
	"strings"

	"genrich/internal/engine"
	"genrich/internal/progress"
	"genrich/internal/table"
)

// NoArticles keys the genes that have no PubMed identifier.
const NoArticles = "No articles available"

// ClusterPubMed inverts the gene → PubMed relation: one output row per
// distinct PubMed ID, in first-seen order, listing the genes that cite it.
type ClusterPubMed struct{}

func (ClusterPubMed) Name() string     { return ClusterName }
func (ClusterPubMed) Require() string  { return ColKEGG }
func (ClusterPubMed) Describe() string { return descCluster }

func (ClusterPubMed) Apply(ctx context.Context, r *table.Reader, bar progress.Reporter) (*table.Table, error) {
	col, err := r.Column(ColPubMed)
	if err != nil {
		return nil, err
	}
	if bar == nil {
		bar = progress.Discard
	}
	defer bar.Done()

	var keys []string
	genes := make(map[string][]string)
	for r.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row := r.Row()
		// An empty cell is one empty element, like any empty element of a list.
		for _, id := range strings.Split(row[col], engine.ListSep) {
			if id == "" {
				id = NoArticles
			}
			if _, ok := genes[id]; !ok {
				keys = append(keys, id)
			}
			genes[id] = append(genes[id], row[0])
		}
		bar.Add(1)
	}
	if err := r.Err(); err != nil {
		return nil, err
	}

	out := &table.Table{Header: table.Row{ColPubMed, ColKEGG}, Rows: make([]table.Row, 0, len(keys))}
	for _, k := range keys {
		out.Append(table.Row{k, engine.JoinList(genes[k])})
	}
	return out, nil
}
