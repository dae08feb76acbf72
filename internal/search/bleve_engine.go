package search

import (
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	"github.com/blevesearch/bleve/v2/mapping"
	bleveQuery "github.com/blevesearch/bleve/v2/search/query"

	"hnterm/internal/hn"
)

type bleveEngine struct {
	idx     bleve.Index
	stories []hn.Story
}

// NewBleveEngine builds an in-memory index. Nothing is persisted: the
// index is rebuilt from the visible story list on every section change.
func NewBleveEngine() (Searcher, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}
	return &bleveEngine{idx: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()
	im.DefaultAnalyzer = standard.Name

	dm := bleve.NewDocumentMapping()

	title := bleve.NewTextFieldMapping()
	title.Analyzer = standard.Name
	title.Store = true

	text := bleve.NewTextFieldMapping()
	text.Analyzer = standard.Name
	text.Store = false

	by := bleve.NewTextFieldMapping()
	by.Analyzer = standard.Name
	by.Store = true

	dm.AddFieldMappingsAt("title", title)
	dm.AddFieldMappingsAt("text", text)
	dm.AddFieldMappingsAt("by", by)

	im.DefaultMapping = dm
	return im
}

func (b *bleveEngine) Index(stories []hn.Story) error {
	// Drop the previous section's documents before indexing the new list.
	for i := range b.stories {
		if err := b.idx.Delete(strconv.Itoa(i)); err != nil {
			return err
		}
	}

	batch := b.idx.NewBatch()
	for i, story := range stories {
		_ = batch.Index(strconv.Itoa(i), map[string]any{
			"title": story.Title,
			"text":  story.Text,
			"by":    story.By,
		})
	}
	if err := b.idx.Batch(batch); err != nil {
		return err
	}
	b.stories = stories
	return nil
}

func (b *bleveEngine) Search(query string, limit int) ([]Result, error) {
	tokens := tokenize(query)
	if len(tokens) == 0 {
		return []Result{}, nil
	}

	var qs []bleveQuery.Query
	for _, tok := range tokens {
		qt := bleve.NewMatchQuery(tok)
		qt.SetField("title")
		qt.SetBoost(4.0)
		qs = append(qs, qt)
		qtp := bleve.NewPrefixQuery(tok)
		qtp.SetField("title")
		qtp.SetBoost(3.5)
		qs = append(qs, qtp)

		qx := bleve.NewMatchQuery(tok)
		qx.SetField("text")
		qx.SetBoost(1.5)
		qs = append(qs, qx)
		qxp := bleve.NewPrefixQuery(tok)
		qxp.SetField("text")
		qxp.SetBoost(1.2)
		qs = append(qs, qxp)

		qb := bleve.NewMatchQuery(tok)
		qb.SetField("by")
		qb.SetBoost(1.0)
		qs = append(qs, qb)
	}

	if limit <= 0 {
		limit = len(b.stories)
	}
	srch := bleve.NewSearchRequestOptions(bleve.NewDisjunctionQuery(qs...), limit, 0, false)
	res, err := b.idx.Search(srch)
	if err != nil {
		return nil, err
	}

	out := make([]Result, 0, len(res.Hits))
	for _, h := range res.Hits {
		idx, err := strconv.Atoi(strings.TrimSpace(h.ID))
		if err != nil || idx < 0 || idx >= len(b.stories) {
			continue
		}
		out = append(out, Result{Index: idx, Story: b.stories[idx], Score: h.Score})
	}
	return out, nil
}
