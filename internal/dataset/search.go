package dataset

import (
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/korjavin/fitnourish/internal/fold"
)

const (
	DefaultSearchLimit = 20
	MaxSearchLimit     = 100
)

// searchDoc is the document indexed per distinct food name.
type searchDoc struct {
	NameFolded string `json:"name_folded"`
}

// SearchIndex is an in-memory Bleve index over the dataset's food names.
// Document IDs are the food names themselves, so hits map straight back to
// Dataset.Lookup keys.
type SearchIndex struct {
	index bleve.Index
}

// NewSearchIndex builds a memory-only index over every distinct name in d.
func NewSearchIndex(d *Dataset) (*SearchIndex, error) {
	idx, err := bleve.NewMemOnly(newSearchMapping())
	if err != nil {
		return nil, fmt.Errorf("create search index: %w", err)
	}

	batch := idx.NewBatch()
	for _, name := range d.names {
		folded := fold.Text(name)
		if folded == "" {
			continue
		}
		if err := batch.Index(name, searchDoc{NameFolded: folded}); err != nil {
			_ = idx.Close()
			return nil, fmt.Errorf("index %q: %w", name, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("commit search index: %w", err)
	}
	return &SearchIndex{index: idx}, nil
}

// Close releases the index.
func (s *SearchIndex) Close() error {
	return s.index.Close()
}

// Search returns food names matching q, best match first. Exact phrases and
// prefixes rank above per-token fuzzy matches. Tokens under three characters
// are kept as prefix queries rather than dropped, so a partly typed name like
// "oa" still narrows the list; at edit distance one they would match almost
// every short term. limit is clamped to [1, MaxSearchLimit], defaulting to
// DefaultSearchLimit.
func (s *SearchIndex) Search(q string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if limit > MaxSearchLimit {
		limit = MaxSearchLimit
	}

	folded := fold.Text(q)
	if folded == "" {
		return nil, nil
	}

	boolQ := bleve.NewBooleanQuery()

	phraseQ := bleve.NewMatchPhraseQuery(folded)
	phraseQ.SetField("name_folded")
	phraseQ.SetBoost(10)
	boolQ.AddShould(phraseQ)

	prefixQ := bleve.NewPrefixQuery(folded)
	prefixQ.SetField("name_folded")
	prefixQ.SetBoost(5)
	boolQ.AddShould(prefixQ)

	for _, token := range strings.Fields(folded) {
		if len(token) < 3 {
			prefix := bleve.NewPrefixQuery(token)
			prefix.SetField("name_folded")
			boolQ.AddShould(prefix)
			continue
		}
		fuzz := 1
		if len(token) >= 8 {
			fuzz = 2
		}
		fuzzyQ := bleve.NewFuzzyQuery(token)
		fuzzyQ.SetField("name_folded")
		fuzzyQ.Fuzziness = fuzz
		boolQ.AddShould(fuzzyQ)
	}

	req := bleve.NewSearchRequestOptions(boolQ, limit, 0, false)
	res, err := s.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", q, err)
	}

	names := make([]string, 0, len(res.Hits))
	for _, hit := range res.Hits {
		names = append(names, hit.ID)
	}
	return names, nil
}

func newSearchMapping() mapping.IndexMapping {
	im := bleve.NewIndexMapping()

	textField := bleve.NewTextFieldMapping()
	textField.Analyzer = simple.Name
	textField.Store = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("name_folded", textField)

	im.DefaultMapping = doc
	return im
}
