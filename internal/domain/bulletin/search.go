package bulletin

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
)

// FilingDocument is the searchable projection of a FilingEntry.
type FilingDocument struct {
	ID         string `json:"id"`
	Mark       string `json:"mark"`
	Applicant  string `json:"applicant"`
	FileNumber string `json:"file_number"`
	NiceClass  string `json:"nice_class"`
	Kind       string `json:"kind"`
}

// FilingHit is a search hit with its relevance score.
type FilingHit struct {
	Document FilingDocument
	Score    float64
}

// Index provides full-text search over parsed filing entries using Bleve.
// The index lives in memory only; it is rebuilt from parser output and owns
// no persistent state.
type Index struct {
	index bleve.Index
	mu    sync.RWMutex
}

// NewIndex creates an empty in-memory filing index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create filing index: %w", err)
	}
	return &Index{index: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = simple.Name

	keywordFieldMapping := bleve.NewTextFieldMapping()
	keywordFieldMapping.Analyzer = keyword.Name

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("mark", textFieldMapping)
	docMapping.AddFieldMappingsAt("applicant", textFieldMapping)
	docMapping.AddFieldMappingsAt("file_number", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("nice_class", keywordFieldMapping)
	docMapping.AddFieldMappingsAt("kind", keywordFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = docMapping
	indexMapping.DefaultAnalyzer = simple.Name

	return indexMapping
}

// IndexEntries adds all entries to the index in one batch. Document IDs are
// derived from the acta number when present, falling back to list position.
func (ix *Index) IndexEntries(entries []FilingEntry) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	batch := ix.index.NewBatch()
	for i, e := range entries {
		id := e.FileNumber
		if id == "" {
			id = fmt.Sprintf("pos_%d", i)
		}

		doc := FilingDocument{
			ID:         id,
			Mark:       e.Mark,
			Applicant:  e.Applicant,
			FileNumber: e.FileNumber,
			NiceClass:  e.NiceClass,
			Kind:       string(e.Kind),
		}
		if err := batch.Index(doc.ID, doc); err != nil {
			return fmt.Errorf("failed to index filing %s: %w", doc.ID, err)
		}
	}

	if err := ix.index.Batch(batch); err != nil {
		return fmt.Errorf("failed to execute batch index: %w", err)
	}
	return nil
}

// Search performs a fuzzy full-text search over the indexed filings.
func (ix *Index) Search(query string, limit int) ([]FilingHit, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	matchQuery := bleve.NewMatchQuery(query)
	matchQuery.SetFuzziness(1)

	searchRequest := bleve.NewSearchRequest(matchQuery)
	searchRequest.Size = limit
	searchRequest.Fields = []string{"*"}

	searchResults, err := ix.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("filing search failed: %w", err)
	}

	hits := make([]FilingHit, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		doc := FilingDocument{ID: hit.ID}
		if mark, ok := hit.Fields["mark"].(string); ok {
			doc.Mark = mark
		}
		if applicant, ok := hit.Fields["applicant"].(string); ok {
			doc.Applicant = applicant
		}
		if fileNumber, ok := hit.Fields["file_number"].(string); ok {
			doc.FileNumber = fileNumber
		}
		if niceClass, ok := hit.Fields["nice_class"].(string); ok {
			doc.NiceClass = niceClass
		}
		if kind, ok := hit.Fields["kind"].(string); ok {
			doc.Kind = kind
		}
		hits = append(hits, FilingHit{Document: doc, Score: hit.Score})
	}

	return hits, nil
}

// Count returns the number of indexed filings.
func (ix *Index) Count() (uint64, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.index.DocCount()
}

// Close closes the underlying index.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.index != nil {
		return ix.index.Close()
	}
	return nil
}
