// Package insight composes the discovery and generative clients into the
// operations the web layer exposes: document search, answer generation, and
// free-form insight text.
package insight

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/moni-ai/moni-insight/pkg/vertex/discovery"
)

// TextGenerator produces free-form text for a prompt. Satisfied by
// *gemini.Client.
type TextGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Service is the inbound surface consumed by the HTTP handlers.
type Service struct {
	discovery *discovery.Client
	generator TextGenerator
	pageSize  int
	verbose   bool
}

// ServiceConfig configures a Service.
type ServiceConfig struct {
	// PageSize bounds search results per query. Zero means 10.
	PageSize int
	Verbose  bool
}

// NewService creates a Service over the given clients.
func NewService(dc *discovery.Client, generator TextGenerator, cfg ServiceConfig) *Service {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	return &Service{
		discovery: dc,
		generator: generator,
		pageSize:  cfg.PageSize,
		verbose:   cfg.Verbose,
	}
}

// DocumentResult is one search hit flattened for the web layer.
type DocumentResult struct {
	ID      string   `json:"id"`
	Title   string   `json:"title,omitempty"`
	URI     string   `json:"uri,omitempty"`
	Snippet string   `json:"snippet,omitempty"`
	Chunks  []string `json:"chunks,omitempty"`
}

// SearchResults is the outcome of a document search.
type SearchResults struct {
	Documents []DocumentResult `json:"documents"`
	Summary   string           `json:"summary,omitempty"`
	TotalSize int              `json:"total_size"`
}

// AnswerResult is the outcome of an answer query.
type AnswerResult struct {
	Answer    string           `json:"answer"`
	State     string           `json:"state"`
	Citations []AnswerCitation `json:"citations,omitempty"`
	Session   string           `json:"session,omitempty"`
}

// AnswerCitation points at the source material backing a span of the answer.
type AnswerCitation struct {
	Document string `json:"document,omitempty"`
	Title    string `json:"title,omitempty"`
	URI      string `json:"uri,omitempty"`
	Content  string `json:"content,omitempty"`
}

// derivedFields is the subset of a document's derivedStructData the web
// layer surfaces.
type derivedFields struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// SearchDocuments runs the query against the configured engine and flattens
// the hits. Result order follows the remote service's ranking.
func (s *Service) SearchDocuments(ctx context.Context, query string) (*SearchResults, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if s.verbose {
		log.Printf("[INSIGHT] searching documents: %q", query)
	}

	resp, err := s.discovery.Search(ctx, &discovery.SearchRequest{
		Query:    query,
		PageSize: s.pageSize,
		ContentSearchSpec: &discovery.ContentSearchSpec{
			SnippetSpec: &discovery.SnippetSpec{ReturnSnippet: true},
			SummarySpec: &discovery.SummarySpec{
				SummaryResultCount: 5,
				IncludeCitations:   true,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	results := &SearchResults{TotalSize: resp.TotalSize}
	for _, hit := range resp.Results {
		doc := DocumentResult{ID: hit.ID}
		if hit.Document != nil {
			if doc.ID == "" {
				doc.ID = hit.Document.ID
			}
			if len(hit.Document.DerivedStructData) > 0 {
				var derived derivedFields
				// Malformed struct data only costs the display fields.
				if err := json.Unmarshal(hit.Document.DerivedStructData, &derived); err == nil {
					doc.Title = derived.Title
					doc.URI = derived.Link
					doc.Snippet = derived.Snippet
				}
			}
		}
		if hit.Chunk != nil {
			doc.Chunks = append(doc.Chunks, hit.Chunk.Content)
		}
		results.Documents = append(results.Documents, doc)
	}
	if resp.Summary != nil {
		results.Summary = resp.Summary.SummaryText
	}
	return results, nil
}

// AnswerQuery runs an answer-generation query, optionally continuing an
// existing session.
func (s *Service) AnswerQuery(ctx context.Context, query, session string) (*AnswerResult, error) {
	if query == "" {
		return nil, fmt.Errorf("query is required")
	}
	if s.verbose {
		log.Printf("[INSIGHT] answering query: %q session=%q", query, session)
	}

	resp, err := s.discovery.Answer(ctx, &discovery.AnswerRequest{
		Query:   discovery.Query{Text: query},
		Session: session,
		AnswerGenerationSpec: &discovery.AnswerGenerationSpec{
			IncludeCitations: true,
		},
	})
	if err != nil {
		return nil, err
	}

	result := &AnswerResult{
		Answer:  resp.Answer.AnswerText,
		State:   resp.Answer.State,
		Session: resp.Session,
	}
	for _, ref := range resp.Answer.References {
		citation := AnswerCitation{}
		switch {
		case ref.ChunkInfo != nil:
			citation.Content = ref.ChunkInfo.Content
			if ref.ChunkInfo.DocumentMetadata != nil {
				citation.Document = ref.ChunkInfo.DocumentMetadata.Document
				citation.Title = ref.ChunkInfo.DocumentMetadata.Title
				citation.URI = ref.ChunkInfo.DocumentMetadata.URI
			}
		case ref.UnstructuredDocumentInfo != nil:
			citation.Document = ref.UnstructuredDocumentInfo.Document
			citation.Title = ref.UnstructuredDocumentInfo.Title
			citation.URI = ref.UnstructuredDocumentInfo.URI
			if len(ref.UnstructuredDocumentInfo.ChunkContents) > 0 {
				citation.Content = ref.UnstructuredDocumentInfo.ChunkContents[0].Content
			}
		case ref.StructuredDocumentInfo != nil:
			citation.Document = ref.StructuredDocumentInfo.Document
		default:
			continue
		}
		result.Citations = append(result.Citations, citation)
	}
	return result, nil
}

// GenerateInsight produces free-form text for the prompt. ErrNoAnswer from
// the generator passes through untouched so the web layer can render the
// explicit no-answer shape.
func (s *Service) GenerateInsight(ctx context.Context, prompt string) (string, error) {
	if prompt == "" {
		return "", fmt.Errorf("prompt is required")
	}
	if s.verbose {
		log.Printf("[INSIGHT] generating insight for prompt of %d bytes", len(prompt))
	}
	return s.generator.GenerateContent(ctx, prompt)
}
