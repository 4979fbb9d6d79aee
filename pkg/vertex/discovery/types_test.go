package discovery

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Sample payloads recorded from the remote service, trimmed to the fields
// the service layer actually reads.

func TestOperationPayload(t *testing.T) {
	const payload = `{
		"name": "projects/p/locations/global/collections/default_collection/dataStores/ds1/operations/op-1",
		"metadata": {
			"@type": "type.googleapis.com/google.cloud.discoveryengine.v1beta.CreateDataStoreMetadata",
			"createTime": "2025-01-10T12:00:00Z"
		},
		"done": true,
		"error": {
			"code": 9,
			"message": "data store already exists",
			"details": [{"@type": "type.googleapis.com/google.rpc.ErrorInfo", "reason": "ALREADY_EXISTS"}]
		}
	}`

	var op Operation
	require.NoError(t, json.Unmarshal([]byte(payload), &op))

	assert.Contains(t, op.Name, "operations/op-1")
	assert.True(t, op.Done)
	assert.NotNil(t, op.Metadata)
	require.NotNil(t, op.Error)
	assert.Equal(t, 9, op.Error.Code)
	assert.Equal(t, "data store already exists", op.Error.Message)
	require.Len(t, op.Error.Details, 1)
	assert.Equal(t, "ALREADY_EXISTS", op.Error.Details[0]["reason"])
}

func TestSearchResponsePayload(t *testing.T) {
	const payload = `{
		"results": [
			{
				"id": "doc-1",
				"document": {
					"name": "projects/p/dataStores/ds1/branches/0/documents/doc-1",
					"id": "doc-1",
					"derivedStructData": {"title": "Quarterly report", "link": "gs://bucket/report.pdf"}
				}
			}
		],
		"totalSize": 1,
		"attributionToken": "abc123",
		"summary": {
			"summaryText": "The report covers Q3.",
			"summaryWithMetadata": {
				"summary": "The report covers Q3.",
				"citationMetadata": {
					"citations": [{"startIndex": "0", "endIndex": "21", "sources": [{"referenceIndex": "0"}]}]
				},
				"references": [{"title": "Quarterly report", "document": "documents/doc-1", "chunkContents": [{"content": "Q3 revenue grew", "pageIdentifier": "4"}]}]
			}
		},
		"queryExpansionInfo": {"expandedQuery": true},
		"sessionInfo": {"name": "sessions/s1", "queryId": "q1"}
	}`

	var resp SearchResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	require.Len(t, resp.Results, 1)
	assert.Equal(t, "doc-1", resp.Results[0].Document.ID)
	assert.NotNil(t, resp.Results[0].Document.DerivedStructData)
	assert.Equal(t, 1, resp.TotalSize)

	require.NotNil(t, resp.Summary)
	assert.Equal(t, "The report covers Q3.", resp.Summary.SummaryText)
	meta := resp.Summary.SummaryWithMetadata
	require.NotNil(t, meta)
	require.Len(t, meta.CitationMetadata.Citations, 1)
	assert.Equal(t, "0", meta.CitationMetadata.Citations[0].Sources[0].ReferenceIndex)
	require.Len(t, meta.References, 1)
	assert.Equal(t, "4", meta.References[0].ChunkContents[0].PageIdentifier)

	require.NotNil(t, resp.QueryExpansionInfo)
	assert.True(t, resp.QueryExpansionInfo.ExpandedQuery)
	require.NotNil(t, resp.SessionInfo)
	assert.Equal(t, "q1", resp.SessionInfo.QueryID)
}

func TestAnswerPayload(t *testing.T) {
	const payload = `{
		"answer": {
			"name": "answers/a1",
			"state": "SUCCEEDED",
			"answerText": "Revenue grew 12% in Q3.",
			"citations": [{"startIndex": "0", "endIndex": "23", "sources": [{"referenceId": "0"}]}],
			"references": [
				{
					"chunkInfo": {
						"chunk": "chunks/c1",
						"content": "Q3 revenue grew 12%",
						"relevanceScore": 0.93,
						"documentMetadata": {"document": "documents/doc-1", "title": "Quarterly report", "pageIdentifier": "4"}
					}
				}
			],
			"relatedQuestions": ["What drove the growth?"],
			"steps": [{"state": "SUCCEEDED", "description": "Rephrased the query."}]
		},
		"session": "sessions/s1"
	}`

	var resp AnswerResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))

	assert.Equal(t, AnswerStateSucceeded, resp.Answer.State)
	assert.Equal(t, "Revenue grew 12% in Q3.", resp.Answer.AnswerText)
	require.Len(t, resp.Answer.References, 1)
	chunk := resp.Answer.References[0].ChunkInfo
	require.NotNil(t, chunk)
	assert.InDelta(t, 0.93, chunk.RelevanceScore, 1e-9)
	assert.Equal(t, "4", chunk.DocumentMetadata.PageIdentifier)
	require.Len(t, resp.Answer.Steps, 1)
	assert.Equal(t, "sessions/s1", resp.Session)
}

func TestChunkPayload(t *testing.T) {
	const payload = `{
		"name": "projects/p/dataStores/ds1/branches/0/documents/doc-1/chunks/c1",
		"id": "c1",
		"content": "Q3 revenue grew 12% year over year.",
		"documentMetadata": {"uri": "gs://bucket/report.pdf", "title": "Quarterly report"},
		"pageSpan": {"pageStart": 4, "pageEnd": 5},
		"relevanceScore": 0.87
	}`

	var chunk Chunk
	require.NoError(t, json.Unmarshal([]byte(payload), &chunk))

	assert.Equal(t, "c1", chunk.ID)
	assert.Equal(t, "Quarterly report", chunk.DocumentMetadata.Title)
	assert.Equal(t, 4, chunk.PageSpan.PageStart)
	assert.Equal(t, 5, chunk.PageSpan.PageEnd)
	assert.InDelta(t, 0.87, chunk.RelevanceScore, 1e-9)
}

func TestDataStorePayload(t *testing.T) {
	const payload = `{
		"name": "projects/p/locations/global/collections/default_collection/dataStores/ds1",
		"displayName": "docs",
		"industryVertical": "GENERIC",
		"solutionTypes": ["SOLUTION_TYPE_SEARCH"],
		"contentConfig": "CONTENT_REQUIRED",
		"createTime": "2025-01-10T12:00:00Z",
		"documentProcessingConfig": {
			"chunkingConfig": {"layoutBasedChunkingConfig": {"chunkSize": 500, "includeAncestorHeadings": true}},
			"defaultParsingConfig": {"layoutParsingConfig": {}}
		}
	}`

	var store DataStore
	require.NoError(t, json.Unmarshal([]byte(payload), &store))

	assert.Equal(t, IndustryVerticalGeneric, store.IndustryVertical)
	assert.Equal(t, []string{SolutionTypeSearch}, store.SolutionTypes)
	require.NotNil(t, store.DocumentProcessingConfig)
	chunking := store.DocumentProcessingConfig.ChunkingConfig.LayoutBasedChunkingConfig
	require.NotNil(t, chunking)
	assert.Equal(t, 500, chunking.ChunkSize)
	assert.True(t, chunking.IncludeAncestorHeadings)
	assert.NotNil(t, store.DocumentProcessingConfig.DefaultParsingConfig.LayoutParsingConfig)
}
