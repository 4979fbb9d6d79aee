package discovery

import "encoding/json"

// Operation is a long-running operation snapshot as returned by the
// operations endpoints.
type Operation struct {
	Name     string          `json:"name"`
	Metadata json.RawMessage `json:"metadata,omitempty"`
	Done     bool            `json:"done"`
	Response json.RawMessage `json:"response,omitempty"`
	Error    *Status         `json:"error,omitempty"`
}

// Status is the error payload of a failed operation.
type Status struct {
	Code    int                      `json:"code"`
	Message string                   `json:"message"`
	Details []map[string]interface{} `json:"details,omitempty"`
}

// Industry verticals, solution types, and content configs accepted by the
// data store endpoints.
const (
	IndustryVerticalUnspecified = "INDUSTRY_VERTICAL_UNSPECIFIED"
	IndustryVerticalGeneric     = "GENERIC"
	IndustryVerticalMedia       = "MEDIA"
	IndustryVerticalSiteSearch  = "SITE_SEARCH"

	SolutionTypeSearch         = "SOLUTION_TYPE_SEARCH"
	SolutionTypeRecommendation = "SOLUTION_TYPE_RECOMMENDATION"

	ContentConfigNoContent       = "NO_CONTENT"
	ContentConfigContentRequired = "CONTENT_REQUIRED"
	ContentConfigPublicWebsite   = "PUBLIC_WEBSITE"
)

// DataStore describes a document store within a collection.
type DataStore struct {
	Name                     string                    `json:"name,omitempty"`
	DisplayName              string                    `json:"displayName"`
	IndustryVertical         string                    `json:"industryVertical"`
	SolutionTypes            []string                  `json:"solutionTypes"`
	DefaultSchemaID          string                    `json:"defaultSchemaId,omitempty"`
	ContentConfig            string                    `json:"contentConfig"`
	CreateTime               string                    `json:"createTime,omitempty"`
	LanguageInfo             *LanguageInfo             `json:"languageInfo,omitempty"`
	DocumentProcessingConfig *DocumentProcessingConfig `json:"documentProcessingConfig,omitempty"`
	StartingSchema           *Schema                   `json:"startingSchema,omitempty"`
}

type LanguageInfo struct {
	LanguageCode           string `json:"languageCode"`
	NormalizedLanguageCode string `json:"normalizedLanguageCode,omitempty"`
	Language               string `json:"language,omitempty"`
	Region                 string `json:"region,omitempty"`
}

type Schema struct {
	Name         string          `json:"name,omitempty"`
	StructSchema json.RawMessage `json:"structSchema,omitempty"`
	JSONSchema   string          `json:"jsonSchema,omitempty"`
}

type DocumentProcessingConfig struct {
	Name                   string                    `json:"name,omitempty"`
	ChunkingConfig         *ChunkingConfig           `json:"chunkingConfig,omitempty"`
	DefaultParsingConfig   *ParsingConfig            `json:"defaultParsingConfig,omitempty"`
	ParsingConfigOverrides map[string]*ParsingConfig `json:"parsingConfigOverrides,omitempty"`
}

type ChunkingConfig struct {
	LayoutBasedChunkingConfig *LayoutBasedChunkingConfig `json:"layoutBasedChunkingConfig,omitempty"`
}

type LayoutBasedChunkingConfig struct {
	ChunkSize               int  `json:"chunkSize,omitempty"`
	IncludeAncestorHeadings bool `json:"includeAncestorHeadings,omitempty"`
}

type ParsingConfig struct {
	DigitalParsingConfig *DigitalParsingConfig `json:"digitalParsingConfig,omitempty"`
	OCRParsingConfig     *OCRParsingConfig     `json:"ocrParsingConfig,omitempty"`
	LayoutParsingConfig  *LayoutParsingConfig  `json:"layoutParsingConfig,omitempty"`
}

type DigitalParsingConfig struct{}

type OCRParsingConfig struct {
	UseNativeText bool `json:"useNativeText,omitempty"`
}

type LayoutParsingConfig struct{}

// Document is an indexed document within a data store branch.
type Document struct {
	Name              string          `json:"name"`
	ID                string          `json:"id"`
	Content           *Content        `json:"content,omitempty"`
	ParentDocumentID  string          `json:"parentDocumentId,omitempty"`
	StructData        json.RawMessage `json:"structData,omitempty"`
	JSONData          string          `json:"jsonData,omitempty"`
	DerivedStructData json.RawMessage `json:"derivedStructData,omitempty"`
	ACLInfo           *ACLInfo        `json:"aclInfo,omitempty"`
	IndexTime         string          `json:"indexTime,omitempty"`
}

type Content struct {
	MimeType string `json:"mimeType"`
	RawBytes string `json:"rawBytes,omitempty"`
	URI      string `json:"uri,omitempty"`
}

type ACLInfo struct {
	Readers []AccessRestriction `json:"readers,omitempty"`
}

type AccessRestriction struct {
	Principals []Principal `json:"principals,omitempty"`
}

type Principal struct {
	UserID  string `json:"userId,omitempty"`
	GroupID string `json:"groupId,omitempty"`
}

// SearchRequest is the body of a serving-config :search call.
type SearchRequest struct {
	Branch              string                 `json:"branch,omitempty"`
	Query               string                 `json:"query"`
	PageSize            int                    `json:"pageSize,omitempty"`
	PageToken           string                 `json:"pageToken,omitempty"`
	Offset              int                    `json:"offset,omitempty"`
	DataStoreSpecs      []DataStoreSpec        `json:"dataStoreSpecs,omitempty"`
	Filter              string                 `json:"filter,omitempty"`
	CanonicalFilter     string                 `json:"canonicalFilter,omitempty"`
	OrderBy             string                 `json:"orderBy,omitempty"`
	UserInfo            *UserInfo              `json:"userInfo,omitempty"`
	LanguageCode        string                 `json:"languageCode,omitempty"`
	FacetSpecs          []FacetSpec            `json:"facetSpecs,omitempty"`
	BoostSpec           *BoostSpec             `json:"boostSpec,omitempty"`
	QueryExpansionSpec  *QueryExpansionSpec    `json:"queryExpansionSpec,omitempty"`
	SpellCorrectionSpec *SpellCorrectionSpec   `json:"spellCorrectionSpec,omitempty"`
	UserPseudoID        string                 `json:"userPseudoId,omitempty"`
	ContentSearchSpec   *ContentSearchSpec     `json:"contentSearchSpec,omitempty"`
	SafeSearch          bool                   `json:"safeSearch,omitempty"`
	UserLabels          map[string]string      `json:"userLabels,omitempty"`
	Session             string                 `json:"session,omitempty"`
	SessionSpec         *SessionSpec           `json:"sessionSpec,omitempty"`
	Params              map[string]interface{} `json:"params,omitempty"`
}

type DataStoreSpec struct {
	DataStore string `json:"dataStore"`
}

type UserInfo struct {
	UserID    string `json:"userId,omitempty"`
	UserAgent string `json:"userAgent,omitempty"`
}

type FacetSpec struct {
	FacetKey              FacetKey `json:"facetKey"`
	Limit                 int      `json:"limit,omitempty"`
	ExcludedFilterKeys    []string `json:"excludedFilterKeys,omitempty"`
	EnableDynamicPosition bool     `json:"enableDynamicPosition,omitempty"`
}

type FacetKey struct {
	Key              string     `json:"key"`
	Intervals        []Interval `json:"intervals,omitempty"`
	RestrictedValues []string   `json:"restrictedValues,omitempty"`
	Prefixes         []string   `json:"prefixes,omitempty"`
	Contains         []string   `json:"contains,omitempty"`
	CaseInsensitive  bool       `json:"caseInsensitive,omitempty"`
	OrderBy          string     `json:"orderBy,omitempty"`
}

type Interval struct {
	Minimum          float64 `json:"minimum,omitempty"`
	ExclusiveMinimum float64 `json:"exclusiveMinimum,omitempty"`
	Maximum          float64 `json:"maximum,omitempty"`
	ExclusiveMaximum float64 `json:"exclusiveMaximum,omitempty"`
}

type BoostSpec struct {
	ConditionBoostSpecs []ConditionBoostSpec `json:"conditionBoostSpecs,omitempty"`
}

type ConditionBoostSpec struct {
	Condition string  `json:"condition"`
	Boost     float64 `json:"boost"`
}

type QueryExpansionSpec struct {
	Condition            string `json:"condition,omitempty"`
	PinUnexpandedResults bool   `json:"pinUnexpandedResults,omitempty"`
}

type SpellCorrectionSpec struct {
	Mode string `json:"mode,omitempty"`
}

type SessionSpec struct {
	QueryID                      string `json:"queryId,omitempty"`
	SearchResultPersistenceCount int    `json:"searchResultPersistenceCount,omitempty"`
}

type ContentSearchSpec struct {
	SnippetSpec           *SnippetSpec           `json:"snippetSpec,omitempty"`
	SummarySpec           *SummarySpec           `json:"summarySpec,omitempty"`
	ChunkSpec             *ChunkSpec             `json:"chunkSpec,omitempty"`
	ExtractiveContentSpec *ExtractiveContentSpec `json:"extractiveContentSpec,omitempty"`
	SearchResultMode      string                 `json:"searchResultMode,omitempty"`
}

type SnippetSpec struct {
	MaxSnippetCount int  `json:"maxSnippetCount,omitempty"`
	ReturnSnippet   bool `json:"returnSnippet,omitempty"`
}

type SummarySpec struct {
	SummaryResultCount           int              `json:"summaryResultCount,omitempty"`
	IncludeCitations             bool             `json:"includeCitations,omitempty"`
	IgnoreAdversarialQuery       bool             `json:"ignoreAdversarialQuery,omitempty"`
	IgnoreNonSummarySeekingQuery bool             `json:"ignoreNonSummarySeekingQuery,omitempty"`
	ModelPromptSpec              *ModelPromptSpec `json:"modelPromptSpec,omitempty"`
	LanguageCode                 string           `json:"languageCode,omitempty"`
	ModelSpec                    *ModelSpec       `json:"modelSpec,omitempty"`
	UseSemanticChunks            bool             `json:"useSemanticChunks,omitempty"`
}

type ModelPromptSpec struct {
	Preamble string `json:"preamble,omitempty"`
}

type ModelSpec struct {
	Version string `json:"version,omitempty"`
}

type ChunkSpec struct {
	NumPreviousChunks int `json:"numPreviousChunks,omitempty"`
	NumNextChunks     int `json:"numNextChunks,omitempty"`
}

type ExtractiveContentSpec struct {
	MaxExtractiveAnswerCount     int  `json:"maxExtractiveAnswerCount,omitempty"`
	MaxExtractiveSegmentCount    int  `json:"maxExtractiveSegmentCount,omitempty"`
	ReturnExtractiveSegmentScore bool `json:"returnExtractiveSegmentScore,omitempty"`
	NumPreviousSegments          int  `json:"numPreviousSegments,omitempty"`
	NumNextSegments              int  `json:"numNextSegments,omitempty"`
}

// SearchResponse is the body of a serving-config :search response.
type SearchResponse struct {
	Results            []SearchResult      `json:"results,omitempty"`
	Facets             []Facet             `json:"facets,omitempty"`
	TotalSize          int                 `json:"totalSize,omitempty"`
	AttributionToken   string              `json:"attributionToken,omitempty"`
	RedirectURI        string              `json:"redirectUri,omitempty"`
	NextPageToken      string              `json:"nextPageToken,omitempty"`
	CorrectedQuery     string              `json:"correctedQuery,omitempty"`
	Summary            *Summary            `json:"summary,omitempty"`
	QueryExpansionInfo *QueryExpansionInfo `json:"queryExpansionInfo,omitempty"`
	SessionInfo        *SearchSessionInfo  `json:"sessionInfo,omitempty"`
}

type SearchResult struct {
	ID       string    `json:"id,omitempty"`
	Document *Document `json:"document,omitempty"`
	Chunk    *Chunk    `json:"chunk,omitempty"`
}

type Facet struct {
	Key          string       `json:"key"`
	Values       []FacetValue `json:"values,omitempty"`
	DynamicFacet bool         `json:"dynamicFacet,omitempty"`
}

type FacetValue struct {
	Value    string    `json:"value,omitempty"`
	Interval *Interval `json:"interval,omitempty"`
	Count    string    `json:"count,omitempty"`
}

type Summary struct {
	SummaryText           string               `json:"summaryText,omitempty"`
	SummarySkippedReasons []string             `json:"summarySkippedReasons,omitempty"`
	SafetyAttributes      *SafetyAttributes    `json:"safetyAttributes,omitempty"`
	SummaryWithMetadata   *SummaryWithMetadata `json:"summaryWithMetadata,omitempty"`
}

type SafetyAttributes struct {
	Categories []string  `json:"categories,omitempty"`
	Scores     []float64 `json:"scores,omitempty"`
}

type SummaryWithMetadata struct {
	Summary          string            `json:"summary"`
	CitationMetadata *CitationMetadata `json:"citationMetadata,omitempty"`
	References       []Reference       `json:"references,omitempty"`
}

type CitationMetadata struct {
	Citations []Citation `json:"citations,omitempty"`
}

type Citation struct {
	StartIndex string           `json:"startIndex,omitempty"`
	EndIndex   string           `json:"endIndex,omitempty"`
	Sources    []CitationSource `json:"sources,omitempty"`
}

type CitationSource struct {
	ReferenceIndex string `json:"referenceIndex,omitempty"`
	ReferenceID    string `json:"referenceId,omitempty"`
}

type Reference struct {
	Title         string         `json:"title,omitempty"`
	Document      string         `json:"document,omitempty"`
	URI           string         `json:"uri,omitempty"`
	ChunkContents []ChunkContent `json:"chunkContents,omitempty"`
}

type ChunkContent struct {
	Content        string `json:"content"`
	PageIdentifier string `json:"pageIdentifier,omitempty"`
}

type QueryExpansionInfo struct {
	ExpandedQuery     bool   `json:"expandedQuery,omitempty"`
	PinnedResultCount string `json:"pinnedResultCount,omitempty"`
}

type SearchSessionInfo struct {
	Name    string `json:"name,omitempty"`
	QueryID string `json:"queryId,omitempty"`
}

// AnswerRequest is the body of a serving-config :answer call.
type AnswerRequest struct {
	Query                Query                 `json:"query"`
	Session              string                `json:"session,omitempty"`
	SafetySpec           *SafetySpec           `json:"safetySpec,omitempty"`
	RelatedQuestionsSpec *RelatedQuestionsSpec `json:"relatedQuestionsSpec,omitempty"`
	AnswerGenerationSpec *AnswerGenerationSpec `json:"answerGenerationSpec,omitempty"`
	SearchSpec           *SearchSpec           `json:"searchSpec,omitempty"`
}

type Query struct {
	QueryID string `json:"queryId,omitempty"`
	Text    string `json:"text"`
}

type SafetySpec struct {
	Enable bool `json:"enable,omitempty"`
}

type RelatedQuestionsSpec struct {
	Enable bool `json:"enable,omitempty"`
}

type AnswerGenerationSpec struct {
	ModelSpec                    *ModelSpec       `json:"modelSpec,omitempty"`
	PromptSpec                   *ModelPromptSpec `json:"promptSpec,omitempty"`
	IncludeCitations            bool             `json:"includeCitations,omitempty"`
	AnswerLanguageCode          string           `json:"answerLanguageCode,omitempty"`
	IgnoreAdversarialQuery      bool             `json:"ignoreAdversarialQuery,omitempty"`
	IgnoreNonAnswerSeekingQuery bool             `json:"ignoreNonAnswerSeekingQuery,omitempty"`
	IgnoreLowRelevantContent    bool             `json:"ignoreLowRelevantContent,omitempty"`
}

type SearchSpec struct {
	SearchParams *SearchParams `json:"searchParams,omitempty"`
}

type SearchParams struct {
	MaxReturnResults int             `json:"maxReturnResults,omitempty"`
	Filter           string          `json:"filter,omitempty"`
	BoostSpec        *BoostSpec      `json:"boostSpec,omitempty"`
	OrderBy          string          `json:"orderBy,omitempty"`
	SearchResultMode string          `json:"searchResultMode,omitempty"`
	DataStoreSpecs   []DataStoreSpec `json:"dataStoreSpecs,omitempty"`
}

// AnswerResponse is the body of a serving-config :answer response.
type AnswerResponse struct {
	Answer           Answer `json:"answer"`
	Session          string `json:"session,omitempty"`
	AnswerQueryToken string `json:"answerQueryToken,omitempty"`
}

// Answer states as reported by the :answer endpoint.
const (
	AnswerStateInProgress = "IN_PROGRESS"
	AnswerStateFailed     = "FAILED"
	AnswerStateSucceeded  = "SUCCEEDED"
)

type Answer struct {
	Name             string            `json:"name,omitempty"`
	State            string            `json:"state,omitempty"`
	AnswerText       string            `json:"answerText,omitempty"`
	Citations        []AnswerCitation  `json:"citations,omitempty"`
	References       []AnswerReference `json:"references,omitempty"`
	RelatedQuestions []string          `json:"relatedQuestions,omitempty"`
	Steps            []Step            `json:"steps,omitempty"`
}

type AnswerCitation struct {
	StartIndex string                 `json:"startIndex,omitempty"`
	EndIndex   string                 `json:"endIndex,omitempty"`
	Sources    []AnswerCitationSource `json:"sources,omitempty"`
}

type AnswerCitationSource struct {
	ReferenceID string `json:"referenceId,omitempty"`
}

type AnswerReference struct {
	UnstructuredDocumentInfo *UnstructuredDocumentInfo `json:"unstructuredDocumentInfo,omitempty"`
	ChunkInfo                *AnswerChunkInfo          `json:"chunkInfo,omitempty"`
	StructuredDocumentInfo   *StructuredDocumentInfo   `json:"structuredDocumentInfo,omitempty"`
}

type UnstructuredDocumentInfo struct {
	Document      string               `json:"document,omitempty"`
	URI           string               `json:"uri,omitempty"`
	Title         string               `json:"title,omitempty"`
	ChunkContents []AnswerChunkContent `json:"chunkContents,omitempty"`
	StructData    json.RawMessage      `json:"structData,omitempty"`
}

type AnswerChunkContent struct {
	Content        string  `json:"content"`
	PageIdentifier string  `json:"pageIdentifier,omitempty"`
	RelevanceScore float64 `json:"relevanceScore,omitempty"`
}

type AnswerChunkInfo struct {
	Chunk            string                  `json:"chunk,omitempty"`
	Content          string                  `json:"content,omitempty"`
	DocumentMetadata *AnswerDocumentMetadata `json:"documentMetadata,omitempty"`
	RelevanceScore   float64                 `json:"relevanceScore,omitempty"`
}

type AnswerDocumentMetadata struct {
	Document       string          `json:"document,omitempty"`
	URI            string          `json:"uri,omitempty"`
	Title          string          `json:"title,omitempty"`
	PageIdentifier string          `json:"pageIdentifier,omitempty"`
	StructData     json.RawMessage `json:"structData,omitempty"`
}

type StructuredDocumentInfo struct {
	Document   string          `json:"document,omitempty"`
	StructData json.RawMessage `json:"structData,omitempty"`
}

type Step struct {
	State       string `json:"state,omitempty"`
	Description string `json:"description,omitempty"`
	Thought     string `json:"thought,omitempty"`
}

// Chunk is a content chunk of an indexed document.
type Chunk struct {
	Name              string            `json:"name"`
	ID                string            `json:"id"`
	Content           string            `json:"content"`
	DocumentMetadata  *DocumentMetadata `json:"documentMetadata,omitempty"`
	DerivedStructData json.RawMessage   `json:"derivedStructData,omitempty"`
	PageSpan          *PageSpan         `json:"pageSpan,omitempty"`
	ChunkMetadata     *ChunkMetadata    `json:"chunkMetadata,omitempty"`
	RelevanceScore    float64           `json:"relevanceScore,omitempty"`
}

type DocumentMetadata struct {
	URI        string          `json:"uri,omitempty"`
	Title      string          `json:"title,omitempty"`
	StructData json.RawMessage `json:"structData,omitempty"`
}

type PageSpan struct {
	PageStart int `json:"pageStart,omitempty"`
	PageEnd   int `json:"pageEnd,omitempty"`
}

type ChunkMetadata struct {
	PreviousChunks []Chunk `json:"previousChunks,omitempty"`
	NextChunks     []Chunk `json:"nextChunks,omitempty"`
}

// SearchChunksResponse is the body of a chunk-mode serving-config search.
type SearchChunksResponse struct {
	Chunks        []Chunk `json:"chunks,omitempty"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
}

// ListChunksResponse is the body of a document chunk listing.
type ListChunksResponse struct {
	Chunks        []Chunk `json:"chunks,omitempty"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
}

// ListDocumentsResponse is the body of a branch document listing.
type ListDocumentsResponse struct {
	Documents     []Document `json:"documents,omitempty"`
	NextPageToken string     `json:"nextPageToken,omitempty"`
}

// DataConnector describes an external data source wired into a collection.
type DataConnector struct {
	DataSource      string            `json:"dataSource"`
	Params          *ConnectorParams  `json:"params,omitempty"`
	RefreshInterval string            `json:"refreshInterval,omitempty"`
	Entities        []ConnectorEntity `json:"entities,omitempty"`
	SyncMode        string            `json:"syncMode,omitempty"`
}

type ConnectorParams struct {
	InstanceURIs []string `json:"instanceUris,omitempty"`
}

type ConnectorEntity struct {
	EntityName string        `json:"entityName"`
	DataStore  string        `json:"dataStore,omitempty"`
	Params     *EntityParams `json:"params,omitempty"`
}

type EntityParams struct {
	DataSchema       string `json:"dataSchema,omitempty"`
	ContentConfig    string `json:"contentConfig,omitempty"`
	IndustryVertical string `json:"industryVertical,omitempty"`
	AutoGenerateIDs  bool   `json:"autoGenerateIds,omitempty"`
}

// SetupDataConnectorRequest is the body of a :setUpDataConnector call.
type SetupDataConnectorRequest struct {
	CollectionID          string        `json:"collectionId"`
	CollectionDisplayName string        `json:"collectionDisplayName"`
	DataConnector         DataConnector `json:"dataConnector"`
}
