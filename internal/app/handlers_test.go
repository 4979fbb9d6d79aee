package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moni-ai/moni-insight/pkg/config"
	"github.com/moni-ai/moni-insight/pkg/gemini"
	"github.com/moni-ai/moni-insight/pkg/insight"
	"github.com/moni-ai/moni-insight/pkg/vertex"
	"github.com/moni-ai/moni-insight/pkg/vertex/discovery"
)

type stubService struct {
	searchResults *insight.SearchResults
	searchErr     error
	answerResult  *insight.AnswerResult
	answerErr     error
	insightText   string
	insightErr    error
}

func (s *stubService) SearchDocuments(ctx context.Context, query string) (*insight.SearchResults, error) {
	return s.searchResults, s.searchErr
}

func (s *stubService) AnswerQuery(ctx context.Context, query, session string) (*insight.AnswerResult, error) {
	return s.answerResult, s.answerErr
}

func (s *stubService) GenerateInsight(ctx context.Context, prompt string) (string, error) {
	return s.insightText, s.insightErr
}

type stubAdmin struct {
	createOp  *discovery.Operation
	createErr error
	store     *discovery.DataStore
	getErr    error
	deleteOp  *discovery.Operation
	deleteErr error
	getOp     *discovery.Operation
	getOpName string
	getOpErr  error
	pollOp    *discovery.Operation
	resolved  bool
	pollErr   error
}

func (a *stubAdmin) CreateDataStore(ctx context.Context, dataStoreID string, createAdvancedSiteSearch bool, store *discovery.DataStore) (*discovery.Operation, error) {
	return a.createOp, a.createErr
}

func (a *stubAdmin) GetDataStore(ctx context.Context, dataStoreID string) (*discovery.DataStore, error) {
	return a.store, a.getErr
}

func (a *stubAdmin) DeleteDataStore(ctx context.Context, dataStoreID string) (*discovery.Operation, error) {
	return a.deleteOp, a.deleteErr
}

func (a *stubAdmin) GetOperation(ctx context.Context, name string) (*discovery.Operation, error) {
	a.getOpName = name
	return a.getOp, a.getOpErr
}

func (a *stubAdmin) PollOperation(ctx context.Context, name string, opts *discovery.PollOptions) (*discovery.Operation, bool, error) {
	return a.pollOp, a.resolved, a.pollErr
}

func newTestServer(service InsightService, admin DataStoreAdmin) *Server {
	return NewServer(config.DefaultConfig(), service, admin, false)
}

func doRequest(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	s.Echo().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(&stubService{}, &stubAdmin{})
	rec := doRequest(t, s, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestHandleSearch(t *testing.T) {
	service := &stubService{
		searchResults: &insight.SearchResults{
			Documents: []insight.DocumentResult{{ID: "doc-1", Title: "Quarterly report"}},
			Summary:   "one match",
			TotalSize: 1,
		},
	}
	s := newTestServer(service, &stubAdmin{})
	rec := doRequest(t, s, http.MethodGet, "/search?q=revenue", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var results insight.SearchResults
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results.Documents, 1)
	assert.Equal(t, "Quarterly report", results.Documents[0].Title)
	assert.Equal(t, "one match", results.Summary)
}

func TestHandleSearchMissingQuery(t *testing.T) {
	s := newTestServer(&stubService{}, &stubAdmin{})
	rec := doRequest(t, s, http.MethodGet, "/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleSearchUpstreamStatusError(t *testing.T) {
	service := &stubService{
		searchErr: &vertex.StatusError{StatusCode: http.StatusTooManyRequests, Body: "quota exceeded"},
	}
	s := newTestServer(service, &stubAdmin{})
	rec := doRequest(t, s, http.MethodGet, "/search?q=revenue", "")

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, http.StatusTooManyRequests, errResp.UpstreamStatus)
	assert.Equal(t, "quota exceeded", errResp.Detail)
}

func TestHandleAnswer(t *testing.T) {
	service := &stubService{
		answerResult: &insight.AnswerResult{
			Answer: "Revenue grew 12%.",
			State:  discovery.AnswerStateSucceeded,
		},
	}
	s := newTestServer(service, &stubAdmin{})
	rec := doRequest(t, s, http.MethodPost, "/answer", `{"query": "how did revenue do"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var result insight.AnswerResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "Revenue grew 12%.", result.Answer)
}

func TestHandleAnswerMissingQuery(t *testing.T) {
	s := newTestServer(&stubService{}, &stubAdmin{})
	rec := doRequest(t, s, http.MethodPost, "/answer", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleInsight(t *testing.T) {
	s := newTestServer(&stubService{insightText: "a fresh take"}, &stubAdmin{})
	rec := doRequest(t, s, http.MethodPost, "/insight", `{"prompt": "summarize"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp InsightResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Answer)
	assert.Equal(t, "a fresh take", *resp.Answer)
}

func TestHandleInsightNoAnswer(t *testing.T) {
	s := newTestServer(&stubService{insightErr: gemini.ErrNoAnswer}, &stubAdmin{})
	rec := doRequest(t, s, http.MethodPost, "/insight", `{"prompt": "summarize"}`)

	require.Equal(t, http.StatusOK, rec.Code, "no answer is an outcome, not an error")
	assert.JSONEq(t, `{"answer": null}`, rec.Body.String())
}

func TestHandleCreateDataStore(t *testing.T) {
	admin := &stubAdmin{
		createOp: &discovery.Operation{Name: "operations/create-ds1", Done: false},
	}
	s := newTestServer(&stubService{}, admin)
	rec := doRequest(t, s, http.MethodPost, "/datastores", `{"data_store_id": "ds1"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp OperationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "operations/create-ds1", resp.Name)
	assert.False(t, resp.Done)
}

func TestHandleCreateDataStoreWaitTimeout(t *testing.T) {
	admin := &stubAdmin{
		createOp: &discovery.Operation{Name: "operations/create-ds1", Done: false},
		pollOp:   &discovery.Operation{Name: "operations/create-ds1", Done: false},
		resolved: false,
	}
	s := newTestServer(&stubService{}, admin)
	rec := doRequest(t, s, http.MethodPost, "/datastores", `{"data_store_id": "ds1", "wait": true}`)

	assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
}

func TestHandleCreateDataStoreWaitResolved(t *testing.T) {
	admin := &stubAdmin{
		createOp: &discovery.Operation{Name: "operations/create-ds1", Done: false},
		pollOp:   &discovery.Operation{Name: "operations/create-ds1", Done: true},
		resolved: true,
	}
	s := newTestServer(&stubService{}, admin)
	rec := doRequest(t, s, http.MethodPost, "/datastores", `{"data_store_id": "ds1", "wait": true}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp OperationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Done)
}

func TestHandleDeleteDataStoreNotFound(t *testing.T) {
	admin := &stubAdmin{
		deleteErr: &vertex.StatusError{StatusCode: http.StatusNotFound, Body: `{"error":{"code":404}}`},
	}
	s := newTestServer(&stubService{}, admin)
	rec := doRequest(t, s, http.MethodDelete, "/datastores/missing", "")

	require.Equal(t, http.StatusBadGateway, rec.Code)
	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, http.StatusNotFound, errResp.UpstreamStatus)
}

func TestHandleGetOperation(t *testing.T) {
	admin := &stubAdmin{
		getOp: &discovery.Operation{Name: "projects/p/operations/op-1", Done: true},
	}
	s := newTestServer(&stubService{}, admin)
	rec := doRequest(t, s, http.MethodGet, "/operations/projects/p/operations/op-1", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "projects/p/operations/op-1", admin.getOpName)
	var resp OperationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Done)
}
