package app

import (
	"errors"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moni-ai/moni-insight/pkg/gemini"
	"github.com/moni-ai/moni-insight/pkg/vertex"
	"github.com/moni-ai/moni-insight/pkg/vertex/discovery"
)

// ErrorResponse is the JSON shape of every error the server returns.
type ErrorResponse struct {
	Error          string `json:"error"`
	Detail         string `json:"detail,omitempty"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}

// AnswerRequest is the body of POST /answer.
type AnswerRequest struct {
	Query   string `json:"query"`
	Session string `json:"session,omitempty"`
}

// InsightRequest is the body of POST /insight.
type InsightRequest struct {
	Prompt string `json:"prompt"`
}

// InsightResponse is the body of a POST /insight response. Answer is null
// when the model produced no text.
type InsightResponse struct {
	Answer *string `json:"answer"`
}

// CreateDataStoreRequest is the body of POST /datastores.
type CreateDataStoreRequest struct {
	DataStoreID              string `json:"data_store_id"`
	DisplayName              string `json:"display_name"`
	CreateAdvancedSiteSearch bool   `json:"create_advanced_site_search"`
	// Wait polls the creation operation to completion before responding.
	Wait bool `json:"wait"`
}

// OperationResponse is the JSON shape of a reported operation.
type OperationResponse struct {
	Name  string            `json:"name"`
	Done  bool              `json:"done"`
	Error *discovery.Status `json:"error,omitempty"`
}

func operationResponse(op *discovery.Operation) *OperationResponse {
	return &OperationResponse{
		Name:  op.Name,
		Done:  op.Done,
		Error: op.Error,
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSearch(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query parameter q is required"})
	}

	results, err := s.service.SearchDocuments(c.Request().Context(), query)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, results)
}

func (s *Server) handleAnswer(c echo.Context) error {
	var req AnswerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.Query == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "query is required"})
	}

	result, err := s.service.AnswerQuery(c.Request().Context(), req.Query, req.Session)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleInsight(c echo.Context) error {
	var req InsightRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.Prompt == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "prompt is required"})
	}

	text, err := s.service.GenerateInsight(c.Request().Context(), req.Prompt)
	if err != nil {
		// No answer is a valid outcome, reported as an explicit null.
		if errors.Is(err, gemini.ErrNoAnswer) {
			return c.JSON(http.StatusOK, InsightResponse{Answer: nil})
		}
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, InsightResponse{Answer: &text})
}

func (s *Server) handleCreateDataStore(c echo.Context) error {
	var req CreateDataStoreRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}
	if req.DataStoreID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "data_store_id is required"})
	}
	displayName := req.DisplayName
	if displayName == "" {
		displayName = req.DataStoreID
	}

	ctx := c.Request().Context()
	op, err := s.admin.CreateDataStore(ctx, req.DataStoreID, req.CreateAdvancedSiteSearch, &discovery.DataStore{
		DisplayName:      displayName,
		IndustryVertical: discovery.IndustryVerticalGeneric,
		SolutionTypes:    []string{discovery.SolutionTypeSearch},
		ContentConfig:    discovery.ContentConfigContentRequired,
	})
	if err != nil {
		return s.writeError(c, err)
	}

	if req.Wait && !op.Done {
		final, resolved, err := s.admin.PollOperation(ctx, op.Name, nil)
		if err != nil {
			return s.writeError(c, err)
		}
		if !resolved {
			return c.JSON(http.StatusGatewayTimeout, ErrorResponse{
				Error:  "operation still running",
				Detail: final.Name,
			})
		}
		op = final
	}
	return c.JSON(http.StatusOK, operationResponse(op))
}

func (s *Server) handleGetDataStore(c echo.Context) error {
	store, err := s.admin.GetDataStore(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, store)
}

func (s *Server) handleDeleteDataStore(c echo.Context) error {
	op, err := s.admin.DeleteDataStore(c.Request().Context(), c.Param("id"))
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, operationResponse(op))
}

func (s *Server) handleGetOperation(c echo.Context) error {
	name := c.Param("*")
	if name == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "operation name is required"})
	}

	op, err := s.admin.GetOperation(c.Request().Context(), name)
	if err != nil {
		return s.writeError(c, err)
	}
	return c.JSON(http.StatusOK, operationResponse(op))
}

// writeError translates the client error taxonomy into an HTTP response.
// Upstream non-2xx responses map to 502 with the upstream status and body
// preserved; everything else is a 500.
func (s *Server) writeError(c echo.Context, err error) error {
	var statusErr *vertex.StatusError
	if errors.As(err, &statusErr) {
		return c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:          "upstream request failed",
			Detail:         statusErr.Body,
			UpstreamStatus: statusErr.StatusCode,
		})
	}

	var authErr *vertex.AuthError
	if errors.As(err, &authErr) {
		log.Printf("[SERVER] Credential acquisition failed: %v", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "credential acquisition failed",
		})
	}

	log.Printf("[SERVER] Request failed: %v", err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:  "internal error",
		Detail: err.Error(),
	})
}
