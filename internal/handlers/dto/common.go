package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/moogar0880/problems"

	"github.com/rafabene/access-admin/internal/domain/errors"
)

const defaultBaseURL = "http://localhost:8080"

// ErrorResponse é o documento RFC 7807 devolvido em toda falha da API
type ErrorResponse struct {
	*problems.DefaultProblem
	Errors []ValidationError      `json:"errors,omitempty"`
	Meta   map[string]interface{} `json:"meta,omitempty"`
}

// ValidationError descreve um campo rejeitado no binding
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Tag     string `json:"tag,omitempty"`
	Value   string `json:"value,omitempty"`
}

// ResultResponse é o formato {success, message} das operações remotas
type ResultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewErrorResponse monta o problema. problemType é relativo ao base_url da requisição.
func NewErrorResponse(c *gin.Context, problemType, title string, status int, detail string) ErrorResponse {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	problem := problems.NewDetailedProblem(status, detail)
	problem.Type = baseURL + problemType
	problem.Title = title
	problem.Instance = c.Request.URL.Path

	return ErrorResponse{DefaultProblem: problem}
}

// AbortWithProblem grava o documento com o media type application/problem+json
func AbortWithProblem(c *gin.Context, response ErrorResponse) {
	c.Header("Content-Type", problems.ProblemMediaType)
	c.AbortWithStatusJSON(response.Status, response)
}

// ValidationErrorResponseI18n é o 400 com a lista de campos rejeitados
func ValidationErrorResponseI18n(c *gin.Context, validationErrors []ValidationError) ErrorResponse {
	response := NewErrorResponse(c, errors.ProblemTypeValidation,
		T(c, "error.validation.title"), http.StatusBadRequest, T(c, "error.validation.detail"))
	response.Errors = validationErrors
	return response
}

// InternalErrorResponseI18n é o 500 genérico; o erro original só vai para o log
func InternalErrorResponseI18n(c *gin.Context) ErrorResponse {
	return NewErrorResponse(c, errors.ProblemTypeInternal,
		T(c, "error.internal.title"), http.StatusInternalServerError, T(c, "error.internal.detail"))
}
