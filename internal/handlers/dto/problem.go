package dto

import (
	stderrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafabene/access-admin/internal/domain/errors"
)

type problemMapping struct {
	status      int
	problemType string
	titleKey    string
}

// problemMappings associa cada erro de negócio ao status e tipo do problema
var problemMappings = []struct {
	err     error
	mapping problemMapping
}{
	{errors.ErrUserNotFound, problemMapping{http.StatusNotFound, errors.ProblemTypeNotFound, "error.not_found.title"}},
	{errors.ErrRoleNotFound, problemMapping{http.StatusNotFound, errors.ProblemTypeNotFound, "error.not_found.title"}},
	{errors.ErrManagerNotFound, problemMapping{http.StatusNotFound, errors.ProblemTypeNotFound, "error.not_found.title"}},
	{errors.ErrUserPermissionNotFound, problemMapping{http.StatusNotFound, errors.ProblemTypeNotFound, "error.not_found.title"}},
	{errors.ErrRoleAlreadyExists, problemMapping{http.StatusConflict, errors.ProblemTypeConflict, "error.conflict.title"}},
	{errors.ErrManagerNameTaken, problemMapping{http.StatusConflict, errors.ProblemTypeConflict, "error.conflict.title"}},
	{errors.ErrUserAlreadyExists, problemMapping{http.StatusConflict, errors.ProblemTypeConflict, "error.conflict.title"}},
	{errors.ErrRoleNameRequired, problemMapping{http.StatusBadRequest, errors.ProblemTypeValidation, "error.validation.title"}},
	{errors.ErrInvalidInput, problemMapping{http.StatusBadRequest, errors.ProblemTypeValidation, "error.validation.title"}},
	{errors.ErrInvalidEmail, problemMapping{http.StatusBadRequest, errors.ProblemTypeValidation, "error.validation.title"}},
	{errors.ErrSameRoleName, problemMapping{http.StatusUnprocessableEntity, errors.ProblemTypeUnprocessable, "error.unprocessable.title"}},
	{errors.ErrManagerWithoutDetails, problemMapping{http.StatusUnprocessableEntity, errors.ProblemTypeUnprocessable, "error.unprocessable.title"}},
	{errors.ErrDuplicateDetail, problemMapping{http.StatusUnprocessableEntity, errors.ProblemTypeUnprocessable, "error.unprocessable.title"}},
	{errors.ErrManagerInactive, problemMapping{http.StatusUnprocessableEntity, errors.ProblemTypeUnprocessable, "error.unprocessable.title"}},
	{errors.ErrManagedPermission, problemMapping{http.StatusForbidden, errors.ProblemTypeManagedPermission, "error.managed_permission.title"}},
	{errors.ErrUnauthorized, problemMapping{http.StatusUnauthorized, errors.ProblemTypeUnauthorized, "error.unauthorized.title"}},
	{errors.ErrForbidden, problemMapping{http.StatusForbidden, errors.ProblemTypeForbidden, "error.forbidden.title"}},
}

// ProblemFromError converte um erro de serviço em um documento RFC 7807 traduzido.
// Erros desconhecidos viram 500 com mensagem genérica.
func ProblemFromError(c *gin.Context, err error) ErrorResponse {
	key, params, ok := errors.MessageID(err)
	if !ok {
		return InternalErrorResponseI18n(c)
	}

	for _, pm := range problemMappings {
		if !stderrors.Is(err, pm.err) {
			continue
		}
		response := NewErrorResponse(c, pm.mapping.problemType, T(c, pm.mapping.titleKey), pm.mapping.status, T(c, key, params))
		if fields, ok := params["Fields"]; ok {
			response.Meta = map[string]interface{}{"fields": fields}
		}
		return response
	}

	return InternalErrorResponseI18n(c)
}

// ErrorMessage traduz o erro para uso nos resultados por item das operações em lote
func ErrorMessage(c *gin.Context, err error) string {
	if key, params, ok := errors.MessageID(err); ok {
		return T(c, key, params)
	}
	return err.Error()
}
