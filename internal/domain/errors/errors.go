package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound           = errors.New("error.user_not_found")
	ErrUserAlreadyExists      = errors.New("error.user_already_exists")
	ErrRoleNotFound           = errors.New("error.role_not_found")
	ErrRoleAlreadyExists      = errors.New("error.role_already_exists")
	ErrSameRoleName           = errors.New("error.same_role_name")
	ErrRoleNameRequired       = errors.New("error.role_name_required")
	ErrManagerNotFound        = errors.New("error.manager_not_found")
	ErrManagerNameTaken       = errors.New("error.manager_name_taken")
	ErrManagerInactive        = errors.New("error.manager_inactive")
	ErrManagerWithoutDetails  = errors.New("error.manager_without_details")
	ErrDuplicateDetail        = errors.New("error.duplicate_permission_detail")
	ErrUserPermissionNotFound = errors.New("error.user_permission_not_found")
	ErrManagedPermission      = errors.New("error.managed_permission")
	ErrUnauthorized           = errors.New("error.unauthorized")
	ErrForbidden              = errors.New("error.forbidden")
	ErrInvalidInput           = errors.New("error.validation.detail")
)

// Domain errors
// Nota: Estes são códigos de erro (message IDs para i18n).
var (
	ErrInvalidEmail = errors.New("error.invalid_email")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
//
//nolint:misspell
const (
	ProblemTypeValidation        = "/problems/validation-error"
	ProblemTypeNotFound          = "/problems/not-found"
	ProblemTypeConflict          = "/problems/conflict"
	ProblemTypeUnauthorized      = "/problems/unauthorized"
	ProblemTypeForbidden         = "/problems/forbidden"
	ProblemTypeInternal          = "/problems/internal-error"
	ProblemTypeBadRequest        = "/problems/bad-request"
	ProblemTypeUnprocessable     = "/problems/unprocessable"
	ProblemTypeManagedPermission = "/problems/managed-permission"
)

// DomainError representa um erro de domínio com contexto adicional
type DomainError struct {
	Type    string
	Title   string
	Message string
	Params  map[string]interface{}
	Err     error
}

func (e *DomainError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// WithParams anexa parâmetros de interpolação a um erro de negócio
func WithParams(err error, params map[string]interface{}) error {
	return &DomainError{Err: err, Params: params}
}

// MessageID retorna a chave i18n e os parâmetros associados a um erro.
// Erros fora do domínio retornam ok=false.
func MessageID(err error) (key string, params map[string]interface{}, ok bool) {
	var de *DomainError
	if errors.As(err, &de) {
		params = de.Params
		err = de.Err
	}
	for _, known := range knownErrors {
		if errors.Is(err, known) {
			return known.Error(), params, true
		}
	}
	return "", nil, false
}

var knownErrors = []error{
	ErrUserNotFound,
	ErrUserAlreadyExists,
	ErrRoleNotFound,
	ErrRoleAlreadyExists,
	ErrSameRoleName,
	ErrRoleNameRequired,
	ErrManagerNotFound,
	ErrManagerNameTaken,
	ErrManagerInactive,
	ErrManagerWithoutDetails,
	ErrDuplicateDetail,
	ErrUserPermissionNotFound,
	ErrManagedPermission,
	ErrUnauthorized,
	ErrForbidden,
	ErrInvalidInput,
	ErrInvalidEmail,
}
