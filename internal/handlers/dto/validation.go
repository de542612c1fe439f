package dto

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// BindingErrorResponse converte a falha de binding do gin em um problema de validação com os campos
func BindingErrorResponse(c *gin.Context, err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		response := ValidationErrorResponseI18n(c, nil)
		response.Detail = err.Error()
		return response
	}

	fields := make([]ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, ValidationError{
			Field:   fe.Field(),
			Message: fe.Error(),
			Tag:     fe.Tag(),
			Value:   fe.Param(),
		})
	}
	return ValidationErrorResponseI18n(c, fields)
}
