package services

import (
	stderrors "errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rafabene/access-admin/internal/domain/errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput aplica as tags `validate` e converte a falha em ErrInvalidInput
// com a lista de campos inválidos em Params["Fields"].
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// remove o nome do struct raiz: "ManagerInput.Details[0].Allow" -> "Details[0].Allow"
		ns := fe.Namespace()
		if i := strings.Index(ns, "."); i >= 0 {
			ns = ns[i+1:]
		}
		fields = append(fields, ns)
	}
	return errors.WithParams(errors.ErrInvalidInput, map[string]interface{}{
		"Fields": strings.Join(fields, ", "),
	})
}
