package http

import (
	"github.com/gin-gonic/gin"

	"github.com/rafabene/access-admin/internal/handlers/dto"
)

// respondError converte o erro do serviço em um documento de problema e aborta a requisição
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	dto.AbortWithProblem(c, dto.ProblemFromError(c, err))
}
