package handlers

import (
	"net/http"

	"github.com/deouf-dev/talemy-api/internal/services"

	"github.com/gin-gonic/gin"
)

type SubjectHandler struct {
	*BaseHandler
	subjectService services.SubjectService
}

func NewSubjectHandler(base *BaseHandler, subjectService services.SubjectService) *SubjectHandler {
	return &SubjectHandler{
		BaseHandler:    base,
		subjectService: subjectService,
	}
}

func (h *SubjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/subjects", h.List)
}

func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.subjectService.List(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"subjects": subjects})
}
