package handler

import (
	"github.com/Mithilesh71320/nextera-code/internal/service"
	"github.com/Mithilesh71320/nextera-code/pkg/utils"

	"github.com/gin-gonic/gin"
)

type NurseHandler struct {
	nurseService *service.NurseService
}

func NewNurseHandler(nurseService *service.NurseService) *NurseHandler {
	return &NurseHandler{
		nurseService: nurseService,
	}
}

// ListNurses returns the active roster, optionally filtered by ?department, ?q and ?sort
func (h *NurseHandler) ListNurses(c *gin.Context) {
	var filter service.NurseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, service.InvalidInput("query", "could not be parsed"))
		return
	}

	result, err := h.nurseService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// CreateNurse registers a new active nurse
func (h *NurseHandler) CreateNurse(c *gin.Context) {
	var input service.NurseInput
	if !bindJSON(c, &input) {
		return
	}

	nurse, err := h.nurseService.Register(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, nurse)
}

// ListDepartments returns departments that have active nurses
func (h *NurseHandler) ListDepartments(c *gin.Context) {
	departments, err := h.nurseService.Departments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"departments": departments,
		"count":       len(departments),
	})
}

// DeactivateNurse soft-deletes a nurse
func (h *NurseHandler) DeactivateNurse(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.nurseService.Deactivate(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	utils.MessageResponse(c, "Nurse deactivated")
}
