package handler

import (
	"github.com/Mithilesh71320/nextera-code/internal/service"
	"github.com/Mithilesh71320/nextera-code/pkg/utils"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestService    *service.RequestService
	assignmentService *service.AssignmentService
}

func NewRequestHandler(requestService *service.RequestService, assignmentService *service.AssignmentService) *RequestHandler {
	return &RequestHandler{
		requestService:    requestService,
		assignmentService: assignmentService,
	}
}

type AssignRequest struct {
	NurseIDs []uint `json:"nurse_ids"`
}

// SubmitRequest accepts a staffing request from a hospital. No sign-in is needed.
func (h *RequestHandler) SubmitRequest(c *gin.Context) {
	var input service.RequestInput
	if !bindJSON(c, &input) {
		return
	}

	req, err := h.requestService.Submit(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.CreatedResponse(c, service.NewRequestView(*req))
}

// ListRequests returns requests newest first, filtered by ?status and ?q
func (h *RequestHandler) ListRequests(c *gin.Context) {
	var filter service.RequestFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, service.InvalidInput("query", "could not be parsed"))
		return
	}

	result, err := h.requestService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GetRequest returns one request with its progress
func (h *RequestHandler) GetRequest(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.requestService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, view)
}

// ListCandidates returns the nurses that can still be assigned to the request
func (h *RequestHandler) ListCandidates(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	nurses, err := h.assignmentService.ListCandidates(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"nurses": nurses,
		"count":  len(nurses),
	})
}

// ListAssignments returns the nurses already placed on the request
func (h *RequestHandler) ListAssignments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	rows, err := h.assignmentService.ListAssignments(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"assignments": rows,
		"count":       len(rows),
	})
}

// AssignNurses places the selected nurses on the request
func (h *RequestHandler) AssignNurses(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var body AssignRequest
	if !bindJSON(c, &body) {
		return
	}

	result, err := h.assignmentService.Assign(c.Request.Context(), id, body.NurseIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}
