package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Mithilesh71320/nextera-code/internal/service"
	"github.com/Mithilesh71320/nextera-code/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondError writes err using the status that matches its kind.
// Errors that are not *service.AssignmentError are treated as internal failures.
func respondError(c *gin.Context, err error) {
	var ae *service.AssignmentError
	if !errors.As(err, &ae) {
		_ = c.Error(err)
		utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch ae.Kind {
	case service.KindInvalidInput, service.KindNoSelection:
		status = http.StatusBadRequest
	case service.KindCapacityExceeded:
		status = http.StatusConflict
	case service.KindSessionMissing:
		status = http.StatusUnauthorized
	case service.KindStoreFailure:
		if service.IsNotFound(err) {
			status = http.StatusNotFound
		} else {
			_ = c.Error(err)
		}
	}
	utils.ErrorDetailResponse(c, status, ae.Message, ae)
}

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondError(c, service.InvalidInput(name, "must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}

// bindJSON decodes the body, reporting malformed JSON as invalid input
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, service.InvalidInput("body", "must be a valid JSON object"))
		return false
	}
	return true
}
