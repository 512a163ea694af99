package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models/dto"
)

// parseIDParam reads a positive integer path parameter, answering 400 if it is not one.
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		detail := dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid "+name).WithField(name)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}
