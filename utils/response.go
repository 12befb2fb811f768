package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Business codes carried in JSONResponse.Code. Zero means success.
const (
	CodeOK            = 0
	CodeBadRequest    = 40000
	CodeValidation    = 40020
	CodeBadActor      = 40030
	CodeForbidden     = 40300
	CodeNotFound      = 40400
	CodeRateLimited   = 42901
	CodeInternal      = 50000
	CodeUnwritable    = 50020
	CodeRemoteFailure = 50200
)

// JSONResponse defines the uniform structure for API responses.
type JSONResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Respond writes a JSON response with the given status code.
func Respond(ctx *gin.Context, status int, code int, message string, data interface{}) {
	ctx.JSON(status, JSONResponse{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

// Success returns a standard success response.
func Success(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusOK, CodeOK, "success", data)
}

// Created returns a 201 success response.
func Created(ctx *gin.Context, data interface{}) {
	Respond(ctx, http.StatusCreated, CodeOK, "created", data)
}

// Error returns a standard error response.
func Error(ctx *gin.Context, status int, code int, message string) {
	Respond(ctx, status, code, message, nil)
}

// ErrorWithData returns an error response that carries details, e.g. field errors.
func ErrorWithData(ctx *gin.Context, status int, code int, message string, data interface{}) {
	Respond(ctx, status, code, message, data)
}
