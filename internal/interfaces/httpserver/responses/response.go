package responses

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MartinSchlott/SimpleMCPSearchServer/utils/platformerrors"
)

type ErrorResponse struct {
	Type          string `json:"type"`
	Error         string `json:"error"`
	ErrorInstance error  `json:"-"`
}

// HandleError handles domain errors and returns appropriate HTTP responses.
// Status code is determined from the error type.
func HandleError(reqCtx *gin.Context, err error, message string) {
	var domainErr *platformerrors.PlatformError
	if errors.As(err, &domainErr) {
		statusCode := platformerrors.ErrorTypeToHTTPStatus(domainErr.GetErrorType())
		reqCtx.AbortWithStatusJSON(statusCode, ErrorResponse{
			Type:          string(domainErr.GetErrorType()),
			Error:         message,
			ErrorInstance: domainErr,
		})
		return
	}

	reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		Type:          string(platformerrors.ErrorTypeInternal),
		Error:         message,
		ErrorInstance: err,
	})
}

// HandleNewError creates a new typed error at the route layer and handles it.
func HandleNewError(reqCtx *gin.Context, errorType platformerrors.ErrorType, message string) {
	err := platformerrors.NewError(platformerrors.LayerRoute, errorType, message, nil)
	reqCtx.Error(err)

	reqCtx.AbortWithStatusJSON(platformerrors.ErrorTypeToHTTPStatus(errorType), ErrorResponse{
		Type:          string(errorType),
		Error:         message,
		ErrorInstance: err,
	})
}
