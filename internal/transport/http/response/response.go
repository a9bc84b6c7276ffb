package response

import "github.com/gin-gonic/gin"

const (
	CodeOK                   = 0
	CodeBadRequest           = 40000
	CodeConfigurationMissing = 40010
	CodeEmptyQuestion        = 40011
	CodeUnknownCategory      = 40012
	CodeNotReady             = 40013
	CodeUnauthorized         = 40100
	CodeSessionNotFound      = 40401
	CodeOperationInProgress  = 40900
	CodeInternalServer       = 50000
	CodeConnectionFailure    = 50001
	CodeIngestionFailure     = 50002
	CodeInvocationFailure    = 50003
)

type APIResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}
