// Package errors provides the unified error-to-response mapping
// Package errors 提供统一的错误到响应映射
package errors

import (
	"errors"

	"github.com/haierkeys/quick-notes-service/internal/middleware"
	"github.com/haierkeys/quick-notes-service/pkg/app"
	"github.com/haierkeys/quick-notes-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 统一错误响应处理
// 服务层返回的 *code.Code 原样输出；其余错误视为未处理的存储故障，
// 只回传通用消息，细节由调用方记录日志
func ErrorResponse(c *gin.Context, err error) {
	var codeErr *code.Code
	if errors.As(err, &codeErr) {
		app.NewResponse(c).ToResponse(codeErr)
		return
	}

	app.NewResponse(c).ToResponse(
		code.ErrorServerInternal.WithDetails(middleware.GetTraceIDFromGin(c)))
}

// ErrorResponseWithCode 使用指定的 Code 对象返回错误响应
func ErrorResponseWithCode(c *gin.Context, codeErr *code.Code, cause error) {
	coded := codeErr
	if cause != nil {
		coded = codeErr.WithDetails(cause.Error())
	}
	app.NewResponse(c).ToResponse(coded)
}
