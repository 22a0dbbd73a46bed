// Package code defines coded responses shared by every API surface
// Package code 定义所有 API 共用的响应码
package code

import (
	"fmt"
)

// FieldError a single field-level validation failure
// FieldError 单个字段级校验错误
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Code struct {
	// 内部状态码，不会序列化到响应中
	code int
	// HTTP 状态码
	statusCode int
	// 是否成功
	status bool
	// 响应消息
	Lang lang
	// 数据
	data     interface{}
	haveData bool
	// 字段级错误
	fieldErrors []FieldError
	// 错误详细信息，仅用于日志
	details     []string
	haveDetails bool
}

var codes = map[int]string{}

// NewError registers a failure code bound to an HTTP status
// NewError 注册一个绑定 HTTP 状态码的失败响应码
func NewError(code int, statusCode int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("错误码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, statusCode: statusCode, status: false, Lang: l}
}

// NewSuss registers a success code bound to an HTTP status
// NewSuss 注册一个绑定 HTTP 状态码的成功响应码
func NewSuss(code int, statusCode int, l lang) *Code {
	if _, ok := codes[code]; ok {
		panic(fmt.Sprintf("成功码 %d 已经存在，请更换一个", code))
	}
	codes[code] = l.GetMessage()
	return &Code{code: code, statusCode: statusCode, status: true, Lang: l}
}

// Clone 创建一个新的 Code 副本
// 注册的 Code 是全局共享的，携带数据前必须先复制
func (e *Code) Clone() *Code {
	return &Code{
		code:       e.code,
		statusCode: e.statusCode,
		status:     e.status,
		Lang:       e.Lang,
	}
}

func (e *Code) Error() string {
	return e.Msg()
}

func (e *Code) Code() int {
	return e.code
}

func (e *Code) Status() bool {
	return e.status
}

func (e *Code) StatusCode() int {
	return e.statusCode
}

func (e *Code) Msg() string {
	return e.Lang.GetMessage()
}

func (e *Code) Data() interface{} {
	return e.data
}

func (e *Code) HaveData() bool {
	return e.haveData
}

func (e *Code) FieldErrors() []FieldError {
	return e.fieldErrors
}

func (e *Code) HaveFieldErrors() bool {
	return len(e.fieldErrors) > 0
}

func (e *Code) Details() []string {
	return e.details
}

func (e *Code) HaveDetails() bool {
	return e.haveDetails
}

// WithData returns a copy carrying response data
// WithData 返回携带响应数据的副本
func (e *Code) WithData(data interface{}) *Code {
	c := e.Clone()
	c.data = data
	c.haveData = true
	return c
}

// WithFieldErrors returns a copy carrying field-level errors
// WithFieldErrors 返回携带字段级错误的副本
func (e *Code) WithFieldErrors(errs ...FieldError) *Code {
	c := e.Clone()
	c.fieldErrors = append(c.fieldErrors, errs...)
	return c
}

// WithDetails returns a copy carrying log-only details
// WithDetails 返回携带仅用于日志的详情的副本
func (e *Code) WithDetails(details ...string) *Code {
	c := e.Clone()
	c.details = append(c.details, details...)
	c.haveDetails = true
	return c
}
