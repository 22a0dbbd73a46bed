package app

import (
	"github.com/haierkeys/quick-notes-service/pkg/code"

	"github.com/gin-gonic/gin"
)

// VersionInfo version information // 版本信息
type VersionInfo struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GitTag    string `json:"gitTag"`
	BuildTime string `json:"buildTime"`
}

type Response struct {
	Ctx *gin.Context
}

// Pager pagination info on list responses
// Pager 列表响应中的翻页信息
type Pager struct {
	Current int   `json:"current"` // Current page // 当前页码
	Pages   int   `json:"pages"`   // Total pages // 总页数
	Total   int64 `json:"total"`   // Total matched rows // 匹配总行数
}

// Res is the unified response envelope: success/message/data/errors
// Optional fields use omitempty (will not be serialized if empty)
// Res 是统一的响应结构：success/message/data/errors
// 可选字段使用 omitempty（为空则不会被序列化）
type Res struct {
	Success    bool              `json:"success"`
	Message    string            `json:"message,omitempty"`
	Data       interface{}       `json:"data,omitempty"`
	Errors     []code.FieldError `json:"errors,omitempty"`
	Pagination *Pager            `json:"pagination,omitempty"`
}

func NewResponse(ctx *gin.Context) *Response {
	return &Response{
		Ctx: ctx,
	}
}

// GetRequestIP gets the request IP
// GetRequestIP 获取ip
func GetRequestIP(c *gin.Context) string {
	reqIP := c.ClientIP()
	if reqIP == "::1" {
		reqIP = "127.0.0.1"
	}
	return reqIP
}

func GetAccessHost(c *gin.Context) string {
	accessProto := ""
	if proto := c.Request.Header.Get("X-Forwarded-Proto"); proto == "" {
		accessProto = "http" + "://"
	} else {
		accessProto = proto + "://"
	}
	return accessProto + c.Request.Host
}

// ToResponse output to the client: the envelope follows the Code object,
// the HTTP status follows the Code's bound status
// ToResponse 输出给客户端：响应体跟随 Code 对象，HTTP 状态码跟随 Code 绑定的状态
func (r *Response) ToResponse(codeObj *code.Code) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	content := Res{
		Success: codeObj.Status(),
		Message: codeObj.Msg(),
		Data:    codeObj.Data(),
	}

	if codeObj.HaveFieldErrors() {
		content.Errors = codeObj.FieldErrors()
	}

	r.send(codeObj.StatusCode(), content)
}

// ToResponseList outputs a list response with top-level pagination
// ToResponseList 输出带顶层翻页信息的列表响应
func (r *Response) ToResponseList(codeObj *code.Code, list interface{}, page, pageSize int, total int64) {
	r.Ctx.Set("status_code", codeObj.StatusCode())

	pages := 0
	if pageSize > 0 {
		pages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}

	content := Res{
		Success: codeObj.Status(),
		Message: codeObj.Msg(),
		Data:    list,
		Pagination: &Pager{
			Current: page,
			Pages:   pages,
			Total:   total,
		},
	}

	r.send(codeObj.StatusCode(), content)
}

func (r *Response) send(statusCode int, content interface{}) {
	r.Ctx.JSON(statusCode, content)
}
