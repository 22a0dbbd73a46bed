package code

import "net/http"

// 成功码
var (
	Success = NewSuss(200, http.StatusOK, lang{
		en:    "",
		zh_cn: "",
	})
	SuccessNoteCreated = NewSuss(201, http.StatusCreated, lang{
		en:    "Note created successfully",
		zh_cn: "笔记创建成功",
	})
	SuccessNoteUpdated = NewSuss(202, http.StatusOK, lang{
		en:    "Note updated successfully",
		zh_cn: "笔记更新成功",
	})
	SuccessNoteDeleted = NewSuss(203, http.StatusOK, lang{
		en:    "Note deleted successfully",
		zh_cn: "笔记删除成功",
	})
	SuccessHealth = NewSuss(204, http.StatusOK, lang{
		en:    "Notes API is running",
		zh_cn: "笔记服务运行中",
	})
)

// 通用错误码
var (
	ErrorInvalidParams = NewError(10001, http.StatusBadRequest, lang{
		en:    "Invalid request parameters",
		zh_cn: "请求参数错误",
	})
	ErrorValidation = NewError(10002, http.StatusBadRequest, lang{
		en:    "Validation failed",
		zh_cn: "参数校验失败",
	})
	ErrorNotFoundAPI = NewError(10003, http.StatusNotFound, lang{
		en:    "API endpoint not found",
		zh_cn: "接口不存在",
	})
	ErrorTooManyRequests = NewError(10004, http.StatusTooManyRequests, lang{
		en:    "Too many requests",
		zh_cn: "请求过于频繁",
	})
	ErrorServerInternal = NewError(10005, http.StatusInternalServerError, lang{
		en:    "Internal server error",
		zh_cn: "服务内部错误",
	})
	ErrorStoreUnavailable = NewError(10006, http.StatusInternalServerError, lang{
		en:    "Note store is unavailable",
		zh_cn: "笔记存储不可用",
	})
)

// 笔记业务错误码
var (
	ErrorNoteNotFound = NewError(10101, http.StatusNotFound, lang{
		en:    "Note not found",
		zh_cn: "笔记不存在",
	})
	ErrorNoteListFailed = NewError(10102, http.StatusInternalServerError, lang{
		en:    "Failed to fetch notes",
		zh_cn: "获取笔记列表失败",
	})
	ErrorNoteGetFailed = NewError(10103, http.StatusInternalServerError, lang{
		en:    "Failed to fetch note",
		zh_cn: "获取笔记失败",
	})
	ErrorNoteCreateFailed = NewError(10104, http.StatusInternalServerError, lang{
		en:    "Failed to create note",
		zh_cn: "创建笔记失败",
	})
	ErrorNoteUpdateFailed = NewError(10105, http.StatusInternalServerError, lang{
		en:    "Failed to update note",
		zh_cn: "更新笔记失败",
	})
	ErrorNoteDeleteFailed = NewError(10106, http.StatusInternalServerError, lang{
		en:    "Failed to delete note",
		zh_cn: "删除笔记失败",
	})
	ErrorTagListFailed = NewError(10107, http.StatusInternalServerError, lang{
		en:    "Failed to fetch tags",
		zh_cn: "获取标签失败",
	})
)
