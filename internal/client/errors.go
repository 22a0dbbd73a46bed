// Package client 提供笔记服务的 HTTP 客户端与界面状态控制器
package client

// Kind 客户端错误分类
type Kind int

const (
	// KindUnknown 无法归类的本地错误
	KindUnknown Kind = iota
	// KindNetwork 请求已发出但未收到响应
	KindNetwork
	// KindServer 服务端返回了失败响应
	KindServer
	// KindMissingID 调用方未提供笔记 ID
	KindMissingID
)

// Error 归一化的客户端错误
// Status 仅在 KindServer 时有意义，为服务端返回的 HTTP 状态码
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func networkError(err error) *Error {
	return &Error{
		Kind:    KindNetwork,
		Message: "Network error - please check your connection and ensure the server is running",
		Err:     err,
	}
}

func serverError(status int, message string) *Error {
	if message == "" {
		message = "Server error occurred"
	}
	return &Error{
		Kind:    KindServer,
		Message: message,
		Status:  status,
	}
}

func unknownError(err error) *Error {
	msg := "An unexpected error occurred"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return &Error{
		Kind:    KindUnknown,
		Message: msg,
		Err:     err,
	}
}

func missingIDError(action string) *Error {
	return &Error{
		Kind:    KindMissingID,
		Message: "Note ID is required for " + action,
	}
}
