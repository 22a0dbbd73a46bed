package app

import (
	"strings"

	"github.com/haierkeys/quick-notes-service/pkg/code"

	ut "github.com/go-playground/universal-translator"
	"github.com/gin-gonic/gin"
	val "github.com/go-playground/validator/v10"
)

// ValidError 单个绑定/校验错误
type ValidError struct {
	Key     string
	Message string
}

type ValidErrors []*ValidError

func (v *ValidError) Error() string {
	return v.Message
}

func (v ValidErrors) Error() string {
	return strings.Join(v.Errors(), ",")
}

func (v ValidErrors) Errors() []string {
	var errs []string
	for _, err := range v {
		errs = append(errs, err.Error())
	}
	return errs
}

func (v ValidErrors) ErrorsToString() string {
	return strings.Join(v.Errors(), ",")
}

// FieldErrors 转换为响应体携带的字段级错误
func (v ValidErrors) FieldErrors() []code.FieldError {
	var errs []code.FieldError
	for _, err := range v {
		errs = append(errs, code.FieldError{Field: err.Key, Message: err.Message})
	}
	return errs
}

// BindAndValid 绑定请求参数并执行校验
// 校验消息通过 lang 中间件注入的翻译器本地化
func BindAndValid(c *gin.Context, v interface{}) (bool, ValidErrors) {
	var errs ValidErrors

	err := c.ShouldBind(v)
	if err == nil {
		return true, nil
	}

	verrs, ok := err.(val.ValidationErrors)
	if !ok {
		errs = append(errs, &ValidError{
			Key:     "body",
			Message: err.Error(),
		})
		return false, errs
	}

	trans, _ := c.Value("trans").(ut.Translator)
	for _, verr := range verrs {
		message := verr.Error()
		if trans != nil {
			message = verr.Translate(trans)
		}
		errs = append(errs, &ValidError{
			Key:     verr.Field(),
			Message: message,
		})
	}

	return false, errs
}
