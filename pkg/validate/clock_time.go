// Package validate 提供跨模块共用的字段校验规则，并注册到 gin 的 validator 引擎。
package validate

import (
	"fmt"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ClockTimeTag binding 标签名，校验 24 小时制 HH:MM
const ClockTimeTag = "clocktime"

var clockTimePattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// IsClockTime 判断 s 是否为 00:00-23:59 的 HH:MM 格式
func IsClockTime(s string) bool {
	return clockTimePattern.MatchString(s)
}

// RegisterClockTime 在 validator 实例上注册 clocktime 规则
func RegisterClockTime(v *validator.Validate) error {
	return v.RegisterValidation(ClockTimeTag, func(fl validator.FieldLevel) bool {
		return IsClockTime(fl.Field().String())
	})
}

// RegisterBindingValidators 将自定义规则注册到 gin 默认的 binding 校验器
func RegisterBindingValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("binding 校验引擎类型不受支持: %T", binding.Validator.Engine())
	}
	return RegisterClockTime(v)
}
