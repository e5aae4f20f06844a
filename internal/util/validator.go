package util

import (
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators 向 gin 的校验引擎注册自定义规则
//   - isodate: 空字符串或 YYYY-MM-DD
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			v.RegisterValidation("isodate", validateISODate)
		}
	})
}

func validateISODate(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	_, err := time.Parse(DateFormat, s)
	return err == nil
}
