package apperror

import (
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func Init() {
	// Daftarkan fungsi kustom ke validator bawaan Gin
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			// Mengambil nama dari tag json (contoh: `json:"id_card_number"`)
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("thai_id", ValidateThaiID)
	}
}

// ValidateThaiID accepts an empty value or exactly 13 ASCII digits.
func ValidateThaiID(fl validator.FieldLevel) bool {
	return IsThaiID(fl.Field().String())
}

func IsThaiID(v string) bool {
	if v == "" {
		return true
	}
	if len(v) != 13 {
		return false
	}
	for _, r := range v {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
