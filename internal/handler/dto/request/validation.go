package request

import (
	"sync"
	"time"

	"booking-engine/internal/domain/shared/daterange"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags used by request DTOs.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("civildate", civilDate)
	})
}

func civilDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(daterange.DateLayout, fl.Field().String())
	return err == nil
}
