package pets

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// petFields es la vista del registro que se valida en cada escritura.
type petFields struct {
	Name         string `json:"name" validate:"required"`
	Birthday     string `json:"birthday" validate:"required"`
	Species      string `json:"species" validate:"required"`
	FavoriteFood string `json:"favoriteFood" validate:"required"`
	Description  string `json:"description" validate:"required,min=40"`
	Price        Money  `json:"price" validate:"gt=0"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func schema() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

func validatePet(p Pet) error {
	err := schema().Struct(petFields{
		Name:         p.Name,
		Birthday:     p.Birthday,
		Species:      p.Species,
		FavoriteFood: p.FavoriteFood,
		Description:  p.Description,
		Price:        p.Price,
	})
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	out := &ValidationError{Fields: make(map[string]string, len(verrs))}
	for _, fe := range verrs {
		out.Fields[fe.Field()] = describe(fe)
	}
	return out
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "gt":
		return "must be greater than 0"
	default:
		return "is invalid"
	}
}
