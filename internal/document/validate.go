package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ErrValidation is wrapped by every input validation failure.
var ErrValidation = errors.New("validation failed")

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			return fmt.Errorf("%w: %s is required", ErrValidation, field)
		case "max":
			return fmt.Errorf("%w: %s must be at most %s characters", ErrValidation, field, fe.Param())
		}
		return fmt.Errorf("%w: %s is invalid", ErrValidation, field)
	}
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

func (in CreateInput) Validate() error {
	if strings.TrimSpace(in.Title) == "" {
		return fmt.Errorf("%w: title is required", ErrValidation)
	}
	if err := validate.Struct(in); err != nil {
		return validationError(err)
	}
	return nil
}

func (in AdminCreateInput) Validate() error {
	return in.CreateInput.Validate()
}

func (in UpdateInput) Validate() error {
	if in.Title != nil {
		t := strings.TrimSpace(*in.Title)
		if t == "" {
			return fmt.Errorf("%w: title must not be empty", ErrValidation)
		}
		if len(t) > 300 {
			return fmt.Errorf("%w: title must be at most 300 characters", ErrValidation)
		}
	}
	if in.Description != nil && len(*in.Description) > 2000 {
		return fmt.Errorf("%w: description must be at most 2000 characters", ErrValidation)
	}
	return nil
}

func (in ApproveInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return validationError(err)
	}
	return nil
}
