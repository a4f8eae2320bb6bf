package app

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"jobboard/internal/common"
	"jobboard/internal/domain/application"
	"jobboard/internal/domain/job"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("experience_level", func(fl validator.FieldLevel) bool {
		return job.IsKnownExperienceLevel(job.ExperienceLevel(fl.Field().String()))
	})
	_ = v.RegisterValidation("job_type", func(fl validator.FieldLevel) bool {
		return job.IsKnownType(job.Type(fl.Field().String()))
	})
	return v
}

// validateInput runs struct tag validation and converts failures into a
// validation error keyed by JSON field name.
func validateInput(input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return common.NewError(common.CodeInternal, "failed to validate input", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describeFieldError(fe)
	}
	return common.NewValidationError("invalid input", fields)
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "required_if":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min", "gte":
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	case "experience_level":
		return "must be one of: " + joinValues(job.ExperienceEntry, job.ExperienceMid, job.ExperienceSenior)
	case "job_type":
		return "must be one of: " + joinValues(job.TypeFullTime, job.TypePartTime, job.TypeInternship, job.TypeContract)
	default:
		return "is invalid"
	}
}

func joinValues[T ~string](values ...T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

func parseApplicationStatus(raw string) (application.Status, error) {
	status := application.Status(strings.ToLower(strings.TrimSpace(raw)))
	if !application.IsKnownStatus(status) {
		return "", common.NewValidationError("invalid status", map[string]string{
			"status": "must be one of: " + joinValues(application.Statuses...),
		})
	}
	return status, nil
}

func parseJobStatus(raw string) (job.Status, error) {
	status := job.Status(strings.ToLower(strings.TrimSpace(raw)))
	if !job.IsKnownStatus(status) {
		return "", common.NewValidationError("invalid status", map[string]string{
			"status": "must be one of: " + joinValues(job.StatusActive, job.StatusClosed),
		})
	}
	return status, nil
}

// cleanList trims entries and drops blanks and duplicates, keeping order.
func cleanList(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	return out
}
