package validation

import (
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/sheetbridge/excel-mcp-server/pkg/xlerr"
)

var (
	v        *validator.Validate
	initOnce sync.Once

	cellRe = regexp.MustCompile(`^\$?[A-Za-z]{1,3}\$?[0-9]+$`)
)

// Validator returns a singleton validator with custom rules registered.
func Validator() *validator.Validate {
	initOnce.Do(func() {
		v = validator.New()
		// Custom: workbook path must have a supported extension
		_ = v.RegisterValidation("excel_path", func(fl validator.FieldLevel) bool {
			s := strings.ToLower(strings.TrimSpace(fl.Field().String()))
			if s == "" {
				return false
			}
			return strings.HasSuffix(s, ".xlsx") || strings.HasSuffix(s, ".xls") || strings.HasSuffix(s, ".xlsm")
		})
		// Custom: single A1-style cell reference
		_ = v.RegisterValidation("a1cell", func(fl validator.FieldLevel) bool {
			return cellRe.MatchString(strings.TrimSpace(fl.Field().String()))
		})
		// Custom: A1-style range (A1:B2) or single cell
		_ = v.RegisterValidation("a1range", func(fl validator.FieldLevel) bool {
			s := strings.TrimSpace(fl.Field().String())
			if s == "" {
				return false
			}
			parts := strings.Split(s, ":")
			if len(parts) > 2 {
				return false
			}
			for _, p := range parts {
				if !cellRe.MatchString(p) {
					return false
				}
			}
			return true
		})
	})
	return v
}

// ValidateStruct validates tool input structs and returns a tagged Validation
// error with a message a caller can act on, or nil when valid.
func ValidateStruct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok || len(ve) == 0 {
		return xlerr.New(xlerr.Validation, "invalid inputs")
	}
	fe := ve[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return xlerr.New(xlerr.Validation, "%s is required", field)
	case "excel_path":
		return xlerr.New(xlerr.Validation, "%s must be an Excel file (.xlsx, .xls, .xlsm)", field)
	case "a1cell":
		return xlerr.New(xlerr.Validation, "%s must be an A1-style cell reference (e.g. B2)", field)
	case "a1range":
		return xlerr.New(xlerr.Validation, "%s must be an A1-style range (e.g. A1:D10)", field)
	case "min", "max", "gte", "lte":
		return xlerr.New(xlerr.Validation, "%s must satisfy %s=%s", field, fe.Tag(), fe.Param())
	case "oneof":
		return xlerr.New(xlerr.Validation, "%s must be one of: %s", field, fe.Param())
	}
	return xlerr.New(xlerr.Validation, "invalid %s", field)
}
