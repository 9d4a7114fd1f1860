package handlers

import (
	"time"

	"github.com/ganpathioverseas/erp_finance/internal/core/domain"
	"github.com/ganpathioverseas/erp_finance/internal/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// registerValidators adds the finance specific binding tags to gin's validator.
func registerValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("iso_date", validateISODate); err != nil {
		return err
	}
	return v.RegisterValidation("report_status", validateReportStatus)
}

// validateISODate accepts calendar dates in YYYY-MM-DD form.
func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse(dto.DateLayout, fl.Field().String())
	return err == nil
}

// validateReportStatus accepts any spelling ParseReportStatus understands, including "FINAL".
func validateReportStatus(fl validator.FieldLevel) bool {
	_, ok := domain.ParseReportStatus(fl.Field().String())
	return ok
}

// parseDate parses a YYYY-MM-DD value already checked by the iso_date tag.
func parseDate(raw string) (time.Time, error) {
	return time.Parse(dto.DateLayout, raw)
}
