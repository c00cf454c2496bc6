package validation

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var (
	// validate is a singleton validator instance
	validate *validator.Validate

	// Validation constants
	MaxBatchSources = 1000
	MinBatchSources = 1
	MaxWorkers      = 256
	MaxTopBuckets   = 1000
)

func init() {
	validate = validator.New()
}

// StatsRequest represents a request for path statistics from one source
type StatsRequest struct {
	Source      uint64 `json:"source"`
	Denominator string `json:"denominator" validate:"omitempty,oneof=edge-sources reachable distinct"`
}

// BatchStatsRequest represents a request for statistics from several sources
type BatchStatsRequest struct {
	Sources     []uint64 `json:"sources" validate:"required,min=1,max=1000"`
	Denominator string   `json:"denominator" validate:"omitempty,oneof=edge-sources reachable distinct"`
	Workers     int      `json:"workers" validate:"omitempty,min=1,max=256"`
}

// DistributionRequest represents a request for a distance histogram
type DistributionRequest struct {
	Source uint64 `json:"source"`
	Top    int    `json:"top" validate:"omitempty,min=1,max=1000"`
}

// ValidateStatsRequest validates a single-source statistics request
func ValidateStatsRequest(req *StatsRequest) error {
	if req == nil {
		return errors.New("stats request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// ValidateBatchStatsRequest validates a multi-source statistics request
func ValidateBatchStatsRequest(req *BatchStatsRequest) error {
	if req == nil {
		return errors.New("batch stats request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	return ValidateBatchSources(len(req.Sources))
}

// ValidateDistributionRequest validates a histogram request
func ValidateDistributionRequest(req *DistributionRequest) error {
	if req == nil {
		return errors.New("distribution request cannot be nil")
	}

	if err := validate.Struct(req); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// ValidateBatchSources validates the number of sources in a batch request
func ValidateBatchSources(count int) error {
	if count < MinBatchSources {
		return fmt.Errorf("batch must name at least %d source, got %d", MinBatchSources, count)
	}
	if count > MaxBatchSources {
		return fmt.Errorf("batch must not exceed %d sources, got %d", MaxBatchSources, count)
	}
	return nil
}

// formatValidationError converts validator errors to a more user-friendly format
func formatValidationError(err error) error {
	if err == nil {
		return nil
	}

	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	// Return the first validation error in a user-friendly format
	for _, e := range validationErrs {
		field := e.Field()
		tag := e.Tag()
		param := e.Param()

		switch tag {
		case "required":
			return fmt.Errorf("%s: field is required", field)
		case "min":
			return fmt.Errorf("%s: must be at least %s", field, param)
		case "max":
			return fmt.Errorf("%s: must not exceed %s", field, param)
		case "oneof":
			return fmt.Errorf("%s: must be one of %s", field, param)
		default:
			return fmt.Errorf("%s: validation failed (%s)", field, tag)
		}
	}

	return err
}
