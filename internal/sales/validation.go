package sales

import "demo_sales/internal/validation"

// ValidationError names a sale field that failed validation.
type ValidationError = validation.Error

// ValidationErrors is returned when one or more sale fields are invalid.
type ValidationErrors = validation.Errors
