package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *BolgenError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *BolgenError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

// Validation errors

// ValidationError creates a message-only validation error (e.g. malformed JSON,
// wrong HTTP method). Field-level detail is attached via WithFields.
func ValidationError(message string) *BolgenError {
	return New(CategoryValidation, SeverityWarning, message)
}

// ValidationFailed creates the canonical schema-validation error carrying a
// path-qualified field error list.
func ValidationFailed(fields []FieldError) *BolgenError {
	return New(CategoryValidation, SeverityWarning, "shipment validation failed").
		WithFields(fields)
}

// Render errors

// RenderFault wraps a fatal failure inside the PDF rendering engine. Document
// generation has no partial-success notion, so these are never retried.
func RenderFault(cause error) *BolgenError {
	return Wrap(cause, CategoryRender, SeverityError, "document rendering failed")
}

// Filesystem errors

func FileWriteError(path string, cause error) *BolgenError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "file write failed").
		WithContext("path", path)
}

// Internal errors

func InternalError(message string, cause error) *BolgenError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
