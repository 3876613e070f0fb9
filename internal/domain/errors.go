package domain

// errors.go defines domain-specific error types.
type domainErr struct {
	message string
}

// Error returns the error message.
func (e domainErr) Error() string {
	return e.message
}

// NotFoundErr represents an error when a requested entity is not found.
type NotFoundErr struct {
	domainErr
}

// NewNotFoundErr creates a new NotFoundErr with the given message.
func NewNotFoundErr(message string) *NotFoundErr {
	return &NotFoundErr{
		domainErr: domainErr{message: message},
	}
}

// ValidationErr represents an error when validation fails.
type ValidationErr struct {
	domainErr
}

// NewValidationErr creates a new ValidationErr with the given message.
func NewValidationErr(message string) *ValidationErr {
	return &ValidationErr{
		domainErr: domainErr{message: message},
	}
}

// ProviderAuthErr represents an embedding or chat provider rejecting the
// configured credentials.
type ProviderAuthErr struct {
	domainErr
}

// NewProviderAuthErr creates a new ProviderAuthErr with the given message.
func NewProviderAuthErr(message string) *ProviderAuthErr {
	return &ProviderAuthErr{
		domainErr: domainErr{message: message},
	}
}

// ProviderErr represents any non-credential provider failure (network, rate
// limit, malformed response).
type ProviderErr struct {
	domainErr
}

// NewProviderErr creates a new ProviderErr with the given message.
func NewProviderErr(message string) *ProviderErr {
	return &ProviderErr{
		domainErr: domainErr{message: message},
	}
}
