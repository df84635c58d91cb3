package serrors

// BaseError is a sentinel carrying a stable machine-readable code.
// Sentinels are compared by identity, so wrap them with %w and match with errors.Is.
type BaseError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	LocaleKey string `json:"locale_key,omitempty"`
}

func NewError(code string, message string, localeKey string) *BaseError {
	return &BaseError{
		Code:      code,
		Message:   message,
		LocaleKey: localeKey,
	}
}

func (e *BaseError) Error() string {
	return e.Message
}

// Coder is implemented by errors exposing a stable code.
type Coder interface {
	ErrorCode() string
}

func (e *BaseError) ErrorCode() string {
	return e.Code
}
