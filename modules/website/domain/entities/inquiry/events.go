package inquiry

// SubmittedEvent is published once an inquiry has been stored.
type SubmittedEvent struct {
	Inquiry  Inquiry
	JobTitle string
}
