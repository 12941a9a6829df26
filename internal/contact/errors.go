package contact

import "fmt"

const (
	MsgMissingFields = "Please fill in all fields"
	MsgInvalidEmail  = "Please enter a valid email address"
	MsgDeliveryError = "Failed to send message. Please try again later."
)

// ValidationError is returned for submissions that must not be sent
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DeliveryError is returned when the mail transport fails
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to deliver message: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
