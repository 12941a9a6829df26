package models

// ContactMessage represents a contact form submission
type ContactMessage struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,contactemail"`
	Subject string `json:"subject" validate:"required"`
	Body    string `json:"message" validate:"required"`
}

// Complaint represents a complaints page submission
type Complaint struct {
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,contactemail"`
	Complaint string `json:"complaint" validate:"required"`
}

// Notification is a composed outbound email
type Notification struct {
	To      string
	ReplyTo string
	Subject string
	HTML    string
}
