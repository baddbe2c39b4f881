package dto

// ContactRequest defines the public contact form payload.
type ContactRequest struct {
	Name             string `json:"name" form:"name" validate:"required,max=128,letters"`
	Email            string `json:"email" form:"email" validate:"omitempty,email,max=160"`
	Phone            string `json:"phone" form:"phone" validate:"omitempty,max=32"`
	CourseOfInterest string `json:"course" form:"course" validate:"required,max=128"`
	Message          string `json:"message" form:"message" validate:"omitempty,max=5000"`
	Honeypot         string `json:"_note" form:"_note"`
	IPAddress        string `json:"-" form:"-"`
}

// ContactResponse reports the accepted submission.
type ContactResponse struct {
	ReferenceID string `json:"reference_id"`
	Status      string `json:"status"`
}

// ContactFormResponse feeds the public landing form.
type ContactFormResponse struct {
	Courses []CourseResponse `json:"courses"`
}
