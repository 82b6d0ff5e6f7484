package models

// CheckoutRequest model for creating a hosted checkout session
type CheckoutRequest struct {
	LessonID    string `json:"lessonId" validate:"required"`
	LessonTitle string `json:"lessonTitle" validate:"required,max=200"`
}

// CheckoutSession describes what the payment provider should charge
type CheckoutSession struct {
	LessonID    string
	LessonTitle string
	Email       string
	Amount      int64 // minor units of Currency
	Currency    string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// CheckoutResponse is returned with the provider's redirect URL
type CheckoutResponse struct {
	URL string `json:"url"`
}
