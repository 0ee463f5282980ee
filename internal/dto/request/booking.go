package request

// CreateBookingRequest mirrors the consultation form. Date is the
// calendar day (YYYY-MM-DD) and Time a slot label inside the working
// window; the service normalizes the label before keying.
type CreateBookingRequest struct {
	LawyerID    string `json:"lawyer_id" validate:"required,uuid4"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required"`
	FirstName   string `json:"first_name" validate:"required,max=100"`
	LastName    string `json:"last_name" validate:"max=100"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"max=20"`
	PhoneCode   string `json:"phone_code" validate:"max=8"`
	Timezone    string `json:"timezone" validate:"max=64"`
	LegalMatter string `json:"legal_matter" validate:"max=255"`
	MatterType  string `json:"matter_type" validate:"max=100"`
	CaseType    string `json:"case_type" validate:"max=100"`
	CaseSummary string `json:"case_summary" validate:"max=4000"`
}

type CancelBookingRequest struct {
	SlotKey string `json:"slot_key" validate:"required"`
}

type AvailabilityRequest struct {
	LawyerID string `json:"lawyer_id" validate:"required,uuid4"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
}
