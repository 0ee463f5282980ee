package request

// ListLawyersRequest carries the directory filters from query params.
// Category is a coarse practice-area group that the service expands
// into keywords before hitting the repository.
type ListLawyersRequest struct {
	PaginatedRequest
	Search        string `json:"search"`
	City          string `json:"city"`
	CourtType     string `json:"court_type"`
	Language      string `json:"language"`
	MinExperience int    `json:"min_experience" validate:"min=0"`
	Category      string `json:"category"`
}

type CreateLawyerRequest struct {
	Name            string   `json:"name" validate:"required,max=150"`
	Email           string   `json:"email" validate:"required,email"`
	Phone           string   `json:"phone" validate:"max=20"`
	Location        string   `json:"location" validate:"max=255"`
	City            string   `json:"city" validate:"max=100"`
	ExperienceYears int      `json:"experience_years" validate:"min=0,max=80"`
	Languages       []string `json:"languages"`
	PracticeAreas   []string `json:"practice_areas" validate:"required,min=1"`
	Forums          []string `json:"forums"`
	CourtType       string   `json:"court_type" validate:"required,oneof=supreme high district other"`
	ConsultationFee float64  `json:"consultation_fee" validate:"min=0"`
	Bio             string   `json:"bio" validate:"max=4000"`
	ImageURL        string   `json:"image_url" validate:"omitempty,url"`
	LinkedIn        string   `json:"linkedin" validate:"omitempty,url"`
	Website         string   `json:"website" validate:"omitempty,url"`
}

type UpdateLawyerRequest struct {
	CreateLawyerRequest
}
