package response

import "github.com/keshav33450/Slot4Law/internal/data/entity"

type LawyerResponse struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone,omitempty"`
	Location        string   `json:"location"`
	City            string   `json:"city"`
	ExperienceYears int      `json:"experience_years"`
	Languages       []string `json:"languages"`
	PracticeAreas   []string `json:"practice_areas"`
	Forums          []string `json:"forums,omitempty"`
	CourtType       string   `json:"court_type"`
	ConsultationFee float64  `json:"consultation_fee"`
	Bio             string   `json:"bio,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	LinkedIn        string   `json:"linkedin,omitempty"`
	Website         string   `json:"website,omitempty"`
}

func LawyerToResponse(lawyer *entity.Lawyer) LawyerResponse {
	return LawyerResponse{
		ID:              lawyer.ID.String(),
		Name:            lawyer.Name,
		Email:           lawyer.Email,
		Phone:           lawyer.Phone,
		Location:        lawyer.Location,
		City:            lawyer.City,
		ExperienceYears: lawyer.ExperienceYears,
		Languages:       lawyer.Languages,
		PracticeAreas:   lawyer.PracticeAreas,
		Forums:          lawyer.Forums,
		CourtType:       string(lawyer.CourtType),
		ConsultationFee: lawyer.ConsultationFee,
		Bio:             lawyer.Bio,
		ImageURL:        lawyer.ImageURL,
		LinkedIn:        lawyer.LinkedIn,
		Website:         lawyer.Website,
	}
}
