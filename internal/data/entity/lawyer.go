package entity

type CourtType string

const (
	CourtTypeSupreme  CourtType = "Supreme Court"
	CourtTypeHigh     CourtType = "High Court"
	CourtTypeDistrict CourtType = "District Court"
	CourtTypeOther    CourtType = "Other"
)

type Lawyer struct {
	Base
	Name            string    `db:"name"`
	Email           string    `db:"email"`
	Phone           string    `db:"phone"`
	Location        string    `db:"location"`
	City            string    `db:"city"`
	ExperienceYears int       `db:"experience_years"`
	Languages       []string  `db:"languages"`
	PracticeAreas   []string  `db:"practice_areas"`
	Forums          []string  `db:"forums"`
	CourtType       CourtType `db:"court_type"`
	ConsultationFee float64   `db:"consultation_fee"`
	Bio             string    `db:"bio"`
	ImageURL        string    `db:"image_url"`
	LinkedIn        string    `db:"linkedin"`
	Website         string    `db:"website"`
}
