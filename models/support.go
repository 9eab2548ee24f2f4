package models

// SupportType distinguishes a one-tap pledge from one that carries supporter details
type SupportType string

const (
	SupportTypeQuick    SupportType = "Quick Support"
	SupportTypeDetailed SupportType = "Detailed Support"
)

// SupportSubmission is the body of POST /api/support and POST /api/support/card
type SupportSubmission struct {
	SupportType      SupportType `json:"supportType"`
	Name             string      `json:"name"`
	EnrollmentNumber string      `json:"enrollmentNumber"`
	District         string      `json:"district"`
	BarAssociation   string      `json:"barAssociation"`
	Phone            string      `json:"phone"`
	Language         string      `json:"language"`
	CustomMessage    string      `json:"customMessage"`
	Format           string      `json:"format"`
}

// Supporter extracts the supporter identity fields
func (s SupportSubmission) Supporter() SupporterDetails {
	return SupporterDetails{
		Name:             s.Name,
		EnrollmentNumber: s.EnrollmentNumber,
		District:         s.District,
		BarAssociation:   s.BarAssociation,
		Phone:            s.Phone,
	}.Trimmed()
}

// ResolvedType returns the declared support type, inferring it from the details when absent
func (s SupportSubmission) ResolvedType() SupportType {
	switch s.SupportType {
	case SupportTypeQuick, SupportTypeDetailed:
		return s.SupportType
	}
	if s.Supporter().HasAny() {
		return SupportTypeDetailed
	}
	return SupportTypeQuick
}
