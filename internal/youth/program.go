// Package youth loads the local youth-support program catalog and matches it
// against a caller profile.
package youth

// Category is the closed set of program kinds.
type Category string

const (
	CategoryEmployment Category = "employment"
	CategoryTraining   Category = "training"
	CategoryAllowance  Category = "allowance"
	CategoryStartup    Category = "startup"
	CategoryHousing    Category = "housing"
	CategoryFinance    Category = "finance"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryEmployment,
	CategoryTraining,
	CategoryAllowance,
	CategoryStartup,
	CategoryHousing,
	CategoryFinance,
}

const (
	defaultAgeMin = 0
	defaultAgeMax = 100
)

// Program is one catalog record. Empty status lists accept anyone.
type Program struct {
	ID                     string   `json:"program_id" yaml:"program_id" validate:"required"`
	Name                   string   `json:"name" yaml:"name" validate:"required"`
	Category               Category `json:"category" yaml:"category" validate:"required,oneof=employment training allowance startup housing finance"`
	Description            string   `json:"description" yaml:"description"`
	TargetAgeMin           int      `json:"target_age_min" yaml:"target_age_min" validate:"gte=0"`
	TargetAgeMax           int      `json:"target_age_max" yaml:"target_age_max" validate:"gtefield=TargetAgeMin"`
	TargetEmploymentStatus []string `json:"target_employment_status" yaml:"target_employment_status"`
	TargetEducationStatus  []string `json:"target_education_status" yaml:"target_education_status"`
	Benefits               []string `json:"benefits" yaml:"benefits"`
	ApplyChannel           string   `json:"apply_channel" yaml:"apply_channel"`
	ApplyURL               *string  `json:"apply_url" yaml:"apply_url"`
	RelatedAPIID           *string  `json:"related_api_id" yaml:"related_api_id"`
}

// fillLists replaces missing lists with empty ones so they serialize as [].
func (p *Program) fillLists() {
	for _, list := range []*[]string{&p.TargetEmploymentStatus, &p.TargetEducationStatus, &p.Benefits} {
		if *list == nil {
			*list = []string{}
		}
	}
}

// ProgramList is the full catalog as returned to callers.
type ProgramList struct {
	Total int       `json:"total"`
	Items []Program `json:"items"`
}

// ListPrograms wraps the catalog without filtering it.
func ListPrograms(catalog []Program) ProgramList {
	items := catalog
	if items == nil {
		items = []Program{}
	}
	return ProgramList{Total: len(items), Items: items}
}
