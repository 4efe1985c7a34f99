package tools

import (
	"github.com/work24-mcp/work24-mcp/internal/work24"
	"github.com/work24-mcp/work24-mcp/internal/youth"
)

const (
	defaultPage             = 1
	defaultPageSize         = 10
	defaultTrainingPageSize = 20
	defaultCourseRound      = "1"
	defaultSortOrder        = "DESC"
)

// defaulter is implemented by arguments that fill optional fields before
// validation.
type defaulter interface {
	setDefaults()
}

type FindRecruitNoticeArgs struct {
	Page            int      `json:"page,omitempty" jsonschema:"description=Page number starting at 1" validate:"gte=1"`
	PageSize        int      `json:"page_size,omitempty" jsonschema:"description=Results per page (max 100)" validate:"gte=1,lte=100"`
	Region          string   `json:"region,omitempty" jsonschema:"description=Region code; e.g. 11 for Seoul or 26 for Busan"`
	OccupationCodes []string `json:"occupation_codes,omitempty" jsonschema:"description=Occupation codes; e.g. 023100"`
	SalaryType      string   `json:"salary_type,omitempty" jsonschema:"description=Salary type: Y annual; M monthly; D daily; H hourly" validate:"omitempty,oneof=Y M D H"`
	MinSalary       int      `json:"min_salary,omitempty" jsonschema:"description=Minimum salary in 10000 KRW units" validate:"gte=0"`
	MaxSalary       int      `json:"max_salary,omitempty" jsonschema:"description=Maximum salary in 10000 KRW units" validate:"gte=0"`
	EducationCode   string   `json:"education_code,omitempty" jsonschema:"description=Education level code"`
	CareerType      string   `json:"career_type,omitempty" jsonschema:"description=Career type: N entry level; E experienced; Z no preference" validate:"omitempty,oneof=N E Z"`
}

func (a *FindRecruitNoticeArgs) setDefaults() {
	if a.Page == 0 {
		a.Page = defaultPage
	}
	if a.PageSize == 0 {
		a.PageSize = defaultPageSize
	}
}

func (a *FindRecruitNoticeArgs) params() *work24.RecruitSearchParams {
	return &work24.RecruitSearchParams{
		Page:            a.Page,
		PageSize:        a.PageSize,
		Region:          a.Region,
		OccupationCodes: a.OccupationCodes,
		SalaryType:      a.SalaryType,
		MinSalary:       a.MinSalary,
		MaxSalary:       a.MaxSalary,
		EducationCode:   a.EducationCode,
		CareerType:      a.CareerType,
	}
}

type GetRecruitDetailArgs struct {
	EmpSeqno string `json:"emp_seqno" jsonschema:"description=Job posting id (emp_seqno) from find_recruit_notice" validate:"required"`
}

type FindTrainingCourseArgs struct {
	StartDate    string `json:"start_date" jsonschema:"description=Training start date from (YYYYMMDD)" validate:"required"`
	EndDate      string `json:"end_date" jsonschema:"description=Training start date to (YYYYMMDD)" validate:"required"`
	Page         int    `json:"page,omitempty" jsonschema:"description=Page number starting at 1" validate:"gte=1"`
	PageSize     int    `json:"page_size,omitempty" jsonschema:"description=Results per page (max 100)" validate:"gte=1,lte=100"`
	Area1        string `json:"area1,omitempty" jsonschema:"description=Region code level 1; e.g. 11 for Seoul"`
	Area2        string `json:"area2,omitempty" jsonschema:"description=Region code level 2"`
	NCS1         string `json:"ncs1,omitempty" jsonschema:"description=NCS major category code; e.g. 20 for IT"`
	NCS2         string `json:"ncs2,omitempty" jsonschema:"description=NCS middle category code"`
	CourseType   string `json:"course_type,omitempty" jsonschema:"description=Training type code; e.g. C0061S for K-Digital Training"`
	Keyword      string `json:"keyword,omitempty" jsonschema:"description=Course name keyword"`
	ProviderName string `json:"provider_name,omitempty" jsonschema:"description=Training provider name"`
}

func (a *FindTrainingCourseArgs) setDefaults() {
	if a.Page == 0 {
		a.Page = defaultPage
	}
	if a.PageSize == 0 {
		a.PageSize = defaultTrainingPageSize
	}
}

func (a *FindTrainingCourseArgs) params() *work24.TrainingSearchParams {
	return &work24.TrainingSearchParams{
		Page:         a.Page,
		PageSize:     a.PageSize,
		StartDate:    a.StartDate,
		EndDate:      a.EndDate,
		Area1:        a.Area1,
		Area2:        a.Area2,
		NCS1:         a.NCS1,
		NCS2:         a.NCS2,
		CourseType:   a.CourseType,
		Keyword:      a.Keyword,
		ProviderName: a.ProviderName,
	}
}

type GetTrainingCourseDetailArgs struct {
	CourseID    string `json:"course_id" jsonschema:"description=Course id (course_id) from find_training_course" validate:"required"`
	CourseRound string `json:"course_round,omitempty" jsonschema:"description=Course round; defaults to 1"`
	OrgID       string `json:"org_id,omitempty" jsonschema:"description=Training organization id (org_id)"`
}

func (a *GetTrainingCourseDetailArgs) setDefaults() {
	if a.CourseRound == "" {
		a.CourseRound = defaultCourseRound
	}
}

type FindStrongCompanyArgs struct {
	CompanyTypeCodes []string `json:"company_type_codes,omitempty" jsonschema:"description=Company type codes: 10 strong company; 20 work-life balance; 40 youth friendly"`
	CompanyName      string   `json:"company_name,omitempty" jsonschema:"description=Company name keyword"`
	Page             int      `json:"page,omitempty" jsonschema:"description=Page number starting at 1" validate:"gte=1"`
	PageSize         int      `json:"page_size,omitempty" jsonschema:"description=Results per page (max 100)" validate:"gte=1,lte=100"`
	SortField        string   `json:"sort_field,omitempty" jsonschema:"description=Sort field name"`
	SortOrder        string   `json:"sort_order,omitempty" jsonschema:"description=Sort order: ASC or DESC" validate:"oneof=ASC DESC"`
}

func (a *FindStrongCompanyArgs) setDefaults() {
	if a.Page == 0 {
		a.Page = defaultPage
	}
	if a.PageSize == 0 {
		a.PageSize = defaultPageSize
	}
	if a.SortOrder == "" {
		a.SortOrder = defaultSortOrder
	}
}

func (a *FindStrongCompanyArgs) params() *work24.CompanySearchParams {
	return &work24.CompanySearchParams{
		Page:             a.Page,
		PageSize:         a.PageSize,
		CompanyTypeCodes: a.CompanyTypeCodes,
		CompanyName:      a.CompanyName,
		SortField:        a.SortField,
		SortOrder:        a.SortOrder,
	}
}

type ListYouthProgramsArgs struct{}

type MatchYouthProgramsArgs struct {
	Age              int      `json:"age" jsonschema:"description=Age between 15 and 50" validate:"gte=15,lte=50"`
	EmploymentStatus string   `json:"employment_status" jsonschema:"description=Employment status: 구직자; 재직자; 창업자 or 학생" validate:"required"`
	EducationStatus  string   `json:"education_status,omitempty" jsonschema:"description=Education status: 재학; 휴학; 졸업 or 중퇴"`
	Preferences      []string `json:"preferences,omitempty" jsonschema:"description=Preferred categories: employment; training; allowance; startup; housing; finance" validate:"dive,oneof=employment training allowance startup housing finance"`
	Region           string   `json:"region,omitempty" jsonschema:"description=Preferred region code (not used for matching yet)"`
}

func (a *MatchYouthProgramsArgs) profile() youth.Profile {
	prefs := make([]youth.Category, 0, len(a.Preferences))
	for _, p := range a.Preferences {
		prefs = append(prefs, youth.Category(p))
	}
	return youth.Profile{
		Age:              a.Age,
		EmploymentStatus: a.EmploymentStatus,
		EducationStatus:  a.EducationStatus,
		Preferences:      prefs,
		Region:           a.Region,
	}
}
