package work24

import (
	"context"

	"github.com/work24-mcp/work24-mcp/internal/extract"
	"github.com/work24-mcp/work24-mcp/internal/payload"
)

const (
	// EndpointRecruit serves open recruitment news, list and detail.
	EndpointRecruit = "callOpenApiSvcInfo210L21"

	recruitRoot = "dhsOpenEmpInfoList"
	recruitItem = "dhsOpenEmpInfo"
)

type RecruitSearchParams struct {
	Page     int `work24:"startPage"`
	PageSize int `work24:"display"`
	// Region code, e.g. 11 for Seoul.
	Region          string   `work24:"region"`
	OccupationCodes []string `work24:"occupation"`
	// Y annual, M monthly, D daily, H hourly.
	SalaryType    string `work24:"salTp"`
	MinSalary     int    `work24:"minPay"`
	MaxSalary     int    `work24:"maxPay"`
	EducationCode string `work24:"education"`
	// N entry level, E experienced, Z no preference.
	CareerType string `work24:"career"`
}

type JobPosting struct {
	EmpSeqno       string  `json:"emp_seqno"`
	Company        string  `json:"company"`
	Title          string  `json:"title"`
	CompanyType    *string `json:"company_type"`
	EmploymentType *string `json:"employment_type"`
	StartDate      *string `json:"start_date"`
	EndDate        *string `json:"end_date"`
	LogoURL        *string `json:"logo_url"`
	DetailURL      *string `json:"detail_url"`
	MobileURL      *string `json:"mobile_url"`
}

type JobPostingDetail struct {
	EmpSeqno       string        `json:"emp_seqno"`
	Company        string        `json:"company"`
	Title          string        `json:"title"`
	CompanyType    *string       `json:"company_type"`
	EmploymentType *string       `json:"employment_type"`
	StartDate      *string       `json:"start_date"`
	EndDate        *string       `json:"end_date"`
	DetailURL      *string       `json:"detail_url"`
	MobileURL      *string       `json:"mobile_url"`
	RawData        payload.Value `json:"raw_data"`
}

var jobPostingSchema = extract.Schema{
	extract.Text("emp_seqno", "", "empSeqno"),
	extract.Text("company", "", "empBusiNm"),
	extract.Text("title", "", "empWantedTitle"),
	extract.OptText("company_type", "coClcdNm"),
	extract.OptText("employment_type", "empWantedTypeNm"),
	extract.OptDate("start_date", "empWantedStdt"),
	extract.OptDate("end_date", "empWantedEndt"),
	extract.OptText("logo_url", "regLogImgNm"),
	extract.OptText("detail_url", "empWantedHomepgDetail"),
	extract.OptText("mobile_url", "empWantedMobileUrl"),
}

var jobPostingDetailSchema = extract.Schema{
	extract.Text("company", "", "empBusiNm"),
	extract.Text("title", "", "empWantedTitle"),
	extract.OptText("company_type", "coClcdNm"),
	extract.OptText("employment_type", "empWantedTypeNm"),
	extract.OptDate("start_date", "empWantedStdt"),
	extract.OptDate("end_date", "empWantedEndt"),
	extract.OptText("detail_url", "empWantedHomepgDetail"),
	extract.OptText("mobile_url", "empWantedMobileUrl"),
	extract.Raw("raw_data"),
}

// FindRecruitNotice searches open recruitment news.
func (c *Client) FindRecruitNotice(ctx context.Context, params *RecruitSearchParams) (*SearchResult[JobPosting], error) {
	q := buildParams(params)
	q["callTp"] = "L"

	tree, err := c.Call(ctx, Request{
		Endpoint: EndpointRecruit,
		Params:   q,
		API:      Recruit,
		Family:   FamilyWK,
	})
	if err != nil {
		return nil, err
	}

	return parseRecruitList(tree, params.Page, params.PageSize)
}

func parseRecruitList(tree payload.Value, page, pageSize int) (*SearchResult[JobPosting], error) {
	root := tree.Get(recruitRoot)
	return newSearchResult[JobPosting](jobPostingSchema, root.Get("total"), root.Get(recruitItem), page, pageSize)
}

// GetRecruitDetail fetches one posting. When upstream returns several records
// the first one wins.
func (c *Client) GetRecruitDetail(ctx context.Context, empSeqno string) (*JobPostingDetail, error) {
	tree, err := c.Call(ctx, Request{
		Endpoint: EndpointRecruit,
		Params: Params{
			"callTp":   "D",
			"empSeqno": empSeqno,
		},
		API:    Recruit,
		Family: FamilyWK,
	})
	if err != nil {
		return nil, err
	}

	return parseRecruitDetail(tree, empSeqno)
}

func parseRecruitDetail(tree payload.Value, empSeqno string) (*JobPostingDetail, error) {
	node := extract.First(tree.Get(recruitRoot, recruitItem))
	detail, err := extract.Decode[JobPostingDetail](jobPostingDetailSchema, node)
	if err != nil {
		return nil, err
	}
	detail.EmpSeqno = empSeqno

	return &detail, nil
}
