package work24

import (
	"context"

	"github.com/work24-mcp/work24-mcp/internal/extract"
	"github.com/work24-mcp/work24-mcp/internal/payload"
)

const (
	// EndpointTrainingList serves the training course search.
	EndpointTrainingList = "callOpenApiSvcInfo310L01"
	// EndpointTrainingDetail serves one training course.
	EndpointTrainingDetail = "callOpenApiSvcInfo310L02"

	trainingRoot = "HRDNet"
	// Course type code prefix of K-Digital Training.
	kDigitalCode = "C0061"

	defaultCourseRound = "1"
)

type TrainingSearchParams struct {
	Page     int `work24:"pageNum"`
	PageSize int `work24:"pageSize"`
	// Training start date range, YYYYMMDD.
	StartDate string `work24:"srchTraStDt"`
	EndDate   string `work24:"srchTraEndDt"`
	Area1     string `work24:"srchTraArea1"`
	Area2     string `work24:"srchTraArea2"`
	NCS1      string `work24:"srchNcs1"`
	NCS2      string `work24:"srchNcs2"`
	// e.g. C0061S for K-Digital Training.
	CourseType   string `work24:"crseTracseSe"`
	Keyword      string `work24:"srchTraProcessNm"`
	ProviderName string `work24:"srchTraOrganNm"`
}

type TrainingDetailParams struct {
	CourseID    string
	CourseRound string
	OrgID       string
}

type TrainingCourse struct {
	CourseID          string  `json:"course_id"`
	CourseRound       string  `json:"course_round"`
	Title             string  `json:"title"`
	ProviderName      string  `json:"provider_name"`
	Address           *string `json:"address"`
	Phone             *string `json:"phone"`
	StartDate         *string `json:"start_date"`
	EndDate           *string `json:"end_date"`
	NCSCode           *string `json:"ncs_code"`
	Tuition           *int    `json:"tuition"`
	SupportAmount     *int    `json:"support_amount"`
	EmploymentRate3M  *string `json:"employment_rate_3m"`
	SatisfactionScore *string `json:"satisfaction_score"`
	OrgID             *string `json:"org_id"`
	TrainTarget       *string `json:"train_target"`
	TitleLink         *string `json:"title_link"`
}

type TrainingCourseDetail struct {
	CourseID      string  `json:"course_id"`
	CourseRound   string  `json:"course_round"`
	CourseName    string  `json:"course_name"`
	OrgName       string  `json:"org_name"`
	OrgHomepage   *string `json:"org_homepage"`
	OrgAddress    *string `json:"org_address"`
	OrgTel        *string `json:"org_tel"`
	NCSCode       *string `json:"ncs_code"`
	NCSName       *string `json:"ncs_name"`
	TotalDays     *int    `json:"total_days"`
	TotalHours    *int    `json:"total_hours"`
	Tuition       *int    `json:"tuition"`
	SupportAmount *int    `json:"support_amount"`
	Target        *string `json:"target"`
	IsKDigital    bool    `json:"is_k_digital"`
	Curriculum    *string `json:"curriculum"`
}

var trainingCourseSchema = extract.Schema{
	extract.Text("course_id", "", "trprId"),
	extract.Text("course_round", defaultCourseRound, "trprDegr"),
	extract.Text("title", "", "title"),
	extract.Text("provider_name", "", "subTitle"),
	extract.OptText("address", "address"),
	extract.OptText("phone", "telNo"),
	extract.OptDate("start_date", "traStartDate"),
	extract.OptDate("end_date", "traEndDate"),
	extract.OptText("ncs_code", "ncsCd"),
	extract.OptInt("tuition", "courseMan"),
	extract.OptInt("support_amount", "realMan"),
	extract.OptText("employment_rate_3m", "eiEmplRate3"),
	extract.OptText("satisfaction_score", "stdgScor"),
	extract.OptText("org_id", "trainstCstId"),
	extract.OptText("train_target", "trainTarget"),
	extract.OptText("title_link", "titleLink"),
}

// trainingDetailSchema reads a mapping holding both detail sections.
var trainingDetailSchema = extract.Schema{
	extract.Text("course_name", "", "inst_base_info", "trprNm"),
	extract.Text("org_name", "", "inst_base_info", "inoNm"),
	extract.OptText("org_homepage", "inst_base_info", "hpAddr"),
	extract.OptText("org_address", "inst_base_info", "addr"),
	extract.OptText("org_tel", "inst_base_info", "telNo"),
	extract.OptText("ncs_code", "inst_base_info", "ncsCd"),
	extract.OptText("ncs_name", "inst_base_info", "ncsNm"),
	extract.Contains("is_k_digital", kDigitalCode, "inst_base_info", "crseTracseSe"),
	extract.OptInt("total_days", "inst_detail_info", "trDcnt"),
	extract.OptInt("total_hours", "inst_detail_info", "trtm"),
	extract.OptInt("tuition", "inst_detail_info", "courseMan"),
	extract.OptInt("support_amount", "inst_detail_info", "realMan"),
	extract.OptText("target", "inst_detail_info", "trgtCat"),
	extract.OptText("curriculum", "inst_detail_info", "trainGoal"),
}

// FindTrainingCourse searches training courses by start date range.
func (c *Client) FindTrainingCourse(ctx context.Context, params *TrainingSearchParams) (*SearchResult[TrainingCourse], error) {
	q := buildParams(params)
	q["outType"] = "1"

	tree, err := c.Call(ctx, Request{
		Endpoint: EndpointTrainingList,
		Params:   q,
		API:      Training,
		Family:   FamilyHR,
	})
	if err != nil {
		return nil, err
	}

	return parseTrainingList(tree, params.Page, params.PageSize)
}

func parseTrainingList(tree payload.Value, page, pageSize int) (*SearchResult[TrainingCourse], error) {
	root := tree.Get(trainingRoot)
	return newSearchResult[TrainingCourse](trainingCourseSchema, root.Get("scn_cnt"), root.Get("srchList", "scn_list"), page, pageSize)
}

// GetTrainingCourseDetail fetches one course round. The organisation id is
// always sent, even when empty.
func (c *Client) GetTrainingCourseDetail(ctx context.Context, params *TrainingDetailParams) (*TrainingCourseDetail, error) {
	round := params.CourseRound
	if round == "" {
		round = defaultCourseRound
	}

	tree, err := c.Call(ctx, Request{
		Endpoint: EndpointTrainingDetail,
		Params: Params{
			"outType":      "2",
			"srchTrprId":   params.CourseID,
			"srchTrprDegr": round,
			"srchTorgId":   params.OrgID,
		},
		API:    Training,
		Family: FamilyHR,
	})
	if err != nil {
		return nil, err
	}

	return parseTrainingDetail(tree, params.CourseID, round)
}

func parseTrainingDetail(tree payload.Value, courseID, round string) (*TrainingCourseDetail, error) {
	root := tree.Get(trainingRoot)
	node := payload.Mapping(map[string]payload.Value{
		"inst_base_info":   extract.First(root.Get("inst_base_info")),
		"inst_detail_info": extract.First(root.Get("inst_detail_info")),
	})

	detail, err := extract.Decode[TrainingCourseDetail](trainingDetailSchema, node)
	if err != nil {
		return nil, err
	}
	detail.CourseID = courseID
	detail.CourseRound = round

	return &detail, nil
}
