package tools

import (
	"context"
	"sort"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/work24-mcp/work24-mcp/internal/work24"
	"github.com/work24-mcp/work24-mcp/internal/youth"
)

// Tool names.
const (
	FindRecruitNotice       = "find_recruit_notice"
	GetRecruitDetail        = "get_recruit_detail"
	FindTrainingCourse      = "find_training_course"
	GetTrainingCourseDetail = "get_training_course_detail"
	FindStrongCompany       = "find_strong_company"
	ListYouthPrograms       = "list_youth_programs"
	MatchYouthPrograms      = "match_youth_programs"
)

// ErrUnknownTool is returned by Registry.Call for names that are not registered.
var ErrUnknownTool = errors.New("unknown tool")

// Work24 is the upstream API used by the tools.
type Work24 interface {
	FindRecruitNotice(ctx context.Context, params *work24.RecruitSearchParams) (*work24.SearchResult[work24.JobPosting], error)
	GetRecruitDetail(ctx context.Context, empSeqno string) (*work24.JobPostingDetail, error)
	FindTrainingCourse(ctx context.Context, params *work24.TrainingSearchParams) (*work24.SearchResult[work24.TrainingCourse], error)
	GetTrainingCourseDetail(ctx context.Context, params *work24.TrainingDetailParams) (*work24.TrainingCourseDetail, error)
	FindStrongCompany(ctx context.Context, params *work24.CompanySearchParams) (*work24.SearchResult[work24.Company], error)
}

// Youth is the local program catalog used by the tools.
type Youth interface {
	List(ctx context.Context) (youth.ProgramList, error)
	Match(ctx context.Context, profile youth.Profile) (youth.MatchResult, error)
}

// Deps aggregates dependencies shared across all tools.
type Deps struct {
	Work24 Work24
	Youth  Youth
	Logger *zap.Logger
}

type Registry struct {
	tools  []Tool
	byName map[string]Tool
}

// NewRegistry builds the full tool set.
func NewRegistry(deps Deps) *Registry {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}
	w := deps.Work24
	y := deps.Youth

	list := []Tool{
		newTool(FindRecruitNotice,
			"Search job postings from Work24 open recruitment news (공채속보). Returns the total count and one page of postings.",
			log, func(ctx context.Context, in *FindRecruitNoticeArgs) (*work24.SearchResult[work24.JobPosting], error) {
				res, err := w.FindRecruitNotice(ctx, in.params())
				return res, surface(err)
			}),
		newTool(GetRecruitDetail,
			"Get the details of one job posting by emp_seqno from find_recruit_notice.",
			log, func(ctx context.Context, in *GetRecruitDetailArgs) (*work24.JobPostingDetail, error) {
				res, err := w.GetRecruitDetail(ctx, in.EmpSeqno)
				return res, surface(err)
			}),
		newTool(FindTrainingCourse,
			"Search training courses (내일배움카드, K-Digital Training) starting within a date range, with employment rates.",
			log, func(ctx context.Context, in *FindTrainingCourseArgs) (*work24.SearchResult[work24.TrainingCourse], error) {
				res, err := w.FindTrainingCourse(ctx, in.params())
				return res, surface(err)
			}),
		newTool(GetTrainingCourseDetail,
			"Get the details of one training course round, including the organization and curriculum.",
			log, func(ctx context.Context, in *GetTrainingCourseDetailArgs) (*work24.TrainingCourseDetail, error) {
				res, err := w.GetTrainingCourseDetail(ctx, &work24.TrainingDetailParams{
					CourseID:    in.CourseID,
					CourseRound: in.CourseRound,
					OrgID:       in.OrgID,
				})
				return res, surface(err)
			}),
		newTool(FindStrongCompany,
			"Search strong and youth friendly companies (강소기업) from Work24.",
			log, func(ctx context.Context, in *FindStrongCompanyArgs) (*work24.SearchResult[work24.Company], error) {
				res, err := w.FindStrongCompany(ctx, in.params())
				return res, surface(err)
			}),
		newTool(ListYouthPrograms,
			"List every youth support program in the local catalog.",
			log, func(ctx context.Context, _ *ListYouthProgramsArgs) (youth.ProgramList, error) {
				return y.List(ctx)
			}),
		newTool(MatchYouthPrograms,
			"Match youth support programs to a profile. Returns up to 10 programs sorted by match score with the reasons for each match.",
			log, func(ctx context.Context, in *MatchYouthProgramsArgs) (youth.MatchResult, error) {
				return y.Match(ctx, in.profile())
			}),
	}

	r := &Registry{byName: make(map[string]Tool, len(list))}
	for _, t := range list {
		r.tools = append(r.tools, t)
		r.byName[t.Name()] = t
	}
	return r
}

// List returns the tools sorted by name.
func (r *Registry) List() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

func (r *Registry) Lookup(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Call runs the named tool with JSON arguments.
func (r *Registry) Call(ctx context.Context, name, input string) (string, error) {
	t, ok := r.Lookup(name)
	if !ok {
		return "", errors.Wrapf(ErrUnknownTool, "%q", name)
	}
	return t.Call(ctx, input)
}

// RegisterMCP registers every tool on the server.
func (r *Registry) RegisterMCP(registrator McpServerRegistrator) error {
	for _, t := range r.tools {
		if err := t.RegisterMCP(registrator); err != nil {
			return errors.Wrapf(err, "registering %s", t.Name())
		}
	}
	return nil
}
