package youth

import (
	"math"
	"sort"

	"go.uber.org/zap"
)

// DefaultLimit is the number of candidates returned by Match.
const DefaultLimit = 10

// Candidate is a program that passed every gate.
type Candidate struct {
	Program Program  `json:"program" yaml:"program"`
	Score   float64  `json:"match_score" yaml:"match_score"`
	Reasons []string `json:"match_reasons" yaml:"match_reasons"`
}

// MatchResult describes the funnel: TotalPrograms and MatchedCount are counted
// before truncation and are independent of len(Items).
type MatchResult struct {
	TotalPrograms int         `json:"total_programs" yaml:"total_programs"`
	MatchedCount  int         `json:"matched_count" yaml:"matched_count"`
	Items         []Candidate `json:"items" yaml:"items"`
}

// Step describes the result of executing a matching stage.
type Step struct {
	Initial int
	Dropped int
	Scored  int
	Left    int
}

type Matcher struct {
	stages []Stage
	limit  int
	logger *zap.Logger
}

// NewMatcher builds a matcher with DefaultStages when none are given.
func NewMatcher(logger *zap.Logger, stages ...Stage) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(stages) == 0 {
		stages = DefaultStages()
	}
	return &Matcher{stages: stages, limit: DefaultLimit, logger: logger}
}

// Stages returns the stage names in execution order.
func (m *Matcher) Stages() []string {
	names := make([]string, 0, len(m.stages))
	for _, s := range m.stages {
		names = append(names, s.Name)
	}
	return names
}

// Match runs every stage over the catalog, then ranks survivors by score.
// Ties keep catalog order.
func (m *Matcher) Match(profile Profile, catalog []Program) MatchResult {
	candidates := make([]Candidate, 0, len(catalog))
	for _, prog := range catalog {
		candidates = append(candidates, Candidate{Program: prog, Reasons: []string{}})
	}

	for _, stage := range m.stages {
		if !stage.appliesTo(profile) {
			m.logger.Debug("match stage skipped", zap.String("name", stage.Name))
			continue
		}

		var info Step
		candidates, info = apply(stage, profile, candidates)

		m.logger.Info("match stage",
			zap.String("name", stage.Name),
			zap.Int("initial", info.Initial),
			zap.Int("dropped", info.Dropped),
			zap.Int("scored", info.Scored),
			zap.Int("left", info.Left),
		)
	}

	for i := range candidates {
		candidates[i].Score = math.Round(candidates[i].Score*100) / 100
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	items := candidates
	if len(items) > m.limit {
		items = items[:m.limit]
	}

	return MatchResult{
		TotalPrograms: len(catalog),
		MatchedCount:  len(candidates),
		Items:         items,
	}
}

func apply(stage Stage, profile Profile, candidates []Candidate) ([]Candidate, Step) {
	info := Step{Initial: len(candidates)}

	next := candidates[:0]
	for _, c := range candidates {
		reason, ok := stage.Check(profile, c.Program)
		if !ok {
			if stage.Gate {
				info.Dropped++
				continue
			}
			next = append(next, c)
			continue
		}

		c.Score += stage.Weight
		c.Reasons = append(c.Reasons, reason)
		info.Scored++
		next = append(next, c)
	}

	info.Left = len(next)

	return next, info
}
