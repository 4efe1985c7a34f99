package youth

import "context"

// Service answers catalog queries. It holds no per-request state.
type Service struct {
	source  Source
	matcher *Matcher
}

func NewService(source Source, matcher *Matcher) *Service {
	return &Service{source: source, matcher: matcher}
}

func (s *Service) List(ctx context.Context) (ProgramList, error) {
	catalog, err := s.source.Load(ctx)
	if err != nil {
		return ProgramList{}, err
	}
	return ListPrograms(catalog), nil
}

func (s *Service) Match(ctx context.Context, profile Profile) (MatchResult, error) {
	catalog, err := s.source.Load(ctx)
	if err != nil {
		return MatchResult{}, err
	}
	return s.matcher.Match(profile, catalog), nil
}
