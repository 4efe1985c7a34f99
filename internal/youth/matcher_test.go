package youth

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func program(id string, minAge, maxAge int, statuses ...string) Program {
	return Program{
		ID:                     id,
		Name:                   "program " + id,
		Category:               CategoryEmployment,
		TargetAgeMin:           minAge,
		TargetAgeMax:           maxAge,
		TargetEmploymentStatus: statuses,
	}
}

func TestMatchBaseScore(t *testing.T) {
	t.Parallel()

	catalog := []Program{program("p1", 18, 29, "구직자")}
	res := NewMatcher(nil).Match(Profile{Age: 24, EmploymentStatus: "구직자"}, catalog)

	require.Len(t, res.Items, 1)
	assert.Equal(t, 1, res.TotalPrograms)
	assert.Equal(t, 1, res.MatchedCount)
	assert.Equal(t, 0.55, res.Items[0].Score)
	assert.Equal(t, []string{
		"Age 24 within range 18-29",
		"Matches employment status: 구직자",
	}, res.Items[0].Reasons)
}

func TestMatchAgeGate(t *testing.T) {
	t.Parallel()

	p := program("p1", 18, 29)
	p.Category = CategoryHousing
	res := NewMatcher(nil).Match(Profile{
		Age:              40,
		EmploymentStatus: "구직자",
		EducationStatus:  "졸업",
		Preferences:      []Category{CategoryHousing},
	}, []Program{p})

	assert.Equal(t, 1, res.TotalPrograms)
	assert.Equal(t, 0, res.MatchedCount)
	assert.Empty(t, res.Items)
}

func TestMatchAgeBoundsAreInclusive(t *testing.T) {
	t.Parallel()

	catalog := []Program{program("p1", 18, 29)}
	m := NewMatcher(nil)

	assert.Equal(t, 1, m.Match(Profile{Age: 18}, catalog).MatchedCount)
	assert.Equal(t, 1, m.Match(Profile{Age: 29}, catalog).MatchedCount)
	assert.Equal(t, 0, m.Match(Profile{Age: 30}, catalog).MatchedCount)
}

func TestMatchEmploymentGate(t *testing.T) {
	t.Parallel()

	catalog := []Program{
		program("restricted", 15, 39, "재직자"),
		program("open", 15, 39),
	}
	res := NewMatcher(nil).Match(Profile{Age: 25, EmploymentStatus: "구직자"}, catalog)

	require.Len(t, res.Items, 1)
	assert.Equal(t, "open", res.Items[0].Program.ID)
	assert.Equal(t, 0.55, res.Items[0].Score)
}

func TestMatchOptionalScorers(t *testing.T) {
	t.Parallel()

	full := program("full", 15, 39)
	full.Category = CategoryTraining
	full.TargetEducationStatus = []string{"졸업"}

	wrongEdu := program("wrong-edu", 15, 39)
	wrongEdu.Category = CategoryTraining
	wrongEdu.TargetEducationStatus = []string{"재학"}

	otherCategory := program("other", 15, 39)
	otherCategory.Category = CategoryFinance

	res := NewMatcher(nil).Match(Profile{
		Age:              25,
		EmploymentStatus: "구직자",
		EducationStatus:  "졸업",
		Preferences:      []Category{CategoryTraining},
	}, []Program{otherCategory, wrongEdu, full})

	require.Len(t, res.Items, 3)
	assert.Equal(t, 3, res.MatchedCount)

	assert.Equal(t, "full", res.Items[0].Program.ID)
	assert.Equal(t, 1.0, res.Items[0].Score)
	assert.Equal(t, []string{
		"Age 25 within range 15-39",
		"Matches employment status: 구직자",
		"Matches education status: 졸업",
		"Matches preferred category: training",
	}, res.Items[0].Reasons)

	// education is optional: a mismatch scores nothing but does not exclude.
	assert.Equal(t, "wrong-edu", res.Items[1].Program.ID)
	assert.Equal(t, 0.85, res.Items[1].Score)

	assert.Equal(t, "other", res.Items[2].Program.ID)
	assert.Equal(t, 0.7, res.Items[2].Score)
	assert.Equal(t, "Matches education status: 졸업", res.Items[2].Reasons[2])
}

func TestMatchEmptyCatalog(t *testing.T) {
	t.Parallel()

	res := NewMatcher(nil).Match(Profile{Age: 24, EmploymentStatus: "구직자"}, nil)

	assert.Equal(t, 0, res.TotalPrograms)
	assert.Equal(t, 0, res.MatchedCount)
	require.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
}

func TestMatchTruncatesAndKeepsCatalogOrderOnTies(t *testing.T) {
	t.Parallel()

	var catalog []Program
	for i := range 15 {
		p := program(fmt.Sprintf("p%02d", i), 15, 39)
		p.Category = CategoryFinance
		// every third program is preferred and outranks the rest
		if i%3 == 2 {
			p.Category = CategoryHousing
		}
		catalog = append(catalog, p)
	}
	// one more that fails the gate
	catalog = append(catalog, program("too-young", 15, 19))

	res := NewMatcher(nil).Match(Profile{
		Age:              25,
		EmploymentStatus: "구직자",
		Preferences:      []Category{CategoryHousing},
	}, catalog)

	assert.Equal(t, 16, res.TotalPrograms)
	assert.Equal(t, 15, res.MatchedCount)
	require.Len(t, res.Items, 10)

	var got []string
	for _, item := range res.Items {
		got = append(got, item.Program.ID)
	}
	assert.Equal(t, []string{
		"p02", "p05", "p08", "p11", "p14",
		"p00", "p01", "p03", "p04", "p06",
	}, got)

	for _, item := range res.Items[:5] {
		assert.Equal(t, 0.85, item.Score)
	}
	for _, item := range res.Items[5:] {
		assert.Equal(t, 0.55, item.Score)
	}
}

func TestMatchRegionIsIgnored(t *testing.T) {
	t.Parallel()

	catalog := []Program{program("p1", 15, 39)}
	m := NewMatcher(nil)

	a := m.Match(Profile{Age: 25, EmploymentStatus: "구직자"}, catalog)
	b := m.Match(Profile{Age: 25, EmploymentStatus: "구직자", Region: "11"}, catalog)
	assert.Equal(t, a, b)
}

func TestMatchDoesNotMutateCatalog(t *testing.T) {
	t.Parallel()

	catalog := []Program{program("a", 15, 19), program("b", 15, 39)}
	NewMatcher(nil).Match(Profile{Age: 25}, catalog)

	assert.Equal(t, "a", catalog[0].ID)
	assert.Equal(t, "b", catalog[1].ID)
}

func TestMatchLogsFunnel(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.DebugLevel)
	catalog := []Program{program("a", 15, 19), program("b", 15, 39, "재직자"), program("c", 15, 39)}

	NewMatcher(zap.New(core)).Match(Profile{Age: 25, EmploymentStatus: "구직자"}, catalog)

	steps := logs.FilterMessage("match stage").All()
	require.Len(t, steps, 2)

	age := steps[0].ContextMap()
	assert.Equal(t, "age", age["name"])
	assert.Equal(t, int64(3), age["initial"])
	assert.Equal(t, int64(1), age["dropped"])
	assert.Equal(t, int64(2), age["left"])

	employment := steps[1].ContextMap()
	assert.Equal(t, "employment_status", employment["name"])
	assert.Equal(t, int64(1), employment["left"])

	assert.Len(t, logs.FilterMessage("match stage skipped").All(), 2)
}

func TestStageNames(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"age", "employment_status", "education_status", "preference"}, NewMatcher(nil).Stages())
}
