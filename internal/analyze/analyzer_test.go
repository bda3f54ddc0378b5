package analyze

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/internal/config"
	"jobscout/pkg/models"
)

type stubCapability struct {
	sentiment     float64
	sentimentErr  error
	category      string
	confidence    float64
	categorizeErr error
	entities      []Entity
	entitiesErr   error
}

func (s *stubCapability) Sentiment(ctx context.Context, text string) (float64, error) {
	return s.sentiment, s.sentimentErr
}

func (s *stubCapability) Categorize(ctx context.Context, text string, categories []string) (string, float64, error) {
	return s.category, s.confidence, s.categorizeErr
}

func (s *stubCapability) Entities(ctx context.Context, text string) ([]Entity, error) {
	return s.entities, s.entitiesErr
}

func newTestAnalyzer(t *testing.T, capability Capability) *Analyzer {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	return NewAnalyzer(cfg, capability)
}

func TestAnalyzeDescriptionTooShort(t *testing.T) {
	a := newTestAnalyzer(t, nil)

	for _, text := range []string{"", "   ", "Hiring now!"} {
		analysis := a.AnalyzeDescription(context.Background(), text)
		require.NotNil(t, analysis)
		assert.Empty(t, analysis.Skills)
		assert.Empty(t, analysis.Requirements)
		assert.Empty(t, analysis.Benefits)
		assert.Equal(t, 0.0, analysis.Sentiment)
		assert.Equal(t, 0.0, analysis.UrgencyScore)
		assert.Equal(t, 0.0, analysis.QualityScore)
		assert.Empty(t, analysis.Category)
		assert.Empty(t, analysis.ExperienceLevel)
		assert.False(t, analysis.SalaryMentioned)
	}
}

func TestExtractSkillsFromVocabulary(t *testing.T) {
	a := newTestAnalyzer(t, nil)

	skills := a.ExtractSkills(context.Background(), "Looking for Python developers with React and Docker experience plus strong leadership.")
	assert.Contains(t, skills, "python")
	assert.Contains(t, skills, "react")
	assert.Contains(t, skills, "docker")
	assert.Contains(t, skills, "leadership")
	assert.NotContains(t, skills, "kubernetes")
}

func TestExtractSkillsIncludesEntityHits(t *testing.T) {
	a := newTestAnalyzer(t, &stubCapability{entities: []Entity{
		{Text: "Snowflake", Label: "product"},
		{Text: "Stripe", Label: "organization"},
		{Text: "Bangalore", Label: "location"},
		{Text: "Python", Label: "product"}, // already a vocabulary hit
	}})

	skills := a.ExtractSkills(context.Background(), "Python engineers integrating Stripe payments and Snowflake warehouses.")
	assert.Contains(t, skills, "snowflake")
	assert.Contains(t, skills, "stripe")
	assert.NotContains(t, skills, "bangalore", "only organization and product entities qualify")

	count := 0
	for _, s := range skills {
		if s == "python" {
			count++
		}
	}
	assert.Equal(t, 1, count, "entity hits never duplicate vocabulary matches")
}

func TestExtractRequirementsSection(t *testing.T) {
	a := newTestAnalyzer(t, nil)

	text := "Join our team.\n\nRequirements: 5+ years building distributed systems in Go\n\nApply today."
	reqs := a.ExtractRequirements(text)
	require.NotEmpty(t, reqs)
	assert.Equal(t, "5+ years building distributed systems in Go", reqs[0])
}

func TestExtractRequirementsLengthFilter(t *testing.T) {
	a := newTestAnalyzer(t, nil)

	// Item at or below ten characters is dropped
	reqs := a.ExtractRequirements("Requirements: golang\n\nmore text")
	assert.Empty(t, reqs)
}

func TestExtractBenefitsSection(t *testing.T) {
	a := newTestAnalyzer(t, nil)

	text := "About us.\n\nWe offer: competitive pay and flexible hours\n\nJoin now."
	benefits := a.ExtractBenefits(text)
	require.NotEmpty(t, benefits)
	assert.Equal(t, "competitive pay and flexible hours", benefits[0])
}

func TestUrgencyScore(t *testing.T) {
	a := newTestAnalyzer(t, nil)

	// "urgent", "urgent requirement" and "immediate joining" each count
	score := a.UrgencyScore("Urgent requirement! Immediate joining preferred.")
	assert.InDelta(t, 0.6, score, 1e-9)

	assert.Equal(t, 0.0, a.UrgencyScore("A calm, well-paced hiring process."))

	long := "urgent asap immediately walk-in same day quick fast rush emergency deadline"
	assert.Equal(t, 1.0, a.UrgencyScore(long), "score is capped")
}

func TestQualityScore(t *testing.T) {
	a := newTestAnalyzer(t, nil)

	// Two sections +0.30, email +0.1, salary term +0.1, short text adds nothing
	text := "Requirements: python. Benefits: insurance. Contact hr@acme.com. Salary negotiable."
	assert.InDelta(t, 0.5, a.QualityScore(text), 1e-9)

	assert.Equal(t, 0.0, a.QualityScore("short note"))
}

func TestDetectExperienceLevel(t *testing.T) {
	tests := []struct {
		text     string
		expected string
	}{
		{"Freshers welcome to apply", "fresher"},
		{"Hiring a junior developer", "entry_level"},
		{"3-5 years of relevant work", "mid_level"},
		{"Looking for a senior engineer", "senior_level"},
		{"Engineering director role", "executive"},
		// Earlier tier wins when several match
		{"junior developer, senior mentor available", "entry_level"},
		{"An unusual posting", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DetectExperienceLevel(tt.text), tt.text)
	}
}

func TestHasSalaryInfo(t *testing.T) {
	assert.True(t, HasSalaryInfo("CTC: 12 LPA for the right candidate"))
	assert.True(t, HasSalaryInfo("₹ 80000 per month"))
	assert.True(t, HasSalaryInfo("8-12 lakh depending on experience"))
	assert.False(t, HasSalaryInfo("great culture and strong engineering"))
}

func TestIsRemoteFriendly(t *testing.T) {
	assert.True(t, IsRemoteFriendly("Work from home available"))
	assert.True(t, IsRemoteFriendly("fully remote team"))
	assert.False(t, IsRemoteFriendly("on-site in Bangalore"))
}

func TestEstimateCompanySize(t *testing.T) {
	assert.Equal(t, "startup", EstimateCompanySize("fast growing startup in fintech"))
	assert.Equal(t, "large", EstimateCompanySize("a multinational with offices worldwide"))
	assert.Equal(t, "", EstimateCompanySize("a company"))
}

func TestCategoryConfidenceThreshold(t *testing.T) {
	ctx := context.Background()
	description := "We are hiring engineers to build large scale data pipelines and backend services."

	confident := newTestAnalyzer(t, &stubCapability{category: "Software Development", confidence: 0.9})
	assert.Equal(t, "Software Development", confident.AnalyzeDescription(ctx, description).Category)

	unsure := newTestAnalyzer(t, &stubCapability{category: "Software Development", confidence: 0.2})
	assert.Empty(t, unsure.AnalyzeDescription(ctx, description).Category)
}

func TestCapabilityErrorsDegrade(t *testing.T) {
	a := newTestAnalyzer(t, &stubCapability{
		sentimentErr:  errors.New("api unavailable"),
		categorizeErr: errors.New("api unavailable"),
		entitiesErr:   errors.New("api unavailable"),
	})

	description := "We are hiring Python engineers to build large scale data pipelines and backend services."
	analysis := a.AnalyzeDescription(context.Background(), description)
	assert.Equal(t, 0.0, analysis.Sentiment)
	assert.Empty(t, analysis.Category)
	assert.Contains(t, analysis.Skills, "python", "vocabulary matches survive a failing capability")
}

func TestMatchScore(t *testing.T) {
	a := newTestAnalyzer(t, nil)

	profile := models.CandidateProfile{
		Skills:          []string{"python"},
		ExperienceLevel: "senior_level",
	}

	// jaccard({python,go},{python}) = 0.5; exact experience match
	score := a.MatchScore([]string{"python", "go"}, "senior_level", profile)
	assert.InDelta(t, 0.70, score, 1e-9)

	// Experience mismatch halves the experience component
	score = a.MatchScore([]string{"python", "go"}, "fresher", profile)
	assert.InDelta(t, 0.55, score, 1e-9)

	// Empty skill sets contribute nothing
	score = a.MatchScore(nil, "fresher", profile)
	assert.InDelta(t, 0.25, score, 1e-9)
}
