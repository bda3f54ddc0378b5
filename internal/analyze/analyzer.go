package analyze

import (
	"context"
	"math"
	"regexp"
	"strings"

	"jobscout/internal/config"
	"jobscout/internal/logging"
	"jobscout/internal/logging/types"
	"jobscout/pkg/models"
)

var sectionEnd = `(?:\n\n|\n[A-Z]|\n•|\n\d+\.|\nNote:|\nBenefits?:|\nWe offer:|\nWhat we offer:|\nSalary:|\nLocation:|$)`

var (
	requirementRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)requirements?:?\s*(.+?)` + sectionEnd),
		regexp.MustCompile(`(?is)qualifications?:?\s*(.+?)` + sectionEnd),
		regexp.MustCompile(`(?is)must have:?\s*(.+?)` + sectionEnd),
		regexp.MustCompile(`(?is)essential:?\s*(.+?)` + sectionEnd),
	}

	benefitSectionEnd = `(?:\n\n|\n[A-Z]|\nRequirements?:|\nQualifications?:|\nSalary:|\nLocation:|$)`

	benefitRes = []*regexp.Regexp{
		regexp.MustCompile(`(?is)benefits?:?\s*(.+?)` + benefitSectionEnd),
		regexp.MustCompile(`(?is)we offer:?\s*(.+?)` + benefitSectionEnd),
		regexp.MustCompile(`(?is)what we offer:?\s*(.+?)` + benefitSectionEnd),
		regexp.MustCompile(`(?is)perks:?\s*(.+?)` + benefitSectionEnd),
	}

	bulletSplitRe = regexp.MustCompile(`\n\s*[•·*-]\s*|\n\s*\d+\.?\s*`)

	emailPresentRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	salaryRes = []*regexp.Regexp{
		regexp.MustCompile(`\d+\s*(?:lakh|lpa|k|thousand)`),
		regexp.MustCompile(`₹\s*\d+`),
		regexp.MustCompile(`\d+\s*-\s*\d+\s*(?:lakh|lpa)`),
		regexp.MustCompile(`salary\s*:`),
		regexp.MustCompile(`compensation\s*:`),
		regexp.MustCompile(`ctc\s*:`),
	}
)

const (
	maxRequirements      = 10
	maxBenefits          = 8
	minRequirementLength = 10
	maxRequirementLength = 200
	minBenefitLength     = 5
	maxBenefitLength     = 150
)

// Analyzer derives structured signals from a job description with keyword
// heuristics, delegating sentiment and category labeling to an optional
// external capability.
type Analyzer struct {
	cfg        *config.Config
	capability Capability
	logger     types.Logger
}

// NewAnalyzer creates an analyzer; capability may be nil, which degrades
// sentiment to 0.0 and category to empty.
func NewAnalyzer(cfg *config.Config, capability Capability) *Analyzer {
	return &Analyzer{
		cfg:        cfg,
		capability: capability,
		logger:     logging.GetGlobalLogger(),
	}
}

// AnalyzeDescription analyzes one description. Input below the minimum
// length returns an all-default analysis; the method never fails.
func (a *Analyzer) AnalyzeDescription(ctx context.Context, description string) *models.Analysis {
	analysis := &models.Analysis{
		Skills:       []string{},
		Requirements: []string{},
		Benefits:     []string{},
	}

	if len(strings.TrimSpace(description)) < a.cfg.Analyzer.MinDescriptionLength {
		return analysis
	}

	analysis.Skills = a.ExtractSkills(ctx, description)
	analysis.Requirements = a.ExtractRequirements(description)
	analysis.Benefits = a.ExtractBenefits(description)
	analysis.Sentiment = a.sentiment(ctx, description)
	analysis.UrgencyScore = a.UrgencyScore(description)
	analysis.QualityScore = a.QualityScore(description)
	analysis.Category = a.categorize(ctx, description)
	analysis.ExperienceLevel = DetectExperienceLevel(description)
	analysis.SalaryMentioned = HasSalaryInfo(description)
	analysis.RemoteFriendly = IsRemoteFriendly(description)
	analysis.CompanySize = EstimateCompanySize(description)

	return analysis
}

// ExtractSkills returns vocabulary terms present in the text, plus any
// organization or product entities the capability recognizes.
func (a *Analyzer) ExtractSkills(ctx context.Context, text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	skills := []string{}

	for _, skill := range technicalSkills {
		if !seen[skill] && strings.Contains(lower, skill) {
			seen[skill] = true
			skills = append(skills, skill)
		}
	}
	for _, skill := range softSkills {
		if !seen[skill] && strings.Contains(lower, skill) {
			seen[skill] = true
			skills = append(skills, skill)
		}
	}
	for _, hit := range a.entitySkills(ctx, text) {
		if !seen[hit] {
			seen[hit] = true
			skills = append(skills, hit)
		}
	}
	return skills
}

// entitySkills returns lowercased organization/product entity names. Empty
// without a capability; errors degrade to the vocabulary-only result.
func (a *Analyzer) entitySkills(ctx context.Context, text string) []string {
	if a.capability == nil {
		return nil
	}
	entities, err := a.capability.Entities(ctx, text)
	if err != nil {
		a.logger.Warn("Entity capability failed", map[string]interface{}{
			"error": err.Error(),
		})
		return nil
	}

	var hits []string
	for _, entity := range entities {
		switch strings.ToLower(entity.Label) {
		case "organization", "org", "product":
		default:
			continue
		}
		if name := strings.ToLower(strings.TrimSpace(entity.Text)); name != "" {
			hits = append(hits, name)
		}
	}
	return hits
}

// ExtractRequirements pulls requirement items out of header-delimited
// sections, filtered by length.
func (a *Analyzer) ExtractRequirements(text string) []string {
	return extractSectionItems(text, requirementRes, minRequirementLength, maxRequirementLength, maxRequirements)
}

// ExtractBenefits pulls benefit items out of header-delimited sections
func (a *Analyzer) ExtractBenefits(text string) []string {
	return extractSectionItems(text, benefitRes, minBenefitLength, maxBenefitLength, maxBenefits)
}

func extractSectionItems(text string, patterns []*regexp.Regexp, minLen, maxLen, cap int) []string {
	items := []string{}
	for _, re := range patterns {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			body := strings.TrimSpace(m[1])
			for _, item := range bulletSplitRe.Split(body, -1) {
				item = strings.TrimSpace(item)
				if len(item) > minLen && len(item) < maxLen {
					items = append(items, item)
					if len(items) >= cap {
						return items
					}
				}
			}
		}
	}
	return items
}

func (a *Analyzer) sentiment(ctx context.Context, text string) float64 {
	if a.capability == nil {
		return 0.0
	}
	score, err := a.capability.Sentiment(ctx, text)
	if err != nil {
		a.logger.Warn("Sentiment capability failed", map[string]interface{}{
			"error": err.Error(),
		})
		return 0.0
	}
	return score
}

func (a *Analyzer) categorize(ctx context.Context, text string) string {
	if a.capability == nil {
		return ""
	}
	label, confidence, err := a.capability.Categorize(ctx, text, jobCategories)
	if err != nil {
		a.logger.Warn("Category capability failed", map[string]interface{}{
			"error": err.Error(),
		})
		return ""
	}
	if confidence <= a.cfg.Analyzer.CategoryThreshold {
		return ""
	}
	return label
}

// UrgencyScore adds the configured increment per distinct urgency keyword,
// capped at 1.0.
func (a *Analyzer) UrgencyScore(text string) float64 {
	lower := strings.ToLower(text)
	score := 0.0
	for _, kw := range urgencyKeywords {
		if strings.Contains(lower, kw) {
			score += a.cfg.Analyzer.Scoring.UrgencyPerKeyword
		}
	}
	return math.Min(score, 1.0)
}

// QualityScore rewards detail: length, named sections, a contact email, and
// salary terms. Capped at 1.0.
func (a *Analyzer) QualityScore(text string) float64 {
	w := a.cfg.Analyzer.Scoring
	score := 0.0

	if len(text) > 500 {
		score += w.QualityLongText
	}
	if len(text) > 1000 {
		score += w.QualityVeryLong
	}

	lower := strings.ToLower(text)
	for _, section := range qualitySections {
		if strings.Contains(lower, section) {
			score += w.QualityPerSection
		}
	}

	if emailPresentRe.MatchString(text) {
		score += w.QualityHasEmail
	}

	for _, term := range salaryTerms {
		if strings.Contains(lower, term) {
			score += w.QualityHasSalary
			break
		}
	}

	return math.Min(score, 1.0)
}

// DetectExperienceLevel walks the tier cascade; first matching tier wins,
// no match yields empty.
func DetectExperienceLevel(text string) string {
	lower := strings.ToLower(text)
	for _, tier := range experienceTiers {
		for _, term := range tier.terms {
			if strings.Contains(lower, term) {
				return tier.level
			}
		}
	}
	return ""
}

// HasSalaryInfo reports whether the text carries salary-indicative terms
func HasSalaryInfo(text string) bool {
	lower := strings.ToLower(text)
	for _, re := range salaryRes {
		if re.MatchString(lower) {
			return true
		}
	}
	return false
}

// IsRemoteFriendly reports whether the text carries remote-work markers
func IsRemoteFriendly(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range remoteKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// EstimateCompanySize buckets the company by keyword, empty when unknown
func EstimateCompanySize(text string) string {
	lower := strings.ToLower(text)
	for _, bucket := range companySizeBuckets {
		for _, term := range bucket.terms {
			if strings.Contains(lower, term) {
				return bucket.size
			}
		}
	}
	return ""
}

// MatchScore computes the job/profile fit: skill-overlap jaccard weighted
// against experience-level agreement and a location placeholder, rounded to
// two decimals.
func (a *Analyzer) MatchScore(jobSkills []string, jobExperience string, profile models.CandidateProfile) float64 {
	w := a.cfg.Analyzer.Scoring

	jobSet := lowerSet(jobSkills)
	profileSet := lowerSet(profile.Skills)

	skillMatch := 0.0
	if len(jobSet) > 0 && len(profileSet) > 0 {
		intersection := 0
		union := len(jobSet)
		for s := range profileSet {
			if jobSet[s] {
				intersection++
			} else {
				union++
			}
		}
		skillMatch = float64(intersection) / float64(union)
	}

	expMatch := 0.5
	if jobExperience != "" && strings.EqualFold(jobExperience, profile.ExperienceLevel) {
		expMatch = 1.0
	}

	locationMatch := 1.0 // placeholder until location preferences exist

	score := skillMatch*w.MatchSkillWeight + expMatch*w.MatchExpWeight + locationMatch*w.MatchLocWeight
	return math.Round(score*100) / 100
}

func lowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}
