package extract

import (
	"net/mail"
	"regexp"
	"sort"
	"strings"

	"github.com/nyaruka/phonenumbers"

	"jobscout/internal/config"
	"jobscout/internal/logging"
	"jobscout/internal/logging/types"
	"jobscout/pkg/models"
)

// businessIndicators are local-part tokens that raise an email's business
// score; each hit adds the indicator bonus.
var businessIndicators = []string{
	"hr", "recruitment", "careers", "jobs", "hiring", "talent",
	"people", "human", "resources", "contact", "info", "admin",
}

// hiringPatterns and personalPatterns adjust the business score beyond the
// indicator pass.
var (
	hiringPatterns   = []string{"hr", "careers", "jobs", "recruitment"}
	personalPatterns = []string{"personal", "private", "me", "my"}
)

var (
	emailRe = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Regional phone patterns, Indian numbering plan first
	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`\+91[\s\-]?[6-9]\d{9}`),
		regexp.MustCompile(`91[\s\-]?[6-9]\d{9}`),
		regexp.MustCompile(`[6-9]\d{9}`),
		regexp.MustCompile(`\(\+91\)[\s\-]?[6-9]\d{9}`),
		regexp.MustCompile(`0[1-9]\d{8,9}`),
		regexp.MustCompile(`\d{3}[\s\-]\d{3}[\s\-]\d{4}`),
		regexp.MustCompile(`\d{4}[\s\-]\d{3}[\s\-]\d{3}`),
	}

	phoneCleanRe = regexp.MustCompile(`[\s\-\(\)]`)

	// Ten digits starting 6-9, the Indian mobile national form
	inMobileShapeRe = regexp.MustCompile(`^[6-9]\d{9}$`)

	socialRes = map[string]*regexp.Regexp{
		"linkedin":  regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/(?:in/|company/|pub/)([a-zA-Z0-9\-_]+)`),
		"twitter":   regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?twitter\.com/([a-zA-Z0-9_]+)`),
		"facebook":  regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?facebook\.com/([a-zA-Z0-9\._-]+)`),
		"instagram": regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?instagram\.com/([a-zA-Z0-9\._]+)`),
	}

	socialURLPrefixes = map[string]string{
		"linkedin":  "https://linkedin.com/in/",
		"twitter":   "https://twitter.com/",
		"facebook":  "https://facebook.com/",
		"instagram": "https://instagram.com/",
	}

	nameRes = []*regexp.Regexp{
		regexp.MustCompile(`Contact:?\s+([A-Z][a-z]+\s+[A-Z][a-z]+)`),
		regexp.MustCompile(`HR:?\s+([A-Z][a-z]+\s+[A-Z][a-z]+)`),
		regexp.MustCompile(`Recruiter:?\s+([A-Z][a-z]+\s+[A-Z][a-z]+)`),
		regexp.MustCompile(`Manager:?\s+([A-Z][a-z]+\s+[A-Z][a-z]+)`),
		regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+)\s*-\s*HR`),
		regexp.MustCompile(`([A-Z][a-z]+\s+[A-Z][a-z]+)\s*-\s*Recruiter`),
	}

	nameLettersRe = regexp.MustCompile(`^[A-Za-z\s]+$`)

	addressRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+[^,\n]*(?:Road|Street|Lane|Avenue|Park|Nagar|Colony|Society)[^,\n]*,\s*[^,\n]*,\s*[^,\n]*\s*-?\s*\d{6})`),
		regexp.MustCompile(`(?i)([A-Z][^,\n]*(?:Bangalore|Mumbai|Delhi|Chennai|Hyderabad|Pune|Kolkata|Ahmedabad|Gurgaon|Noida)[^,\n]*\s*-?\s*\d{6})`),
	}
)

// roleWords disqualify a name candidate when any part matches.
var roleWords = map[string]bool{
	"Team": true, "Department": true, "Manager": true, "Director": true,
	"Head": true, "Lead": true, "Company": true, "Organization": true,
	"Group": true, "Division": true, "Office": true,
}

const (
	nameConfidence    = 0.8
	addressConfidence = 0.7
	minAddressLength  = 20
)

// Extractor mines free text for contact candidates and scores them. Scoring
// weights come from config so deployments can retune without a rebuild.
type Extractor struct {
	region  string
	webmail map[string]bool
	cfg     *config.Config
	logger  types.Logger
}

// NewExtractor creates an extractor configured for the home numbering region
// and scoring weights.
func NewExtractor(cfg *config.Config) *Extractor {
	webmail := make(map[string]bool, len(cfg.Contacts.WebmailDomains))
	for _, d := range cfg.Contacts.WebmailDomains {
		webmail[strings.ToLower(d)] = true
	}

	return &Extractor{
		region:  cfg.Contacts.Region,
		webmail: webmail,
		cfg:     cfg,
		logger:  logging.GetGlobalLogger(),
	}
}

// ExtractAll produces all five candidate kinds from one text blob. It never
// fails on malformed input; a kind with no matches is an empty list.
func (e *Extractor) ExtractAll(text, sourceURL string) *models.ContactSet {
	return &models.ContactSet{
		Emails:    e.ExtractEmails(text, sourceURL),
		Phones:    e.ExtractPhones(text, sourceURL),
		Social:    e.ExtractSocialProfiles(text),
		Names:     e.ExtractNames(text, sourceURL),
		Addresses: e.ExtractAddresses(text, sourceURL),
	}
}

// ExtractEmails returns validated email candidates ranked by overall score
func (e *Extractor) ExtractEmails(text, sourceURL string) []models.EmailCandidate {
	seen := make(map[string]bool)
	var candidates []models.EmailCandidate

	for _, raw := range emailRe.FindAllString(text, -1) {
		if seen[raw] {
			continue
		}
		seen[raw] = true

		if _, err := mail.ParseAddress(raw); err != nil {
			continue
		}

		at := strings.LastIndex(raw, "@")
		domain := strings.ToLower(raw[at+1:])
		isWebmail := e.webmail[domain]

		business := e.emailBusinessScore(raw, domain)
		candidates = append(candidates, models.EmailCandidate{
			Email:         raw,
			Domain:        domain,
			IsWebmail:     isWebmail,
			BusinessScore: business,
			OverallScore:  e.emailOverallScore(business, domain, isWebmail, sourceURL),
			SourceURL:     sourceURL,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].OverallScore > candidates[j].OverallScore
	})
	return candidates
}

func (e *Extractor) emailBusinessScore(email, domain string) float64 {
	w := e.cfg.Contacts.Scoring
	score := 0.0

	if e.webmail[domain] {
		score -= w.WebmailPenalty
	} else {
		score += w.BusinessDomainBonus
	}

	local := strings.ToLower(email[:strings.LastIndex(email, "@")])
	for _, indicator := range businessIndicators {
		if strings.Contains(local, indicator) {
			score += w.IndicatorBonus
		}
	}

	for _, p := range hiringPatterns {
		if strings.Contains(local, p) {
			score += w.HiringPatternBonus
			break
		}
	}

	for _, p := range personalPatterns {
		if strings.Contains(local, p) {
			score -= w.PersonalPatternPenalty
			break
		}
	}

	return clamp01(score)
}

func (e *Extractor) emailOverallScore(business float64, domain string, isWebmail bool, sourceURL string) float64 {
	w := e.cfg.Contacts.Scoring
	score := business

	if !isWebmail {
		score += w.BusinessOverallBonus
	}
	if sourceURL != "" && domain != "" && strings.Contains(sourceURL, domain) {
		score += w.SameDomainBonus
	}

	return clamp01(score)
}

// ExtractPhones returns numbering-plan-validated phone candidates ranked by
// overall score. Candidates that fail validation are dropped, not errors.
func (e *Extractor) ExtractPhones(text, sourceURL string) []models.PhoneCandidate {
	found := make(map[string]bool)
	for _, re := range phoneRes {
		for _, m := range re.FindAllString(text, -1) {
			found[m] = true
		}
	}

	seen := make(map[string]bool)
	var candidates []models.PhoneCandidate
	for raw := range found {
		candidate, ok := e.validatePhone(raw, sourceURL)
		if !ok || seen[candidate.E164] {
			continue
		}
		seen[candidate.E164] = true
		candidates = append(candidates, candidate)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].OverallScore > candidates[j].OverallScore
	})
	return candidates
}

func (e *Extractor) validatePhone(raw, sourceURL string) (models.PhoneCandidate, bool) {
	clean := phoneCleanRe.ReplaceAllString(raw, "")

	parsed, err := phonenumbers.Parse(clean, e.region)
	if err != nil {
		// Retry with the home country prefix, but only for bare national
		// mobile shapes; prefixing arbitrary digit runs coins valid numbers
		// out of thin air
		if !inMobileShapeRe.MatchString(clean) {
			return models.PhoneCandidate{}, false
		}
		parsed, err = phonenumbers.Parse("+91"+clean, e.region)
		if err != nil {
			return models.PhoneCandidate{}, false
		}
	}

	if !phonenumbers.IsValidNumber(parsed) {
		return models.PhoneCandidate{}, false
	}

	numberType := phonenumbers.GetNumberType(parsed)
	isMobile := numberType == phonenumbers.MOBILE || numberType == phonenumbers.FIXED_LINE_OR_MOBILE
	countryCode := int(parsed.GetCountryCode())
	whatsappLikely := isMobile && countryCode == 91

	carrierName, _ := phonenumbers.GetCarrierForNumber(parsed, "en")
	region, _ := phonenumbers.GetGeocodingForNumber(parsed, "en")

	w := e.cfg.Contacts.Scoring
	score := w.PhoneBase
	if isMobile {
		score += w.PhoneMobileBonus
	}
	if carrierName != "" {
		score += w.PhoneCarrierBonus
	}
	if whatsappLikely {
		score += w.PhoneChatAppBonus
	}

	return models.PhoneCandidate{
		Raw:            raw,
		E164:           phonenumbers.Format(parsed, phonenumbers.E164),
		National:       phonenumbers.Format(parsed, phonenumbers.NATIONAL),
		CountryCode:    countryCode,
		IsMobile:       isMobile,
		Carrier:        carrierName,
		Region:         region,
		WhatsAppLikely: whatsappLikely,
		OverallScore:   clamp01(score),
		SourceURL:      sourceURL,
	}, true
}

// ExtractSocialProfiles returns one canonical URL per platform from the first
// pattern match; platforms without a match are absent from the map.
func (e *Extractor) ExtractSocialProfiles(text string) map[string]string {
	profiles := make(map[string]string)
	for platform, re := range socialRes {
		if m := re.FindStringSubmatch(text); m != nil {
			profiles[platform] = socialURLPrefixes[platform] + m[1]
		}
	}
	return profiles
}

// ExtractNames returns contextually-matched person names. Confidence is
// fixed; there is no independent name-scoring model.
func (e *Extractor) ExtractNames(text, sourceURL string) []models.NameCandidate {
	seen := make(map[string]bool)
	var names []models.NameCandidate

	for _, re := range nameRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			name := strings.TrimSpace(m[1])
			if seen[name] || !isValidName(name) {
				continue
			}
			seen[name] = true
			names = append(names, models.NameCandidate{
				Name:       name,
				Confidence: nameConfidence,
				SourceURL:  sourceURL,
			})
		}
	}
	return names
}

func isValidName(name string) bool {
	if len(name) < 4 || len(name) > 50 {
		return false
	}
	if !nameLettersRe.MatchString(name) {
		return false
	}
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return false
	}
	for _, part := range parts {
		if roleWords[part] {
			return false
		}
	}
	return true
}

// ExtractAddresses returns pattern-matched office addresses; short fragments
// are rejected.
func (e *Extractor) ExtractAddresses(text, sourceURL string) []models.AddressCandidate {
	seen := make(map[string]bool)
	var addresses []models.AddressCandidate

	for _, re := range addressRes {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			addr := strings.TrimSpace(m[1])
			if len(addr) <= minAddressLength || seen[addr] {
				continue
			}
			seen[addr] = true
			addresses = append(addresses, models.AddressCandidate{
				Address:    addr,
				Confidence: addressConfidence,
				SourceURL:  sourceURL,
			})
		}
	}
	return addresses
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
