package models

// EmailCandidate is a pattern-matched email address with business scoring.
type EmailCandidate struct {
	Email         string  `json:"email"`
	Domain        string  `json:"domain"`
	IsWebmail     bool    `json:"is_webmail"`
	BusinessScore float64 `json:"business_score"` // [0,1]
	OverallScore  float64 `json:"overall_score"`  // [0,1]
	SourceURL     string  `json:"source_url,omitempty"`
}

// PhoneCandidate is a numbering-plan-validated phone number.
type PhoneCandidate struct {
	Raw            string  `json:"raw"`
	E164           string  `json:"e164"`
	National       string  `json:"national"`
	CountryCode    int     `json:"country_code"`
	IsMobile       bool    `json:"is_mobile"`
	Carrier        string  `json:"carrier,omitempty"`
	Region         string  `json:"region,omitempty"`
	WhatsAppLikely bool    `json:"whatsapp_likely"`
	OverallScore   float64 `json:"overall_score"` // [0,1]
	SourceURL      string  `json:"source_url,omitempty"`
}

// NameCandidate is a contextually-matched person name.
type NameCandidate struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	SourceURL  string  `json:"source_url,omitempty"`
}

// AddressCandidate is a pattern-matched postal address.
type AddressCandidate struct {
	Address    string  `json:"address"`
	Confidence float64 `json:"confidence"`
	SourceURL  string  `json:"source_url,omitempty"`
}

// ContactSet holds the five independent candidate kinds mined from one text
// blob. Lists are ranked by score, descending; social holds at most one
// canonical URL per platform, absent platforms are simply missing keys.
type ContactSet struct {
	Emails    []EmailCandidate   `json:"emails"`
	Phones    []PhoneCandidate   `json:"phones"`
	Social    map[string]string  `json:"social"`
	Names     []NameCandidate    `json:"names"`
	Addresses []AddressCandidate `json:"addresses"`
}

// BestEmail returns the top-ranked email candidate, or empty string.
func (c *ContactSet) BestEmail() string {
	if c == nil || len(c.Emails) == 0 {
		return ""
	}
	return c.Emails[0].Email
}

// BestPhone returns the top-ranked phone in E164 form, or empty string.
func (c *ContactSet) BestPhone() string {
	if c == nil || len(c.Phones) == 0 {
		return ""
	}
	return c.Phones[0].E164
}

// BestName returns the top name candidate, or empty string.
func (c *ContactSet) BestName() string {
	if c == nil || len(c.Names) == 0 {
		return ""
	}
	return c.Names[0].Name
}

// LinkedIn returns the linkedin profile URL if one was found.
func (c *ContactSet) LinkedIn() string {
	if c == nil {
		return ""
	}
	return c.Social["linkedin"]
}
