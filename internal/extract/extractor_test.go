package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobscout/internal/config"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	return NewExtractor(cfg)
}

func TestExtractEmailsBusinessScoring(t *testing.T) {
	e := newTestExtractor(t)

	text := "Apply now! Send your resume to careers@acme.com before Friday."
	emails := e.ExtractEmails(text, "https://acme.com/jobs")

	require.Len(t, emails, 1)
	c := emails[0]
	assert.Equal(t, "careers@acme.com", c.Email)
	assert.Equal(t, "acme.com", c.Domain)
	assert.False(t, c.IsWebmail)
	// non-webmail domain +0.4, "careers" indicator +0.2, hiring pattern +0.3
	assert.GreaterOrEqual(t, c.BusinessScore, 0.6)
	// same-domain +0.3 and business +0.2 push overall to the cap
	assert.Equal(t, 1.0, c.OverallScore)
}

func TestExtractEmailsWebmailPenalty(t *testing.T) {
	e := newTestExtractor(t)

	emails := e.ExtractEmails("reach me at rahul.sharma@gmail.com", "")
	require.Len(t, emails, 1)
	assert.True(t, emails[0].IsWebmail)
	assert.Less(t, emails[0].BusinessScore, 0.5)
}

func TestExtractEmailsRanking(t *testing.T) {
	e := newTestExtractor(t)

	text := "Contact hr@initech.in or johndoe@yahoo.com"
	emails := e.ExtractEmails(text, "")
	require.Len(t, emails, 2)
	assert.Equal(t, "hr@initech.in", emails[0].Email, "business address ranks first")
}

func TestExtractPhonesIndianMobile(t *testing.T) {
	e := newTestExtractor(t)

	phones := e.ExtractPhones("Call us on +919812345678 for a walk-in", "")
	require.Len(t, phones, 1)

	p := phones[0]
	assert.Equal(t, "+919812345678", p.E164)
	assert.Equal(t, 91, p.CountryCode)
	assert.True(t, p.IsMobile)
	assert.True(t, p.WhatsAppLikely)
	assert.GreaterOrEqual(t, p.OverallScore, 0.9)
}

func TestExtractPhonesInvalidDropped(t *testing.T) {
	e := newTestExtractor(t)

	// Matches raw patterns but must not be coined into valid numbers by the
	// home-prefix retry: neither is a national mobile shape
	for _, text := range []string{"ref code 123-456-7890", "order 1234-567-890"} {
		assert.Empty(t, e.ExtractPhones(text, ""), text)
	}
}

func TestExtractPhonesBareNationalMobile(t *testing.T) {
	e := newTestExtractor(t)

	// A bare national mobile number resolves through the home region
	phones := e.ExtractPhones("WhatsApp 9812345678 anytime", "")
	require.Len(t, phones, 1)
	assert.Equal(t, "+919812345678", phones[0].E164)
}

func TestScoreBounds(t *testing.T) {
	e := newTestExtractor(t)

	text := "hr.careers.jobs.recruitment@talent-hiring.in, +919812345678, " +
		"Contact: Priya Verma, linkedin.com/in/priyaverma"
	set := e.ExtractAll(text, "https://talent-hiring.in/openings")

	for _, c := range set.Emails {
		assert.GreaterOrEqual(t, c.BusinessScore, 0.0)
		assert.LessOrEqual(t, c.BusinessScore, 1.0)
		assert.GreaterOrEqual(t, c.OverallScore, 0.0)
		assert.LessOrEqual(t, c.OverallScore, 1.0)
	}
	for _, c := range set.Phones {
		assert.GreaterOrEqual(t, c.OverallScore, 0.0)
		assert.LessOrEqual(t, c.OverallScore, 1.0)
	}
	for _, c := range set.Names {
		assert.GreaterOrEqual(t, c.Confidence, 0.0)
		assert.LessOrEqual(t, c.Confidence, 1.0)
	}
	for _, c := range set.Addresses {
		assert.GreaterOrEqual(t, c.Confidence, 0.0)
		assert.LessOrEqual(t, c.Confidence, 1.0)
	}
}

func TestExtractSocialProfiles(t *testing.T) {
	e := newTestExtractor(t)

	text := "Find us at linkedin.com/in/jane-doe and https://twitter.com/acmejobs"
	profiles := e.ExtractSocialProfiles(text)

	assert.Equal(t, "https://linkedin.com/in/jane-doe", profiles["linkedin"])
	assert.Equal(t, "https://twitter.com/acmejobs", profiles["twitter"])
	_, found := profiles["facebook"]
	assert.False(t, found, "platforms without a match are absent")
}

func TestExtractNames(t *testing.T) {
	e := newTestExtractor(t)

	tests := []struct {
		name     string
		text     string
		expected []string
	}{
		{"contact prefix", "Contact: Priya Verma for details", []string{"Priya Verma"}},
		{"hr suffix", "Reach out to Amit Kumar - HR", []string{"Amit Kumar"}},
		{"role words rejected", "Contact: Hiring Team today", nil},
		{"single word rejected", "Recruiter: Priya", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			names := e.ExtractNames(tt.text, "")
			var got []string
			for _, n := range names {
				got = append(got, n.Name)
				assert.Equal(t, 0.8, n.Confidence)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractAddresses(t *testing.T) {
	e := newTestExtractor(t)

	text := "Walk in at 42 MG Road, Indiranagar, Bangalore - 560038 between 10am and 4pm"
	addresses := e.ExtractAddresses(text, "")
	require.Len(t, addresses, 1)
	assert.Equal(t, 0.7, addresses[0].Confidence)

	// Short fragments are rejected
	assert.Empty(t, e.ExtractAddresses("Pune 411001", ""))
}

func TestExtractAllNeverFailsOnGarbage(t *testing.T) {
	e := newTestExtractor(t)

	for _, text := range []string{"", "@@@@", "\x00\x01", "no contacts here"} {
		set := e.ExtractAll(text, "")
		assert.NotNil(t, set)
		assert.Empty(t, set.Emails)
		assert.Empty(t, set.Phones)
	}
}
