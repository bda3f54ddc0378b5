package utils

import (
	"jobscout/pkg/models"
)

// ToJobPosting converts an enriched posting into its transport form:
// stable ID, normalized timestamp, parsed salary and location, and the
// best-ranked recruiter contact fields.
func ToJobPosting(p models.EnrichedPosting, now Clock) models.JobPosting {
	skills := p.Skills
	if p.Analysis != nil && len(p.Analysis.Skills) > 0 {
		seen := make(map[string]bool, len(skills))
		for _, s := range skills {
			seen[s] = true
		}
		for _, s := range p.Analysis.Skills {
			if !seen[s] {
				seen[s] = true
				skills = append(skills, s)
			}
		}
	}
	if skills == nil {
		skills = []string{}
	}

	posting := models.JobPosting{
		ID:          PostingID(p.URL, p.Title, p.Company),
		Title:       p.Title,
		Company:     p.Company,
		Location:    ParseLocation(p.LocationText),
		Description: p.Description,
		Skills:      skills,
		PostedAt:    NormalizePostedTime(p.PostedText, now),
		Source:      p.Source,
		Salary:      ParseSalary(p.SalaryText),
		JobURL:      p.URL,
	}

	if p.Contacts != nil {
		posting.RecruiterName = p.Contacts.BestName()
		posting.RecruiterEmail = p.Contacts.BestEmail()
		posting.RecruiterPhone = p.Contacts.BestPhone()
		posting.RecruiterLinkedIn = p.Contacts.LinkedIn()
	}

	return posting
}
