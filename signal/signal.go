package signal

import (
	"fmt"
	"strings"

	"github.com/poiesic/talentrank/core"
)

const jobTemplate = `
Job Title:
%s

Seniority:
%s

Key Responsibilities:
%s

Required Skills:
%s

Required Tools:
%s

Preferred Skills:
%s

Preferred Tools:
%s

Required Experience:
%s

Domain Knowledge:
%s
`

const candidateTemplate = `
Professional Summary:
%s

Skills:
%s

Job Roles and Achievements:
%s

Projects:
%s

Certifications:
%s
`

// JobText renders a job specification into its canonical signal text.
// Field order is fixed; missing fields render empty. A nil spec renders
// the template with every field empty.
func JobText(spec *core.JobSpec) string {
	if spec == nil {
		spec = &core.JobSpec{}
	}

	return fmt.Sprintf(jobTemplate,
		spec.JobContext.JobTitle,
		spec.JobContext.SeniorityLevel,
		joinSpace(spec.RoleDescription.KeyResponsibilities),
		joinSpace(spec.HardRequirements.MustHaveSkills),
		joinSpace(spec.HardRequirements.MustHaveTools),
		joinSpace(spec.PreferredQualifications.PreferredSkills),
		joinSpace(spec.PreferredQualifications.PreferredTools),
		joinSpace(spec.HardRequirements.RequiredExperienceType),
		joinSpace(spec.RoleDescription.DomainKnowledge),
	)
}

// CandidateText renders a candidate record into its canonical signal text.
// Skills are the union of the three sub-categories, order-preserving with
// duplicates retained. Work experience renders one line per entry as
// "<title> at <employer>: <achievements>", projects as "<name>: <description>".
func CandidateText(record *core.CandidateRecord) string {
	if record == nil {
		record = &core.CandidateRecord{}
	}

	skills := make([]string, 0,
		len(record.SkillsSection.ProgrammingLanguages)+
			len(record.SkillsSection.FrameworksAndLibraries)+
			len(record.SkillsSection.PlatformsAndTools))
	skills = append(skills, record.SkillsSection.ProgrammingLanguages...)
	skills = append(skills, record.SkillsSection.FrameworksAndLibraries...)
	skills = append(skills, record.SkillsSection.PlatformsAndTools...)

	roles := make([]string, len(record.WorkExperience))
	for i, we := range record.WorkExperience {
		roles[i] = fmt.Sprintf("%s at %s: %s", we.JobTitle, we.Company, joinSpace(we.Achievements))
	}

	projects := make([]string, len(record.Projects))
	for i, p := range record.Projects {
		projects[i] = fmt.Sprintf("%s: %s", p.ProjectName, p.Description)
	}

	return fmt.Sprintf(candidateTemplate,
		record.ProfessionalSummary,
		joinSpace(skills),
		strings.Join(roles, "\n"),
		strings.Join(projects, "\n"),
		joinSpace(record.Certifications),
	)
}

// joinSpace joins list items with single spaces. Nil and empty lists
// yield an empty string.
func joinSpace(items []string) string {
	return strings.Join(items, " ")
}
