package signal

import (
	"strings"
	"testing"

	"github.com/poiesic/talentrank/core"
	"github.com/stretchr/testify/assert"
)

func sampleJobSpec() *core.JobSpec {
	return &core.JobSpec{
		JobContext: core.JobContext{
			JobTitle:       "Backend Engineer",
			SeniorityLevel: "Senior",
		},
		RoleDescription: core.RoleDescription{
			KeyResponsibilities: []string{"Design APIs", "Own deployments"},
			DomainKnowledge:     []string{"payments", "distributed systems"},
		},
		HardRequirements: core.HardRequirements{
			MustHaveSkills:         []string{"Go", "SQL"},
			MustHaveTools:          []string{"Kubernetes"},
			RequiredExperienceType: []string{"SaaS environment"},
			MinimumExperienceYears: 5,
			RequiredEducation:      []string{"BSc Computer Science"},
		},
		PreferredQualifications: core.PreferredQualifications{
			PreferredSkills: []string{"Rust"},
			PreferredTools:  []string{"Terraform"},
		},
	}
}

func sampleCandidate() *core.CandidateRecord {
	return &core.CandidateRecord{
		ContactInfo:         core.ContactInfo{Name: "Ada Lovelace"},
		ProfessionalSummary: "Engineer with a decade of analytical engines.",
		SkillsSection: core.SkillSection{
			ProgrammingLanguages:   []string{"Go", "Python"},
			FrameworksAndLibraries: []string{"gin"},
			PlatformsAndTools:      []string{"Kubernetes", "Go"},
		},
		WorkExperience: []core.WorkExperience{
			{
				Company:      "Analytical Engines Ltd",
				JobTitle:     "Principal Engineer",
				Achievements: []string{"Built the first compiler", "Cut latency 40%"},
			},
			{
				Company:      "Difference Co",
				JobTitle:     "Engineer",
				Achievements: []string{"Shipped tables"},
			},
		},
		Projects: []core.Project{
			{ProjectName: "notes", Description: "annotated translation"},
		},
		Certifications: []string{"CKA"},
	}
}

func TestJobText(t *testing.T) {
	text := JobText(sampleJobSpec())

	assert.Contains(t, text, "Job Title:\nBackend Engineer")
	assert.Contains(t, text, "Seniority:\nSenior")
	assert.Contains(t, text, "Key Responsibilities:\nDesign APIs Own deployments")
	assert.Contains(t, text, "Required Skills:\nGo SQL")
	assert.Contains(t, text, "Required Tools:\nKubernetes")
	assert.Contains(t, text, "Preferred Skills:\nRust")
	assert.Contains(t, text, "Preferred Tools:\nTerraform")
	assert.Contains(t, text, "Required Experience:\nSaaS environment")
	assert.Contains(t, text, "Domain Knowledge:\npayments distributed systems")
}

func TestJobTextFieldOrder(t *testing.T) {
	text := JobText(sampleJobSpec())

	labels := []string{
		"Job Title:", "Seniority:", "Key Responsibilities:", "Required Skills:",
		"Required Tools:", "Preferred Skills:", "Preferred Tools:",
		"Required Experience:", "Domain Knowledge:",
	}
	last := -1
	for _, label := range labels {
		idx := strings.Index(text, label)
		assert.Greater(t, idx, last, "label %q out of order", label)
		last = idx
	}
}

func TestCandidateText(t *testing.T) {
	text := CandidateText(sampleCandidate())

	assert.Contains(t, text, "Professional Summary:\nEngineer with a decade")
	// Union of the three sub-categories, order preserved, duplicates retained.
	assert.Contains(t, text, "Skills:\nGo Python gin Kubernetes Go")
	assert.Contains(t, text, "Principal Engineer at Analytical Engines Ltd: Built the first compiler Cut latency 40%")
	assert.Contains(t, text, "Engineer at Difference Co: Shipped tables")
	assert.Contains(t, text, "notes: annotated translation")
	assert.Contains(t, text, "Certifications:\nCKA")
}

func TestCandidateTextOneLinePerExperience(t *testing.T) {
	text := CandidateText(sampleCandidate())

	lines := strings.Split(text, "\n")
	var roleLines []string
	for _, line := range lines {
		if strings.Contains(line, " at ") {
			roleLines = append(roleLines, line)
		}
	}
	assert.Len(t, roleLines, 2)
}

func TestSerializationIsDeterministic(t *testing.T) {
	spec := sampleJobSpec()
	record := sampleCandidate()

	assert.Equal(t, JobText(spec), JobText(spec))
	assert.Equal(t, CandidateText(record), CandidateText(record))
}

func TestEmptyRecordsSerialize(t *testing.T) {
	t.Run("empty candidate", func(t *testing.T) {
		text := CandidateText(&core.CandidateRecord{})
		assert.Contains(t, text, "Professional Summary:")
		assert.Contains(t, text, "Skills:")
		assert.Contains(t, text, "Certifications:")
	})

	t.Run("nil candidate", func(t *testing.T) {
		assert.Equal(t, CandidateText(&core.CandidateRecord{}), CandidateText(nil))
	})

	t.Run("empty spec", func(t *testing.T) {
		text := JobText(&core.JobSpec{})
		assert.Contains(t, text, "Job Title:")
		assert.Contains(t, text, "Domain Knowledge:")
	})

	t.Run("nil spec", func(t *testing.T) {
		assert.Equal(t, JobText(&core.JobSpec{}), JobText(nil))
	})
}
