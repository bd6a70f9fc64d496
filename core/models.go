package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated from content using deterministic hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// JobContext carries the identifying context of an opening.
type JobContext struct {
	JobTitle       string `json:"job_title"`
	SeniorityLevel string `json:"seniority_level"`
}

// RoleDescription describes what the role actually does.
type RoleDescription struct {
	KeyResponsibilities []string `json:"key_responsibilities,omitempty"`
	DomainKnowledge     []string `json:"domain_knowledge,omitempty"`
}

// HardRequirements are the mandatory, gating requirements of an opening.
type HardRequirements struct {
	MustHaveSkills         []string `json:"must_have_skills,omitempty"`
	MustHaveTools          []string `json:"must_have_tools,omitempty"`
	RequiredExperienceType []string `json:"required_experience_type,omitempty"`
	MinimumExperienceYears int      `json:"minimum_experience_years,omitempty"`
	RequiredEducation      []string `json:"required_education,omitempty"`
}

// PreferredQualifications are bonus signals. Their absence is never gating.
type PreferredQualifications struct {
	PreferredSkills         []string `json:"preferred_skills,omitempty"`
	PreferredTools          []string `json:"preferred_tools,omitempty"`
	PreferredCertifications []string `json:"preferred_certifications,omitempty"`
}

// JobSpec is the structured requirements for one opening.
// It is immutable once produced; one instance per pipeline run.
type JobSpec struct {
	JobContext              JobContext              `json:"job_context"`
	RoleDescription         RoleDescription         `json:"role_description"`
	HardRequirements        HardRequirements        `json:"hard_requirements"`
	PreferredQualifications PreferredQualifications `json:"preferred_qualifications"`
}

// ContactInfo identifies a candidate. Name is the identity key for the
// whole funnel and must be non-empty and unique within a pool.
type ContactInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Linkedin string `json:"linkedin,omitempty"`
}

// SkillSection groups a candidate's skills into three sub-categories.
type SkillSection struct {
	ProgrammingLanguages   []string `json:"programming_languages,omitempty"`
	FrameworksAndLibraries []string `json:"frameworks_and_libraries,omitempty"`
	PlatformsAndTools      []string `json:"platforms_and_tools,omitempty"`
}

// WorkExperience is a single entry in a candidate's employment history.
type WorkExperience struct {
	Company            string   `json:"company"`
	JobTitle           string   `json:"job_title"`
	StartDate          string   `json:"start_date,omitempty"`
	EndDate            string   `json:"end_date,omitempty"`
	Achievements       []string `json:"achievements,omitempty"`
	UsedSkillsAndTools []string `json:"used_skills_and_tools,omitempty"`
}

// Project is a personal or professional project listed on a resume.
type Project struct {
	ProjectName      string   `json:"project_name"`
	Description      string   `json:"description,omitempty"`
	TechnologiesUsed []string `json:"technologies_used,omitempty"`
}

// Education is a single educational qualification.
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree,omitempty"`
	FieldOfStudy   string `json:"field_of_study,omitempty"`
	GraduationYear int    `json:"graduation_year,omitempty"`
}

// CandidateRecord is the structured profile for one resume.
// Records are created fresh per pipeline run and never mutated; missing
// optional fields stay at their zero values and serialize to empty text.
type CandidateRecord struct {
	ContactInfo         ContactInfo      `json:"contact_info"`
	ProfessionalSummary string           `json:"professional_summary,omitempty"`
	SkillsSection       SkillSection     `json:"skills_section"`
	WorkExperience      []WorkExperience `json:"work_experience,omitempty"`
	Projects            []Project        `json:"projects,omitempty"`
	Education           []Education      `json:"education,omitempty"`
	Certifications      []string         `json:"certifications,omitempty"`
}

// Identity returns the candidate's identity key within a pool.
func (r *CandidateRecord) Identity() string {
	if r == nil {
		return ""
	}
	return r.ContactInfo.Name
}

// MatchCriterion is one criterion-level verdict inside a judgment.
type MatchCriterion struct {
	Criterion string `json:"criterion"`
	IsMatch   bool   `json:"is_match"`
	Comment   string `json:"comment,omitempty"`
}

// Judgment is a qualitative evaluation of a candidate against an opening.
// FinalScore is on the fixed [0,10] scale.
type Judgment struct {
	DetailedAnalysis string           `json:"detailed_analysis,omitempty"`
	Pros             []string         `json:"pros,omitempty"`
	Cons             []string         `json:"cons,omitempty"`
	FinalScore       float64          `json:"final_score"`
	MatchCriteria    []MatchCriterion `json:"match_criteria,omitempty"`
}

// SimilarityRankingEntry is one candidate's Stage 1 result.
// Score is a cosine similarity in [-1, 1].
type SimilarityRankingEntry struct {
	CandidateName string  `json:"candidate_name"`
	Score         float64 `json:"score"`
}

// FusionRankingEntry is one candidate's Stage 2 result.
// CombinedScore = JudgeScore*judgeWeight + PairwiseScore*pairwiseWeight,
// where PairwiseScore has already been rescaled to (0, 10).
type FusionRankingEntry struct {
	CandidateName string    `json:"candidate_name"`
	JudgeScore    float64   `json:"judge_score"`
	PairwiseScore float64   `json:"pairwise_score"`
	CombinedScore float64   `json:"combined_score"`
	Judgment      *Judgment `json:"judgment,omitempty"`
}

// Pipeline stage names recorded in run checkpoints.
const (
	StageFiltered = "filtered"
	StageRanked   = "ranked"
)

// RunCheckpoint records how far a pipeline run has progressed.
// It is persisted between Stage 1 and Stage 2 so a run can resume at
// the fusion stage without repeating the full-pool embedding pass.
type RunCheckpoint struct {
	RunID     ID
	Stage     string
	UpdatedAt time.Time
}
