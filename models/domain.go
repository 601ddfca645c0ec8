package models

// ProfileType is one of the four specialization tracks offered by the campus.
type ProfileType string

const (
	ProfileAI    ProfileType = "AI"    // Artificial Intelligence
	ProfileDMS   ProfileType = "DMS"   // Database Management System
	ProfilePSD   ProfileType = "PSD"   // Programming & Software Development
	ProfileINFRA ProfileType = "INFRA" // Network & Infrastructure
)

// AllProfiles is the fixed iteration order for scoring and the tie-break
// order when final scores are equal.
var AllProfiles = []ProfileType{ProfileAI, ProfileDMS, ProfilePSD, ProfileINFRA}

// ParseProfile converts an untrusted string (YAML keys, request payloads)
// into a ProfileType. Unrecognized values return false, never panic.
func ParseProfile(s string) (ProfileType, bool) {
	switch ProfileType(s) {
	case ProfileAI, ProfileDMS, ProfilePSD, ProfileINFRA:
		return ProfileType(s), true
	}
	return "", false
}

// CriteriaType distinguishes the mandatory core curriculum from the
// elective specialization curriculum.
type CriteriaType string

const (
	CriteriaFoundation CriteriaType = "FOUNDATION" // semester 1-4 mandatory classes
	CriteriaCompetency CriteriaType = "COMPETENCY" // semester 5+ elective profile classes
)

// ParseCriteria converts an untrusted string into a CriteriaType.
func ParseCriteria(s string) (CriteriaType, bool) {
	switch CriteriaType(s) {
	case CriteriaFoundation, CriteriaCompetency:
		return CriteriaType(s), true
	}
	return "", false
}
