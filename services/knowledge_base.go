package services

import (
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"ahp_profiler/logger"
	"ahp_profiler/models"
	"ahp_profiler/repository"
	"ahp_profiler/utils"
)

// kbSnapshot is one fully-built, immutable index set. Readers always see a
// complete snapshot; rebuilds happen off to the side and swap in atomically.
type kbSnapshot struct {
	metadata  map[string]models.CourseMetadata
	relevance map[string][]models.CourseRelevance
	prereqs   map[string][]models.PrerequisiteRule
}

func emptySnapshot() *kbSnapshot {
	return &kbSnapshot{
		metadata:  map[string]models.CourseMetadata{},
		relevance: map[string][]models.CourseRelevance{},
		prereqs:   map[string][]models.PrerequisiteRule{},
	}
}

// KnowledgeBase is the central rule repository of the expert system. It
// serves as the source of truth for course names and SKS (correcting PDF
// parsing noise) and provides O(1) lookups for scoring and prerequisite
// rules. It is shared by all requests for the process lifetime.
type KnowledgeBase struct {
	repo *repository.KnowledgeRepository

	mu   sync.Mutex // serializes mutations; readers never take it
	snap atomic.Pointer[kbSnapshot]
}

// NewKnowledgeBase creates an empty knowledge base over the given sources.
// Call Load before serving.
func NewKnowledgeBase(repo *repository.KnowledgeRepository) *KnowledgeBase {
	kb := &KnowledgeBase{repo: repo}
	kb.snap.Store(emptySnapshot())
	return kb
}

// Load reads all three sources and swaps in the freshly built index set.
// A missing source degrades to an empty index for that source; Load never
// fails the process.
func (kb *KnowledgeBase) Load() {
	kb.mu.Lock()
	defer kb.mu.Unlock()

	snap := kb.buildSnapshot()
	kb.snap.Store(snap)

	logger.Info("knowledge base ready",
		"courses", len(snap.metadata),
		"scoring_rules", len(snap.relevance),
		"prerequisite_chains", len(snap.prereqs))
}

// Reload re-reads the sources from disk and atomically replaces the whole
// index set. In-flight requests keep the snapshot they already hold.
func (kb *KnowledgeBase) Reload() {
	kb.Load()
}

func (kb *KnowledgeBase) buildSnapshot() *kbSnapshot {
	return &kbSnapshot{
		metadata:  kb.buildMetadataMap(),
		relevance: kb.buildRelevanceMap(),
		prereqs:   kb.buildPrerequisiteMap(),
	}
}

func (kb *KnowledgeBase) buildMetadataMap() map[string]models.CourseMetadata {
	mapping := map[string]models.CourseMetadata{}

	courses := kb.repo.LoadCourses()
	if len(courses) == 0 {
		logger.Warn("course catalog is empty or failed to load")
		return mapping
	}

	for _, entry := range courses {
		code := utils.NormalizeCourseCode(entry.Code)
		if code == "" {
			logger.Warn("skipping course entry without a code", "name", entry.Name)
			continue
		}
		if entry.SKS < 1 || entry.SKS > 6 {
			logger.Warn("skipping course entry with invalid SKS", "code", code, "sks", entry.SKS)
			continue
		}
		name := entry.Name
		if name == "" {
			name = "Unknown Course"
		}
		mapping[code] = models.CourseMetadata{Code: code, Name: name, SKS: entry.SKS}
	}

	return mapping
}

// sectionOrder fixes the iteration order of the two criteria sections so a
// rebuild from unchanged sources yields an identical index.
var sectionOrder = []models.CriteriaType{models.CriteriaFoundation, models.CriteriaCompetency}

func (kb *KnowledgeBase) buildRelevanceMap() map[string][]models.CourseRelevance {
	mapping := map[string][]models.CourseRelevance{}

	raw := kb.repo.LoadRelevance()
	if raw == nil {
		return mapping
	}

	for _, criteria := range sectionOrder {
		section, ok := raw[string(criteria)]
		if !ok || section == nil {
			continue
		}

		for codeRaw, profiles := range section {
			code := utils.NormalizeCourseCode(codeRaw)
			if code == "" {
				continue
			}
			if _, exists := mapping[code]; !exists {
				mapping[code] = []models.CourseRelevance{}
			}
			// A course may be listed with no weights at all.
			if profiles == nil {
				continue
			}

			// Profiles in fixed enumeration order: YAML maps lose their
			// order during decoding.
			for _, profile := range models.AllProfiles {
				rawWeight, ok := profiles[string(profile)]
				if !ok {
					continue
				}
				weight, ok := asFloat(rawWeight)
				if !ok || weight < 0 || weight > 1 {
					logger.Warn("skipping relevance rule with invalid weight",
						"code", code, "profile", profile, "weight", rawWeight)
					continue
				}
				mapping[code] = append(mapping[code], models.CourseRelevance{
					Profile: profile,
					Weight:  weight,
					Type:    criteria,
				})
			}

			// Anything left over is an unrecognized profile name.
			for name := range profiles {
				if _, ok := models.ParseProfile(name); !ok {
					logger.Warn("invalid profile name in relevance rules", "code", code, "profile", name)
				}
			}
		}
	}

	return mapping
}

// sksKey is the reserved marker distinguishing a credit-count requirement
// from a course-grade requirement.
const sksKey = "SKS"

func (kb *KnowledgeBase) buildPrerequisiteMap() map[string][]models.PrerequisiteRule {
	rules := map[string][]models.PrerequisiteRule{}

	raw := kb.repo.LoadPrerequisites()
	if raw == nil {
		return rules
	}

	for targetRaw, requirements := range raw {
		target := utils.NormalizeCourseCode(targetRaw)
		if target == "" {
			continue
		}
		if _, exists := rules[target]; !exists {
			rules[target] = []models.PrerequisiteRule{}
		}

		// Normalize: a single requirement mapping or a list of them.
		reqList, ok := requirements.([]interface{})
		if !ok {
			reqList = []interface{}{requirements}
		}

		for _, item := range reqList {
			reqMap, ok := item.(map[string]interface{})
			if !ok {
				logger.Warn("skipping malformed prerequisite entry", "target", target, "entry", item)
				continue
			}

			if rawSKS, has := reqMap[sksKey]; has {
				minSKS, ok := asInt(rawSKS)
				if !ok {
					logger.Warn("skipping prerequisite with invalid SKS count", "target", target, "value", rawSKS)
					continue
				}
				rules[target] = append(rules[target], models.PrerequisiteRule{
					TargetCode: target,
					Type:       models.PrereqSKSCount,
					MinSKS:     minSKS,
				})
				continue
			}

			// Course-grade requirements; sorted keys keep rebuilds identical.
			for _, reqCodeRaw := range sortedKeys(reqMap) {
				minGrade, ok := asFloat(reqMap[reqCodeRaw])
				if !ok {
					logger.Warn("skipping prerequisite with invalid minimum grade",
						"target", target, "required", reqCodeRaw, "value", reqMap[reqCodeRaw])
					continue
				}
				rules[target] = append(rules[target], models.PrerequisiteRule{
					TargetCode:   target,
					Type:         models.PrereqCourseGrade,
					RequiredCode: utils.NormalizeCourseCode(reqCodeRaw),
					MinGrade:     minGrade,
				})
			}
		}
	}

	return rules
}

// ==========================================
// PUBLIC ACCESSORS
// ==========================================

// GetCourseMetadata returns the official name and SKS for a course code.
func (kb *KnowledgeBase) GetCourseMetadata(code string) (models.CourseMetadata, bool) {
	meta, ok := kb.snap.Load().metadata[utils.NormalizeCourseCode(code)]
	return meta, ok
}

// GetRelevanceRules returns the AHP scoring rules for a course code.
// Unknown codes return an empty slice, never an error.
func (kb *KnowledgeBase) GetRelevanceRules(code string) []models.CourseRelevance {
	return kb.snap.Load().relevance[utils.NormalizeCourseCode(code)]
}

// GetPrerequisites returns the constraints on taking a course.
func (kb *KnowledgeBase) GetPrerequisites(code string) []models.PrerequisiteRule {
	return kb.snap.Load().prereqs[utils.NormalizeCourseCode(code)]
}

// AllRuleCodes returns every course code carrying scoring rules, sorted.
func (kb *KnowledgeBase) AllRuleCodes() []string {
	snap := kb.snap.Load()
	codes := make([]string, 0, len(snap.relevance))
	for code := range snap.relevance {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// AllCourses returns the full catalog, sorted by code.
func (kb *KnowledgeBase) AllCourses() []models.CourseMetadata {
	snap := kb.snap.Load()
	courses := make([]models.CourseMetadata, 0, len(snap.metadata))
	for _, meta := range snap.metadata {
		courses = append(courses, meta)
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].Code < courses[j].Code })
	return courses
}

// Counts returns the sizes of the three indices.
func (kb *KnowledgeBase) Counts() models.KnowledgeBaseCounts {
	snap := kb.snap.Load()
	return models.KnowledgeBaseCounts{
		CoursesWithMetadata:      len(snap.metadata),
		CoursesWithScoringRules:  len(snap.relevance),
		CoursesWithPrerequisites: len(snap.prereqs),
	}
}

// ==========================================
// ADMIN MUTATIONS
// ==========================================
// Each mutation clones the current snapshot, edits the clone and swaps it
// in, so concurrent readers observe either the old or the new index state
// in full. Edits live in memory only; writing them back to the YAML files
// is out of scope.

// AddOrUpdateCourse inserts or replaces a catalog entry.
func (kb *KnowledgeBase) AddOrUpdateCourse(meta models.CourseMetadata) error {
	code := utils.NormalizeCourseCode(meta.Code)
	if code == "" {
		return fmt.Errorf("course code is required")
	}
	if meta.SKS < 1 || meta.SKS > 6 {
		return fmt.Errorf("SKS must be between 1 and 6, got %d", meta.SKS)
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()

	next := kb.snap.Load().clone()
	next.metadata[code] = models.CourseMetadata{Code: code, Name: meta.Name, SKS: meta.SKS}
	kb.snap.Store(next)

	logger.Info("course saved", "code", code, "name", meta.Name, "sks", meta.SKS)
	return nil
}

// DeleteCourse removes a catalog entry together with its rules. Returns
// false when the code is unknown.
func (kb *KnowledgeBase) DeleteCourse(code string) bool {
	code = utils.NormalizeCourseCode(code)

	kb.mu.Lock()
	defer kb.mu.Unlock()

	current := kb.snap.Load()
	if _, exists := current.metadata[code]; !exists {
		return false
	}

	next := current.clone()
	delete(next.metadata, code)
	delete(next.relevance, code)
	delete(next.prereqs, code)
	kb.snap.Store(next)

	logger.Info("course deleted", "code", code)
	return true
}

// UpdateRelevanceRules replaces the scoring weights of one course within
// one criteria section. Unrecognized profile names are skipped with a
// warning, matching source-load behavior.
func (kb *KnowledgeBase) UpdateRelevanceRules(code string, criteria models.CriteriaType, weights map[string]float64) error {
	code = utils.NormalizeCourseCode(code)
	if code == "" {
		return fmt.Errorf("course code is required")
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()

	next := kb.snap.Load().clone()

	// Keep the other section's rules, drop this section's.
	kept := make([]models.CourseRelevance, 0)
	for _, rule := range next.relevance[code] {
		if rule.Type != criteria {
			kept = append(kept, rule)
		}
	}
	for _, profile := range models.AllProfiles {
		weight, ok := weights[string(profile)]
		if !ok {
			continue
		}
		if weight < 0 || weight > 1 {
			return fmt.Errorf("weight for %s must be in [0,1], got %v", profile, weight)
		}
		kept = append(kept, models.CourseRelevance{Profile: profile, Weight: weight, Type: criteria})
	}
	for name := range weights {
		if _, ok := models.ParseProfile(name); !ok {
			logger.Warn("ignoring unknown profile in rule update", "code", code, "profile", name)
		}
	}

	if len(kept) == 0 {
		delete(next.relevance, code)
	} else {
		next.relevance[code] = kept
	}
	kb.snap.Store(next)

	logger.Info("relevance rules updated", "code", code, "criteria", criteria, "rule_count", len(kept))
	return nil
}

func (s *kbSnapshot) clone() *kbSnapshot {
	next := &kbSnapshot{
		metadata:  make(map[string]models.CourseMetadata, len(s.metadata)),
		relevance: make(map[string][]models.CourseRelevance, len(s.relevance)),
		prereqs:   make(map[string][]models.PrerequisiteRule, len(s.prereqs)),
	}
	for k, v := range s.metadata {
		next.metadata[k] = v
	}
	for k, v := range s.relevance {
		next.relevance[k] = append([]models.CourseRelevance(nil), v...)
	}
	for k, v := range s.prereqs {
		next.prereqs[k] = append([]models.PrerequisiteRule(nil), v...)
	}
	return next
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// asFloat coerces YAML scalar values: integers and floats both appear in
// hand-edited files.
func asFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	}
	return 0, false
}
