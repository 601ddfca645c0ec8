package repository

import (
	"errors"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"ahp_profiler/config"
	"ahp_profiler/logger"
)

// RawCourse is one catalog entry as it appears on disk, before validation.
type RawCourse struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
	SKS  int    `yaml:"sks"`
}

// KnowledgeRepository reads the three hand-edited rule sources from disk.
// It only does I/O and decoding; index building and per-entry validation
// live in the knowledge base service.
type KnowledgeRepository struct {
	coursesPath       string
	relevancePath     string
	prerequisitesPath string
}

// NewKnowledgeRepository builds a repository over the configured data dir.
func NewKnowledgeRepository(cfg *config.Config) *KnowledgeRepository {
	return &KnowledgeRepository{
		coursesPath:       cfg.CoursesPath(),
		relevancePath:     cfg.RelevancePath(),
		prerequisitesPath: cfg.PrerequisitesPath(),
	}
}

// NewKnowledgeRepositoryFromPaths is the constructor used by tests and
// tooling that point at explicit files.
func NewKnowledgeRepositoryFromPaths(courses, relevance, prerequisites string) *KnowledgeRepository {
	return &KnowledgeRepository{
		coursesPath:       courses,
		relevancePath:     relevance,
		prerequisitesPath: prerequisites,
	}
}

// readYAML loads one source file into out. A missing or unreadable file is
// a degraded state, not a fatal one: the caller gets the zero value and the
// process keeps serving with an empty index. A type error on individual
// entries is partial success: yaml.v3 keeps decoding the well-formed
// siblings, only the offending values stay at their zero value and are
// dropped by per-entry validation downstream.
func readYAML(path string, out interface{}) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("CRITICAL: required data file not found", "path", path, "error", err)
		return false
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		var typeErr *yaml.TypeError
		if errors.As(err, &typeErr) {
			logger.Warn("skipping malformed entries in data file",
				"path", path, "errors", strings.Join(typeErr.Errors, "; "))
			return true
		}
		logger.Error("failed to decode data file", "path", path, "error", err)
		return false
	}
	return true
}

// LoadCourses reads the course catalog. Returns nil on any load failure.
func (r *KnowledgeRepository) LoadCourses() []RawCourse {
	var courses []RawCourse
	if !readYAML(r.coursesPath, &courses) {
		return nil
	}
	return courses
}

// LoadRelevance reads the relevance rule source. Structure on disk:
// criteria section -> course code -> profile name -> weight. Values stay
// untyped so one malformed weight cannot poison the whole file.
func (r *KnowledgeRepository) LoadRelevance() map[string]map[string]map[string]interface{} {
	var raw map[string]map[string]map[string]interface{}
	if !readYAML(r.relevancePath, &raw) {
		return nil
	}
	return raw
}

// LoadPrerequisites reads the prerequisite source. Structure on disk:
// target course code -> one requirement mapping, or a list of them.
func (r *KnowledgeRepository) LoadPrerequisites() map[string]interface{} {
	var raw map[string]interface{}
	if !readYAML(r.prerequisitesPath, &raw) {
		return nil
	}
	return raw
}
