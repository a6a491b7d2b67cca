package run

import (
	"fmt"
	"strings"
)

// Stage is one of the five pipeline stages.
type Stage string

const (
	StageGenerate   Stage = "generate"
	StageValidate   Stage = "validate"
	StageReport     Stage = "report"
	StageUpload     Stage = "upload"
	StageDistribute Stage = "distribute"
)

// Stages returns every stage in execution order.
func Stages() []Stage {
	return []Stage{StageGenerate, StageValidate, StageReport, StageUpload, StageDistribute}
}

// ParseStage converts a stage name.
func ParseStage(s string) (Stage, error) {
	for _, st := range Stages() {
		if string(st) == strings.ToLower(s) {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown stage %q", s)
}

// String returns the stage name.
func (s Stage) String() string {
	return string(s)
}

func (s Stage) bit() StageSet {
	for i, st := range Stages() {
		if st == s {
			return 1 << i
		}
	}
	return 0
}

// StageSet is an immutable subset of the five stages.
type StageSet uint8

// NewStageSet returns the set containing stages.
func NewStageSet(stages ...Stage) StageSet {
	var s StageSet
	for _, st := range stages {
		s = s.With(st)
	}
	return s
}

// With returns a copy of s that also contains st.
func (s StageSet) With(st Stage) StageSet {
	return s | st.bit()
}

// Has reports whether st is enabled.
func (s StageSet) Has(st Stage) bool {
	b := st.bit()
	return b != 0 && s&b != 0
}

// Empty reports whether no stage is enabled.
func (s StageSet) Empty() bool {
	return s == 0
}

// List returns the enabled stages in execution order.
func (s StageSet) List() []Stage {
	var out []Stage
	for _, st := range Stages() {
		if s.Has(st) {
			out = append(out, st)
		}
	}
	return out
}

// String renders the set as a comma separated list, or "none".
func (s StageSet) String() string {
	list := s.List()
	if len(list) == 0 {
		return "none"
	}
	names := make([]string, len(list))
	for i, st := range list {
		names[i] = string(st)
	}
	return strings.Join(names, ",")
}
