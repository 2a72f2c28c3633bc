package vocabulary

import (
	"strings"

	"github.com/atmodata/api-dataaccess/internal/pkg/domain"
	"github.com/rs/zerolog"
)

// CaseMatching controls how names are matched during lookups, on both
// the variable and the ECV side of the table. Some providers are
// consistent about casing in their records and data files, others are
// not, so this is a per provider policy.
type CaseMatching int

const (
	// MatchExact compares names byte for byte.
	MatchExact CaseMatching = iota
	// MatchFold lower-cases names before comparing.
	MatchFold
)

// Entry associates one ECV with the provider native variables that
// carry it.
type Entry struct {
	ECV       domain.ECVName
	Variables []string
}

// Table is the source of truth a Map is built from. Order is
// significant and preserved in all derived lookups.
type Table []Entry

// Map is a bidirectional mapping between the ECV taxonomy and one
// provider's variable vocabulary. It is immutable once built and safe
// for concurrent use.
type Map struct {
	entries   Table
	forward   map[domain.ECVName][]string
	reverse   map[string][]domain.ECVName
	ecvIndex  map[string]domain.ECVName
	variables []string
	matching  CaseMatching
}

// New builds the forward and reverse indexes from the given table.
// A variable mapped twice to the same ECV is a data authoring defect;
// it is logged and the duplicate ignored, but construction succeeds.
func New(table Table, matching CaseMatching, logger zerolog.Logger) *Map {
	m := &Map{
		entries:  table,
		forward:  map[domain.ECVName][]string{},
		reverse:  map[string][]domain.ECVName{},
		ecvIndex: map[string]domain.ECVName{},
		matching: matching,
	}

	for _, entry := range table {
		m.forward[entry.ECV] = append(m.forward[entry.ECV], entry.Variables...)

		ecvKey := m.normalize(string(entry.ECV))
		if _, seen := m.ecvIndex[ecvKey]; !seen {
			m.ecvIndex[ecvKey] = entry.ECV
		}

		for _, variable := range entry.Variables {
			key := m.normalize(variable)
			if containsECV(m.reverse[key], entry.ECV) {
				logger.Warn().Msgf(
					"variable %s is mapped more than once to %s in the vocabulary table",
					variable, entry.ECV,
				)
				continue
			}
			if _, seen := m.reverse[key]; !seen {
				m.variables = append(m.variables, variable)
			}
			m.reverse[key] = append(m.reverse[key], entry.ECV)
		}
	}

	return m
}

func (m *Map) normalize(name string) string {
	if m.matching == MatchFold {
		return strings.ToLower(name)
	}
	return name
}

// ECVsFor returns the ECV names a provider variable maps to, in
// first-seen table order. The result is empty for unmapped variables.
func (m *Map) ECVsFor(variable string) []domain.ECVName {
	ecvs := m.reverse[m.normalize(variable)]
	result := make([]domain.ECVName, len(ecvs))
	copy(result, ecvs)
	return result
}

// VariablesFor returns the provider variables for an ECV, in table
// order. The ECV name is matched under the map's case policy.
func (m *Map) VariablesFor(ecv domain.ECVName) []string {
	canonical, ok := m.Resolve(ecv)
	if !ok {
		return []string{}
	}
	variables := m.forward[canonical]
	result := make([]string, len(variables))
	copy(result, variables)
	return result
}

// Resolve maps a requested ECV name to the spelling the table uses,
// matched under the map's case policy.
func (m *Map) Resolve(ecv domain.ECVName) (domain.ECVName, bool) {
	canonical, ok := m.ecvIndex[m.normalize(string(ecv))]
	return canonical, ok
}

// Contains reports whether the ECV appears in the table.
func (m *Map) Contains(ecv domain.ECVName) bool {
	_, ok := m.Resolve(ecv)
	return ok
}

// ECVs returns all ECV names of the table, in table order.
func (m *Map) ECVs() []domain.ECVName {
	ecvs := make([]domain.ECVName, 0, len(m.entries))
	for _, entry := range m.entries {
		ecvs = append(ecvs, entry.ECV)
	}
	return ecvs
}

// Variables returns all provider variable names, in first-seen order.
func (m *Map) Variables() []string {
	result := make([]string, len(m.variables))
	copy(result, m.variables)
	return result
}

// Mappings returns the variable to ECV associations in the exchange
// format used by the variable listing operation.
func (m *Map) Mappings() []domain.VariableMapping {
	mappings := make([]domain.VariableMapping, 0, len(m.variables))
	for _, variable := range m.variables {
		mappings = append(mappings, domain.VariableMapping{
			VariableName: variable,
			ECVNames:     m.ECVsFor(variable),
		})
	}
	return mappings
}

func containsECV(ecvs []domain.ECVName, ecv domain.ECVName) bool {
	for _, e := range ecvs {
		if e == ecv {
			return true
		}
	}
	return false
}
