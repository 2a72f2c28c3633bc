package vocabulary

import (
	"testing"

	"github.com/atmodata/api-dataaccess/internal/pkg/domain"
	"github.com/matryer/is"
	"github.com/rs/zerolog"
)

var testTable = Table{
	{ECV: "Aerosol Optical Properties", Variables: []string{
		"aerosol particle light absorption coefficient",
		"aerosol particle light scattering coefficient",
	}},
	{ECV: "NO2", Variables: []string{
		"nitrogen dioxide amount fraction",
		"nitrogen dioxide mass concentration",
	}},
	{ECV: "Pressure (surface)", Variables: []string{"AP"}},
	{ECV: "Pressure", Variables: []string{"AP"}},
}

func TestForwardReverseConsistency(t *testing.T) {
	is := is.New(t)
	m := New(testTable, MatchExact, zerolog.Nop())

	for _, ecv := range m.ECVs() {
		for _, variable := range m.VariablesFor(ecv) {
			ecvs := m.ECVsFor(variable)
			found := false
			for _, e := range ecvs {
				if e == ecv {
					found = true
				}
			}
			is.True(found) // every forward entry must be present in the reverse index
		}
	}
}

func TestSharedVariableMapsToAllItsECVs(t *testing.T) {
	is := is.New(t)
	m := New(testTable, MatchExact, zerolog.Nop())

	ecvs := m.ECVsFor("AP")
	is.Equal(ecvs, []domain.ECVName{"Pressure (surface)", "Pressure"})
}

func TestUnmappedVariableYieldsEmptySet(t *testing.T) {
	is := is.New(t)
	m := New(testTable, MatchExact, zerolog.Nop())

	is.Equal(len(m.ECVsFor("no_such_variable")), 0)
}

func TestExactMatchingIsCaseSensitive(t *testing.T) {
	is := is.New(t)
	m := New(testTable, MatchExact, zerolog.Nop())

	is.Equal(len(m.ECVsFor("ap")), 0)
}

func TestFoldMatchingIsCaseInsensitive(t *testing.T) {
	is := is.New(t)
	m := New(testTable, MatchFold, zerolog.Nop())

	is.Equal(m.ECVsFor("ap"), []domain.ECVName{"Pressure (surface)", "Pressure"})
	is.Equal(m.ECVsFor("AP"), []domain.ECVName{"Pressure (surface)", "Pressure"})
}

func TestExactMatchingResolvesECVNamesByteForByte(t *testing.T) {
	is := is.New(t)
	m := New(testTable, MatchExact, zerolog.Nop())

	is.True(m.Contains("NO2"))
	is.True(!m.Contains("no2"))
	is.Equal(len(m.VariablesFor("no2")), 0)
}

func TestFoldMatchingResolvesECVNamesCaseInsensitively(t *testing.T) {
	is := is.New(t)
	m := New(testTable, MatchFold, zerolog.Nop())

	is.True(m.Contains("pressure (surface)"))

	canonical, ok := m.Resolve("PRESSURE")
	is.True(ok)
	is.Equal(canonical, domain.ECVName("Pressure"))

	is.Equal(m.VariablesFor("pressure"), []string{"AP"})
}

func TestDuplicateMappingIsToleratedButNotDoubled(t *testing.T) {
	is := is.New(t)
	table := Table{
		{ECV: "NO2", Variables: []string{"nitrogen_dioxide", "nitrogen_dioxide"}},
	}
	m := New(table, MatchExact, zerolog.Nop())

	is.Equal(m.ECVsFor("nitrogen_dioxide"), []domain.ECVName{"NO2"})
	is.Equal(len(m.Variables()), 1)
}

func TestMappingsPreserveFirstSeenOrder(t *testing.T) {
	is := is.New(t)
	m := New(testTable, MatchExact, zerolog.Nop())

	mappings := m.Mappings()
	is.Equal(len(mappings), 5)
	is.Equal(mappings[0].VariableName, "aerosol particle light absorption coefficient")
	is.Equal(mappings[4].VariableName, "AP")
	is.Equal(mappings[4].ECVNames, []domain.ECVName{"Pressure (surface)", "Pressure"})
}
