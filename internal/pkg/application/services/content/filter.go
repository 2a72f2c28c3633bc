package content

import (
	"strings"

	"github.com/atmodata/api-dataaccess/internal/pkg/application/vocabulary"
	"github.com/atmodata/api-dataaccess/internal/pkg/domain"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"golang.org/x/exp/slices"
)

// FilterConfig is the per provider tuning of the content filter: which
// attribute identifies a variable, which vocabulary maps it to ECVs,
// and which variables are context rather than content.
type FilterConfig struct {
	// Vocabulary maps the native identifying attribute value to ECVs.
	Vocabulary *vocabulary.Map

	// ComponentAttribute is the variable attribute carrying the
	// provider native variable name. Variables without it are dropped.
	ComponentAttribute string

	// StatisticsAttribute marks derived statistics channels; a value
	// of "uncertainty" excludes the variable.
	StatisticsAttribute string

	// StaticParameters are geophysical context parameters, excluded
	// because they are not target ECVs.
	StaticParameters []string

	// ExcludedNamePatterns drop a variable when its name contains any
	// of these substrings.
	ExcludedNamePatterns []string

	// TimeDimension names the only dimension in-scope variables may
	// span.
	TimeDimension string
}

type filterOutcome struct {
	retained []string
	ecvs     []domain.ECVName
}

// filterVariables walks the data variables of an opened dataset and
// decides, per variable, whether it carries requested climate content.
// Dimensions of size one are ignored (the squeeze step); variables
// spanning any other non time dimension are out of scope.
func filterVariables(group api.Group, cfg FilterConfig, requested map[domain.ECVName]bool) filterOutcome {
	outcome := filterOutcome{retained: []string{}, ecvs: []domain.ECVName{}}
	present := map[domain.ECVName]bool{}

	for _, name := range group.ListVariables() {
		vg, err := group.GetVarGetter(name)
		if err != nil {
			continue
		}

		if !timeDimensionOnly(group, vg.Dimensions(), cfg.TimeDimension) {
			continue
		}

		if containsAnyPattern(name, cfg.ExcludedNamePatterns) {
			continue
		}

		attrs := vg.Attributes()
		if attrString(attrs, cfg.StatisticsAttribute) == "uncertainty" {
			continue
		}

		component, hasComponent := attrs.Get(cfg.ComponentAttribute)
		if !hasComponent {
			continue
		}
		componentName, ok := component.(string)
		if !ok {
			continue
		}

		if slices.Contains(cfg.StaticParameters, componentName) {
			continue
		}

		ecvs := cfg.Vocabulary.ECVsFor(componentName)
		if len(ecvs) == 0 {
			continue
		}

		if len(requested) > 0 && disjoint(ecvs, requested) {
			continue
		}

		outcome.retained = append(outcome.retained, name)
		for _, ecv := range ecvs {
			if !present[ecv] {
				present[ecv] = true
				outcome.ecvs = append(outcome.ecvs, ecv)
			}
		}
	}

	slices.Sort(outcome.ecvs)

	return outcome
}

// timeDimensionOnly reports whether every dimension of a variable is
// either the time dimension or a trivial dimension of length one. The
// length of a dimension is taken from its coordinate variable; a
// dimension without one cannot be proven trivial and disqualifies the
// variable.
func timeDimensionOnly(group api.Group, dimensions []string, timeDimension string) bool {
	for _, dimension := range dimensions {
		if dimension == timeDimension {
			continue
		}
		if dimensionLength(group, dimension) != 1 {
			return false
		}
	}
	return true
}

func dimensionLength(group api.Group, dimension string) int64 {
	vg, err := group.GetVarGetter(dimension)
	if err != nil {
		return -1
	}
	return vg.Len()
}

func containsAnyPattern(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if strings.Contains(name, pattern) {
			return true
		}
	}
	return false
}

func attrString(attrs api.AttributeMap, key string) string {
	value, ok := attrs.Get(key)
	if !ok {
		return ""
	}
	s, _ := value.(string)
	return s
}

func disjoint(ecvs []domain.ECVName, requested map[domain.ECVName]bool) bool {
	for _, ecv := range ecvs {
		if requested[ecv] {
			return false
		}
	}
	return true
}

// materialize loads the retained variables fully into memory.
func materialize(group api.Group, retained []string) (*domain.ReducedDataset, error) {
	variables := map[string]domain.DataArray{}

	for _, name := range retained {
		variable, err := group.GetVariable(name)
		if err != nil {
			return nil, err
		}

		attributes := map[string]any{}
		for _, key := range variable.Attributes.Keys() {
			if value, ok := variable.Attributes.Get(key); ok {
				attributes[key] = value
			}
		}

		variables[name] = domain.DataArray{
			Values:     variable.Values,
			Dimensions: variable.Dimensions,
			Attributes: attributes,
		}
	}

	return &domain.ReducedDataset{Variables: variables}, nil
}
