package attribute_test

import (
	"bytes"
	"encoding/csv"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/coregx/regen/attribute"
)

// PatternSuite groups tests for pattern attributes.
type PatternSuite struct {
	suite.Suite
}

// TestValuesMatchPattern: every value matches the declared pattern.
func (s *PatternSuite) TestValuesMatchPattern() {
	a, err := attribute.NewPatternAttribute("code", `[A-Z]{2}-\d{3}`, nil, 0, attribute.Options{Seed: 3})
	require.NoError(s.T(), err)
	require.Equal(s.T(), "code", a.Name())
	require.Equal(s.T(), `[A-Z]{2}-\d{3}`, a.Pattern().String())

	re := regexp.MustCompile(`^[A-Z]{2}-\d{3}$`)
	for range 200 {
		v, err := a.Next()
		require.NoError(s.T(), err)
		require.Regexp(s.T(), re, v)
	}
}

// TestExclusion: excluded substrings never appear.
func (s *PatternSuite) TestExclusion() {
	exclude := []string{"a", "bb"}
	a, err := attribute.NewPatternAttribute("word", `[abc]{1,4}`, exclude, 0, attribute.Options{Seed: 5, MaxAttempts: 1000})
	require.NoError(s.T(), err)
	for range 300 {
		v, err := a.Next()
		require.NoError(s.T(), err)
		require.NotContains(s.T(), v, "a")
		require.NotContains(s.T(), v, "bb")
	}
}

// TestUnique: unique attributes never repeat and run out when exhausted.
func (s *PatternSuite) TestUnique() {
	a, err := attribute.NewPatternAttribute("digit", `\d`, nil, 0, attribute.Options{Unique: true, Seed: 1, MaxAttempts: 500})
	require.NoError(s.T(), err)
	require.True(s.T(), a.Unique())

	seen := map[string]bool{}
	for range 10 {
		v, err := a.Next()
		require.NoError(s.T(), err)
		require.False(s.T(), seen[v], "value %q repeated", v)
		seen[v] = true
	}
	_, err = a.Next()
	require.ErrorIs(s.T(), err, attribute.ErrAttemptsExhausted)
}

// TestRequired: required attributes never produce the empty string.
func (s *PatternSuite) TestRequired() {
	a, err := attribute.NewPatternAttribute("opt", `x?`, nil, 0, attribute.Options{Required: true, Seed: 2})
	require.NoError(s.T(), err)
	require.True(s.T(), a.Required())
	for range 50 {
		v, err := a.Next()
		require.NoError(s.T(), err)
		require.Equal(s.T(), "x", v)
	}
}

// TestGenerationErrorPropagates: a negated class fails every draw.
func (s *PatternSuite) TestGenerationErrorPropagates() {
	a, err := attribute.NewPatternAttribute("neg", `[^a]`, nil, 0, attribute.Options{})
	require.NoError(s.T(), err)
	_, err = a.Next()
	require.Error(s.T(), err)
	require.Contains(s.T(), err.Error(), "neg")
}

// TestInvalid covers rejected declarations.
func (s *PatternSuite) TestInvalid() {
	_, err := attribute.NewPatternAttribute("bad", `(a`, nil, 0, attribute.Options{})
	require.ErrorIs(s.T(), err, attribute.ErrInvalidSpec)

	_, err = attribute.NewPatternAttribute("", `a`, nil, 0, attribute.Options{})
	require.ErrorIs(s.T(), err, attribute.ErrInvalidSpec)

	_, err = attribute.NewPatternAttribute("ex", `a`, []string{""}, 0, attribute.Options{})
	require.ErrorIs(s.T(), err, attribute.ErrInvalidSpec)

	_, err = attribute.NewPatternAttribute("lim", `a`, nil, 5000, attribute.Options{})
	require.ErrorIs(s.T(), err, attribute.ErrInvalidSpec)
}

func TestPatternSuite(t *testing.T) {
	suite.Run(t, new(PatternSuite))
}

func TestCategoricalWeights(t *testing.T) {
	a, err := attribute.NewCategoricalAttribute("color", []attribute.Category{
		{Value: "red", Weight: 3},
		{Value: "green", Weight: 1},
	}, attribute.Options{Seed: 11})
	require.NoError(t, err)

	counts := map[string]int{}
	const n = 4000
	for range n {
		v, err := a.Next()
		require.NoError(t, err)
		counts[v]++
	}
	require.Len(t, counts, 2)
	require.InDelta(t, 3000, counts["red"], 200)
	require.InDelta(t, 1000, counts["green"], 200)
}

func TestCategoricalUniqueExhausts(t *testing.T) {
	a, err := attribute.NewCategoricalAttribute("flag", []attribute.Category{
		{Value: "yes", Weight: 1},
		{Value: "no", Weight: 1},
	}, attribute.Options{Unique: true, MaxAttempts: 200})
	require.NoError(t, err)

	first, err := a.Next()
	require.NoError(t, err)
	second, err := a.Next()
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, err = a.Next()
	require.True(t, errors.Is(err, attribute.ErrAttemptsExhausted))
}

func TestCategoricalInvalid(t *testing.T) {
	for name, cats := range map[string][]attribute.Category{
		"empty":     nil,
		"zero":      {{Value: "a", Weight: 0}},
		"negative":  {{Value: "a", Weight: -1}},
		"duplicate": {{Value: "a", Weight: 1}, {Value: "a", Weight: 2}},
	} {
		_, err := attribute.NewCategoricalAttribute(name, cats, attribute.Options{})
		require.ErrorIs(t, err, attribute.ErrInvalidSpec, name)
	}
}

func TestNumeric(t *testing.T) {
	tests := []struct {
		name   string
		params attribute.NumericParams
	}{
		{"uniform", attribute.NumericParams{Min: -5, Max: 5}},
		{"normal", attribute.NumericParams{Min: 0, Max: 100, Distribution: attribute.Normal, Mean: 50, StdDev: 40}},
		{"integer", attribute.NumericParams{Min: 0.5, Max: 3.5, Integer: true}},
		{"point", attribute.NumericParams{Min: 7, Max: 7}},
		{"widest", attribute.NumericParams{Min: -math.MaxFloat64, Max: math.MaxFloat64}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := attribute.NewNumericAttribute(tt.name, tt.params, attribute.Options{Seed: 17})
			require.NoError(t, err)
			for range 200 {
				v, err := a.Next()
				require.NoError(t, err)
				f, err := strconv.ParseFloat(v, 64)
				require.NoError(t, err)
				require.GreaterOrEqual(t, f, tt.params.Min)
				require.LessOrEqual(t, f, tt.params.Max)
				if tt.params.Integer {
					require.NotContains(t, v, ".")
				}
			}
		})
	}
}

func TestNumericInvalid(t *testing.T) {
	for name, p := range map[string]attribute.NumericParams{
		"inverted":     {Min: 2, Max: 1},
		"distribution": {Min: 0, Max: 1, Distribution: "poisson"},
		"stddev":       {Min: 0, Max: 1, Distribution: attribute.Normal, StdDev: -1},
		"no integer":   {Min: 0.2, Max: 0.8, Integer: true},
		"infinite":     {Min: math.Inf(-1), Max: math.Inf(1)},
		"nan bound":    {Min: math.NaN(), Max: 1},
		"nan mean":     {Min: 0, Max: 1, Distribution: attribute.Normal, Mean: math.NaN(), StdDev: 1},
		"inf stddev":   {Min: 0, Max: 1, Distribution: attribute.Normal, StdDev: math.Inf(1)},
	} {
		_, err := attribute.NewNumericAttribute(name, p, attribute.Options{})
		require.ErrorIs(t, err, attribute.ErrInvalidSpec, name)
	}
}

const specYAML = `
seed: 7
nodes: 4
first_id: 10
attributes:
  - name: email
    type: pattern
    pattern: '[a-z]{3,8}@example\.com'
    exclude: [admin]
    unique: true
  - name: color
    type: categorical
    categories:
      - {value: red, weight: 2}
      - {value: green, weight: 1}
  - name: age
    type: numeric
    min: 0
    max: 99
    distribution: normal
    mean: 40
    stddev: 12
    integer: true
`

func TestLoadBuildEmit(t *testing.T) {
	f, err := attribute.LoadSpecs(strings.NewReader(specYAML))
	require.NoError(t, err)
	require.Equal(t, int64(7), f.Seed)
	require.Equal(t, 4, f.Nodes)
	require.Equal(t, 10, f.FirstID)
	require.Len(t, f.Attributes, 3)

	attrs, err := attribute.BuildAll(f)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, attribute.Emit(&buf, attrs, f.FirstID, f.FirstID+f.Nodes-1))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 12)

	email := regexp.MustCompile(`^[a-z]{3,8}@example\.com$`)
	for i, rec := range records {
		require.Len(t, rec, 3)
		require.Equal(t, strconv.Itoa(10+i%4), rec[0])
		switch rec[1] {
		case "email":
			require.Regexp(t, email, rec[2])
			require.NotContains(t, rec[2], "admin")
		case "color":
			require.Contains(t, []string{"red", "green"}, rec[2])
		case "age":
			n, err := strconv.Atoi(rec[2])
			require.NoError(t, err)
			require.True(t, n >= 0 && n <= 99)
		default:
			t.Fatalf("unexpected attribute %q", rec[1])
		}
	}
	require.Equal(t, "email", records[0][1])
	require.Equal(t, "color", records[4][1])
	require.Equal(t, "age", records[8][1])
}

func TestLoadDeterministic(t *testing.T) {
	emit := func() string {
		f, err := attribute.LoadSpecs(strings.NewReader(specYAML))
		require.NoError(t, err)
		attrs, err := attribute.BuildAll(f)
		require.NoError(t, err)
		var buf bytes.Buffer
		require.NoError(t, attribute.Emit(&buf, attrs, 0, 9))
		return buf.String()
	}
	require.Equal(t, emit(), emit())
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"empty":     "",
		"unknown":   "attributes:\n  - name: a\n    type: pattern\n    colour: red\n",
		"no name":   "attributes:\n  - type: pattern\n    pattern: a\n",
		"duplicate": "attributes:\n  - {name: a, type: pattern, pattern: x}\n  - {name: a, type: pattern, pattern: y}\n",
		"nodes":     "nodes: -1\n",
		"syntax":    "attributes: [\n",
	}
	for name, doc := range tests {
		_, err := attribute.LoadSpecs(strings.NewReader(doc))
		require.ErrorIs(t, err, attribute.ErrInvalidSpec, name)
	}
}

func TestBuildInvalid(t *testing.T) {
	_, err := attribute.Build(attribute.Spec{Name: "x", Type: "graph"}, 1)
	require.ErrorIs(t, err, attribute.ErrInvalidSpec)

	_, err = attribute.Build(attribute.Spec{Name: "n", Type: attribute.KindNumeric}, 1)
	require.ErrorIs(t, err, attribute.ErrInvalidSpec)
}

func TestEmitEmptyRange(t *testing.T) {
	var buf bytes.Buffer
	require.Error(t, attribute.Emit(&buf, nil, 5, 4))
}
