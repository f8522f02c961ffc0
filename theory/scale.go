package theory

import (
	"fmt"
	"strings"
)

// Degree pairs an interval label with its offset from the scale root
type Degree struct {
	Interval  Interval `json:"interval" yaml:"interval"`
	Semitones int      `json:"semitones" yaml:"semitones"`
}

// Scale is an ordered set of degrees. Offsets are unique within a built-in
// scale but need not cover the whole octave.
type Scale struct {
	Name    string
	Degrees []Degree
}

// Scale names
const (
	ScaleMajor      = "Major"
	ScaleMinor      = "Minor"
	ScaleMajorPenta = "MajorPenta"
	ScaleMinorPenta = "MinorPenta"
)

var (
	Major = Scale{Name: ScaleMajor, Degrees: []Degree{
		{Unison, 0}, {MajorSecond, 2}, {MajorThird, 4}, {PerfectFourth, 5},
		{PerfectFifth, 7}, {MajorSixth, 9}, {MajorSeventh, 11},
	}}
	Minor = Scale{Name: ScaleMinor, Degrees: []Degree{
		{Unison, 0}, {MajorSecond, 2}, {MinorThird, 3}, {PerfectFourth, 5},
		{PerfectFifth, 7}, {MinorSixth, 8}, {MinorSeventh, 10},
	}}
	MajorPenta = Scale{Name: ScaleMajorPenta, Degrees: []Degree{
		{Unison, 0}, {MajorSecond, 2}, {MajorThird, 4}, {PerfectFifth, 7}, {MajorSixth, 9},
	}}
	MinorPenta = Scale{Name: ScaleMinorPenta, Degrees: []Degree{
		{Unison, 0}, {MinorThird, 3}, {PerfectFourth, 5}, {PerfectFifth, 7}, {MinorSeventh, 10},
	}}
)

// scales lists the built-ins in menu order
var scales = []Scale{Major, Minor, MajorPenta, MinorPenta}

// scaleAliases maps lower-cased alternative names to built-in names
var scaleAliases = map[string]string{
	"majorpentatonic": ScaleMajorPenta,
	"minorpentatonic": ScaleMinorPenta,
	"ionian":          ScaleMajor,
	"aeolian":         ScaleMinor,
}

// Scales returns the built-in scales in menu order
func Scales() []Scale {
	out := make([]Scale, len(scales))
	copy(out, scales)
	return out
}

// ScaleNames returns the built-in scale names in menu order
func ScaleNames() []string {
	names := make([]string, len(scales))
	for i, s := range scales {
		names[i] = s.Name
	}
	return names
}

// LookupScale finds a built-in scale by name, case-insensitive
func LookupScale(name string) (Scale, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := scaleAliases[key]; ok {
		key = strings.ToLower(alias)
	}
	for _, s := range scales {
		if strings.ToLower(s.Name) == key {
			return s, nil
		}
	}
	return Scale{}, fmt.Errorf("unknown scale %q", name)
}

// Notes spells the scale on key, one note per degree in order
func (s Scale) Notes(key Note) []Note {
	out := make([]Note, len(s.Degrees))
	for i, d := range s.Degrees {
		out[i] = key.Transpose(d.Semitones)
	}
	return out
}

// DegreeOf returns the 1-based position of note in the scale built on key
func (s Scale) DegreeOf(key, note Note) (int, bool) {
	diff := key.SemitonesTo(note)
	for i, d := range s.Degrees {
		if d.Semitones == diff {
			return i + 1, true
		}
	}
	return 0, false
}

func (s Scale) String() string {
	return s.Name
}
