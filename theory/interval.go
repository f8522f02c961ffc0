package theory

// Interval is a short interval label such as "P5" or "m3"
type Interval string

const (
	Unison        Interval = "P1"
	MinorSecond   Interval = "m2"
	MajorSecond   Interval = "M2"
	MinorThird    Interval = "m3"
	MajorThird    Interval = "M3"
	PerfectFourth Interval = "P4"
	Tritone       Interval = "TT"
	PerfectFifth  Interval = "P5"
	MinorSixth    Interval = "m6"
	MajorSixth    Interval = "M6"
	MinorSeventh  Interval = "m7"
	MajorSeventh  Interval = "M7"
)

// NoInterval is shown when a note has no name in the active context
const NoInterval = "N/A"

// chromaticIntervals names every semitone distance inside the octave
var chromaticIntervals = [NumPitchClasses]Interval{
	Unison, MinorSecond, MajorSecond, MinorThird, MajorThird, PerfectFourth,
	Tritone, PerfectFifth, MinorSixth, MajorSixth, MinorSeventh, MajorSeventh,
}

// ChromaticIntervals returns the full interval table indexed by semitone
func ChromaticIntervals() []Interval {
	out := make([]Interval, NumPitchClasses)
	copy(out, chromaticIntervals[:])
	return out
}

// IntervalForSemitones names a distance; it wraps outside [0,11]
func IntervalForSemitones(semitones int) Interval {
	return chromaticIntervals[PitchClass(semitones).Class()]
}

// ChromaticInterval names the distance from root up to note. It is total.
func ChromaticInterval(root, note Note) Interval {
	return IntervalForSemitones(root.SemitonesTo(note))
}

// IntervalFromKey names note by its degree in scale built on key.
// ok is false when the note lies outside the scale.
func IntervalFromKey(scale Scale, key, note Note) (Interval, bool) {
	diff := key.SemitonesTo(note)
	for _, d := range scale.Degrees {
		if d.Semitones == diff {
			return d.Interval, true
		}
	}
	return "", false
}

// Display renders an interval for the log, NoInterval when empty
func (i Interval) Display() string {
	if i == "" {
		return NoInterval
	}
	return string(i)
}
