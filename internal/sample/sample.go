// Package sample loads WAV files into sample sets and derives the
// identifiers used by the generated source files.
package sample

import "strings"

// Set holds the decoded samples of one input WAV file plus the
// identifier derived from its file name.
type Set struct {
	// Name is the base file name without extension, NFC-normalized.
	// It is used verbatim as the array symbol and, uppercased, as the
	// enumeration member.
	Name string
	// Path is the file the samples were decoded from.
	Path string
	// Samples are the signed 16-bit PCM values, one per frame.
	Samples []int16
}

// ByteSize returns the storage size of the samples in bytes.
func (s *Set) ByteSize() int {
	return len(s.Samples) * 2
}

// EnumName returns the uppercased enumeration member name.
func (s *Set) EnumName() string {
	return strings.ToUpper(s.Name)
}

// Run is the context of one invocation: every sample set in
// enumeration order plus the values shared by the whole run.
// It is created by Load, read by the emitter and never mutated
// afterwards.
type Run struct {
	// SampleRate is the rate shared by all sets. The format
	// constraints allow only one rate, so the rate of the first
	// decoded file is the rate of the run.
	SampleRate int
	// TotalBytes is the sum of all set byte sizes.
	TotalBytes int
	// Sets in discovery order. The index of a set is its
	// enumeration position.
	Sets []*Set
}
