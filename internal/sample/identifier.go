package sample

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var identReg = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// DeriveName turns a WAV file path into the identifier used for the
// generated array symbol and enumeration member. File names written on
// macOS may have a different Unicode Normalization Form, so the name
// is NFC-normalized first.
func DeriveName(path string) (string, error) {
	base := filepath.Base(path)
	name := norm.NFC.String(strings.TrimSuffix(base, filepath.Ext(base)))
	if !identReg.MatchString(name) {
		return "", fmt.Errorf("%s: '%s' is not a valid identifier", path, name)
	}
	return name, nil
}

// verifyUnique rejects sets whose uppercased names collide. Without
// this check two files like Beep.wav and beep.wav would generate
// duplicate enumeration members and the second source file would
// overwrite the first.
func verifyUnique(sets []*Set) error {
	seen := make(map[string]string, len(sets))
	for _, s := range sets {
		prev, ok := seen[s.EnumName()]
		if ok {
			return fmt.Errorf("%s: identifier %s collides with %s", s.Path, s.EnumName(), prev)
		}
		seen[s.EnumName()] = s.Path
	}
	return nil
}
