package sample

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
)

// Format constraints of the target device. A file violating one of
// these aborts the whole run.
const (
	BitDepth   = 16
	SampleRate = 11025
	Channels   = 1
)

const wavExt = ".wav"

// Load walks dir recursively, decodes every .wav file and returns the
// run context. filepath.WalkDir visits directory entries in lexical
// order, so the discovery order - and with it the enumeration order -
// is the sorted path order on every platform.
func Load(ctx context.Context, dir string) (*Run, error) {
	paths, err := wavFiles(dir)
	if err != nil {
		return nil, err
	}

	run := &Run{SampleRate: SampleRate}
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		set, err := decode(path)
		if err != nil {
			return nil, err
		}
		run.TotalBytes += set.ByteSize()
		run.Sets = append(run.Sets, set)
	}

	if err := verifyUnique(run.Sets); err != nil {
		return nil, err
	}
	return run, nil
}

func wavFiles(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, file fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if file.IsDir() || !strings.HasSuffix(file.Name(), wavExt) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

func decode(path string) (*Set, error) {
	name, err := DeriveName(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%s: not a valid wav file", path)
	}
	if dec.BitDepth != BitDepth {
		return nil, fmt.Errorf("%s: %d-bit samples, want %d-bit", path, dec.BitDepth, BitDepth)
	}
	if dec.SampleRate != SampleRate {
		return nil, fmt.Errorf("%s: sample rate %d Hz, want %d Hz", path, dec.SampleRate, SampleRate)
	}
	if dec.NumChans != Channels {
		return nil, fmt.Errorf("%s: %d channels, want mono", path, dec.NumChans)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%s: reading PCM data: %w", path, err)
	}

	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}

	return &Set{
		Name:    name,
		Path:    path,
		Samples: samples,
	}, nil
}
