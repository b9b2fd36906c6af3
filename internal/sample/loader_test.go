package sample

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

func writeWav(t *testing.T, path string, rate, bitDepth, channels int, data []int) {
	t.Helper()

	err := os.MkdirAll(filepath.Dir(path), os.ModePerm)
	if err != nil {
		t.Fatalf("MkdirAll(): %v", err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create(): %v", err)
	}
	enc := wav.NewEncoder(f, rate, bitDepth, channels, 1)
	err = enc.Write(&audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: channels,
			SampleRate:  rate,
		},
		SourceBitDepth: bitDepth,
		Data:           data,
	})
	if err != nil {
		t.Fatalf("Write(): %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close() encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() file: %v", err)
	}
}

func beepData() []int {
	data := make([]int, 100)
	for i := 1; i < 99; i += 2 {
		data[i] = 1
		data[i+1] = -1
	}
	data[99] = 0
	return data
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	data := beepData()
	writeWav(t, filepath.Join(dir, "beep.wav"), 11025, 16, 1, data)

	run, err := Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	if len(run.Sets) != 1 {
		t.Fatalf("len(Sets) = %d, want 1", len(run.Sets))
	}
	if run.SampleRate != 11025 {
		t.Fatalf("SampleRate = %d, want 11025", run.SampleRate)
	}
	if run.TotalBytes != 200 {
		t.Fatalf("TotalBytes = %d, want 200", run.TotalBytes)
	}

	set := run.Sets[0]
	if set.Name != "beep" {
		t.Fatalf("Name = %s, want beep", set.Name)
	}
	if set.EnumName() != "BEEP" {
		t.Fatalf("EnumName() = %s, want BEEP", set.EnumName())
	}
	if set.ByteSize() != 200 {
		t.Fatalf("ByteSize() = %d, want 200", set.ByteSize())
	}
	for i, v := range data {
		if int(set.Samples[i]) != v {
			t.Fatalf("Samples[%d] = %d, want %d", i, set.Samples[i], v)
		}
	}
}

func TestLoadSortedPathOrder(t *testing.T) {
	dir := t.TempDir()
	// Creation order differs from lexical order on purpose. The
	// enumeration order must be the sorted path order.
	writeWav(t, filepath.Join(dir, "mm.wav"), 11025, 16, 1, []int{1})
	writeWav(t, filepath.Join(dir, "b", "zz.wav"), 11025, 16, 1, []int{2})
	writeWav(t, filepath.Join(dir, "a", "nn.wav"), 11025, 16, 1, []int{3})

	run, err := Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}

	var names []string
	for _, s := range run.Sets {
		names = append(names, s.Name)
	}
	want := []string{"nn", "zz", "mm"}
	if !slices.Equal(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	if run.TotalBytes != 6 {
		t.Fatalf("TotalBytes = %d, want 6", run.TotalBytes)
	}
}

func TestLoadEmptyDir(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("no audio"), 0o600)
	if err != nil {
		t.Fatalf("WriteFile(): %v", err)
	}

	run, err := Load(context.Background(), dir)
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if len(run.Sets) != 0 {
		t.Fatalf("len(Sets) = %d, want 0", len(run.Sets))
	}
	if run.TotalBytes != 0 {
		t.Fatalf("TotalBytes = %d, want 0", run.TotalBytes)
	}
	if run.SampleRate != SampleRate {
		t.Fatalf("SampleRate = %d, want %d", run.SampleRate, SampleRate)
	}
}

func TestLoadFormatViolations(t *testing.T) {
	tests := []struct {
		name     string
		rate     int
		bitDepth int
		channels int
		data     []int
		wantErr  string
	}{
		{
			name:     "wrong sample rate",
			rate:     22050,
			bitDepth: 16,
			channels: 1,
			data:     []int{0, 1},
			wantErr:  "sample rate 22050 Hz, want 11025 Hz",
		},
		{
			name:     "wrong bit depth",
			rate:     11025,
			bitDepth: 24,
			channels: 1,
			data:     []int{0, 1},
			wantErr:  "24-bit samples, want 16-bit",
		},
		{
			name:     "stereo",
			rate:     11025,
			bitDepth: 16,
			channels: 2,
			data:     []int{0, 1, 2, 3},
			wantErr:  "2 channels, want mono",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "bad.wav")
			writeWav(t, path, tt.rate, tt.bitDepth, tt.channels, tt.data)

			_, err := Load(context.Background(), dir)
			if err == nil {
				t.Fatalf("Load() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Load() = %v, want containing '%s'", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), path) {
				t.Fatalf("Load() = %v, want containing offending file %s", err, path)
			}
		})
	}
}

func TestLoadInvalidWavFile(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "broken.wav"), []byte("not a wav"), 0o600)
	if err != nil {
		t.Fatalf("WriteFile(): %v", err)
	}

	_, err = Load(context.Background(), dir)
	if err == nil {
		t.Fatalf("Load() = nil, want error")
	}
	if !strings.Contains(err.Error(), "broken.wav") {
		t.Fatalf("Load() = %v, want containing broken.wav", err)
	}
}

func TestLoadCollidingNames(t *testing.T) {
	dir := t.TempDir()
	writeWav(t, filepath.Join(dir, "Beep.wav"), 11025, 16, 1, []int{0})
	writeWav(t, filepath.Join(dir, "beep.wav"), 11025, 16, 1, []int{0})

	_, err := Load(context.Background(), dir)
	if err == nil {
		t.Fatalf("Load() = nil, want collision error")
	}
	for _, want := range []string{"BEEP", "Beep.wav", "beep.wav"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("Load() = %v, want containing '%s'", err, want)
		}
	}
}

func TestLoadCanceledContext(t *testing.T) {
	dir := t.TempDir()
	writeWav(t, filepath.Join(dir, "beep.wav"), 11025, 16, 1, []int{0})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, dir)
	if err == nil {
		t.Fatalf("Load() = nil, want context error")
	}
}
