package transcript

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func writeTranscript(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chat.txt")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRead_ReturnsLastNLines(t *testing.T) {
	path := writeTranscript(t, "a\nb\nc\nd\n")

	got, err := Read(path, 2)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if want := []string{"c", "d"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Read = %#v, want %#v", got, want)
	}
}

func TestRead_FewerLinesThanLimit(t *testing.T) {
	path := writeTranscript(t, "only\nthese")

	got, err := Read(path, 10)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if want := []string{"only", "these"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Read = %#v, want %#v", got, want)
	}
}

func TestRead_NoLimitReturnsAll(t *testing.T) {
	path := writeTranscript(t, "a\n\nb\n")

	got, err := Read(path, 0)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if want := []string{"a", "", "b"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Read = %#v, want %#v", got, want)
	}
}

func TestRead_MissingFileErrors(t *testing.T) {
	if _, err := Read(filepath.Join(t.TempDir(), "nope.txt"), 5); err == nil {
		t.Fatalf("Read returned nil error, want error for missing file")
	}
}

func TestRead_HugeLimitReadsWholeFile(t *testing.T) {
	path := writeTranscript(t, "first\nsecond\n")

	got, err := Read(path, math.MaxInt)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if want := []string{"first", "second"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Read = %#v, want %#v", got, want)
	}
}

func TestRead_WrapsRingMoreThanOnce(t *testing.T) {
	path := writeTranscript(t, "1\n2\n3\n4\n5\n6\n7\n")

	got, err := Read(path, 3)
	if err != nil {
		t.Fatalf("Read returned error: %v", err)
	}
	if want := []string{"5", "6", "7"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Read = %#v, want %#v", got, want)
	}
}
