package main

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestParseInlineObservations(t *testing.T) {
	tests := []struct {
		spec string
		want []float64
	}{
		{"10 12 9 11 13", []float64{10, 12, 9, 11, 13}},
		{"1.5, 2.5,3.5", []float64{1.5, 2.5, 3.5}},
		{"  -4\t7  ", []float64{-4, 7}},
		{"", []float64{}},
	}
	for _, tt := range tests {
		got, err := parseObservationSpec(tt.spec)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.spec, err)
			continue
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%q: got %v, want %v", tt.spec, got, tt.want)
		}
	}
}

func TestParseInlineObservationsRejectsText(t *testing.T) {
	if _, err := parseObservationSpec("10 twelve 9"); err == nil {
		t.Fatal("expected an error for non-numeric input")
	}
}

func TestParseObservationSpecFileReference(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.csv")
	if err := os.WriteFile(path, []byte("value\n3\n5\n8\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := parseObservationSpec("@" + path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{3, 5, 8}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestParseObservationSpecColumnSelector(t *testing.T) {
	path := filepath.Join(t.TempDir(), "values.csv")
	if err := os.WriteFile(path, []byte("a,b\n1,10\n2,20\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := parseObservationSpec("@" + path + "::B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []float64{10, 20}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
