package utils

import (
	"bytes"
	"testing"
)

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintJSON(&buf, map[string]int{"b": 2, "a": 1}); err != nil {
		t.Fatal(err)
	}

	want := "{\n  \"a\": 1,\n  \"b\": 2\n}\n"
	if buf.String() != want {
		t.Errorf("PrintJSON() = %q, want %q", buf.String(), want)
	}
}

func TestPrintJSONUnsupported(t *testing.T) {
	if err := PrintJSON(&bytes.Buffer{}, make(chan int)); err == nil {
		t.Error("expected error for a channel")
	}
}
