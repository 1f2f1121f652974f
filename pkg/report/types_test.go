package report

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestMarshalIndent(t *testing.T) {
	data, err := MarshalIndent(&ZennData{Articles: []Article{{Title: "週報", LikedCount: 3}}})
	if err != nil {
		t.Fatalf("MarshalIndent failed: %v", err)
	}
	if !strings.Contains(string(data), "\n  \"articles\"") {
		t.Errorf("output not two-space indented:\n%s", data)
	}

	var got ZennData
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if len(got.Articles) != 1 || got.Articles[0].Title != "週報" {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}
