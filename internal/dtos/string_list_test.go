package dtos

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestStringListUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want StringList
	}{
		{name: "array", in: `["Go", " SQL ", ""]`, want: StringList{"Go", "SQL"}},
		{name: "comma string", in: `"Go, SQL,,  Redis "`, want: StringList{"Go", "SQL", "Redis"}},
		{name: "empty string", in: `""`, want: StringList{}},
		{name: "null", in: `null`, want: StringList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got StringList
			if err := json.Unmarshal([]byte(tt.in), &got); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("expected %#v, got %#v", tt.want, got)
			}
		})
	}
}

func TestStringListRejectsOtherTypes(t *testing.T) {
	var got StringList
	if err := json.Unmarshal([]byte(`42`), &got); err == nil {
		t.Fatal("expected error for a number")
	}
}

func TestJobCreationRequestAcceptsBothShapes(t *testing.T) {
	body := `{"title":"API","description":"d","budget":10,"skills":"go, sql","tags":["remote"]}`
	var req JobCreationRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(req.Skills, StringList{"go", "sql"}) {
		t.Fatalf("unexpected skills %#v", req.Skills)
	}
	if !reflect.DeepEqual(req.Tags, StringList{"remote"}) {
		t.Fatalf("unexpected tags %#v", req.Tags)
	}
}

func TestStringListOrEmpty(t *testing.T) {
	var missing StringList
	got, err := json.Marshal(missing.OrEmpty())
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "[]" {
		t.Fatalf("expected [], got %s", got)
	}

	l := StringList{"Go"}
	if out := l.OrEmpty(); len(out) != 1 || out[0] != "Go" {
		t.Fatalf("unexpected entries %v", out)
	}
}
