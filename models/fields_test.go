package models

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestTagListAcceptsArrayOrJoinedString(t *testing.T) {
	var fromArray TagList
	if err := json.Unmarshal([]byte(`["keto"," lunch ","keto",""]`), &fromArray); err != nil {
		t.Fatalf("array form: %v", err)
	}
	var fromString TagList
	if err := json.Unmarshal([]byte(`"keto, lunch,keto,"`), &fromString); err != nil {
		t.Fatalf("string form: %v", err)
	}

	want := TagList{"keto", "lunch"}
	if !reflect.DeepEqual(fromArray, want) {
		t.Fatalf("array form: got %v", fromArray)
	}
	if !reflect.DeepEqual(fromString, want) {
		t.Fatalf("string form: got %v", fromString)
	}
}

func TestNormalizeTagsKeepsFirstSeenOrder(t *testing.T) {
	got := NormalizeTags([]string{"b", "a", "b", " a", "c"})
	if !reflect.DeepEqual(got, []string{"b", "a", "c"}) {
		t.Fatalf("got %v", got)
	}
}

func TestJSONFieldAcceptsStructuredOrSerializedInput(t *testing.T) {
	var fromObject JSONField
	if err := json.Unmarshal([]byte(`{"instagram":"@chef"}`), &fromObject); err != nil {
		t.Fatalf("object form: %v", err)
	}
	var fromString JSONField
	if err := json.Unmarshal([]byte(`"{\"instagram\":\"@chef\"}"`), &fromString); err != nil {
		t.Fatalf("string form: %v", err)
	}

	want := map[string]interface{}{"instagram": "@chef"}
	if !reflect.DeepEqual(fromObject.Decode(), want) {
		t.Fatalf("object form decoded to %v", fromObject.Decode())
	}
	if !reflect.DeepEqual(fromString.Decode(), want) {
		t.Fatalf("string form decoded to %v", fromString.Decode())
	}
}

func TestDecodeJSONStringFallsBackToRaw(t *testing.T) {
	if got := DecodeJSONString(""); got != nil {
		t.Fatalf("empty input must decode to nil, got %v", got)
	}
	// A stored value that never was JSON passes through untouched.
	if got := DecodeJSONString("just a note"); got != "just a note" {
		t.Fatalf("got %v", got)
	}
}
