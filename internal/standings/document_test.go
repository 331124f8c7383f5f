package standings

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"
)

func TestDocumentSeasons(t *testing.T) {
	data := []byte(`{"2023__motogp": {"a": 1}, "2023__moto2": {"b": 2}, "2024__motogp": {"c": 3}}`)

	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	got := doc.Seasons()
	want := []string{"2023", "2024"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Seasons() = %v, want %v", got, want)
	}
}

func TestDocumentKeyOrderPreserved(t *testing.T) {
	// Key order must follow the document text, not Go map iteration.
	data := []byte(`{"2024__motogp": 1, "2023__motogp": 2, "2022__motogp": 3, "2021__motogp": 4}`)

	doc := NewDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := []string{"2024__motogp", "2023__motogp", "2022__motogp", "2021__motogp"}
	if got := doc.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	wantSeasons := []string{"2024", "2023", "2022", "2021"}
	if got := doc.Seasons(); !reflect.DeepEqual(got, wantSeasons) {
		t.Errorf("Seasons() = %v, want %v", got, wantSeasons)
	}
}

func TestDocumentEmpty(t *testing.T) {
	doc := NewDocument()
	if err := json.Unmarshal([]byte(`{}`), doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if doc.Len() != 0 {
		t.Errorf("Len() = %d, want 0", doc.Len())
	}
	if seasons := doc.Seasons(); len(seasons) != 0 {
		t.Errorf("Seasons() = %v, want empty", seasons)
	}
}

func TestDocumentNotObject(t *testing.T) {
	for _, input := range []string{`[]`, `"x"`, `42`} {
		doc := NewDocument()
		if err := json.Unmarshal([]byte(input), doc); !errors.Is(err, ErrNotObject) {
			t.Errorf("unmarshal %s: err = %v, want ErrNotObject", input, err)
		}
	}
}

func TestDocumentMarshalRoundTrip(t *testing.T) {
	doc := NewDocument()
	if err := doc.Set("2024__motogp", []int{1, 2}); err != nil {
		t.Fatal(err)
	}
	if err := doc.Set("2023__motogp", []int{3}); err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"2024__motogp":[1,2],"2023__motogp":[3]}`
	if string(data) != want {
		t.Errorf("marshal = %s, want %s", data, want)
	}

	back := NewDocument()
	if err := json.Unmarshal(data, back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(back.Keys(), doc.Keys()) {
		t.Errorf("round trip keys = %v, want %v", back.Keys(), doc.Keys())
	}
}

func TestDocumentSetDuplicateKeepsPosition(t *testing.T) {
	doc := NewDocument()
	doc.Set("2024__motogp", 1)
	doc.Set("2023__motogp", 2)
	doc.Set("2024__motogp", 3)

	want := []string{"2024__motogp", "2023__motogp"}
	if got := doc.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	raw, _ := doc.Payload("2024__motogp")
	if string(raw) != "3" {
		t.Errorf("payload = %s, want 3", raw)
	}
}

func TestKeySeason(t *testing.T) {
	tests := []struct {
		key    string
		season string
		cat    string
	}{
		{"2023__motogp", "2023", "motogp"},
		{"2023-spring__a", "2023-spring", "a"},
		{"2023", "2023", ""},
		{"__motogp", "", "motogp"},
		{"2023__moto__gp", "2023", "moto__gp"},
	}
	for _, tt := range tests {
		if got := KeySeason(tt.key); got != tt.season {
			t.Errorf("KeySeason(%q) = %q, want %q", tt.key, got, tt.season)
		}
		if got := KeyCategory(tt.key); got != tt.cat {
			t.Errorf("KeyCategory(%q) = %q, want %q", tt.key, got, tt.cat)
		}
	}
}

func TestSeasonLabel(t *testing.T) {
	tests := []struct {
		id    string
		label string
	}{
		{"2023-spring", "2023"},
		{"2023", "2023"},
		{"", ""},
		{"2023-spring-test", "2023"},
	}
	for _, tt := range tests {
		if got := SeasonLabel(tt.id); got != tt.label {
			t.Errorf("SeasonLabel(%q) = %q, want %q", tt.id, got, tt.label)
		}
	}
}
