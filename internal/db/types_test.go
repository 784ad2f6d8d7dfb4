package db

import (
	"testing"
)

func TestStringArrayScanValue(t *testing.T) {
	var a StringArray
	if err := a.Scan([]byte(`["Mathématiques","Programmation"]`)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(a) != 2 || a[0] != "Mathématiques" || a[1] != "Programmation" {
		t.Errorf("unexpected scan result: %v", a)
	}

	v, err := a.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if string(v.([]byte)) != `["Mathématiques","Programmation"]` {
		t.Errorf("unexpected value: %s", v)
	}
}

func TestStringArrayScanNil(t *testing.T) {
	var a StringArray
	if err := a.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if a == nil || len(a) != 0 {
		t.Errorf("expected empty array, got %v", a)
	}
}

func TestStringArrayValueNil(t *testing.T) {
	var a StringArray
	v, err := a.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if string(v.([]byte)) != "[]" {
		t.Errorf("nil array should serialize as [], got %s", v)
	}
}

func TestScoreMapScanValue(t *testing.T) {
	var m ScoreMap
	if err := m.Scan([]byte(`{"academic_interests":0.8,"perceived_skills":1}`)); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if m["academic_interests"] != 0.8 {
		t.Errorf("unexpected academic_interests: %v", m["academic_interests"])
	}
	if m["perceived_skills"] != 1.0 {
		t.Errorf("unexpected perceived_skills: %v", m["perceived_skills"])
	}

	if _, err := m.Value(); err != nil {
		t.Fatalf("Value failed: %v", err)
	}
}

func TestScoreMapScanNil(t *testing.T) {
	var m ScoreMap
	if err := m.Scan(nil); err != nil {
		t.Fatalf("Scan(nil) failed: %v", err)
	}
	if m == nil || len(m) != 0 {
		t.Errorf("expected empty map, got %v", m)
	}
}

func TestScoreMapScanString(t *testing.T) {
	var m ScoreMap
	if err := m.Scan(`{"work_preferences":0.4}`); err != nil {
		t.Fatalf("Scan(string) failed: %v", err)
	}
	if m["work_preferences"] != 0.4 {
		t.Errorf("unexpected value: %v", m)
	}
}

func TestValidRole(t *testing.T) {
	for _, role := range []string{RoleStudent, RoleAdvisor, RoleAdmin} {
		if !ValidRole(role) {
			t.Errorf("expected %q to be valid", role)
		}
	}
	if ValidRole("teacher") {
		t.Error("expected unknown role to be invalid")
	}
}
