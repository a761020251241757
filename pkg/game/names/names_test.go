package names

import "testing"

func TestDefault_AreaNames(t *testing.T) {
	tables := Default()
	tests := []struct {
		id   int
		want string
	}{
		{1, "Rogue Encampment"},
		{40, "Lut Gholein"},
		{109, "Harrogath"},
		{136, "Uber Tristram"},
	}
	for _, tt := range tests {
		if got := tables.Area(tt.id); got != tt.want {
			t.Errorf("Area(%d) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestObjectLabel_CollapsesWaypoints(t *testing.T) {
	tables := Default()
	for _, id := range []int{182, 119, 539} {
		if got := tables.ObjectLabel(id); got != WaypointLabel {
			t.Errorf("ObjectLabel(%d) = %q, want %q", id, got, WaypointLabel)
		}
	}
	if got := tables.ObjectLabel(376); got != "HellForge" {
		t.Errorf("ObjectLabel(376) = %q, want %q", got, "HellForge")
	}
}

func TestLookupMiss_FallsBackToCode(t *testing.T) {
	tables := Default()
	if got := tables.Area(4242); got != "4242" {
		t.Errorf("Area(4242) = %q, want %q", got, "4242")
	}
	if got := tables.ObjectLabel(9001); got != "9001" {
		t.Errorf("ObjectLabel(9001) = %q, want %q", got, "9001")
	}

	var nilTables *Tables
	if got := nilTables.Object(5); got != "5" {
		t.Errorf("nil Tables Object(5) = %q, want %q", got, "5")
	}
}

func TestParse_ContextsDoNotMix(t *testing.T) {
	tables := Parse([]byte(`
msgctxt "area"
msgid "7"
msgstr "Tamoe Highland"

msgctxt "object"
msgid "7"
msgstr "Barrel"
`))
	if got := tables.Area(7); got != "Tamoe Highland" {
		t.Errorf("Area(7) = %q, want %q", got, "Tamoe Highland")
	}
	if got := tables.Object(7); got != "Barrel" {
		t.Errorf("Object(7) = %q, want %q", got, "Barrel")
	}
}
