package zones

import "testing"

func TestResolve_EveryEntryMapsToAValidZone(t *testing.T) {
	valid := make(map[string]struct{}, len(All))
	for _, z := range All {
		valid[z] = struct{}{}
	}
	if len(valid) != 7 {
		t.Fatalf("expected exactly 7 zones, got %d", len(valid))
	}
	for municipality, zone := range byMunicipality {
		if _, ok := valid[zone]; !ok {
			t.Fatalf("municipality %q maps to invalid zone %q", municipality, zone)
		}
	}
}

func TestResolve_KnownAndUnknown(t *testing.T) {
	if got := Resolve("san isidro"); got != ZoneA {
		t.Fatalf("case-insensitive lookup: got %q, want %q", got, ZoneA)
	}
	if got := Resolve("  TRES ARROYOS "); got != ZoneB2 {
		t.Fatalf("trimmed lookup: got %q, want %q", got, ZoneB2)
	}
	if got := Resolve("CIUDAD INEXISTENTE"); got != ZoneUnknown {
		t.Fatalf("unknown municipality: got %q, want %q", got, ZoneUnknown)
	}
	if got := Resolve(""); got != ZoneUnknown {
		t.Fatalf("empty municipality: got %q, want %q", got, ZoneUnknown)
	}
}

func TestIsExcluded(t *testing.T) {
	for _, raw := range []string{"OBRA NUEVA", "obra nueva", "Dado De Baja", "n/a"} {
		if !IsExcluded(raw) {
			t.Fatalf("expected %q excluded", raw)
		}
	}
	if IsExcluded("SAN ISIDRO") {
		t.Fatalf("SAN ISIDRO must not be excluded")
	}
	// Exclusion applies even though the name resolves to no zone.
	if IsExcluded("CIUDAD INEXISTENTE") {
		t.Fatalf("unknown names are not excluded, only the three markers")
	}
}
