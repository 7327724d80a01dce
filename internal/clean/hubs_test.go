package clean

import "testing"

func TestCleanHubsRepairsCityArtifacts(t *testing.T) {
	tests := []struct {
		name        string
		city        string
		want        string
		wantRepairs int
	}{
		{name: "replacement character", city: "S�o Paulo", want: "Sao Paulo", wantRepairs: 1},
		{name: "double-decode mojibake", city: "SÃ£o Paulo", want: "Sao Paulo", wantRepairs: 1},
		{name: "clean city untouched", city: "Curitiba", want: "Curitiba", wantRepairs: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := makeTable("hubs", hubColumns,
				[]string{"1", "Central Hub", tt.city, "SP", "-23.55", "-46.63"},
			)
			out, stats, err := CleanHubs(raw)
			if err != nil {
				t.Fatalf("CleanHubs error: %v", err)
			}
			if len(out) != 1 {
				t.Fatalf("expected 1 hub, got %d", len(out))
			}
			if out[0].City != tt.want {
				t.Errorf("city = %q, want %q", out[0].City, tt.want)
			}
			if stats.Repairs != tt.wantRepairs {
				t.Errorf("Repairs = %d, want %d", stats.Repairs, tt.wantRepairs)
			}
		})
	}
}

func TestCleanHubsRequiresCoordinates(t *testing.T) {
	raw := makeTable("hubs", hubColumns,
		[]string{"1", "Hub A", "Rio de Janeiro", "RJ", "-22.9", "-43.2"},
		[]string{"2", "Hub B", "Rio de Janeiro", "RJ", "", "-43.2"},
	)

	out, stats, err := CleanHubs(raw)
	if err != nil {
		t.Fatalf("CleanHubs error: %v", err)
	}
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("expected only hub 1, got %+v", out)
	}
	if stats.MissingRequired != 1 {
		t.Errorf("MissingRequired = %d, want 1", stats.MissingRequired)
	}
}
