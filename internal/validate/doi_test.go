// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package validate

import "testing"

func TestCheckDOI(t *testing.T) {
	tests := []struct {
		name    string
		doi     string
		wantErr bool
	}{
		{"zenodo", "10.5281/zenodo.7060240", false},
		{"journal article", "10.1103/PhysRevD.100.064024", false},
		{"long registrant", "10.123456789/x", false},
		{"url form", "https://doi.org/10.5281/zenodo.7060240", true},
		{"doi prefix", "doi:10.5281/zenodo.7060240", true},
		{"short registrant", "10.123/abc", true},
		{"no suffix", "10.5281/", true},
		{"whitespace in suffix", "10.5281/zenodo 7060240", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckDOI(tt.doi)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckDOI(%q) = %v, wantErr %v", tt.doi, err, tt.wantErr)
			}
		})
	}
}

func TestIsDOI(t *testing.T) {
	if !IsDOI("10.5281/zenodo.7060240") {
		t.Error("IsDOI rejected a well-formed DOI")
	}
	if IsDOI("swh:1:rel:22ece559cc7cc2364edc5e5593d63ae8bd229f9f") {
		t.Error("IsDOI accepted a Software Heritage identifier")
	}
}
