package anonymize

import (
	"strings"
	"testing"
)

// TestText_MasksIdentifiers tests masking of common identifier shapes
func TestText_MasksIdentifiers(t *testing.T) {
	testCases := []struct {
		name     string
		in       string
		contains string
		absent   string
	}{
		{
			name:     "email",
			in:       "Contact: jean.dupont@example.fr pour le suivi",
			contains: "[EMAIL]",
			absent:   "jean.dupont@example.fr",
		},
		{
			name:     "phone",
			in:       "Rappeler au 06 12 34 56 78 demain",
			contains: "[TELEPHONE]",
			absent:   "06 12 34 56 78",
		},
		{
			name:     "titled name",
			in:       "Patient suivi par Dr Martin depuis 2020",
			contains: "Dr [NOM]",
			absent:   "Dr Martin",
		},
		{
			name:     "identity number",
			in:       "NIR 1 85 05 78 006 048 22 enregistré",
			contains: "[NUMERO-IDENTITE]",
			absent:   "1 85 05 78 006 048 22",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out := Text(tc.in)
			if !strings.Contains(out, tc.contains) {
				t.Errorf("Expected %q in output, got %q", tc.contains, out)
			}
			if strings.Contains(out, tc.absent) {
				t.Errorf("Expected %q to be masked, got %q", tc.absent, out)
			}
		})
	}
}

// TestText_KeepsClinicalText tests that plain clinical text is untouched
func TestText_KeepsClinicalText(t *testing.T) {
	in := "Douleur thoracique depuis 3 jours, TA 140/90, pas de fièvre."
	if out := Text(in); out != in {
		t.Errorf("Expected clinical text unchanged, got %q", out)
	}
}

// TestText_Empty tests the empty input
func TestText_Empty(t *testing.T) {
	if out := Text(""); out != "" {
		t.Errorf("Expected empty output, got %q", out)
	}
}
