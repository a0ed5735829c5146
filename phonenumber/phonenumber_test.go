package phonenumber

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name    string
		region  string
		raw     string
		want    string
		wantErr bool
	}{
		{"AlreadyE164", "", "+14155552671", "+14155552671", false},
		{"NationalWithRegion", "US", "(415) 555-2671", "+14155552671", false},
		{"LowercaseRegion", "fr", "06 12 34 56 78", "+33612345678", false},
		{"SipUser", "", "sip:agent@pbx.example.com", "sip:agent@pbx.example.com", false},
		{"NationalWithoutRegion", "", "4155552671", "", true},
		{"Garbage", "US", "call me", "", true},
		{"Empty", "US", "  ", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Normalizer{DefaultRegion: tc.region}.Normalize("to_number", tc.raw)
			if tc.wantErr {
				if err == nil {
					t.Errorf("Expected an error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tc.want {
				t.Errorf("Expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestParseMetadata(t *testing.T) {
	pn := NewPhoneNumber("+33612345678")
	if err := pn.Parse("US"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if pn.ISOCountryCode != "33" || pn.RegionCode != "FR" {
		t.Errorf("Unexpected metadata %#v", pn)
	}
}
