// Package taxid performs structural validation of Indian tax
// identifiers. Validation is shape-only: the GSTIN check character is
// captured but not recomputed.
package taxid

import "strings"

// GSTINResult decomposes a GSTIN or carries the first violated rule.
type GSTINResult struct {
	Valid      bool   `json:"valid"`
	StateCode  string `json:"state_code,omitempty"`
	PAN        string `json:"pan,omitempty"`
	EntityCode string `json:"entity_code,omitempty"`
	Checksum   string `json:"checksum,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// PANResult decomposes a PAN or carries the violated rule.
type PANResult struct {
	Valid      bool   `json:"valid"`
	PAN        string `json:"pan,omitempty"`
	HolderType string `json:"holder_type,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

// panHolderTypes maps the fourth PAN character to the holder category.
var panHolderTypes = map[byte]string{
	'P': "Individual",
	'C': "Company",
	'H': "HUF",
	'F': "Firm",
	'A': "AOP",
	'T': "Trust",
	'B': "BOI",
	'L': "Local Authority",
	'J': "Artificial Juridical Person",
	'G': "Government",
}

// ValidateGSTIN checks the 15-character GSTIN shape: two state-code
// digits, the embedded PAN, an entity code, the literal 'Z', and a
// check character.
func ValidateGSTIN(gstin string) GSTINResult {
	gstin = strings.ToUpper(strings.TrimSpace(gstin))
	if len(gstin) != 15 {
		return GSTINResult{Reason: "GSTIN must be 15 characters"}
	}
	state := gstin[:2]
	if !isDigits(state) {
		return GSTINResult{Reason: "invalid state code"}
	}
	if gstin[13] != 'Z' {
		return GSTINResult{Reason: "14th character must be Z"}
	}
	return GSTINResult{
		Valid:      true,
		StateCode:  state,
		PAN:        gstin[2:12],
		EntityCode: string(gstin[12]),
		Checksum:   string(gstin[14]),
	}
}

// ValidatePAN checks the 10-character PAN shape (5 letters, 4 digits,
// 1 letter) and labels the holder type from the fourth character.
// An unrecognised fourth character yields "Unknown" rather than a
// failure.
func ValidatePAN(pan string) PANResult {
	pan = strings.ToUpper(strings.TrimSpace(pan))
	if len(pan) != 10 {
		return PANResult{Reason: "PAN must be 10 characters"}
	}
	if !isAlpha(pan[:5]) || !isDigits(pan[5:9]) || !isAlpha(pan[9:]) {
		return PANResult{Reason: "invalid PAN format"}
	}
	holder, ok := panHolderTypes[pan[3]]
	if !ok {
		holder = "Unknown"
	}
	return PANResult{Valid: true, PAN: pan, HolderType: holder}
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isAlpha(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return false
		}
	}
	return len(s) > 0
}
