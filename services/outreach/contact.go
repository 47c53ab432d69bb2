// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package outreach implements the contact outreach pipeline: CSV ingestion,
// contact classification, AI-assisted email composition and SMTP delivery.
package outreach

import "strings"

// Contact holds one CSV row. All fields are free text; absent columns are
// empty strings, never errors.
type Contact struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Company string `json:"company"`
	Phone   string `json:"phone"`
	Notes   string `json:"notes"`
}

// ContactType is the outreach category derived from a contact's role.
type ContactType int

const (
	TypeParticipant ContactType = iota
	TypeJudge
	TypeSponsor
)

func (t ContactType) String() string {
	switch t {
	case TypeJudge:
		return "judge"
	case TypeSponsor:
		return "sponsor"
	default:
		return "participant"
	}
}

var (
	judgeKeywords   = []string{"judge", "mentor", "alumni", "past employee"}
	sponsorKeywords = []string{"sponsor", "partner", "corporate"}
)

// Classify maps a contact to exactly one ContactType by keyword match on the
// role field. Judge keywords take precedence over sponsor keywords; anything
// else is a participant. Deterministic and total.
func Classify(c Contact) ContactType {
	role := strings.ToLower(c.Role)
	for _, kw := range judgeKeywords {
		if strings.Contains(role, kw) {
			return TypeJudge
		}
	}
	for _, kw := range sponsorKeywords {
		if strings.Contains(role, kw) {
			return TypeSponsor
		}
	}
	return TypeParticipant
}
