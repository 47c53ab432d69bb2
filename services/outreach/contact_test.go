// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package outreach

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		role string
		want ContactType
	}{
		{name: "plain engineer", role: "Software Engineer", want: TypeParticipant},
		{name: "empty role", role: "", want: TypeParticipant},
		{name: "student", role: "CS Student", want: TypeParticipant},
		{name: "judge keyword", role: "Hackathon Judge", want: TypeJudge},
		{name: "mentor keyword", role: "Senior Mentor", want: TypeJudge},
		{name: "alumni keyword", role: "Alumni Judge", want: TypeJudge},
		{name: "past employee", role: "Past Employee", want: TypeJudge},
		{name: "case insensitive", role: "JUDGE", want: TypeJudge},
		{name: "substring match", role: "Prejudged Panelist", want: TypeJudge},
		{name: "sponsor keyword", role: "Sponsor Relations", want: TypeSponsor},
		{name: "partner keyword", role: "Partnership Manager", want: TypeSponsor},
		{name: "corporate keyword", role: "Corporate Development", want: TypeSponsor},
		// A role matching both keyword sets resolves to judge: the judge
		// list is checked first.
		{name: "judge beats sponsor", role: "Corporate Mentor", want: TypeJudge},
		{name: "alumni sponsor still judge", role: "Alumni Partner", want: TypeJudge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(Contact{Role: tt.role})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyIgnoresOtherFields(t *testing.T) {
	// Only the role field drives classification.
	c := Contact{
		Name:    "Judge Dredd",
		Email:   "sponsor@corporate.com",
		Role:    "Developer",
		Company: "Sponsor Inc",
		Notes:   "was a judge last year",
	}
	assert.Equal(t, TypeParticipant, Classify(c))
}

func TestContactTypeString(t *testing.T) {
	assert.Equal(t, "participant", TypeParticipant.String())
	assert.Equal(t, "judge", TypeJudge.String())
	assert.Equal(t, "sponsor", TypeSponsor.String())
	assert.Equal(t, "participant", ContactType(99).String())
}
