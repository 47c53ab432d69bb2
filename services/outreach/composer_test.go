// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package outreach

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manyagarg23/HackathonTwin/services/llm"
)

var testContact = Contact{
	Name:    "John Doe",
	Email:   "john@example.com",
	Role:    "Software Engineer",
	Company: "TechCorp Inc.",
	Notes:   "Interested in AI/ML",
}

func longBody(words int) string {
	return strings.TrimSpace(strings.Repeat("word ", words))
}

func draftJSON(t *testing.T, subject, body string) string {
	t.Helper()
	b, err := json.Marshal(EmailDraft{Subject: subject, Body: body})
	require.NoError(t, err)
	return string(b)
}

func TestGenerateEmailStrictJSON(t *testing.T) {
	body := longBody(250)
	mock := llm.NewMockClient().QueueResponse(draftJSON(t, "Join TechInnovate", body))

	draft := NewComposer(mock).GenerateEmail(context.Background(), testContact, TypeParticipant)

	assert.Equal(t, "Join TechInnovate", draft.Subject)
	assert.Equal(t, body, draft.Body)
	assert.Equal(t, 1, mock.CallCount())
}

func TestGenerateEmailStripsCodeFences(t *testing.T) {
	body := longBody(220)
	fenced := "```json\n" + draftJSON(t, "Fenced Subject", body) + "\n```"
	mock := llm.NewMockClient().QueueResponse(fenced)

	draft := NewComposer(mock).GenerateEmail(context.Background(), testContact, TypeParticipant)

	assert.Equal(t, "Fenced Subject", draft.Subject)
	assert.Equal(t, body, draft.Body)
}

func TestGenerateEmailShortBodyRegeneratesOnce(t *testing.T) {
	regenerated := longBody(450)
	mock := llm.NewMockClient().
		QueueResponse(draftJSON(t, "Too Short", longBody(50))).
		QueueResponse(draftJSON(t, "Much Longer", regenerated))

	draft := NewComposer(mock).GenerateEmail(context.Background(), testContact, TypeJudge)

	assert.Equal(t, "Much Longer", draft.Subject)
	assert.Equal(t, regenerated, draft.Body)
	require.Equal(t, 2, mock.CallCount())
	assert.Contains(t, mock.Prompts()[1], "MUCH LONGER")
}

func TestGenerateEmailShortRegenerationAcceptedAsIs(t *testing.T) {
	// The second attempt is never re-checked against the word threshold.
	// Exactly one regeneration, then whatever parses is accepted.
	mock := llm.NewMockClient().
		QueueResponse(draftJSON(t, "Short", longBody(10))).
		QueueResponse(draftJSON(t, "Still Short", longBody(20)))

	draft := NewComposer(mock).GenerateEmail(context.Background(), testContact, TypeParticipant)

	assert.Equal(t, "Still Short", draft.Subject)
	assert.Equal(t, 2, mock.CallCount())
}

func TestGenerateEmailRegenerationUnparseableFallsBack(t *testing.T) {
	mock := llm.NewMockClient().
		QueueResponse(draftJSON(t, "Short", longBody(10))).
		QueueResponse("sorry, I cannot produce JSON today")

	draft := NewComposer(mock).GenerateEmail(context.Background(), testContact, TypeSponsor)

	assert.Equal(t, "Personalized Invitation for John Doe - TechInnovate 2024", draft.Subject)
	assert.Contains(t, draft.Body, "TechCorp Inc.")
	assert.Equal(t, 2, mock.CallCount())
}

func TestGenerateEmailMissingFieldsUsesTemplate(t *testing.T) {
	mock := llm.NewMockClient().QueueResponse(`{"subject": "Only a subject"}`)

	draft := NewComposer(mock).GenerateEmail(context.Background(), testContact, TypeParticipant)

	assert.Equal(t, "Personalized Invitation for John Doe - TechInnovate 2024", draft.Subject)
	assert.Contains(t, draft.Body, "Hi John Doe")
	assert.Equal(t, 1, mock.CallCount())
}

func TestGenerateEmailLineScanExtraction(t *testing.T) {
	raw := "Subject: Hand-written invite\nBody: " + longBody(210)
	mock := llm.NewMockClient().QueueResponse(raw)

	draft := NewComposer(mock).GenerateEmail(context.Background(), testContact, TypeParticipant)

	assert.Equal(t, "Hand-written invite", draft.Subject)
	assert.True(t, strings.HasPrefix(draft.Body, "word"))
}

func TestGenerateEmailLineScanPadsShortBody(t *testing.T) {
	mock := llm.NewMockClient().
		QueueResponse("Subject: Quick note\nBody: see you there")

	draft := NewComposer(mock).GenerateEmail(context.Background(), testContact, TypeParticipant)

	assert.Equal(t, "Quick note", draft.Subject)
	assert.Contains(t, draft.Body, "see you there")
	assert.Contains(t, draft.Body, "Based on your background at TechCorp Inc.")
}

func TestGenerateEmailPlainTextBecomesBody(t *testing.T) {
	// No subject/body lines at all: the whole response is the body and the
	// subject falls back to the fixed form.
	mock := llm.NewMockClient().QueueResponse("just a friendly paragraph without any structure")

	draft := NewComposer(mock).GenerateEmail(context.Background(), testContact, TypeParticipant)

	assert.Equal(t, "Personalized Invitation for John Doe", draft.Subject)
	assert.Contains(t, draft.Body, "just a friendly paragraph")
}

func TestGenerateEmailLLMErrorUsesTemplate(t *testing.T) {
	mock := llm.NewMockClient().WithError(errors.New("rate limited"))

	for _, ctype := range []ContactType{TypeParticipant, TypeJudge, TypeSponsor} {
		draft := NewComposer(mock).GenerateEmail(context.Background(), testContact, ctype)
		assert.Equal(t, "Personalized Invitation for John Doe - TechInnovate 2024", draft.Subject)
		assert.NotEmpty(t, draft.Body)
	}
}

func TestTemplateDraftPerType(t *testing.T) {
	tests := []struct {
		name     string
		ctype    ContactType
		fragment string
	}{
		{name: "participant", ctype: TypeParticipant, fragment: "excellent addition to our diverse community"},
		{name: "judge", ctype: TypeJudge, fragment: "serve as a judge"},
		{name: "sponsor", ctype: TypeSponsor, fragment: "partnership opportunity"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			draft := templateDraft(testContact, tt.ctype)
			assert.Contains(t, draft.Body, tt.fragment)
			assert.Contains(t, draft.Body, testContact.Company)
			assert.Contains(t, draft.Body, testContact.Notes)
		})
	}
}

func TestTemplateDraftEmptyNotes(t *testing.T) {
	c := testContact
	c.Notes = ""
	draft := templateDraft(c, TypeParticipant)
	assert.Contains(t, draft.Body, "Your background and experience")
}

func TestBuildEmailPromptIncludesContext(t *testing.T) {
	prompt := buildEmailPrompt(testContact, TypeSponsor)
	assert.Contains(t, prompt, "TechInnovate 2024")
	assert.Contains(t, prompt, testContact.Notes)
	assert.Contains(t, prompt, "professional and strategic")
	assert.Contains(t, prompt, "sponsorship tiers")
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, wordCount(""))
	assert.Equal(t, 0, wordCount("   \n\t"))
	assert.Equal(t, 3, wordCount("one  two\nthree"))
}

func TestPreviewKeepsRunesWhole(t *testing.T) {
	assert.Equal(t, "héllo", preview("héllo", 10))
	// Truncation counts runes, never splitting a multibyte sequence.
	long := strings.Repeat("é", 300)
	got := preview(long, 200)
	assert.Equal(t, strings.Repeat("é", 200)+"...", got)
	assert.True(t, utf8.ValidString(got))
}

func TestStripCodeFences(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFences("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences("```\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFences(`{"a":1}`))
}
