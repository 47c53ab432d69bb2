// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package outreach

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"strings"
)

// CampaignSummary accumulates counts over one campaign run. The invariant
// EmailsSent + EmailsFailed == TotalContacts holds after every run.
type CampaignSummary struct {
	TotalContacts int `json:"total_contacts"`
	Participants  int `json:"participants"`
	Judges        int `json:"judges"`
	Sponsors      int `json:"sponsors"`
	EmailsSent    int `json:"emails_sent"`
	EmailsFailed  int `json:"emails_failed"`
}

// ContactResult pairs a contact with its classification and delivery outcome.
type ContactResult struct {
	Contact     Contact    `json:"contact"`
	ContactType string     `json:"contact_type"`
	Result      SendResult `json:"result"`
}

// Runner executes outreach campaigns: parse, classify, compose, deliver.
type Runner struct {
	composer *Composer
	sender   Sender
	onResult func(SendResult) // optional hook, used for metrics
}

func NewRunner(composer *Composer, sender Sender) *Runner {
	return &Runner{composer: composer, sender: sender}
}

// OnResult registers a callback invoked after every delivery attempt.
func (r *Runner) OnResult(fn func(SendResult)) {
	r.onResult = fn
}

// ParseContacts parses CSV text into contacts. Columns are mapped by header
// name; missing columns become empty strings. A structurally malformed CSV
// returns an error with no partial contact list.
func ParseContacts(csvContent string) ([]Contact, error) {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(csvContent)))
	// Short rows map to empty fields rather than errors; only structural
	// problems (bad quoting) abort the parse.
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error processing CSV: %w", err)
	}
	if len(records) < 1 {
		return nil, nil
	}

	col := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	contacts := make([]Contact, 0, len(records)-1)
	for _, row := range records[1:] {
		contacts = append(contacts, Contact{
			Name:    field(row, "name"),
			Email:   field(row, "email"),
			Role:    field(row, "role"),
			Company: field(row, "company"),
			Phone:   field(row, "phone"),
			Notes:   field(row, "notes"),
		})
	}
	return contacts, nil
}

// RunCampaign processes the whole CSV: every contact is classified, gets a
// composed email and one delivery attempt, in file order. Per-contact
// failures are isolated; only an unparseable CSV aborts the run.
func (r *Runner) RunCampaign(ctx context.Context, csvContent string, smtp SMTPConfig) (CampaignSummary, []ContactResult, error) {
	contacts, err := ParseContacts(csvContent)
	if err != nil {
		return CampaignSummary{}, nil, err
	}
	if len(contacts) == 0 {
		return CampaignSummary{}, nil, fmt.Errorf("no contacts found in CSV")
	}

	summary := CampaignSummary{TotalContacts: len(contacts)}
	results := make([]ContactResult, 0, len(contacts))

	for _, contact := range contacts {
		ctype := Classify(contact)
		switch ctype {
		case TypeJudge:
			summary.Judges++
		case TypeSponsor:
			summary.Sponsors++
		default:
			summary.Participants++
		}

		draft := r.composer.GenerateEmail(ctx, contact, ctype)
		result := r.sender.Send(ctx, smtp, contact, ctype, draft)
		if result.Success {
			summary.EmailsSent++
		} else {
			summary.EmailsFailed++
		}
		if r.onResult != nil {
			r.onResult(result)
		}

		results = append(results, ContactResult{
			Contact:     contact,
			ContactType: ctype.String(),
			Result:      result,
		})
	}

	slog.Info("Campaign finished",
		"total", summary.TotalContacts,
		"sent", summary.EmailsSent,
		"failed", summary.EmailsFailed,
	)
	return summary, results, nil
}

// SampleCSV is the fixed example returned by the sample-csv endpoint.
const SampleCSV = `name,email,role,company,phone,notes
John Doe,john@example.com,Software Engineer,TechCorp Inc.,555-0123,Interested in AI/ML
Jane Smith,jane@alumni.edu,Alumni Judge,University,555-0124,Previous hackathon winner
Bob Johnson,bob@sponsor.com,Partnership Manager,SponsorCorp,555-0125,Looking for sponsorship opportunities`
