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
	"fmt"
	"log/slog"
	"strings"

	"github.com/manyagarg23/HackathonTwin/services/llm"
)

// EmailDraft is the resolved subject/body pair for one contact.
type EmailDraft struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// minBodyWords is the threshold below which a generated body is considered
// too short. Counted by whitespace splitting, strictly less than.
const minBodyWords = 200

// typeContext carries the per-type guidance embedded into the prompt.
// The mapping below is exhaustive over ContactType; the zero value is never
// used because Classify is total.
type typeContext struct {
	Tone         string
	Focus        string
	CallToAction string
	Benefits     string
}

var typeContexts = map[ContactType]typeContext{
	TypeParticipant: {
		Tone:         "enthusiastic and welcoming",
		Focus:        "highlighting the exciting opportunities, learning potential, and networking benefits",
		CallToAction: "encourage them to register and share their interests",
		Benefits:     "access to mentors, workshops, prizes, and career opportunities",
	},
	TypeJudge: {
		Tone:         "respectful and appreciative",
		Focus:        "emphasizing their expertise, the impact they can have, and recognition",
		CallToAction: "invite them to share their judging preferences and availability",
		Benefits:     "recognition, networking with industry leaders, and contributing to student success",
	},
	TypeSponsor: {
		Tone:         "professional and strategic",
		Focus:        "highlighting ROI, brand visibility, and talent acquisition opportunities",
		CallToAction: "propose a call to discuss partnership details and sponsorship tiers",
		Benefits:     "brand exposure, access to top talent, and community impact",
	},
}

// contextFor returns the guidance for a type, defaulting to participant for
// anything unexpected. Classify never produces an unknown type, so the
// default branch is a safety net rather than reachable behavior.
func contextFor(t ContactType) typeContext {
	if c, ok := typeContexts[t]; ok {
		return c
	}
	return typeContexts[TypeParticipant]
}

// Composer turns a classified contact into an EmailDraft using the LLM,
// falling back to static template text when the model misbehaves.
type Composer struct {
	client llm.Client
}

func NewComposer(client llm.Client) *Composer {
	return &Composer{client: client}
}

// GenerateEmail always returns a well-formed draft; the worst case is the
// static template for the contact's type. It never returns an error.
func (c *Composer) GenerateEmail(ctx context.Context, contact Contact, ctype ContactType) EmailDraft {
	raw, err := c.client.Generate(ctx, buildEmailPrompt(contact, ctype), llm.GenerationParams{})
	if err != nil {
		slog.Error("Email generation failed, using template fallback",
			"contact", contact.Name, "error", err)
		return templateDraft(contact, ctype)
	}

	slog.Debug("AI response received",
		"contact", contact.Name,
		"length", len(raw),
		"preview", preview(raw, 200),
		"has_subject_key", strings.Contains(strings.ToLower(raw), "subject"),
		"has_body_key", strings.Contains(strings.ToLower(raw), "body"),
	)

	// Resolution cascade: strict parse, then line-scan extraction, then the
	// static template. First success wins.
	if draft, ok := c.resolveStrict(ctx, raw, contact, ctype); ok {
		return draft
	}
	if draft, ok := resolveLineScan(raw, contact); ok {
		return draft
	}
	return templateDraft(contact, ctype)
}

// resolveStrict attempts a direct JSON parse of the cleaned response.
// A body under minBodyWords triggers exactly one regeneration attempt; a
// parse failure reports not-ok so the caller can try line-scan extraction.
func (c *Composer) resolveStrict(ctx context.Context, raw string, contact Contact, ctype ContactType) (EmailDraft, bool) {
	cleaned := stripCodeFences(raw)

	var draft EmailDraft
	if err := json.Unmarshal([]byte(cleaned), &draft); err != nil {
		slog.Debug("Strict JSON parse failed", "contact", contact.Name, "error", err)
		return EmailDraft{}, false
	}
	if draft.Subject == "" || draft.Body == "" {
		// Parsed but incomplete. The original treated this as a hard failure,
		// so it goes straight to the template rather than line-scan.
		slog.Warn("AI response missing subject or body", "contact", contact.Name)
		return templateDraft(contact, ctype), true
	}

	words := wordCount(draft.Body)
	slog.Debug("Parsed email draft", "contact", contact.Name, "subject", draft.Subject, "body_words", words)
	if words < minBodyWords {
		slog.Info("Email too short, regenerating once",
			"contact", contact.Name, "body_words", words)
		return c.regenerateLonger(ctx, contact, ctype), true
	}
	return draft, true
}

// regenerateLonger makes the single follow-up call requesting a longer body.
// Its output is accepted as-is on a successful parse; anything else falls
// back to the template.
func (c *Composer) regenerateLonger(ctx context.Context, contact Contact, ctype ContactType) EmailDraft {
	prompt := fmt.Sprintf(`The previous email was too short. Please generate a MUCH LONGER email for %s at %s.

REQUIREMENTS:
- Email body MUST be 400-600 words (substantially longer)
- Include 5-7 detailed paragraphs
- Deep dive into their notes: %s
- Reference their role: %s
- Connect to hackathon opportunities
- Make it highly personal and specific to them

Return as JSON: {"subject": "...", "body": "..."}`,
		contact.Name, contact.Company, contact.Notes, contact.Role)

	raw, err := c.client.Generate(ctx, prompt, llm.GenerationParams{})
	if err != nil {
		slog.Error("Regeneration failed, using template fallback", "contact", contact.Name, "error", err)
		return templateDraft(contact, ctype)
	}

	var draft EmailDraft
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &draft); err != nil {
		slog.Warn("Regenerated response unparseable, using template fallback",
			"contact", contact.Name, "error", err)
		return templateDraft(contact, ctype)
	}
	fallback := templateDraft(contact, ctype)
	if draft.Subject == "" {
		draft.Subject = fmt.Sprintf("Personalized Invitation for %s", contact.Name)
	}
	if draft.Body == "" {
		draft.Body = fallback.Body
	}
	return draft
}

// resolveLineScan recovers subject/body from non-JSON responses by scanning
// for "subject:" / "body:" prefixed lines. When no body line exists, the
// whole response becomes the body; short bodies are padded with a fixed
// enhancement paragraph.
func resolveLineScan(raw string, contact Contact) (EmailDraft, bool) {
	subject := fmt.Sprintf("Personalized Invitation for %s", contact.Name)
	body := ""

	for _, line := range strings.Split(strings.TrimSpace(raw), "\n") {
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "subject:") || strings.HasPrefix(lower, `"subject"`):
			subject = valueAfterColon(line)
		case strings.HasPrefix(lower, "body:") || strings.HasPrefix(lower, `"body"`):
			body = valueAfterColon(line)
		}
	}

	if body == "" {
		body = strings.TrimSpace(raw)
	}
	if wordCount(body) < minBodyWords {
		body = enhanceShortBody(body, contact)
	}
	return EmailDraft{Subject: subject, Body: body}, true
}

func valueAfterColon(line string) string {
	_, after, found := strings.Cut(line, ":")
	if !found {
		return ""
	}
	return strings.Trim(strings.TrimSpace(after), `",`)
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func wordCount(s string) int {
	return len(strings.Fields(s))
}

// preview truncates on rune boundaries so multibyte text never logs as
// mangled UTF-8.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

// buildEmailPrompt embeds the fixed event facts, the contact's fields and the
// per-type guidance into the copywriting prompt.
func buildEmailPrompt(contact Contact, ctype ContactType) string {
	tc := contextFor(ctype)
	return fmt.Sprintf(`You are an expert email copywriter specializing in hackathon outreach campaigns.
Your goal is to create highly personalized, compelling emails that feel like they were written specifically for each recipient.

HACKATHON DETAILS (Use these specific details throughout the email):
- Event: "TechInnovate 2024" - A 48-hour innovation marathon
- Date: March 15-17, 2024
- Location: University of Maryland, College Park
- Theme: "AI-Powered Solutions for Tomorrow's Challenges"
- Prize Pool: $25,000+ in cash prizes and tech gadgets
- Special Tracks: AI/ML, Sustainability, Healthcare Tech, FinTech, Education Innovation
- Mentors: Industry experts from Google, Microsoft, Amazon, and local startups
- Workshops: Hands-on sessions on AI tools, pitch development, and business modeling
- Networking: 500+ participants, 50+ mentors, 20+ sponsor representatives
- Post-Event: Demo day with VCs and potential investors

CONTACT DETAILS:
- Name: %s
- Role: %s
- Company: %s
- Contact Type: %s
- Notes: %s (CRITICAL: This is the most important field for personalization)

CONTEXT & TONE:
- Tone: %s
- Focus: %s
- Call to Action: %s
- Key Benefits: %s

CRITICAL PERSONALIZATION REQUIREMENTS:
1. NOTES FIELD INTEGRATION (MOST IMPORTANT): extract every detail from their notes, reference their specific interests, skills, or background, and connect their notes to specific hackathon opportunities.
2. Company-Specific Deep Dive: connect their company's mission to hackathon themes.
3. Role-Based Specificity: explain HOW their role connects to hackathon opportunities.
4. Industry Context & Trends: reference current industry challenges or opportunities.

EMAIL STRUCTURE:
- Subject Line: 50-60 characters, specific to their notes/company/role, compelling
- Greeting using their name, referencing their company
- Opening hook, personalized value proposition, detailed personalization, specific call to action, warm closing

LENGTH REQUIREMENT: The email body should be 300-500 words, providing substantial detail and personalization.

CRITICAL OUTPUT FORMAT REQUIREMENT:
You MUST return ONLY a valid JSON object with exactly this structure:
{
    "subject": "Your personalized subject line here (50-60 characters)",
    "body": "Your detailed email body here with multiple paragraphs (300-500 words)"
}

DO NOT include any other text, explanations, or markdown formatting.
DO NOT use markdown code blocks.
Return ONLY the raw JSON object.

The email should feel like it was written specifically for %s at %s after extensive research, with their notes being the central focus of personalization.`,
		contact.Name, contact.Role, contact.Company, ctype, contact.Notes,
		tc.Tone, tc.Focus, tc.CallToAction, tc.Benefits,
		contact.Name, contact.Company)
}
