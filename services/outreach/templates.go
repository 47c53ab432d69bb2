// Copyright (C) 2025 HackathonTwin
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package outreach

import "fmt"

// notesOr substitutes a neutral phrase when a contact has no notes.
func notesOr(contact Contact, fallback string) string {
	if contact.Notes != "" {
		return contact.Notes
	}
	return fallback
}

// enhanceShortBody pads a too-short body with a fixed explanatory paragraph
// referencing the contact's company and role.
func enhanceShortBody(body string, contact Contact) string {
	return body + fmt.Sprintf("\n\nBased on your background at %s and your role as %s, "+
		"we believe you would be an excellent fit for our hackathon. "+
		"Your experience and expertise would contribute significantly to the event, "+
		"and we're excited about the potential collaboration opportunities. "+
		"The hackathon will feature workshops, networking sessions, and mentorship "+
		"that align perfectly with your professional interests and career goals.",
		contact.Company, contact.Role)
}

// templateDraft is the last resort of the resolution cascade: a fixed
// multi-paragraph form letter per contact type with the contact's fields
// interpolated into fixed sentence slots.
func templateDraft(contact Contact, ctype ContactType) EmailDraft {
	var body string
	switch ctype {
	case TypeJudge:
		body = judgeTemplateBody(contact)
	case TypeSponsor:
		body = sponsorTemplateBody(contact)
	default:
		body = participantTemplateBody(contact)
	}
	return EmailDraft{
		Subject: fmt.Sprintf("Personalized Invitation for %s - TechInnovate 2024", contact.Name),
		Body:    body,
	}
}

func participantTemplateBody(contact Contact) string {
	return fmt.Sprintf(`Hi %s,

I hope this email finds you well! I'm reaching out from the TechInnovate 2024 hackathon team, and I'm genuinely excited to personally invite you to join us for what promises to be an incredible 48-hour innovation marathon.

Based on your background at %s and your role as %s, I believe you would be an excellent addition to our diverse community of innovators, creators, and problem-solvers. Your expertise and unique perspective would contribute significantly to the collaborative atmosphere we're fostering.

TechInnovate 2024, taking place March 15-17, 2024 at the University of Maryland, College Park, is centered around "AI-Powered Solutions for Tomorrow's Challenges". We've designed the event to provide participants with not just a platform to showcase their skills, but also access to invaluable resources and networking opportunities.

The hackathon will feature specialized tracks in AI/ML, Sustainability, Healthcare Tech, FinTech, and Education Innovation. You'll have the opportunity to work alongside like-minded individuals, learn from industry experts from companies like Google, Microsoft, and Amazon, and participate in hands-on workshops covering AI tools, pitch development, and business modeling.

What makes this event truly special is the comprehensive support system we've put in place. With over 500 participants, 50+ mentors, and 20+ sponsor representatives, you'll have access to an extensive network of professionals and potential collaborators. The $25,000+ prize pool is just the beginning - the real value lies in the connections you'll make and the skills you'll develop.

%s makes you an ideal candidate for this event, and I'm confident you'll find it both challenging and rewarding. Whether you're looking to expand your skill set, network with industry leaders, or simply be part of an exciting innovation community, TechInnovate 2024 offers all of these opportunities and more.

I'd love to discuss this opportunity with you further and answer any questions you might have. Please let me know if you'd like to schedule a quick call, or if you have any specific areas of interest you'd like to explore during the event.

Looking forward to hearing from you and hopefully welcoming you to our hackathon community!

Best regards,
The TechInnovate 2024 Team`,
		contact.Name, contact.Company, contact.Role,
		notesOr(contact, "Your background and experience"))
}

func judgeTemplateBody(contact Contact) string {
	return fmt.Sprintf(`Dear %s,

I hope this message finds you well. I'm writing on behalf of the TechInnovate 2024 hackathon team to extend a personal invitation for you to serve as a judge at our upcoming event.

Your distinguished background at %s and your role as %s make you an ideal candidate for this important position. We're seeking judges who not only bring technical expertise but also understand the broader impact that innovative solutions can have on society and industry.

TechInnovate 2024, scheduled for March 15-17, 2024 at the University of Maryland, College Park, will bring together over 500 participants working on "AI-Powered Solutions for Tomorrow's Challenges". As a judge, you'll have the opportunity to evaluate projects across five specialized tracks: AI/ML, Sustainability, Healthcare Tech, FinTech, and Education Innovation.

Your expertise would be invaluable in helping us identify the most promising innovations and provide constructive feedback to participants. The judging process will involve reviewing project presentations, technical implementations, and business potential, ensuring that we recognize not just technical excellence but also real-world applicability and innovation.

Beyond the judging responsibilities, this role offers significant benefits including recognition as a thought leader in the innovation community, networking opportunities with other industry experts, and the satisfaction of contributing to the development of the next generation of innovators. You'll also have the chance to participate in our post-event demo day, where you can connect with VCs and potential investors.

%s demonstrates the kind of insight and expertise that would make you an exceptional judge. We're particularly interested in judges who can provide mentorship and guidance to participants, helping them understand not just what makes a good hackathon project, but what it takes to turn innovative ideas into viable business solutions.

The time commitment is flexible, and we can work around your schedule. We'd be honored to have you join our panel of distinguished judges and contribute to making TechInnovate 2024 a truly exceptional event.

Please let me know if you'd like to discuss this opportunity further or if you have any questions about the role and responsibilities.

Best regards,
The TechInnovate 2024 Team`,
		contact.Name, contact.Company, contact.Role,
		notesOr(contact, "Your background and experience"))
}

func sponsorTemplateBody(contact Contact) string {
	return fmt.Sprintf(`Dear %s,

I hope this email finds you well. I'm reaching out from the TechInnovate 2024 hackathon team to discuss an exciting partnership opportunity that I believe would be mutually beneficial for both %s and our innovation community.

Your role as %s at %s positions you perfectly to understand the strategic value of engaging with emerging talent and innovative solutions. We're seeking sponsors who share our vision of fostering innovation and creating opportunities for the next generation of problem-solvers.

TechInnovate 2024, taking place March 15-17, 2024 at the University of Maryland, College Park, is more than just a hackathon - it's a comprehensive innovation ecosystem that brings together over 500 participants, 50+ mentors, and industry experts from leading technology companies. The event focuses on "AI-Powered Solutions for Tomorrow's Challenges", covering critical areas like AI/ML, Sustainability, Healthcare Tech, FinTech, and Education Innovation.

Sponsoring this event offers %s multiple strategic advantages. First, it provides direct access to top-tier talent - participants who have demonstrated their ability to solve complex problems and think creatively under pressure. This talent pool represents potential future employees, collaborators, or partners for your organization.

Second, sponsorship offers significant brand visibility and positioning. Your company will be prominently featured throughout the event, including in our marketing materials, event signage, and participant communications. You'll have the opportunity to showcase your company's commitment to innovation and education, enhancing your reputation in the technology community.

Third, the event provides unique networking opportunities with industry leaders, potential partners, and other sponsors. You'll have access to exclusive events and sessions where you can build relationships that could lead to future collaborations or business opportunities.

%s aligns perfectly with our hackathon themes, and we believe there's significant potential for meaningful collaboration. We offer various sponsorship tiers, each providing different levels of engagement and benefits, and we're happy to customize a package that meets your specific goals and budget.

I'd love to schedule a call to discuss this opportunity in detail, understand your objectives, and explore how we can create a partnership that delivers maximum value for %s.

Looking forward to hearing from you and exploring this exciting opportunity together.

Best regards,
The TechInnovate 2024 Team`,
		contact.Name, contact.Company, contact.Role, contact.Company, contact.Company,
		notesOr(contact, "Your company's focus and expertise"), contact.Company)
}
