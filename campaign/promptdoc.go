package campaign

import (
	"regexp"
	"strings"
)

// Divider separates the recipient header from the campaign body inside
// the prompt document. The literal token is part of the operator-facing
// contract: documents written by older clients must keep parsing.
const Divider = "\n\n--- CAMPAIGN PROMPT ---\n"

// StarterCampaignPrompt seeds the campaign body the first time a
// recipient is merged into a document that has no divider yet.
const StarterCampaignPrompt = "Write a short, friendly outreach email offering a free 10 minute Facebook page review and 3 quick improvements. Keep it under 120 words. Close with a simple question asking if they want me to send the 3 improvements."

var (
	recipientEmailRe = regexp.MustCompile(`(?i)recipient email:[ \t]*([^\n]*)`)
	prospectNameRe   = regexp.MustCompile(`(?i)prospect name:[ \t]*([^\n]*)`)
)

// CampaignBody returns the text after the first divider, or "" when
// the document has no divider yet.
func CampaignBody(doc string) string {
	if _, after, found := strings.Cut(doc, Divider); found {
		return after
	}
	return ""
}

// RecipientHeader pulls the recipient email and prospect name lines
// back out of the document. Missing lines yield empty strings.
func RecipientHeader(doc string) (email, name string) {
	if m := recipientEmailRe.FindStringSubmatch(doc); m != nil {
		email = strings.TrimSpace(m[1])
	}
	if m := prospectNameRe.FindStringSubmatch(doc); m != nil {
		name = strings.TrimSpace(m[1])
	}
	return email, name
}

// ensureDivider bootstraps a divider-less document with an empty
// header and the starter campaign body. Applied at most once per
// document; a document that already has the divider passes through.
func ensureDivider(doc string) string {
	if strings.Contains(doc, Divider) {
		return doc
	}
	return "Recipient Email: \nProspect Name: " + Divider + StarterCampaignPrompt
}

// MergeRecipient rebuilds the document header for the given recipient
// while keeping the campaign body byte-for-byte intact. This is the
// "clicking a prospect swaps recipient lines only" contract.
func MergeRecipient(doc, email, name string) string {
	doc = ensureDivider(doc)
	body := CampaignBody(doc)
	return "Recipient Email: " + email + "\nProspect Name: " + name + Divider + body
}

// MergeCampaignBody replaces the text after the divider with newBody,
// keeping whatever recipient header is currently present.
func MergeCampaignBody(doc, newBody string) string {
	doc = ensureDivider(doc)
	email, name := RecipientHeader(doc)
	return "Recipient Email: " + email + "\nProspect Name: " + name + Divider + newBody
}
