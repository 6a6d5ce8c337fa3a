// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package atscheck

import (
	"regexp"

	"github.com/mu7ammad-3li/cv-lize/pkg/types"
)

var (
	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	phonePattern = regexp.MustCompile(
		`(\+?\d{1,3}[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

	linkedinPattern = regexp.MustCompile(`linkedin\.com/in/[\w-]+`)
)

// DetectContact extracts contact details from anywhere in the text.
func DetectContact(text string) types.ContactInfo {
	var c types.ContactInfo
	if m := emailPattern.FindString(text); m != "" {
		c.Email = m
	}
	if m := phonePattern.FindString(text); m != "" {
		c.Phone = m
	}
	if m := linkedinPattern.FindString(text); m != "" {
		c.LinkedIn = m
	}
	return c
}

// hasContact reports whether text contains an email or phone match.
func hasContact(text string) bool {
	return emailPattern.MatchString(text) || phonePattern.MatchString(text)
}
