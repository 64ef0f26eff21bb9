// Copyright (c) 2026 Vizza. All rights reserved.
// Author: daalagelerua

package auth

// # Account Constraints

const (
	// MinPasswordLength is the shortest password accepted at registration or change.
	MinPasswordLength = 6

	// MinNameLength applies to first and last names after trimming.
	MinNameLength = 2

	// MaxNameLength caps first and last names.
	MaxNameLength = 50

	// DefaultLanguage is assigned when the caller does not pick one.
	DefaultLanguage = LanguageFrench
)

// # Languages

const (
	LanguageFrench  = "fr"
	LanguageEnglish = "en"
)

// Languages lists every supported interface language.
var Languages = []string{LanguageFrench, LanguageEnglish}
