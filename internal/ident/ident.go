// Package ident holds the single field-name sanitizer shared by every
// rendering path. The target engine drops underscores from question
// codes, so user_first_name and userfirstname refer to the same field;
// all converter layers must agree on that mapping.
package ident

import "strings"

// Sanitize maps a dialect field name to the target engine's question code.
func Sanitize(name string) string {
	return strings.ReplaceAll(name, "_", "")
}
