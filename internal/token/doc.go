// Package token defines the token kinds of the XLSForm expression dialect:
// the XPath-derived syntax used in relevance, constraint and calculation
// columns of a survey definition. Path-algebra punctuation is lexed as
// ordinary tokens so the parser can reject it with a precise span instead
// of a generic scan error.
package token
