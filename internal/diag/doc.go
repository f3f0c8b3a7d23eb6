// Package diag carries diagnostics produced by the converter phases:
// lexing, parsing, transpilation and EM script validation. Phases report
// through the Reporter interface and never write to the console directly,
// so the conversion core stays side-effect free.
package diag
