// Package performance keeps staff performance points, monthly reports and the
// salary consequences of both.
//
// Scores start at BaseScore. Early completions add EarlyCompletionPoints and
// rejections of a staff member's work add RejectionPoints. The running score is
// not clamped; Clamp is a display helper.
package performance
