// Package ui prints colored console lines: the logo, labelled info, and one
// progress line per download. Quiet mode suppresses everything but errors.
package ui
