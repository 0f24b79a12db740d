package pdf

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// nonAlphanumeric collapses runs of anything outside [A-Za-z0-9] into one
// underscore when slugging source names.
var nonAlphanumeric = regexp.MustCompile(`[^A-Za-z0-9]+`)

// slug derives a deterministic filesystem-safe stem from a source file
// name. Empty or fully-symbolic names fall back to "output".
func slug(sourceName string) string {
	stem := strings.TrimSpace(strings.TrimSuffix(filepath.Base(sourceName), filepath.Ext(sourceName)))
	s := strings.ToLower(strings.Trim(nonAlphanumeric.ReplaceAllString(stem, "_"), "_"))
	if s == "" {
		return "output"
	}
	return s
}

// OutputFilename returns the deterministic name of the aggregated duplex
// booklet for a given source file name.
func OutputFilename(sourceName string) string {
	return slug(sourceName) + "_imposed_duplex.pdf"
}

// SignatureFilename returns the deterministic name of the per-signature
// booklet file for the 0-based signature index.
func SignatureFilename(sourceName string, sigIndex int) string {
	return fmt.Sprintf("%s_signature%d_duplex.pdf", slug(sourceName), sigIndex)
}

// PreviewFilename returns the deterministic name of the first-sheet preview
// for a given source file name.
func PreviewFilename(sourceName string) string {
	return slug(sourceName) + "_preview_sheet1.pdf"
}
