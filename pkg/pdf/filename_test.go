package pdf

import "testing"

func TestOutputFilenameSlugEdgeCases(t *testing.T) {
	tests := []struct {
		sourceName string
		want       string
	}{
		{"Quarterly Report (Final).pdf", "quarterly_report_final_imposed_duplex.pdf"},
		{"!!!.pdf", "output_imposed_duplex.pdf"},
		{"", "output_imposed_duplex.pdf"},
		{"docs/My Input v2.PDF", "my_input_v2_imposed_duplex.pdf"},
	}

	for _, tt := range tests {
		if got := OutputFilename(tt.sourceName); got != tt.want {
			t.Errorf("OutputFilename(%q) = %q, want %q", tt.sourceName, got, tt.want)
		}
	}
}

func TestPreviewFilenameSlugEdgeCases(t *testing.T) {
	tests := []struct {
		sourceName string
		want       string
	}{
		{"Quarterly Report (Final).pdf", "quarterly_report_final_preview_sheet1.pdf"},
		{"!!!.pdf", "output_preview_sheet1.pdf"},
		{"", "output_preview_sheet1.pdf"},
		{"docs/My Input v2.PDF", "my_input_v2_preview_sheet1.pdf"},
	}

	for _, tt := range tests {
		if got := PreviewFilename(tt.sourceName); got != tt.want {
			t.Errorf("PreviewFilename(%q) = %q, want %q", tt.sourceName, got, tt.want)
		}
	}
}

func TestSignatureFilename(t *testing.T) {
	if got := SignatureFilename("My Book.pdf", 0); got != "my_book_signature0_duplex.pdf" {
		t.Errorf("SignatureFilename = %q, want my_book_signature0_duplex.pdf", got)
	}
	if got := SignatureFilename("My Book.pdf", 3); got != "my_book_signature3_duplex.pdf" {
		t.Errorf("SignatureFilename = %q, want my_book_signature3_duplex.pdf", got)
	}
}
