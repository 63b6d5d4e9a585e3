package scans

import "fmt"

// PlaceholderReport is the text returned in place of a real analysis.
func PlaceholderReport(scanType string) string {
	return fmt.Sprintf("AI Analysis for %s scan: This is a placeholder AI-generated report. "+
		"The image shows normal anatomical structures with no apparent abnormalities detected. "+
		"Further clinical correlation is recommended.", scanType)
}
