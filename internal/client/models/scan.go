package models

import (
	"errors"
	"fmt"
	"strings"
)

// ScanType selects the backend analysis pipeline for an upload.
type ScanType string

const (
	ScanTypeCT         ScanType = "ct"
	ScanTypeXRay       ScanType = "xray"
	ScanTypeMRI        ScanType = "mri"
	ScanTypeUltrasound ScanType = "ultrasound"
)

var ErrUnknownScanType = errors.New("unknown scan type")

// ScanTypeInfo is the catalogue entry shown on the scan pages.
type ScanTypeInfo struct {
	Type        ScanType
	Name        string
	Summary     string
	Description string
}

var scanCatalogue = []ScanTypeInfo{
	{
		Type:        ScanTypeCT,
		Name:        "CT Scan",
		Summary:     "Computed Tomography for detailed cross-sectional imaging",
		Description: "Computed Tomography provides detailed cross-sectional images of the body using X-rays from multiple angles.",
	},
	{
		Type:        ScanTypeXRay,
		Name:        "X-Ray",
		Summary:     "Traditional radiography for bone and tissue imaging",
		Description: "Traditional radiography uses electromagnetic radiation to create images of bones and tissues.",
	},
	{
		Type:        ScanTypeMRI,
		Name:        "MRI",
		Summary:     "Magnetic Resonance Imaging for soft tissue analysis",
		Description: "Magnetic Resonance Imaging uses strong magnetic fields and radio waves to create detailed images of soft tissues.",
	},
	{
		Type:        ScanTypeUltrasound,
		Name:        "Ultrasound",
		Summary:     "Non-invasive imaging using sound waves",
		Description: "Non-invasive imaging technique using high-frequency sound waves to create real-time images.",
	},
}

// ScanTypes returns the catalogue in display order. The slice is a copy.
func ScanTypes() []ScanTypeInfo {
	out := make([]ScanTypeInfo, len(scanCatalogue))
	copy(out, scanCatalogue)
	return out
}

// ParseScanType accepts any casing and surrounding spaces.
func ParseScanType(s string) (ScanType, error) {
	st := ScanType(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownScanType, s)
	}
	return st, nil
}

func (s ScanType) Valid() bool {
	for _, info := range scanCatalogue {
		if info.Type == s {
			return true
		}
	}
	return false
}

// Info returns the catalogue entry for s; ok is false for unknown types.
func (s ScanType) Info() (info ScanTypeInfo, ok bool) {
	for _, i := range scanCatalogue {
		if i.Type == s {
			return i, true
		}
	}
	return ScanTypeInfo{}, false
}

// ScanReport is the backend's answer to a scan upload. It is never persisted
// on the client.
type ScanReport struct {
	ID        string    `json:"id,omitempty"`
	UserID    string    `json:"user_id,omitempty"`
	ScanType  ScanType  `json:"scan_type"`
	CreatedAt Timestamp `json:"created_at"`
	// ImageData echoes the uploaded payload (a base64 data URL).
	ImageData string `json:"image_data"`
	AIReport  string `json:"ai_report"`
}
