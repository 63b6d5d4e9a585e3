package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScanType(t *testing.T) {
	tests := []struct {
		in      string
		want    ScanType
		wantErr bool
	}{
		{"ct", ScanTypeCT, false},
		{"XRAY", ScanTypeXRay, false},
		{"  mri ", ScanTypeMRI, false},
		{"Ultrasound", ScanTypeUltrasound, false},
		{"pet", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseScanType(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnknownScanType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScanTypes_CatalogueOrderAndCopy(t *testing.T) {
	types := ScanTypes()
	require.Len(t, types, 4)
	assert.Equal(t, []ScanType{ScanTypeCT, ScanTypeXRay, ScanTypeMRI, ScanTypeUltrasound},
		[]ScanType{types[0].Type, types[1].Type, types[2].Type, types[3].Type})

	types[0].Name = "mutated"
	assert.Equal(t, "CT Scan", ScanTypes()[0].Name)
}

func TestScanType_Info(t *testing.T) {
	info, ok := ScanTypeMRI.Info()
	require.True(t, ok)
	assert.Equal(t, "MRI", info.Name)

	_, ok = ScanType("pet").Info()
	assert.False(t, ok)
}

func TestScanReport_DecodesBackendPayload(t *testing.T) {
	payload := `{
		"id": "7f0c",
		"user_id": "u-1",
		"scan_type": "xray",
		"image_data": "data:image/png;base64,iVBORw0KGgo=",
		"ai_report": "AI Analysis for xray scan",
		"created_at": "2025-07-15T10:20:30.123456"
	}`

	var r ScanReport
	require.NoError(t, json.Unmarshal([]byte(payload), &r))
	assert.Equal(t, ScanTypeXRay, r.ScanType)
	assert.Equal(t, "u-1", r.UserID)
	assert.Equal(t, time.Date(2025, 7, 15, 10, 20, 30, 123456000, time.UTC), r.CreatedAt.Time)
}

func TestTimestamp_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339", `"2025-07-15T10:20:30Z"`, time.Date(2025, 7, 15, 10, 20, 30, 0, time.UTC), false},
		{"offset", `"2025-07-15T12:20:30+02:00"`, time.Date(2025, 7, 15, 10, 20, 30, 0, time.UTC), false},
		{"naive", `"2025-07-15T10:20:30"`, time.Date(2025, 7, 15, 10, 20, 30, 0, time.UTC), false},
		{"null", `null`, time.Time{}, false},
		{"empty", `""`, time.Time{}, false},
		{"garbage", `"yesterday"`, time.Time{}, true},
		{"number", `12`, time.Time{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ts Timestamp
			err := json.Unmarshal([]byte(tt.in), &ts)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(ts.Time), "got %v", ts.Time)
		})
	}
}

func TestTimestamp_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(Timestamp{time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-02T03:04:05Z"`, string(b))

	b, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(b))
}
