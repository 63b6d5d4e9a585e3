package services

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = append([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), make([]byte, 32)...)

func dicomBytes() []byte {
	b := make([]byte, 128, 200)
	b = append(b, []byte("DICM")...)
	return append(b, make([]byte, 64)...)
}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

func TestEncodeFile_PNGDataURL(t *testing.T) {
	p := writeFile(t, "chest.png", pngBytes)

	got, err := EncodeFile(p, 1024)
	require.NoError(t, err)

	prefix, payload, ok := strings.Cut(got, ",")
	require.True(t, ok)
	assert.Equal(t, "data:image/png;base64", prefix)
	decoded, err := base64.StdEncoding.DecodeString(payload)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, decoded)
}

func TestValidateFile(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		maxSize  int64
		wantMIME string
		wantErr  error
	}{
		{"png", pngBytes, 1024, "image/png", nil},
		{"jpeg", []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00\x01\x01\x00\x00\x01\x00\x01\x00\x00"), 1024, "image/jpeg", nil},
		{"dicom", dicomBytes(), 1024, "application/dicom", nil},
		{"text", []byte("just some notes"), 1024, "", ErrUnsupportedFile},
		{"empty", []byte{}, 1024, "", ErrUnsupportedFile},
		{"too large", pngBytes, 10, "", ErrUnsupportedFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, "scan.bin", tt.data)
			info, err := ValidateFile(p, tt.maxSize)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantMIME, info.MIME)
			assert.Equal(t, int64(len(tt.data)), info.Size)
		})
	}
}

func TestValidateFile_ReadErrors(t *testing.T) {
	_, err := ValidateFile(filepath.Join(t.TempDir(), "missing.png"), 1024)
	require.ErrorIs(t, err, ErrEncodeFailed)
	assert.Equal(t, MsgUploadFailed, UserMessage(err))

	_, err = ValidateFile(t.TempDir(), 1024)
	require.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestValidateFile_DefaultLimit(t *testing.T) {
	p := writeFile(t, "chest.png", pngBytes)
	_, err := ValidateFile(p, 0)
	require.NoError(t, err)
}
