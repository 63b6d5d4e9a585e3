package services

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxUploadSize is used when a workflow is built without a limit.
const DefaultMaxUploadSize int64 = 10 << 20

const dicomMIME = "application/dicom"

// FileInfo describes a file that passed validation.
type FileInfo struct {
	Path string
	Size int64
	MIME string
}

// ValidateFile checks that path is a non-empty regular file no larger than
// maxSize whose content sniffs as an image or DICOM. Rejections wrap
// ErrUnsupportedFile; read failures wrap ErrEncodeFailed.
func ValidateFile(path string, maxSize int64) (FileInfo, error) {
	_, info, err := readValidated(path, maxSize)
	return info, err
}

// EncodeFile validates path and returns its content as a data URL
// ("data:<mime>;base64,<payload>").
func EncodeFile(path string, maxSize int64) (string, error) {
	data, info, err := readValidated(path, maxSize)
	if err != nil {
		return "", err
	}
	return "data:" + info.MIME + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func readValidated(path string, maxSize int64) ([]byte, FileInfo, error) {
	if maxSize <= 0 {
		maxSize = DefaultMaxUploadSize
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	if !st.Mode().IsRegular() {
		return nil, FileInfo{}, fmt.Errorf("%w: %s is not a regular file", ErrUnsupportedFile, path)
	}
	if st.Size() == 0 {
		return nil, FileInfo{}, fmt.Errorf("%w: %s is empty", ErrUnsupportedFile, path)
	}
	if st.Size() > maxSize {
		return nil, FileInfo{}, fmt.Errorf("%w: %s is %d bytes, limit is %d", ErrUnsupportedFile, path, st.Size(), maxSize)
	}

	// the file may grow between Stat and the read
	data, err := io.ReadAll(io.LimitReader(f, maxSize+1))
	if err != nil {
		return nil, FileInfo{}, fmt.Errorf("%w: %w", ErrEncodeFailed, err)
	}
	if int64(len(data)) > maxSize {
		return nil, FileInfo{}, fmt.Errorf("%w: %s exceeds %d bytes", ErrUnsupportedFile, path, maxSize)
	}

	mime, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	if !allowedMIME(mime) {
		return nil, FileInfo{}, fmt.Errorf("%w: %s has content type %s", ErrUnsupportedFile, path, mime)
	}
	return data, FileInfo{Path: path, Size: int64(len(data)), MIME: mime}, nil
}

func allowedMIME(mime string) bool {
	return strings.HasPrefix(mime, "image/") || mime == dicomMIME
}
