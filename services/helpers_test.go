package services

import "bytes"

// bytesReader wraps generated file bytes for excelize.OpenReader.
func bytesReader(b []byte) *bytes.Reader {
	return bytes.NewReader(b)
}
