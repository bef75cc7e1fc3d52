package media

import "errors"

var (
	ErrUploadRejected = errors.New("upload rejected")
	ErrUploadFailed   = errors.New("upload failed")
)
