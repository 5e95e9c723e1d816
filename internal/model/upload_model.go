package model

import "strings"

// Upload is the file currently selected for submission.
type Upload struct {
	Filename string
	Content  []byte
}

func (u Upload) IsZip() bool {
	return IsZipName(u.Filename)
}

func IsZipName(name string) bool {
	return strings.HasSuffix(name, ".zip")
}

type UploadReceipt struct {
	CVID    string `json:"cv_id"`
	Status  Status `json:"status"`
	Message string `json:"message"`
}

type ZipEntry struct {
	CVID             string `json:"cv_id"`
	OriginalFilename string `json:"original_filename"`
	Status           Status `json:"status"`
}

type ZipReceipt struct {
	Message  string     `json:"message"`
	Uploaded []ZipEntry `json:"uploaded"`
}
