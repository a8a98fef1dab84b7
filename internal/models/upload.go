package models

// UploadResult is returned by the binary upload endpoint.
type UploadResult struct {
	URL      string `json:"url"`
	FileName string `json:"file_name,omitempty"`
	Size     int64  `json:"size,omitempty"`
}
