package dto

// PresignUploadRequest payload.
type PresignUploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
	IsPublic    *bool  `json:"isPublic"`
}

// PresignUploadResponse carries the signed PUT URL and the derived key.
type PresignUploadResponse struct {
	UploadURL  string `json:"uploadUrl"`
	StorageKey string `json:"cloud_storage_path"`
}

// DownloadURLResponse carries a resolved download URL.
type DownloadURLResponse struct {
	URL string `json:"url"`
}
