package models

// Document is an uploaded partner document as listed by the API.
type Document struct {
	ID        int64  `json:"id_dokumen"`
	PartnerID int64  `json:"id_mitra"`
	Kind      string `json:"jenis_dokumen"`
	FilePath  string `json:"file_path"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// UploadDocumentResponse is returned by POST upload-document.
type UploadDocumentResponse struct {
	Message  string   `json:"message"`
	Document Document `json:"dokumen"`
}
