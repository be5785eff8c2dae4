package models

// DriveAsset represents an image file listed from a Google Drive folder
type DriveAsset struct {
	DriveFileID string `json:"driveFileId"`
	FileName    string `json:"fileName"`
	MimeType    string `json:"mimeType"`
}

// SyncResult summarizes an asset sync run
type SyncResult struct {
	Total      int      `json:"total"`
	Downloaded int      `json:"downloaded"`
	Skipped    int      `json:"skipped"`
	Missing    []string `json:"missing"`
	Errors     []string `json:"errors"`
}
