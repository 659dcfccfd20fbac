package types

// UploadKind identifies which ingestion pipeline an uploaded file goes
// through.
type UploadKind string

const (
	UploadKindDictionary  UploadKind = "dictionary"
	UploadKindSuccessRate UploadKind = "success_rate"
)

// UploadStatus is the terminal state recorded in the upload audit log.
type UploadStatus string

const (
	UploadStatusOK       UploadStatus = "ok"
	UploadStatusRejected UploadStatus = "rejected"
	UploadStatusFailed   UploadStatus = "failed"
)
