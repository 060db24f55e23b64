package s3

// Document is an object to be stored in the media bucket
type Document struct {
	Key         string       `json:"key"`
	Data        []byte       `json:"data"`
	ContentType string       `json:"content_type"`
	Type        DocumentType `json:"type"`
}

// DocumentType decides the folder an object is stored under
type DocumentType string

const (
	DocumentTypeOrphanPhoto      DocumentType = "orphan_photo"
	DocumentTypeReportAttachment DocumentType = "report_attachment"
)

func (t DocumentType) folder() string {
	switch t {
	case DocumentTypeOrphanPhoto:
		return "orphans/photos"
	case DocumentTypeReportAttachment:
		return "reports/attachments"
	default:
		return "misc"
	}
}
