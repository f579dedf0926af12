package moderation

// ContentKind discriminates the two kinds of submission the service accepts.
type ContentKind string

const (
	ContentKindText  ContentKind = "text"
	ContentKindImage ContentKind = "image"
)

// IsValid reports whether k is a known content kind.
func (k ContentKind) IsValid() bool {
	return k == ContentKindText || k == ContentKindImage
}

func (k ContentKind) String() string {
	return string(k)
}

// Content is a single submission handed to a Scorer. Exactly one of Text or
// Data is meaningful, selected by Kind.
type Content struct {
	Kind      ContentKind
	Text      string
	Data      []byte
	MediaType string
	Filename  string
}

// NewTextContent builds a text submission.
func NewTextContent(text string) Content {
	return Content{Kind: ContentKindText, Text: text}
}

// NewImageContent builds a binary image submission.
func NewImageContent(data []byte, mediaType, filename string) Content {
	return Content{
		Kind:      ContentKindImage,
		Data:      data,
		MediaType: mediaType,
		Filename:  filename,
	}
}
