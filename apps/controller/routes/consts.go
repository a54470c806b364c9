package routes

var (
	BearerAuth = []map[string][]string{
		{"bearer": {}},
	}
)

type Tag string

const (
	TagController Tag = "controller"
	TagHealth     Tag = "health"
	TagAuth       Tag = "auth"
	TagExtraction Tag = "extraction"
	TagFiles      Tag = "files"
)

func (t Tag) String() string { return string(t) }

func AllTags() []string {
	return []string{
		TagController.String(),
		TagHealth.String(),
		TagAuth.String(),
		TagExtraction.String(),
		TagFiles.String(),
	}
}
