package exitcode

const (
	Success         = 0
	UsageError      = 1
	SourceError     = 2
	ValidationError = 3
	DBConnError     = 4
	ImportError     = 5
	PartialSuccess  = 6
)
