package sau

// ProgressEvent represents a progress update during merge or split.
type ProgressEvent struct {
	// Stage identifies the current phase of the operation.
	Stage ProgressStage

	// Path is the input file (merge) or extracted file (split) just processed.
	Path string

	// BytesDone is the number of content bytes completed.
	BytesDone uint64

	// BytesTotal is the total number of content bytes.
	BytesTotal uint64

	// FilesDone is the number of records completed.
	FilesDone int

	// FilesTotal is the total number of records.
	FilesTotal int
}

// ProgressStage identifies the current phase of an operation.
type ProgressStage uint8

const (
	// StageMerging indicates input files are being appended to a container.
	StageMerging ProgressStage = iota

	// StageExtracting indicates records are being written out of a container.
	StageExtracting
)

// String returns the string representation of the stage.
func (s ProgressStage) String() string {
	switch s {
	case StageMerging:
		return "merging"
	case StageExtracting:
		return "extracting"
	default:
		return "unknown"
	}
}

// ProgressFunc receives progress updates. It is called synchronously from
// the goroutine running the operation.
type ProgressFunc func(ProgressEvent)
