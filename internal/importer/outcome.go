package importer

// Outcome describes what happened to a single source row, so callers and
// tests can distinguish an insert from the different reasons a row was
// skipped.
type Outcome int

const (
	// Inserted means a new row was written.
	Inserted Outcome = iota
	// SkippedExists means the primary key was already present.
	SkippedExists
	// SkippedNoID means the row carried no usable primary key.
	SkippedNoID
	// SkippedNoHost means a property row had no resolvable host id.
	SkippedNoHost
	// SkippedNoDate means a calendar row had no parseable date.
	SkippedNoDate
	// SkippedNoRef means the row referenced a missing user or property.
	SkippedNoRef
)

func (o Outcome) String() string {
	switch o {
	case Inserted:
		return "inserted"
	case SkippedExists:
		return "skipped: already exists"
	case SkippedNoID:
		return "skipped: missing id"
	case SkippedNoHost:
		return "skipped: missing host id"
	case SkippedNoDate:
		return "skipped: missing date"
	case SkippedNoRef:
		return "skipped: missing reference"
	}
	return "unknown"
}
