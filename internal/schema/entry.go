package schema

// Kind is the kind of a walked filesystem [Entry].
type Kind int

const (
	// KindFile is anything that is not a directory (after following links).
	KindFile Kind = iota

	// KindDirectory is a directory (after following links).
	KindDirectory
)

// String returns the human-readable name of a [Kind].
func (k Kind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// Entry is a single element produced by a directory walk. It is meant to be
// passed by reference (pointer).
type Entry struct {
	Name      string
	Kind      Kind
	Size      uint64 // always 0 for directories
	Path      string // absolute
	Readable  bool
	Writable  bool
	IsSymlink bool
	Depth     int // 1 for direct children of the walked root
}

// IsDir returns if an [Entry] is of [KindDirectory].
func (e *Entry) IsDir() bool {
	return e.Kind == KindDirectory
}

// Totals are the aggregated statistics of a directory walk.
type Totals struct {
	Files       uint64
	Directories uint64
	Bytes       uint64
	Skipped     uint64
}

// MiB returns the total bytes of [Totals] in mebibytes.
func (t Totals) MiB() float64 {
	return float64(t.Bytes) / (1024.0 * 1024.0) //nolint:mnd
}

// Add accounts an [Entry] into the [Totals].
func (t *Totals) Add(e *Entry) {
	if e.IsDir() {
		t.Directories++

		return
	}

	t.Files++
	t.Bytes += e.Size
}
