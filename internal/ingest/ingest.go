package ingest

// DirStats summarizes a directory scan.
type DirStats struct {
	Scanned uint32 // entries visited, directories included
	Matched uint32 // snapshot files returned
	Hidden  uint32 // hidden entries skipped
	Failed  uint32 // entries that could not be read
}
