package metadata

import "fmt"

// DataSourceError reports that the index could not be read or did not
// have the expected structure. Navigation cannot proceed without it.
type DataSourceError struct {
	Path string
	Op   string
	Err  error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("metadata %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *DataSourceError) Unwrap() error { return e.Err }
