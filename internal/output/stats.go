package output

// Stats accumulates what a run wrote. It is threaded through the driver
// and returned to the caller; there is no package-level counter.
type Stats struct {
	FilesWritten   int
	FilesUnchanged int
	Lines          int
}

// Record accounts for one file.
func (s *Stats) Record(f File, changed bool) {
	if changed {
		s.FilesWritten++
	} else {
		s.FilesUnchanged++
	}
	s.Lines += f.Lines()
}

// Add merges another accumulator into s.
func (s *Stats) Add(o Stats) {
	s.FilesWritten += o.FilesWritten
	s.FilesUnchanged += o.FilesUnchanged
	s.Lines += o.Lines
}
