package types

// LinkTarget is one entry of an object's links, resolved for display.
type LinkTarget struct {
	ID string `json:"id"`

	// Title is the target's Title field, or NoTitle when the target is
	// missing, unreadable, or has no Title.
	Title string `json:"title"`

	// Resolved is false when the target could not be read.
	Resolved bool `json:"resolved"`
}

// LinkListing is the result of listing one object's links.
type LinkListing struct {
	Project string       `json:"project"`
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Targets []LinkTarget `json:"targets"`
}

// BrokenLink is a stored link entry from Source to Target that fails a
// consistency check.
type BrokenLink struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// RecordError is a record that could not be read or written. Line is set
// for records read from an archive.
type RecordError struct {
	ID   string `json:"id,omitempty"`
	Line int    `json:"line,omitempty"`
	Err  error  `json:"-"`

	// Message carries Err for JSON output.
	Message string `json:"error"`
}

// ValidationReport is the outcome of scanning one project.
type ValidationReport struct {
	Project string `json:"project"`
	Checked int    `json:"checked"`

	// Broken lists links whose target does not exist.
	Broken []BrokenLink `json:"broken"`

	// OneSided lists links whose target exists but does not link back.
	OneSided []BrokenLink `json:"one_sided"`

	// Errors lists records skipped because they could not be read.
	Errors []RecordError `json:"errors"`
}

// Valid reports whether the scan found no problems.
func (r *ValidationReport) Valid() bool {
	return len(r.Broken) == 0 && len(r.OneSided) == 0 && len(r.Errors) == 0
}
