package diff

// Option is a functional option for configuring a Differ
type Option func(*differ)

// WithIgnoredColumns sets columns to exclude from comparison. Ignored
// columns still render (taking R1's value for rows present on both sides)
// but never mark a row modified.
func WithIgnoredColumns(columns ...string) Option {
	return func(d *differ) {
		for _, column := range columns {
			d.ignoreColumns[column] = true
		}
	}
}

// WithArrow overrides the change marker used in rendered cells
func WithArrow(arrow string) Option {
	return func(d *differ) {
		if arrow != "" {
			d.arrow = arrow
		}
	}
}
