package fieldtype

// Template describes one child field produced by expanding a compound
// kind. Suffix is appended to the parent fieldname, Label to the parent
// displayname.
type Template struct {
	Suffix     string
	Label      string
	Kind       Kind
	Visible    bool
	Length     int
	Resolution Resolution
}

// SessionOptions controls which children a session field expands into.
// Resolution applies uniformly to every enabled child.
type SessionOptions struct {
	Start      bool
	End        bool
	Duration   bool
	Resolution Resolution
}

// DefaultSessionOptions returns the full start/end/duration expansion
// at second resolution.
func DefaultSessionOptions() SessionOptions {
	return SessionOptions{
		Start:      true,
		End:        true,
		Duration:   true,
		Resolution: DefaultResolution,
	}
}

// SessionTemplates expands a session field into its child templates.
func SessionTemplates(opts SessionOptions) []Template {
	resolution := opts.Resolution
	if resolution == "" {
		resolution = DefaultResolution
	}

	var templates []Template
	if opts.Start {
		templates = append(templates, Template{
			Suffix:     "start",
			Label:      "Start",
			Kind:       Timestamp,
			Visible:    true,
			Resolution: resolution,
		})
	}
	if opts.End {
		templates = append(templates, Template{
			Suffix:     "end",
			Label:      "End",
			Kind:       Timestamp,
			Visible:    true,
			Resolution: resolution,
		})
	}
	if opts.Duration {
		templates = append(templates, Template{
			Suffix:     "duration",
			Label:      "Duration",
			Kind:       Duration,
			Visible:    true,
			Resolution: resolution,
		})
	}

	return templates
}

// AttachmentTemplates expands an attachment field into its child
// templates. The uuid child is hidden, it exists to address the stored
// file rather than to be shown.
func AttachmentTemplates() []Template {
	return []Template{
		{
			Suffix:  "filename",
			Label:   "Filename",
			Kind:    String,
			Visible: true,
			Length:  UnlimitedLength,
		},
		{
			Suffix:  "uuid",
			Label:   "UUID",
			Kind:    String,
			Visible: false,
			Length:  UnlimitedLength,
		},
	}
}
