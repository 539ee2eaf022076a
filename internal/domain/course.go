package domain

// Course is one enrolled subject with its own assignment feed.
// IDs are unique within a run; discovery dedupes before fan-out.
type Course struct {
	ID   string
	Name string
}

// RawPayload is the unparsed response body for one course's assignment
// page. It lives only long enough to be handed to a parser.
type RawPayload struct {
	CourseID    string
	Body        []byte
	ContentType string
	StatusCode  int
}
