package domain

// Category classifies an assignment by how much time remains until its
// deadline. Unknown covers assignments whose deadline could not be parsed.
type Category string

const (
	CategoryOverdue  Category = "overdue"
	CategoryUrgent   Category = "urgent"
	CategoryDueSoon  Category = "due_soon"
	CategoryUpcoming Category = "upcoming"
	CategoryUnknown  Category = "unknown"
)

type Institute string

const (
	InstituteKarachi        Institute = "Karachi Campus"
	InstituteIslamabadE8    Institute = "Islamabad E-8 Campus"
	InstituteLahore         Institute = "Lahore Campus"
	InstituteHealthSciences Institute = "Health Sciences Campus"
)

// Institutes lists the campuses the portal's login form accepts, in the
// order the dropdown shows them.
var Institutes = []Institute{
	InstituteKarachi,
	InstituteIslamabadE8,
	InstituteLahore,
	InstituteHealthSciences,
}

// ValidInstitutes is the canonical set of accepted institute strings.
var ValidInstitutes = map[string]bool{
	string(InstituteKarachi):        true,
	string(InstituteIslamabadE8):    true,
	string(InstituteLahore):         true,
	string(InstituteHealthSciences): true,
}

type SubmissionStatus string

const (
	StatusSubmitted    SubmissionStatus = "Submitted"
	StatusNotSubmitted SubmissionStatus = "Not Submitted"
)
