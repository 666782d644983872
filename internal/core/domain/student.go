package domain

// Student is a read-only projection of the external roster record. Reports
// join through it for names and class grouping; the roster service owns the
// data.
type Student struct {
	StudentID       string `json:"studentID"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ClassName       string `json:"class"`
	Section         string `json:"section,omitempty"`
	AdmissionNumber string `json:"admissionNumber"`
	ParentID        string `json:"parentID"`
}

// FullName returns the student's display name.
func (s *Student) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
