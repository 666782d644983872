package models

// Student maps to a row in the read-only students roster projection.
type Student struct {
	StudentID       string `json:"studentID"` // Primary Key, owned by the roster service
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	ClassName       string `json:"class"`
	Section         string `json:"section"`
	AdmissionNumber string `json:"admissionNumber"`
	ParentID        string `json:"parentID"`
}
