package models

import "encoding/json"

// Course is a catalog entry normalized from the backend's mixed field names.
type Course struct {
	ID         string
	Name       string
	Code       string
	Credits    int
	Semester   int
	Department string
	LecturerID string
	IsEnrolled bool
}

type courseWire struct {
	ID            string `json:"id"`
	MongoID       string `json:"_id"`
	CourseName    string `json:"course_name"`
	Name          string `json:"name"`
	CourseCode    string `json:"course_code"`
	Code          string `json:"code"`
	Credits       int    `json:"credits"`
	Semester      int    `json:"semester"`
	Department    string `json:"department"`
	LecturerID    string `json:"lecturer_id"`
	LecturerIDAlt string `json:"lecturerId"`
	IsEnrolled    bool   `json:"is_enrolled"`
}

func (c *Course) UnmarshalJSON(data []byte) error {
	var w courseWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	c.ID = firstNonEmpty(w.ID, w.MongoID)
	c.Name = firstNonEmpty(w.CourseName, w.Name, "Untitled Course")
	c.Code = firstNonEmpty(w.CourseCode, w.Code, "N/A")
	c.Credits = w.Credits
	c.Semester = w.Semester
	if c.Semester == 0 {
		c.Semester = 1
	}
	c.Department = w.Department
	c.LecturerID = firstNonEmpty(w.LecturerID, w.LecturerIDAlt)
	c.IsEnrolled = w.IsEnrolled
	return nil
}

// CoursePayload is the body for POST /courses and PUT /courses/{id}.
type CoursePayload struct {
	Name       string `json:"course_name"`
	Code       string `json:"course_code"`
	Credits    int    `json:"credits"`
	Semester   int    `json:"semester"`
	Department string `json:"department"`
	LecturerID string `json:"lecturer_id,omitempty"`
}

// PayloadOf turns an existing course back into an edit payload.
func PayloadOf(c Course) CoursePayload {
	return CoursePayload{
		Name:       c.Name,
		Code:       c.Code,
		Credits:    c.Credits,
		Semester:   c.Semester,
		Department: c.Department,
		LecturerID: c.LecturerID,
	}
}

// EnrolledCourse is a row of a student's course list.
type EnrolledCourse struct {
	ID           string
	Code         string
	Name         string
	Credits      int
	Semester     string
	LecturerName string
	LastAccessed string
}

type enrolledWire struct {
	CourseID     string          `json:"course_id"`
	CourseCode   string          `json:"course_code"`
	CourseName   string          `json:"course_name"`
	Credits      int             `json:"credits"`
	Semester     json.RawMessage `json:"semester"`
	LecturerName string          `json:"lecturer_name"`
	LastAccessed string          `json:"last_accessed"`
}

func (e *EnrolledCourse) UnmarshalJSON(data []byte) error {
	var w enrolledWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	e.ID = w.CourseID
	e.Code = w.CourseCode
	e.Name = w.CourseName
	e.Credits = w.Credits
	e.Semester = rawScalar(w.Semester)
	e.LecturerName = firstNonEmpty(w.LecturerName, "Assigned Lecturer")
	e.LastAccessed = firstNonEmpty(w.LastAccessed, "Never")
	return nil
}

// rawScalar renders a JSON string or number as plain text.
func rawScalar(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
