package api

// AssignmentCreate is the JSON payload for creating an assignment.
type AssignmentCreate struct {
	CourseID       string  `json:"course_id"`
	TopicID        string  `json:"topic_id,omitempty"`
	Title          string  `json:"title"`
	Description    string  `json:"description,omitempty"`
	DueDate        string  `json:"due_date,omitempty"` // RFC 3339
	PointsPossible float64 `json:"points_possible,omitempty"`
}

// AssignmentUpdate is a partial assignment payload.
type AssignmentUpdate struct {
	Title          *string  `json:"title,omitempty"`
	Description    *string  `json:"description,omitempty"`
	DueDate        *string  `json:"due_date,omitempty"`
	PointsPossible *float64 `json:"points_possible,omitempty"`
	Status         *string  `json:"status,omitempty"`
}

func ListAssignments() *Request {
	return getRequest("/assignments/")
}

func CreateAssignment(assignment AssignmentCreate) *Request {
	return jsonRequest("POST", "/assignments/", assignment)
}

func GetAssignment(assignmentID string) *Request {
	return getRequest("/assignments/" + assignmentID)
}

func UpdateAssignment(assignmentID string, update AssignmentUpdate) *Request {
	return jsonRequest("PUT", "/assignments/"+assignmentID, update)
}

func DeleteAssignment(assignmentID string) *Request {
	return deleteRequest("/assignments/" + assignmentID)
}
