package api

// CourseCreate is the JSON payload for creating a course.
type CourseCreate struct {
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	Semester    string `json:"semester,omitempty"`
	Year        int    `json:"year,omitempty"`
	Instructor  string `json:"instructor,omitempty"`
	Description string `json:"description,omitempty"`
}

// CourseUpdate is a partial course payload; nil fields are left unchanged.
type CourseUpdate struct {
	Name        *string `json:"name,omitempty"`
	Code        *string `json:"code,omitempty"`
	Semester    *string `json:"semester,omitempty"`
	Year        *int    `json:"year,omitempty"`
	Instructor  *string `json:"instructor,omitempty"`
	Description *string `json:"description,omitempty"`
}

func ListCourses() *Request {
	return getRequest("/courses/")
}

func CreateCourse(course CourseCreate) *Request {
	return jsonRequest("POST", "/courses/", course)
}

func GetCourse(courseID string) *Request {
	return getRequest("/courses/" + courseID)
}

func UpdateCourse(courseID string, update CourseUpdate) *Request {
	return jsonRequest("PUT", "/courses/"+courseID, update)
}

func DeleteCourse(courseID string) *Request {
	return deleteRequest("/courses/" + courseID)
}

// CourseLiveMap fetches the live topic/resource map for a course.
func CourseLiveMap(courseID string) *Request {
	return getRequest("/courses/" + courseID + "/live-map")
}
