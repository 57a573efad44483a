package api

// WorkflowCreate is the JSON payload for creating a workflow.
type WorkflowCreate struct {
	Name         string         `json:"name"`
	Description  string         `json:"description,omitempty"`
	Definition   map[string]any `json:"definition"`
	ScheduleCron string         `json:"schedule_cron,omitempty"`
}

// WorkflowUpdate is a partial workflow payload.
type WorkflowUpdate struct {
	Name         *string        `json:"name,omitempty"`
	Description  *string        `json:"description,omitempty"`
	Definition   map[string]any `json:"definition,omitempty"`
	IsActive     *bool          `json:"is_active,omitempty"`
	ScheduleCron *string        `json:"schedule_cron,omitempty"`
}

func ListWorkflows() *Request {
	return getRequest("/workflows/")
}

func CreateWorkflow(workflow WorkflowCreate) *Request {
	return jsonRequest("POST", "/workflows/", workflow)
}

func GetWorkflow(workflowID string) *Request {
	return getRequest("/workflows/" + workflowID)
}

func UpdateWorkflow(workflowID string, update WorkflowUpdate) *Request {
	return jsonRequest("PUT", "/workflows/"+workflowID, update)
}

func DeleteWorkflow(workflowID string) *Request {
	return deleteRequest("/workflows/" + workflowID)
}

// ExecuteWorkflow starts a run of the workflow with optional parameters.
func ExecuteWorkflow(workflowID string, params map[string]any) *Request {
	return jsonRequest("POST", "/workflows/"+workflowID+"/execute", map[string]any{"params": params})
}

// WorkflowExecutions lists the execution history of a workflow.
func WorkflowExecutions(workflowID string) *Request {
	return getRequest("/workflows/" + workflowID + "/executions")
}

// WorkflowExecution fetches a single execution by its id.
func WorkflowExecution(executionID string) *Request {
	return getRequest("/workflows/executions/" + executionID)
}
