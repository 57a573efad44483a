package api

// AgentInteraction asks an agent to exercise one of its capabilities.
type AgentInteraction struct {
	Capability string         `json:"capability"`
	InputData  map[string]any `json:"input_data"`
	Context    map[string]any `json:"context,omitempty"`
}

// BatchInteraction is one entry of a batched agent call; AgentName names the
// target agent for this entry.
type BatchInteraction struct {
	AgentName  string         `json:"agent_name"`
	Capability string         `json:"capability"`
	InputData  map[string]any `json:"input_data"`
	Context    map[string]any `json:"context,omitempty"`
}

func ListAgents() *Request {
	return getRequest("/agents/")
}

func GetAgent(agentName string) *Request {
	return getRequest("/agents/" + agentName)
}

// InteractWithAgent sends a single interaction to the named agent.
func InteractWithAgent(agentName string, interaction AgentInteraction) *Request {
	return jsonRequest("POST", "/agents/"+agentName+"/interact", interaction)
}

func AgentCapabilities(agentName string) *Request {
	return getRequest("/agents/" + agentName + "/capabilities")
}

// BatchInteract sends several interactions, possibly to different agents, in
// one call. The body is the bare array of entries.
func BatchInteract(interactions []BatchInteraction) *Request {
	return jsonRequest("POST", "/agents/batch-interact", interactions)
}

func AgentHealth(agentName string) *Request {
	return getRequest("/agents/" + agentName + "/health")
}
