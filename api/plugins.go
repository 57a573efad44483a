package api

// PluginInstall is the JSON payload for installing a plugin from its
// manifest.
type PluginInstall struct {
	Manifest map[string]any `json:"manifest"`
	Config   map[string]any `json:"config"`
}

// PluginConfigUpdate replaces a plugin's configuration; credentials are
// stored separately by the backend and optional here.
type PluginConfigUpdate struct {
	Config      map[string]any `json:"config"`
	Credentials map[string]any `json:"credentials,omitempty"`
}

func ListPlugins() *Request {
	return getRequest("/plugins/")
}

func InstallPlugin(install PluginInstall) *Request {
	return jsonRequest("POST", "/plugins/", install)
}

func GetPlugin(pluginID string) *Request {
	return getRequest("/plugins/" + pluginID)
}

func ConfigurePlugin(pluginID string, update PluginConfigUpdate) *Request {
	return jsonRequest("PUT", "/plugins/"+pluginID+"/config", update)
}

func ActivatePlugin(pluginID string) *Request {
	return &Request{Method: "POST", Path: "/plugins/" + pluginID + "/activate"}
}

func DeactivatePlugin(pluginID string) *Request {
	return &Request{Method: "POST", Path: "/plugins/" + pluginID + "/deactivate"}
}

// ExecutePlugin runs a plugin action with its parameters.
func ExecutePlugin(pluginID, action string, params map[string]any) *Request {
	return jsonRequest("POST", "/plugins/"+pluginID+"/execute", map[string]any{
		"action": action,
		"params": params,
	})
}

func UninstallPlugin(pluginID string) *Request {
	return deleteRequest("/plugins/" + pluginID)
}
