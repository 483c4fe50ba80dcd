package adapters

var order = map[Category][]string{
	Framework:   {"microsoft_agent_framework", "langgraph", "google_adk", "crewai"},
	ProjectType: {"multi_agent_api", "multi_agent_react_ui", "agentic_rag"},
	Pipeline:    {"github_actions", "azure_devops"},
	Runtime:     {"aks", "container_apps", "app_service"},
	IaC:         {"bicep", "terraform"},
}

var registry = map[Category]map[string]Adapter{
	Framework: {
		"microsoft_agent_framework": {
			Category: Framework,
			Name:     "microsoft_agent_framework",
			Display:  "Microsoft Agent Framework",
			Overlay:  "microsoft_agent_framework",
			Context: map[string]any{
				"framework":                 "microsoft_agent_framework",
				"framework_display":         "Microsoft Agent Framework",
				"azure_ai_foundry":          true,
				"managed_identity":          true,
				"azure_sdk_integration":     true,
				"azure_monitor_hooks":       true,
				"agent_composition":         true,
				"memory_tool_orchestration": true,
			},
		},
		"langgraph": {
			Category: Framework,
			Name:     "langgraph",
			Display:  "LangGraph",
			Overlay:  "langgraph",
			Context: map[string]any{
				"framework":           "langgraph",
				"framework_display":   "LangGraph",
				"graph_nodes":         true,
				"state_management":    true,
				"tool_nodes":          true,
				"rag_pipeline_node":   true,
				"azure_openai_config": true,
				"streaming_support":   true,
			},
		},
		"google_adk": {
			Category: Framework,
			Name:     "google_adk",
			Display:  "Google ADK",
			Overlay:  "google_adk",
			Context: map[string]any{
				"framework":           "google_adk",
				"framework_display":   "Google ADK",
				"adk_agents":          true,
				"adk_tools":           true,
				"adk_sessions":        true,
				"azure_openai_config": true,
			},
		},
		"crewai": {
			Category: Framework,
			Name:     "crewai",
			Display:  "CrewAI",
			Overlay:  "crewai",
			Context: map[string]any{
				"framework":           "crewai",
				"framework_display":   "CrewAI",
				"crew_agents":         true,
				"crew_tasks":          true,
				"crew_tools":          true,
				"azure_openai_config": true,
			},
		},
	},
	ProjectType: {
		"multi_agent_api": {
			Category: ProjectType,
			Name:     "multi_agent_api",
			Display:  "Multi-Agent API",
			Context: map[string]any{
				"project_type":         "multi_agent_api",
				"project_type_display": "Multi-Agent API",
				"fastapi":              true,
				"health_endpoint":      true,
				"swagger":              true,
				"opentelemetry":        true,
				"unit_test_scaffold":   true,
			},
		},
		"multi_agent_react_ui": {
			Category: ProjectType,
			Name:     "multi_agent_react_ui",
			Display:  "Multi-Agent React Chat UI",
			Context: map[string]any{
				"project_type":         "multi_agent_react_ui",
				"project_type_display": "Multi-Agent React Chat UI",
				"fastapi":              true,
				"react_frontend":       true,
				"jwt_auth":             true,
				"websocket":            true,
				"opentelemetry":        true,
			},
		},
		"agentic_rag": {
			Category: ProjectType,
			Name:     "agentic_rag",
			Display:  "Agentic RAG with Azure AI Search",
			Context: map[string]any{
				"project_type":         "agentic_rag",
				"project_type_display": "Agentic RAG with Azure AI Search",
				"fastapi":              true,
				"azure_ai_search":      true,
				"vector_store":         true,
				"opentelemetry":        true,
			},
		},
	},
	Pipeline: {
		"github_actions": {
			Category: Pipeline,
			Name:     "github_actions",
			Display:  "GitHub Actions",
			Overlay:  "pipelines/github_actions",
			Context: map[string]any{
				"pipeline":          "github_actions",
				"pipeline_display":  "GitHub Actions",
				"sast":              true,
				"dependency_scan":   true,
				"docker_build":      true,
				"acr_push":          true,
				"deploy_to_runtime": true,
			},
		},
		"azure_devops": {
			Category: Pipeline,
			Name:     "azure_devops",
			Display:  "Azure DevOps",
			Overlay:  "pipelines/azure_devops",
			Context: map[string]any{
				"pipeline":          "azure_devops",
				"pipeline_display":  "Azure DevOps",
				"sast":              true,
				"dependency_scan":   true,
				"docker_build":      true,
				"acr_push":          true,
				"deploy_to_runtime": true,
			},
		},
	},
	Runtime: {
		"aks": {
			Category: Runtime,
			Name:     "aks",
			Display:  "Azure Kubernetes Service",
			Overlay:  "runtimes/aks",
			Context: map[string]any{
				"runtime":                   "aks",
				"runtime_display":           "Azure Kubernetes Service",
				"helm_charts":               true,
				"kustomize":                 true,
				"hpa":                       true,
				"managed_identity_binding":  true,
				"azure_monitor_integration": true,
			},
		},
		"container_apps": {
			Category: Runtime,
			Name:     "container_apps",
			Display:  "Azure Container Apps",
			Overlay:  "runtimes/container_apps",
			Context: map[string]any{
				"runtime":                   "container_apps",
				"runtime_display":           "Azure Container Apps",
				"dapr":                      true,
				"managed_identity_binding":  true,
				"revision_management":       true,
				"azure_monitor_integration": true,
			},
		},
		"app_service": {
			Category: Runtime,
			Name:     "app_service",
			Display:  "Azure App Service",
			Overlay:  "runtimes/app_service",
			Context: map[string]any{
				"runtime":                   "app_service",
				"runtime_display":           "Azure App Service",
				"managed_identity_binding":  true,
				"app_settings":              true,
				"deployment_slots":          true,
				"azure_monitor_integration": true,
			},
		},
	},
	IaC: {
		"bicep": {
			Category: IaC,
			Name:     "bicep",
			Display:  "Bicep",
			Overlay:  "iac/bicep",
			Context: map[string]any{
				"iac":         "bicep",
				"iac_display": "Bicep",
			},
		},
		"terraform": {
			Category: IaC,
			Name:     "terraform",
			Display:  "Terraform",
			Overlay:  "iac/terraform",
			Context: map[string]any{
				"iac":         "terraform",
				"iac_display": "Terraform",
			},
		},
	},
}
