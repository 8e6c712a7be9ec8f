package schema

// Project is the shape of the "project" collection.
var Project = &Schema{
	Name:  "project",
	Title: "Project",
	Fields: []FieldSpec{
		{Name: "name", Type: TypeString, Required: true, Description: "Project name"},
		{Name: "description", Type: TypeString, Description: "Short description"},
		{Name: "language", Type: TypeString, Default: "javascript", Description: "Primary language"},
		{Name: "framework", Type: TypeString, Description: "Primary framework"},
		{Name: "tags", Type: TypeStringList, Default: []string{}, Description: "Project tags"},
		{Name: "settings", Type: TypeMap, Default: map[string]any{}, Description: "Editor/build settings"},
	},
}

// TuningJob is the shape of the "tuningjob" collection.
var TuningJob = &Schema{
	Name:  "tuningjob",
	Title: "TuningJob",
	Fields: []FieldSpec{
		{Name: "project_id", Type: TypeString, Description: "Associated project id"},
		{Name: "model", Type: TypeString, Default: "arcyn-prime", Description: "Model name"},
		{Name: "objective", Type: TypeString, Required: true, Description: "What to optimize for"},
		{Name: "dataset", Type: TypeString, Description: "Dataset reference or URL"},
		{Name: "status", Type: TypeString, Default: "queued", Description: "queued|running|completed|failed"},
		{Name: "params", Type: TypeMap, Default: map[string]any{}, Description: "Hyperparameters"},
	},
}

// Definitions returns every declared model schema keyed by name. This is the
// payload served under GET /schema so external tools can inspect the models.
func Definitions() map[string]any {
	return map[string]any{
		Project.Name:   Project.JSONSchema(),
		TuningJob.Name: TuningJob.JSONSchema(),
	}
}
