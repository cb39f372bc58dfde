package ai

// AnalysisPreset is a named, pre-written analysis prompt.
type AnalysisPreset struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Prompt      string `json:"prompt"`
}

var analysisPresets = []AnalysisPreset{
	{
		ID:          "standard",
		Name:        "Standard Analysis",
		Description: "Provides a general overview of histological features.",
		Prompt:      "Analyze the provided histopathology slide image and extract key findings. Focus on the following aspects: cellular morphology (e.g., size, shape, nuclear-to-cytoplasmic ratio), presence and type of inflammation, and any suspicious features (e.g., atypia, mitotic figures, necrosis). Format the output as a markdown list.",
	},
	{
		ID:          "tumor_count",
		Name:        "Tumor Cell Count",
		Description: "Estimates the percentage of tumor cells in the provided image.",
		Prompt:      "Analyze the provided histopathology slide image and estimate the tumor cell percentage. Provide a percentage range and a brief justification for your estimation based on visible neoplastic cell clusters versus normal tissue.",
	},
	{
		ID:          "tumor_grade_assist",
		Name:        "Tumor Grade Assist",
		Description: "Provides features relevant to grading, including estimated tumor percentage.",
		Prompt:      "Provide an analysis to assist with tumor grading. Specifically, estimate the tumor cell percentage, describe nuclear pleomorphism, and note the presence of necrosis. Present this as a structured report.",
	},
	{
		ID:          "inflammation_grade",
		Name:        "Inflammation Grade",
		Description: "Focuses on grading the level and type of inflammation present.",
		Prompt:      "Analyze the provided histopathology slide image to assess and grade the inflammation. Describe the type of inflammatory infiltrate (e.g., lymphocytic, neutrophilic) and grade its severity (mild, moderate, severe). Justify your grading.",
	},
	{
		ID:          "margin_analysis",
		Name:        "Margin Analysis",
		Description: "Checks for tumor presence at the margins of the tissue sample.",
		Prompt:      "Analyze the provided histopathology slide image, assuming it is a surgical resection specimen. Assess the surgical margins for the presence of neoplastic cells. State clearly whether margins appear positive or negative for tumor involvement and provide a brief description of the findings at the margin.",
	},
	{
		ID:          "cell_type_id",
		Name:        "Cell Type Identification",
		Description: "Identifies and describes the distribution of different cell types.",
		Prompt:      "Identify the different cell types present in the slide, such as neoplastic cells, lymphocytes, macrophages, and stromal cells. Provide a brief description of their distribution and relative proportions.",
	},
}

// Presets returns the available analysis presets.
func Presets() []AnalysisPreset {
	out := make([]AnalysisPreset, len(analysisPresets))
	copy(out, analysisPresets)
	return out
}

// PresetByID resolves a preset by id.
func PresetByID(id string) (AnalysisPreset, bool) {
	for _, p := range analysisPresets {
		if p.ID == id {
			return p, true
		}
	}
	return AnalysisPreset{}, false
}
