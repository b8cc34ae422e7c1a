package warehouse

// LineageSource describes an upstream system feeding the warehouse.
type LineageSource struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Tables []string `json:"tables"`
}

// LineageStep describes one transformation stage.
type LineageStep struct {
	Step        int    `json:"step"`
	Process     string `json:"process"`
	Description string `json:"description"`
}

// LineageTarget describes a downstream consumer.
type LineageTarget struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Lineage describes data origin, transformation, and destination.
type Lineage struct {
	Sources         []LineageSource `json:"sources"`
	Transformations []LineageStep   `json:"transformations"`
	Targets         []LineageTarget `json:"targets"`
}

// Lineage returns the static lineage descriptor. The content is
// illustrative metadata for the dashboard, not derived from actual
// pipeline execution.
func (w *Warehouse) Lineage() *Lineage {
	return &Lineage{
		Sources: []LineageSource{
			{Name: "CRM System", Type: "Database", Tables: []string{"customers"}},
			{Name: "E-commerce Platform", Type: "API", Tables: []string{"orders", "products"}},
			{Name: "Payment Gateway", Type: "Stream", Tables: []string{"transactions"}},
		},
		Transformations: []LineageStep{
			{Step: 1, Process: "Data Extraction", Description: "Extract data from source systems"},
			{Step: 2, Process: "Data Cleaning", Description: "Clean and validate data quality"},
			{Step: 3, Process: "Data Transformation", Description: "Transform to star schema"},
			{Step: 4, Process: "Data Loading", Description: "Load into data warehouse"},
		},
		Targets: []LineageTarget{
			{Name: "Analytics Dashboard", Type: "BI Tool"},
			{Name: "ML Pipeline", Type: "Machine Learning"},
			{Name: "Reporting System", Type: "Reports"},
		},
	}
}
