package mixamo

// ExportFormat selects the file format the export endpoint renders.
type ExportFormat string

const (
	FormatFBX2019 ExportFormat = "fbx7_2019"
	FormatFBX7    ExportFormat = "fbx7"
	FormatCollada ExportFormat = "dae_mixamo"
)

// ValidFormats lists the formats the export endpoint accepts.
func ValidFormats() []ExportFormat {
	return []ExportFormat{FormatFBX2019, FormatFBX7, FormatCollada}
}

// Valid reports whether f is a format the export endpoint accepts.
func (f ExportFormat) Valid() bool {
	switch f {
	case FormatFBX2019, FormatFBX7, FormatCollada:
		return true
	}
	return false
}

// Animation is one catalog entry returned by the search endpoint.
type Animation struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Thumbnail   string `json:"thumbnail"`
	MotionID    string `json:"motion_id"`
}

// searchPage is the wire shape of GET /products.
type searchPage struct {
	Results    []Animation `json:"results"`
	Pagination struct {
		Limit      int `json:"limit"`
		Page       int `json:"page"`
		NumPages   int `json:"num_pages"`
		NumResults int `json:"num_results"`
	} `json:"pagination"`
}

// ProductDetails is the per-item metadata for a product applied to one
// character, returned by GET /products/{id}. Details.GmsHash stays loosely
// typed because the service mixes value shapes per product.
type ProductDetails struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Details     struct {
		GmsHash map[string]any `json:"gms_hash"`
	} `json:"details"`
}

// Character is a rigged character the service can retarget animations onto.
type Character struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Stock characters available to every account.
const (
	CharacterYBot = "bd5c7f38-3eda-4bf5-9fb8-cc338e1bde8a"
	CharacterXBot = "e197db12-4260-4c85-831f-723609a71c5d"
)

// GmsHash is the derived per-item export parameter block the export
// endpoint expects, built fresh for every export attempt.
type GmsHash struct {
	ModelID   int    `json:"model-id"`
	Mirror    bool   `json:"mirror"`
	Trim      []int  `json:"trim"`
	Overdrive int    `json:"overdrive"`
	Params    string `json:"params"`
	ArmSpace  int    `json:"arm-space"`
	Inplace   bool   `json:"inplace"`
}

// ExportPreferences carries the render settings. The service expects string
// values on the wire, including the booleans.
type ExportPreferences struct {
	Format   string `json:"format"`
	Skin     string `json:"skin"`
	FPS      string `json:"fps"`
	ReduceKF string `json:"reducekf"`
}

// exportRequest is the body of POST /animations/export.
type exportRequest struct {
	CharacterID string            `json:"character_id"`
	ProductName string            `json:"product_name"`
	Type        string            `json:"type"`
	Preferences ExportPreferences `json:"preferences"`
	GmsHash     []GmsHash         `json:"gms_hash"`
}

// monitorResponse is the wire shape of GET /characters/{id}/monitor.
type monitorResponse struct {
	Status    string `json:"status"`
	JobResult string `json:"job_result"`
	Message   string `json:"message"`
}

// primaryResponse is the wire shape of GET /characters/primary.
type primaryResponse struct {
	PrimaryCharacterID   string `json:"primary_character_id"`
	PrimaryCharacterName string `json:"primary_character_name"`
}

// uploadResponse is the wire shape of POST /characters.
type uploadResponse struct {
	UUID string `json:"uuid"`
}
