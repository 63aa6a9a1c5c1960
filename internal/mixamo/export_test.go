package mixamo

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestBuildGmsHashParams(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want string
	}{
		{
			name: "name value pairs join by value",
			raw:  map[string]any{"params": []any{[]any{"a", float64(1)}, []any{"b", float64(2)}}},
			want: "1,2",
		},
		{
			name: "empty list becomes zero",
			raw:  map[string]any{"params": []any{}},
			want: "0",
		},
		{
			name: "missing field becomes zero",
			raw:  map[string]any{},
			want: "0",
		},
		{
			name: "non-list value stringified directly",
			raw:  map[string]any{"params": float64(7)},
			want: "7",
		},
		{
			name: "string value passes through",
			raw:  map[string]any{"params": "0.5,1"},
			want: "0.5,1",
		},
		{
			name: "fractional values keep their precision",
			raw:  map[string]any{"params": []any{[]any{"speed", 1.5}, []any{"mix", 0.25}}},
			want: "1.5,0.25",
		},
		{
			name: "bare list entries stringified as-is",
			raw:  map[string]any{"params": []any{float64(3), float64(4)}},
			want: "3,4",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildGmsHash(tt.raw)
			if got.Params != tt.want {
				t.Errorf("Params = %q, want %q", got.Params, tt.want)
			}
		})
	}
}

func TestBuildGmsHashTrim(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want []int
	}{
		{"absent defaults to full clip", map[string]any{}, []int{0, 100}},
		{"numeric pair coerced", map[string]any{"trim": []any{float64(5), float64(40)}}, []int{5, 40}},
		{"string end coerced", map[string]any{"trim": []any{float64(5), "40"}}, []int{5, 40}},
		{"single element defaults", map[string]any{"trim": []any{float64(5)}}, []int{0, 100}},
		{"non-numeric defaults", map[string]any{"trim": []any{"start", "end"}}, []int{0, 100}},
		{"non-list defaults", map[string]any{"trim": "5-40"}, []int{0, 100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildGmsHash(tt.raw)
			if !reflect.DeepEqual(got.Trim, tt.want) {
				t.Errorf("Trim = %v, want %v", got.Trim, tt.want)
			}
		})
	}
}

func TestBuildGmsHashDefaults(t *testing.T) {
	got := BuildGmsHash(nil)

	if got.ModelID != 0 {
		t.Errorf("ModelID = %d, want 0", got.ModelID)
	}
	if got.Mirror {
		t.Error("Mirror = true, want false")
	}
	if !reflect.DeepEqual(got.Trim, []int{0, 100}) {
		t.Errorf("Trim = %v, want [0 100]", got.Trim)
	}
	if got.Overdrive != 0 {
		t.Errorf("Overdrive = %d, want 0", got.Overdrive)
	}
	if got.Params != "0" {
		t.Errorf("Params = %q, want \"0\"", got.Params)
	}
	if got.ArmSpace != 0 {
		t.Errorf("ArmSpace = %d, want 0", got.ArmSpace)
	}
	if got.Inplace {
		t.Error("Inplace = true, want false")
	}
}

func TestBuildGmsHashPassthrough(t *testing.T) {
	raw := map[string]any{
		"model-id":  float64(102),
		"mirror":    true,
		"arm-space": float64(45),
		"inplace":   true,
		"overdrive": float64(9),
	}

	got := BuildGmsHash(raw)

	if got.ModelID != 102 {
		t.Errorf("ModelID = %d, want 102", got.ModelID)
	}
	if !got.Mirror {
		t.Error("Mirror = false, want true")
	}
	if got.ArmSpace != 45 {
		t.Errorf("ArmSpace = %d, want 45", got.ArmSpace)
	}
	if !got.Inplace {
		t.Error("Inplace = false, want true")
	}
	if got.Overdrive != 0 {
		t.Errorf("Overdrive = %d, want 0 regardless of source", got.Overdrive)
	}
}

func TestBuildGmsHashFromWireMetadata(t *testing.T) {
	const body = `{
		"details": {
			"gms_hash": {
				"model-id": 103120902,
				"mirror": false,
				"trim": [0, 100],
				"overdrive": 0,
				"params": [["Posture", 1], ["Stride Length", 0.8]],
				"arm-space": 0,
				"inplace": true
			}
		},
		"type": "Motion",
		"description": "Running"
	}`

	var details ProductDetails
	if err := json.Unmarshal([]byte(body), &details); err != nil {
		t.Fatalf("unmarshal fixture: %v", err)
	}

	got := BuildGmsHash(details.Details.GmsHash)

	if got.ModelID != 103120902 {
		t.Errorf("ModelID = %d, want 103120902", got.ModelID)
	}
	if got.Params != "1,0.8" {
		t.Errorf("Params = %q, want \"1,0.8\"", got.Params)
	}
	if !got.Inplace {
		t.Error("Inplace = false, want true")
	}
	if !reflect.DeepEqual(got.Trim, []int{0, 100}) {
		t.Errorf("Trim = %v, want [0 100]", got.Trim)
	}
}

func TestExportJobDownloadable(t *testing.T) {
	tests := []struct {
		name string
		job  *ExportJob
		want bool
	}{
		{"nil job", nil, false},
		{"completed with url", &ExportJob{Status: StatusCompleted, DownloadURL: "https://x/y.fbx"}, true},
		{"completed without url", &ExportJob{Status: StatusCompleted}, false},
		{"failed with url", &ExportJob{Status: StatusFailed, DownloadURL: "https://x/y.fbx"}, false},
		{"still processing", &ExportJob{Status: StatusProcessing}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.job.Downloadable(); got != tt.want {
				t.Errorf("Downloadable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExportStatusTerminal(t *testing.T) {
	terminal := []ExportStatus{StatusCompleted, StatusFailed, StatusTimedOut}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%s.Terminal() = false, want true", s)
		}
	}

	active := []ExportStatus{StatusPending, StatusProcessing}
	for _, s := range active {
		if s.Terminal() {
			t.Errorf("%s.Terminal() = true, want false", s)
		}
	}
}
