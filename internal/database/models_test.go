package database

import "testing"

func TestTableNames(t *testing.T) {
	tests := []struct {
		name  string
		model interface{ TableName() string }
		want  string
	}{
		{name: "analysis run", model: AnalysisRun{}, want: "analysis_runs"},
		{name: "run window", model: RunWindow{}, want: "run_windows"},
		{name: "group record", model: GroupRecord{}, want: "duplicate_groups"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.model.TableName(); got != tt.want {
				t.Errorf("TableName() = %q, want %q", got, tt.want)
			}
		})
	}
}
