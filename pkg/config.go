package sdsignals

import "slices"

type Configuration struct {
	MaxEvents        int           `json:"max_events"`
	Verbosity        int           `json:"verbosity"`
	FileIn           string        `json:"file_in"`
	FileOut          string        `json:"file_out"`
	NoDB             bool          `json:"no_db"`
	Discard          bool          `json:"discard"`
	Skip             int           `json:"skip"`
	Host             string        `json:"host"`
	User             string        `json:"user"`
	Passwd           string        `json:"pass"`
	DBName           string        `json:"dbname"`
	NumWorkers       int           `json:"num_workers"`
	WriteData        bool          `json:"write_data"`
	CompressionLevel int           `json:"compression_level"`
	Groups           []SignalGroup `json:"groups"`
	LDFSamples       []float64     `json:"ldf_samples"`
}

// SelectedGroups returns the configured groups, or every group when none
// are configured. The result never aliases AllGroups.
func (c Configuration) SelectedGroups() []SignalGroup {
	if len(c.Groups) == 0 {
		return slices.Clone(AllGroups)
	}
	return c.Groups
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}
