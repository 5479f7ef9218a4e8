package dataset

// Column names of the heart-failure clinical records table.
// Every input CSV consumed by the tools is expected to carry these.

// NumericColumns are the continuous physiological measurements.
var NumericColumns = []string{
	"age",
	"creatinine_phosphokinase",
	"ejection_fraction",
	"platelets",
	"serum_creatinine",
	"serum_sodium",
	"time",
}

// BinaryColumns are the 0/1 indicator measurements.
var BinaryColumns = []string{
	"anaemia",
	"diabetes",
	"high_blood_pressure",
	"sex",
	"smoking",
}

// LabelColumn is the binary outcome label.
const LabelColumn = "DEATH_EVENT"
