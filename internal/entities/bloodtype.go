package entities

// BloodTypeOption pairs a stored blood type code with its display label.
type BloodTypeOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var bloodTypeOptions = [...]BloodTypeOption{
	{Value: "A+", Label: "A Positive"},
	{Value: "A-", Label: "A Negative"},
	{Value: "B+", Label: "B Positive"},
	{Value: "B-", Label: "B Negative"},
	{Value: "AB+", Label: "AB Positive"},
	{Value: "AB-", Label: "AB Negative"},
	{Value: "O+", Label: "O Positive"},
	{Value: "O-", Label: "O Negative"},
}

var bloodTypeLabels = func() map[string]string {
	m := make(map[string]string, len(bloodTypeOptions))
	for _, o := range bloodTypeOptions {
		m[o.Value] = o.Label
	}
	return m
}()

// BloodTypeLabel resolves a blood type code. Unknown codes yield "", false.
func BloodTypeLabel(code string) (string, bool) {
	label, ok := bloodTypeLabels[code]
	return label, ok
}
