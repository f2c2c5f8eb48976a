package model

// Service describes one of the fixed marketplace categories: its name and
// the skill vector a job in that category requires. The catalog is immutable
// reference data used only for scoring.
type Service struct {
	Name     string
	Required SkillVector
}

var catalog = []Service{
	{Name: "paint", Required: SkillVector{70, 60, 50, 85, 90}},
	{Name: "web_dev", Required: SkillVector{95, 75, 85, 80, 90}},
	{Name: "graphic_design", Required: SkillVector{75, 85, 95, 70, 85}},
	{Name: "data_entry", Required: SkillVector{50, 50, 30, 95, 95}},
	{Name: "tutoring", Required: SkillVector{80, 95, 70, 90, 75}},
	{Name: "cleaning", Required: SkillVector{40, 60, 40, 90, 85}},
	{Name: "writing", Required: SkillVector{70, 85, 90, 80, 95}},
	{Name: "photography", Required: SkillVector{85, 80, 90, 75, 90}},
	{Name: "plumbing", Required: SkillVector{85, 65, 60, 90, 85}},
	{Name: "electrical", Required: SkillVector{90, 65, 70, 95, 95}},
}

// Services returns the full catalog in its fixed order.
func Services() []Service {
	out := make([]Service, len(catalog))
	copy(out, catalog)
	return out
}

// ServiceByName looks up a catalog entry by name.
func ServiceByName(name string) (Service, bool) {
	for _, svc := range catalog {
		if svc.Name == name {
			return svc, true
		}
	}
	return Service{}, false
}
