package domain

import "sort"

// CategoryID identifies a job category predicted by the classifier.
type CategoryID int

// UnknownCategory is the label for ids outside the category table.
const UnknownCategory = "Unknown"

var categoryLabels = map[CategoryID]string{
	0:  "Advocate",
	1:  "Arts",
	2:  "Automation Testing",
	3:  "Blockchain",
	4:  "Business Analyst",
	5:  "Civil Engineer",
	6:  "Data Science",
	7:  "Database",
	8:  "DevOps Engineer",
	9:  "DotNet Developer",
	10: "ETL Developer",
	11: "Electrical Engineering",
	12: "HR",
	13: "Hadoop",
	14: "Health and fitness",
	15: "Java Developer",
	16: "Mechanical Engineer",
	17: "Network Security Engineer",
	18: "Operations Manager",
	19: "PMO",
	20: "Python Developer",
	21: "SAP Developer",
	22: "Sales",
	23: "Testing",
	24: "Web Designing",
}

type Category struct {
	ID    CategoryID `json:"id"`
	Label string     `json:"label"`
}

// ResolveCategory is total: ids outside the table map to UnknownCategory.
func ResolveCategory(id CategoryID) string {
	label, ok := categoryLabels[id]
	if !ok {
		return UnknownCategory
	}
	return label
}

// Categories returns the table ordered by id.
func Categories() []Category {
	out := make([]Category, 0, len(categoryLabels))
	for id, label := range categoryLabels {
		out = append(out, Category{ID: id, Label: label})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
