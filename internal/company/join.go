package company

// JoinResult is the outcome of [Join].
type JoinResult struct {
	Company *Company

	// Orphans are employees referencing a department that does not exist.
	Orphans []EmployeeRecord

	// Duplicates are department numbers that occur more than once.
	Duplicates []string
}

// Join nests the employees of a [Source] into their departments, keyed by
// department number. Departments keep their document order, as do the
// employees within each department. A department number occurring more than
// once gives every such department the matching employees.
func Join(src *Source) *JoinResult {
	byDepartment := make(map[string][]EmployeeRecord)
	for _, e := range src.Employees {
		byDepartment[e.Department] = append(byDepartment[e.Department], e)
	}

	result := &JoinResult{
		Company: &Company{
			Title:       src.Title,
			Departments: make([]*Department, 0, len(src.Departments)),
		},
	}

	seen := make(map[string]int, len(src.Departments))

	for _, d := range src.Departments {
		seen[d.Number]++
		if seen[d.Number] == 2 { //nolint:mnd
			result.Duplicates = append(result.Duplicates, d.Number)
		}

		dept := &Department{
			ID:        d.Number,
			Location:  d.Location,
			Name:      d.Name,
			Employees: make([]*Employee, 0, len(byDepartment[d.Number])),
		}

		for _, e := range byDepartment[d.Number] {
			dept.Employees = append(dept.Employees, newEmployee(e))
		}

		result.Company.Departments = append(result.Company.Departments, dept)
	}

	for _, e := range src.Employees {
		if _, ok := seen[e.Department]; !ok {
			result.Orphans = append(result.Orphans, e)
		}
	}

	return result
}
