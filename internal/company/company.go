// Package company implements the records of a company's departments and
// employees. It joins the raw rows read from a source document, binds the
// result to a flat attribute/element XML representation, and renders a
// human-readable listing of it.
package company

import "encoding/xml"

// DepartmentRecord is a raw department row of a source document.
type DepartmentRecord struct {
	Number   string
	Name     string
	Location string
}

// EmployeeRecord is a raw employee row of a source document. Department is
// the foreign key referencing a [DepartmentRecord]'s Number.
type EmployeeRecord struct {
	Number     string
	Surname    string
	Job        string
	Manager    string
	HireDate   string
	Salary     string
	Commission string
	Department string
}

// Source holds the two record collections read from a source document.
type Source struct {
	Title       string
	Departments []DepartmentRecord
	Employees   []EmployeeRecord
}

// Company is the bound representation of a [Source], with every employee
// nested inside its department.
type Company struct {
	XMLName     xml.Name      `xml:"EMPRESA"`
	Title       string        `xml:"TITULO,omitempty"`
	Departments []*Department `xml:"DEPARTAMENTO"`
}

// Department is a bound department.
type Department struct {
	ID        string      `xml:"id,attr"`
	Location  string      `xml:"LOC"`
	Name      string      `xml:"DNOMBRE"`
	Employees []*Employee `xml:"EMPLEADOS>EMPLEADO"`
}

// Employee is a bound employee.
type Employee struct {
	Number     string `xml:"numero,attr"`
	Surname    string `xml:"APELLIDO"`
	Job        string `xml:"OFICIO"`
	Manager    string `xml:"DIR,omitempty"`
	HireDate   string `xml:"FECHA_ALT"`
	Salary     string `xml:"SALARIO"`
	Commission string `xml:"COMISION,omitempty"`
}

// EmployeeCount returns the amount of employees across all departments.
func (c *Company) EmployeeCount() int {
	var n int
	for _, d := range c.Departments {
		n += len(d.Employees)
	}

	return n
}

func newEmployee(r EmployeeRecord) *Employee {
	return &Employee{
		Number:     r.Number,
		Surname:    r.Surname,
		Job:        r.Job,
		Manager:    r.Manager,
		HireDate:   r.HireDate,
		Salary:     r.Salary,
		Commission: r.Commission,
	}
}
