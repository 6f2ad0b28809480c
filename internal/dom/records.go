package dom

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/desertwitch/filetasks/internal/company"
)

// fields reads the text of tagged children of a row.
type fields struct {
	row   *etree.Element
	tag   string
	index int
	err   error
}

func (f *fields) required(tag string) string {
	if f.err != nil {
		return ""
	}

	v, ok := childText(f.row, tag)
	if !ok {
		f.err = fmt.Errorf("(dom) %w: <%s> in <%s> %d", ErrMissingElement, tag, f.tag, f.index)
	}

	return v
}

func (f *fields) optional(tag string) string {
	v, _ := childText(f.row, tag)

	return v
}

func departmentRecord(row *etree.Element, index int) (company.DepartmentRecord, error) {
	f := &fields{row: row, tag: departmentRow, index: index}

	d := company.DepartmentRecord{
		Number:   f.required("DEPT_NO"),
		Name:     f.required("DNOMBRE"),
		Location: f.required("LOC"),
	}

	return d, f.err
}

func employeeRecord(row *etree.Element, index int) (company.EmployeeRecord, error) {
	f := &fields{row: row, tag: employeeRow, index: index}

	e := company.EmployeeRecord{
		Number:     f.required("EMP_NO"),
		Surname:    f.required("APELLIDO"),
		Job:        f.required("OFICIO"),
		Manager:    f.optional("DIR"),
		HireDate:   f.required("FECHA_ALT"),
		Salary:     f.required("SALARIO"),
		Commission: f.optional("COMISION"),
		Department: f.required("DEPT_NO"),
	}

	return e, f.err
}

func childText(e *etree.Element, tag string) (string, bool) {
	c := e.FindElement(".//" + tag)
	if c == nil {
		return "", false
	}

	return strings.TrimSpace(textContent(c)), true
}

// textContent concatenates the character data of e and all of its
// descendants in document order.
func textContent(e *etree.Element) string {
	var b strings.Builder

	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		for _, tok := range e.Child {
			switch t := tok.(type) {
			case *etree.CharData:
				b.WriteString(t.Data)
			case *etree.Element:
				walk(t)
			}
		}
	}
	walk(e)

	return b.String()
}
