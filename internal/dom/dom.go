// Package dom implements reading of source documents into a node tree and
// the extraction of their department and employee records.
package dom

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/beevik/etree"
	"github.com/desertwitch/filetasks/internal/company"
)

const (
	departmentsTag = "departamentos"
	employeesTag   = "empleados"
	departmentRow  = "DEP_ROW"
	employeeRow    = "EMP_ROW"
	titleTag       = "TITULO"
)

type osProvider interface {
	Open(name string) (*os.File, error)
}

// Handler is the principal implementation for the source document reader.
type Handler struct {
	osHandler osProvider
}

// NewHandler returns a pointer to a new [Handler].
func NewHandler(osHandler osProvider) *Handler {
	return &Handler{
		osHandler: osHandler,
	}
}

// ReadFile reads the source document at path.
func (h *Handler) ReadFile(path string) (*company.Source, error) {
	f, err := h.osHandler.Open(path)
	if err != nil {
		return nil, fmt.Errorf("(dom) failed to open: %w", err)
	}
	defer f.Close()

	src, err := h.Read(f)
	if err != nil {
		return nil, fmt.Errorf("(dom) %s: %w", path, err)
	}

	return src, nil
}

// Read reads a source document from r. Documents in other character
// encodings than UTF-8 are decoded according to their XML declaration.
func (h *Handler) Read(r io.Reader) (*company.Source, error) {
	doc, err := Parse(r)
	if err != nil {
		return nil, err
	}

	return Extract(doc)
}

// Parse reads an XML document from r into a node tree.
func Parse(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = company.CharsetReader

	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("(dom) %w: %w", ErrMalformedDocument, err)
	}

	if doc.Root() == nil {
		return nil, fmt.Errorf("(dom) %w", ErrNoRootElement)
	}

	return doc, nil
}

// Extract collects the department and employee records of a parsed source
// document. Rows are looked up by tag name anywhere below their section and
// fields by tag name anywhere below their row, the first match winning.
func Extract(doc *etree.Document) (*company.Source, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("(dom) %w", ErrNoRootElement)
	}

	departments, err := section(root, departmentsTag)
	if err != nil {
		return nil, err
	}

	employees, err := section(root, employeesTag)
	if err != nil {
		return nil, err
	}

	src := &company.Source{}

	if title := departments.FindElement(".//" + titleTag); title != nil {
		src.Title = strings.TrimSpace(textContent(title))
	}

	for i, row := range departments.FindElements(".//" + departmentRow) {
		d, err := departmentRecord(row, i+1)
		if err != nil {
			return nil, err
		}
		src.Departments = append(src.Departments, d)
	}

	for i, row := range employees.FindElements(".//" + employeeRow) {
		e, err := employeeRecord(row, i+1)
		if err != nil {
			return nil, err
		}
		src.Employees = append(src.Employees, e)
	}

	return src, nil
}

func section(root *etree.Element, tag string) (*etree.Element, error) {
	if root.Tag == tag {
		return root, nil
	}

	e := root.FindElement(".//" + tag)
	if e == nil {
		return nil, fmt.Errorf("(dom) %w: <%s>", ErrMissingSection, tag)
	}

	return e, nil
}
