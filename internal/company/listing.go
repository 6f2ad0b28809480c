package company

import (
	"bufio"
	"fmt"
	"io"
)

// WriteListing writes a human-readable listing of a [Company]: every
// department with its number, name and location, followed by the surname,
// job, salary and commission of each of its employees.
func WriteListing(w io.Writer, c *Company) error {
	bw := bufio.NewWriter(w)

	if c.Title != "" {
		fmt.Fprintf(bw, "%s\n\n", c.Title)
	}

	for i, d := range c.Departments {
		fmt.Fprintf(bw, "Department %d:\n", i+1)
		fmt.Fprintf(bw, "    Number: %s\n", d.ID)
		fmt.Fprintf(bw, "    Name: %s\n", d.Name)
		fmt.Fprintf(bw, "    Location: %s\n", d.Location)
		fmt.Fprintln(bw)

		for _, e := range d.Employees {
			fmt.Fprintf(bw, "        Surname: %s\n", e.Surname)
			fmt.Fprintf(bw, "        Job: %s\n", e.Job)
			fmt.Fprintf(bw, "        Salary: %s\n", e.Salary)
			fmt.Fprintf(bw, "        Commission: %s\n", e.Commission)
			fmt.Fprintln(bw)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("(company) failed to write listing: %w", err)
	}

	return nil
}
