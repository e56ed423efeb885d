package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/ttg/internal/catalog"
)

func (a *App) coursesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "courses [department]",
		Short: "List departments, or the courses of one department",
		Long: `Without arguments, list the departments of the catalog with their codes.
With a department code, list its courses and their sections.

The ids printed in brackets are the ones selection files refer to.

Example:
  ttg courses COMPSCI`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.loadCatalog()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				printDepartments(w, cat)
				return nil
			}
			return printCourses(w, cat, strings.ToUpper(args[0]))
		},
	}
}

func printDepartments(w io.Writer, cat *catalog.Catalog) {
	fmt.Fprintf(w, "=== %s ===\n", formatHeader(schoolName(cat)))
	for _, d := range cat.Departments() {
		fmt.Fprintf(w, "  %-10s %s\n", formatCode(d.Code), d.Name)
	}
}

func printCourses(w io.Writer, cat *catalog.Catalog, department string) error {
	courses, err := cat.Courses(department)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "=== %s ===\n", formatHeader(department))
	for _, c := range courses {
		fmt.Fprintf(w, "%s %s\n", formatMuted("["+c.ID+"]"), formatCode(c.Label(cat.ShowTerm)))
		for _, kind := range c.Kinds() {
			sections, err := cat.Sections(department, c.ID, kind)
			if err != nil {
				return err
			}
			names := make([]string, 0, len(sections))
			for _, s := range sections {
				names = append(names, fmt.Sprintf("%s%s%s", cat.Prefix(kind), s.Name, formatMuted("["+s.ID+"]")))
			}
			fmt.Fprintf(w, "    %-9s %s\n", cat.KindName(kind)+":", strings.Join(names, " "))
		}
	}
	return nil
}
