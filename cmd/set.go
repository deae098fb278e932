package cmd

import (
	"fmt"

	"github.com/lai323/lexis/wordset"
	"github.com/spf13/cobra"
)

// builtinSet is the --use value that goes back to the built-in lessons.
const builtinSet = "builtin"

type setOptions struct {
	Import string
	Name   string
	List   bool
	Show   string
	Delete string
	Use    string
}

func runSet(cmd *cobra.Command, m wordset.WordSetManage, opt setOptions) error {
	out := cmd.OutOrStdout()
	switch {
	case opt.Import != "":
		info, err := m.Import(opt.Import, opt.Name)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "imported %s: %d lessons, %d words\n", info.Name, info.Lessons, info.Words)
		return nil
	case opt.List:
		return wordset.PrintList(out, m)
	case opt.Show != "":
		return wordset.PrintShow(out, m, opt.Show)
	case opt.Delete != "":
		if err := m.Delete(opt.Delete); err != nil {
			return err
		}
		fmt.Fprintf(out, "deleted %s\n", opt.Delete)
		return nil
	case opt.Use == builtinSet:
		if err := m.Use(""); err != nil {
			return err
		}
		fmt.Fprintln(out, "using built-in lessons")
		return nil
	case opt.Use != "":
		if err := m.Use(opt.Use); err != nil {
			return err
		}
		fmt.Fprintf(out, "using %s\n", opt.Use)
		return nil
	}
	return cmd.Help()
}
