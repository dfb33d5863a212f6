package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/odvcencio/gitcore/pkg/object"
	"github.com/spf13/cobra"
)

func newCatFileCmd(a *app) *cobra.Command {
	var showType, showSize, pretty bool
	cmd := &cobra.Command{
		Use:   "cat-file (-t | -s | -p | <type>) <object>",
		Short: "Show the type, size or content of an object",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			modes := 0
			for _, set := range []bool{showType, showSize, pretty, len(args) == 2} {
				if set {
					modes++
				}
			}
			if modes != 1 {
				return fmt.Errorf("cat-file: give exactly one of -t, -s, -p or a type")
			}

			r, err := a.openRepo()
			if err != nil {
				return err
			}
			defer r.Close()

			name := args[len(args)-1]
			h, err := r.ResolveRef(name)
			if err != nil {
				return err
			}
			obj, err := r.GetObject(h)
			if err != nil {
				return err
			}
			if obj == nil {
				return fmt.Errorf("cat-file: %s: %w", name, object.ErrNotFound)
			}

			out := cmd.OutOrStdout()
			switch {
			case showType:
				fmt.Fprintln(out, obj.Type())
			case showSize:
				fmt.Fprintln(out, len(obj.Serialize()))
			case pretty:
				return prettyPrint(out, obj)
			default:
				want, err := object.ParseType(args[0])
				if err != nil {
					return err
				}
				if obj.Type() != want {
					return fmt.Errorf("cat-file %s: %w: is a %s", name, object.ErrTypeMismatch, obj.Type())
				}
				_, err = out.Write(obj.Serialize())
				return err
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&showType, "type", "t", false, "show the object type")
	cmd.Flags().BoolVarP(&showSize, "size", "s", false, "show the object size")
	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "pretty-print the object content")
	return cmd
}

// prettyPrint writes trees one entry per line the way git ls-tree does and
// every other type as its raw payload.
func prettyPrint(w io.Writer, obj object.Object) error {
	tree, ok := obj.(*object.Tree)
	if !ok {
		_, err := w.Write(obj.Serialize())
		return err
	}
	for _, e := range tree.Entries {
		kind := object.TypeBlob
		switch {
		case e.IsDir():
			kind = object.TypeTree
		case e.IsSubmodule():
			kind = object.TypeCommit
		}
		mode := e.Mode
		if len(mode) < 6 {
			mode = strings.Repeat("0", 6-len(mode)) + mode
		}
		if _, err := fmt.Fprintf(w, "%s %s %s\t%s\n", mode, kind, e.Hash, e.Name); err != nil {
			return err
		}
	}
	return nil
}
