package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/philipparndt/gosketch/internal/solver"
	"github.com/philipparndt/gosketch/pkg/geometry"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// vectorFlag parses "x,y,z"
type vectorFlag geometry.Vector3

var _ pflag.Value = (*vectorFlag)(nil)

func (v *vectorFlag) String() string {
	return fmt.Sprintf("%g,%g,%g", v.X, v.Y, v.Z)
}

func (v *vectorFlag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return fmt.Errorf("expected x,y,z, got %q", s)
	}
	var xyz [3]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("invalid coordinate %q: %w", p, err)
		}
		xyz[i] = f
	}
	*v = vectorFlag(geometry.NewVector3(xyz[0], xyz[1], xyz[2]))
	return nil
}

func (v *vectorFlag) Type() string {
	return "vector"
}

var p1, n1, p2, n2 vectorFlag

var mateCmd = &cobra.Command{
	Use:   "mate",
	Short: "Compute the transform that mates one face onto another",
	Long: `Compute the rigid transform that moves the face through p1 with outward normal n1
onto the face through p2 with normal n2, so the two faces touch back to back.`,
	Args: cobra.NoArgs,
	RunE: runMate,
}

func init() {
	rootCmd.AddCommand(mateCmd)

	mateCmd.Flags().Var(&p1, "p1", "point on the moving face (x,y,z)")
	mateCmd.Flags().Var(&n1, "n1", "normal of the moving face (x,y,z)")
	mateCmd.Flags().Var(&p2, "p2", "point on the target face (x,y,z)")
	mateCmd.Flags().Var(&n2, "n2", "normal of the target face (x,y,z)")
	for _, name := range []string{"p1", "n1", "p2", "n2"} {
		_ = mateCmd.MarkFlagRequired(name)
	}
}

func runMate(cmd *cobra.Command, args []string) error {
	a, na := geometry.Vector3(p1), geometry.Vector3(n1)
	b, nb := geometry.Vector3(p2), geometry.Vector3(n2)
	if na.Length() == 0 || nb.Length() == 0 {
		return fmt.Errorf("normals must be non-zero")
	}

	t := solver.ComputeFaceToFaceMate(a, na, b, nb)
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Mate: %s\n", t)
	fmt.Fprintf(out, "  p1 moves to %s\n", t.Apply(a))
	fmt.Fprintf(out, "  n1 turns to %s\n", t.ApplyVector(na).Normalize())
	m := t.Matrix()
	for row := 0; row < 4; row++ {
		fmt.Fprintf(out, "  [%9.4f %9.4f %9.4f %9.4f]\n", m.At(row, 0), m.At(row, 1), m.At(row, 2), m.At(row, 3))
	}
	return nil
}
