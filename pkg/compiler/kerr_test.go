package compiler

import (
	"math"
	"os"
	"testing"

	"github.com/sixpack-lang/sixpack/pkg/natives"
)

// closedFormKerr computes the Boyer-Lindquist Kerr metric components
// directly, independent of the compiler, as an oracle for TestKerrMetricScript.
func closedFormKerr(mass, spin, r, theta float64) (gtt, gtphi, grr, gthth, gphiphi float64) {
	a := spin / mass
	a2 := a * a
	cosTheta := math.Cos(theta)
	sinTheta := math.Sin(theta)
	sin2 := sinTheta * sinTheta
	rho2 := r*r + a2*cosTheta*cosTheta
	delta := r*r - 2*mass*r + a2

	gtt = -(1 - 2*mass*r/rho2)
	gtphi = -2 * mass * r * a * sin2 / rho2
	grr = rho2 / delta
	gthth = rho2
	gphiphi = (r*r + a2 + 2*mass*r*a2*sin2/rho2) * sin2

	return
}

func TestKerrMetricScript(t *testing.T) {
	text, err := os.ReadFile("../../testdata/kerr.sixpack")
	if err != nil {
		t.Fatal(err)
	}

	c := NewCompiler()

	for _, fn := range natives.All() {
		if err := c.AddFunction(fn.Name(), fn.Function); err != nil {
			t.Fatal(err)
		}
	}

	if err := c.AddSourceScript(string(text)); err != nil {
		t.Fatal(err)
	}

	prog, err := c.Compile()
	if err != nil {
		t.Fatal(err)
	}

	const mass, spin, r, theta = 1.0, 0.8, 10.0, math.Pi / 2

	mem := prog.AllocateScalarMemory()

	rAddr, err := prog.GetInputAddress("r")
	if err != nil {
		t.Fatal(err)
	}

	thetaAddr, err := prog.GetInputAddress("theta")
	if err != nil {
		t.Fatal(err)
	}

	mem[rAddr] = r
	mem[thetaAddr] = theta

	prog.RunScalar(mem)

	gtt, gtphi, grr, gthth, gphiphi := closedFormKerr(mass, spin, r, theta)

	want := map[string]float64{
		"g_00": gtt, "g_01": 0, "g_02": 0, "g_03": gtphi,
		"g_10": 0, "g_11": grr, "g_12": 0, "g_13": 0,
		"g_20": 0, "g_21": 0, "g_22": gthth, "g_23": 0,
		"g_30": gtphi, "g_31": 0, "g_32": 0, "g_33": gphiphi,
	}

	for name, expected := range want {
		addr, err := prog.GetOutputAddress(name)
		if err != nil {
			t.Fatalf("output %q: %v", name, err)
		}

		if got := mem[addr]; math.Abs(got-expected) > 1e-12 {
			t.Errorf("output %s = %v, want %v", name, got, expected)
		}
	}
}
