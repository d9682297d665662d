package nscp

import (
	"fmt"
	"sort"
	"strings"
)

// PhiTensionYield is the resistance factor for tensile yielding on the gross
// section, NSCP 2015 Section 504.2
const PhiTensionYield = 0.90

// SteelGrade is a structural steel with its minimum yield and tensile strengths
type SteelGrade struct {
	Name string
	Fy   float64 // MPa
	Fu   float64 // MPa
}

// SteelGrades lists common structural steels by lowercase name
var SteelGrades = map[string]SteelGrade{
	"a36":      {Name: "ASTM A36", Fy: 248, Fu: 400},
	"a572-50":  {Name: "ASTM A572 Grade 50", Fy: 345, Fu: 450},
	"a992":     {Name: "ASTM A992", Fy: 345, Fu: 450},
	"a500-b":   {Name: "ASTM A500 Grade B", Fy: 290, Fu: 400},
	"a53-b":    {Name: "ASTM A53 Grade B", Fy: 240, Fu: 415},
	"ss400":    {Name: "JIS G3101 SS400", Fy: 245, Fu: 400},
	"a709-50w": {Name: "ASTM A709 Grade 50W", Fy: 345, Fu: 485},
}

// LookupSteel finds a grade by name, ignoring case
func LookupSteel(name string) (SteelGrade, error) {
	g, ok := SteelGrades[strings.ToLower(name)]
	if !ok {
		names := make([]string, 0, len(SteelGrades))
		for k := range SteelGrades {
			names = append(names, k)
		}
		sort.Strings(names)
		return SteelGrade{}, fmt.Errorf("unknown steel grade %q (known: %s)", name, strings.Join(names, ", "))
	}
	return g, nil
}

// MemberCapacity returns the design axial strength φt·Fy·Ag (N) of a member
// with gross area ag (mm²), the force every member of the truss may carry.
func MemberCapacity(fy, ag float64) (float64, error) {
	if !(fy > 0) || !(ag > 0) {
		return 0, fmt.Errorf("yield strength and area must be positive: fy=%g, area=%g", fy, ag)
	}
	return PhiTensionYield * fy * ag, nil
}
