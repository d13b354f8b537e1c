package cli

import (
	"math"
	"strings"

	"options-strategist/internal/payoff"
)

const (
	diagramWidth  = 64
	diagramHeight = 16
)

// renderDiagram plots the payoff curve as an ASCII chart. Profit region
// renders green, loss region red, with the zero line marked.
func renderDiagram(output *Output, curve []payoff.Point) {
	if len(curve) < 2 {
		return
	}

	minSpot, maxSpot := curve[0].Spot, curve[len(curve)-1].Spot
	minPay, maxPay := curve[0].Payoff, curve[0].Payoff
	for _, p := range curve {
		if p.Payoff < minPay {
			minPay = p.Payoff
		}
		if p.Payoff > maxPay {
			maxPay = p.Payoff
		}
	}
	// Always include the zero line in the vertical range
	if minPay > 0 {
		minPay = 0
	}
	if maxPay < 0 {
		maxPay = 0
	}
	paySpan := maxPay - minPay
	if paySpan == 0 {
		paySpan = 1
	}
	spotSpan := maxSpot - minSpot
	if spotSpan == 0 {
		spotSpan = 1
	}

	// Resample the curve into one payoff per column
	cols := make([]float64, diagramWidth)
	for c := 0; c < diagramWidth; c++ {
		spot := minSpot + spotSpan*float64(c)/float64(diagramWidth-1)
		cols[c] = interpolate(curve, spot)
	}

	rowOf := func(pay float64) int {
		// Row 0 is the top of the chart
		frac := (pay - minPay) / paySpan
		r := int(math.Round(float64(diagramHeight-1) * (1 - frac)))
		if r < 0 {
			r = 0
		}
		if r > diagramHeight-1 {
			r = diagramHeight - 1
		}
		return r
	}
	zeroRow := rowOf(0)

	for r := 0; r < diagramHeight; r++ {
		var sb strings.Builder
		for c := 0; c < diagramWidth; c++ {
			cr := rowOf(cols[c])
			switch {
			case cr == r && cols[c] >= 0:
				sb.WriteString(output.Green("●"))
			case cr == r:
				sb.WriteString(output.Red("●"))
			case r == zeroRow:
				sb.WriteString(output.DimText("─"))
			default:
				sb.WriteString(" ")
			}
		}
		label := ""
		switch r {
		case 0:
			label = output.DimText("  " + FormatCompact(maxPay))
		case zeroRow:
			label = output.DimText("  0")
		case diagramHeight - 1:
			label = output.DimText("  " + FormatCompact(minPay))
		}
		output.Println(sb.String() + label)
	}

	// Spot axis labels
	left := FormatQuantity(int64(math.Round(minSpot)))
	right := FormatQuantity(int64(math.Round(maxSpot)))
	pad := diagramWidth - len(left) - len(right)
	if pad < 1 {
		pad = 1
	}
	output.Println(output.DimText(left + strings.Repeat(" ", pad) + right))
}

// interpolate returns the payoff at spot by linear interpolation
// between the surrounding curve samples.
func interpolate(curve []payoff.Point, spot float64) float64 {
	if spot <= curve[0].Spot {
		return curve[0].Payoff
	}
	last := curve[len(curve)-1]
	if spot >= last.Spot {
		return last.Payoff
	}
	for i := 1; i < len(curve); i++ {
		if curve[i].Spot >= spot {
			a, b := curve[i-1], curve[i]
			if b.Spot == a.Spot {
				return b.Payoff
			}
			t := (spot - a.Spot) / (b.Spot - a.Spot)
			return a.Payoff + t*(b.Payoff-a.Payoff)
		}
	}
	return last.Payoff
}
