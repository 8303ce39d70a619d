package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/mazecar/component"
)

// RGB color definitions
var (
	RgbBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbArenaEdge  = tcell.NewRGBColor(80, 80, 100)   // Muted slate
	RgbObstacle   = tcell.NewRGBColor(100, 150, 255) // Normal Blue
	RgbDecoration = tcell.NewRGBColor(50, 50, 50)    // Very dark gray

	RgbCarBody    = tcell.NewRGBColor(255, 165, 0)   // Orange
	RgbCarTurning = tcell.NewRGBColor(255, 80, 80)   // Normal Red
	RgbFeeler     = tcell.NewRGBColor(50, 255, 50)   // Bright Green
	RgbHead       = tcell.NewRGBColor(255, 255, 255) // Bright white

	RgbStatusBg     = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStatusText   = tcell.NewRGBColor(0, 0, 0)       // Dark text for status
	RgbStatusPaused = tcell.NewRGBColor(200, 50, 50)   // Red pause badge
)

// IndicatorGlyph returns the rune drawn at the car center for an indicator
func IndicatorGlyph(i component.Indicator) rune {
	switch i {
	case component.IndicatorLeft:
		return '↺'
	case component.IndicatorRight:
		return '↻'
	case component.IndicatorForward:
		return '▶'
	case component.IndicatorBackward:
		return '◀'
	default:
		return '■'
	}
}

// HeadGlyph approximates the head-bob angle with a slanted stroke
func HeadGlyph(angle float64) rune {
	switch {
	case angle > 13:
		return '/'
	case angle < -13:
		return '\\'
	default:
		return '|'
	}
}

// CarColor returns the body color for the car's turn phase
func CarColor(p component.TurnPhase) tcell.Color {
	if p == component.TurnIdle {
		return RgbCarBody
	}
	return RgbCarTurning
}
