package eval

import (
	"turtlescript/console/pkg/script/ast"
	"turtlescript/console/pkg/script/env"
)

// Defaults used when a turtle parameter is omitted or zero.
const (
	DefaultDistance = 20.0
	DefaultAngle    = 90.0
	DefaultRadius   = 20.0
)

func defaultParam(a ast.Action) float64 {
	switch a {
	case ast.ActionLeft, ast.ActionRight:
		return DefaultAngle
	case ast.ActionCircle, ast.ActionCenteredCircle:
		return DefaultRadius
	}
	return DefaultDistance
}

// turtle forwards a turtle action to the device.
func (r *run) turtle(e *env.Environment, n *ast.Node) {
	var num float64
	var text string

	switch n.Action.Param() {
	case ast.ParamNumber:
		if n.Value != nil {
			num = r.evalNumber(e, n.Value)
		}
		if num == 0 {
			num = defaultParam(n.Action)
		}
	case ast.ParamString:
		if n.Value != nil {
			text = r.evalString(e, n.Value)
		}
	}

	d := r.in.device
	switch n.Action {
	case ast.ActionForward:
		d.Forward(num)
	case ast.ActionBackward:
		d.Backward(num)
	case ast.ActionLeft:
		d.TurnLeft(num)
	case ast.ActionRight:
		d.TurnRight(num)
	case ast.ActionPenUp:
		d.PenUp()
	case ast.ActionPenDown:
		d.PenDown()
	case ast.ActionShow:
		d.Show()
	case ast.ActionHide:
		d.Hide()
	case ast.ActionWrite:
		d.WriteText(text)
	case ast.ActionCircle:
		d.Circle(num)
	case ast.ActionCenteredCircle:
		d.CenteredCircle(num)
	case ast.ActionHome:
		d.Home()
	case ast.ActionClear:
		d.Clear()
	case ast.ActionReset:
		d.Reset()
	default:
		fail(n, "turtle action "+string(n.Action))
	}

	r.in.observer.ObserveTurtle(n.Action)
}
