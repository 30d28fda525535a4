package model

// Action is a human-friendly operating mode for an hour.
// Keep these values stable; they are intended for CSV output.
type Action string

const (
	ActionOperating Action = "OPERATING"
	ActionIdle      Action = "IDLE"
)

func ActionFromOperate(operate bool) Action {
	if operate {
		return ActionOperating
	}
	return ActionIdle
}
