package types

// Action represents a command the model should execute
type Action interface {
	Type() string
}

// Direction is a caret movement direction
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionLeft     Direction = "left"
	DirectionRight    Direction = "right"
	DirectionHome     Direction = "home"
	DirectionEnd      Direction = "end"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
	DirectionTop      Direction = "top"
	DirectionBottom   Direction = "bottom"
)
