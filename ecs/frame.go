package ecs

// Frame carries the per-tick context shared by all systems.
type Frame struct {
	DeltaTime float64
	Commands  *Commands
}

func NewFrame(dt float64, commands *Commands) *Frame {
	return &Frame{
		DeltaTime: dt,
		Commands:  commands,
	}
}
