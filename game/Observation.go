package game

import "fmt"

// Observation is a single frame's continuous description of the bird
// and the next two upcoming pipes. Vertical coordinates grow downwards,
// as on the game screen. Horizontal distances are measured from the
// bird to each pipe.
//
// JSON field names match those the game reports its state with.
type Observation struct {
	PlayerY   float64 `json:"player_y"`
	PlayerVel float64 `json:"player_vel"`

	NextPipeDist    float64 `json:"next_pipe_dist_to_player"`
	NextPipeTopY    float64 `json:"next_pipe_top_y"`
	NextPipeBottomY float64 `json:"next_pipe_bottom_y"`

	NextNextPipeDist    float64 `json:"next_next_pipe_dist_to_player"`
	NextNextPipeTopY    float64 `json:"next_next_pipe_top_y"`
	NextNextPipeBottomY float64 `json:"next_next_pipe_bottom_y"`
}

func (o Observation) String() string {
	return fmt.Sprintf("Observation | y: %.2f  |  vel: %.2f  |  pipe: "+
		"(%.2f, %.2f, %.2f)  |  next pipe: (%.2f, %.2f, %.2f)",
		o.PlayerY, o.PlayerVel,
		o.NextPipeDist, o.NextPipeTopY, o.NextPipeBottomY,
		o.NextNextPipeDist, o.NextNextPipeTopY, o.NextNextPipeBottomY)
}
