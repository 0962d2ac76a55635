package checkpointer

import "fmt"

// Namer returns the file to save a checkpoint in, given the number of
// episodes completed
type Namer func(episode int) string

// Fixed returns a Namer which always returns path, so that each
// checkpoint replaces the previous one
func Fixed(path string) Namer {
	return func(int) string {
		return path
	}
}

// EpisodeNamer returns a Namer which appends the episode number to
// filename, e.g. q_table-100.gob, q_table-200.gob, ...
func EpisodeNamer(filename, extension string) Namer {
	return func(episode int) string {
		return fmt.Sprintf("%v-%v%v", filename, episode, extension)
	}
}
