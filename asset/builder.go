package asset

// Builder turns segment text into the ordered clips to play.
type Builder interface {
	Build(text string) ([]Ref, error)
}
