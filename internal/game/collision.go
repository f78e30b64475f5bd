package game

// checkCollision tests the actor against the ground line and the front
// obstacle. Nothing is checked until the first obstacle exists. Obstacles
// behind the front are skipped: with a single actor x and one shared speed
// the actor always reaches the front obstacle first.
func checkCollision(actor *Actor, track *Track, groundY float64) EndCause {
	front, ok := track.Front()
	if !ok {
		return CauseNone
	}

	bounds := actor.Bounds()
	if bounds.Bottom() >= groundY {
		return CauseGround
	}
	if front.Hits(bounds) {
		return CausePipe
	}
	return CauseNone
}
