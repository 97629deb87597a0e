package game

import "github.com/tomz197/snake/internal/grid"

// HandleIntent applies one player command to the current phase. Intents
// that mean nothing in the current phase are ignored. Returns whether the
// intent had an effect.
func (g *Game) HandleIntent(in Intent) bool {
	if in == IntentExit {
		if g.sessionLive() {
			g.endSession()
		}
		g.emit(Event{Type: EventExited})
		return true
	}

	switch g.state {
	case StateMenu:
		return g.handleMenuIntent(in)
	case StatePlaying:
		return g.handlePlayingIntent(in)
	case StatePaused:
		return g.handlePausedIntent(in)
	case StateGameOver:
		return g.handleGameOverIntent(in)
	}
	return false
}

// handleMenuIntent handles the title screen.
func (g *Game) handleMenuIntent(in Intent) bool {
	switch in {
	case IntentConfirm, IntentRestart:
		g.startSession()
		return true
	case IntentToggleMode:
		if g.mode == ModeNormal {
			return g.SetMode(ModeObstacle)
		}
		return g.SetMode(ModeNormal)
	case IntentToggleSound:
		g.emit(Event{Type: EventSoundToggled})
		return true
	}
	return false
}

// handlePlayingIntent handles steering, pausing and leaving a live session.
func (g *Game) handlePlayingIntent(in Intent) bool {
	switch in {
	case IntentTurnUp:
		return g.snake.ChangeDirection(grid.Up)
	case IntentTurnDown:
		return g.snake.ChangeDirection(grid.Down)
	case IntentTurnLeft:
		return g.snake.ChangeDirection(grid.Left)
	case IntentTurnRight:
		return g.snake.ChangeDirection(grid.Right)
	case IntentPause:
		g.setState(StatePaused)
		return true
	case IntentCancel:
		// Abandoning a run finishes it: the score is committed and recorded
		// as if the snake had crashed, so Escape never discards a new best.
		g.endSession()
		g.setState(StateMenu)
		return true
	}
	return false
}

// handlePausedIntent handles the pause overlay. The pause key toggles.
func (g *Game) handlePausedIntent(in Intent) bool {
	switch in {
	case IntentResume, IntentPause:
		g.setState(StatePlaying)
		return true
	case IntentCancel:
		g.endSession()
		g.setState(StateMenu)
		return true
	}
	return false
}

// handleGameOverIntent handles the restart prompt.
func (g *Game) handleGameOverIntent(in Intent) bool {
	switch in {
	case IntentConfirm, IntentRestart:
		g.startSession()
		return true
	case IntentCancel:
		g.setState(StateMenu)
		return true
	}
	return false
}
