// Package lock provides per-game locking so that settlement and
// cancellation for the same game never run concurrently. Different games
// proceed independently.
package lock

import (
	"sync"
)

// GameLock hands out one mutex per game ID.
type GameLock struct {
	locks sync.Map // map[uint]*sync.Mutex
}

// NewGameLock creates a new GameLock instance.
func NewGameLock() *GameLock {
	return &GameLock{}
}

func (gl *GameLock) getLock(gameID uint) *sync.Mutex {
	if v, ok := gl.locks.Load(gameID); ok {
		return v.(*sync.Mutex)
	}
	actual, _ := gl.locks.LoadOrStore(gameID, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// Lock acquires the lock for a game.
func (gl *GameLock) Lock(gameID uint) {
	gl.getLock(gameID).Lock()
}

// Unlock releases the lock for a game.
func (gl *GameLock) Unlock(gameID uint) {
	if v, ok := gl.locks.Load(gameID); ok {
		v.(*sync.Mutex).Unlock()
	}
}

// TryLock attempts to acquire the lock without blocking.
func (gl *GameLock) TryLock(gameID uint) bool {
	return gl.getLock(gameID).TryLock()
}

// WithLock executes fn while holding the game's lock.
func (gl *GameLock) WithLock(gameID uint, fn func() error) error {
	gl.Lock(gameID)
	defer gl.Unlock(gameID)
	return fn()
}
