// Package nav holds the camera-target navigation state of the room.
//
// The package defines the closed set of named viewpoints and the state that
// selects between them:
//
//   - [TargetID]: one of the named views (default, leftMonitor, ...)
//   - [CameraPose]: a position plus a look-at point
//   - [Registry]: immutable TargetID -> CameraPose table, validated once
//   - [Store]: the current target, changed only through [Store.SetTarget]
//
// # Example
//
//	reg := nav.DefaultRegistry()
//	store := nav.NewStore(reg, nav.WithLogger(logger))
//	store.Subscribe(onboarding)
//	_ = store.SetTarget(nav.LeftMonitor)
//
// # Thread Safety
//
// Store reads are snapshot reads behind an RWMutex, so the render loop never
// observes a partially written target. Subscribers are invoked synchronously
// on the writer's goroutine after the lock is released.
package nav
