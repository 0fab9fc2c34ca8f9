// Package starmap is an interactive galaxy map for [Ebitengine].
//
// It indexes thousands of positioned objects in a quadtree, draws the ones
// inside a pannable, zoomable viewport, and resolves pointer clicks and
// hovers against the same index at interactive frame rates.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	m := starmap.NewMap(starmap.Options{})
//	m.SetGalaxy(galaxy.Demo(2000, 1))
//	starmap.Run(m, starmap.RunConfig{Title: "Galaxy", Width: 900, Height: 900})
//
// To embed the map in your own [ebiten.Game], call [Map.Start] once, then
// [Map.Update] and [Map.Draw] every tick, and call the returned cancel
// function when the map is torn down. Disable ebiten's per-frame screen
// clear: frames in which nothing changed issue no draw calls.
//
// # Objects and the index
//
// An [Object] is a tagged variant: a [KindPoint] coordinate marker or a
// [KindStarSystem] node wrapping a [galaxy.StarSystem]. A new object set
// (from [Map.SetGalaxy] or [Map.SetObjects]) rebuilds the [Quadtree] and the
// id [Index] from scratch.
//
// # Interaction
//
// Pressing the primary button selects the nearest object within
// [DefaultHitTolerance] screen pixels and starts a drag that pans the view.
// Moving without a button updates the hover. A double click on a star system
// fires [Map.OnActivate] handlers. The wheel zooms. [Map.ZoomIn],
// [Map.ZoomOut], [Map.ResetView] and [Map.FocusOn] serve external controls.
//
// Events can be forwarded to an ECS through [Map.SetEventSink]; see the ecs
// sub-package.
//
// [Ebitengine]: https://ebitengine.org
package starmap
