// Package musclemap is an interactive 3D muscle-selection viewer for
// [Ebitengine].
//
// A [Viewer] loads a humanoid model (male or female variant) from a glTF
// asset, tags every mesh with a muscle key, and lets the user rotate the
// model by dragging and pick muscles by clicking. The picked muscle, and any
// muscle linked to it such as its left/right twin, glows with an emissive
// highlight until another muscle is picked.
//
// # Quick start
//
//	v, err := musclemap.NewViewer(musclemap.DefaultConfig(), nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	v.OnMuscleSelect(func(key string) {
//		fmt.Println("selected", key)
//	})
//	musclemap.Run(v, musclemap.RunConfig{Title: "Muscle Map"})
//
// [Viewer] implements [ebiten.Game], so it can also be embedded in an
// existing game loop.
//
// # Scene graph
//
// Models are trees of [Node] values. Drawable nodes carry a [Geometry], one
// [Material] per geometry group, and the MuscleKey and MuscleLabel assigned
// by [Annotate]. The scene renders flat-shaded triangles sorted back to
// front through a perspective [Camera] and picks with [Raycast].
//
// # Muscle keys
//
// Keys come from the [Catalog] override table when a mesh name is listed
// there, and otherwise from [NormalizeKey] applied to [PrettifyName] of the
// mesh name. The catalog's link table decides which keys highlight
// together; see [Highlighter].
//
// # Headless use
//
// Input can be injected with [Scene.InjectClick] and [Scene.InjectDrag], or
// scripted with [LoadTestScript]. [Viewer.WaitLoaded] blocks until the
// background load completes. The ecs subpackage forwards selections to a
// [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package musclemap
