// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package raytrace ties together the kd-tree, primitive, material, and
// light packages into a scene description and recursive shader,
// grounded on original_source/Graphics/ViewableBase.h's scene/camera
// plumbing and the teacher's eng.go/frame.go per-frame render loop.
package raytrace

import (
	"errors"
	"fmt"

	"raytrace/aabb"
	"raytrace/kdtree"
	"raytrace/light"
	"raytrace/material"
	"raytrace/primitive"
	"raytrace/texture"
)

// ErrAlreadyBuilt is returned by AddViewable once BuildKdTree has been
// called; per spec §6, primitives cannot be added after the kd-tree is
// built.
var ErrAlreadyBuilt = errors.New("raytrace: scene already built, cannot add viewables")

// MatID, TexID, and ObjID index into a Scene's material, texture, and
// viewable registries, returned by AddMaterial/AddTexture/AddViewable
// so a loader can refer back to them (e.g. a texture referencing one of
// two materials it switches between).
type MatID int
type TexID int
type ObjID int

// Scene holds everything a render needs: the camera, the light and
// material/texture registries, the viewable primitives, and (after
// BuildKdTree) the spatial index over them.
type Scene struct {
	cfg    *Config
	camera *Camera

	materials []material.Material
	textures  []texture.Texture
	lights    []light.Light
	viewables []primitive.Viewable

	tree  *kdtree.Tree
	built bool
}

// NewScene returns an empty scene using cfg (or NewConfig()'s defaults
// if cfg is nil).
func NewScene(cfg *Config) *Scene {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Scene{cfg: cfg}
}

// SetCamera assigns the scene's camera.
func (s *Scene) SetCamera(c *Camera) { s.camera = c }

// Camera returns the scene's camera, or nil if none has been set.
func (s *Scene) Camera() *Camera { return s.camera }

// SetBackground sets the color returned for rays that hit nothing.
func (s *Scene) SetBackground(col material.Color) { s.cfg.WithBackground(col) }

// SetGlobalAmbient sets the scene-wide ambient light color.
func (s *Scene) SetGlobalAmbient(col material.Color) { s.cfg.WithGlobalAmbient(col) }

// AddMaterial registers m and returns its id.
func (s *Scene) AddMaterial(m material.Material) MatID {
	s.materials = append(s.materials, m)
	return MatID(len(s.materials) - 1)
}

// Material returns the material registered under id.
func (s *Scene) Material(id MatID) material.Material { return s.materials[id] }

// AddTexture registers tex and returns its id.
func (s *Scene) AddTexture(tex texture.Texture) TexID {
	s.textures = append(s.textures, tex)
	return TexID(len(s.textures) - 1)
}

// Texture returns the texture registered under id.
func (s *Scene) Texture(id TexID) texture.Texture { return s.textures[id] }

// AddLight adds a light to the scene.
func (s *Scene) AddLight(l light.Light) { s.lights = append(s.lights, l) }

// AddViewable adds a primitive to the scene and returns its id, used
// later as the kd-tree's object id and as the tracer's "avoid" token.
// Returns ErrAlreadyBuilt once BuildKdTree has run.
func (s *Scene) AddViewable(v primitive.Viewable) (ObjID, error) {
	if s.built {
		return 0, ErrAlreadyBuilt
	}
	s.viewables = append(s.viewables, v)
	return ObjID(len(s.viewables) - 1), nil
}

// BuildKdTree builds the spatial index over every viewable added so
// far. It must be called exactly once, after which AddViewable returns
// ErrAlreadyBuilt (spec §6).
func (s *Scene) BuildKdTree() error {
	if s.built {
		return fmt.Errorf("raytrace: BuildKdTree called twice")
	}
	boxOf := func(id int) aabb.Box { return s.viewables[id].BoundingBox() }
	clipOf := func(id int, box aabb.Box) aabb.Box { return s.viewables[id].ClippedExtent(box) }
	tree, err := kdtree.Build(len(s.viewables), boxOf, clipOf, s.cfg.buildCfg)
	if err != nil {
		return fmt.Errorf("raytrace: build kd-tree: %w", err)
	}
	s.tree = tree
	s.built = true
	return nil
}
