// Copyright © 2026 Ironvale Software
// Use is governed by a BSD-style license found in the LICENSE file.

package physics

// config.go configures a World using a functional-options pattern: a
// Config struct, a package-level default, and small option constructors
// that override one field apiece. LoadConfig additionally unmarshals a
// YAML document as a baseline that Options can then override, since a
// physics core is commonly tuned from a data file rather than recompiled.

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ironvale/phys2d/math/lin"
)

// Config holds all tunables a World needs at creation. Every field has a
// default; zero-value Config{} is never used directly.
type Config struct {
	Gravity      lin.V2  `yaml:"gravity"`
	GravityScale float64 `yaml:"gravity_scale"`
	Friction     float64 `yaml:"friction"`
	TimeScale    float64 `yaml:"time_scale"`
	Paused       bool    `yaml:"is_paused"`

	CellSize float64 `yaml:"spatial_hash_cell_size"`

	LinearSleep  float64 `yaml:"linear_sleep"`
	AngularSleep float64 `yaml:"angular_sleep"`
	SleepTime    float64 `yaml:"sleep_time"`
	WakeImpulse  float64 `yaml:"wake_impulse"`
}

// configDefaults are the package's built-in tunable values.
var configDefaults = Config{
	Gravity:      lin.V2Of(0, 9.8),
	GravityScale: 30,
	Friction:     1,
	TimeScale:    1,
	Paused:       false,
	CellSize:     10,
	LinearSleep:  0.06,
	AngularSleep: 0.11,
	SleepTime:    0.9,
	WakeImpulse:  4.0,
}

// DefaultConfig returns a copy of the built-in default configuration.
func DefaultConfig() Config { return configDefaults }

// Option overrides one or more Config fields. For use with NewWorld.
type Option func(*Config)

// Gravity sets the constant global acceleration vector.
func Gravity(g lin.V2) Option { return func(c *Config) { c.Gravity = g } }

// GravityScale sets the multiplier applied to Gravity during integration.
// Point-attractor acceleration is not scaled by it.
func GravityScale(scale float64) Option { return func(c *Config) { c.GravityScale = scale } }

// Friction sets the default linear damping-per-second applied to moving
// bodies.
func Friction(f float64) Option { return func(c *Config) { c.Friction = f } }

// TimeScale sets the simulation speed multiplier, clamped to [0.1, 2.0] by
// the World on each tick regardless of what is configured here.
func TimeScale(scale float64) Option { return func(c *Config) { c.TimeScale = scale } }

// Paused starts (or leaves) the world paused.
func Paused(paused bool) Option { return func(c *Config) { c.Paused = paused } }

// CellSize sets the uniform spatial hash's cell edge length.
func CellSize(size float64) Option { return func(c *Config) { c.CellSize = size } }

// SleepThresholds sets the four values that govern the Awake<->Sleeping
// state machine.
func SleepThresholds(linear, angular, sleepTime, wakeImpulse float64) Option {
	return func(c *Config) {
		c.LinearSleep = linear
		c.AngularSleep = angular
		c.SleepTime = sleepTime
		c.WakeImpulse = wakeImpulse
	}
}

// LoadConfig reads a YAML document at path into a Config seeded with
// configDefaults, so a file only needs to specify the fields it overrides.
func LoadConfig(path string) (Config, error) {
	cfg := configDefaults
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load physics config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse physics config %q: %w", path, err)
	}
	return cfg, nil
}
