// SPDX-License-Identifier: EPL-2.0

// Package volume holds the pure math used to mix and fade playback volumes.
//
// Volumes live in two domains. Backends take a linear amplitude in [0,1],
// while layers (master, channel, per-type) are combined and adjusted in
// decibels so that changing one layer rescales every dependent volume by
// the same ratio:
//
//	db := volume.ToDB(0.5)        // ≈ -6.02
//	v := volume.FromDB(db)        // 0.5
//	v = volume.Shift(v, 6.0206)   // ≈ 0.25, one layer dropped by 6 dB
//
// User-facing faders are linear; Perceived maps them onto the power curve
// that makes a linear slider sound linear:
//
//	volume.Perceived(0.5, 2) // 0.25
//
// EaseIn and EaseOut shape fade-ins and fade-outs with the same exponent.
//
// Every function here is pure, total and monotonic on [0,1]. Inputs are
// clamped, never rejected.
package volume
