// SPDX-License-Identifier: EPL-2.0

// Package catalog describes what can be played: sound and music types, the
// decoded clips they resolve to, and a loader that turns files into clips
// matching a backend's output format.
//
// A Type is plain data. The playback engines only read it, so it can be
// shared freely once built:
//
//	jump := catalog.NewSoundType("jump", "sfx", clipA, clipB)
//	jump.Voices = 4
//
// Catalogs are usually built from a JSON manifest:
//
//	{
//	  "types": [
//	    {"name": "theme", "kind": "music", "category": "music", "files": ["theme.ogg"]},
//	    {"name": "jump", "kind": "sound", "category": "sfx", "voices": 4,
//	     "files": ["jump1.wav", "jump2.wav"]}
//	  ]
//	}
//
// Every file is decoded up front through a Loader, resampled to the loader's
// rate and remixed to its channel count.
package catalog
