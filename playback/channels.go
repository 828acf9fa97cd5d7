// SPDX-License-Identifier: EPL-2.0

package playback

import "github.com/ik5/audmix/volume"

// ChannelVolumes holds the master fader and one fader per channel. Raw
// values are what callers set; perceived values are raw^LoudnessExponent
// as of the last set and are what playing instances have baked in.
// Unset channels sit at 1.
type ChannelVolumes struct {
	settings *Settings

	master          float64
	masterPerceived float64

	raw       map[int]float64
	perceived map[int]float64
}

func NewChannelVolumes(settings *Settings) *ChannelVolumes {
	return &ChannelVolumes{
		settings:        settings,
		master:          1,
		masterPerceived: 1,
		raw:             make(map[int]float64),
		perceived:       make(map[int]float64),
	}
}

// SetMaster stores raw and returns the decibel delta, old minus new, that
// dependents must subtract from their volume.
func (c *ChannelVolumes) SetMaster(raw float64) float64 {
	raw = volume.Clamp(raw, 0, 1)
	perceived := volume.Perceived(raw, c.settings.LoudnessExponent)
	delta := volume.ToDB(c.masterPerceived) - volume.ToDB(perceived)

	c.master, c.masterPerceived = raw, perceived
	return delta
}

// SetChannel is SetMaster for one channel.
func (c *ChannelVolumes) SetChannel(channel int, raw float64) float64 {
	raw = volume.Clamp(raw, 0, 1)
	perceived := volume.Perceived(raw, c.settings.LoudnessExponent)
	delta := volume.ToDB(c.ChannelPerceived(channel)) - volume.ToDB(perceived)

	c.raw[channel], c.perceived[channel] = raw, perceived
	return delta
}

func (c *ChannelVolumes) Master() float64          { return c.master }
func (c *ChannelVolumes) MasterPerceived() float64 { return c.masterPerceived }

func (c *ChannelVolumes) Channel(channel int) float64 {
	if v, ok := c.raw[channel]; ok {
		return v
	}
	return 1
}

func (c *ChannelVolumes) ChannelPerceived(channel int) float64 {
	if v, ok := c.perceived[channel]; ok {
		return v
	}
	return 1
}

// Gain is the product of the master and channel layers for channel.
func (c *ChannelVolumes) Gain(channel int) float64 {
	return c.masterPerceived * c.ChannelPerceived(channel)
}
