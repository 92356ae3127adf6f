package audio

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ----- Settings YAML ----- //

type settingsYAML struct {
	Enabled      bool          `yaml:"enabled"`
	SampleRate   int           `yaml:"sample_rate"`
	Mode         string        `yaml:"mode,omitempty"`
	IsBinaural   *bool         `yaml:"is_binaural,omitempty"`
	IsIsochronic *bool         `yaml:"is_isochronic,omitempty"`
	BeatFreq     float64       `yaml:"beat_freq"`
	CarrierFreq  float64       `yaml:"carrier_freq"`
	EnableRFM    bool          `yaml:"enable_rfm"`
	RFMRange     float64       `yaml:"rfm_range"`
	RFMSpeed     float64       `yaml:"rfm_speed"`
	Noise        *noiseYAML    `yaml:"noise,omitempty"`
	EnablePink   bool          `yaml:"enable_pink_noise,omitempty"`
	PinkVolume   *float64      `yaml:"pink_noise_volume,omitempty"`
	Carriers     []carrierYAML `yaml:"carriers,omitempty"`
	Seed         int64         `yaml:"seed,omitempty"`
}

type carrierYAML struct {
	Enabled    bool    `yaml:"enabled"`
	StartFreq  float64 `yaml:"start_freq"`
	EndFreq    float64 `yaml:"end_freq"`
	Volume     float64 `yaml:"volume"`
	EnableRFM  bool    `yaml:"enable_rfm"`
	RFMRange   float64 `yaml:"rfm_range"`
	RFMSpeed   float64 `yaml:"rfm_speed"`
	InheritRFM bool    `yaml:"inherit_rfm,omitempty"`
}

type noiseYAML struct {
	Enabled bool    `yaml:"enabled"`
	Kind    string  `yaml:"kind"`
	Level   float64 `yaml:"level"`
}

type oscillatorYAML struct {
	StartFreq float64 `yaml:"start_freq"`
	EndFreq   float64 `yaml:"end_freq"`
}

type stepYAML struct {
	Duration    float64          `yaml:"duration"`
	Oscillators []oscillatorYAML `yaml:"oscillators"`
	Carriers    []carrierYAML    `yaml:"carriers,omitempty"`
	Noise       *noiseYAML       `yaml:"noise,omitempty"`
}

func newSettingsYAML() settingsYAML {
	d := DefaultSettings()
	return settingsYAML{
		Enabled:     d.Enabled,
		SampleRate:  d.SampleRate,
		BeatFreq:    d.BeatFreq,
		CarrierFreq: d.CarrierFreq,
		RFMRange:    d.RFM.Range,
		RFMSpeed:    d.RFM.Speed,
	}
}

func (j *carrierYAML) UnmarshalYAML(value *yaml.Node) error {
	type plain carrierYAML
	d := DefaultCarrier()
	p := plain{
		Enabled:   d.Enabled,
		StartFreq: d.StartFreq,
		EndFreq:   d.EndFreq,
		Volume:    d.Volume,
		RFMRange:  d.RFMRange,
		RFMSpeed:  d.RFMSpeed,
	}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*j = carrierYAML(p)
	return nil
}

func (j *noiseYAML) UnmarshalYAML(value *yaml.Node) error {
	type plain noiseYAML
	p := plain{Enabled: true, Kind: NoisePink.String(), Level: defaultNoiseLevel}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*j = noiseYAML(p)
	return nil
}

func (j carrierYAML) toCarrier() Carrier {
	return Carrier{
		Enabled:    j.Enabled,
		StartFreq:  j.StartFreq,
		EndFreq:    j.EndFreq,
		Volume:     j.Volume,
		RFMEnabled: j.EnableRFM,
		RFMRange:   j.RFMRange,
		RFMSpeed:   j.RFMSpeed,
		InheritRFM: j.InheritRFM,
	}
}

func carrierToYAML(c Carrier) carrierYAML {
	return carrierYAML{
		Enabled:    c.Enabled,
		StartFreq:  c.StartFreq,
		EndFreq:    c.EndFreq,
		Volume:     c.Volume,
		EnableRFM:  c.RFMEnabled,
		RFMRange:   c.RFMRange,
		RFMSpeed:   c.RFMSpeed,
		InheritRFM: c.InheritRFM,
	}
}

func carriersFromYAML(items []carrierYAML) []Carrier {
	if items == nil {
		return nil
	}
	carriers := make([]Carrier, len(items))
	for i, item := range items {
		carriers[i] = item.toCarrier()
	}
	return carriers
}

func carriersToYAML(carriers []Carrier) []carrierYAML {
	if carriers == nil {
		return nil
	}
	items := make([]carrierYAML, len(carriers))
	for i, c := range carriers {
		items[i] = carrierToYAML(c)
	}
	return items
}

func (j *noiseYAML) toNoise() (NoiseSettings, error) {
	kind, err := NoiseKindFromString(j.Kind)
	if err != nil {
		return NoiseSettings{}, err
	}
	return NoiseSettings{Enabled: j.Enabled, Kind: kind, Level: j.Level}, nil
}

func noiseToYAML(n NoiseSettings) *noiseYAML {
	return &noiseYAML{Enabled: n.Enabled, Kind: n.Kind.String(), Level: n.Level}
}

// mode resolves the mode name, falling back to the legacy boolean flags.
func (j *settingsYAML) mode() (Mode, error) {
	if j.Mode != "" {
		return ModeFromString(j.Mode)
	}
	if j.IsBinaural == nil && j.IsIsochronic == nil {
		return ModeBinaural, nil
	}
	if j.IsBinaural != nil && *j.IsBinaural {
		return ModeBinaural, nil
	}
	if j.IsIsochronic != nil && *j.IsIsochronic {
		return ModeIsochronic, nil
	}
	return ModeMonaural, nil
}

func (j *settingsYAML) toSettings() (Settings, error) {
	mode, err := j.mode()
	if err != nil {
		return Settings{}, err
	}
	s := Settings{
		Enabled:     j.Enabled,
		SampleRate:  j.SampleRate,
		Mode:        mode,
		BeatFreq:    j.BeatFreq,
		CarrierFreq: j.CarrierFreq,
		RFM:         RFMSettings{Enabled: j.EnableRFM, Range: j.RFMRange, Speed: j.RFMSpeed},
		Noise:       NoiseSettings{Kind: NoisePink, Level: defaultNoiseLevel},
		Carriers:    carriersFromYAML(j.Carriers),
		Seed:        j.Seed,
	}
	switch {
	case j.Noise != nil:
		if s.Noise, err = j.Noise.toNoise(); err != nil {
			return Settings{}, err
		}
	case j.EnablePink:
		s.Noise.Enabled = true
		if j.PinkVolume != nil {
			s.Noise.Level = *j.PinkVolume
		}
	}
	return s, nil
}

// UnmarshalYAML decodes settings, filling omitted fields with defaults.
func (s *Settings) UnmarshalYAML(value *yaml.Node) error {
	j := newSettingsYAML()
	if err := value.Decode(&j); err != nil {
		return err
	}
	settings, err := j.toSettings()
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*s = settings
	return nil
}

// MarshalYAML encodes settings in the session file layout.
func (s Settings) MarshalYAML() (interface{}, error) {
	return &settingsYAML{
		Enabled:     s.Enabled,
		SampleRate:  s.SampleRate,
		Mode:        s.Mode.String(),
		BeatFreq:    s.BeatFreq,
		CarrierFreq: s.CarrierFreq,
		EnableRFM:   s.RFM.Enabled,
		RFMRange:    s.RFM.Range,
		RFMSpeed:    s.RFM.Speed,
		Noise:       noiseToYAML(s.Noise),
		Carriers:    carriersToYAML(s.Carriers),
		Seed:        s.Seed,
	}, nil
}

// UnmarshalYAML decodes a step.
func (st *Step) UnmarshalYAML(value *yaml.Node) error {
	var j stepYAML
	if err := value.Decode(&j); err != nil {
		return err
	}
	step := Step{
		Duration:    j.Duration,
		Oscillators: make([]Oscillator, len(j.Oscillators)),
		Carriers:    carriersFromYAML(j.Carriers),
	}
	for i, o := range j.Oscillators {
		step.Oscillators[i] = Oscillator{StartFreq: o.StartFreq, EndFreq: o.EndFreq}
	}
	if j.Noise != nil {
		noise, err := j.Noise.toNoise()
		if err != nil {
			return fmt.Errorf("line %d: %w", value.Line, err)
		}
		step.Noise = &noise
	}
	*st = step
	return nil
}

// MarshalYAML encodes a step.
func (st Step) MarshalYAML() (interface{}, error) {
	j := &stepYAML{
		Duration:    st.Duration,
		Oscillators: make([]oscillatorYAML, len(st.Oscillators)),
		Carriers:    carriersToYAML(st.Carriers),
	}
	for i, o := range st.Oscillators {
		j.Oscillators[i] = oscillatorYAML{StartFreq: o.StartFreq, EndFreq: o.EndFreq}
	}
	if st.Noise != nil {
		j.Noise = noiseToYAML(*st.Noise)
	}
	return j, nil
}

// ParseSettings decodes settings from YAML or JSON. An empty document yields
// DefaultSettings.
func ParseSettings(data []byte) (Settings, error) {
	s := DefaultSettings()
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Settings{}, err
	}
	return s, nil
}
