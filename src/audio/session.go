package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ----- Session ----- //

// Session is one renderable file: settings plus either a step sequence or a single
// continuous duration.
type Session struct {
	Name     string   `yaml:"-"`
	Output   string   `yaml:"output,omitempty"`
	Duration float64  `yaml:"duration,omitempty"` // seconds, used when Steps is empty
	FadeIn   float64  `yaml:"fade_in,omitempty"`  // seconds
	FadeOut  float64  `yaml:"fade_out,omitempty"` // seconds
	Settings Settings `yaml:"settings"`
	Steps    []Step   `yaml:"steps,omitempty"`
}

// ParseSession decodes a session from YAML or JSON.
func ParseSession(data []byte) (*Session, error) {
	s := &Session{Settings: DefaultSettings()}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadSession reads a session file. The session is named after the file.
func LoadSession(path string) (*Session, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := ParseSession(bytes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	base := filepath.Base(path)
	s.Name = base[:len(base)-len(filepath.Ext(base))]
	return s, nil
}

// Render synthesizes the session with a Synthesizer of its own and applies its fades.
func (s *Session) Render(ctx context.Context, opts ...Option) (Buffer, error) {
	if !nonNegative(s.FadeIn) || !nonNegative(s.FadeOut) {
		return nil, fmt.Errorf("%w: fade %v / %v", ErrInvalidDuration, s.FadeIn, s.FadeOut)
	}
	synth, err := NewSynthesizer(s.Settings, opts...)
	if err != nil {
		return nil, err
	}
	var buf Buffer
	if len(s.Steps) > 0 {
		buf, err = synth.RenderSteps(ctx, s.Steps)
	} else {
		buf, err = synth.RenderContinuous(s.Duration)
	}
	if err != nil {
		return nil, err
	}
	ApplyFade(buf, s.Settings.SampleRate, s.FadeIn, s.FadeOut)
	return buf, nil
}

// OutputPath returns Output, or the session name with a .wav extension.
func (s *Session) OutputPath() string {
	if s.Output != "" {
		return s.Output
	}
	return s.Name + ".wav"
}

// ----- Session Manager ----- //

type sessionMetaYAML struct {
	Name string `yaml:"name"`
}
type sessionMetaListYAML struct {
	Items []sessionMetaYAML `yaml:"items"`
}

// SessionManager loads sessions listed in <dir>/_list.yaml.
type SessionManager struct {
	dir  string
	list []string
}

// NewSessionManager returns a manager for dir. Nothing is read until List or Load.
func NewSessionManager(dir string) *SessionManager {
	return &SessionManager{
		dir: dir,
	}
}

// List returns the session names in list order.
func (sm *SessionManager) List() ([]string, error) {
	if sm.list == nil {
		if err := sm.loadList(); err != nil {
			return nil, err
		}
	}
	return sm.list, nil
}

// Load reads the session called name from the directory.
func (sm *SessionManager) Load(name string) (*Session, error) {
	s, err := LoadSession(filepath.Join(sm.dir, name+".yaml"))
	if err != nil {
		return nil, err
	}
	if s.Output != "" && !filepath.IsAbs(s.Output) {
		s.Output = filepath.Join(sm.dir, s.Output)
	}
	if s.Output == "" {
		s.Output = filepath.Join(sm.dir, name+".wav")
	}
	return s, nil
}

func (sm *SessionManager) loadList() error {
	bytes, err := os.ReadFile(filepath.Join(sm.dir, "_list.yaml"))
	if err != nil {
		return err
	}
	var metaList sessionMetaListYAML
	if err := yaml.Unmarshal(bytes, &metaList); err != nil {
		return err
	}
	sm.list = make([]string, 0, len(metaList.Items))
	for _, item := range metaList.Items {
		if item.Name == "" {
			return fmt.Errorf("%s: session entry without a name", sm.dir)
		}
		sm.list = append(sm.list, item.Name)
	}
	return nil
}
