package manifest

// Descriptor is one record of a plin.edn manifest: either a plugin or a
// control directive carrying only configuration.
type Descriptor struct {
	ID      string     `yaml:"id,omitempty" json:"id,omitempty"`
	Entry   string     `yaml:"entry,omitempty" json:"entry,omitempty"`
	Files   []string   `yaml:"files,omitempty" json:"files,omitempty"`
	Type    string     `yaml:"type,omitempty" json:"type,omitempty"`
	Envs    []string   `yaml:"envs,omitempty" json:"envs,omitempty"`
	Modes   []string   `yaml:"modes,omitempty" json:"modes,omitempty"`
	Enabled *bool      `yaml:"enabled,omitempty" json:"enabled,omitempty"`
	Config  *Directive `yaml:"config,omitempty" json:"config,omitempty"`
}

// Directive holds the :config map of a control directive.
type Directive struct {
	IncludePlatform *bool `yaml:"include-platform?,omitempty" json:"include-platform?,omitempty"`
}

// Manifest is an ordered list of descriptors from one or more sources.
// Order is load order and is never changed by filtering.
type Manifest []Descriptor

// TypeCLJS is the only descriptor type the server bootstrap loads.
// Descriptors without a type default to it.
const TypeCLJS = "cljs"

// IsDirective reports whether d is a control directive rather than a plugin.
func (d Descriptor) IsDirective() bool {
	return d.Config != nil
}

// IsEnabled returns the effective enabled flag; absent means enabled.
func (d Descriptor) IsEnabled() bool {
	return d.Enabled == nil || *d.Enabled
}

// ExplicitlyDisabled reports whether the manifest sets :enabled false.
func (d Descriptor) ExplicitlyDisabled() bool {
	return d.Enabled != nil && !*d.Enabled
}

// EffectiveType returns Type, or TypeCLJS when no type is declared.
func (d Descriptor) EffectiveType() string {
	if d.Type == "" {
		return TypeCLJS
	}
	return d.Type
}

// Label is the name shown for d in summaries: its entry, falling back to its id.
func (d Descriptor) Label() string {
	if d.Entry != "" {
		return d.Entry
	}
	return d.ID
}

// DisablesPlatform reports whether d is a directive that opts out of the
// platform manifest.
func (d Descriptor) DisablesPlatform() bool {
	return d.Config != nil && d.Config.IncludePlatform != nil && !*d.Config.IncludePlatform
}
