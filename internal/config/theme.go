package config

// ColorScheme defines all configurable color values
type ColorScheme struct {
	// Preset name ("default" or "monochrome")
	Preset string `yaml:"preset"`

	Accent string `yaml:"accent"`

	ColumnBorder   string `yaml:"column_border"`
	TaskBorder     string `yaml:"task_border"`
	SelectedBorder string `yaml:"selected_border"`

	Title  string `yaml:"title"`
	Subtle string `yaml:"subtle"`
	Normal string `yaml:"normal"`

	InfoFg  string `yaml:"info_fg"`
	ErrorFg string `yaml:"error_fg"`
}

// DefaultColorScheme returns the default color scheme (purple theme)
func DefaultColorScheme() ColorScheme {
	return ColorScheme{
		Preset:         "default",
		Accent:         "#874BFD",
		ColumnBorder:   "#5F87D7",
		TaskBorder:     "#585858",
		SelectedBorder: "#D75FD7",
		Title:          "#D75FD7",
		Subtle:         "#585858",
		Normal:         "#D0D0D0",
		InfoFg:         "#00AFFF",
		ErrorFg:        "#FF0000",
	}
}

// MonochromeColorScheme returns a black and white color scheme
func MonochromeColorScheme() ColorScheme {
	return ColorScheme{
		Preset:         "monochrome",
		Accent:         "#FFFFFF",
		ColumnBorder:   "#808080",
		TaskBorder:     "#606060",
		SelectedBorder: "#FFFFFF",
		Title:          "#FFFFFF",
		Subtle:         "#808080",
		Normal:         "#D0D0D0",
		InfoFg:         "#FFFFFF",
		ErrorFg:        "#FFFFFF",
	}
}

// GetPreset returns a preset color scheme by name
func GetPreset(name string) ColorScheme {
	if name == "monochrome" {
		return MonochromeColorScheme()
	}
	return DefaultColorScheme()
}

func (c *ColorScheme) fields() []*string {
	return []*string{
		&c.Accent, &c.ColumnBorder, &c.TaskBorder, &c.SelectedBorder,
		&c.Title, &c.Subtle, &c.Normal, &c.InfoFg, &c.ErrorFg,
	}
}

// ApplyDefaults fills in missing color values from the selected preset
func (c *ColorScheme) ApplyDefaults() {
	preset := GetPreset(c.Preset)
	if c.Preset == "" {
		c.Preset = preset.Preset
	}
	want := preset.fields()
	for i, field := range c.fields() {
		if *field == "" {
			*field = *want[i]
		}
	}
}

// MergeFrom overrides colors with the non-empty values of other
func (c *ColorScheme) MergeFrom(other ColorScheme) {
	if other.Preset != "" {
		c.Preset = other.Preset
	}
	src := other.fields()
	for i, field := range c.fields() {
		if *src[i] != "" {
			*field = *src[i]
		}
	}
}
