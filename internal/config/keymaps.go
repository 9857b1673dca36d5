package config

// KeyMappings defines all configurable key bindings of the board view
type KeyMappings struct {
	// Tasks
	AddTask       string `yaml:"add_task"`
	DeleteTask    string `yaml:"delete_task"`
	MoveTaskLeft  string `yaml:"move_task_left"`
	MoveTaskRight string `yaml:"move_task_right"`
	MoveTaskUp    string `yaml:"move_task_up"`
	MoveTaskDown  string `yaml:"move_task_down"`

	// Columns
	CreateColumn    string `yaml:"create_column"`
	RenameColumn    string `yaml:"rename_column"`
	DeleteColumn    string `yaml:"delete_column"`
	MoveColumnLeft  string `yaml:"move_column_left"`
	MoveColumnRight string `yaml:"move_column_right"`

	// Navigation
	PrevColumn string `yaml:"prev_column"`
	NextColumn string `yaml:"next_column"`
	PrevTask   string `yaml:"prev_task"`
	NextTask   string `yaml:"next_task"`

	// Other
	Refresh  string `yaml:"refresh"`
	ShowHelp string `yaml:"show_help"`
	Quit     string `yaml:"quit"`
}

// DefaultKeyMappings returns the default key mappings
func DefaultKeyMappings() KeyMappings {
	return KeyMappings{
		AddTask:       "a",
		DeleteTask:    "d",
		MoveTaskLeft:  "H",
		MoveTaskRight: "L",
		MoveTaskUp:    "K",
		MoveTaskDown:  "J",

		CreateColumn:    "C",
		RenameColumn:    "R",
		DeleteColumn:    "X",
		MoveColumnLeft:  "<",
		MoveColumnRight: ">",

		PrevColumn: "h",
		NextColumn: "l",
		PrevTask:   "k",
		NextTask:   "j",

		Refresh:  "r",
		ShowHelp: "?",
		Quit:     "q",
	}
}

func (k *KeyMappings) fields() []*string {
	return []*string{
		&k.AddTask, &k.DeleteTask, &k.MoveTaskLeft, &k.MoveTaskRight, &k.MoveTaskUp, &k.MoveTaskDown,
		&k.CreateColumn, &k.RenameColumn, &k.DeleteColumn, &k.MoveColumnLeft, &k.MoveColumnRight,
		&k.PrevColumn, &k.NextColumn, &k.PrevTask, &k.NextTask,
		&k.Refresh, &k.ShowHelp, &k.Quit,
	}
}

// applyDefaults fills in missing key mappings with defaults
func (k *KeyMappings) applyDefaults() {
	defaults := DefaultKeyMappings()
	want := defaults.fields()
	for i, field := range k.fields() {
		if *field == "" {
			*field = *want[i]
		}
	}
}
