package config

// Bakefile represents the structure of the bake.yaml packaging descriptor.
type Bakefile struct {
	Name         string      `yaml:"name"`
	Identity     IdentityDTO `yaml:"identity"`
	ToolVersion  string      `yaml:"toolVersion"`
	InstallDir   string      `yaml:"installDir"`
	Dependencies []string    `yaml:"dependencies"`
	Exclusions   []string    `yaml:"exclusions"`
	MSI          MSIDTO      `yaml:"msi"`
}

// IdentityDTO is the source-control identity configured before the build.
type IdentityDTO struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
}

// MSIDTO holds the Windows installer settings.
type MSIDTO struct {
	UpgradeCode string `yaml:"upgradeCode"`
}
