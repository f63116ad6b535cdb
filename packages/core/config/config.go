package config

// MaxContexts is the number of clusters the E2E framework drives.
const MaxContexts = 2

// DockerRegistry holds private registry credentials for pulling images.
type DockerRegistry struct {
	Server   string
	Username string
	Password string
}

// EffectiveConfig is the fully merged and validated configuration for one
// run. It is built by Resolve and is not modified afterwards.
type EffectiveConfig struct {
	Repo     string
	Selector Selector

	Namespace  string
	Kubeconfig string
	Contexts   []string

	OperatorImage      string
	AdmissionImage     string
	ServerImage        string
	ServerUpgradeImage string
	SyncGatewayImage   string
	StorageClass       string

	CollectLogs bool
	Docker      *DockerRegistry
	EnvFile     string
	Verbose     bool

	// Sources records which layer supplied each option.
	Sources map[string]Source
}

// Values returns the configuration keyed by option name. Unset options are
// omitted.
func (c *EffectiveConfig) Values() Values {
	v := Values{
		OptRepo:               c.Repo,
		OptNamespace:          c.Namespace,
		OptKubeconfig:         c.Kubeconfig,
		OptImage:              c.OperatorImage,
		OptAdmissionImage:     c.AdmissionImage,
		OptServerImage:        c.ServerImage,
		OptServerUpgradeImage: c.ServerUpgradeImage,
		OptSyncGatewayImage:   c.SyncGatewayImage,
		OptStorageClass:       c.StorageClass,
		OptCollectLogs:        c.CollectLogs,
		OptVerbose:            c.Verbose,
	}

	switch s := c.Selector.(type) {
	case Suite:
		v[OptSuite] = s.Name
	case Tests:
		v[OptTest] = append([]string(nil), s.Names...)
	}

	if len(c.Contexts) > 0 {
		v[OptContext] = append([]string(nil), c.Contexts...)
	}
	if c.Docker != nil {
		v[OptDockerServer] = c.Docker.Server
		v[OptDockerUsername] = c.Docker.Username
		v[OptDockerPassword] = c.Docker.Password
	}
	if c.EnvFile != "" {
		v[OptEnvFile] = c.EnvFile
	}
	return v
}
