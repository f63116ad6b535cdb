package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Option names. They match the long command line flags and the keys of the
// user config file.
const (
	OptRepo               = "repo"
	OptSuite              = "suite"
	OptTest               = "test"
	OptNamespace          = "namespace"
	OptKubeconfig         = "kubeconfig"
	OptContext            = "context"
	OptImage              = "image"
	OptAdmissionImage     = "admission-controller-image"
	OptServerImage        = "server-image"
	OptServerUpgradeImage = "server-upgrade-image"
	OptSyncGatewayImage   = "sync-gateway-image"
	OptStorageClass       = "storage-class"
	OptCollectLogs        = "collect-logs"
	OptDockerServer       = "docker-server"
	OptDockerUsername     = "docker-username"
	OptDockerPassword     = "docker-password"
	OptEnvFile            = "env-file"
	OptVerbose            = "verbose"
)

// KnownOptions lists every recognized option in display order.
var KnownOptions = []string{
	OptRepo,
	OptSuite,
	OptTest,
	OptNamespace,
	OptKubeconfig,
	OptContext,
	OptImage,
	OptAdmissionImage,
	OptServerImage,
	OptServerUpgradeImage,
	OptSyncGatewayImage,
	OptStorageClass,
	OptCollectLogs,
	OptDockerServer,
	OptDockerUsername,
	OptDockerPassword,
	OptEnvFile,
	OptVerbose,
}

// IsKnown reports whether name is a recognized option.
func IsKnown(name string) bool {
	for _, o := range KnownOptions {
		if o == name {
			return true
		}
	}
	return false
}

// CanonicalName maps a config file key to its option name. Keys may be
// written with underscores (service_account style) or hyphens.
func CanonicalName(key string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(key)), "_", "-")
}

// Values maps option names to values for a single layer. Absent options are
// simply not present.
type Values map[string]any

// options is the typed form of a merged set of Values.
type options struct {
	Repo               string     `yaml:"repo,omitempty"`
	Suite              string     `yaml:"suite,omitempty"`
	Test               stringList `yaml:"test,omitempty"`
	Namespace          string     `yaml:"namespace,omitempty" default:"default"`
	Kubeconfig         string     `yaml:"kubeconfig,omitempty" default:"~/.kube/config"`
	Context            stringList `yaml:"context,omitempty"`
	Image              string     `yaml:"image,omitempty" default:"couchbase/couchbase-operator:v1"`
	AdmissionImage     string     `yaml:"admission-controller-image,omitempty" default:"couchbase/couchbase-operator-admission:v1"`
	ServerImage        string     `yaml:"server-image,omitempty" default:"couchbase/server:6.5.0"`
	ServerUpgradeImage string     `yaml:"server-upgrade-image,omitempty" default:"couchbase/server:6.5.1"`
	SyncGatewayImage   string     `yaml:"sync-gateway-image,omitempty" default:"couchbase/sync-gateway:2.7.0-enterprise"`
	StorageClass       string     `yaml:"storage-class,omitempty" default:"standard"`
	CollectLogs        bool       `yaml:"collect-logs,omitempty"`
	DockerServer       string     `yaml:"docker-server,omitempty"`
	DockerUsername     string     `yaml:"docker-username,omitempty"`
	DockerPassword     string     `yaml:"docker-password,omitempty"`
	EnvFile            string     `yaml:"env-file,omitempty"`
	Verbose            bool       `yaml:"verbose,omitempty"`
}

// decodeOptions converts merged values into their typed form.
func decodeOptions(values Values) (*options, error) {
	data, err := yaml.Marshal(map[string]any(values))
	if err != nil {
		return nil, err
	}

	var o options
	if err := yaml.Unmarshal(data, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// stringList accepts either a single string or a sequence of strings.
type stringList []string

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = stringList{s}
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*l = list
	default:
		return fmt.Errorf("line %d: expected a string or a list of strings", value.Line)
	}
	return nil
}
