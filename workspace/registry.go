package workspace

import (
	"fmt"
	"os"

	"github.com/flanksource/commons/logger"
	"gopkg.in/yaml.v3"
)

// Workspace is one Linear workspace that reports can be filed against.
// CredentialEnv names the environment variable holding the workspace's
// Linear API key; the key itself is resolved lazily so that a missing
// credential does not prevent startup.
type Workspace struct {
	Name          string `yaml:"name"`
	ID            string `yaml:"id"`
	CredentialEnv string `yaml:"credentialEnv"`
}

// Option is a (label, value) pair for the workspace picker.
type Option struct {
	Name string
	ID   string
}

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("workspace %q is not registered", e.ID)
}

// Registry holds the static workspace set. It is immutable after Load.
type Registry struct {
	workspaces []Workspace
}

var defaults = []Workspace{
	{Name: "Purpom Media Lab", ID: "purpom-media-lab", CredentialEnv: "PURPOM_MEDIA_LAB_LINEAR_API_KEY"},
	{Name: "アクティブコア", ID: "active-core-swat", CredentialEnv: "ACTIVE_CORE_SWAT_LINEAR_API_KEY"},
	{Name: "Hyper Game", ID: "hyper-game", CredentialEnv: "HYPER_GAME_LINEAR_API_KEY"},
}

// Load returns the registry, optionally overridden by a YAML file of the form:
//
//	- name: Purpom Media Lab
//	  id: purpom-media-lab
//	  credentialEnv: PURPOM_MEDIA_LAB_LINEAR_API_KEY
//
// An empty path yields the built-in defaults.
func Load(path string) (*Registry, error) {
	if path == "" {
		return &Registry{workspaces: defaults}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace file %s: %w", path, err)
	}

	var workspaces []Workspace
	if err := yaml.Unmarshal(data, &workspaces); err != nil {
		return nil, fmt.Errorf("failed to parse workspace file %s: %w", path, err)
	}
	if len(workspaces) == 0 {
		return nil, fmt.Errorf("workspace file %s defines no workspaces", path)
	}

	for i, w := range workspaces {
		if w.ID == "" || w.CredentialEnv == "" {
			return nil, fmt.Errorf("workspace entry %d in %s is missing id or credentialEnv", i, path)
		}
	}

	return &Registry{workspaces: workspaces}, nil
}

func NewRegistry(workspaces ...Workspace) *Registry {
	return &Registry{workspaces: workspaces}
}

// Resolve looks up a workspace by its identifier.
func (r *Registry) Resolve(id string) (Workspace, error) {
	for _, w := range r.workspaces {
		if w.ID == id {
			return w, nil
		}
	}
	return Workspace{}, &NotFoundError{ID: id}
}

// Credential returns the Linear API key for a workspace, or "" when the
// workspace is unknown or its environment variable is unset. Callers treat
// an empty credential as "no issues available" rather than a hard error.
func (r *Registry) Credential(id string) string {
	w, err := r.Resolve(id)
	if err != nil {
		logger.Warnf("credential lookup: %v", err)
		return ""
	}

	key := os.Getenv(w.CredentialEnv)
	if key == "" {
		logger.Warnf("workspace %s has no credential in $%s", w.ID, w.CredentialEnv)
	}
	return key
}

// Options returns the picker options in registration order.
func (r *Registry) Options() []Option {
	options := make([]Option, 0, len(r.workspaces))
	for _, w := range r.workspaces {
		options = append(options, Option{Name: w.Name, ID: w.ID})
	}
	return options
}
