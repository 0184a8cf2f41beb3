package entities

import "fmt"

// TargetEnvironment names the environment a release is promoted to.
type TargetEnvironment string

const (
	// EnvProd marks the production environment.
	EnvProd TargetEnvironment = "PROD"
	// EnvPreProd marks the pre-production environment.
	EnvPreProd TargetEnvironment = "PRE-PROD"
)

// DeploymentRequest carries everything the pipeline needs for one promotion run.
// Immutable once constructed.
type DeploymentRequest struct {
	ReleaseTag         string
	RepoOwner          string
	RepoName           string
	LocalRepoOwner     string
	LocalRepoName      string
	ProdEnvFilePath    string
	PreProdEnvFilePath string
	BaseBranch         string
	SkipMerge          bool
}

// Target selects the environment and its file path. SkipMerge promotes straight
// to PROD; the normal flow targets PRE-PROD first.
func (r DeploymentRequest) Target() (TargetEnvironment, string, error) {
	env, path := EnvPreProd, r.PreProdEnvFilePath
	if r.SkipMerge {
		env, path = EnvProd, r.ProdEnvFilePath
	}
	if path == "" {
		return env, "", fmt.Errorf("%w: %s", ErrMissingEnvFilePath, env)
	}
	return env, path, nil
}

// DeploymentOutcome is the terminal record of a pipeline run.
type DeploymentOutcome struct {
	Environment         TargetEnvironment
	ChangeRequestURL    string
	ChecksPassed        bool
	Merged              bool
	Verified            bool
	VerificationSkipped bool
}
