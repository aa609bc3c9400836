package model

import "encoding/json"

// Artifact file roles as served by the job-control API.
const (
	FileRoleForward = "raw_forward_seqs"
	FileRoleReverse = "raw_reverse_seqs"
)

// JobResult is the terminal outcome of one plugin job.
type JobResult struct {
	Success   bool             `json:"success"`
	Artifacts []ArtifactOutput `json:"artifacts"`
	Message   string           `json:"error"`
}

// ArtifactOutput describes one output artifact handed back to the
// job-control server when a job completes.
type ArtifactOutput struct {
	Name  string   `json:"name"`
	Type  string   `json:"artifact_type"`
	Files []string `json:"filepaths"`
}

// ArtifactInfo is the server's description of an input artifact: its files
// grouped by role, and references to the prep information that describes
// how the samples were prepared.
type ArtifactInfo struct {
	Files           map[string][]string `json:"files"`
	PrepInformation []json.Number       `json:"prep_information"`
}

// PrepInfo is the subset of a prep template the plugin needs: the
// reference to the sample-mapping file.
type PrepInfo struct {
	QiimeMap string `json:"qiime-map"`
}

// JobInfo describes a queued job as served by the job-control API.
type JobInfo struct {
	Command    string     `json:"command"`
	Parameters Parameters `json:"parameters"`
	Status     string     `json:"status"`
}
