package constants

// JobStatus is the lifecycle state of one document in a batch run.
type JobStatus string

const (
	JobStatusQueued  JobStatus = "QUEUED"
	JobStatusRunning JobStatus = "RUNNING"
	JobStatusOK      JobStatus = "OK"     // record extracted
	JobStatusFailed  JobStatus = "FAILED" // snapshot could not be read
)
