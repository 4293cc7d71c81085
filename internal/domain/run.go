package domain

// RunState is the state of a channel download run
type RunState string

const (
	RunIdle             RunState = "idle"
	RunResolvingChannel RunState = "resolving_channel"
	RunListingVideos    RunState = "listing_videos"
	RunProcessingQueue  RunState = "processing_queue"
	RunFinished         RunState = "finished"
	RunAborted          RunState = "aborted"
)

// IsTerminal checks if the run can no longer change state
func (s RunState) IsTerminal() bool {
	return s == RunFinished || s == RunAborted
}

// JobResult is the outcome of one job. Err is nil on success.
type JobResult struct {
	Index      int
	Reference  VideoReference
	OutputFile string
	Err        error
}

// Succeeded reports whether the job produced a merged file
func (r JobResult) Succeeded() bool {
	return r.Err == nil
}

// RunSummary collects the per-job results of a run in processing order
type RunSummary struct {
	RunID   string
	Channel ChannelInfo
	Results []JobResult
}

// Completed returns the number of successful jobs
func (s *RunSummary) Completed() int {
	n := 0
	for _, r := range s.Results {
		if r.Succeeded() {
			n++
		}
	}
	return n
}

// Failed returns the number of failed jobs
func (s *RunSummary) Failed() int {
	return len(s.Results) - s.Completed()
}
