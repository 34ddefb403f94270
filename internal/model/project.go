package model

import "time"

// Project is a named bucket of tracked work. Title is the primary key.
type Project struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Jobs        []Job  `json:"jobs"`
}

// Job is one completed timed session against a project.
type Job struct {
	Name string  `json:"name"`
	Time JobTime `json:"time"`
}

// JobTime holds the recorded duration and the completion instant.
type JobTime struct {
	// Sec is the number of whole seconds worked.
	Sec int64 `json:"sec"`
	// End is the completion timestamp in Unix seconds.
	End int64 `json:"end"`
}

// NewJob builds a job that completed at end after running for sec seconds.
func NewJob(name string, sec int64, end time.Time) Job {
	return Job{Name: name, Time: JobTime{Sec: sec, End: end.Unix()}}
}

// CompletedAt returns the completion time in the local time zone.
func (j Job) CompletedAt() time.Time {
	return time.Unix(j.Time.End, 0)
}

// Seconds returns the recorded duration.
func (j Job) Seconds() int64 {
	return j.Time.Sec
}

// TotalSeconds sums the duration of every job.
func (p Project) TotalSeconds() int64 {
	var total int64
	for _, j := range p.Jobs {
		total += j.Time.Sec
	}
	return total
}
