// Package summary aggregates recorded jobs into all-time, daily and weekly
// totals. Every function takes "now" explicitly and has no failure path.
package summary

import (
	"time"

	"github.com/Tiliavir/time-tracker/internal/model"
	"github.com/Tiliavir/time-tracker/internal/timecalc"
)

// Summary is the all-time total of one project.
type Summary struct {
	Title        string
	TotalSeconds int64
	JobCount     int
}

// Day holds the jobs of a project completed on one calendar date.
type Day struct {
	TotalSeconds int64
	JobCount     int
	Jobs         []model.Job
}

// WeekdayBucket groups jobs completed on one weekday of the current week.
type WeekdayBucket struct {
	Weekday      time.Weekday
	TotalSeconds int64
	JobCount     int
	Jobs         []model.Job
}

// Week maps a weekday to its bucket. Only weekdays with jobs are present.
type Week map[time.Weekday]*WeekdayBucket

// Ordered returns the buckets Monday first.
func (w Week) Ordered() []*WeekdayBucket {
	var out []*WeekdayBucket
	for _, wd := range timecalc.Week {
		if b, ok := w[wd]; ok {
			out = append(out, b)
		}
	}
	return out
}

// TotalSeconds sums every bucket.
func (w Week) TotalSeconds() int64 {
	var total int64
	for _, b := range w {
		total += b.TotalSeconds
	}
	return total
}

// JobTotal is a derived aggregate of the jobs sharing a name.
type JobTotal struct {
	Name         string
	TotalSeconds int64
	Count        int
}

// SummarizeAll reports the all-time total of every project in store order.
func SummarizeAll(projects []model.Project) []Summary {
	out := make([]Summary, 0, len(projects))
	for _, p := range projects {
		out = append(out, Summary{
			Title:        p.Title,
			TotalSeconds: p.TotalSeconds(),
			JobCount:     len(p.Jobs),
		})
	}
	return out
}

// SummarizeToday collects the jobs of p completed on now's calendar date.
// A job is classified by its completion time alone.
func SummarizeToday(p model.Project, now time.Time) Day {
	var d Day
	for _, j := range p.Jobs {
		if !timecalc.IsToday(j.CompletedAt(), now) {
			continue
		}
		d.TotalSeconds += j.Seconds()
		d.JobCount++
		d.Jobs = append(d.Jobs, j)
	}
	return d
}

// SummarizeWeek groups the jobs of p completed in now's ISO week by the
// weekday they completed on. Jobs keep encounter order within a bucket.
func SummarizeWeek(p model.Project, now time.Time) Week {
	w := Week{}
	for _, j := range p.Jobs {
		ts := j.CompletedAt()
		if !timecalc.IsThisWeek(ts, now) {
			continue
		}
		wd := timecalc.WeekdayOf(ts, now.Location())
		b, ok := w[wd]
		if !ok {
			b = &WeekdayBucket{Weekday: wd}
			w[wd] = b
		}
		b.TotalSeconds += j.Seconds()
		b.JobCount++
		b.Jobs = append(b.Jobs, j)
	}
	return w
}

// ActiveToday returns the projects with tracked time today, in store order.
func ActiveToday(projects []model.Project, now time.Time) []model.Project {
	var out []model.Project
	for _, p := range projects {
		if SummarizeToday(p, now).TotalSeconds > 0 {
			out = append(out, p)
		}
	}
	return out
}

// ActiveThisWeek returns the projects with jobs this week, in store order.
func ActiveThisWeek(projects []model.Project, now time.Time) []model.Project {
	var out []model.Project
	for _, p := range projects {
		if len(SummarizeWeek(p, now)) > 0 {
			out = append(out, p)
		}
	}
	return out
}

// MergeByName folds jobs sharing a name into one total, in first-seen order.
// Stored jobs are not modified.
func MergeByName(jobs []model.Job) []JobTotal {
	var out []JobTotal
	index := map[string]int{}
	for _, j := range jobs {
		i, ok := index[j.Name]
		if !ok {
			i = len(out)
			index[j.Name] = i
			out = append(out, JobTotal{Name: j.Name})
		}
		out[i].TotalSeconds += j.Seconds()
		out[i].Count++
	}
	return out
}

// GrandTotal sums the totals of the given summaries.
func GrandTotal(summaries []Summary) int64 {
	var total int64
	for _, s := range summaries {
		total += s.TotalSeconds
	}
	return total
}
