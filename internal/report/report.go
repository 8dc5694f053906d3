// Package report composes student progress summaries and mails them to
// parents through Amazon SES.
package report

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"verblearn/internal/models"
	"verblearn/internal/score"
)

// Report is one student's progress summary, ready to render.
type Report struct {
	StudentID       string
	Overall         models.OverallStats
	Activities      []ActivitySummary
	Recommendations []string
}

// ActivitySummary is the per-activity slice of a report.
type ActivitySummary struct {
	Activity string
	Stats    models.ActivityStats
}

// Build assembles a progress report for one student. Returns nil when the
// student has no record.
func Build(scores *score.Store, studentID string) *Report {
	overall := scores.GetOverallStats(studentID)
	if overall == nil {
		return nil
	}

	record := scores.GetStudentScores(studentID)
	var activities []ActivitySummary
	for name, stats := range record.Activities {
		activities = append(activities, ActivitySummary{Activity: name, Stats: *stats})
	}
	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Activity < activities[j].Activity
	})

	return &Report{
		StudentID:       studentID,
		Overall:         *overall,
		Activities:      activities,
		Recommendations: scores.GetLearningRecommendations(studentID),
	}
}

// Subject returns the email subject line for the report.
func (r *Report) Subject() string {
	return fmt.Sprintf("VerbLearn Progress Report for %s", r.StudentID)
}

// TextBody renders the report as plain text.
func (r *Report) TextBody() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Progress report for %s\n\n", r.StudentID)
	fmt.Fprintf(&b, "Total sessions: %d\n", r.Overall.TotalSessions)
	fmt.Fprintf(&b, "Average score:  %d\n", r.Overall.AverageScore)
	fmt.Fprintf(&b, "Best score:     %d\n", r.Overall.BestScore)
	fmt.Fprintf(&b, "Activities tried: %d\n", r.Overall.ActivitiesCompleted)

	if len(r.Activities) > 0 {
		b.WriteString("\nBy activity:\n")
		for _, a := range r.Activities {
			fmt.Fprintf(&b, "- %s: %d sessions, average %d, best %d\n",
				a.Activity, a.Stats.TotalSessions, a.Stats.AverageScore, a.Stats.BestScore)
		}
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("\nSuggestions:\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	b.WriteString("\n---\nThis is an automated email from VerbLearn. Please do not reply.\n")
	return b.String()
}

// HTMLBody renders the report as a simple HTML email.
func (r *Report) HTMLBody() string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html>
<html>
<head>
	<meta charset="UTF-8">
	<style>
		body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
		.container { max-width: 600px; margin: 0 auto; padding: 20px; }
		.header { background-color: #4a90e2; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
		.content { background-color: #f9f9f9; padding: 30px; border-radius: 0 0 5px 5px; }
		table { border-collapse: collapse; width: 100%; }
		th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid #ddd; }
		.footer { text-align: center; margin-top: 20px; font-size: 12px; color: #666; }
	</style>
</head>
<body>
	<div class="container">
		<div class="header">
`)
	fmt.Fprintf(&b, "\t\t\t<h1>Progress Report: %s</h1>\n", html.EscapeString(r.StudentID))
	b.WriteString("\t\t</div>\n\t\t<div class=\"content\">\n")
	fmt.Fprintf(&b, "\t\t\t<p>Total sessions: <strong>%d</strong><br>\n", r.Overall.TotalSessions)
	fmt.Fprintf(&b, "\t\t\tAverage score: <strong>%d</strong><br>\n", r.Overall.AverageScore)
	fmt.Fprintf(&b, "\t\t\tBest score: <strong>%d</strong><br>\n", r.Overall.BestScore)
	fmt.Fprintf(&b, "\t\t\tActivities tried: <strong>%d</strong></p>\n", r.Overall.ActivitiesCompleted)

	if len(r.Activities) > 0 {
		b.WriteString("\t\t\t<table>\n\t\t\t\t<tr><th>Activity</th><th>Sessions</th><th>Average</th><th>Best</th></tr>\n")
		for _, a := range r.Activities {
			fmt.Fprintf(&b, "\t\t\t\t<tr><td>%s</td><td>%d</td><td>%d</td><td>%d</td></tr>\n",
				html.EscapeString(a.Activity), a.Stats.TotalSessions, a.Stats.AverageScore, a.Stats.BestScore)
		}
		b.WriteString("\t\t\t</table>\n")
	}

	if len(r.Recommendations) > 0 {
		b.WriteString("\t\t\t<ul>\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "\t\t\t\t<li>%s</li>\n", html.EscapeString(rec))
		}
		b.WriteString("\t\t\t</ul>\n")
	}

	b.WriteString(`		</div>
		<div class="footer">
			<p>This is an automated email from VerbLearn. Please do not reply.</p>
		</div>
	</div>
</body>
</html>
`)
	return b.String()
}
