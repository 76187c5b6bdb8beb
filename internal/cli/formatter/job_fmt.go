package formatter

import (
	"fmt"
	"strings"

	"github.com/rcalloway/timebill/internal/domain"
)

// FormatJobList renders the job list as a table.
func FormatJobList(jobs []*domain.Job) string {
	rows := make([][]string, 0, len(jobs))
	for _, j := range jobs {
		client := j.ClientName
		if client == "" {
			client = Dim("--")
		}
		rows = append(rows, []string{
			TruncID(j.ID),
			StylePurple.Render(j.JobNumber),
			Bold(j.JobName),
			client,
		})
	}
	return RenderTable([]string{"ID", "Number", "Name", "Client"}, rows)
}

// FormatJobInspect renders one job with its activity codes.
func FormatJobInspect(j *domain.Job, activities []*domain.Activity) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s — %s", j.JobNumber, j.JobName)) + "\n")
	if j.ClientName != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Client:"), j.ClientName))
	}
	if j.Description != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", Dim("Description:"), j.Description))
	}
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("ID:"), j.ID))

	if len(activities) > 0 {
		b.WriteString("\n" + Bold("Activities") + "\n")
		for _, a := range activities {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				StyleBlue.Render(a.Code), a.Description, TruncID(a.ID)))
		}
	}
	return b.String()
}
