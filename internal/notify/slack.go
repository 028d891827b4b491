// Package notify posts run summaries to Slack.
package notify

import (
	"fmt"
	"sort"
	"strings"

	"github.com/slack-go/slack"

	"github.com/ticketdup/ticketdup/internal/detect"
	"github.com/ticketdup/ticketdup/internal/utils"
)

// maxGroupsPerWindow caps how many groups one window section lists before
// collapsing the rest into a count.
const maxGroupsPerWindow = 5

// Notifier posts analysis summaries to a Slack channel.
type Notifier struct {
	client  *slack.Client
	channel string
}

// New creates a notifier, or nil when Slack is not configured.
func New(botToken, channel string) *Notifier {
	if botToken == "" || channel == "" {
		return nil
	}
	return &Notifier{
		client:  slack.New(botToken),
		channel: channel,
	}
}

// PostSummary formats and sends the run summary message.
func (n *Notifier) PostSummary(res *detect.RunResult) error {
	_, _, err := n.client.PostMessage(n.channel, slack.MsgOptionText(FormatSummary(res), false))
	if err != nil {
		return fmt.Errorf("posting summary to %s: %w", n.channel, err)
	}
	return nil
}

// FormatSummary renders a run as a Slack message.
func FormatSummary(res *detect.RunResult) string {
	var sb strings.Builder

	sb.WriteString("🔍 *Duplicate Ticket Analysis*\n\n")
	sb.WriteString(fmt.Sprintf("*Tickets*: %s across %s sites\n",
		utils.FormatNumber(res.TicketCount), utils.FormatNumber(res.SiteCount)))
	sb.WriteString(fmt.Sprintf("*Engine*: %s", res.Engine))
	if res.EngineFallback {
		sb.WriteString(" (fallback)")
	}
	sb.WriteString(fmt.Sprintf(" | *Duration*: %s\n", utils.FormatDuration(res.Duration)))
	if res.Repair != nil && res.Repair.Changed() {
		sb.WriteString(fmt.Sprintf("*Repairs*: %d rows removed, %d rows fixed (%s)\n",
			res.Repair.RowsRemoved, res.Repair.RowsFixed, res.Repair.EncodingDetected))
	}
	if res.SkippedRows > 0 {
		sb.WriteString(fmt.Sprintf("*Skipped rows*: %d\n", res.SkippedRows))
	}

	windows := make([]int, 0, len(res.Summaries))
	for w := range res.Summaries {
		windows = append(windows, w)
	}
	sort.Ints(windows)

	for _, w := range windows {
		sum := res.Summaries[w]
		sb.WriteString(fmt.Sprintf("\n*%dh window*: %d groups, %d pairs",
			w, sum.GroupCount, sum.TotalPairs))
		if sum.TotalPairs > 0 {
			sb.WriteString(fmt.Sprintf(", %d sites, avg similarity %.1f", sum.AffectedSites, sum.AvgSimilarity))
		}
		sb.WriteString("\n")

		groups := res.Groups[w]
		shown := groups
		if len(shown) > maxGroupsPerWindow {
			shown = shown[:maxGroupsPerWindow]
		}
		for _, g := range shown {
			sb.WriteString(fmt.Sprintf("• %s: %s (score %d)\n",
				utils.TruncateText(g.Site, 40),
				strings.Join(g.TicketNumbers, ", "),
				g.RepresentativeScore))
		}
		if len(groups) > len(shown) {
			sb.WriteString(fmt.Sprintf("… and %d more\n", len(groups)-len(shown)))
		}
	}

	return sb.String()
}
