package github

import (
	"time"

	gh "github.com/google/go-github/v81/github"

	"github.com/devchronicle/chronicle/pkg/report"
)

// mapEvent flattens a typed API event into the report's shape. Only the
// payload fields the report reads survive; unparseable payloads leave an
// event with its type, repo, and timestamp intact.
func mapEvent(e *gh.Event) report.Event {
	out := report.Event{Type: e.GetType()}
	out.Repo.Name = e.GetRepo().GetName()
	if created := e.GetCreatedAt(); !created.IsZero() {
		out.CreatedAt = created.Format(time.RFC3339)
	}

	payload, err := e.ParsePayload()
	if err != nil {
		return out
	}

	switch p := payload.(type) {
	case *gh.PushEvent:
		for _, c := range p.Commits {
			out.Payload.Commits = append(out.Payload.Commits, report.Commit{
				SHA:     c.GetSHA(),
				Message: c.GetMessage(),
			})
		}
	case *gh.PullRequestEvent:
		out.Payload.Action = p.GetAction()
		if pr := p.GetPullRequest(); pr != nil {
			out.Payload.PullRequest = &report.PullRequest{
				Title:   pr.GetTitle(),
				HTMLURL: pr.GetHTMLURL(),
				Number:  pr.GetNumber(),
			}
		}
	case *gh.IssuesEvent:
		out.Payload.Action = p.GetAction()
	case *gh.IssueCommentEvent:
		out.Payload.Action = p.GetAction()
	}

	return out
}
