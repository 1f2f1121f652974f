// Package github fetches the chronicle's GitHub inputs: profile, recent
// public events, repositories, and (token permitting) the contribution
// calendar via GraphQL.
package github

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	gh "github.com/google/go-github/v81/github"
	"golang.org/x/oauth2"

	"github.com/devchronicle/chronicle/pkg/httpcache"
	"github.com/devchronicle/chronicle/pkg/report"
)

// ErrUserNotFound is returned when the primary identity cannot be resolved.
// It is fatal for the report; every other fetch failure only degrades its
// section.
var ErrUserNotFound = errors.New("github user not found")

const (
	eventsPerPage = 100
	reposPerPage  = 30
)

// Client wraps the typed REST client and the GraphQL endpoint behind one
// fetch surface.
type Client struct {
	rest       *gh.Client
	httpClient *http.Client
	graphqlURL string
	token      string
	logger     *slog.Logger
}

// New builds a client. An empty token means unauthenticated REST access and
// no contribution calendar. The cache may be nil.
func New(token string, cache *httpcache.Cache, logger *slog.Logger) *Client {
	var base http.RoundTripper
	if token != "" {
		base = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}
	if cache != nil {
		httpClient.Transport = httpcache.NewTransport(cache, base)
	} else {
		httpClient.Transport = base
	}

	return &Client{
		rest:       gh.NewClient(httpClient),
		httpClient: httpClient,
		graphqlURL: "https://api.github.com/graphql",
		token:      token,
		logger:     logger,
	}
}

// FetchUserData launches the profile, events, and repository fetches
// concurrently (plus the calendar when a token is configured) and awaits
// them jointly. The returned warnings describe degraded optional sections;
// the error is non-nil only when the profile itself cannot be fetched.
func (c *Client) FetchUserData(ctx context.Context, username string) (*report.GitHubData, []string, error) {
	var (
		wg      sync.WaitGroup
		profile *report.Profile
		events  []report.Event
		repos   []report.Repository
		cal     *report.ContributionCalendar

		profileErr, eventsErr, reposErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		profile, profileErr = c.fetchProfile(ctx, username)
	}()
	go func() {
		defer wg.Done()
		events, eventsErr = c.fetchEvents(ctx, username)
	}()
	go func() {
		defer wg.Done()
		repos, reposErr = c.fetchRepositories(ctx, username)
	}()

	if c.token != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var err error
			cal, err = c.fetchContributions(ctx, username)
			if err != nil {
				// Calendar is best-effort; absence is not an error state.
				c.logger.Debug("contribution calendar unavailable", "username", username, "error", err)
				cal = nil
			}
		}()
	}

	wg.Wait()

	if profileErr != nil {
		return nil, nil, profileErr
	}

	var warnings []string
	if eventsErr != nil {
		c.logger.Warn("event fetch degraded", "username", username, "error", eventsErr)
		warnings = append(warnings, "アクティビティの取得に失敗しました")
	}
	if reposErr != nil {
		c.logger.Warn("repository fetch degraded", "username", username, "error", reposErr)
		warnings = append(warnings, "リポジトリ一覧の取得に失敗しました")
	}

	return &report.GitHubData{
		Profile:       *profile,
		Events:        events,
		Repos:         repos,
		Contributions: cal,
	}, warnings, nil
}

func (c *Client) fetchProfile(ctx context.Context, username string) (*report.Profile, error) {
	user, resp, err := c.rest.Users.Get(ctx, username)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrUserNotFound, username)
		}
		return nil, fmt.Errorf("fetching profile: %w", err)
	}

	return &report.Profile{
		Login:       user.GetLogin(),
		Name:        user.GetName(),
		AvatarURL:   user.GetAvatarURL(),
		Bio:         user.GetBio(),
		Location:    user.GetLocation(),
		PublicRepos: user.GetPublicRepos(),
		Followers:   user.GetFollowers(),
		Following:   user.GetFollowing(),
	}, nil
}

func (c *Client) fetchEvents(ctx context.Context, username string) ([]report.Event, error) {
	raw, _, err := c.rest.Activity.ListEventsPerformedByUser(ctx, username, true,
		&gh.ListOptions{PerPage: eventsPerPage})
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}

	events := make([]report.Event, 0, len(raw))
	for _, e := range raw {
		events = append(events, mapEvent(e))
	}
	c.logger.Debug("fetched events", "username", username, "count", len(events))
	return events, nil
}

func (c *Client) fetchRepositories(ctx context.Context, username string) ([]report.Repository, error) {
	raw, _, err := c.rest.Repositories.ListByUser(ctx, username, &gh.RepositoryListByUserOptions{
		Sort:        "updated",
		ListOptions: gh.ListOptions{PerPage: reposPerPage},
	})
	if err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}

	repos := make([]report.Repository, 0, len(raw))
	for _, r := range raw {
		repos = append(repos, report.Repository{
			Name:        r.GetName(),
			Description: r.GetDescription(),
			Language:    r.GetLanguage(),
			Stars:       r.GetStargazersCount(),
			Forks:       r.GetForksCount(),
			UpdatedAt:   r.GetUpdatedAt().Format(time.RFC3339),
			HTMLURL:     r.GetHTMLURL(),
		})
	}
	c.logger.Debug("fetched repositories", "username", username, "count", len(repos))
	return repos, nil
}
